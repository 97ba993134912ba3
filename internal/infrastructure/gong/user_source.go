package gong

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ebeckman/gong-mcp/internal/domain/user"
)

// UserSource implements user.Source against the paginated users endpoint.
// It always fetches the complete directory; TTL caching is layered on top
// by the directory package.
type UserSource struct {
	client *Client
	pager  *rate.Limiter
	logger zerolog.Logger
}

func NewUserSource(client *Client, logger zerolog.Logger) *UserSource {
	return &UserSource{
		client: client,
		pager:  rate.NewLimiter(rate.Every(pageInterval), 1),
		logger: logger,
	}
}

func (s *UserSource) FetchAll(ctx context.Context) ([]user.User, error) {
	users := []user.User{}
	cursor := ""
	for {
		if cursor != "" {
			if err := s.pager.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := s.client.ListUsers(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("listing users: %w", err)
		}
		for _, dto := range resp.Users {
			if dto.ID == "" {
				s.logger.Warn().Msg("skipping user record without id")
				continue
			}
			users = append(users, toDomainUser(dto))
		}

		cursor = resp.Records.Cursor
		if cursor == "" {
			return users, nil
		}
	}
}

func toDomainUser(dto UserDTO) user.User {
	email := dto.EmailAddress
	if email == "" {
		email = dto.Email
	}
	// Active defaults to true unless the platform explicitly says otherwise.
	active := true
	if dto.Active != nil {
		active = *dto.Active
	}
	return user.New(dto.ID, dto.FirstName, dto.LastName, email, dto.Title, active, dto.Created)
}
