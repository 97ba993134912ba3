// Package user contains the user directory use cases.
package user

import (
	"context"
	"errors"
	"strings"

	domain "github.com/ebeckman/gong-mcp/internal/domain/user"
)

var ErrNoCriteria = errors.New("at least one of name, email or id is required")

// Directory is the read port backing user lookups.
type Directory interface {
	GetAllUsers(ctx context.Context, forceRefresh bool) ([]domain.User, error)
	FindUsers(ctx context.Context, criteria domain.Criteria) ([]domain.User, error)
}

type FindUsersInput struct {
	Name  string
	Email string
	ID    string
}

type FindUsersOutput struct {
	Users []domain.User
}

// FindUsers looks up directory users by any combination of name, email
// and id. Zero matches is an empty result, not an error.
type FindUsers struct {
	directory Directory
}

func NewFindUsers(directory Directory) *FindUsers {
	return &FindUsers{directory: directory}
}

func (uc *FindUsers) Execute(ctx context.Context, input FindUsersInput) (*FindUsersOutput, error) {
	criteria := domain.Criteria{
		Name:  strings.TrimSpace(input.Name),
		Email: strings.TrimSpace(input.Email),
		ID:    strings.TrimSpace(input.ID),
	}
	if criteria.Empty() {
		return nil, ErrNoCriteria
	}

	users, err := uc.directory.FindUsers(ctx, criteria)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return &FindUsersOutput{Users: users}, nil
}
