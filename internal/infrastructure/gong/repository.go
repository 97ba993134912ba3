package gong

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ebeckman/gong-mcp/internal/domain/call"
)

// pageInterval paces multi-page fetches to stay clear of the API's
// rate limits.
const pageInterval = 300 * time.Millisecond

// Repository implements call.Repository against the Gong API.
// Cursor iteration and record normalization both live here, so the rest
// of the codebase only ever sees normalized domain entities.
type Repository struct {
	client *Client
	pager  *rate.Limiter
	logger zerolog.Logger
}

func NewRepository(client *Client, logger zerolog.Logger) *Repository {
	return &Repository{
		client: client,
		pager:  rate.NewLimiter(rate.Every(pageInterval), 1),
		logger: logger,
	}
}

func (r *Repository) FindByID(ctx context.Context, id call.ID) (*call.Call, error) {
	resp, err := r.client.GetCall(ctx, string(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, call.ErrCallNotFound
		}
		return nil, fmt.Errorf("fetching call %s: %w", id, err)
	}
	return toDomainCall(resp.Call)
}

func (r *Repository) List(ctx context.Context, filter call.ListFilter) ([]*call.Call, error) {
	calls := []*call.Call{}
	cursor := ""
	for {
		if cursor != "" {
			if err := r.pager.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := r.client.ListCalls(ctx, filter.From, filter.To, cursor)
		if err != nil {
			return nil, fmt.Errorf("listing calls: %w", err)
		}
		for _, dto := range resp.Calls {
			c, convErr := toDomainCall(dto)
			if convErr != nil {
				r.logger.Warn().Err(convErr).Msg("skipping malformed call record")
				continue
			}
			calls = append(calls, c)
		}

		if filter.Limit > 0 && len(calls) >= filter.Limit {
			return calls[:filter.Limit], nil
		}
		cursor = resp.Records.Cursor
		if cursor == "" {
			return calls, nil
		}
	}
}

func (r *Repository) GetTranscript(ctx context.Context, id call.ID) (*call.Transcript, error) {
	resp, err := r.client.GetTranscripts(ctx, []string{string(id)})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, call.ErrTranscriptNotFound
		}
		return nil, fmt.Errorf("fetching transcript for call %s: %w", id, err)
	}
	if len(resp.CallTranscripts) == 0 {
		return nil, call.ErrTranscriptNotFound
	}
	return toDomainTranscript(id, resp.CallTranscripts[0]), nil
}

func toDomainCall(dto CallDTO) (*call.Call, error) {
	started := dto.Started
	if started == "" {
		started = dto.StartTime
	}

	participants := make([]call.Participant, 0, len(dto.Parties))
	for _, p := range dto.Parties {
		id := p.SpeakerID
		if id == "" {
			id = p.ID
		}
		participants = append(participants,
			call.NewParticipant(id, p.Name, p.FirstName, p.LastName, p.Email, p.Role, p.Company))
	}

	return call.New(call.ID(dto.ID), dto.Title, call.Attributes{
		Scheduled:     dto.Scheduled,
		Started:       started,
		Duration:      dto.Duration,
		Direction:     dto.Direction,
		System:        dto.System,
		Scope:         dto.Scope,
		Media:         dto.Media,
		Language:      dto.Language,
		URL:           dto.URL,
		HasTranscript: len(dto.Transcript) > 0,
		Participants:  participants,
	})
}

func toDomainTranscript(id call.ID, dto CallTranscriptDTO) *call.Transcript {
	segments := make([]call.Segment, 0, len(dto.Transcript))
	for _, seg := range dto.Transcript {
		sentences := make([]call.Sentence, 0, len(seg.Sentences))
		for _, s := range seg.Sentences {
			sentences = append(sentences, call.NewSentence(s.Start, s.Text))
		}
		segments = append(segments, call.NewSegment(seg.SpeakerID, seg.Topic, sentences))
	}
	return call.NewTranscript(id, segments)
}
