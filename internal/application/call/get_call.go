package call

import (
	"context"

	"github.com/rs/zerolog"

	transcriptapp "github.com/ebeckman/gong-mcp/internal/application/transcript"
	domain "github.com/ebeckman/gong-mcp/internal/domain/call"
)

type GetCallInput struct {
	CallID            domain.ID
	IncludeTranscript bool
	TranscriptFormat  transcriptapp.Format
	MaxSegments       int
	MaxSentences      int
}

// GetCallOutput carries the normalized call and, when requested and
// available, its formatted transcript.
type GetCallOutput struct {
	Call       *domain.Call
	Transcript *transcriptapp.Output
}

// GetCall is the composite read: fetch a call and optionally attach its
// transcript. The primary fetch is fail-loud; the transcript attach is
// fail-soft so partial transcript availability never blocks the call.
type GetCall struct {
	repo      domain.Repository
	formatter *transcriptapp.Formatter
	logger    zerolog.Logger
}

func NewGetCall(repo domain.Repository, formatter *transcriptapp.Formatter, logger zerolog.Logger) *GetCall {
	return &GetCall{repo: repo, formatter: formatter, logger: logger}
}

func (uc *GetCall) Execute(ctx context.Context, input GetCallInput) (*GetCallOutput, error) {
	if input.CallID == "" {
		return nil, domain.ErrInvalidCallID
	}

	c, err := uc.repo.FindByID(ctx, input.CallID)
	if err != nil {
		return nil, err
	}
	out := &GetCallOutput{Call: c}
	if !input.IncludeTranscript {
		return out, nil
	}

	transcript, err := uc.formatter.Execute(ctx, transcriptapp.Input{
		CallID:       input.CallID,
		Format:       input.TranscriptFormat,
		MaxSegments:  input.MaxSegments,
		MaxSentences: input.MaxSentences,
	})
	if err != nil {
		uc.logger.Warn().Err(err).Str("call_id", string(input.CallID)).
			Msg("transcript attach failed, returning call without it")
		return out, nil
	}

	out.Transcript = transcript
	// A successfully fetched transcript is authoritative: it corrects call
	// records that under-report availability, and its resolved speaker list
	// supersedes the record's own participants.
	c.MarkTranscribed()
	if speakers := transcript.Speakers; len(speakers) > 0 {
		participants := make([]domain.Participant, len(speakers))
		for i, s := range speakers {
			participants[i] = domain.NewParticipant(s.ID, s.Name, "", "", s.Email, s.Role, s.Company)
		}
		c.SetParticipants(participants)
	}
	return out, nil
}
