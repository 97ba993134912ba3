// Package speaker builds the per-call speaker map, reconciling three
// partially overlapping identity sources: call participants, the user
// directory and the speaker ids observed in the raw transcript.
package speaker

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ebeckman/gong-mcp/internal/domain/call"
	userdomain "github.com/ebeckman/gong-mcp/internal/domain/user"
)

// Directory supplies user identities for speaker enrichment.
type Directory interface {
	GetAllUsers(ctx context.Context, forceRefresh bool) ([]userdomain.User, error)
}

// Resolver merges identity sources into one speaker map per call.
// Precedence: participants over directory entries over synthesized
// placeholders. Participant metadata is the most call-accurate source but
// often incomplete; the directory recovers internal employees; the
// placeholder guarantees every observed speaker id resolves to something.
// The three sources share an id space on a best-effort basis only.
type Resolver struct {
	repo      call.Repository
	directory Directory
	logger    zerolog.Logger
}

func NewResolver(repo call.Repository, directory Directory, logger zerolog.Logger) *Resolver {
	return &Resolver{repo: repo, directory: directory, logger: logger}
}

// Resolve returns the speaker map for callID, total over every speaker id
// in the call's transcript. It never fails: any upstream error degrades to
// an empty map and callers fall back to placeholders downstream. Passing
// details avoids a redundant call fetch when the caller already has it.
func (r *Resolver) Resolve(ctx context.Context, callID call.ID, details *call.Call) call.SpeakerMap {
	m, err := r.resolve(ctx, callID, details)
	if err != nil {
		r.logger.Warn().Err(err).Str("call_id", string(callID)).
			Msg("speaker resolution degraded to empty map")
		return call.SpeakerMap{}
	}
	return m
}

func (r *Resolver) resolve(ctx context.Context, callID call.ID, details *call.Call) (call.SpeakerMap, error) {
	if details == nil {
		var err error
		details, err = r.repo.FindByID(ctx, callID)
		if err != nil {
			return nil, err
		}
	}

	m := call.SpeakerMap{}
	for _, p := range details.Participants() {
		if p.ID() == "" {
			continue
		}
		name := p.DisplayName()
		if name == "" {
			name = "Person " + call.ShortID(p.ID())
		}
		m[p.ID()] = call.Speaker{
			ID:      p.ID(),
			Name:    name,
			Email:   p.Email(),
			Role:    p.Role(),
			Company: p.Company(),
		}
	}

	transcript, err := r.repo.GetTranscript(ctx, callID)
	if err != nil {
		return nil, err
	}
	ids := transcript.SpeakerIDs()

	directoryByID, err := r.directorySpeakers(ctx)
	if err != nil {
		return nil, err
	}

	// Later sources only fill gaps: participant entries always win.
	for _, id := range ids {
		if _, ok := m[id]; ok {
			continue
		}
		if s, ok := directoryByID[id]; ok {
			m[id] = s
			continue
		}
		m[id] = call.PlaceholderSpeaker(id)
	}
	return m, nil
}

// directorySpeakers projects the user directory into speaker records.
// The directory has no company field, so company is always "Unknown".
func (r *Resolver) directorySpeakers(ctx context.Context) (map[string]call.Speaker, error) {
	users, err := r.directory.GetAllUsers(ctx, false)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]call.Speaker, len(users))
	for _, u := range users {
		name := u.FullName()
		if name == "" {
			name = u.Email()
		}
		if name == "" {
			name = "User " + call.ShortID(u.ID())
		}
		byID[u.ID()] = call.Speaker{
			ID:      u.ID(),
			Name:    name,
			Email:   u.Email(),
			Company: "Unknown",
		}
	}
	return byID, nil
}
