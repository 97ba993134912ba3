package speaker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ebeckman/gong-mcp/internal/application/speaker"
	"github.com/ebeckman/gong-mcp/internal/domain/call"
	userdomain "github.com/ebeckman/gong-mcp/internal/domain/user"
)

type stubRepo struct {
	call       *call.Call
	transcript *call.Transcript
	findErr    error
	trErr      error
	findCalls  int
}

func (s *stubRepo) FindByID(ctx context.Context, id call.ID) (*call.Call, error) {
	s.findCalls++
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.call, nil
}

func (s *stubRepo) List(ctx context.Context, filter call.ListFilter) ([]*call.Call, error) {
	return nil, nil
}

func (s *stubRepo) GetTranscript(ctx context.Context, id call.ID) (*call.Transcript, error) {
	if s.trErr != nil {
		return nil, s.trErr
	}
	return s.transcript, nil
}

type stubDirectory struct {
	users []userdomain.User
	err   error
}

func (s *stubDirectory) GetAllUsers(ctx context.Context, forceRefresh bool) ([]userdomain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users, nil
}

func mustCall(t *testing.T, participants []call.Participant) *call.Call {
	t.Helper()
	c, err := call.New("c-1", "Weekly Sync", call.Attributes{Participants: participants})
	if err != nil {
		t.Fatalf("building call: %v", err)
	}
	return c
}

func transcriptFor(speakerIDs ...string) *call.Transcript {
	segments := make([]call.Segment, 0, len(speakerIDs))
	for _, id := range speakerIDs {
		segments = append(segments, call.NewSegment(id, "", []call.Sentence{
			call.NewSentence(0, "hello"),
		}))
	}
	return call.NewTranscript("c-1", segments)
}

func TestResolve_MergesAllSources(t *testing.T) {
	repo := &stubRepo{
		call: mustCall(t, []call.Participant{
			call.NewParticipant("p1", "Alice", "", "", "alice@acme.io", "", "Acme"),
		}),
		transcript: transcriptFor("p1", "p2", "zz9"),
	}
	dir := &stubDirectory{users: []userdomain.User{
		userdomain.New("p2", "Bob", "Lee", "bob@corp.io", "", true, ""),
	}}

	m := speaker.NewResolver(repo, dir, zerolog.Nop()).Resolve(context.Background(), "c-1", nil)

	if len(m) != 3 {
		t.Fatalf("got %d speakers, want 3", len(m))
	}
	if m["p1"].Name != "Alice" || m["p1"].Company != "Acme" {
		t.Errorf("p1 = %+v", m["p1"])
	}
	if m["p2"].Name != "Bob Lee" || m["p2"].Company != "Unknown" {
		t.Errorf("p2 = %+v", m["p2"])
	}
	if m["zz9"].Name != "Person zz9" || m["zz9"].Company != "Unknown" {
		t.Errorf("zz9 = %+v", m["zz9"])
	}
}

func TestResolve_ParticipantWinsOverDirectory(t *testing.T) {
	repo := &stubRepo{
		call: mustCall(t, []call.Participant{
			call.NewParticipant("p1", "Alice From Call", "", "", "", "", ""),
		}),
		transcript: transcriptFor("p1"),
	}
	dir := &stubDirectory{users: []userdomain.User{
		userdomain.New("p1", "Alice", "Directory", "alice@corp.io", "", true, ""),
	}}

	m := speaker.NewResolver(repo, dir, zerolog.Nop()).Resolve(context.Background(), "c-1", nil)

	if m["p1"].Name != "Alice From Call" {
		t.Errorf("got %q, want participant name", m["p1"].Name)
	}
}

func TestResolve_NamelessParticipantGetsPlaceholderName(t *testing.T) {
	repo := &stubRepo{
		call: mustCall(t, []call.Participant{
			call.NewParticipant("abcdef", "", "", "", "ghost@acme.io", "", ""),
		}),
		transcript: transcriptFor("abcdef"),
	}

	m := speaker.NewResolver(repo, &stubDirectory{}, zerolog.Nop()).Resolve(context.Background(), "c-1", nil)

	if m["abcdef"].Name != "Person abcd" {
		t.Errorf("got %q", m["abcdef"].Name)
	}
	if m["abcdef"].Email != "ghost@acme.io" {
		t.Errorf("got %q", m["abcdef"].Email)
	}
}

func TestResolve_DirectoryNameFallsBackToEmail(t *testing.T) {
	repo := &stubRepo{
		call:       mustCall(t, nil),
		transcript: transcriptFor("u1", "u2"),
	}
	dir := &stubDirectory{users: []userdomain.User{
		userdomain.New("u1", "", "", "anon@corp.io", "", true, ""),
		userdomain.New("u2", "", "", "", "", true, ""),
	}}

	m := speaker.NewResolver(repo, dir, zerolog.Nop()).Resolve(context.Background(), "c-1", nil)

	if m["u1"].Name != "anon@corp.io" {
		t.Errorf("u1 name = %q", m["u1"].Name)
	}
	if m["u2"].Name != "User u2" {
		t.Errorf("u2 name = %q", m["u2"].Name)
	}
}

func TestResolve_TotalOverTranscriptSpeakers(t *testing.T) {
	repo := &stubRepo{
		call:       mustCall(t, nil),
		transcript: transcriptFor("a", "b", "c", "a"),
	}

	m := speaker.NewResolver(repo, &stubDirectory{}, zerolog.Nop()).Resolve(context.Background(), "c-1", nil)

	for _, id := range []string{"a", "b", "c"} {
		if _, ok := m[id]; !ok {
			t.Errorf("missing entry for %q", id)
		}
	}
	if len(m) != 3 {
		t.Errorf("got %d entries, want 3", len(m))
	}
}

func TestResolve_FailSoft(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		repo *stubRepo
		dir  *stubDirectory
	}{
		{"call fetch fails", &stubRepo{findErr: boom}, &stubDirectory{}},
		{"transcript fetch fails", &stubRepo{call: mustCall(t, nil), trErr: boom}, &stubDirectory{}},
		{"directory fails", &stubRepo{call: mustCall(t, nil), transcript: transcriptFor("p1")}, &stubDirectory{err: boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := speaker.NewResolver(tt.repo, tt.dir, zerolog.Nop()).Resolve(context.Background(), "c-1", nil)
			if len(m) != 0 {
				t.Errorf("got %d entries, want empty map", len(m))
			}
		})
	}
}

func TestResolve_DetailsSkipFetch(t *testing.T) {
	repo := &stubRepo{transcript: transcriptFor("p1")}
	details := mustCall(t, []call.Participant{
		call.NewParticipant("p1", "Alice", "", "", "", "", ""),
	})

	m := speaker.NewResolver(repo, &stubDirectory{}, zerolog.Nop()).Resolve(context.Background(), "c-1", details)

	if repo.findCalls != 0 {
		t.Errorf("FindByID called %d times, want 0", repo.findCalls)
	}
	if m["p1"].Name != "Alice" {
		t.Errorf("got %q", m["p1"].Name)
	}
}
