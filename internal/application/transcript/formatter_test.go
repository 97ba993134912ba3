package transcript_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ebeckman/gong-mcp/internal/application/speaker"
	"github.com/ebeckman/gong-mcp/internal/application/transcript"
	"github.com/ebeckman/gong-mcp/internal/domain/call"
	userdomain "github.com/ebeckman/gong-mcp/internal/domain/user"
)

type stubRepo struct {
	call       *call.Call
	transcript *call.Transcript
	findErr    error
	trErr      error
}

func (s *stubRepo) FindByID(ctx context.Context, id call.ID) (*call.Call, error) {
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

type emptyDirectory struct{}

func (emptyDirectory) GetAllUsers(ctx context.Context, forceRefresh bool) ([]userdomain.User, error) {
	return nil, nil
}

func newFormatter(repo *stubRepo) *transcript.Formatter {
	resolver := speaker.NewResolver(repo, emptyDirectory{}, zerolog.Nop())
	return transcript.NewFormatter(repo, resolver)
}

func testCall(t *testing.T) *call.Call {
	t.Helper()
	c, err := call.New("c-1", "Weekly Sync", call.Attributes{
		Started:  "2026-01-05T10:00:00Z",
		Duration: 1800,
		Participants: []call.Participant{
			call.NewParticipant("p1", "Alice", "", "", "", "", ""),
			call.NewParticipant("p2", "Bob", "", "", "", "", ""),
		},
	})
	if err != nil {
		t.Fatalf("building call: %v", err)
	}
	return c
}

func TestFormatMs(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0:00"},
		{999, "0:00"},
		{1000, "0:01"},
		{65000, "1:05"},
		{599999, "9:59"},
		{600000, "10:00"},
		{3723000, "62:03"},
		{-5, "0:00"},
	}
	for _, tt := range tests {
		if got := transcript.FormatMs(tt.ms); got != tt.want {
			t.Errorf("FormatMs(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestExecute_GroupsByTopic(t *testing.T) {
	repo := &stubRepo{
		call: testCall(t),
		transcript: call.NewTranscript("c-1", []call.Segment{
			call.NewSegment("p1", "Intro", []call.Sentence{
				call.NewSentence(0, "Hi everyone."),
				call.NewSentence(4000, "Let's get started."),
			}),
			call.NewSegment("p2", "Intro", []call.Sentence{
				call.NewSentence(8000, "Sounds good."),
			}),
			call.NewSegment("p1", "Pricing", []call.Sentence{
				call.NewSentence(60000, "On to pricing."),
			}),
		}),
	}

	out, err := newFormatter(repo).Execute(context.Background(), transcript.Input{CallID: "c-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := out.Formatted
	if f == nil {
		t.Fatal("expected formatted output")
	}

	if len(f.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(f.Sections))
	}
	intro := f.Sections[0]
	if intro.Topic != "Intro" {
		t.Errorf("topic = %q", intro.Topic)
	}
	if intro.TimeRange != "0:00 - 0:08" {
		t.Errorf("timeRange = %q", intro.TimeRange)
	}
	if len(intro.Exchanges) != 2 {
		t.Fatalf("got %d exchanges", len(intro.Exchanges))
	}
	if intro.Exchanges[0].Speaker != "Alice" || intro.Exchanges[0].Text != "Hi everyone. Let's get started." {
		t.Errorf("exchange[0] = %+v", intro.Exchanges[0])
	}
	if intro.Exchanges[0].Timestamp != "0:00" {
		t.Errorf("timestamp = %q", intro.Exchanges[0].Timestamp)
	}
	if intro.Exchanges[1].Speaker != "Bob" {
		t.Errorf("exchange[1] speaker = %q", intro.Exchanges[1].Speaker)
	}

	pricing := f.Sections[1]
	if pricing.Topic != "Pricing" || pricing.TimeRange != "1:00 - 1:00" {
		t.Errorf("section[1] = %+v", pricing)
	}

	if f.Call.Title != "Weekly Sync" || f.Call.Date != "2026-01-05T10:00:00Z" {
		t.Errorf("call info = %+v", f.Call)
	}
	if len(f.Call.Participants) != 2 {
		t.Errorf("got %d participants", len(f.Call.Participants))
	}
}

func TestExecute_UntitledTopicDefault(t *testing.T) {
	repo := &stubRepo{
		call: testCall(t),
		transcript: call.NewTranscript("c-1", []call.Segment{
			call.NewSegment("p1", "", []call.Sentence{call.NewSentence(0, "Hello.")}),
		}),
	}

	out, err := newFormatter(repo).Execute(context.Background(), transcript.Input{CallID: "c-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Formatted.Sections[0].Topic != "Untitled Topic" {
		t.Errorf("topic = %q", out.Formatted.Sections[0].Topic)
	}
}

func TestExecute_SectionOrderIsLexicographic(t *testing.T) {
	// A section starting at 10:00 sorts before one starting at 2:00.
	repo := &stubRepo{
		call: testCall(t),
		transcript: call.NewTranscript("c-1", []call.Segment{
			call.NewSegment("p1", "Early", []call.Sentence{call.NewSentence(120000, "Early topic.")}),
			call.NewSegment("p1", "Late", []call.Sentence{call.NewSentence(600000, "Late topic.")}),
		}),
	}

	out, err := newFormatter(repo).Execute(context.Background(), transcript.Input{CallID: "c-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sections := out.Formatted.Sections
	if sections[0].Topic != "Late" || sections[1].Topic != "Early" {
		t.Errorf("got order [%s, %s], want [Late, Early]", sections[0].Topic, sections[1].Topic)
	}
}

func TestExecute_Truncation(t *testing.T) {
	repo := &stubRepo{
		call: testCall(t),
		transcript: call.NewTranscript("c-1", []call.Segment{
			call.NewSegment("p1", "Intro", []call.Sentence{
				call.NewSentence(0, "one"),
				call.NewSentence(1000, "two"),
				call.NewSentence(2000, "three"),
			}),
			call.NewSegment("p2", "Intro", []call.Sentence{call.NewSentence(3000, "four")}),
			call.NewSegment("p1", "Next", []call.Sentence{call.NewSentence(9000, "five")}),
		}),
	}

	out, err := newFormatter(repo).Execute(context.Background(), transcript.Input{
		CallID:       "c-1",
		MaxSegments:  2,
		MaxSentences: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sections := out.Formatted.Sections

	// The third segment is cut by MaxSegments, so only one section remains.
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if sections[0].Exchanges[0].Text != "one two" {
		t.Errorf("text = %q, want sentences capped at 2", sections[0].Exchanges[0].Text)
	}
	// The range still spans every sentence of the kept segments.
	if sections[0].TimeRange != "0:00 - 0:03" {
		t.Errorf("timeRange = %q", sections[0].TimeRange)
	}
}

func TestExecute_RawFormat(t *testing.T) {
	repo := &stubRepo{
		call: testCall(t),
		transcript: call.NewTranscript("c-1", []call.Segment{
			call.NewSegment("p1", "Intro", []call.Sentence{call.NewSentence(65000, "Hello there.")}),
		}),
	}

	out, err := newFormatter(repo).Execute(context.Background(), transcript.Input{
		CallID: "c-1",
		Format: transcript.FormatRaw,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Formatted != nil {
		t.Error("raw output should not carry a formatted rendering")
	}
	raw := out.Raw
	if raw == nil {
		t.Fatal("expected raw output")
	}
	if len(raw.Transcript) != 1 {
		t.Fatalf("got %d segments", len(raw.Transcript))
	}
	seg := raw.Transcript[0]
	if seg.Speaker != "Alice" || seg.Topic != "Intro" {
		t.Errorf("segment = %+v", seg)
	}
	if seg.Sentences[0].Timestamp != "1:05" || seg.Sentences[0].Text != "Hello there." {
		t.Errorf("sentence = %+v", seg.Sentences[0])
	}
	// Raw call info omits the participant list.
	if raw.Call.Participants != nil {
		t.Error("raw call info should not include participants")
	}
}

func TestExecute_Errors(t *testing.T) {
	boom := errors.New("boom")

	if _, err := newFormatter(&stubRepo{}).Execute(context.Background(), transcript.Input{}); err != call.ErrInvalidCallID {
		t.Errorf("got %v, want %v", err, call.ErrInvalidCallID)
	}

	repo := &stubRepo{call: testCall(t), trErr: boom}
	if _, err := newFormatter(repo).Execute(context.Background(), transcript.Input{CallID: "c-1"}); !errors.Is(err, boom) {
		t.Errorf("transcript errors should propagate, got %v", err)
	}

	repo = &stubRepo{
		call:       testCall(t),
		transcript: call.NewTranscript("c-1", nil),
	}
	if _, err := newFormatter(repo).Execute(context.Background(), transcript.Input{CallID: "c-1", Format: "xml"}); !errors.Is(err, transcript.ErrUnsupportedFormat) {
		t.Errorf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestExecute_SpeakersInFirstAppearanceOrder(t *testing.T) {
	repo := &stubRepo{
		call: testCall(t),
		transcript: call.NewTranscript("c-1", []call.Segment{
			call.NewSegment("p2", "", []call.Sentence{call.NewSentence(0, "a")}),
			call.NewSegment("p1", "", []call.Sentence{call.NewSentence(1000, "b")}),
			call.NewSegment("p2", "", []call.Sentence{call.NewSentence(2000, "c")}),
		}),
	}

	out, err := newFormatter(repo).Execute(context.Background(), transcript.Input{CallID: "c-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Speakers) != 2 {
		t.Fatalf("got %d speakers", len(out.Speakers))
	}
	if out.Speakers[0].Name != "Bob" || out.Speakers[1].Name != "Alice" {
		t.Errorf("got [%s, %s], want first-appearance order", out.Speakers[0].Name, out.Speakers[1].Name)
	}
}
