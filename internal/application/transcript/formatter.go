// Package transcript converts flat chronological transcripts into
// topic-grouped, time-ranged sections of speaker exchanges.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ebeckman/gong-mcp/internal/application/speaker"
	"github.com/ebeckman/gong-mcp/internal/domain/call"
)

// Format selects the output fidelity. Concise and full currently share the
// same grouping pipeline; the distinction is reserved for future tuning.
type Format string

const (
	FormatRaw     Format = "raw"
	FormatConcise Format = "concise"
	FormatFull    Format = "full"
)

var ErrUnsupportedFormat = errors.New("unsupported transcript format")

const untitledTopic = "Untitled Topic"

type Input struct {
	CallID       call.ID
	Format       Format
	MaxSegments  int
	MaxSentences int
}

// CallInfo is the call metadata attached to a formatted transcript.
type CallInfo struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Date         string         `json:"date"`
	Duration     int            `json:"duration"`
	Participants []call.Speaker `json:"participants,omitempty"`
}

// Exchange is one formatted unit: a speaker plus the concatenated text of
// one original segment.
type Exchange struct {
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Section is a topic-grouped collection of exchanges with its time range.
type Section struct {
	Topic     string     `json:"topic"`
	TimeRange string     `json:"timeRange"`
	Exchanges []Exchange `json:"exchanges"`
}

type FormattedTranscript struct {
	Call     CallInfo  `json:"call"`
	Sections []Section `json:"sections"`
}

type RawSentence struct {
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

type RawSegment struct {
	Speaker   string        `json:"speaker"`
	Topic     string        `json:"topic,omitempty"`
	Sentences []RawSentence `json:"sentences"`
}

type RawTranscript struct {
	Call       CallInfo     `json:"call"`
	Transcript []RawSegment `json:"transcript"`
}

// Output carries exactly one of Formatted or Raw, plus the resolved
// speakers for callers that need the participant list.
type Output struct {
	Formatted *FormattedTranscript
	Raw       *RawTranscript
	Speakers  []call.Speaker
}

// Payload returns whichever rendering was produced, for serialization.
func (o *Output) Payload() interface{} {
	if o.Raw != nil {
		return o.Raw
	}
	return o.Formatted
}

// Formatter fetches a call's transcript and renders it in the requested
// format. Unlike speaker resolution, fetch failures here propagate.
type Formatter struct {
	repo     call.Repository
	resolver *speaker.Resolver
}

func NewFormatter(repo call.Repository, resolver *speaker.Resolver) *Formatter {
	return &Formatter{repo: repo, resolver: resolver}
}

func (f *Formatter) Execute(ctx context.Context, input Input) (*Output, error) {
	if input.CallID == "" {
		return nil, call.ErrInvalidCallID
	}

	details, err := f.repo.FindByID(ctx, input.CallID)
	if err != nil {
		return nil, err
	}
	transcript, err := f.repo.GetTranscript(ctx, input.CallID)
	if err != nil {
		return nil, err
	}
	speakers := f.resolver.Resolve(ctx, input.CallID, details)

	info := CallInfo{
		ID:       string(details.ID()),
		Title:    details.Title(),
		Date:     details.Started(),
		Duration: details.Duration(),
	}
	resolved := resolvedSpeakers(transcript, speakers)

	switch input.Format {
	case FormatRaw:
		return &Output{Raw: formatRaw(info, transcript, speakers), Speakers: resolved}, nil
	case FormatConcise, FormatFull, "":
		info.Participants = resolved
		formatted := formatSections(info, transcript, speakers, input.MaxSegments, input.MaxSentences)
		return &Output{Formatted: formatted, Speakers: resolved}, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// resolvedSpeakers lists the call's speakers in order of first appearance.
func resolvedSpeakers(t *call.Transcript, speakers call.SpeakerMap) []call.Speaker {
	ids := t.SpeakerIDs()
	out := make([]call.Speaker, 0, len(ids))
	for _, id := range ids {
		out = append(out, speakers.Resolve(id))
	}
	return out
}

func formatRaw(info CallInfo, t *call.Transcript, speakers call.SpeakerMap) *RawTranscript {
	segments := make([]RawSegment, 0, len(t.Segments()))
	for _, seg := range t.Segments() {
		sentences := make([]RawSentence, len(seg.Sentences()))
		for i, s := range seg.Sentences() {
			sentences[i] = RawSentence{Timestamp: FormatMs(s.Start()), Text: s.Text()}
		}
		segments = append(segments, RawSegment{
			Speaker:   speakers.Resolve(seg.SpeakerID()).Name,
			Topic:     seg.Topic(),
			Sentences: sentences,
		})
	}
	return &RawTranscript{Call: info, Transcript: segments}
}

func formatSections(info CallInfo, t *call.Transcript, speakers call.SpeakerMap, maxSegments, maxSentences int) *FormattedTranscript {
	segments := t.Segments()
	if maxSegments > 0 && len(segments) > maxSegments {
		segments = segments[:maxSegments]
	}

	// Group by topic, preserving first-seen topic order.
	groups := map[string][]call.Segment{}
	var topics []string
	for _, seg := range segments {
		topic := seg.Topic()
		if topic == "" {
			topic = untitledTopic
		}
		if _, ok := groups[topic]; !ok {
			topics = append(topics, topic)
		}
		groups[topic] = append(groups[topic], seg)
	}

	sections := make([]Section, 0, len(topics))
	for _, topic := range topics {
		sections = append(sections, buildSection(topic, groups[topic], speakers, maxSentences))
	}

	// Sections keep the upstream ordering contract: the range start string
	// compares lexicographically, not numerically, so "10:00" sorts before
	// "2:00". Consumers depend on this exact ordering.
	sort.SliceStable(sections, func(i, j int) bool {
		return sectionStart(sections[i]) < sectionStart(sections[j])
	})

	return &FormattedTranscript{Call: info, Sections: sections}
}

func buildSection(topic string, segments []call.Segment, speakers call.SpeakerMap, maxSentences int) Section {
	// The time range spans every sentence of the group, computed before any
	// per-exchange sentence truncation.
	var minStart, maxStart int64
	seen := false
	for _, seg := range segments {
		for _, s := range seg.Sentences() {
			if !seen || s.Start() < minStart {
				minStart = s.Start()
			}
			if !seen || s.Start() > maxStart {
				maxStart = s.Start()
			}
			seen = true
		}
	}
	if !seen {
		minStart, maxStart = 0, 0
	}

	exchanges := make([]Exchange, 0, len(segments))
	for _, seg := range segments {
		sentences := seg.Sentences()
		if len(sentences) == 0 {
			continue
		}
		if maxSentences > 0 && len(sentences) > maxSentences {
			sentences = sentences[:maxSentences]
		}
		texts := make([]string, len(sentences))
		for i, s := range sentences {
			texts[i] = s.Text()
		}
		exchanges = append(exchanges, Exchange{
			Speaker:   speakers.Resolve(seg.SpeakerID()).Name,
			Text:      strings.Join(texts, " "),
			Timestamp: FormatMs(sentences[0].Start()),
		})
	}

	return Section{
		Topic:     topic,
		TimeRange: fmt.Sprintf("%s - %s", FormatMs(minStart), FormatMs(maxStart)),
		Exchanges: exchanges,
	}
}

func sectionStart(s Section) string {
	if idx := strings.Index(s.TimeRange, " - "); idx >= 0 {
		return s.TimeRange[:idx]
	}
	return s.TimeRange
}

// FormatMs renders a millisecond offset as m:ss, minutes unpadded and
// seconds zero-padded to two digits.
func FormatMs(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%d:%02d", ms/60000, (ms%60000)/1000)
}
