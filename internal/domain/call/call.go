// Package call contains the call domain model: calls, participants,
// transcripts and resolved speakers. It has no knowledge of the Gong
// API or of any transport concern.
package call

import (
	"errors"
	"strings"
)

var (
	ErrCallNotFound       = errors.New("call not found")
	ErrInvalidCallID      = errors.New("call id must not be empty")
	ErrTranscriptNotFound = errors.New("transcript not found")
)

// ID identifies a call. Opaque, platform-assigned.
type ID string

// Participant is one party on a call as reported by the platform.
// Its id, when present, is expected to match transcript speaker ids and
// directory user ids, but that correlation is best-effort only.
type Participant struct {
	id        string
	name      string
	firstName string
	lastName  string
	email     string
	role      string
	company   string
}

func NewParticipant(id, name, firstName, lastName, email, role, company string) Participant {
	return Participant{
		id:        id,
		name:      name,
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		role:      role,
		company:   company,
	}
}

func (p Participant) ID() string        { return p.id }
func (p Participant) Name() string      { return p.name }
func (p Participant) FirstName() string { return p.firstName }
func (p Participant) LastName() string  { return p.lastName }
func (p Participant) Email() string     { return p.email }
func (p Participant) Role() string      { return p.role }
func (p Participant) Company() string   { return p.company }

// DisplayName returns the best available name for the participant:
// the explicit name, else "firstName lastName" trimmed, else "".
func (p Participant) DisplayName() string {
	if p.name != "" {
		return p.name
	}
	return strings.TrimSpace(p.firstName + " " + p.lastName)
}

// Call is a normalized call record.
type Call struct {
	id            ID
	title         string
	scheduled     string
	started       string
	duration      int
	direction     string
	system        string
	scope         string
	media         string
	language      string
	url           string
	hasTranscript bool
	participants  []Participant
}

// Attributes groups the optional fields of a call for construction.
type Attributes struct {
	Scheduled     string
	Started       string
	Duration      int
	Direction     string
	System        string
	Scope         string
	Media         string
	Language      string
	URL           string
	HasTranscript bool
	Participants  []Participant
}

// New creates a call. An empty title normalizes to "Untitled Call";
// absent participants normalize to an empty slice.
func New(id ID, title string, attrs Attributes) (*Call, error) {
	if id == "" {
		return nil, ErrInvalidCallID
	}
	if title == "" {
		title = "Untitled Call"
	}
	participants := attrs.Participants
	if participants == nil {
		participants = []Participant{}
	}
	return &Call{
		id:            id,
		title:         title,
		scheduled:     attrs.Scheduled,
		started:       attrs.Started,
		duration:      attrs.Duration,
		direction:     attrs.Direction,
		system:        attrs.System,
		scope:         attrs.Scope,
		media:         attrs.Media,
		language:      attrs.Language,
		url:           attrs.URL,
		hasTranscript: attrs.HasTranscript,
		participants:  participants,
	}, nil
}

func (c *Call) ID() ID                      { return c.id }
func (c *Call) Title() string               { return c.title }
func (c *Call) Scheduled() string           { return c.scheduled }
func (c *Call) Started() string             { return c.started }
func (c *Call) Duration() int               { return c.duration }
func (c *Call) Direction() string           { return c.direction }
func (c *Call) System() string              { return c.system }
func (c *Call) Scope() string               { return c.scope }
func (c *Call) Media() string               { return c.media }
func (c *Call) Language() string            { return c.language }
func (c *Call) URL() string                 { return c.url }
func (c *Call) HasTranscript() bool         { return c.hasTranscript }
func (c *Call) Participants() []Participant { return c.participants }

// MarkTranscribed records that a transcript was actually fetched for the
// call. The transcript endpoint is authoritative: call records sometimes
// under-report transcript availability.
func (c *Call) MarkTranscribed() { c.hasTranscript = true }

// SetParticipants replaces the participant list, used when the transcript
// metadata carries a more complete resolved list than the call record.
func (c *Call) SetParticipants(participants []Participant) {
	if participants == nil {
		participants = []Participant{}
	}
	c.participants = participants
}
