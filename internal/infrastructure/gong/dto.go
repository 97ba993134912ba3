package gong

import "encoding/json"

// CallDTO mirrors one call record as returned by the Gong API. Every field
// except the id is optional upstream; normalization to the domain model
// happens in this package and nowhere else.
type CallDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Scheduled string `json:"scheduled,omitempty"`
	Started   string `json:"started,omitempty"`
	// StartTime is an older field some records carry instead of started.
	StartTime string `json:"startTime,omitempty"`
	Duration  int    `json:"duration,omitempty"`
	Direction string `json:"direction,omitempty"`
	System    string `json:"system,omitempty"`
	Scope     string `json:"scope,omitempty"`
	Media     string `json:"media,omitempty"`
	Language  string `json:"language,omitempty"`
	URL       string `json:"url,omitempty"`
	// Transcript presence on the record signals transcript availability;
	// the content itself is fetched through the transcript endpoint.
	Transcript json.RawMessage `json:"transcript,omitempty"`
	Parties    []PartyDTO      `json:"parties,omitempty"`
}

// PartyDTO is one participant on a call. speakerId, when present, is the id
// transcript sentences are attributed to.
type PartyDTO struct {
	ID        string `json:"id,omitempty"`
	SpeakerID string `json:"speakerId,omitempty"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"emailAddress,omitempty"`
	Role      string `json:"affiliation,omitempty"`
	Company   string `json:"companyName,omitempty"`
}

// RecordsDTO carries cursor pagination metadata.
type RecordsDTO struct {
	TotalRecords    int    `json:"totalRecords,omitempty"`
	CurrentPageSize int    `json:"currentPageSize,omitempty"`
	Cursor          string `json:"cursor,omitempty"`
}

type CallListResponse struct {
	Calls   []CallDTO  `json:"calls"`
	Records RecordsDTO `json:"records"`
}

type CallResponse struct {
	Call CallDTO `json:"call"`
}

// UserDTO mirrors one directory record. Some deployments report the address
// under email instead of emailAddress; active is absent unless explicitly
// set by the platform.
type UserDTO struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Email        string `json:"email,omitempty"`
	Title        string `json:"title,omitempty"`
	Active       *bool  `json:"active,omitempty"`
	Created      string `json:"created,omitempty"`
}

type UserListResponse struct {
	Users   []UserDTO  `json:"users"`
	Records RecordsDTO `json:"records"`
}

// TranscriptRequest is the POST body for the transcript endpoint.
type TranscriptRequest struct {
	Filter TranscriptFilter `json:"filter"`
}

type TranscriptFilter struct {
	CallIDs []string `json:"callIds"`
}

type TranscriptResponse struct {
	CallTranscripts []CallTranscriptDTO `json:"callTranscripts"`
}

type CallTranscriptDTO struct {
	CallID     string       `json:"callId"`
	Transcript []SegmentDTO `json:"transcript"`
}

type SegmentDTO struct {
	SpeakerID string        `json:"speakerId"`
	Topic     string        `json:"topic,omitempty"`
	Sentences []SentenceDTO `json:"sentences"`
}

// SentenceDTO timestamps are millisecond offsets into the call.
type SentenceDTO struct {
	Start int64  `json:"start"`
	End   int64  `json:"end,omitempty"`
	Text  string `json:"text"`
}
