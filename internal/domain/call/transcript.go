package call

// Sentence is one spoken sentence with its millisecond offset into the call.
type Sentence struct {
	start int64
	text  string
}

func NewSentence(start int64, text string) Sentence {
	return Sentence{start: start, text: text}
}

func (s Sentence) Start() int64 { return s.start }
func (s Sentence) Text() string { return s.text }

// Segment is a contiguous block of sentences attributed to one speaker,
// optionally tagged with a topic by the platform.
type Segment struct {
	speakerID string
	topic     string
	sentences []Sentence
}

func NewSegment(speakerID, topic string, sentences []Sentence) Segment {
	if sentences == nil {
		sentences = []Sentence{}
	}
	return Segment{speakerID: speakerID, topic: topic, sentences: sentences}
}

func (s Segment) SpeakerID() string     { return s.speakerID }
func (s Segment) Topic() string         { return s.topic }
func (s Segment) Sentences() []Sentence { return s.sentences }

// Transcript is the raw, chronologically ordered transcript of one call.
type Transcript struct {
	callID   ID
	segments []Segment
}

func NewTranscript(callID ID, segments []Segment) *Transcript {
	if segments == nil {
		segments = []Segment{}
	}
	return &Transcript{callID: callID, segments: segments}
}

func (t *Transcript) CallID() ID         { return t.callID }
func (t *Transcript) Segments() []Segment { return t.segments }

// SpeakerIDs returns the distinct speaker ids in order of first appearance.
// This set is authoritative: every id in it must resolve to a speaker.
func (t *Transcript) SpeakerIDs() []string {
	seen := make(map[string]struct{}, len(t.segments))
	var ids []string
	for _, seg := range t.segments {
		if _, ok := seen[seg.speakerID]; ok {
			continue
		}
		seen[seg.speakerID] = struct{}{}
		ids = append(ids, seg.speakerID)
	}
	return ids
}
