package call

// Speaker is the resolved identity behind one transcript speaker id.
// It is a per-call projection merged from participants, the user
// directory and synthesized placeholders; it is never persisted.
type Speaker struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	Company string `json:"company,omitempty"`
}

// SpeakerMap maps transcript speaker ids to resolved speakers.
// It is total over the ids observed in a call's transcript.
type SpeakerMap map[string]Speaker

// Resolve returns the speaker for id, synthesizing a placeholder when the
// map has no entry. Callers therefore never see an unnamed speaker.
func (m SpeakerMap) Resolve(id string) Speaker {
	if s, ok := m[id]; ok {
		return s
	}
	return PlaceholderSpeaker(id)
}

// PlaceholderSpeaker synthesizes an identity for an id no source resolved.
func PlaceholderSpeaker(id string) Speaker {
	return Speaker{ID: id, Name: "Person " + ShortID(id), Company: "Unknown"}
}

// ShortID returns the first four characters of an id, or the whole id when
// it is shorter.
func ShortID(id string) string {
	if len(id) > 4 {
		return id[:4]
	}
	return id
}
