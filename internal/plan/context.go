package plan

// Utterance is one raw user input to a planning cycle. Immutable.
type Utterance struct {
	// Text is the raw spoken or typed command.
	Text string `json:"text"`

	// STTConfidence is the optional speech-recognition confidence (0-1).
	STTConfidence *float64 `json:"stt_confidence,omitempty"`
}

// Medication is one entry from the user's known medication list.
type Medication struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// UserContext is the read-only snapshot the planner consumes. Owned
// by the caller; the planner never mutates it.
type UserContext struct {
	// Medications is the user's known medication list, used for
	// medication slot extraction.
	Medications []Medication `json:"medications,omitempty"`

	// RecentEntryIDs are the user's most recent diary entry IDs,
	// newest first.
	RecentEntryIDs []string `json:"recent_entry_ids,omitempty"`

	// Timezone is an IANA zone name, e.g. "Europe/Berlin".
	Timezone string `json:"timezone,omitempty"`

	// Language is a BCP 47 tag, e.g. "de-DE".
	Language string `json:"language,omitempty"`
}

// LatestEntryID returns the most recent entry ID, or "" if none.
func (c UserContext) LatestEntryID() string {
	if len(c.RecentEntryIDs) == 0 {
		return ""
	}
	return c.RecentEntryIDs[0]
}
