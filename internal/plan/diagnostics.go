package plan

// Entities holds cross-cutting extraction results attached to every
// planning result for explainability and downstream slot-filling.
// They never change which plan wins.
type Entities struct {
	// Medications are entries from the user's list mentioned in the
	// utterance.
	Medications []Medication `json:"medications,omitempty"`

	// TimeRangeDays is the detected time range as a day count.
	TimeRangeDays *int `json:"time_range_days,omitempty"`

	// Ordinal is a detected ordinal ("zweiter" -> 2).
	Ordinal *int `json:"ordinal,omitempty"`

	// Numbers are the bare integers found in the utterance, in order.
	Numbers []int `json:"numbers,omitempty"`
}

// Candidate is one skill's scored match, kept for diagnostics.
type Candidate struct {
	SkillID    string   `json:"skill_id"`
	Label      string   `json:"label"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons,omitempty"`
}

// Diagnostics explains how a plan was reached. Advisory only.
type Diagnostics struct {
	CanonicalText string      `json:"canonical_text"`
	Operator      string      `json:"operator,omitempty"`
	Candidates    []Candidate `json:"candidates,omitempty"`
	Entities      Entities    `json:"entities"`
	ElapsedMs     int64       `json:"elapsed_ms"`

	// NoiseReason is set when the noise guard rejected the input.
	NoiseReason string `json:"noise_reason,omitempty"`

	// SafetyDowngrade names the policy rule that replaced or wrapped
	// the winning plan, distinguishing policy decisions from plain
	// no-match results.
	SafetyDowngrade string `json:"safety_downgrade,omitempty"`
}

// Result pairs the decided plan with its diagnostics.
type Result struct {
	Plan        *Plan       `json:"plan"`
	Diagnostics Diagnostics `json:"diagnostics"`
}
