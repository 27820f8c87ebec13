package plan

import "fmt"

// Risk classifies how much damage a plan can do if executed wrongly.
type Risk string

const (
	RiskLow    Risk = "low"    // navigation, read-only queries
	RiskMedium Risk = "medium" // creates, edits, ratings
	RiskHigh   Risk = "high"   // deletes; never auto-executed
)

// Kind discriminates the Plan union.
type Kind string

const (
	KindNavigate     Kind = "navigate"
	KindOpenEntry    Kind = "open_entry"
	KindOpenList     Kind = "open_list"
	KindQuery        Kind = "query"
	KindMutation     Kind = "mutation"
	KindConfirm      Kind = "confirm"
	KindSlotFilling  Kind = "slot_filling"
	KindNotSupported Kind = "not_supported"
)

// Plan is the planner's decision for one turn. Exactly one variant
// field matching Kind is non-nil; use the New* constructors and check
// with Validate.
type Plan struct {
	Kind       Kind    `json:"kind"`
	Confidence float64 `json:"confidence"`
	Summary    string  `json:"summary"`

	Navigate     *Navigate     `json:"navigate,omitempty"`
	OpenEntry    *OpenEntry    `json:"open_entry,omitempty"`
	OpenList     *OpenList     `json:"open_list,omitempty"`
	Query        *Query        `json:"query,omitempty"`
	Mutation     *Mutation     `json:"mutation,omitempty"`
	Confirm      *Confirm      `json:"confirm,omitempty"`
	SlotFilling  *SlotFilling  `json:"slot_filling,omitempty"`
	NotSupported *NotSupported `json:"not_supported,omitempty"`
}

// Navigate switches the UI to a named view.
type Navigate struct {
	TargetView string            `json:"target_view"`
	Payload    map[string]string `json:"payload,omitempty"`
}

// OpenEntry opens one diary entry by ID.
type OpenEntry struct {
	EntryID string `json:"entry_id"`
}

// OpenList opens a filtered list view.
type OpenList struct {
	ListType string            `json:"list_type"`
	Filter   map[string]string `json:"filter,omitempty"`
}

// QueryType names a read-only question the caller answers from storage.
type QueryType string

const (
	QueryEntryCount QueryType = "entry_count"
	QueryMedStats   QueryType = "med_stats"
)

// Query describes a read-only question. The caller executes it and
// fills Result before presenting the plan to the user.
type Query struct {
	QueryType QueryType         `json:"query_type"`
	Params    map[string]string `json:"params,omitempty"`
	Result    map[string]any    `json:"result,omitempty"`
}

// MutationType names a committed write the caller performs.
type MutationType string

const (
	MutationCreateReminder  MutationType = "create_reminder"
	MutationEditReminder    MutationType = "edit_reminder"
	MutationDeleteReminder  MutationType = "delete_reminder"
	MutationCreateNote      MutationType = "create_note"
	MutationRateIntake      MutationType = "rate_intake"
	MutationCreatePainEntry MutationType = "create_pain_entry"
	MutationDeleteEntry     MutationType = "delete_entry"
)

// IsDeleteFamily reports whether the mutation type is irreversible
// deletion. Delete-family mutations always carry RiskHigh.
func IsDeleteFamily(t MutationType) bool {
	return t == MutationDeleteReminder || t == MutationDeleteEntry
}

// Mutation describes a write. Exactly one payload field matching
// MutationType is non-nil.
type Mutation struct {
	MutationType MutationType `json:"mutation_type"`
	Risk         Risk         `json:"risk"`

	CreateReminder  *CreateReminderPayload  `json:"create_reminder,omitempty"`
	EditReminder    *EditReminderPayload    `json:"edit_reminder,omitempty"`
	DeleteReminder  *DeleteReminderPayload  `json:"delete_reminder,omitempty"`
	CreateNote      *CreateNotePayload      `json:"create_note,omitempty"`
	RateIntake      *RateIntakePayload      `json:"rate_intake,omitempty"`
	CreatePainEntry *CreatePainEntryPayload `json:"create_pain_entry,omitempty"`
	DeleteEntry     *DeleteEntryPayload     `json:"delete_entry,omitempty"`

	Undo *UndoSpec `json:"undo,omitempty"`
}

// CreateReminderPayload schedules a daily medication reminder.
type CreateReminderPayload struct {
	Medication   string `json:"medication"`
	MedicationID string `json:"medication_id,omitempty"`
	Time         string `json:"time"` // "HH:MM", 24h
}

// EditReminderPayload moves an existing reminder to a new time.
type EditReminderPayload struct {
	ReminderID string `json:"reminder_id,omitempty"`
	Medication string `json:"medication"`
	NewTime    string `json:"new_time"`
}

// DeleteReminderPayload removes a reminder, addressed by ID or by
// medication name.
type DeleteReminderPayload struct {
	ReminderID string `json:"reminder_id,omitempty"`
	Medication string `json:"medication,omitempty"`
}

// CreateNotePayload stores a free-text note.
type CreateNotePayload struct {
	Text string `json:"text"`
}

// RateIntakePayload records how well a medication worked (0-10).
type RateIntakePayload struct {
	Medication   string `json:"medication"`
	MedicationID string `json:"medication_id,omitempty"`
	Rating       int    `json:"rating"`
}

// CreatePainEntryPayload records a quick pain-level diary entry (0-10).
type CreatePainEntryPayload struct {
	Level int    `json:"level"`
	Note  string `json:"note,omitempty"`
}

// DeleteEntryPayload removes one diary entry.
type DeleteEntryPayload struct {
	EntryID string `json:"entry_id"`
}

// UndoSpec describes how to revert a mutation within a time window.
// The planner only describes the window; the caller owns the timer.
type UndoSpec struct {
	WindowMs int64 `json:"window_ms"`
	UndoPlan *Plan `json:"undo_plan"`
}

// ConfirmType distinguishes why the planner is asking back.
type ConfirmType string

const (
	ConfirmDanger    ConfirmType = "danger"    // destructive action, always confirmed
	ConfirmAmbiguous ConfirmType = "ambiguous" // several close candidates
)

// Confirm asks the user before committing. Pending holds the plan to
// run on "yes"; for ambiguous confirms Alternatives carries the other
// close candidates as selectable choices.
type Confirm struct {
	ConfirmType  ConfirmType `json:"confirm_type"`
	Question     string      `json:"question"`
	Pending      *Plan       `json:"pending"`
	Alternatives []*Plan     `json:"alternatives,omitempty"`
}

// SlotFilling asks for the single next missing piece of information.
type SlotFilling struct {
	MissingSlot string      `json:"missing_slot"`
	Prompt      string      `json:"prompt"`
	Suggestions []string    `json:"suggestions,omitempty"`
	Partial     PartialPlan `json:"partial"`
}

// PartialPlan identifies a target skill and the slot values collected
// so far across dialogue turns. Confidence is the match confidence of
// the turn that started the dialogue, carried through to the final
// plan.
type PartialPlan struct {
	SkillID    string               `json:"skill_id"`
	Confidence float64              `json:"confidence,omitempty"`
	Slots      map[string]SlotValue `json:"slots,omitempty"`

	// RawText is the utterance that started the dialogue. The safety
	// policy checks its explicit operator words even when the plan is
	// completed turns later.
	RawText string `json:"raw_text,omitempty"`
}

// NotSupported tells the user the utterance could not be turned into
// an action, with suggestions for what to try instead.
type NotSupported struct {
	Reason      string   `json:"reason"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// SlotValue is one extracted slot. At most one field is set; the
// zero value means "not provided".
type SlotValue struct {
	Text       string      `json:"text,omitempty"`
	Number     *int        `json:"number,omitempty"`
	Medication *Medication `json:"medication,omitempty"`
	Days       *int        `json:"days,omitempty"`
}

// TextSlot wraps a string slot value.
func TextSlot(s string) SlotValue { return SlotValue{Text: s} }

// NumberSlot wraps an integer slot value.
func NumberSlot(n int) SlotValue { return SlotValue{Number: &n} }

// MedicationSlot wraps a medication slot value.
func MedicationSlot(m Medication) SlotValue { return SlotValue{Medication: &m} }

// DaysSlot wraps a time-range slot value (a day count).
func DaysSlot(d int) SlotValue { return SlotValue{Days: &d} }

// IsZero reports whether no value has been provided.
func (v SlotValue) IsZero() bool {
	return v.Text == "" && v.Number == nil && v.Medication == nil && v.Days == nil
}

// Constructors. Each produces a Plan with exactly one variant set.

func NewNavigate(confidence float64, summary string, n Navigate) *Plan {
	return &Plan{Kind: KindNavigate, Confidence: confidence, Summary: summary, Navigate: &n}
}

func NewOpenEntry(confidence float64, summary string, o OpenEntry) *Plan {
	return &Plan{Kind: KindOpenEntry, Confidence: confidence, Summary: summary, OpenEntry: &o}
}

func NewOpenList(confidence float64, summary string, o OpenList) *Plan {
	return &Plan{Kind: KindOpenList, Confidence: confidence, Summary: summary, OpenList: &o}
}

func NewQuery(confidence float64, summary string, q Query) *Plan {
	return &Plan{Kind: KindQuery, Confidence: confidence, Summary: summary, Query: &q}
}

// NewMutation builds a mutation plan. Delete-family mutations are
// forced to RiskHigh regardless of the risk passed in.
func NewMutation(confidence float64, summary string, m Mutation) *Plan {
	if IsDeleteFamily(m.MutationType) {
		m.Risk = RiskHigh
	}
	return &Plan{Kind: KindMutation, Confidence: confidence, Summary: summary, Mutation: &m}
}

func NewConfirm(confidence float64, summary string, c Confirm) *Plan {
	return &Plan{Kind: KindConfirm, Confidence: confidence, Summary: summary, Confirm: &c}
}

func NewSlotFilling(confidence float64, summary string, s SlotFilling) *Plan {
	return &Plan{Kind: KindSlotFilling, Confidence: confidence, Summary: summary, SlotFilling: &s}
}

func NewNotSupported(summary string, n NotSupported) *Plan {
	return &Plan{Kind: KindNotSupported, Summary: summary, NotSupported: &n}
}

// Validate checks the one-active-variant invariant, and for mutations
// the one-active-payload invariant plus the delete/RiskHigh rule.
func (p *Plan) Validate() error {
	set := 0
	variants := map[Kind]bool{
		KindNavigate:     p.Navigate != nil,
		KindOpenEntry:    p.OpenEntry != nil,
		KindOpenList:     p.OpenList != nil,
		KindQuery:        p.Query != nil,
		KindMutation:     p.Mutation != nil,
		KindConfirm:      p.Confirm != nil,
		KindSlotFilling:  p.SlotFilling != nil,
		KindNotSupported: p.NotSupported != nil,
	}
	for _, present := range variants {
		if present {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("plan must have exactly one variant, has %d", set)
	}
	if !variants[p.Kind] {
		return fmt.Errorf("plan kind %q does not match its populated variant", p.Kind)
	}
	if p.Kind == KindMutation {
		return p.Mutation.validate()
	}
	return nil
}

func (m *Mutation) validate() error {
	set := 0
	payloads := map[MutationType]bool{
		MutationCreateReminder:  m.CreateReminder != nil,
		MutationEditReminder:    m.EditReminder != nil,
		MutationDeleteReminder:  m.DeleteReminder != nil,
		MutationCreateNote:      m.CreateNote != nil,
		MutationRateIntake:      m.RateIntake != nil,
		MutationCreatePainEntry: m.CreatePainEntry != nil,
		MutationDeleteEntry:     m.DeleteEntry != nil,
	}
	for _, present := range payloads {
		if present {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("mutation must have exactly one payload, has %d", set)
	}
	if !payloads[m.MutationType] {
		return fmt.Errorf("mutation type %q does not match its populated payload", m.MutationType)
	}
	if IsDeleteFamily(m.MutationType) && m.Risk != RiskHigh {
		return fmt.Errorf("delete mutation %q must carry high risk, has %q", m.MutationType, m.Risk)
	}
	return nil
}
