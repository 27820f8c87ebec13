// Package dialog tracks a partially-specified plan across follow-up
// turns until every required slot is filled or the user cancels. A
// State belongs to exactly one conversation; transitions are pure and
// return new values.
package dialog

import (
	"strings"

	"github.com/hpungsan/voxplan/internal/lexicon"
	"github.com/hpungsan/voxplan/internal/plan"
	"github.com/hpungsan/voxplan/internal/skill"
)

// State is the slot-filling progress for one skill.
type State struct {
	SkillID string
	// Confidence is carried from the match that started the dialogue.
	Confidence float64
	// Filled are the collected slot values.
	Filled map[string]plan.SlotValue
	// Missing are the still-unmet required slot names, in the
	// skill's declared slot order.
	Missing []string

	decls []skill.SlotDef
}

// Init seeds a state from whatever the first utterance provided.
func Init(s *skill.Skill, confidence float64, initial map[string]plan.SlotValue) State {
	filled := make(map[string]plan.SlotValue, len(initial))
	for name, v := range initial {
		if !v.IsZero() {
			filled[name] = v
		}
	}
	return State{
		SkillID:    s.ID,
		Confidence: confidence,
		Filled:     filled,
		Missing:    s.MissingRequired(filled),
		decls:      s.Slots,
	}
}

// Restore rebuilds a state from a PartialPlan that crossed a
// turn boundary.
func Restore(s *skill.Skill, partial plan.PartialPlan) State {
	return Init(s, partial.Confidence, partial.Slots)
}

// IsComplete reports whether all required slots are filled.
func (st State) IsComplete() bool {
	return len(st.Missing) == 0
}

// NextSlot returns the declaration of the first unmet required slot.
func (st State) NextSlot() (skill.SlotDef, bool) {
	if len(st.Missing) == 0 {
		return skill.SlotDef{}, false
	}
	for _, d := range st.decls {
		if d.Name == st.Missing[0] {
			return d, true
		}
	}
	return skill.SlotDef{}, false
}

// Fill produces a new state with the slot set and completeness
// recomputed. Filling an already-filled slot is idempotent: last
// write wins. Zero values are ignored.
func (st State) Fill(name string, v plan.SlotValue) State {
	if v.IsZero() {
		return st
	}
	filled := make(map[string]plan.SlotValue, len(st.Filled)+1)
	for k, val := range st.Filled {
		filled[k] = val
	}
	filled[name] = v

	missing := make([]string, 0, len(st.Missing))
	for _, m := range st.Missing {
		if m != name {
			missing = append(missing, m)
		}
	}
	return State{
		SkillID:    st.SkillID,
		Confidence: st.Confidence,
		Filled:     filled,
		Missing:    missing,
		decls:      st.decls,
	}
}

// Partial converts the state back into a PartialPlan for transport.
func (st State) Partial() plan.PartialPlan {
	return plan.PartialPlan{
		SkillID:    st.SkillID,
		Confidence: st.Confidence,
		Slots:      st.Filled,
	}
}

// cancelPhrases end a slot-filling dialogue.
var cancelPhrases = []string{"abbrechen", "abbruch", "stopp", "stop", "vergiss es", "egal", "lass es"}

// IsCancel reports whether a follow-up answer cancels the dialogue.
func IsCancel(answer string) bool {
	c := lexicon.Canonicalize(answer)
	for _, p := range cancelPhrases {
		if c == p || strings.HasPrefix(c, p+" ") {
			return true
		}
	}
	return false
}

// ParseAnswer interprets a follow-up utterance as a value for the
// named slot. The zero SlotValue means the answer did not fit and the
// slot should be re-prompted.
func ParseAnswer(slotName, answer string, ctx plan.UserContext) plan.SlotValue {
	canonical := lexicon.Canonicalize(answer)
	switch slotName {
	case "medication":
		if meds := lexicon.FindMedications(canonical, ctx.Medications); len(meds) > 0 {
			return plan.MedicationSlot(meds[0])
		}
		// Unknown drug names are accepted as free text; the category
		// extractor gives downstream consumers a hook.
		if canonical != "" {
			return plan.TextSlot(canonical)
		}
	case "time", "new_time":
		if t := lexicon.ExtractClockTime(canonical); t != nil {
			return plan.TextSlot(*t)
		}
	case "rating", "level":
		if r := lexicon.ExtractRating(canonical); r != nil {
			return plan.NumberSlot(*r)
		}
	case "days":
		if d := lexicon.ExtractTimeRange(canonical); d != nil {
			return plan.DaysSlot(*d)
		}
		if ns := lexicon.ExtractNumbers(canonical); len(ns) == 1 && ns[0] > 0 {
			return plan.DaysSlot(ns[0])
		}
	case "position":
		if ord := lexicon.ExtractOrdinal(canonical); ord != nil {
			return plan.NumberSlot(*ord)
		}
		if ns := lexicon.ExtractNumbers(canonical); len(ns) == 1 && ns[0] > 0 {
			return plan.NumberSlot(ns[0])
		}
	case "text":
		if strings.TrimSpace(answer) != "" {
			return plan.TextSlot(strings.TrimSpace(answer))
		}
	default:
		if canonical != "" {
			return plan.TextSlot(canonical)
		}
	}
	return plan.SlotValue{}
}
