package skill

import (
	"fmt"

	"github.com/hpungsan/voxplan/internal/lexicon"
	"github.com/hpungsan/voxplan/internal/plan"
)

// DefaultUndoWindowMs is the undo window attached to undoable
// mutations. The caller owns the actual timer.
const DefaultUndoWindowMs int64 = 8000

// reminderSlots extracts the medication and clock time shared by the
// reminder skills.
func reminderSlots(in MatchInput) (map[string]plan.SlotValue, []string) {
	slots := map[string]plan.SlotValue{}
	var reasons []string
	if meds := in.Entities.Medications; len(meds) > 0 {
		slots["medication"] = plan.MedicationSlot(meds[0])
		reasons = append(reasons, fmt.Sprintf("known medication: %s", meds[0].Name))
	}
	if t := lexicon.ExtractClockTime(in.Canonical); t != nil {
		slots["time"] = plan.TextSlot(*t)
		reasons = append(reasons, fmt.Sprintf("clock time: %s", *t))
	}
	return slots, reasons
}

// createReminderSkill schedules a daily medication reminder, asking
// for the medication and time if the utterance did not provide them.
func createReminderSkill() *Skill {
	s := &Skill{
		ID:       "create_reminder",
		Label:    "Erinnerung erstellen",
		Risk:     plan.RiskMedium,
		Examples: []string{"erinnere mich an ibuprofen um 8 uhr", "erstelle eine erinnerung für ibuprofen", "neue erinnerung um 20 uhr"},
		Keywords: []string{"erinnere", "erinnerung", "erstelle", "neue"},
		Slots: []SlotDef{
			{Name: "medication", Prompt: "Für welches Medikament soll ich erinnern?", Required: true},
			{Name: "time", Prompt: "Um wie viel Uhr soll ich erinnern?", Required: true, Suggestions: []string{"08:00", "12:00", "20:00"}},
		},
	}
	s.Match = func(in MatchInput) MatchResult {
		kw, ex, reasons := baseMatch(in, s)
		bonus := 0.0
		if lexicon.DetectOperator(in.Canonical) == lexicon.OperatorCreate &&
			lexicon.DetectObject(in.Canonical) == lexicon.ObjectReminders {
			bonus = 1.0
			reasons = append(reasons, "create operator with reminder object")
		} else if lexicon.ContainsKeyword(in.Canonical, "erinnere") {
			bonus = 1.0
			reasons = append(reasons, "explicit remind verb")
		}
		slots, slotReasons := reminderSlots(in)
		reasons = append(reasons, slotReasons...)
		return MatchResult{Confidence: Combine(kw, ex, bonus), Slots: slots, Reasons: reasons}
	}
	s.Build = func(in BuildInput) *plan.Plan {
		if p := RequestSlot(s, in.Slots, in.Confidence, medicationSuggestions(in.Context)); p != nil {
			return p
		}
		med := in.Slots["medication"]
		t := in.Slots["time"].Text
		payload := plan.CreateReminderPayload{Time: t}
		if med.Medication != nil {
			payload.Medication = med.Medication.Name
			payload.MedicationID = med.Medication.ID
		} else {
			payload.Medication = med.Text
		}
		return plan.NewMutation(in.Confidence,
			fmt.Sprintf("Erstelle Erinnerung für %s um %s", payload.Medication, t),
			plan.Mutation{
				MutationType:   plan.MutationCreateReminder,
				Risk:           plan.RiskMedium,
				CreateReminder: &payload,
				Undo: &plan.UndoSpec{
					WindowMs: DefaultUndoWindowMs,
					UndoPlan: plan.NewMutation(1, fmt.Sprintf("Lösche Erinnerung für %s", payload.Medication), plan.Mutation{
						MutationType:   plan.MutationDeleteReminder,
						Risk:           plan.RiskHigh,
						DeleteReminder: &plan.DeleteReminderPayload{Medication: payload.Medication},
					}),
				},
			})
	}
	return s
}

// editReminderSkill moves an existing reminder to a new time. Medium
// risk: the safety policy requires an explicit edit verb in the raw
// utterance.
func editReminderSkill() *Skill {
	s := &Skill{
		ID:       "edit_reminder",
		Label:    "Erinnerung ändern",
		Risk:     plan.RiskMedium,
		Examples: []string{"verschiebe die erinnerung auf 9 uhr", "ändere die erinnerung für ibuprofen auf 20 uhr"},
		Keywords: []string{"verschiebe", "ändere", "bearbeite", "erinnerung"},
		Slots: []SlotDef{
			{Name: "medication", Prompt: "Welche Erinnerung soll ich ändern?", Required: true},
			{Name: "new_time", Prompt: "Auf wie viel Uhr soll ich die Erinnerung legen?", Required: true, Suggestions: []string{"08:00", "12:00", "20:00"}},
		},
	}
	s.Match = func(in MatchInput) MatchResult {
		kw, ex, reasons := baseMatch(in, s)
		bonus := 0.0
		if lexicon.DetectOperator(in.Canonical) == lexicon.OperatorEdit &&
			lexicon.DetectObject(in.Canonical) == lexicon.ObjectReminders {
			bonus = 1.0
			reasons = append(reasons, "edit operator with reminder object")
		}
		slots, slotReasons := reminderSlots(in)
		if t, ok := slots["time"]; ok {
			delete(slots, "time")
			slots["new_time"] = t
		}
		reasons = append(reasons, slotReasons...)
		return MatchResult{Confidence: Combine(kw, ex, bonus), Slots: slots, Reasons: reasons}
	}
	s.Build = func(in BuildInput) *plan.Plan {
		if p := RequestSlot(s, in.Slots, in.Confidence, medicationSuggestions(in.Context)); p != nil {
			return p
		}
		med := in.Slots["medication"]
		payload := plan.EditReminderPayload{NewTime: in.Slots["new_time"].Text}
		if med.Medication != nil {
			payload.Medication = med.Medication.Name
		} else {
			payload.Medication = med.Text
		}
		return plan.NewMutation(in.Confidence,
			fmt.Sprintf("Verschiebe Erinnerung für %s auf %s", payload.Medication, payload.NewTime),
			plan.Mutation{
				MutationType: plan.MutationEditReminder,
				Risk:         plan.RiskMedium,
				EditReminder: &payload,
			})
	}
	return s
}

// deleteReminderSkill removes a reminder. High risk: explicit delete
// word required, always confirmed.
func deleteReminderSkill() *Skill {
	s := &Skill{
		ID:       "delete_reminder",
		Label:    "Erinnerung löschen",
		Risk:     plan.RiskHigh,
		Examples: []string{"lösche die erinnerung für ibuprofen", "entferne die ibuprofen erinnerung"},
		Keywords: []string{"lösche", "löschen", "entferne", "erinnerung"},
		Slots: []SlotDef{
			{Name: "medication", Prompt: "Welche Erinnerung soll ich löschen?", Required: true},
		},
	}
	s.Match = func(in MatchInput) MatchResult {
		kw, ex, reasons := baseMatch(in, s)
		bonus := 0.0
		if lexicon.HasOperatorWord(in.RawText, lexicon.OperatorDelete) &&
			lexicon.DetectObject(in.Canonical) == lexicon.ObjectReminders {
			bonus = 1.0
			reasons = append(reasons, "explicit delete operator with reminder object")
		}
		slots := map[string]plan.SlotValue{}
		if meds := in.Entities.Medications; len(meds) > 0 {
			slots["medication"] = plan.MedicationSlot(meds[0])
			reasons = append(reasons, fmt.Sprintf("known medication: %s", meds[0].Name))
		}
		return MatchResult{Confidence: Combine(kw, ex, bonus), Slots: slots, Reasons: reasons}
	}
	s.Build = func(in BuildInput) *plan.Plan {
		if p := RequestSlot(s, in.Slots, in.Confidence, medicationSuggestions(in.Context)); p != nil {
			return p
		}
		med := in.Slots["medication"]
		payload := plan.DeleteReminderPayload{}
		if med.Medication != nil {
			payload.Medication = med.Medication.Name
		} else {
			payload.Medication = med.Text
		}
		return plan.NewMutation(in.Confidence,
			fmt.Sprintf("Lösche Erinnerung für %s", payload.Medication),
			plan.Mutation{
				MutationType:   plan.MutationDeleteReminder,
				Risk:           plan.RiskHigh,
				DeleteReminder: &payload,
			})
	}
	return s
}
