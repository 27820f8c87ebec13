package skill

import (
	"fmt"
	"strconv"

	"github.com/hpungsan/voxplan/internal/lexicon"
	"github.com/hpungsan/voxplan/internal/plan"
)

// openLastEntrySkill opens the most recent (or an ordinal-addressed)
// diary entry.
func openLastEntrySkill() *Skill {
	s := &Skill{
		ID:       "open_last_entry",
		Label:    "Letzten Eintrag öffnen",
		Risk:     plan.RiskLow,
		Examples: []string{"öffne den letzten eintrag", "zeige letzten eintrag", "zeige den zweiten eintrag"},
		Keywords: []string{"letzten", "letzter", "letzte", "eintrag", "zuletzt"},
		Slots: []SlotDef{
			{Name: "position", Prompt: "Welchen Eintrag soll ich öffnen?"},
		},
	}
	s.Match = func(in MatchInput) MatchResult {
		kw, ex, reasons := baseMatch(in, s)
		bonus := 0.0
		slots := map[string]plan.SlotValue{}
		if ord := in.Entities.Ordinal; ord != nil {
			bonus = 1.0
			slots["position"] = plan.NumberSlot(*ord)
			reasons = append(reasons, "ordinal reference")
		}
		conf := Combine(kw, ex, bonus)
		// A medication mention means a medication-specific skill
		// should win over this generic one.
		if len(in.Entities.Medications) > 0 && conf > 0.3 {
			conf = 0.3
			reasons = append(reasons, "downgraded: medication mentioned")
		}
		// A delete verb means the delete skill should win.
		if lexicon.DetectOperator(in.Canonical) == lexicon.OperatorDelete && conf > 0.4 {
			conf = 0.4
			reasons = append(reasons, "downgraded: delete operator present")
		}
		return MatchResult{Confidence: conf, Slots: slots, Reasons: reasons}
	}
	s.Build = func(in BuildInput) *plan.Plan {
		ids := in.Context.RecentEntryIDs
		if len(ids) == 0 {
			return plan.NewNotSupported("Keine Einträge vorhanden", plan.NotSupported{
				Reason:      "keine einträge vorhanden",
				Suggestions: []string{"schmerz stärke 5", "hilfe"},
			})
		}
		idx := 0
		if v, ok := in.Slots["position"]; ok && v.Number != nil {
			n := *v.Number
			switch {
			case n < 0: // -1 is the last, -2 the one before
				idx = -n - 1
			case n > 0:
				idx = n - 1
			}
		}
		if idx >= len(ids) {
			return plan.NewNotSupported("So viele Einträge gibt es nicht", plan.NotSupported{
				Reason:      fmt.Sprintf("nur %d einträge vorhanden", len(ids)),
				Suggestions: []string{"öffne den letzten eintrag"},
			})
		}
		return plan.NewOpenEntry(in.Confidence, "Öffne Eintrag", plan.OpenEntry{EntryID: ids[idx]})
	}
	return s
}

// openEntryListSkill opens the entry list, optionally filtered by a
// time range.
func openEntryListSkill() *Skill {
	s := &Skill{
		ID:       "open_entry_list",
		Label:    "Einträge anzeigen",
		Risk:     plan.RiskLow,
		Examples: []string{"zeige einträge der letzten 7 tage", "einträge letzte woche", "zeige alle einträge"},
		Keywords: []string{"einträge", "liste", "woche", "monat", "tage"},
		Slots: []SlotDef{
			{Name: "days", Prompt: "Für welchen Zeitraum?", Suggestions: []string{"letzte woche", "letzten monat"}},
		},
	}
	s.Match = func(in MatchInput) MatchResult {
		kw, ex, reasons := baseMatch(in, s)
		bonus := 0.0
		slots := map[string]plan.SlotValue{}
		if d := in.Entities.TimeRangeDays; d != nil {
			bonus = 1.0
			slots["days"] = plan.DaysSlot(*d)
			reasons = append(reasons, fmt.Sprintf("time range: %d days", *d))
		}
		return MatchResult{Confidence: Combine(kw, ex, bonus), Slots: slots, Reasons: reasons}
	}
	s.Build = func(in BuildInput) *plan.Plan {
		filter := map[string]string{}
		summary := "Zeige alle Einträge"
		if v, ok := in.Slots["days"]; ok && v.Days != nil {
			filter["days"] = strconv.Itoa(*v.Days)
			summary = fmt.Sprintf("Zeige Einträge der letzten %d Tage", *v.Days)
		}
		return plan.NewOpenList(in.Confidence, summary, plan.OpenList{
			ListType: "entries",
			Filter:   filter,
		})
	}
	return s
}

// deleteEntrySkill removes a diary entry. High risk: the safety
// policy requires an explicit delete word in the raw utterance and
// always wraps the result in a danger confirmation.
func deleteEntrySkill() *Skill {
	s := &Skill{
		ID:       "delete_entry",
		Label:    "Eintrag löschen",
		Risk:     plan.RiskHigh,
		Examples: []string{"lösche den letzten eintrag", "entferne den eintrag"},
		Keywords: []string{"lösche", "löschen", "entferne", "eintrag"},
		Slots: []SlotDef{
			{Name: "position", Prompt: "Welchen Eintrag soll ich löschen?"},
		},
	}
	s.Match = func(in MatchInput) MatchResult {
		kw, ex, reasons := baseMatch(in, s)
		bonus := 0.0
		slots := map[string]plan.SlotValue{}
		if lexicon.HasOperatorWord(in.RawText, lexicon.OperatorDelete) &&
			lexicon.DetectObject(in.Canonical) == lexicon.ObjectEntries {
			bonus = 1.0
			reasons = append(reasons, "explicit delete operator with entry object")
		}
		if ord := in.Entities.Ordinal; ord != nil {
			slots["position"] = plan.NumberSlot(*ord)
		}
		return MatchResult{Confidence: Combine(kw, ex, bonus), Slots: slots, Reasons: reasons}
	}
	s.Build = func(in BuildInput) *plan.Plan {
		ids := in.Context.RecentEntryIDs
		if len(ids) == 0 {
			return plan.NewNotSupported("Keine Einträge vorhanden", plan.NotSupported{
				Reason: "keine einträge vorhanden",
			})
		}
		idx := 0
		if v, ok := in.Slots["position"]; ok && v.Number != nil {
			n := *v.Number
			switch {
			case n < 0:
				idx = -n - 1
			case n > 0:
				idx = n - 1
			}
		}
		if idx >= len(ids) {
			return plan.NewNotSupported("So viele Einträge gibt es nicht", plan.NotSupported{
				Reason: fmt.Sprintf("nur %d einträge vorhanden", len(ids)),
			})
		}
		return plan.NewMutation(in.Confidence, "Lösche Eintrag", plan.Mutation{
			MutationType: plan.MutationDeleteEntry,
			Risk:         plan.RiskHigh,
			DeleteEntry:  &plan.DeleteEntryPayload{EntryID: ids[idx]},
		})
	}
	return s
}
