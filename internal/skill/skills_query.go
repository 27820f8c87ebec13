package skill

import (
	"fmt"
	"strconv"

	"github.com/hpungsan/voxplan/internal/lexicon"
	"github.com/hpungsan/voxplan/internal/plan"
)

// queryEntryCountSkill answers "how many entries" questions.
func queryEntryCountSkill() *Skill {
	s := &Skill{
		ID:       "query_entry_count",
		Label:    "Einträge zählen",
		Risk:     plan.RiskLow,
		Examples: []string{"wie viele einträge habe ich", "anzahl einträge letzte woche", "zähle meine einträge"},
		Keywords: []string{"viele", "anzahl", "zähle", "einträge"},
		Slots: []SlotDef{
			{Name: "days", Prompt: "Für welchen Zeitraum?"},
		},
	}
	s.Match = func(in MatchInput) MatchResult {
		kw, ex, reasons := baseMatch(in, s)
		bonus := 0.0
		if lexicon.DetectOperator(in.Canonical) == lexicon.OperatorCount {
			bonus = 1.0
			reasons = append(reasons, "explicit count operator")
		}
		slots := map[string]plan.SlotValue{}
		if d := in.Entities.TimeRangeDays; d != nil {
			slots["days"] = plan.DaysSlot(*d)
		}
		return MatchResult{Confidence: Combine(kw, ex, bonus), Slots: slots, Reasons: reasons}
	}
	s.Build = func(in BuildInput) *plan.Plan {
		params := map[string]string{}
		summary := "Zähle alle Einträge"
		if v, ok := in.Slots["days"]; ok && v.Days != nil {
			params["days"] = strconv.Itoa(*v.Days)
			summary = fmt.Sprintf("Zähle Einträge der letzten %d Tage", *v.Days)
		}
		return plan.NewQuery(in.Confidence, summary, plan.Query{
			QueryType: plan.QueryEntryCount,
			Params:    params,
		})
	}
	return s
}

// queryMedStatsSkill answers "how often did I take X" questions. When
// the mentioned drug is not in the user's list, the therapeutic
// category is used as a fallback parameter.
func queryMedStatsSkill() *Skill {
	s := &Skill{
		ID:       "query_med_stats",
		Label:    "Medikamenten-Statistik",
		Risk:     plan.RiskLow,
		Examples: []string{"wie oft habe ich ibuprofen genommen", "statistik zu ibuprofen", "wie oft tilidin letzte woche"},
		Keywords: []string{"oft", "genommen", "eingenommen", "statistik"},
		Slots: []SlotDef{
			{Name: "medication", Prompt: "Für welches Medikament?", Required: true},
			{Name: "days", Prompt: "Für welchen Zeitraum?"},
		},
	}
	s.Match = func(in MatchInput) MatchResult {
		kw, ex, reasons := baseMatch(in, s)
		bonus := 0.0
		slots := map[string]plan.SlotValue{}
		if meds := in.Entities.Medications; len(meds) > 0 {
			bonus = 1.0
			slots["medication"] = plan.MedicationSlot(meds[0])
			reasons = append(reasons, fmt.Sprintf("known medication: %s", meds[0].Name))
		} else if cat := lexicon.FindMedicationCategory(in.Canonical); cat != lexicon.CategoryUnknown {
			bonus = 0.5
			slots["medication"] = plan.TextSlot(string(cat))
			reasons = append(reasons, fmt.Sprintf("category fallback: %s", cat))
		}
		if d := in.Entities.TimeRangeDays; d != nil {
			slots["days"] = plan.DaysSlot(*d)
		}
		return MatchResult{Confidence: Combine(kw, ex, bonus), Slots: slots, Reasons: reasons}
	}
	s.Build = func(in BuildInput) *plan.Plan {
		if p := RequestSlot(s, in.Slots, in.Confidence, medicationSuggestions(in.Context)); p != nil {
			return p
		}
		params := map[string]string{}
		name := ""
		if v := in.Slots["medication"]; v.Medication != nil {
			params["medication"] = v.Medication.Name
			if v.Medication.ID != "" {
				params["medication_id"] = v.Medication.ID
			}
			name = v.Medication.Name
		} else {
			params["category"] = v.Text
			name = v.Text
		}
		if v, ok := in.Slots["days"]; ok && v.Days != nil {
			params["days"] = strconv.Itoa(*v.Days)
		}
		return plan.NewQuery(in.Confidence, fmt.Sprintf("Statistik zu %s", name), plan.Query{
			QueryType: plan.QueryMedStats,
			Params:    params,
		})
	}
	return s
}

// medicationSuggestions ranks the user's medications as slot-filling
// suggestions, capped at four.
func medicationSuggestions(ctx plan.UserContext) []string {
	var out []string
	for _, m := range ctx.Medications {
		out = append(out, m.Name)
		if len(out) == 4 {
			break
		}
	}
	return out
}
