package skill

import (
	"fmt"

	"github.com/hpungsan/voxplan/internal/lexicon"
	"github.com/hpungsan/voxplan/internal/plan"
)

// quickPainEntrySkill records a quick pain-level diary entry. This is
// also the target the noise guard's bare-number disambiguation points
// at.
func quickPainEntrySkill() *Skill {
	s := &Skill{
		ID:       "quick_pain_entry",
		Label:    "Schmerz erfassen",
		Risk:     plan.RiskMedium,
		Examples: []string{"schmerz stärke 7", "meine schmerzen sind bei 8", "starke kopfschmerzen"},
		Keywords: []string{"schmerz", "schmerzen", "stärke", "kopfschmerzen"},
		Slots: []SlotDef{
			{Name: "level", Prompt: "Wie stark sind die Schmerzen, von 0 bis 10?", Required: true, Suggestions: []string{"3", "5", "7", "9"}},
		},
	}
	s.Match = func(in MatchInput) MatchResult {
		kw, ex, reasons := baseMatch(in, s)
		bonus := 0.0
		slots := map[string]plan.SlotValue{}
		if r := lexicon.ExtractRating(in.Canonical); r != nil && kw > 0 {
			bonus = 1.0
			slots["level"] = plan.NumberSlot(*r)
			reasons = append(reasons, fmt.Sprintf("pain level: %d", *r))
		}
		return MatchResult{Confidence: Combine(kw, ex, bonus), Slots: slots, Reasons: reasons}
	}
	s.Build = func(in BuildInput) *plan.Plan {
		if p := RequestSlot(s, in.Slots, in.Confidence, nil); p != nil {
			return p
		}
		level := 0
		if v := in.Slots["level"]; v.Number != nil {
			level = *v.Number
		}
		return plan.NewMutation(in.Confidence,
			fmt.Sprintf("Erfasse Schmerzstärke %d", level),
			plan.Mutation{
				MutationType:    plan.MutationCreatePainEntry,
				Risk:            plan.RiskMedium,
				CreatePainEntry: &plan.CreatePainEntryPayload{Level: level},
				Undo: &plan.UndoSpec{
					WindowMs: DefaultUndoWindowMs,
					// EntryID is filled in by the executor once the
					// entry exists.
					UndoPlan: plan.NewMutation(1, "Lösche den Eintrag wieder", plan.Mutation{
						MutationType: plan.MutationDeleteEntry,
						Risk:         plan.RiskHigh,
						DeleteEntry:  &plan.DeleteEntryPayload{},
					}),
				},
			})
	}
	return s
}
