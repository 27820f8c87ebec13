package skill

import (
	"fmt"

	"github.com/hpungsan/voxplan/internal/lexicon"
	"github.com/hpungsan/voxplan/internal/plan"
)

// rateIntakeSkill records how well a medication worked, on the 0-10
// scale. Medium risk: the safety policy requires an explicit
// rate-family word in the raw utterance.
func rateIntakeSkill() *Skill {
	s := &Skill{
		ID:       "rate_intake",
		Label:    "Einnahme bewerten",
		Risk:     plan.RiskMedium,
		Examples: []string{"ibuprofen hat gut geholfen", "bewerte ibuprofen mit 7", "die tablette hat kaum gewirkt"},
		Keywords: []string{"bewerte", "geholfen", "gewirkt", "tablette"},
		Slots: []SlotDef{
			{Name: "medication", Prompt: "Welches Medikament möchtest du bewerten?", Required: true},
			{Name: "rating", Prompt: "Wie gut hat es geholfen, von 0 bis 10?", Required: true, Suggestions: []string{"3", "5", "7", "9"}},
		},
	}
	s.Match = func(in MatchInput) MatchResult {
		kw, ex, reasons := baseMatch(in, s)
		bonus := 0.0
		if lexicon.DetectOperator(in.Canonical) == lexicon.OperatorRate {
			bonus = 1.0
			reasons = append(reasons, "explicit rate operator")
		}
		slots := map[string]plan.SlotValue{}
		if meds := in.Entities.Medications; len(meds) > 0 {
			slots["medication"] = plan.MedicationSlot(meds[0])
			reasons = append(reasons, fmt.Sprintf("known medication: %s", meds[0].Name))
		}
		if r := lexicon.ExtractRating(in.Canonical); r != nil {
			slots["rating"] = plan.NumberSlot(*r)
			reasons = append(reasons, fmt.Sprintf("rating: %d", *r))
		}
		return MatchResult{Confidence: Combine(kw, ex, bonus), Slots: slots, Reasons: reasons}
	}
	s.Build = func(in BuildInput) *plan.Plan {
		if p := RequestSlot(s, in.Slots, in.Confidence, medicationSuggestions(in.Context)); p != nil {
			return p
		}
		med := in.Slots["medication"]
		rating := 0
		if v := in.Slots["rating"]; v.Number != nil {
			rating = *v.Number
		}
		payload := plan.RateIntakePayload{Rating: rating}
		if med.Medication != nil {
			payload.Medication = med.Medication.Name
			payload.MedicationID = med.Medication.ID
		} else {
			payload.Medication = med.Text
		}
		return plan.NewMutation(in.Confidence,
			fmt.Sprintf("Bewerte %s mit %d von 10", payload.Medication, rating),
			plan.Mutation{
				MutationType: plan.MutationRateIntake,
				Risk:         plan.RiskMedium,
				RateIntake:   &payload,
			})
	}
	return s
}
