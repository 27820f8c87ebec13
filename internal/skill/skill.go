// Package skill defines the unit of capability of the voice planner:
// a self-contained matcher plus plan-builder for one command family,
// and the read-only registry that holds all of them.
package skill

import (
	"fmt"

	"github.com/hpungsan/voxplan/internal/plan"
)

// SlotDef declares one piece of information a skill needs.
type SlotDef struct {
	Name        string   `json:"name"`
	Prompt      string   `json:"prompt"`
	Required    bool     `json:"required"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// MatchInput is what a skill's matcher sees. Matching is stateless
// and read-only; matchers must not retain or mutate any of it.
type MatchInput struct {
	RawText   string
	Canonical string
	Context   plan.UserContext
	Entities  plan.Entities
}

// MatchResult is one skill's verdict on an utterance.
type MatchResult struct {
	// Confidence is in [0,1]; results below the registry floor are
	// dropped.
	Confidence float64

	// Slots holds the values already extractable from this utterance.
	Slots map[string]plan.SlotValue

	// Reasons are human-readable scoring notes for diagnostics and
	// tests, never shown to end users.
	Reasons []string
}

// BuildInput is what a skill's plan-builder sees.
type BuildInput struct {
	Slots      map[string]plan.SlotValue
	Context    plan.UserContext
	Confidence float64
}

// MatchFunc scores an utterance against one skill.
type MatchFunc func(in MatchInput) MatchResult

// BuildFunc turns collected slots into a final plan, or into a
// SlotFilling plan naming the next missing required slot.
type BuildFunc func(in BuildInput) *plan.Plan

// Skill is a named, versionless capability descriptor. Skills are
// registered once at process start and immutable afterward.
type Skill struct {
	ID       string
	Label    string
	Risk     plan.Risk
	Examples []string
	Keywords []string
	Slots    []SlotDef
	Match    MatchFunc
	Build    BuildFunc
}

// SlotDef returns the declaration of a named slot.
func (s *Skill) SlotDef(name string) (SlotDef, bool) {
	for _, d := range s.Slots {
		if d.Name == name {
			return d, true
		}
	}
	return SlotDef{}, false
}

// MissingRequired lists required slots without a value, in declared
// slot order.
func (s *Skill) MissingRequired(slots map[string]plan.SlotValue) []string {
	var missing []string
	for _, d := range s.Slots {
		if !d.Required {
			continue
		}
		if v, ok := slots[d.Name]; !ok || v.IsZero() {
			missing = append(missing, d.Name)
		}
	}
	return missing
}

// validate checks a skill descriptor at registration time.
func (s *Skill) validate() error {
	if s.ID == "" {
		return fmt.Errorf("skill must have an ID")
	}
	if s.Match == nil || s.Build == nil {
		return fmt.Errorf("skill %q must have match and build functions", s.ID)
	}
	seen := make(map[string]bool, len(s.Slots))
	for _, d := range s.Slots {
		if seen[d.Name] {
			return fmt.Errorf("skill %q declares slot %q twice", s.ID, d.Name)
		}
		seen[d.Name] = true
	}
	return nil
}

// RequestSlot builds the SlotFilling plan asking for the first
// missing required slot. Declared suggestions win; the caller's ranked
// ones are used for slots that declare none.
func RequestSlot(s *Skill, slots map[string]plan.SlotValue, confidence float64, suggestions []string) *plan.Plan {
	missing := s.MissingRequired(slots)
	if len(missing) == 0 {
		return nil
	}
	def, _ := s.SlotDef(missing[0])
	if len(def.Suggestions) > 0 {
		suggestions = def.Suggestions
	}
	if len(suggestions) > 4 {
		suggestions = suggestions[:4]
	}
	return plan.NewSlotFilling(confidence, def.Prompt, plan.SlotFilling{
		MissingSlot: def.Name,
		Prompt:      def.Prompt,
		Suggestions: suggestions,
		Partial: plan.PartialPlan{
			SkillID:    s.ID,
			Confidence: confidence,
			Slots:      slots,
		},
	})
}
