package skill

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hpungsan/voxplan/internal/plan"
)

// constSkill matches everything with a fixed confidence.
func constSkill(id string, conf float64) *Skill {
	return &Skill{
		ID:    id,
		Label: id,
		Risk:  plan.RiskLow,
		Match: func(in MatchInput) MatchResult {
			return MatchResult{Confidence: conf}
		},
		Build: func(in BuildInput) *plan.Plan {
			return plan.NewNavigate(in.Confidence, id, plan.Navigate{TargetView: id})
		},
	}
}

func TestRegistryBuilder_DuplicateID(t *testing.T) {
	_, err := NewRegistryBuilder().
		Register(constSkill("a", 0.5)).
		Register(constSkill("a", 0.5)).
		Build()
	if err == nil {
		t.Fatal("Build() = nil error, want duplicate-ID error")
	}
	if !strings.Contains(err.Error(), "a") {
		t.Errorf("error %q does not name the skill", err)
	}
}

func TestRegistryBuilder_InvalidSkill(t *testing.T) {
	_, err := NewRegistryBuilder().Register(&Skill{ID: "no_funcs"}).Build()
	if err == nil {
		t.Error("Build() = nil error, want error for missing match/build")
	}

	dupSlot := constSkill("dup_slot", 0.5)
	dupSlot.Slots = []SlotDef{{Name: "x"}, {Name: "x"}}
	if _, err := NewRegistryBuilder().Register(dupSlot).Build(); err == nil {
		t.Error("Build() = nil error, want error for duplicate slot")
	}
}

func TestFindMatches_FloorAndOrder(t *testing.T) {
	reg, err := NewRegistryBuilder().
		Register(constSkill("low", 0.1)).
		Register(constSkill("mid", 0.5)).
		Register(constSkill("high", 0.9)).
		Register(constSkill("also_mid", 0.5)).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	matches := reg.FindMatches(MatchInput{Canonical: "egal"}, DefaultCandidateFloor)
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3 (floor drops the 0.1 skill)", len(matches))
	}
	if matches[0].Skill.ID != "high" {
		t.Errorf("matches[0] = %s, want high", matches[0].Skill.ID)
	}
	// Equal confidence breaks ties by skill ID.
	if matches[1].Skill.ID != "also_mid" || matches[2].Skill.ID != "mid" {
		t.Errorf("tie-break order = %s, %s, want also_mid, mid",
			matches[1].Skill.ID, matches[2].Skill.ID)
	}
}

func TestFindMatches_PanicIsolation(t *testing.T) {
	bad := constSkill("bad", 0.9)
	bad.Match = func(in MatchInput) MatchResult {
		panic("boom")
	}

	var logged []string
	reg, err := NewRegistryBuilder().
		WithLogf(func(format string, args ...any) {
			logged = append(logged, fmt.Sprintf(format, args...))
		}).
		Register(bad).
		Register(constSkill("good", 0.5)).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	matches := reg.FindMatches(MatchInput{Canonical: "egal"}, DefaultCandidateFloor)
	if len(matches) != 1 || matches[0].Skill.ID != "good" {
		t.Fatalf("matches = %v, want only the good skill", matches)
	}
	if len(logged) != 1 || !strings.Contains(logged[0], "bad") {
		t.Errorf("logged = %v, want one fault naming the skill", logged)
	}
}

func TestRegistry_Get(t *testing.T) {
	reg, err := NewRegistryBuilder().Register(constSkill("a", 0.5)).Build()
	if err != nil {
		t.Fatal(err)
	}
	if reg.Get("a") == nil {
		t.Error("Get(a) = nil")
	}
	if reg.Get("missing") != nil {
		t.Error("Get(missing) != nil")
	}
}

func TestBuiltinRegistry(t *testing.T) {
	reg, err := BuiltinRegistry(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(reg.Skills()), len(BuiltinSkills()); got != want {
		t.Errorf("registered %d skills, want %d", got, want)
	}

	reg, err = BuiltinRegistry([]string{"nav_doctors", "save_note"})
	if err != nil {
		t.Fatal(err)
	}
	if reg.Get("nav_doctors") != nil || reg.Get("save_note") != nil {
		t.Error("disabled skills still registered")
	}
	if reg.Get("nav_diary") == nil {
		t.Error("nav_diary missing from default registry")
	}
}
