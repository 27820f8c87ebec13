package planner

import (
	"reflect"
	"strings"
	"testing"

	"github.com/hpungsan/voxplan/internal/config"
	"github.com/hpungsan/voxplan/internal/plan"
	"github.com/hpungsan/voxplan/internal/skill"
)

func newTestPlanner(t *testing.T) *Planner {
	t.Helper()
	reg, err := skill.BuiltinRegistry(nil)
	if err != nil {
		t.Fatal(err)
	}
	return New(reg, DefaultPolicy())
}

func utter(text string) plan.Utterance {
	return plan.Utterance{Text: text}
}

func TestPlan_Navigation(t *testing.T) {
	pl := newTestPlanner(t)

	res := pl.Plan(utter("öffne tagebuch"), plan.UserContext{})
	p := res.Plan
	if p.Kind != plan.KindNavigate {
		t.Fatalf("Kind = %q, want navigate (plan %+v)", p.Kind, p)
	}
	if p.Navigate.TargetView != "diary" {
		t.Errorf("TargetView = %q, want diary", p.Navigate.TargetView)
	}
	if p.Confidence < 0.99 {
		t.Errorf("Confidence = %v, want 1.0", p.Confidence)
	}

	diag := res.Diagnostics
	if diag.Operator != "open" {
		t.Errorf("Operator = %q, want open", diag.Operator)
	}
	if len(diag.Candidates) == 0 || diag.Candidates[0].SkillID != "nav_diary" {
		t.Errorf("Candidates = %+v, want nav_diary on top", diag.Candidates)
	}
}

func TestPlan_Noise(t *testing.T) {
	pl := newTestPlanner(t)

	for _, in := range []string{"", "ähm", "und dann noch"} {
		res := pl.Plan(utter(in), plan.UserContext{})
		if res.Plan.Kind != plan.KindNotSupported {
			t.Errorf("Plan(%q).Kind = %q, want not_supported", in, res.Plan.Kind)
			continue
		}
		if res.Diagnostics.NoiseReason == "" {
			t.Errorf("Plan(%q): NoiseReason empty", in)
		}
		if len(res.Plan.NotSupported.Suggestions) == 0 {
			t.Errorf("Plan(%q): no suggestions offered", in)
		}
	}
}

func TestPlan_BareNumberAsksForConfirmation(t *testing.T) {
	pl := newTestPlanner(t)

	res := pl.Plan(utter("7"), plan.UserContext{})
	p := res.Plan
	if p.Kind != plan.KindConfirm {
		t.Fatalf("Kind = %q, want confirm (plan %+v)", p.Kind, p)
	}
	if p.Confirm.ConfirmType != plan.ConfirmAmbiguous {
		t.Errorf("ConfirmType = %q, want ambiguous", p.Confirm.ConfirmType)
	}
	if !strings.Contains(p.Confirm.Question, "7") {
		t.Errorf("Question = %q, does not mention the number", p.Confirm.Question)
	}
	pending := p.Confirm.Pending
	if pending == nil || pending.Kind != plan.KindMutation ||
		pending.Mutation.MutationType != plan.MutationCreatePainEntry {
		t.Fatalf("Pending = %+v, want a pain-entry mutation", pending)
	}
	if pending.Mutation.CreatePainEntry.Level != 7 {
		t.Errorf("Level = %d, want 7", pending.Mutation.CreatePainEntry.Level)
	}
}

func TestPlan_NoMatch(t *testing.T) {
	pl := newTestPlanner(t)

	res := pl.Plan(utter("kolibri fliegt rückwärts"), plan.UserContext{})
	p := res.Plan
	if p.Kind != plan.KindNotSupported {
		t.Fatalf("Kind = %q, want not_supported", p.Kind)
	}
	if p.NotSupported.Reason != "no matching skill" {
		t.Errorf("Reason = %q", p.NotSupported.Reason)
	}
}

func TestPlan_AmbiguityAsksInsteadOfGuessing(t *testing.T) {
	pl := newTestPlanner(t)

	// Opening the diary and opening the entry list both fit; the gap
	// between them is inside the ambiguity window.
	res := pl.Plan(utter("zeige alle einträge"), plan.UserContext{})
	p := res.Plan
	if p.Kind != plan.KindConfirm {
		t.Fatalf("Kind = %q, want confirm (candidates %+v)", p.Kind, res.Diagnostics.Candidates)
	}
	if p.Confirm.ConfirmType != plan.ConfirmAmbiguous {
		t.Errorf("ConfirmType = %q, want ambiguous", p.Confirm.ConfirmType)
	}
	if p.Confirm.Pending == nil {
		t.Error("Pending = nil")
	}
	if len(p.Confirm.Alternatives) == 0 {
		t.Error("Alternatives empty, want at least one other reading")
	}
}

func TestPlan_GuardedDelete(t *testing.T) {
	pl := newTestPlanner(t)
	ctx := plan.UserContext{
		Medications: []plan.Medication{{ID: "m1", Name: "Ibuprofen"}},
	}

	res := pl.Plan(utter("lösche die erinnerung für ibuprofen"), ctx)
	p := res.Plan
	if p.Kind != plan.KindConfirm {
		t.Fatalf("Kind = %q, want confirm (plan %+v)", p.Kind, p)
	}
	if p.Confirm.ConfirmType != plan.ConfirmDanger {
		t.Errorf("ConfirmType = %q, want danger", p.Confirm.ConfirmType)
	}
	if !strings.Contains(p.Confirm.Question, "Wirklich löschen?") {
		t.Errorf("Question = %q", p.Confirm.Question)
	}
	pending := p.Confirm.Pending
	if pending == nil || pending.Mutation == nil ||
		pending.Mutation.MutationType != plan.MutationDeleteReminder {
		t.Fatalf("Pending = %+v, want delete_reminder mutation", pending)
	}
	if pending.Mutation.DeleteReminder.Medication != "Ibuprofen" {
		t.Errorf("Medication = %q", pending.Mutation.DeleteReminder.Medication)
	}
	if res.Diagnostics.SafetyDowngrade != "delete_requires_confirmation" {
		t.Errorf("SafetyDowngrade = %q", res.Diagnostics.SafetyDowngrade)
	}
}

func TestPlan_MediumRiskAutoExecutesAtThreshold(t *testing.T) {
	pl := newTestPlanner(t)

	// Full keyword coverage, a 2/3 example overlap, and the rating
	// bonus land exactly on the medium tier's 0.90 auto-execute bound.
	// The plan must come back unwrapped, not behind a confirmation.
	res := pl.Plan(utter("schmerz stärke 5"), plan.UserContext{})
	p := res.Plan
	if p.Kind != plan.KindMutation {
		t.Fatalf("Kind = %q, want mutation (plan %+v)", p.Kind, p)
	}
	if p.Confidence != 0.9 {
		t.Errorf("Confidence = %.17f, want exactly 0.9", p.Confidence)
	}
	if p.Mutation.MutationType != plan.MutationCreatePainEntry ||
		p.Mutation.CreatePainEntry.Level != 5 {
		t.Errorf("Mutation = %+v, want pain entry level 5", p.Mutation)
	}
}

func TestPlan_CandidateFloorFromPolicy(t *testing.T) {
	reg, err := skill.BuiltinRegistry(nil)
	if err != nil {
		t.Fatal(err)
	}
	policy := DefaultPolicy()
	policy.CandidateFloor = 0.95

	res := New(reg, policy).Plan(utter("schmerz stärke 5"), plan.UserContext{})
	p := res.Plan
	if p.Kind != plan.KindNotSupported {
		t.Fatalf("Kind = %q, want not_supported under a raised floor (plan %+v)", p.Kind, p)
	}
	if p.NotSupported.Reason != "no matching skill" {
		t.Errorf("Reason = %q", p.NotSupported.Reason)
	}
	if len(res.Diagnostics.Candidates) != 0 {
		t.Errorf("Candidates = %+v, want none below the floor", res.Diagnostics.Candidates)
	}

	// The same utterance clears the default floor.
	res = New(reg, DefaultPolicy()).Plan(utter("schmerz stärke 5"), plan.UserContext{})
	if res.Plan.Kind == plan.KindNotSupported {
		t.Errorf("default floor rejected the utterance: %+v", res.Plan)
	}
}

func TestPlan_LowConfidenceActionPicker(t *testing.T) {
	pl := newTestPlanner(t)

	// "tablette" weakly suggests rating an intake but stays below the
	// medium tier's confirm threshold.
	res := pl.Plan(utter("tablette"), plan.UserContext{})
	p := res.Plan
	if p.Kind != plan.KindNotSupported {
		t.Fatalf("Kind = %q, want not_supported (candidates %+v)", p.Kind, res.Diagnostics.Candidates)
	}
	if p.NotSupported.Reason != "confidence below threshold" {
		t.Errorf("Reason = %q", p.NotSupported.Reason)
	}
	if len(p.NotSupported.Suggestions) < 2 {
		t.Errorf("Suggestions = %v, want skill labels plus help", p.NotSupported.Suggestions)
	}
	if last := p.NotSupported.Suggestions[len(p.NotSupported.Suggestions)-1]; last != "Hilfe" {
		t.Errorf("last suggestion = %q, want Hilfe", last)
	}
}

func TestPlan_SlotFillingCarriesRawText(t *testing.T) {
	pl := newTestPlanner(t)
	ctx := plan.UserContext{
		Medications: []plan.Medication{{ID: "m1", Name: "Ibuprofen"}},
	}

	res := pl.Plan(utter("erinnere mich an ibuprofen"), ctx)
	p := res.Plan
	if p.Kind != plan.KindSlotFilling {
		t.Fatalf("Kind = %q, want slot_filling (plan %+v)", p.Kind, p)
	}
	sf := p.SlotFilling
	if sf.MissingSlot != "time" {
		t.Errorf("MissingSlot = %q, want time", sf.MissingSlot)
	}
	if sf.Partial.SkillID != "create_reminder" {
		t.Errorf("Partial.SkillID = %q", sf.Partial.SkillID)
	}
	if sf.Partial.RawText != "erinnere mich an ibuprofen" {
		t.Errorf("Partial.RawText = %q, must carry the original utterance", sf.Partial.RawText)
	}
}

func TestResume_FillAndGate(t *testing.T) {
	pl := newTestPlanner(t)
	ctx := plan.UserContext{
		Medications: []plan.Medication{{ID: "m1", Name: "Ibuprofen"}},
	}

	first := pl.Plan(utter("erinnere mich an ibuprofen"), ctx)
	if first.Plan.Kind != plan.KindSlotFilling {
		t.Fatalf("first turn = %+v, want slot_filling", first.Plan)
	}

	res := pl.Resume(first.Plan.SlotFilling.Partial, "um 8 uhr", ctx)
	p := res.Plan
	// Confidence is below the medium auto-execute threshold, so the
	// completed mutation comes wrapped in a confirmation.
	if p.Kind != plan.KindConfirm {
		t.Fatalf("Kind = %q, want confirm (plan %+v)", p.Kind, p)
	}
	pending := p.Confirm.Pending
	if pending == nil || pending.Mutation == nil ||
		pending.Mutation.MutationType != plan.MutationCreateReminder {
		t.Fatalf("Pending = %+v, want create_reminder mutation", pending)
	}
	cr := pending.Mutation.CreateReminder
	if cr.Medication != "Ibuprofen" || cr.Time != "08:00" {
		t.Errorf("payload = %+v", cr)
	}
	if pending.Mutation.Undo == nil {
		t.Error("Undo = nil, create reminder must be undoable")
	}
}

func TestResume_Cancel(t *testing.T) {
	pl := newTestPlanner(t)

	partial := plan.PartialPlan{SkillID: "create_reminder", Confidence: 0.8}
	res := pl.Resume(partial, "vergiss es", plan.UserContext{})
	if res.Plan.Kind != plan.KindNotSupported {
		t.Fatalf("Kind = %q, want not_supported", res.Plan.Kind)
	}
	if res.Plan.NotSupported.Reason != "cancelled by user" {
		t.Errorf("Reason = %q", res.Plan.NotSupported.Reason)
	}
}

func TestResume_RepromptsOnUnusableAnswer(t *testing.T) {
	pl := newTestPlanner(t)

	partial := plan.PartialPlan{
		SkillID:    "create_reminder",
		Confidence: 0.8,
		RawText:    "erinnere mich",
	}
	res := pl.Resume(partial, "???", plan.UserContext{})
	p := res.Plan
	if p.Kind != plan.KindSlotFilling {
		t.Fatalf("Kind = %q, want slot_filling re-prompt", p.Kind)
	}
	if !strings.HasPrefix(p.SlotFilling.Prompt, "Das habe ich nicht verstanden.") {
		t.Errorf("Prompt = %q", p.SlotFilling.Prompt)
	}
	if p.SlotFilling.Partial.RawText != "erinnere mich" {
		t.Errorf("RawText = %q, must survive the re-prompt", p.SlotFilling.Partial.RawText)
	}
}

func TestResume_UnknownSkill(t *testing.T) {
	pl := newTestPlanner(t)

	res := pl.Resume(plan.PartialPlan{SkillID: "nope"}, "8", plan.UserContext{})
	if res.Plan.Kind != plan.KindNotSupported {
		t.Fatalf("Kind = %q, want not_supported", res.Plan.Kind)
	}
	if !strings.Contains(res.Plan.NotSupported.Reason, "nope") {
		t.Errorf("Reason = %q", res.Plan.NotSupported.Reason)
	}
}

func TestResume_SafetyChecksRawTextAcrossTurns(t *testing.T) {
	pl := newTestPlanner(t)
	partial := plan.PartialPlan{
		SkillID:    "rate_intake",
		Confidence: 0.8,
		RawText:    "ibuprofen acht", // no rate word anywhere in the turn
		Slots: map[string]plan.SlotValue{
			"medication": plan.TextSlot("ibuprofen"),
		},
	}

	res := pl.Resume(partial, "8", plan.UserContext{})
	if res.Plan.Kind != plan.KindNotSupported {
		t.Fatalf("Kind = %q, want not_supported (plan %+v)", res.Plan.Kind, res.Plan)
	}
	if res.Diagnostics.SafetyDowngrade != "rate_intake_requires_explicit_rate_word" {
		t.Errorf("SafetyDowngrade = %q", res.Diagnostics.SafetyDowngrade)
	}

	// With the rate word spoken in the first turn the plan goes through.
	partial.RawText = "bewerte ibuprofen"
	res = pl.Resume(partial, "8", plan.UserContext{})
	if res.Plan.Kind != plan.KindConfirm {
		t.Fatalf("Kind = %q, want confirm (plan %+v)", res.Plan.Kind, res.Plan)
	}
	pending := res.Plan.Confirm.Pending
	if pending.Mutation.MutationType != plan.MutationRateIntake ||
		pending.Mutation.RateIntake.Rating != 8 {
		t.Errorf("Pending = %+v", pending)
	}
}

func TestPlan_Deterministic(t *testing.T) {
	pl := newTestPlanner(t)
	ctx := plan.UserContext{
		Medications:    []plan.Medication{{ID: "m1", Name: "Ibuprofen"}},
		RecentEntryIDs: []string{"e2", "e1"},
	}

	inputs := []string{
		"öffne tagebuch",
		"lösche die erinnerung für ibuprofen",
		"zeige einträge der letzten 7 tage",
		"schmerz stärke 5",
	}
	for _, in := range inputs {
		a := pl.Plan(utter(in), ctx)
		b := pl.Plan(utter(in), ctx)
		if !reflect.DeepEqual(a.Plan, b.Plan) {
			t.Errorf("Plan(%q) not deterministic:\n%+v\n%+v", in, a.Plan, b.Plan)
		}
	}
}

func TestPolicyFromConfig(t *testing.T) {
	if got := PolicyFromConfig(nil); !reflect.DeepEqual(got, DefaultPolicy()) {
		t.Errorf("PolicyFromConfig(nil) = %+v", got)
	}

	cfg := &config.Config{
		AmbiguityWindow:   0.25,
		CandidateFloor:    0.35,
		MediumAutoExecute: 0.95,
		UndoWindowMs:      5000,
	}
	got := PolicyFromConfig(cfg)
	if got.AmbiguityWindow != 0.25 {
		t.Errorf("AmbiguityWindow = %v", got.AmbiguityWindow)
	}
	if got.CandidateFloor != 0.35 {
		t.Errorf("CandidateFloor = %v", got.CandidateFloor)
	}
	if got.Medium.AutoExecute != 0.95 {
		t.Errorf("Medium.AutoExecute = %v", got.Medium.AutoExecute)
	}
	if got.UndoWindowMs != 5000 {
		t.Errorf("UndoWindowMs = %v", got.UndoWindowMs)
	}
	// Unset values keep their defaults.
	if got.Low != DefaultPolicy().Low {
		t.Errorf("Low = %+v, want default", got.Low)
	}
}
