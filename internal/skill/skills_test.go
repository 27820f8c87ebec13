package skill

import (
	"strings"
	"testing"

	"github.com/hpungsan/voxplan/internal/lexicon"
	"github.com/hpungsan/voxplan/internal/plan"
)

// testInput builds a MatchInput the way the planner does.
func testInput(raw string, ctx plan.UserContext) MatchInput {
	canonical := lexicon.Canonicalize(raw)
	return MatchInput{
		RawText:   raw,
		Canonical: canonical,
		Context:   ctx,
		Entities:  lexicon.ExtractEntities(canonical, ctx),
	}
}

func intPtr(n int) *int { return &n }

func hasReason(reasons []string, substr string) bool {
	for _, r := range reasons {
		if strings.Contains(r, substr) {
			return true
		}
	}
	return false
}

func TestNavDiary_CanonicalCommand(t *testing.T) {
	s := navDiarySkill()
	got := s.Match(testInput("öffne tagebuch", plan.UserContext{}))
	if got.Confidence < 0.99 {
		t.Errorf("Confidence = %v, want 1.0 for the canonical command", got.Confidence)
	}

	p := s.Build(BuildInput{Confidence: got.Confidence})
	if p.Kind != plan.KindNavigate || p.Navigate.TargetView != ViewDiary {
		t.Errorf("Build() = %+v, want Navigate{diary}", p)
	}
}

func TestNavDiary_TimeRangeDowngrade(t *testing.T) {
	in := testInput("zeige einträge der letzten 7 tage", plan.UserContext{})

	nav := navDiarySkill().Match(in)
	if nav.Confidence > 0.4 {
		t.Errorf("nav_diary confidence = %v, want capped at 0.4", nav.Confidence)
	}
	if !hasReason(nav.Reasons, "downgraded") {
		t.Errorf("Reasons = %v, want downgrade note", nav.Reasons)
	}

	list := openEntryListSkill().Match(in)
	if list.Confidence <= nav.Confidence {
		t.Errorf("open_entry_list %v should beat nav_diary %v",
			list.Confidence, nav.Confidence)
	}
	if v, ok := list.Slots["days"]; !ok || v.Days == nil || *v.Days != 7 {
		t.Errorf("days slot = %+v, want 7", v)
	}
}

func TestOpenLastEntry_Build(t *testing.T) {
	s := openLastEntrySkill()
	ctx := plan.UserContext{RecentEntryIDs: []string{"e3", "e2", "e1"}}

	tests := []struct {
		name     string
		position *int
		wantID   string
	}{
		{"default is newest", nil, "e3"},
		{"last", intPtr(-1), "e3"},
		{"second to last", intPtr(-2), "e2"},
		{"second from the front", intPtr(2), "e2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := map[string]plan.SlotValue{}
			if tt.position != nil {
				slots["position"] = plan.NumberSlot(*tt.position)
			}
			p := s.Build(BuildInput{Slots: slots, Context: ctx, Confidence: 0.9})
			if p.Kind != plan.KindOpenEntry {
				t.Fatalf("Kind = %q, want open_entry", p.Kind)
			}
			if p.OpenEntry.EntryID != tt.wantID {
				t.Errorf("EntryID = %q, want %q", p.OpenEntry.EntryID, tt.wantID)
			}
		})
	}

	// No entries at all.
	p := s.Build(BuildInput{Context: plan.UserContext{}, Confidence: 0.9})
	if p.Kind != plan.KindNotSupported {
		t.Errorf("Kind = %q, want not_supported without entries", p.Kind)
	}

	// Ordinal beyond the list.
	p = s.Build(BuildInput{
		Slots:      map[string]plan.SlotValue{"position": plan.NumberSlot(9)},
		Context:    ctx,
		Confidence: 0.9,
	})
	if p.Kind != plan.KindNotSupported {
		t.Errorf("Kind = %q, want not_supported for out-of-range ordinal", p.Kind)
	}
}

func TestOpenLastEntry_DowngradesOnDeleteVerb(t *testing.T) {
	s := openLastEntrySkill()
	ctx := plan.UserContext{RecentEntryIDs: []string{"e1"}}

	open := s.Match(testInput("öffne den letzten eintrag", ctx))
	if open.Confidence < 0.99 {
		t.Errorf("Confidence = %v, want 1.0 for the open command", open.Confidence)
	}

	del := s.Match(testInput("lösche den letzten eintrag", ctx))
	if del.Confidence > 0.4 {
		t.Errorf("Confidence = %v, want capped at 0.4 when a delete verb is present", del.Confidence)
	}
}

func TestDeleteEntry_BonusNeedsRawDeleteWord(t *testing.T) {
	s := deleteEntrySkill()
	ctx := plan.UserContext{RecentEntryIDs: []string{"e1"}}

	explicit := s.Match(testInput("lösche den letzten eintrag", ctx))
	if explicit.Confidence < 0.99 {
		t.Errorf("Confidence = %v, want 1.0 with explicit delete word", explicit.Confidence)
	}
	if !hasReason(explicit.Reasons, "explicit delete operator") {
		t.Errorf("Reasons = %v, want delete-operator note", explicit.Reasons)
	}

	vague := s.Match(testInput("nimm den letzten eintrag raus", ctx))
	if vague.Confidence >= explicit.Confidence {
		t.Errorf("vague %v should score below explicit %v",
			vague.Confidence, explicit.Confidence)
	}
	if hasReason(vague.Reasons, "explicit delete operator") {
		t.Errorf("Reasons = %v, bonus granted without a delete word", vague.Reasons)
	}
}

func TestCreateReminder_SlotsFromUtterance(t *testing.T) {
	s := createReminderSkill()
	ctx := plan.UserContext{
		Medications: []plan.Medication{{ID: "m1", Name: "Ibuprofen"}},
	}

	got := s.Match(testInput("erinnere mich an ibuprofen um 8 uhr", ctx))
	if got.Confidence < 0.99 {
		t.Errorf("Confidence = %v, want 1.0", got.Confidence)
	}
	med, ok := got.Slots["medication"]
	if !ok || med.Medication == nil || med.Medication.ID != "m1" {
		t.Fatalf("medication slot = %+v, want Ibuprofen", med)
	}
	if v := got.Slots["time"]; v.Text != "08:00" {
		t.Errorf("time slot = %q, want 08:00", v.Text)
	}

	p := s.Build(BuildInput{Slots: got.Slots, Context: ctx, Confidence: got.Confidence})
	if p.Kind != plan.KindMutation || p.Mutation.MutationType != plan.MutationCreateReminder {
		t.Fatalf("Build() = %+v, want create_reminder mutation", p)
	}
	cr := p.Mutation.CreateReminder
	if cr.Medication != "Ibuprofen" || cr.MedicationID != "m1" || cr.Time != "08:00" {
		t.Errorf("payload = %+v", cr)
	}
	undo := p.Mutation.Undo
	if undo == nil || undo.WindowMs != DefaultUndoWindowMs {
		t.Fatalf("Undo = %+v, want spec with default window", undo)
	}
	if undo.UndoPlan.Mutation.MutationType != plan.MutationDeleteReminder {
		t.Errorf("undo plan = %+v, want delete_reminder", undo.UndoPlan)
	}
}

func TestCreateReminder_AsksForMedicationFirst(t *testing.T) {
	s := createReminderSkill()
	ctx := plan.UserContext{
		Medications: []plan.Medication{{ID: "m1", Name: "Ibuprofen"}},
	}

	p := s.Build(BuildInput{Slots: map[string]plan.SlotValue{}, Context: ctx, Confidence: 0.9})
	if p.Kind != plan.KindSlotFilling {
		t.Fatalf("Kind = %q, want slot_filling", p.Kind)
	}
	sf := p.SlotFilling
	if sf.MissingSlot != "medication" {
		t.Errorf("MissingSlot = %q, want medication (declared first)", sf.MissingSlot)
	}
	if len(sf.Suggestions) != 1 || sf.Suggestions[0] != "Ibuprofen" {
		t.Errorf("Suggestions = %v, want the user's medications", sf.Suggestions)
	}
	if sf.Partial.SkillID != "create_reminder" {
		t.Errorf("Partial.SkillID = %q", sf.Partial.SkillID)
	}

	// With the medication known, the time is asked next.
	p = s.Build(BuildInput{
		Slots:      map[string]plan.SlotValue{"medication": plan.TextSlot("Ibuprofen")},
		Context:    ctx,
		Confidence: 0.9,
	})
	if p.Kind != plan.KindSlotFilling || p.SlotFilling.MissingSlot != "time" {
		t.Fatalf("Build() = %+v, want slot_filling for time", p)
	}
	// The time slot keeps its declared suggestions, not the ranked
	// medication names.
	if len(p.SlotFilling.Suggestions) == 0 || p.SlotFilling.Suggestions[0] != "08:00" {
		t.Errorf("Suggestions = %v, want clock times", p.SlotFilling.Suggestions)
	}
}

func TestQuickPainEntry(t *testing.T) {
	s := quickPainEntrySkill()

	got := s.Match(testInput("schmerz stärke 7", plan.UserContext{}))
	if got.Confidence < 0.99 {
		t.Errorf("Confidence = %v, want 1.0", got.Confidence)
	}
	if v := got.Slots["level"]; v.Number == nil || *v.Number != 7 {
		t.Fatalf("level slot = %+v, want 7", v)
	}

	p := s.Build(BuildInput{Slots: got.Slots, Confidence: got.Confidence})
	if p.Kind != plan.KindMutation || p.Mutation.MutationType != plan.MutationCreatePainEntry {
		t.Fatalf("Build() = %+v, want create_pain_entry mutation", p)
	}
	if p.Mutation.CreatePainEntry.Level != 7 {
		t.Errorf("Level = %d, want 7", p.Mutation.CreatePainEntry.Level)
	}
	undo := p.Mutation.Undo
	if undo == nil || undo.UndoPlan.Mutation.MutationType != plan.MutationDeleteEntry {
		t.Fatalf("Undo = %+v, want delete_entry undo plan", undo)
	}
	// The entry does not exist yet; the executor fills the ID.
	if undo.UndoPlan.Mutation.DeleteEntry.EntryID != "" {
		t.Errorf("undo EntryID = %q, want empty before execution",
			undo.UndoPlan.Mutation.DeleteEntry.EntryID)
	}

	// Without a level the skill asks.
	p = s.Build(BuildInput{Slots: map[string]plan.SlotValue{}, Confidence: 0.9})
	if p.Kind != plan.KindSlotFilling || p.SlotFilling.MissingSlot != "level" {
		t.Fatalf("Build() = %+v, want slot_filling for level", p)
	}
}

func TestRateIntake(t *testing.T) {
	s := rateIntakeSkill()
	ctx := plan.UserContext{
		Medications: []plan.Medication{{ID: "m1", Name: "Ibuprofen"}},
	}

	got := s.Match(testInput("ibuprofen hat gut geholfen", ctx))
	if got.Confidence < 0.99 {
		t.Errorf("Confidence = %v, want 1.0", got.Confidence)
	}
	if v := got.Slots["rating"]; v.Number == nil || *v.Number != 7 {
		t.Fatalf("rating slot = %+v, want 7 (phrase mapping)", v)
	}

	p := s.Build(BuildInput{Slots: got.Slots, Context: ctx, Confidence: got.Confidence})
	if p.Kind != plan.KindMutation || p.Mutation.MutationType != plan.MutationRateIntake {
		t.Fatalf("Build() = %+v, want rate_intake mutation", p)
	}
	ri := p.Mutation.RateIntake
	if ri.Medication != "Ibuprofen" || ri.MedicationID != "m1" || ri.Rating != 7 {
		t.Errorf("payload = %+v", ri)
	}
}

func TestMatch_OperatorWordNeverLowersConfidence(t *testing.T) {
	ctx := plan.UserContext{
		Medications:    []plan.Medication{{ID: "m1", Name: "Ibuprofen"}},
		RecentEntryIDs: []string{"e1"},
	}

	tests := []struct {
		skill  *Skill
		plain  string
		spoken string
	}{
		{deleteEntrySkill(), "den letzten eintrag", "lösche den letzten eintrag"},
		{deleteReminderSkill(), "die erinnerung für ibuprofen", "lösche die erinnerung für ibuprofen"},
		{editReminderSkill(), "die erinnerung auf 9 uhr", "verschiebe die erinnerung auf 9 uhr"},
		{rateIntakeSkill(), "ibuprofen mit 8", "bewerte ibuprofen mit 8"},
	}
	for _, tt := range tests {
		base := tt.skill.Match(testInput(tt.plain, ctx)).Confidence
		with := tt.skill.Match(testInput(tt.spoken, ctx)).Confidence
		if with < base {
			t.Errorf("%s: %q = %v scores below %q = %v; saying the operator word must not cost confidence",
				tt.skill.ID, tt.spoken, with, tt.plain, base)
		}
	}
}

func TestQueryMedStats_CategoryFallback(t *testing.T) {
	s := queryMedStatsSkill()

	// Unknown drug name falls back to the therapeutic category.
	got := s.Match(testInput("wie oft habe ich ibuprofen genommen", plan.UserContext{}))
	v, ok := got.Slots["medication"]
	if !ok || v.Text != string(lexicon.CategoryNSAID) {
		t.Fatalf("medication slot = %+v, want category %q", v, lexicon.CategoryNSAID)
	}
	if !hasReason(got.Reasons, "category fallback") {
		t.Errorf("Reasons = %v, want category-fallback note", got.Reasons)
	}

	p := s.Build(BuildInput{Slots: got.Slots, Confidence: got.Confidence})
	if p.Kind != plan.KindQuery || p.Query.QueryType != plan.QueryMedStats {
		t.Fatalf("Build() = %+v, want med_stats query", p)
	}
	if p.Query.Params["category"] != string(lexicon.CategoryNSAID) {
		t.Errorf("Params = %v, want category param", p.Query.Params)
	}
}

func TestSaveNote_Body(t *testing.T) {
	s := saveNoteSkill()

	got := s.Match(testInput("notiere kopfschmerzen seit dem aufstehen", plan.UserContext{}))
	if v := got.Slots["text"]; v.Text != "kopfschmerzen seit dem aufstehen" {
		t.Fatalf("text slot = %q", v.Text)
	}

	p := s.Build(BuildInput{Slots: got.Slots, Confidence: got.Confidence})
	if p.Kind != plan.KindMutation || p.Mutation.MutationType != plan.MutationCreateNote {
		t.Fatalf("Build() = %+v, want create_note mutation", p)
	}
	if p.Mutation.CreateNote.Text != "kopfschmerzen seit dem aufstehen" {
		t.Errorf("Text = %q", p.Mutation.CreateNote.Text)
	}

	// A bare trigger with no body asks for the text.
	p = s.Build(BuildInput{Slots: map[string]plan.SlotValue{}, Confidence: 0.9})
	if p.Kind != plan.KindSlotFilling || p.SlotFilling.MissingSlot != "text" {
		t.Fatalf("Build() = %+v, want slot_filling for text", p)
	}
}
