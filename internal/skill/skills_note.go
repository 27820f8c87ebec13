package skill

import (
	"strings"

	"github.com/hpungsan/voxplan/internal/lexicon"
	"github.com/hpungsan/voxplan/internal/plan"
)

// notePrefixes are leading trigger phrases stripped to get the note
// body. Longest first.
var notePrefixes = []string{
	"speichere eine notiz",
	"erstelle eine notiz",
	"speichere notiz",
	"neue notiz",
	"notiere",
	"notiz",
}

// saveNoteSkill stores a free-text note; the note body is whatever
// follows the trigger phrase.
func saveNoteSkill() *Skill {
	s := &Skill{
		ID:       "save_note",
		Label:    "Notiz speichern",
		Risk:     plan.RiskMedium,
		Examples: []string{"notiere kopfschmerzen seit dem aufstehen", "speichere eine notiz", "neue notiz wetterumschwung"},
		Keywords: []string{"notiz", "notiere", "notieren", "speichere"},
		Slots: []SlotDef{
			{Name: "text", Prompt: "Was soll in der Notiz stehen?", Required: true},
		},
	}
	s.Match = func(in MatchInput) MatchResult {
		kw, ex, reasons := baseMatch(in, s)
		bonus := 0.0
		if lexicon.DetectObject(in.Canonical) == lexicon.ObjectNotes {
			bonus = 1.0
			reasons = append(reasons, "note object")
		}
		slots := map[string]plan.SlotValue{}
		if body := noteBody(in.Canonical); body != "" {
			slots["text"] = plan.TextSlot(body)
			reasons = append(reasons, "note body present")
		}
		return MatchResult{Confidence: Combine(kw, ex, bonus), Slots: slots, Reasons: reasons}
	}
	s.Build = func(in BuildInput) *plan.Plan {
		if p := RequestSlot(s, in.Slots, in.Confidence, nil); p != nil {
			return p
		}
		text := in.Slots["text"].Text
		return plan.NewMutation(in.Confidence, "Speichere Notiz", plan.Mutation{
			MutationType: plan.MutationCreateNote,
			Risk:         plan.RiskMedium,
			CreateNote:   &plan.CreateNotePayload{Text: text},
		})
	}
	return s
}

// noteBody strips the trigger phrase and returns the remaining text.
func noteBody(canonical string) string {
	for _, prefix := range notePrefixes {
		if strings.HasPrefix(canonical, prefix+" ") {
			return strings.TrimSpace(canonical[len(prefix):])
		}
	}
	return ""
}
