package skill

import (
	"fmt"

	"github.com/hpungsan/voxplan/internal/lexicon"
	"github.com/hpungsan/voxplan/internal/plan"
)

// View names the presentation layer navigates to.
const (
	ViewDiary       = "diary"
	ViewAnalysis    = "analysis"
	ViewMedications = "medications"
	ViewReminders   = "reminders"
	ViewSettings    = "settings"
	ViewDoctors     = "doctors"
	ViewHelp        = "help"
)

// navDowngradeFunc lets a navigation skill cap its own confidence
// when a stronger competing cue is present, so a more specific skill
// wins.
type navDowngradeFunc func(in MatchInput) (cap float64, reason string)

// newNavSkill builds a low-risk navigation skill for one target view.
func newNavSkill(id, label, view string, keywords, examples []string, downgrade navDowngradeFunc) *Skill {
	s := &Skill{
		ID:       id,
		Label:    label,
		Risk:     plan.RiskLow,
		Examples: examples,
		Keywords: keywords,
	}
	s.Match = func(in MatchInput) MatchResult {
		kw, ex, reasons := baseMatch(in, s)
		bonus := 0.0
		if op := lexicon.DetectOperator(in.Canonical); op == lexicon.OperatorOpen {
			bonus = 1.0
			reasons = append(reasons, "explicit open operator")
		}
		conf := Combine(kw, ex, bonus)
		if downgrade != nil {
			if cap, reason := downgrade(in); cap > 0 && conf > cap {
				conf = cap
				reasons = append(reasons, reason)
			}
		}
		return MatchResult{Confidence: conf, Reasons: reasons}
	}
	s.Build = func(in BuildInput) *plan.Plan {
		return plan.NewNavigate(in.Confidence, fmt.Sprintf("Öffne %s", label), plan.Navigate{
			TargetView: view,
		})
	}
	return s
}

func navDiarySkill() *Skill {
	return newNavSkill("nav_diary", "Tagebuch", ViewDiary,
		[]string{"tagebuch", "eintrag", "einträge"},
		[]string{"öffne das tagebuch", "öffne tagebuch", "zeige meine einträge", "geh zum tagebuch"},
		func(in MatchInput) (float64, string) {
			// A time range points at the filtered list skill.
			if in.Entities.TimeRangeDays != nil {
				return 0.4, "downgraded: time range present"
			}
			return 0, ""
		})
}

func navAnalysisSkill() *Skill {
	return newNavSkill("nav_analysis", "Analyse", ViewAnalysis,
		[]string{"analyse", "auswertung", "statistik", "verlauf"},
		[]string{"öffne die analyse", "zeige die auswertung", "zeige meinen verlauf"},
		nil)
}

func navMedicationsSkill() *Skill {
	return newNavSkill("nav_medications", "Medikamente", ViewMedications,
		[]string{"medikamente", "medikament", "tabletten"},
		[]string{"öffne meine medikamente", "zeige die medikamentenliste"},
		func(in MatchInput) (float64, string) {
			// Rating talk belongs to the intake-rating skill.
			if lexicon.DetectOperator(in.Canonical) == lexicon.OperatorRate {
				return 0.4, "downgraded: rate operator present"
			}
			return 0, ""
		})
}

func navRemindersSkill() *Skill {
	return newNavSkill("nav_reminders", "Erinnerungen", ViewReminders,
		[]string{"erinnerungen", "erinnerung", "wecker"},
		[]string{"öffne die erinnerungen", "zeige meine erinnerungen"},
		func(in MatchInput) (float64, string) {
			// Create/edit/delete verbs belong to the reminder
			// mutation skills.
			switch lexicon.DetectOperator(in.Canonical) {
			case lexicon.OperatorCreate, lexicon.OperatorEdit, lexicon.OperatorDelete:
				return 0.4, "downgraded: mutation operator present"
			}
			return 0, ""
		})
}

func navSettingsSkill() *Skill {
	return newNavSkill("nav_settings", "Einstellungen", ViewSettings,
		[]string{"einstellungen", "einstellung", "optionen"},
		[]string{"öffne die einstellungen", "geh zu den optionen"},
		nil)
}

func navDoctorsSkill() *Skill {
	return newNavSkill("nav_doctors", "Ärzte", ViewDoctors,
		[]string{"arzt", "ärzte", "doktor"},
		[]string{"öffne meine ärzte", "zeige die arztliste"},
		nil)
}

// helpSkill navigates to the command overview.
func helpSkill() *Skill {
	s := &Skill{
		ID:       "help",
		Label:    "Hilfe",
		Risk:     plan.RiskLow,
		Examples: []string{"hilfe", "was kannst du", "zeige die anleitung"},
		Keywords: []string{"hilfe", "help", "anleitung", "kannst"},
	}
	s.Match = func(in MatchInput) MatchResult {
		kw, ex, reasons := baseMatch(in, s)
		bonus := 0.0
		if lexicon.DetectOperator(in.Canonical) == lexicon.OperatorHelp {
			bonus = 1.0
			reasons = append(reasons, "explicit help operator")
		}
		return MatchResult{Confidence: Combine(kw, ex, bonus), Reasons: reasons}
	}
	s.Build = func(in BuildInput) *plan.Plan {
		return plan.NewNavigate(in.Confidence, "Zeige Hilfe", plan.Navigate{
			TargetView: ViewHelp,
		})
	}
	return s
}
