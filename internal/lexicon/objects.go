package lexicon

// ObjectKind is a noun domain detected in an utterance.
type ObjectKind string

const (
	ObjectNone        ObjectKind = ""
	ObjectEntries     ObjectKind = "entries"
	ObjectNotes       ObjectKind = "notes"
	ObjectReminders   ObjectKind = "reminders"
	ObjectAnalysis    ObjectKind = "analysis"
	ObjectReport      ObjectKind = "report"
	ObjectMedications ObjectKind = "medications"
	ObjectProfile     ObjectKind = "profile"
	ObjectSettings    ObjectKind = "settings"
	ObjectDoctors     ObjectKind = "doctors"
)

// objectOrder fixes the domain scan order for DetectObject.
var objectOrder = []ObjectKind{
	ObjectEntries,
	ObjectNotes,
	ObjectReminders,
	ObjectAnalysis,
	ObjectReport,
	ObjectMedications,
	ObjectProfile,
	ObjectSettings,
	ObjectDoctors,
}

var objectWords = map[ObjectKind][]string{
	ObjectEntries:     {"eintrag", "einträge", "eintragung", "tagebuch"},
	ObjectNotes:       {"notiz", "notizen"},
	ObjectReminders:   {"erinnerung", "erinnerungen", "wecker"},
	ObjectAnalysis:    {"analyse", "auswertung", "statistik", "verlauf"},
	ObjectReport:      {"bericht", "report"},
	ObjectMedications: {"medikament", "medikamente", "tablette", "tabletten", "schmerzmittel"},
	ObjectProfile:     {"profil", "konto"},
	ObjectSettings:    {"einstellung", "einstellungen", "optionen"},
	ObjectDoctors:     {"arzt", "ärzte", "ärztin", "doktor"},
}

// DetectObject returns the first matching noun domain in the fixed
// domain order, or ObjectNone.
func DetectObject(text string) ObjectKind {
	for _, kind := range objectOrder {
		for _, word := range objectWords[kind] {
			if containsKeyword(text, word) {
				return kind
			}
		}
	}
	return ObjectNone
}
