package lexicon

import (
	"strings"

	"github.com/hpungsan/voxplan/internal/plan"
)

// MedicationCategory is a coarse therapeutic class used for fallback
// matching when the exact user medication is unknown.
type MedicationCategory string

const (
	CategoryNSAID          MedicationCategory = "nsaid"
	CategoryAnalgesic      MedicationCategory = "analgesic"
	CategoryOpioid         MedicationCategory = "opioid"
	CategoryTriptan        MedicationCategory = "triptan"
	CategoryAntidepressant MedicationCategory = "antidepressant"
	CategoryAnticonvulsant MedicationCategory = "anticonvulsant"
	CategoryUnknown        MedicationCategory = ""
)

// categoryStems maps drug-name fragments to categories. Matching is
// case-insensitive substring over the free-text name.
var categoryStems = []struct {
	stem     string
	category MedicationCategory
}{
	{"ibuprofen", CategoryNSAID},
	{"ibu", CategoryNSAID},
	{"diclofenac", CategoryNSAID},
	{"diclo", CategoryNSAID},
	{"naproxen", CategoryNSAID},
	{"aspirin", CategoryNSAID},
	{"ass", CategoryNSAID},
	{"paracetamol", CategoryAnalgesic},
	{"novalgin", CategoryAnalgesic},
	{"metamizol", CategoryAnalgesic},
	{"tilidin", CategoryOpioid},
	{"tramadol", CategoryOpioid},
	{"oxycodon", CategoryOpioid},
	{"morphin", CategoryOpioid},
	{"fentanyl", CategoryOpioid},
	{"triptan", CategoryTriptan},
	{"sumatriptan", CategoryTriptan},
	{"amitriptylin", CategoryAntidepressant},
	{"duloxetin", CategoryAntidepressant},
	{"pregabalin", CategoryAnticonvulsant},
	{"gabapentin", CategoryAnticonvulsant},
}

// FindMedicationCategory maps a free-text drug name to a therapeutic
// category, or CategoryUnknown.
func FindMedicationCategory(name string) MedicationCategory {
	lower := strings.ToLower(name)
	for _, cs := range categoryStems {
		if len([]rune(cs.stem)) <= 3 {
			if ContainsWholeWord(lower, cs.stem) {
				return cs.category
			}
			continue
		}
		if strings.Contains(lower, cs.stem) {
			return cs.category
		}
	}
	return CategoryUnknown
}

// FindMedications returns the user's known medications mentioned in
// the text, in list order. Short names (3 runes or fewer) must appear
// as whole words.
func FindMedications(text string, known []plan.Medication) []plan.Medication {
	lower := strings.ToLower(text)
	var found []plan.Medication
	for _, med := range known {
		name := strings.ToLower(strings.TrimSpace(med.Name))
		if name == "" {
			continue
		}
		if containsKeyword(lower, name) {
			found = append(found, med)
		}
	}
	return found
}
