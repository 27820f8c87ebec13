package lexicon

import "testing"

func TestDetectOperator(t *testing.T) {
	tests := []struct {
		text string
		want OperatorKind
	}{
		{"öffne tagebuch", OperatorOpen},
		{"zeige meine einträge", OperatorOpen},
		{"lösche die erinnerung", OperatorDelete},
		{"entferne den eintrag", OperatorDelete},
		{"erinnere mich an ibuprofen", OperatorCreate},
		{"verschiebe die erinnerung auf 9 uhr", OperatorEdit},
		{"bewerte ibuprofen mit 8", OperatorRate},
		{"wie viele einträge habe ich", OperatorCount},
		{"hilfe", OperatorHelp},
		{"ibuprofen", OperatorNone},
		{"", OperatorNone},
	}
	for _, tt := range tests {
		if got := DetectOperator(tt.text); got != tt.want {
			t.Errorf("DetectOperator(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestDetectOperator_FamilyOrder(t *testing.T) {
	// Open comes before delete in the scan order, so a mixed utterance
	// resolves to open.
	if got := DetectOperator("zeige was ich löschen kann"); got != OperatorOpen {
		t.Errorf("DetectOperator = %q, want %q", got, OperatorOpen)
	}
}

func TestHasOperatorWord(t *testing.T) {
	tests := []struct {
		text string
		kind OperatorKind
		want bool
	}{
		{"Bitte lösche die Erinnerung", OperatorDelete, true},
		{"Entferne den Eintrag", OperatorDelete, true},
		// "weg" inside another word is not a whole-word hit.
		{"ich bin unterwegs", OperatorDelete, false},
		{"die erinnerung für ibuprofen", OperatorDelete, false},
		{"verschiebe sie auf 9 uhr", OperatorEdit, true},
		{"die erinnerung auf 9 uhr", OperatorEdit, false},
		{"ibuprofen hat gut geholfen", OperatorRate, true},
	}
	for _, tt := range tests {
		if got := HasOperatorWord(tt.text, tt.kind); got != tt.want {
			t.Errorf("HasOperatorWord(%q, %q) = %v, want %v", tt.text, tt.kind, got, tt.want)
		}
	}
}

func TestOperatorWords_CopyIsIndependent(t *testing.T) {
	words := OperatorWords(OperatorDelete)
	if len(words) == 0 {
		t.Fatal("expected delete operator words")
	}
	words[0] = "mutated"
	if OperatorWords(OperatorDelete)[0] == "mutated" {
		t.Error("OperatorWords must return a copy")
	}
}

func TestDetectObject(t *testing.T) {
	tests := []struct {
		text string
		want ObjectKind
	}{
		{"zeige meine einträge", ObjectEntries},
		{"lösche die erinnerung", ObjectReminders},
		{"öffne die medikamentenliste", ObjectMedications},
		{"zeige die auswertung", ObjectAnalysis},
		{"irgendwas anderes", ObjectNone},
	}
	for _, tt := range tests {
		if got := DetectObject(tt.text); got != tt.want {
			t.Errorf("DetectObject(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
