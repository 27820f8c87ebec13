package lexicon

import (
	"reflect"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Öffne Tagebuch", "öffne tagebuch"},
		{"collapse whitespace", "öffne   das\t tagebuch", "öffne das tagebuch"},
		{"terminal punctuation", "öffne tagebuch!?", "öffne tagebuch"},
		{"polite prefix", "kannst du bitte tagebuch öffnen", "tagebuch öffnen"},
		{"stacked prefixes", "hey kannst du bitte tagebuch öffnen", "tagebuch öffnen"},
		{"prefix alone", "bitte", ""},
		{"filler removal", "öffne mal das tagebuch", "öffne das tagebuch"},
		{"keeps content words", "zeige meine einträge", "zeige meine einträge"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonicalize(tt.input); got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalize_FillersNeverEraseSentence(t *testing.T) {
	// An utterance of nothing but fillers keeps its pre-filler form
	// instead of collapsing to the empty string.
	got := Canonicalize("ähm also")
	if got != "ähm also" {
		t.Errorf("Canonicalize(%q) = %q, want %q", "ähm also", got, "ähm also")
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Kannst du bitte das Tagebuch öffnen?",
		"öffne mal die Analyse!",
		"ERINNERE mich um 8 Uhr an Ibuprofen",
	}
	for _, in := range inputs {
		once := Canonicalize(in)
		twice := Canonicalize(once)
		if once != twice {
			t.Errorf("Canonicalize not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestTokens(t *testing.T) {
	got := Tokens(`öffne "tagebuch", bitte!`)
	want := []string{"öffne", "tagebuch", "bitte"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens = %v, want %v", got, want)
	}
}

func TestContainsKeyword(t *testing.T) {
	tests := []struct {
		text    string
		keyword string
		want    bool
	}{
		// Short keywords match whole words only.
		{"mach das weg", "weg", true},
		{"ich gehe weggehen", "weg", false},
		// Longer keywords match as substrings.
		{"zeige die erinnerungen", "erinnerung", true},
		{"öffne tagebuch", "tagebuch", true},
		{"öffne analyse", "tagebuch", false},
	}
	for _, tt := range tests {
		if got := ContainsKeyword(tt.text, tt.keyword); got != tt.want {
			t.Errorf("ContainsKeyword(%q, %q) = %v, want %v", tt.text, tt.keyword, got, tt.want)
		}
	}
}

func TestContainsWholeWord(t *testing.T) {
	if !ContainsWholeWord("Bitte LÖSCHE das", "lösche") {
		t.Error("expected case-insensitive whole-word match")
	}
	if ContainsWholeWord("erinnerungen", "erinnerung") {
		t.Error("substring must not count as a whole word")
	}
}
