// Package guard rejects non-actionable utterances before any skill
// matching runs, and flags bare ambiguous numbers for disambiguation.
package guard

import (
	"fmt"
	"strconv"

	"github.com/hpungsan/voxplan/internal/lexicon"
)

// confirmationWords are complete one-word answers ("ja", "danke").
// Alone they carry no command and are treated as noise; mid
// slot-filling the planner suppresses the guard instead.
var confirmationWords = map[string]bool{
	"ja":     true,
	"nein":   true,
	"ok":     true,
	"okay":   true,
	"gut":    true,
	"danke":  true,
	"genau":  true,
	"stimmt": true,
}

// ambiguousFillers are hesitation sounds with no content at all.
var ambiguousFillers = map[string]bool{
	"äh":  true,
	"ähm": true,
	"hm":  true,
	"hmm": true,
	"mhm": true,
	"na":  true,
	"tja": true,
	"aha": true,
	"so":  true,
}

// stopwords are German function words that carry no command content.
var stopwords = map[string]bool{
	"der": true, "die": true, "das": true, "ein": true, "eine": true,
	"einen": true, "und": true, "oder": true, "aber": true, "ich": true,
	"du": true, "er": true, "sie": true, "es": true, "wir": true,
	"ihr": true, "zu": true, "in": true, "im": true, "am": true,
	"an": true, "auf": true, "mit": true, "von": true, "für": true,
	"ist": true, "sind": true, "war": true, "den": true, "dem": true,
	"mir": true, "mich": true, "dir": true, "was": true, "wie": true,
	"wo": true, "wann": true, "mal": true, "dann": true, "doch": true,
	"noch": true, "schon": true, "auch": true, "bitte": true,
}

// minMeaningfulTokens is the minimum number of content tokens an
// utterance needs to be worth matching.
const minMeaningfulTokens = 1

// Result is the guard's advisory verdict on one utterance.
type Result struct {
	// IsNoise marks the utterance as non-actionable.
	IsNoise bool `json:"is_noise"`

	// IsAmbiguousNumber marks a bare 0-10 integer that needs a
	// disambiguation question instead of rejection.
	IsAmbiguousNumber bool `json:"is_ambiguous_number"`

	// Reason explains the verdict, for diagnostics.
	Reason string `json:"reason,omitempty"`

	// DisambiguationQuestion is set when IsAmbiguousNumber is true.
	DisambiguationQuestion string `json:"disambiguation_question,omitempty"`
}

// Check classifies raw input before skill matching. Rules run in
// priority order; the first hit wins. The verdict is advisory: the
// planner suppresses it mid slot-filling, where a bare number is the
// expected answer.
func Check(rawText string) Result {
	canonical := lexicon.Canonicalize(rawText)
	tokens := lexicon.Tokens(canonical)

	// Rule 1: exactly one integer 0-10 is probably a pain level, but
	// could be a rating or an entry number. Ask instead of guessing.
	// Runs before the length rule so single digits are not rejected
	// as too short.
	if len(tokens) == 1 {
		if n, err := strconv.Atoi(tokens[0]); err == nil && n >= 0 && n <= 10 {
			return Result{
				IsAmbiguousNumber: true,
				Reason:            "bare number needs context",
				DisambiguationQuestion: fmt.Sprintf(
					"Meinst du Schmerzstärke %d? Sag zum Beispiel „Schmerz Stärke %d“.", n, n),
			}
		}
	}

	// Rule 2: empty or too short to mean anything.
	if canonical == "" || len([]rune(canonical)) < 2 {
		return Result{IsNoise: true, Reason: "empty or too short"}
	}

	// Rule 3: a bare confirmation word is a complete non-command.
	if len(tokens) == 1 && confirmationWords[tokens[0]] {
		return Result{IsNoise: true, Reason: "bare confirmation word"}
	}

	// Rule 4: a lone hesitation sound.
	if len(tokens) == 1 && ambiguousFillers[tokens[0]] {
		return Result{IsNoise: true, Reason: "bare filler word"}
	}

	// Rule 5: nothing but function words.
	allStop := true
	for _, tok := range tokens {
		if !stopwords[tok] {
			allStop = false
			break
		}
	}
	if allStop {
		return Result{IsNoise: true, Reason: "only stopwords"}
	}

	// Rule 6: not enough content tokens.
	meaningful := 0
	for _, tok := range tokens {
		if !stopwords[tok] && len([]rune(tok)) >= 2 {
			meaningful++
		}
	}
	if meaningful < minMeaningfulTokens {
		return Result{IsNoise: true, Reason: "too few meaningful tokens"}
	}

	return Result{}
}
