// Package lexicon provides deterministic text canonicalization and
// primitive extractors for informal German voice commands. Everything
// here is pure: same input, same output, no clock and no I/O.
package lexicon

import (
	"regexp"
	"strings"
)

// whitespaceRegex matches one or more whitespace characters
var whitespaceRegex = regexp.MustCompile(`\s+`)

// politePrefixes are leading phrases stripped before matching. Longer
// phrases come first so "könntest du bitte" wins over "bitte".
var politePrefixes = []string{
	"könntest du bitte",
	"könntest du mir bitte",
	"könntest du",
	"kannst du bitte",
	"kannst du mir bitte",
	"kannst du",
	"würdest du bitte",
	"würdest du",
	"ich möchte gerne",
	"ich möchte",
	"ich würde gerne",
	"ich hätte gerne",
	"ich hätte gern",
	"ich will",
	"bitte",
	"hey",
	"hallo",
}

// fillerWords are removed from the canonical form. Confirmation words
// ("ja", "ok") are not fillers here; the noise guard owns those.
var fillerWords = map[string]bool{
	"äh":        true,
	"ähm":       true,
	"mhm":       true,
	"hm":        true,
	"hmm":       true,
	"mal":       true,
	"halt":      true,
	"eben":      true,
	"doch":      true,
	"quasi":     true,
	"sozusagen": true,
	"irgendwie": true,
	"also":      true,
}

// Canonicalize normalizes an utterance for matching:
// 1. Lowercase
// 2. Collapse whitespace
// 3. Strip terminal punctuation
// 4. Strip leading polite phrases
// 5. Remove filler words (never down to an empty sentence)
// The step order is fixed; tests depend on it.
func Canonicalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = whitespaceRegex.ReplaceAllString(s, " ")
	s = strings.TrimRight(s, ".!?… ")

	// Polite prefixes can stack ("hey kannst du bitte ...").
	for {
		stripped := false
		for _, prefix := range politePrefixes {
			if s == prefix {
				s = ""
				stripped = true
				break
			}
			if strings.HasPrefix(s, prefix+" ") {
				s = strings.TrimSpace(s[len(prefix):])
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}

	tokens := strings.Fields(s)
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !fillerWords[tok] {
			kept = append(kept, tok)
		}
	}
	// Filler removal must never erase the sentence entirely.
	if len(kept) == 0 {
		return s
	}
	return strings.Join(kept, " ")
}

// Tokens splits canonical text into word tokens with surrounding
// punctuation trimmed.
func Tokens(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.Trim(f, ".,!?;:\"'()")
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// ContainsKeyword reports whether text mentions the keyword, using
// whole-word matching for short keywords (3 runes or fewer) and
// substring matching for longer ones. Short keywords like "weg" would
// otherwise fire inside unrelated words.
func ContainsKeyword(text, keyword string) bool {
	return containsKeyword(text, keyword)
}

func containsKeyword(text, keyword string) bool {
	if len([]rune(keyword)) <= 3 {
		for _, tok := range Tokens(text) {
			if tok == keyword {
				return true
			}
		}
		return false
	}
	return strings.Contains(text, keyword)
}

// ContainsWholeWord reports whether text contains the word as an
// exact token, case-insensitively. Used by the safety policy, which
// requires explicit trigger words in the raw utterance.
func ContainsWholeWord(text, word string) bool {
	word = strings.ToLower(word)
	for _, tok := range Tokens(strings.ToLower(text)) {
		if tok == word {
			return true
		}
	}
	return false
}
