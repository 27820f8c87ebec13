package lexicon

import (
	"regexp"
	"strconv"
	"strings"
)

var integerTokenRegex = regexp.MustCompile(`^\d+$`)

// ExtractNumbers returns all standalone integer tokens in order.
func ExtractNumbers(text string) []int {
	var out []int
	for _, tok := range Tokens(text) {
		if integerTokenRegex.MatchString(tok) {
			n, err := strconv.Atoi(tok)
			if err == nil {
				out = append(out, n)
			}
		}
	}
	return out
}

// ordinalStems maps German ordinal stems to positions. Matching is by
// prefix so "zweite", "zweiten", "zweiter" all resolve to 2. The
// value -1 means "the last one".
var ordinalStems = []struct {
	stem  string
	value int
}{
	{"vorletzte", -2},
	{"letzte", -1},
	{"erste", 1},
	{"zweite", 2},
	{"dritte", 3},
	{"vierte", 4},
	{"fünfte", 5},
	{"sechste", 6},
	{"siebte", 7},
	{"achte", 8},
	{"neunte", 9},
	{"zehnte", 10},
}

// ExtractOrdinal finds an ordinal reference ("zweiter eintrag",
// "letzte notiz"). Negative values count from the end. Returns nil if
// none is present.
func ExtractOrdinal(text string) *int {
	for _, tok := range Tokens(text) {
		for _, o := range ordinalStems {
			if strings.HasPrefix(tok, o.stem) {
				v := o.value
				return &v
			}
		}
	}
	return nil
}

// ratingNumberRegex matches an explicit rating number after a cue
// word, e.g. "stärke 7", "level 8", "auf 3".
var ratingNumberRegex = regexp.MustCompile(`(?:stärke|level|stufe|auf|bei)\s+(10|\d)\b`)

// ratingPhrases maps rating phrases to the 0-10 scale. Longer phrases
// first so "sehr gut" wins over "gut".
var ratingPhrases = []struct {
	phrase string
	value  int
}{
	{"überhaupt nicht", 0},
	{"gar nicht", 0},
	{"sehr schlecht", 1},
	{"sehr stark", 9},
	{"sehr gut", 9},
	{"schlecht", 2},
	{"kaum", 2},
	{"wenig", 3},
	{"etwas", 4},
	{"mittelmäßig", 5},
	{"mittel", 5},
	{"ziemlich", 6},
	{"gut", 7},
	{"stark", 8},
	{"extrem", 10},
	{"maximal", 10},
	{"perfekt", 10},
}

// ExtractRating finds a 0-10 rating: the explicit-number pattern
// first, then a bare standalone 0-10 token, then the phrase table.
// Returns nil if none is present.
func ExtractRating(text string) *int {
	if m := ratingNumberRegex.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n >= 0 && n <= 10 {
			return &n
		}
	}
	for _, n := range ExtractNumbers(text) {
		if n >= 0 && n <= 10 {
			v := n
			return &v
		}
	}
	// Sort by phrase length so the most specific wording wins.
	best := -1
	bestLen := 0
	for _, p := range ratingPhrases {
		if strings.Contains(text, p.phrase) && len(p.phrase) > bestLen {
			best = p.value
			bestLen = len(p.phrase)
		}
	}
	if best >= 0 {
		return &best
	}
	return nil
}
