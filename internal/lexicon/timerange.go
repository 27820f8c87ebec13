package lexicon

import (
	"regexp"
	"strconv"
	"strings"
)

// Explicit numeric ranges. These override the named phrases below.
var (
	daysRegex   = regexp.MustCompile(`(\d+)\s+tage?n?\b`)
	weeksRegex  = regexp.MustCompile(`(\d+)\s+wochen?\b`)
	monthsRegex = regexp.MustCompile(`(\d+)\s+monate?n?\b`)
)

// namedRanges maps time phrases to day counts. Longer phrases first.
var namedRanges = []struct {
	phrase string
	days   int
}{
	{"letzte woche", 7},
	{"letzten woche", 7},
	{"diese woche", 7},
	{"dieser woche", 7},
	{"letzten monat", 30},
	{"letzter monat", 30},
	{"diesen monat", 30},
	{"diesem monat", 30},
	{"letztes jahr", 365},
	{"letzten jahr", 365},
	{"dieses jahr", 365},
	{"gestern", 2},
	{"heute", 1},
}

// ExtractTimeRange maps a time phrase to a day count: "letzte woche"
// -> 7, "letzten 14 tage" -> 14. Explicit numeric ranges win over
// named ones. Returns nil if no range is present.
func ExtractTimeRange(text string) *int {
	if m := daysRegex.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return &n
		}
	}
	if m := weeksRegex.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			d := n * 7
			return &d
		}
	}
	if m := monthsRegex.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			d := n * 30
			return &d
		}
	}
	for _, r := range namedRanges {
		if strings.Contains(text, r.phrase) {
			d := r.days
			return &d
		}
	}
	return nil
}
