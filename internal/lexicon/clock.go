package lexicon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	clockRegex = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	hourRegex  = regexp.MustCompile(`\b(?:um\s+)?(\d{1,2})\s*uhr\b`)
	umRegex    = regexp.MustCompile(`\bum\s+(\d{1,2})\b`)
)

// daypartTimes maps rough day parts to default reminder times.
var daypartTimes = []struct {
	word string
	time string
}{
	{"morgens", "08:00"},
	{"früh", "08:00"},
	{"mittags", "12:00"},
	{"nachmittags", "16:00"},
	{"abends", "20:00"},
	{"nachts", "22:00"},
}

// ExtractClockTime finds a clock time ("um 8 uhr", "08:30",
// "abends") and returns it normalized as "HH:MM", or nil.
func ExtractClockTime(text string) *string {
	if m := clockRegex.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		if h <= 23 && min <= 59 {
			s := fmt.Sprintf("%02d:%02d", h, min)
			return &s
		}
	}
	if m := hourRegex.FindStringSubmatch(text); m != nil {
		if h, err := strconv.Atoi(m[1]); err == nil && h <= 23 {
			s := fmt.Sprintf("%02d:00", h)
			return &s
		}
	}
	if m := umRegex.FindStringSubmatch(text); m != nil {
		if h, err := strconv.Atoi(m[1]); err == nil && h <= 23 {
			s := fmt.Sprintf("%02d:00", h)
			return &s
		}
	}
	for _, d := range daypartTimes {
		if strings.Contains(text, d.word) {
			s := d.time
			return &s
		}
	}
	return nil
}
