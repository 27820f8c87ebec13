package skill

import (
	"fmt"
	"math"
	"strings"

	"github.com/hpungsan/voxplan/internal/lexicon"
)

// Confidence weights. Policy data: fixed at build time, never tuned
// at runtime, so planning stays deterministic.
const (
	WeightKeywords = 0.5
	WeightExamples = 0.3
	WeightBonus    = 0.2

	// expectedKeywordHits is how many keyword hits count as full
	// keyword coverage. Commands are two or three words long; a single
	// hit on a skill's keyword list is already a strong signal.
	expectedKeywordHits = 1
)

// KeywordScore returns the keyword-overlap score in [0,1] and the
// matched keywords. Short keywords match whole words only.
func KeywordScore(canonical string, keywords []string) (float64, []string) {
	var matched []string
	for _, kw := range keywords {
		if lexicon.ContainsKeyword(canonical, kw) {
			matched = append(matched, kw)
		}
	}
	if len(matched) == 0 {
		return 0, nil
	}
	score := float64(len(matched)) / expectedKeywordHits
	if score > 1 {
		score = 1
	}
	return score, matched
}

// ExampleScore returns the best word-overlap score in [0,1] between
// the canonical text and the skill's example phrases, plus the best
// example.
func ExampleScore(canonical string, examples []string) (float64, string) {
	tokens := lexicon.Tokens(canonical)
	tokenSet := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = true
	}

	best := 0.0
	bestExample := ""
	for _, ex := range examples {
		exTokens := lexicon.Tokens(strings.ToLower(ex))
		if len(exTokens) == 0 {
			continue
		}
		hits := 0
		for _, t := range exTokens {
			if tokenSet[t] {
				hits++
			}
		}
		score := float64(hits) / float64(len(exTokens))
		if score > best {
			best = score
			bestExample = ex
		}
	}
	return best, bestExample
}

// Combine folds the three signals into a confidence with the fixed
// weights, clamped to [0,1]. The sum is rounded to nine decimals so a
// score meant to land exactly on a tier threshold is not pushed under
// it by floating-point representation.
func Combine(keywordScore, exampleScore, bonus float64) float64 {
	c := WeightKeywords*keywordScore + WeightExamples*exampleScore + WeightBonus*bonus
	c = math.Round(c*1e9) / 1e9
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// baseMatch scores an utterance against a skill's keyword and example
// lists and starts the reasons list. Bonus starts at zero; skills add
// their own signal on top.
func baseMatch(in MatchInput, s *Skill) (keywordScore, exampleScore float64, reasons []string) {
	keywordScore, matched := KeywordScore(in.Canonical, s.Keywords)
	if len(matched) > 0 {
		reasons = append(reasons, fmt.Sprintf("keywords: %s", strings.Join(matched, ", ")))
	}
	exampleScore, bestExample := ExampleScore(in.Canonical, s.Examples)
	if exampleScore > 0 {
		reasons = append(reasons, fmt.Sprintf("example %.2f: %q", exampleScore, bestExample))
	}
	return keywordScore, exampleScore, reasons
}
