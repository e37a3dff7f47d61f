package scoring

import (
	"math"
	"regexp"
	"strings"
)

// Level1Threshold is the minimum resume score required to advance.
const Level1Threshold = 60.0

// Resumes with fewer word tokens than this are too short to assess.
const minResumeTokens = 30

var wordPattern = regexp.MustCompile(`\w+`)

// ScreenResume scores the information density of raw resume text from the
// token frequency distribution: Shannon entropy normalized by log(token
// count), blended with the distinct/total token ratio. Pure and
// deterministic; inputs too short to assess fail softly with a zero score.
func ScreenResume(text string) Result {
	tokens := wordPattern.FindAllString(strings.ToLower(text), -1)
	if len(tokens) < minResumeTokens {
		return Result{Pass: false, Score: 0.0, Reason: "Too short"}
	}

	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	total := float64(len(tokens))

	entropy := 0.0
	for _, c := range counts {
		p := float64(c) / total
		entropy -= p * math.Log(p)
	}
	entropyNorm := math.Min(entropy/math.Log(total), 1.0)

	redundancy := float64(len(counts)) / total

	// Threshold is applied to the unrounded score; only the reported value
	// is rounded.
	score := 100 * (0.55*entropyNorm + 0.45*redundancy)
	if score >= Level1Threshold {
		return Result{Pass: true, Score: round2(score), Reason: "OK"}
	}
	return Result{Pass: false, Score: round2(score), Reason: "Low signal"}
}
