package scoring

import (
	"regexp"
	"strings"
)

// Level3Threshold is the minimum scenario score for a HIRE decision.
// Deliberately stricter than the earlier rounds.
const Level3Threshold = 75.0

// Incident-response phases and the keywords that mark them, matched as
// case-insensitive substrings per segment.
var phaseKeywords = map[string][]string{
	"diagnose": {"investigate", "analyze", "identify"},
	"contain":  {"rollback", "mitigate", "reduce"},
	"fix":      {"fix", "resolve", "repair"},
	"prevent":  {"monitor", "prevent", "automate"},
}

// Reasoning dimensions a candidate can weigh against each other.
var dimensionKeywords = map[string][]string{
	"risk":        {"risk", "impact"},
	"cost":        {"cost", "budget"},
	"time":        {"downtime", "delay"},
	"reliability": {"uptime", "stability"},
}

var segmentSplit = regexp.MustCompile(`[.\n]+`)

// AssessScenario scores a free-text incident-response narrative on three
// axes: flow (distinct phases covered), tradeoff (dimension breadth per
// segment that mentions any dimension) and stability (1 - dominance of the
// most-mentioned dimension). Narratives with fewer than two segments fail
// softly.
func AssessScenario(answer string) Result {
	var steps []string
	for _, part := range segmentSplit.Split(answer, -1) {
		if s := strings.ToLower(strings.TrimSpace(part)); s != "" {
			steps = append(steps, s)
		}
	}
	if len(steps) < 2 {
		return Result{Pass: false, Score: 0.0, Reason: "Too shallow"}
	}

	phasesHit := make(map[string]bool)
	dimCounts := make(map[string]int)
	totalDimHits := 0
	stepsWithDims := 0

	for _, step := range steps {
		for phase, keys := range phaseKeywords {
			if containsAny(step, keys) {
				phasesHit[phase] = true
			}
		}

		// A dimension counts at most once per segment.
		hits := 0
		for dim, keys := range dimensionKeywords {
			if containsAny(step, keys) {
				hits++
				dimCounts[dim]++
			}
		}
		if hits > 0 {
			stepsWithDims++
			totalDimHits += hits
		}
	}

	flow := float64(len(phasesHit)) / float64(len(phaseKeywords))

	tradeoff := 0.0
	if stepsWithDims > 0 {
		tradeoff = float64(totalDimHits) / float64(stepsWithDims*len(dimensionKeywords))
	}

	// With zero dimension hits dominance is defined as 1.0, so stability
	// contributes nothing.
	dominance := 1.0
	if totalDimHits > 0 {
		maxCount := 0
		for _, c := range dimCounts {
			if c > maxCount {
				maxCount = c
			}
		}
		dominance = float64(maxCount) / float64(totalDimHits)
	}
	stability := 1 - dominance

	score := 100 * (0.45*flow + 0.35*tradeoff + 0.20*stability)
	if score >= Level3Threshold {
		return Result{Pass: true, Score: round2(score), Reason: "OK"}
	}
	return Result{Pass: false, Score: round2(score), Reason: "Weak scenario reasoning"}
}

func containsAny(s string, keys []string) bool {
	for _, k := range keys {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
