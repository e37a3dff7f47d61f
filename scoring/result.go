package scoring

import "math"

// Result is the outcome of a text-based scoring round (levels 1 and 3).
type Result struct {
	Pass   bool    `json:"pass"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// Map flattens the result into an open diagnostic payload for persistence.
func (r Result) Map() map[string]interface{} {
	return map[string]interface{}{
		"pass":   r.Pass,
		"score":  r.Score,
		"reason": r.Reason,
	}
}

// TechnicalResult is the outcome of the structured technical round.
type TechnicalResult struct {
	Pass     bool    `json:"pass"`
	ProbPass float64 `json:"prob_pass"`
	Reason   string  `json:"reason"`
}

func (r TechnicalResult) Map() map[string]interface{} {
	return map[string]interface{}{
		"pass":      r.Pass,
		"prob_pass": r.ProbPass,
		"reason":    r.Reason,
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
