package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssessScenarioTooShallow(t *testing.T) {
	tests := []struct {
		name   string
		answer string
	}{
		{"empty", ""},
		{"one sentence", "We investigate the issue"},
		{"trailing period only", "We investigate the issue."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := AssessScenario(tt.answer)
			assert.False(t, res.Pass)
			assert.Equal(t, 0.0, res.Score)
			assert.Equal(t, "Too shallow", res.Reason)
		})
	}
}

func TestAssessScenarioPhaseCoverageOnly(t *testing.T) {
	// Three phases hit (diagnose, contain, prevent), no dimension
	// keywords: flow 0.75, tradeoff 0, stability 0.
	res := AssessScenario("We investigate the issue. We rollback the change. We monitor after.")

	assert.False(t, res.Pass)
	assert.InDelta(t, 33.75, res.Score, 1e-6)
	assert.Equal(t, "Weak scenario reasoning", res.Reason)
}

func TestAssessScenarioBalancedNarrativePasses(t *testing.T) {
	// All four phases, every step weighing all four dimensions:
	// flow 1.0, tradeoff 1.0, dominance 0.25 so stability 0.75.
	answer := "We investigate the outage weighing risk and cost against downtime and stability. " +
		"We rollback the deploy balancing risk and cost against downtime and stability. " +
		"We fix the root cause weighing risk and cost against downtime and stability. " +
		"We monitor and automate checks balancing risk and cost against downtime and stability."

	res := AssessScenario(answer)

	assert.True(t, res.Pass)
	assert.InDelta(t, 95.0, res.Score, 1e-6)
	assert.Equal(t, "OK", res.Reason)
}

func TestAssessScenarioDominantDimension(t *testing.T) {
	// Risk mentioned in two steps and nothing else: dominance 1.0 wipes
	// out the stability term. flow 0.25 (fix), tradeoff 2/(2*4).
	res := AssessScenario("We accept the risk here. The risk is small. We fix it fast.")

	assert.False(t, res.Pass)
	assert.InDelta(t, 20.0, res.Score, 1e-6)
}

func TestAssessScenarioNewlineSegmentsAndCase(t *testing.T) {
	// Newlines split segments like periods do, and keyword matching is
	// case-insensitive.
	multiline := "We INVESTIGATE the outage\nWe ROLLBACK the deploy\nWe MONITOR after"
	dotted := "We investigate the outage. We rollback the deploy. We monitor after."
	assert.Equal(t, AssessScenario(dotted), AssessScenario(multiline))
}

func TestAssessScenarioDeterministic(t *testing.T) {
	answer := "We investigate the risk. We rollback to reduce downtime. We monitor uptime."
	assert.Equal(t, AssessScenario(answer), AssessScenario(answer))
}
