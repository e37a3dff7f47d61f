package scoring

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// distinctWords builds a resume body of n unique word tokens.
func distinctWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%02d", i)
	}
	return strings.Join(words, " ")
}

func TestScreenResumeTooShort(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t  "},
		{"punctuation only", "... --- !!!"},
		{"29 tokens", distinctWords(29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ScreenResume(tt.text)
			assert.False(t, res.Pass)
			assert.Equal(t, 0.0, res.Score)
			assert.Equal(t, "Too short", res.Reason)
		})
	}
}

func TestScreenResumeAllDistinctTokens(t *testing.T) {
	// 30 unique tokens: uniform distribution, entropy_norm = 1.0 and
	// redundancy = 1.0, so the score maxes out.
	res := ScreenResume(distinctWords(30))

	assert.True(t, res.Pass)
	assert.Equal(t, 100.0, res.Score)
	assert.Equal(t, "OK", res.Reason)
}

func TestScreenResumeRepetitiveTextFails(t *testing.T) {
	res := ScreenResume(strings.Repeat("go ", 40))

	assert.False(t, res.Pass)
	assert.Equal(t, "Low signal", res.Reason)
	// One token repeated 40 times: zero entropy, redundancy 1/40.
	assert.InDelta(t, 1.13, res.Score, 0.01)
}

func TestScreenResumeCaseFolding(t *testing.T) {
	// Mixed-case duplicates fold to one token each, so the score matches
	// the lower-cased equivalent.
	lower := distinctWords(30)
	upper := strings.ToUpper(lower)
	assert.Equal(t, ScreenResume(lower), ScreenResume(upper))
}

func TestScreenResumeDeterministic(t *testing.T) {
	text := distinctWords(25) + " go go go go go mysql mysql linux"
	assert.Equal(t, ScreenResume(text), ScreenResume(text))
}
