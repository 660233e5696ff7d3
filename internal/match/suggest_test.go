package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	fields := []string{"Query", "Offset", "Limit", "WordsLimit", "Vector", "SemanticRatio"}

	tests := []struct {
		name     string
		limit    int
		expected []string
	}{
		{"Qeury", 3, []string{"Query"}},
		{"words_limit", 3, []string{"WordsLimit", "Limit"}},
		{"Limt", 3, []string{"Limit"}},
		{"Limit", 3, []string{"WordsLimit"}},
		{"Zzzzzz", 3, []string{}},
		{"WordLimit", 1, []string{"WordsLimit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Suggest(tt.name, fields, tt.limit))
		})
	}
}
