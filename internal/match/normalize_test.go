package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"WordsLimit", "wordslimit"},
		{"words_limit", "wordslimit"},
		{"words-limit", "wordslimit"},
		{"wordsLimit", "wordslimit"},
		{"SEMANTIC_RATIO", "semanticratio"},
		{"Semantic Ratio", "semanticratio"},
		{"", ""},
		{"ID", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdent(tt.input))
		})
	}
}
