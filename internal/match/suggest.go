package match

import (
	"cmp"
	"slices"
)

// MinSuggestionScore is the lowest normalized similarity still offered as
// a suggestion.
const MinSuggestionScore = 0.5

// Suggest returns up to limit candidates that look like name, best first.
// Ties keep candidate order.
func Suggest(name string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
		index int
	}

	var ranked []scored

	for i, c := range candidates {
		if c == name {
			continue
		}

		score := Similarity(name, c)
		if score < MinSuggestionScore {
			continue
		}

		ranked = append(ranked, scored{name: c, score: score, index: i})
	}

	slices.SortFunc(ranked, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}

		return cmp.Compare(a.index, b.index)
	})

	out := make([]string, 0, min(limit, len(ranked)))
	for _, r := range ranked {
		if len(out) == limit {
			break
		}

		out = append(out, r.name)
	}

	return out
}
