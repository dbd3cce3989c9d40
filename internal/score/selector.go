package score

import (
	"math/rand/v2"
	"sort"

	"github.com/ppiankov/tfquiz/internal/model"
)

// Selector picks quiz terms from scored tokens
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a selector drawing skip-ahead offsets from rng
func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// Rank returns terms sorted by score descending, ties kept in scorer order
func Rank(scores model.TermScores) []string {
	ranked := make([]string, 0, len(scores.Order))
	for _, term := range scores.Order {
		if _, ok := scores.Scores[term]; ok {
			ranked = append(ranked, term)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return scores.Scores[ranked[i]] > scores.Scores[ranked[j]]
	})
	return ranked
}

// Select returns up to n distinct terms.
//
// Guaranteed terms that were scored come first, in the given order. The
// ranked list is then walked from the top, advancing by a random step in
// [1, variation] after each position, so repeated calls yield different sets.
func (s *Selector) Select(scores model.TermScores, n, variation int, guaranteed []string) []string {
	selected := []string{}
	if n <= 0 || scores.Len() == 0 {
		return selected
	}
	if variation < 1 {
		variation = 1
	}

	used := make(map[string]bool)
	for _, term := range guaranteed {
		if len(selected) >= n {
			return selected
		}
		if !scores.Has(term) || used[term] {
			continue
		}
		used[term] = true
		selected = append(selected, term)
	}

	ranked := Rank(scores)
	for i := 0; len(selected) < n && i < len(ranked); {
		term := ranked[i]
		if !used[term] {
			used[term] = true
			selected = append(selected, term)
		}
		i += 1 + s.rng.IntN(variation)
	}

	return selected
}
