package score

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/tfquiz/internal/model"
)

// tokenPattern keeps tokens of two or more word characters
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// Scorer calculates TF-IDF salience for the terms of a single document
type Scorer struct {
	stopwords map[string]bool
}

// NewScorer creates a new scorer using the English stopword list
func NewScorer() *Scorer {
	return &Scorer{
		stopwords: EnglishStopwords(),
	}
}

// Tokenize splits text into lowercase tokens, dropping stopwords
func (s *Scorer) Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)

	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if s.stopwords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Score assigns each term a TF-IDF weight.
//
// The text is the whole corpus, so document frequency is 1 for every term and
// the smoothed idf ln((1+n)/(1+df))+1 is constant. Ranking reduces to
// relative term frequency. Weights are L2-normalized; terms are ordered
// alphabetically.
func (s *Scorer) Score(text string) model.TermScores {
	result := model.TermScores{
		Scores: make(map[string]float64),
		Order:  []string{},
	}

	tokens := s.Tokenize(text)
	if len(tokens) == 0 {
		return result
	}

	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}

	const docs, docFreq = 1.0, 1.0
	idf := math.Log((1+docs)/(1+docFreq)) + 1

	var norm float64
	for term, tf := range counts {
		w := float64(tf) * idf
		result.Scores[term] = w
		norm += w * w
		result.Order = append(result.Order, term)
	}

	norm = math.Sqrt(norm)
	for term, w := range result.Scores {
		result.Scores[term] = w / norm
	}

	sort.Strings(result.Order)
	return result
}
