package statement

import (
	"math/rand/v2"
	"strings"

	"github.com/ppiankov/tfquiz/internal/model"
)

// DefaultMaxAttempts bounds the number of synthesis passes
const DefaultMaxAttempts = 100

// Synthesizer weaves quiz terms into true/false statements
type Synthesizer struct {
	rng         *rand.Rand
	maxAttempts int
}

// NewSynthesizer creates a synthesizer. A non-positive maxAttempts uses
// DefaultMaxAttempts.
func NewSynthesizer(rng *rand.Rand, maxAttempts int) *Synthesizer {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Synthesizer{
		rng:         rng,
		maxAttempts: maxAttempts,
	}
}

type combination struct {
	sentence string
	term     string
}

// run holds the de-duplication state of one Synthesize call
type run struct {
	usedCombos map[combination]bool
	emitted    map[string]bool
	statements []model.Statement
}

// Synthesize returns up to q distinct statements built from text and terms.
//
// Each pass shuffles terms and sentences, then lets every term consume the
// first unused sentence containing it. The sentence becomes either a true
// statement or, with another term substituted in uppercase, a false one.
// Work stops once q statements exist, every combination is consumed, or the
// attempt cap is hit.
func (s *Synthesizer) Synthesize(text string, terms []string, q int) []model.Statement {
	result := []model.Statement{}
	if q <= 0 {
		return result
	}

	sentences := SplitSentences(text)
	terms = distinctTerms(terms)
	if len(sentences) == 0 || len(terms) == 0 {
		return result
	}

	limit := min(q, 2*min(countMatching(sentences, terms), len(sentences)))
	if limit == 0 {
		return result
	}

	r := &run{
		usedCombos: make(map[combination]bool),
		emitted:    make(map[string]bool),
		statements: result,
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		s.rng.Shuffle(len(terms), func(i, j int) { terms[i], terms[j] = terms[j], terms[i] })
		s.rng.Shuffle(len(sentences), func(i, j int) { sentences[i], sentences[j] = sentences[j], sentences[i] })

		consumed := 0
		for _, term := range terms {
			if s.consume(r, text, sentences, terms, term) {
				consumed++
			}
			if len(r.statements) >= limit {
				return r.statements
			}
		}

		if consumed == 0 {
			break
		}
	}

	return r.statements
}

// consume lets term claim one unused sentence. It reports whether a
// combination was used, whether or not a statement was emitted.
func (s *Synthesizer) consume(r *run, text string, sentences, terms []string, term string) bool {
	for _, sentence := range sentences {
		combo := combination{sentence: sentence, term: term}
		if !Occurs(sentence, term) || r.usedCombos[combo] {
			continue
		}
		r.usedCombos[combo] = true

		stmt, ok := s.build(text, sentence, term, terms)
		if ok && !r.emitted[stmt.Text] {
			r.emitted[stmt.Text] = true
			r.statements = append(r.statements, stmt)
		}
		return true
	}
	return false
}

// build renders sentence as a true statement or a falsified variant
func (s *Synthesizer) build(text, sentence, term string, terms []string) (model.Statement, bool) {
	alternates := make([]string, 0, len(terms)-1)
	for _, t := range terms {
		if t != term {
			alternates = append(alternates, t)
		}
	}

	if len(alternates) == 0 || s.rng.IntN(2) == 0 {
		trimmed := strings.TrimSpace(sentence)
		return model.Statement{Text: trimmed, IsTrue: true}, trimmed != ""
	}

	replacement := strings.ToUpper(alternates[s.rng.IntN(len(alternates))])
	falsified := strings.TrimSpace(strings.Replace(sentence, term, replacement, 1))
	if falsified == "" || strings.Contains(text, falsified) {
		return model.Statement{}, false
	}
	return model.Statement{Text: falsified, IsTrue: false}, true
}

// distinctTerms copies terms, dropping empties and repeats
func distinctTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// countMatching counts terms that occur in at least one sentence
func countMatching(sentences, terms []string) int {
	n := 0
	for _, term := range terms {
		for _, sentence := range sentences {
			if Occurs(sentence, term) {
				n++
				break
			}
		}
	}
	return n
}
