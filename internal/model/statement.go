package model

// Statement is a single true/false quiz item
type Statement struct {
	Text   string `json:"statement"` // The assertion shown to the quiz taker
	IsTrue bool   `json:"is_true"`   // Whether the assertion matches the source
}

// Document is a cleaned body of text identified by its source
type Document struct {
	ID   string // File name, URL or caller-supplied identifier
	Text string // Whitespace-collapsed, lowercase, restricted character set
}

// TermScores maps terms to salience in the order the scorer produced them
type TermScores struct {
	Scores map[string]float64
	Order  []string // Scorer term order, used for stable tie-breaking
}

// Len returns the number of scored terms
func (t TermScores) Len() int {
	return len(t.Order)
}

// Has reports whether a term was scored
func (t TermScores) Has(term string) bool {
	_, ok := t.Scores[term]
	return ok
}

// CountTrue returns the number of true statements in the list
func CountTrue(statements []Statement) int {
	n := 0
	for _, s := range statements {
		if s.IsTrue {
			n++
		}
	}
	return n
}
