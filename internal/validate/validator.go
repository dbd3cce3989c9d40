package validate

import (
	"strings"

	"github.com/ppiankov/tfquiz/internal/model"
)

// Rejection reasons
const (
	ReasonEmpty       = "empty statement"
	ReasonDuplicate   = "duplicate statement"
	ReasonTrueMissing = "true statement not found in source"
	ReasonFalseVerbat = "false statement appears verbatim in source"
)

// Rejection records a statement dropped by Verify
type Rejection struct {
	Statement model.Statement
	Reason    string
}

// Verify checks statements against the document they claim to come from.
// A true statement must occur in the source and a false one must not;
// comparison ignores case since false variants carry an uppercased term.
// Order of the kept statements is preserved.
func Verify(source string, statements []model.Statement) ([]model.Statement, []Rejection) {
	kept := make([]model.Statement, 0, len(statements))
	var rejected []Rejection

	haystack := normalize(source)
	seen := make(map[string]bool, len(statements))

	for _, s := range statements {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			rejected = append(rejected, Rejection{Statement: s, Reason: ReasonEmpty})
			continue
		}

		key := normalize(text)
		if seen[key] {
			rejected = append(rejected, Rejection{Statement: s, Reason: ReasonDuplicate})
			continue
		}

		found := strings.Contains(haystack, key)
		switch {
		case s.IsTrue && !found:
			rejected = append(rejected, Rejection{Statement: s, Reason: ReasonTrueMissing})
			continue
		case !s.IsTrue && found:
			rejected = append(rejected, Rejection{Statement: s, Reason: ReasonFalseVerbat})
			continue
		}

		seen[key] = true
		kept = append(kept, model.Statement{Text: text, IsTrue: s.IsTrue})
	}

	return kept, rejected
}

// Summary counts the outcome of a verification run
type Summary struct {
	Kept     int `json:"kept"`
	Rejected int `json:"rejected"`
	True     int `json:"true"`
	False    int `json:"false"`
}

// Summarize reports counts for kept and rejected statements
func Summarize(kept []model.Statement, rejected []Rejection) Summary {
	trueCount := model.CountTrue(kept)
	return Summary{
		Kept:     len(kept),
		Rejected: len(rejected),
		True:     trueCount,
		False:    len(kept) - trueCount,
	}
}

// normalize lowercases and collapses whitespace
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
