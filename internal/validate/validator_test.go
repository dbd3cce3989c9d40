package validate

import (
	"testing"

	"github.com/ppiankov/tfquiz/internal/model"
)

const source = "arrays store data. arrays are fast. lists are dynamic."

func TestVerify_KeepsConsistentStatements(t *testing.T) {
	statements := []model.Statement{
		{Text: "arrays store data.", IsTrue: true},
		{Text: "LISTS are fast.", IsTrue: false},
		{Text: "  Lists are dynamic.  ", IsTrue: true},
	}

	kept, rejected := Verify(source, statements)

	if len(rejected) != 0 {
		t.Fatalf("Expected no rejections, got %+v", rejected)
	}
	if len(kept) != 3 {
		t.Fatalf("Expected 3 kept statements, got %d", len(kept))
	}
	if kept[2].Text != "Lists are dynamic." {
		t.Errorf("Expected trimmed text, got %q", kept[2].Text)
	}
}

func TestVerify_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		statement model.Statement
		reason    string
	}{
		{"empty", model.Statement{Text: "   ", IsTrue: true}, ReasonEmpty},
		{"true missing", model.Statement{Text: "trees are balanced.", IsTrue: true}, ReasonTrueMissing},
		{"false verbatim", model.Statement{Text: "ARRAYS store data.", IsTrue: false}, ReasonFalseVerbat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, rejected := Verify(source, []model.Statement{tt.statement})
			if len(kept) != 0 {
				t.Errorf("Expected statement to be rejected, kept %+v", kept)
			}
			if len(rejected) != 1 || rejected[0].Reason != tt.reason {
				t.Errorf("Expected reason %q, got %+v", tt.reason, rejected)
			}
		})
	}
}

func TestVerify_Duplicates(t *testing.T) {
	statements := []model.Statement{
		{Text: "arrays are fast.", IsTrue: true},
		{Text: "Arrays  are fast.", IsTrue: true},
	}

	kept, rejected := Verify(source, statements)

	if len(kept) != 1 {
		t.Errorf("Expected 1 kept statement, got %d", len(kept))
	}
	if len(rejected) != 1 || rejected[0].Reason != ReasonDuplicate {
		t.Errorf("Expected duplicate rejection, got %+v", rejected)
	}
}

func TestVerify_Empty(t *testing.T) {
	kept, rejected := Verify(source, nil)
	if len(kept) != 0 || len(rejected) != 0 {
		t.Errorf("Expected nothing, got %v %v", kept, rejected)
	}
}

func TestSummarize(t *testing.T) {
	kept := []model.Statement{
		{Text: "a", IsTrue: true},
		{Text: "B", IsTrue: false},
		{Text: "c", IsTrue: true},
	}
	got := Summarize(kept, []Rejection{{Reason: ReasonEmpty}})

	want := Summary{Kept: 3, Rejected: 1, True: 2, False: 1}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}
