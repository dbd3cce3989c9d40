package llm

import (
	"strings"
	"testing"

	"github.com/ppiankov/tfquiz/internal/model"
)

func TestParseStatements(t *testing.T) {
	content := "Here you go:\n" +
		"1. Arrays store data. (True/False)\n" +
		"2) LISTS store data. (true/false)\n" +
		"3. Arrays store data. (True/False)\n" +
		"not numbered\n" +
		"4.   \n"

	got := ParseStatements(content)
	want := []model.Statement{
		{Text: "Arrays store data.", IsTrue: true},
		{Text: "LISTS store data.", IsTrue: false},
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d statements, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("statement %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestParseStatements_Empty(t *testing.T) {
	if got := ParseStatements(""); len(got) != 0 {
		t.Errorf("expected no statements, got %d", len(got))
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(GenerateRequest{Text: "arrays store data.", Terms: []string{"arrays", "data"}, Questions: 4})

	for _, want := range []string{"Write 4 true/false", "Key terms: arrays, data", "arrays store data."} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
}

func TestBuildPrompt_TruncatesLongText(t *testing.T) {
	prompt := BuildPrompt(GenerateRequest{Text: strings.Repeat("a", maxPromptChars*2), Questions: 1})
	if len(prompt) > maxPromptChars+1000 {
		t.Errorf("expected truncated prompt, got %d chars", len(prompt))
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil || p != nil {
		t.Errorf("expected disabled provider, got %v, %v", p, err)
	}

	p, err = NewProvider(Config{Provider: "ollama"})
	if err != nil {
		t.Fatalf("expected ollama provider, got %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("expected name ollama, got %s", p.Name())
	}

	if _, err := NewProvider(Config{Provider: "nope"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
