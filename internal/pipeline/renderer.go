package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/tfquiz/internal/model"
)

// Renderer exports quizzes as JSON, Markdown or plain text
type Renderer struct {
	includeAnswers bool
}

// NewRenderer creates a renderer; includeAnswers adds the answer key
func NewRenderer(includeAnswers bool) *Renderer {
	return &Renderer{includeAnswers: includeAnswers}
}

// RenderJSON writes the quiz as indented JSON
func (r *Renderer) RenderJSON(quiz *model.Quiz, path string) error {
	data, err := json.MarshalIndent(quiz, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes the quiz as a Markdown document
func (r *Renderer) RenderMarkdown(quiz *model.Quiz, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(quiz)), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// Markdown renders the quiz as Markdown
func (r *Renderer) Markdown(quiz *model.Quiz) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Quiz: %s\n\n", quiz.Source)
	fmt.Fprintf(&b, "- Generated: %s\n", quiz.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Engine: %s\n", quiz.Engine)
	if len(quiz.Terms) > 0 {
		fmt.Fprintf(&b, "- Terms: %s\n", strings.Join(quiz.Terms, ", "))
	}
	b.WriteString("\n## Statements\n\n")

	if len(quiz.Statements) == 0 {
		b.WriteString("_No statements could be generated from this document._\n")
	}
	for i, s := range quiz.Statements {
		fmt.Fprintf(&b, "%d. %s (True/False)\n", i+1, s.Text)
	}

	if r.includeAnswers && len(quiz.Statements) > 0 {
		b.WriteString("\n## Answer key\n\n")
		for i, s := range quiz.Statements {
			fmt.Fprintf(&b, "%d. %s\n", i+1, answer(s.IsTrue))
		}
	}

	if len(quiz.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range quiz.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}

// RenderText prints the numbered statement listing
func (r *Renderer) RenderText(w io.Writer, quiz *model.Quiz) error {
	if _, err := fmt.Fprintf(w, "Quiz for %s:\n\n", quiz.Source); err != nil {
		return err
	}
	for i, s := range quiz.Statements {
		line := fmt.Sprintf("Statement %d: %s (True/False)", i+1, s.Text)
		if r.includeAnswers {
			line += " [" + answer(s.IsTrue) + "]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%s\n\n", strings.Repeat("=", 40))
	return err
}

func answer(isTrue bool) string {
	if isTrue {
		return "True"
	}
	return "False"
}
