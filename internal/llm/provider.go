package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/tfquiz/internal/model"
)

// Provider defines the interface for chat-model statement generators
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate asks the model for true/false statements about the text
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest contains the input for statement generation
type GenerateRequest struct {
	// Text is the cleaned document
	Text string

	// Terms are the quiz terms the statements should revolve around
	Terms []string

	// Questions is the number of statements wanted
	Questions int

	// Model overrides the configured model
	Model string
}

// GenerateResponse contains the parsed statements
type GenerateResponse struct {
	Statements []model.Statement
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom or OpenAI-compatible endpoints
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// maxPromptChars keeps long documents within the context window
const maxPromptChars = 12000

// BuildPrompt constructs the statement-generation prompt
func BuildPrompt(req GenerateRequest) string {
	text := req.Text
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}

	terms := "(none)"
	if len(req.Terms) > 0 {
		terms = strings.Join(req.Terms, ", ")
	}

	return fmt.Sprintf(`Write %d true/false quiz statements about the text below.

RULES:
1. Use only facts stated in the text.
2. A TRUE statement must copy one sentence of the text verbatim.
3. A FALSE statement copies one sentence and replaces one key term with a different key term written in UPPERCASE.
4. Number each statement and end it with "(True/False)", one per line.
5. Output nothing else.

Key terms: %s

Text:
%s`, req.Questions, terms, text)
}

var (
	numberedLine = regexp.MustCompile(`^\s*\d+[.)]\s*(.+?)\s*$`)
	answerSuffix = regexp.MustCompile(`\s*\((?i:true\s*/\s*false)\)\s*$`)
	upperWord    = regexp.MustCompile(`\b[A-Z][A-Z0-9]+\b`)
)

// ParseStatements parses numbered "N. statement (True/False)" lines.
// A statement carrying an all-uppercase word is a falsified variant.
func ParseStatements(content string) []model.Statement {
	statements := []model.Statement{}
	seen := make(map[string]bool)

	for _, line := range strings.Split(content, "\n") {
		m := numberedLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(answerSuffix.ReplaceAllString(m[1], ""))
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		statements = append(statements, model.Statement{
			Text:   text,
			IsTrue: !upperWord.MatchString(text),
		})
	}
	return statements
}
