package model

import (
	"time"

	"github.com/google/uuid"
)

// Engine names the statement generator that produced a quiz
type Engine string

const (
	EngineTFIDF Engine = "tfidf" // Term ranking plus sentence substitution
	EngineLLM   Engine = "llm"   // Chat model, verified against the source
)

// Quiz is the generated result for one document
type Quiz struct {
	ID          uuid.UUID   `json:"id"`
	Source      string      `json:"source"`
	Engine      Engine      `json:"engine"`
	Terms       []string    `json:"terms"`
	Statements  []Statement `json:"statements"`
	GeneratedAt time.Time   `json:"generated_at"`
	Warnings    []string    `json:"warnings,omitempty"`
}

// NewQuiz creates a quiz with a fresh identifier
func NewQuiz(source string, engine Engine) *Quiz {
	return &Quiz{
		ID:          uuid.New(),
		Source:      source,
		Engine:      engine,
		Terms:       []string{},
		Statements:  []Statement{},
		GeneratedAt: time.Now().UTC(),
	}
}
