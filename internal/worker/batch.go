package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/tfquiz/internal/model"
)

// Generator builds a quiz for one file path or URL
type Generator interface {
	GenerateQuiz(ctx context.Context, source string) (*model.Quiz, error)
}

// QuizJob generates the quiz for one source
type QuizJob struct {
	Source    string
	Generator Generator
}

// Execute executes the quiz job
func (j *QuizJob) Execute(ctx context.Context) Result {
	start := time.Now()
	quiz, err := j.Generator.GenerateQuiz(ctx, j.Source)
	return &QuizResult{
		Source:   j.Source,
		Quiz:     quiz,
		Error:    err,
		Duration: time.Since(start),
	}
}

// QuizResult is the outcome of a quiz job
type QuizResult struct {
	Source   string
	Quiz     *model.Quiz
	Error    error
	Duration time.Duration
}

// GetError returns the error from the quiz result
func (r *QuizResult) GetError() error {
	return r.Error
}

// BatchProcessor generates quizzes for many sources concurrently
type BatchProcessor struct {
	generator   Generator
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(generator Generator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		generator:   generator,
		concurrency: concurrency,
	}
}

// Process generates a quiz per source. Results follow input order; a
// source that never ran because ctx ended carries ctx's error.
func (b *BatchProcessor) Process(ctx context.Context, sources []string) []*QuizResult {
	if len(sources) == 0 {
		return []*QuizResult{}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	for _, source := range sources {
		pool.Submit(&QuizJob{Source: source, Generator: b.generator})
	}

	results := pool.Wait()

	out := make([]*QuizResult, len(sources))
	for i, source := range sources {
		if i < len(results) && results[i] != nil {
			out[i] = results[i].(*QuizResult)
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = fmt.Errorf("job not executed")
		}
		out[i] = &QuizResult{Source: source, Error: err}
	}
	return out
}

// ProcessFile reads sources from a list file and processes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*QuizResult, error) {
	sources, err := ReadSourcesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}
	return b.Process(ctx, sources), nil
}

// ReadSourcesFromFile reads file paths or URLs, one per line.
// Blank lines and # comments are skipped and duplicates dropped.
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}
