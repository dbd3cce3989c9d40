package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ppiankov/tfquiz/internal/cache"
	"github.com/ppiankov/tfquiz/internal/llm"
	"github.com/ppiankov/tfquiz/internal/logger"
	"github.com/ppiankov/tfquiz/internal/model"
	"github.com/ppiankov/tfquiz/internal/score"
	"github.com/ppiankov/tfquiz/internal/statement"
	"github.com/ppiankov/tfquiz/internal/util"
	"github.com/ppiankov/tfquiz/internal/validate"
)

// Options tune one document's generation
type Options struct {
	Questions   int
	Terms       int
	Variation   int
	MaxAttempts int
	Topics      []string
}

// OptionsFromConfig builds generation options from the quiz config
func OptionsFromConfig(cfg model.QuizConfig) Options {
	return Options{
		Questions:   cfg.Questions,
		Terms:       cfg.Terms,
		Variation:   cfg.Variation,
		MaxAttempts: cfg.MaxAttempts,
		Topics:      cfg.Topics,
	}
}

// Assembler runs scoring, selection and synthesis per document
type Assembler struct {
	scorer  *score.Scorer
	newRand util.RandFactory
	options Options
}

// NewAssembler creates an assembler. Every document gets a fresh random
// source from newRand; nil uses unseeded sources.
func NewAssembler(opts Options, newRand util.RandFactory) *Assembler {
	if newRand == nil {
		newRand = util.SeededFactory(0)
	}
	return &Assembler{
		scorer:  score.NewScorer(),
		newRand: newRand,
		options: opts,
	}
}

// WithOptions returns an assembler sharing a's scorer and random factory
func (a *Assembler) WithOptions(opts Options) *Assembler {
	return &Assembler{scorer: a.scorer, newRand: a.newRand, options: opts}
}

// Options returns the assembler's generation options
func (a *Assembler) Options() Options {
	return a.options
}

// Generate builds the quiz for a single document
func (a *Assembler) Generate(doc model.Document, questions int) *model.Quiz {
	rng := a.newRand()

	scores := a.scorer.Score(doc.Text)
	terms := score.NewSelector(rng).Select(scores, a.options.Terms, a.options.Variation, a.options.Topics)
	statements := statement.NewSynthesizer(rng, a.options.MaxAttempts).Synthesize(doc.Text, terms, questions)

	quiz := model.NewQuiz(doc.ID, model.EngineTFIDF)
	quiz.Terms = terms
	quiz.Statements = statements
	return quiz
}

// Assemble generates statements for every document, keyed by document ID
func (a *Assembler) Assemble(docs []model.Document, questions int) map[string][]model.Statement {
	quizzes := make(map[string][]model.Statement, len(docs))
	for _, doc := range docs {
		quizzes[doc.ID] = a.Generate(doc, questions).Statements
	}
	return quizzes
}

// Pipeline loads documents from files or URLs and generates quizzes
type Pipeline struct {
	fetcher   *Fetcher
	assembler *Assembler
	provider  llm.Provider // Optional chat-model engine (nil if disabled)
	renderer  *Renderer
	log       *logger.Logger
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}

	var provider llm.Provider
	if cfg.LLM.Provider != "" {
		p, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			log.Warn("failed to initialize LLM provider", "provider", cfg.LLM.Provider, "error", err)
		} else {
			provider = p
		}
	}

	fetcher := NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes, false, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, "")
	if cfg.Cache.Enabled {
		fetcher.WithCache(cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL), cfg.Cache.DiskTTL)
	}
	if cfg.HTTP.RespectRobots {
		fetcher.WithRobots(util.NewRobotsChecker(cfg.HTTP.UserAgent, 10*time.Second).WithClient(fetcher.Client()))
	}

	return &Pipeline{
		fetcher:   fetcher,
		assembler: NewAssembler(OptionsFromConfig(cfg.Quiz), util.SeededFactory(cfg.Quiz.Seed)),
		provider:  provider,
		renderer:  NewRenderer(cfg.Output.IncludeAnswer),
		log:       log,
	}
}

// WithProvider replaces the chat-model engine; nil disables it
func (p *Pipeline) WithProvider(provider llm.Provider) *Pipeline {
	p.provider = provider
	return p
}

// WithLimiter throttles URL fetches
func (p *Pipeline) WithLimiter(l RateLimiter) *Pipeline {
	p.fetcher.WithLimiter(l)
	return p
}

// Load turns a file path or URL into a cleaned document
func (p *Pipeline) Load(ctx context.Context, source string) (model.Document, error) {
	if !IsURL(source) {
		text, err := LoadFile(source)
		if err != nil {
			return model.Document{}, err
		}
		return model.Document{ID: filepath.Base(source), Text: text}, nil
	}

	result, err := p.fetcher.Fetch(ctx, source)
	if err != nil {
		return model.Document{}, fmt.Errorf("fetch: %w", err)
	}
	text, err := ExtractVisibleText(result.HTML)
	if err != nil {
		return model.Document{}, fmt.Errorf("extract text: %w", err)
	}
	p.log.Debug("fetched document", "url", result.FinalURL, "cached", result.FromCache, "bytes", len(result.HTML))
	return model.Document{ID: source, Text: Clean(text)}, nil
}

// Generate builds a quiz for an already loaded document
func (p *Pipeline) Generate(ctx context.Context, doc model.Document) *model.Quiz {
	return p.GenerateWith(ctx, doc, p.assembler.Options())
}

// GenerateWith builds a quiz using per-call options
func (p *Pipeline) GenerateWith(ctx context.Context, doc model.Document, opts Options) *model.Quiz {
	questions := opts.Questions
	quiz := p.assembler.WithOptions(opts).Generate(doc, questions)

	if p.provider != nil && questions > 0 {
		llmQuiz, err := p.generateLLM(ctx, doc, quiz.Terms, questions)
		if err != nil {
			p.log.Warn("LLM generation failed, using tfidf statements", "document", doc.ID, "error", err)
			quiz.Warnings = append(quiz.Warnings, "llm: "+err.Error())
		} else {
			quiz = llmQuiz
		}
	}

	p.log.Info("quiz generated",
		"document", doc.ID,
		"engine", quiz.Engine,
		"terms", len(quiz.Terms),
		"statements", len(quiz.Statements),
		"true", model.CountTrue(quiz.Statements),
	)
	return quiz
}

// generateLLM asks the chat model and keeps only provenance-consistent statements
func (p *Pipeline) generateLLM(ctx context.Context, doc model.Document, terms []string, questions int) (*model.Quiz, error) {
	resp, err := p.provider.Generate(ctx, llm.GenerateRequest{
		Text:      doc.Text,
		Terms:     terms,
		Questions: questions,
	})
	if err != nil {
		return nil, err
	}

	kept, rejected := validate.Verify(doc.Text, resp.Statements)
	summary := validate.Summarize(kept, rejected)
	p.log.Debug("verified LLM statements",
		"document", doc.ID,
		"model", resp.Model,
		"kept", summary.Kept,
		"rejected", summary.Rejected,
		"true", summary.True,
		"false", summary.False,
	)
	if len(kept) == 0 {
		return nil, fmt.Errorf("no statements consistent with source (%d rejected)", len(rejected))
	}
	if len(kept) > questions {
		kept = kept[:questions]
	}

	quiz := model.NewQuiz(doc.ID, model.EngineLLM)
	quiz.Terms = terms
	quiz.Statements = kept
	for _, r := range rejected {
		quiz.Warnings = append(quiz.Warnings, fmt.Sprintf("rejected %q: %s", r.Statement.Text, r.Reason))
	}
	return quiz, nil
}

// GenerateQuiz loads a source and generates its quiz
func (p *Pipeline) GenerateQuiz(ctx context.Context, source string) (*model.Quiz, error) {
	doc, err := p.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}
	return p.Generate(ctx, doc), nil
}

// Assemble generates a quiz per document and maps document ID to statements
func (p *Pipeline) Assemble(ctx context.Context, docs []model.Document) map[string][]model.Statement {
	out := make(map[string][]model.Statement, len(docs))
	for _, doc := range docs {
		out[doc.ID] = p.Generate(ctx, doc).Statements
	}
	return out
}

// Options returns the configured generation options
func (p *Pipeline) Options() Options {
	return p.assembler.Options()
}

// LLMAvailable reports whether the configured chat-model engine answers.
// It is false when no provider is configured.
func (p *Pipeline) LLMAvailable(ctx context.Context) bool {
	return p.provider != nil && p.provider.IsAvailable(ctx)
}

// Engine names the engine tried first
func (p *Pipeline) Engine() model.Engine {
	if p.provider != nil {
		return model.EngineLLM
	}
	return model.EngineTFIDF
}

// Renderer returns the pipeline's renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}
