package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ppiankov/tfquiz/internal/model"
	"github.com/ppiankov/tfquiz/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON string
	outMD   string
	outDir  string
	asMap   bool
	timeout time.Duration
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <file|url>...",
	Short: "Generate true/false quizzes from files or web pages",
	Long: `Generate builds a quiz per source:
- Load the file (utf-8, utf-8 with BOM or latin1) or fetch the URL
- Clean the text and rank its terms by TF-IDF
- Pick quiz terms with a randomized skip-ahead over the ranking
- Emit true statements and falsified variants with a swapped UPPERCASE term

Example:
  tfquiz generate "notes/Array Basics.txt"
  tfquiz generate notes/*.txt --questions 6 --seed 42
  tfquiz generate https://en.wikipedia.org/wiki/Array_(data_structure) --md quiz.md
  tfquiz generate notes/*.txt --map > quizzes.json
  tfquiz generate notes.txt --llm-provider openai --llm-model gpt-4o-mini`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	addQuizFlags(generateCmd)
	addFetchFlags(generateCmd)

	f := generateCmd.Flags()
	f.StringVar(&outJSON, "json", "", "write the quiz as JSON (single source)")
	f.StringVar(&outMD, "md", "", "write the quiz as Markdown (single source)")
	f.StringVar(&outDir, "out-dir", "", "write <name>.json and <name>.md per source into this directory")
	f.BoolVar(&asMap, "map", false, "print a JSON object mapping document to statements")
	f.DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout")

	addLLMFlags(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if len(args) > 1 && (outJSON != "" || outMD != "") {
		return fmt.Errorf("--json and --md take a single source; use --out-dir for several")
	}

	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	defer log.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	p := pipeline.NewPipeline(cfg, log)

	docs, err := loadSources(ctx, p, args, cfg.Concurrency.Workers)
	if err != nil {
		return err
	}

	if asMap {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(p.Assemble(ctx, docs))
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	renderer := p.Renderer()
	for _, doc := range docs {
		quiz := p.Generate(ctx, doc)

		if err := renderer.RenderText(cmd.OutOrStdout(), quiz); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		for _, w := range quiz.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s: %s\n", doc.ID, w)
		}

		jsonPath, mdPath := outJSON, outMD
		if outDir != "" {
			slug := sanitizeFilename(doc.ID)
			jsonPath = filepath.Join(outDir, slug+".json")
			mdPath = filepath.Join(outDir, slug+".md")
		}
		if jsonPath != "" {
			if err := renderer.RenderJSON(quiz, jsonPath); err != nil {
				return fmt.Errorf("render failed: %w", err)
			}
		}
		if mdPath != "" {
			if err := renderer.RenderMarkdown(quiz, mdPath); err != nil {
				return fmt.Errorf("render failed: %w", err)
			}
		}
		if verbose && (jsonPath != "" || mdPath != "") {
			fmt.Fprintf(os.Stderr, "✓ %s → %s %s\n", doc.ID, jsonPath, mdPath)
		}
	}

	return nil
}

// loadSources loads local files concurrently and fetches URLs in order
func loadSources(ctx context.Context, p *pipeline.Pipeline, sources []string, workers int) ([]model.Document, error) {
	var files []string
	for _, s := range sources {
		if !pipeline.IsURL(s) {
			files = append(files, s)
		}
	}
	if len(files) == len(sources) {
		return pipeline.LoadFiles(ctx, files, workers)
	}

	docs := make([]model.Document, 0, len(sources))
	for _, s := range sources {
		doc, err := p.Load(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", s, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
