package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/tfquiz/internal/model"
	"github.com/ppiankov/tfquiz/internal/pipeline"
	"github.com/ppiankov/tfquiz/internal/worker"
	"github.com/spf13/cobra"
)

var (
	outputDir    string
	batchTimeout time.Duration
	batchFormat  string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Generate quizzes for many files or URLs in parallel",
	Long: `Batch generates a quiz for every source listed in the input file:
- Read file paths or URLs from the input file (one per line, # comments)
- Generate quizzes in parallel with a configurable worker count
- Throttle URL fetches per domain
- Write one JSON and/or Markdown quiz per source

Example:
  tfquiz batch sources.txt
  tfquiz batch sources.txt --workers 8 --output-dir ./quizzes
  tfquiz batch sources.txt --format md --seed 7`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	addQuizFlags(batchCmd)
	addFetchFlags(batchCmd)
	addLLMFlags(batchCmd)

	f := batchCmd.Flags()
	f.Int("workers", 4, "number of concurrent workers")
	f.Float64("rps", 2, "requests per second per domain")
	f.Int("burst", 5, "request burst per domain")
	f.StringVar(&outputDir, "output-dir", "./tfquiz-quizzes", "output directory for quizzes")
	f.DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	f.StringVar(&batchFormat, "format", "both", "output format: json, md or both")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	writeJSON, writeMD, err := parseFormat(batchFormat)
	if err != nil {
		return err
	}

	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	defer log.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  tfquiz Batch Generation\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg, log).
		WithLimiter(worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize))
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	fmt.Fprintf(os.Stderr, "⚙️  Generating quizzes with %d workers...\n\n", cfg.Concurrency.Workers)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := p.Renderer()
	successCount, failureCount := 0, 0
	used := make(map[string]int)

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, result.Error)
			continue
		}

		slug := uniqueSlug(used, sanitizeFilename(result.Source))
		if err := writeQuiz(renderer, result.Quiz, slug, writeJSON, writeMD); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (%d statements, %d true, %s)\n",
			result.Source, len(result.Quiz.Statements), model.CountTrue(result.Quiz.Statements),
			result.Duration.Round(time.Millisecond))
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d sources\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if successCount == 0 && failureCount > 0 {
		return fmt.Errorf("all %d sources failed", failureCount)
	}
	return nil
}

func writeQuiz(r *pipeline.Renderer, quiz *model.Quiz, slug string, writeJSON, writeMD bool) error {
	if writeJSON {
		if err := r.RenderJSON(quiz, filepath.Join(outputDir, slug+".json")); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
	}
	if writeMD {
		if err := r.RenderMarkdown(quiz, filepath.Join(outputDir, slug+".md")); err != nil {
			return fmt.Errorf("failed to write Markdown: %w", err)
		}
	}
	return nil
}

func parseFormat(format string) (writeJSON, writeMD bool, err error) {
	switch strings.ToLower(format) {
	case "json":
		return true, false, nil
	case "md", "markdown":
		return false, true, nil
	case "both", "":
		return true, true, nil
	default:
		return false, false, fmt.Errorf("unknown format %q (expected json, md or both)", format)
	}
}

// uniqueSlug suffixes repeated slugs with -2, -3, ...
func uniqueSlug(used map[string]int, slug string) string {
	used[slug]++
	if n := used[slug]; n > 1 {
		return fmt.Sprintf("%s-%d", slug, n)
	}
	return slug
}

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

// sanitizeFilename turns a file path or URL into a safe base name
func sanitizeFilename(s string) string {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		s = strings.TrimPrefix(strings.TrimPrefix(s, "http://"), "https://")
		s = strings.TrimSuffix(s, "/")
	} else {
		s = filepath.Base(s)
		s = strings.TrimSuffix(s, filepath.Ext(s))
	}

	s = filenameReplacer.Replace(s)
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" || s == "." {
		s = "quiz"
	}
	return s
}
