package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ppiankov/tfquiz/internal/logger"
	"github.com/ppiankov/tfquiz/internal/pipeline"
	"github.com/ppiankov/tfquiz/internal/server"
	"github.com/ppiankov/tfquiz/internal/worker"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve quiz generation over HTTP",
	Long: `Serve starts the quiz API:

  POST /generate-quiz        multipart upload, field "file"
  POST /generate-quiz/text   JSON {"text": "...", "questions": 10}
  GET  /healthz

Responses are JSON arrays of {"statement", "is_true"}; add ?format=full
for the whole quiz with its terms and id.

Example:
  tfquiz serve
  tfquiz serve --addr 0.0.0.0:8080 --mode production --rps 1 --burst 3
  curl -F file=@"Array Basics.txt" http://127.0.0.1:5000/generate-quiz`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	addQuizFlags(serveCmd)
	addLLMFlags(serveCmd)

	f := serveCmd.Flags()
	f.String("addr", "127.0.0.1:5000", "listen address")
	f.String("mode", "development", "server mode: development or production")
	f.Float64("rps", 2, "requests per second per client (0 disables limiting)")
	f.Int("burst", 5, "request burst per client")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Server.Mode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var limiter *worker.Limiter
	if cfg.RateLimiting.RequestsPerSecond > 0 {
		limiter = worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	}

	p := pipeline.NewPipeline(cfg, log)
	if cfg.LLM.Provider != "" {
		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if !p.LLMAvailable(checkCtx) {
			log.Warn("LLM provider unreachable, quizzes will use tfidf until it recovers",
				"provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
		}
		cancel()
	}
	srv := server.New(cfg.Server, p, limiter, log)
	return srv.Run(ctx)
}
