package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ppiankov/tfquiz/internal/logger"
	"github.com/ppiankov/tfquiz/internal/model"
	"github.com/ppiankov/tfquiz/internal/pipeline"
	"github.com/ppiankov/tfquiz/internal/worker"
)

// Generator produces a quiz for a loaded document
type Generator interface {
	GenerateWith(ctx context.Context, doc model.Document, opts pipeline.Options) *model.Quiz
	Options() pipeline.Options
	Engine() model.Engine
}

// Server serves quiz generation over HTTP
type Server struct {
	router    *gin.Engine
	generator Generator
	limiter   *worker.Limiter
	config    model.ServerConfig
	log       *logger.Logger
}

// New builds the router. A nil limiter disables per-client limiting.
func New(cfg model.ServerConfig, generator Generator, limiter *worker.Limiter, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	switch strings.ToLower(cfg.Mode) {
	case "production", "prod", gin.ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case "development", gin.DebugMode:
		gin.SetMode(gin.DebugMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	}

	s := &Server{
		router:    gin.New(),
		generator: generator,
		limiter:   limiter,
		config:    cfg,
		log:       log,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(gin.Recovery())
	s.router.Use(requestID())
	s.router.Use(requestLogger(s.log))

	corsConfig := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Content-Type", "X-Requested-With", headerRequestID},
		ExposeHeaders: []string{headerRequestID, headerQuizID},
		MaxAge:        12 * time.Hour,
	}
	if len(s.config.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.config.AllowOrigins
	}
	s.router.Use(cors.New(corsConfig))

	s.router.GET("/healthz", s.handleHealth)

	generate := s.router.Group("/generate-quiz")
	if s.limiter != nil {
		generate.Use(rateLimit(s.limiter))
	}
	generate.Use(maxBody(s.config.MaxUploadBytes))
	generate.POST("", s.handleUpload)
	generate.POST("/text", s.handleText)
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on the configured address until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", s.config.Addr, "engine", s.generator.Engine())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.log.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
