package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ppiankov/tfquiz/internal/model"
	"github.com/ppiankov/tfquiz/internal/pipeline"
)

// Error messages kept compatible with existing quiz front ends
const (
	msgNoFilePart     = "No file part"
	msgNoSelectedFile = "No selected file"
)

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error string `json:"error"`
}

func abortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

// TextRequest is the body of POST /generate-quiz/text.
// Text must be present but may be empty, which yields no statements.
type TextRequest struct {
	Text      *string  `json:"text" binding:"required"`
	Questions *int     `json:"questions"`
	Terms     *int     `json:"terms"`
	Variation *int     `json:"variation"`
	Topics    []string `json:"topics"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"engine": s.generator.Engine(),
	})
}

// handleUpload serves POST /generate-quiz with a multipart "file" field
func (s *Server) handleUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortError(c, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		abortError(c, http.StatusBadRequest, msgNoFilePart)
		return
	}

	headers := form.File["file"]
	if len(headers) == 0 {
		// A part sent without a filename is parsed as a plain value
		if _, ok := form.Value["file"]; ok {
			abortError(c, http.StatusBadRequest, msgNoSelectedFile)
			return
		}
		abortError(c, http.StatusBadRequest, msgNoFilePart)
		return
	}
	header := headers[0]
	if header.Filename == "" {
		abortError(c, http.StatusBadRequest, msgNoSelectedFile)
		return
	}

	opts, err := s.formOptions(c)
	if err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}

	f, err := header.Open()
	if err != nil {
		_ = c.Error(err)
		abortError(c, http.StatusBadRequest, "unable to read upload")
		return
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		_ = c.Error(err)
		abortError(c, http.StatusBadRequest, "unable to read upload")
		return
	}

	text, err := pipeline.LoadBytes(header.Filename, data)
	if err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}

	s.respond(c, model.Document{ID: header.Filename, Text: text}, opts)
}

// handleText serves POST /generate-quiz/text with a JSON body
func (s *Server) handleText(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	opts := s.generator.Options()
	if req.Questions != nil {
		opts.Questions = *req.Questions
	}
	if req.Terms != nil {
		opts.Terms = *req.Terms
	}
	if req.Variation != nil {
		opts.Variation = *req.Variation
	}
	if len(req.Topics) > 0 {
		opts.Topics = normalizeTopics(req.Topics)
	}
	if err := checkOptions(opts); err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}

	s.respond(c, model.Document{ID: "text", Text: pipeline.Clean(*req.Text)}, opts)
}

func (s *Server) respond(c *gin.Context, doc model.Document, opts pipeline.Options) {
	quiz := s.generator.GenerateWith(c.Request.Context(), doc, opts)
	c.Header(headerQuizID, quiz.ID.String())

	if c.Query("format") == "full" {
		c.JSON(http.StatusOK, quiz)
		return
	}
	c.JSON(http.StatusOK, quiz.Statements)
}

// formOptions reads optional questions/terms/variation/topics form fields
func (s *Server) formOptions(c *gin.Context) (pipeline.Options, error) {
	opts := s.generator.Options()

	for field, target := range map[string]*int{
		"questions": &opts.Questions,
		"terms":     &opts.Terms,
		"variation": &opts.Variation,
	} {
		raw := strings.TrimSpace(c.PostForm(field))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid %s: %q", field, raw)
		}
		*target = n
	}

	if raw := c.PostForm("topics"); raw != "" {
		opts.Topics = normalizeTopics(strings.Split(raw, ","))
	}
	return opts, checkOptions(opts)
}

const maxQuestions = 200

func checkOptions(opts pipeline.Options) error {
	switch {
	case opts.Questions < 0 || opts.Questions > maxQuestions:
		return fmt.Errorf("questions must be between 0 and %d", maxQuestions)
	case opts.Terms < 0:
		return fmt.Errorf("terms must not be negative")
	}
	return nil
}

// normalizeTopics lowercases and trims topics to match cleaned text
func normalizeTopics(topics []string) []string {
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}
