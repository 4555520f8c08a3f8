package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/alkime/coach/internal/gateway"
	"github.com/alkime/coach/internal/trainer"
	"github.com/gin-gonic/gin"
)

type feedbackRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

type feedbackResponse struct {
	Feedback string `json:"feedback"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleScenario(c *gin.Context) {
	sc, err := s.gw.GenerateScenario(c.Request.Context())
	if err != nil {
		s.fail(c, err, trainer.ScenarioFailed)
		return
	}

	c.JSON(http.StatusOK, sc)
}

func (s *Server) handleFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "question and answer are required"})
		return
	}

	if strings.TrimSpace(req.Answer) == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "answer is empty"})
		return
	}

	text, err := s.gw.GetFeedback(c.Request.Context(), req.Question, req.Answer)
	if err != nil {
		s.fail(c, err, trainer.FeedbackFailed)
		return
	}

	c.JSON(http.StatusOK, feedbackResponse{Feedback: text})
}

// fail reports a gateway failure. Upstream generation problems are a bad
// gateway; anything else is ours.
func (s *Server) fail(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError

	var genErr *gateway.GenerationError
	if errors.As(err, &genErr) {
		status = http.StatusBadGateway
	}

	s.logger.Error("Generation failed", "path", c.FullPath(), "status", status, "error", err)
	c.JSON(status, errorResponse{Error: message})
}
