package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/BerylCAtieno/influencer-agent/internal/influencer"
	"github.com/BerylCAtieno/influencer-agent/internal/models"
	"github.com/gin-gonic/gin"
)

// Influencer is what the handlers need from influencer.Manager.
type Influencer interface {
	GeneratePost(ctx context.Context, postContext string) models.PostResult
	Interact(ctx context.Context, userMessage, userContext string) (models.InteractionResult, error)
	Persona() models.Persona
}

type Handler struct {
	influencer Influencer
	logger     *slog.Logger
}

func NewHandler(inf Influencer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		influencer: inf,
		logger:     logger,
	}
}

// HandleGeneratePost serves POST /generate-post.
func (h *Handler) HandleGeneratePost(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Handler.HandleGeneratePost: invalid body", "error", err, "request_id", requestID(c))
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "context is required", Details: err.Error()})
		return
	}

	result := h.influencer.GeneratePost(c.Request.Context(), *req.Context)

	h.logger.Info("Handler.HandleGeneratePost: done",
		"request_id", requestID(c),
		"content", result.Content != nil,
		"image_generated", result.ImageGenerated,
		"tweet_posted", result.TweetPosted)
	c.JSON(http.StatusOK, result)
}

// HandleInteract serves POST /interact.
func (h *Handler) HandleInteract(c *gin.Context) {
	var req models.InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Handler.HandleInteract: invalid body", "error", err, "request_id", requestID(c))
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "userMessage is required", Details: err.Error()})
		return
	}

	result, err := h.influencer.Interact(c.Request.Context(), *req.UserMessage, req.UserContext)
	if err != nil {
		if errors.Is(err, influencer.ErrContextAnalysis) {
			h.logger.Error("Handler.HandleInteract: context analysis failed", "error", err, "request_id", requestID(c))
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:   "Context analysis failed",
				Details: "model output was not valid JSON",
			})
			return
		}
		h.logger.Error("Handler.HandleInteract: interaction failed", "error", err, "request_id", requestID(c))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Interaction failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ServePersona serves GET /persona.
func (h *Handler) ServePersona(c *gin.Context) {
	c.JSON(http.StatusOK, h.influencer.Persona())
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
