package api

import (
	"net/http"

	"github.com/campus-feed-api/internal/models"
	"github.com/campus-feed-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AIHandler handles classification and moderation endpoints
type AIHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAIHandler creates a new AIHandler
func NewAIHandler(services *service.Services, log zerolog.Logger) *AIHandler {
	return &AIHandler{
		services: services,
		log:      log.With().Str("handler", "ai").Logger(),
	}
}

// Classify handles POST /api/ai/classify
func (h *AIHandler) Classify(c *gin.Context) {
	var req models.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.services.AI.Classify(c.Request.Context(), req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CheckToxicity handles POST /api/ai/check-toxicity
func (h *AIHandler) CheckToxicity(c *gin.Context) {
	var req models.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.services.AI.CheckToxicity(c.Request.Context(), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GenerateMeme handles POST /api/ai/generate-meme
func (h *AIHandler) GenerateMeme(c *gin.Context) {
	var req models.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.services.AI.GenerateMeme(c.Request.Context(), req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
