package api

import (
	"net/http"

	"github.com/campus-feed-api/internal/models"
	"github.com/campus-feed-api/internal/service"
	"github.com/campus-feed-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ReactionHandler handles reaction endpoints
type ReactionHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(services *service.Services, log zerolog.Logger) *ReactionHandler {
	return &ReactionHandler{
		services: services,
		log:      log.With().Str("handler", "reaction").Logger(),
	}
}

// ApplyToPost handles POST /api/reactions/:postKind/:postId?userId=&reactionType=
func (h *ReactionHandler) ApplyToPost(c *gin.Context) {
	h.apply(c, false)
}

// ApplyToComment handles POST /api/reactions/:postKind/:postId/comment/:commentId
func (h *ReactionHandler) ApplyToComment(c *gin.Context) {
	h.apply(c, true)
}

// PostSummary handles GET /api/reactions/:postKind/:postId?userId=
func (h *ReactionHandler) PostSummary(c *gin.Context) {
	h.summary(c, false)
}

// CommentSummary handles GET /api/reactions/:postKind/:postId/comment/:commentId
func (h *ReactionHandler) CommentSummary(c *gin.Context) {
	h.summary(c, true)
}

func (h *ReactionHandler) apply(c *gin.Context, onComment bool) {
	target, err := reactionTarget(c, onComment)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.services.Reaction.ApplyReaction(c.Request.Context(), target, c.Query("userId"), c.Query("reactionType"))
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if result.Action == models.ReactionAdded {
		status = http.StatusCreated
	}
	c.JSON(status, result)
}

func (h *ReactionHandler) summary(c *gin.Context, onComment bool) {
	target, err := reactionTarget(c, onComment)
	if err != nil {
		respondError(c, err)
		return
	}

	actor := c.Query("userId")
	summary, err := h.services.Reaction.Summary(c.Request.Context(), target, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	// userReaction is present, possibly null, only when a userId was given
	if actor == "" {
		c.JSON(http.StatusOK, gin.H{"reactions": summary.Reactions})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func reactionTarget(c *gin.Context, onComment bool) (models.ReactionTarget, error) {
	post, err := postRef(c)
	if err != nil {
		return models.ReactionTarget{}, err
	}

	target := models.ReactionTarget{
		PostID:     post.PostID,
		PostKind:   post.PostKind,
		TargetKind: models.TargetKindPost,
	}
	if onComment {
		id, err := validation.ParseID("commentId", c.Param("commentId"))
		if err != nil {
			return models.ReactionTarget{}, err
		}
		target.TargetKind = models.TargetKindComment
		target.TargetID = &id
	}
	return target, nil
}
