package api

import (
	"net/http"

	"github.com/campus-feed-api/internal/models"
	"github.com/campus-feed-api/internal/service"
	"github.com/campus-feed-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment thread endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// ListThread handles GET /api/comments/:postKind/:postId
func (h *CommentHandler) ListThread(c *gin.Context) {
	post, err := postRef(c)
	if err != nil {
		respondError(c, err)
		return
	}

	threads, err := h.services.Comment.ListThread(c.Request.Context(), post)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, threads)
}

// CountForPost handles GET /api/comments/:postKind/:postId/count
func (h *CommentHandler) CountForPost(c *gin.Context) {
	post, err := postRef(c)
	if err != nil {
		respondError(c, err)
		return
	}

	count, err := h.services.Comment.CountForPost(c.Request.Context(), post)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// AddComment handles POST /api/comments/:postKind/:postId?userId=
// Body: {"content": "...", "parentId": "12"}
func (h *CommentHandler) AddComment(c *gin.Context) {
	post, err := postRef(c)
	if err != nil {
		respondError(c, err)
		return
	}

	req, ok := bindComment(c)
	if !ok {
		return
	}
	parentID, err := validation.ParseOptionalID("parentId", req.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}

	comment, err := h.services.Comment.AddComment(c.Request.Context(), post, c.Query("userId"), req.Content, parentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// AddReply handles POST /api/comments/:commentId/reply?userId=
func (h *CommentHandler) AddReply(c *gin.Context) {
	parentID, err := validation.ParseID("commentId", c.Param("postKind"))
	if err != nil {
		respondError(c, err)
		return
	}

	req, ok := bindComment(c)
	if !ok {
		return
	}

	comment, err := h.services.Comment.AddReply(c.Request.Context(), parentID, c.Query("userId"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// EditComment handles PUT /api/comments/:commentId?userId=
func (h *CommentHandler) EditComment(c *gin.Context) {
	id, err := validation.ParseID("commentId", c.Param("commentId"))
	if err != nil {
		respondError(c, err)
		return
	}

	req, ok := bindComment(c)
	if !ok {
		return
	}

	comment, err := h.services.Comment.EditComment(c.Request.Context(), id, c.Query("userId"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment handles DELETE /api/comments/:commentId?userId=
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := validation.ParseID("commentId", c.Param("commentId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.services.Comment.DeleteComment(c.Request.Context(), id, c.Query("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindComment(c *gin.Context) (models.CommentRequest, bool) {
	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return req, false
	}
	return req, true
}

// postRef reads the :postKind and :postId path segments
func postRef(c *gin.Context) (models.PostRef, error) {
	kind, err := validation.ParsePostKind(c.Param("postKind"))
	if err != nil {
		return models.PostRef{}, err
	}
	id, err := validation.ParseID("postId", c.Param("postId"))
	if err != nil {
		return models.PostRef{}, err
	}
	return models.PostRef{PostID: id, PostKind: kind}, nil
}
