package api

import (
	"context"
	"net/http"
	"time"

	"github.com/campus-feed-api/internal/config"
	"github.com/campus-feed-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// Probe is a named dependency check reported by /health
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger, probes ...Probe) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(requestIDMiddleware())
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.AllowedOrigin))

	// Handlers
	commentHandler := NewCommentHandler(services, log)
	reactionHandler := NewReactionHandler(services, log)
	aiHandler := NewAIHandler(services, log)

	// Health check
	router.GET("/health", healthCheck(probes))
	router.GET("/metrics", metricsHandler(services))

	api := router.Group("/api")
	{
		comments := api.Group("/comments")
		{
			comments.GET("/:postKind/:postId", commentHandler.ListThread)
			comments.GET("/:postKind/:postId/count", commentHandler.CountForPost)
			comments.POST("/:postKind/:postId", commentHandler.AddComment)
			// gin allows one wildcard name per segment, so the parent id
			// travels in :postKind on this route
			comments.POST("/:postKind/reply", commentHandler.AddReply)
			comments.PUT("/:commentId", commentHandler.EditComment)
			comments.DELETE("/:commentId", commentHandler.DeleteComment)
		}

		reactions := api.Group("/reactions")
		{
			reactions.POST("/:postKind/:postId", reactionHandler.ApplyToPost)
			reactions.POST("/:postKind/:postId/comment/:commentId", reactionHandler.ApplyToComment)
			reactions.GET("/:postKind/:postId", reactionHandler.PostSummary)
			reactions.GET("/:postKind/:postId/comment/:commentId", reactionHandler.CommentSummary)
		}

		inference := api.Group("/ai")
		{
			inference.POST("/classify", aiHandler.Classify)
			inference.POST("/check-toxicity", aiHandler.CheckToxicity)
			inference.POST("/generate-meme", aiHandler.GenerateMeme)
		}
	}

	return router
}

// healthCheck reports healthy when every probe passes
func healthCheck(probes []Probe) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{}
		for _, p := range probes {
			if err := p.Check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				checks[p.Name] = err.Error()
				continue
			}
			checks[p.Name] = "ok"
		}

		state := "healthy"
		if status != http.StatusOK {
			state = "unhealthy"
		}
		c.JSON(status, gin.H{
			"status":    state,
			"checks":    checks,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "campus-feed-api",
		})
	}
}

// metricsHandler returns stored comment and reaction totals
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		commentCount, err := services.Comment.Count(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		reactionCount, err := services.Reaction.Count(ctx)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"comments":  commentCount,
				"reactions": reactionCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// requestIDMiddleware propagates or assigns a request id
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("request_id", c.GetString("request_id")).
					Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}
		if len(c.Errors) > 0 {
			event = event.Str("error", c.Errors.Last().Error())
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString("request_id")).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS for the configured frontend origin
func corsMiddleware(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
