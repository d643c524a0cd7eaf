package service

import (
	"context"

	"github.com/campus-feed-api/internal/ai"
	"github.com/campus-feed-api/internal/models"
	"github.com/campus-feed-api/internal/repository"
	"github.com/rs/zerolog"
)

// CommentService defines two-level comment thread operations.
// Every content write passes through a moderation pass first.
type CommentService interface {
	AddComment(ctx context.Context, post models.PostRef, actor, content string, parentID *int64) (*models.Comment, error)
	AddReply(ctx context.Context, parentID int64, actor, content string) (*models.Comment, error)
	EditComment(ctx context.Context, id int64, actor, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int64, actor string) error
	ListThread(ctx context.Context, post models.PostRef) ([]*models.Thread, error)
	CountForPost(ctx context.Context, post models.PostRef) (int, error)
	Count(ctx context.Context) (int, error)
}

// ReactionService defines the reaction toggle and its read models
type ReactionService interface {
	ApplyReaction(ctx context.Context, target models.ReactionTarget, actor, symbol string) (*models.ReactionResult, error)
	CountsByTarget(ctx context.Context, target models.ReactionTarget) (map[string]int, error)
	ActorReaction(ctx context.Context, target models.ReactionTarget, actor string) (*string, error)
	Summary(ctx context.Context, target models.ReactionTarget, actor string) (*models.ReactionSummary, error)
	Count(ctx context.Context) (int, error)
}

// AIService exposes classification and moderation as request/response calls
type AIService interface {
	Classify(ctx context.Context, prompt string) (*models.ClassificationResult, error)
	CheckToxicity(ctx context.Context, content string) (*models.ToxicityResult, error)
	GenerateMeme(ctx context.Context, prompt string) (*models.MemeResult, error)
}

// Services holds all service interfaces
type Services struct {
	Comment  CommentService
	Reaction ReactionService
	AI       AIService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, classifier ai.Classifier, log zerolog.Logger) *Services {
	return &Services{
		Comment:  newCommentService(repos.Comment, classifier, log),
		Reaction: newReactionService(repos.Reaction, repos.Comment, log),
		AI:       newAIService(classifier, log),
	}
}
