package repository

import (
	"context"
	"errors"
	"time"

	"github.com/campus-feed-api/internal/database"
	"github.com/campus-feed-api/internal/models"
	"github.com/lib/pq"
)

// ErrReactionConflict is returned when an insert hits the unique
// (post, actor, target) index because another request won the race.
var ErrReactionConflict = errors.New("reaction already exists for this actor and target")

// CommentRepository defines the interface for comment data operations.
// Lookups return (nil, nil) when no row matches.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListTopLevel(ctx context.Context, post models.PostRef) ([]*models.Comment, error)
	ListReplies(ctx context.Context, parentID int64) ([]*models.Comment, error)
	UpdateContent(ctx context.Context, comment *models.Comment) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CountByPost(ctx context.Context, post models.PostRef) (int, error)
	Count(ctx context.Context) (int, error)
}

// ReactionRepository defines the interface for reaction data operations.
// Create must return ErrReactionConflict on a unique key violation.
type ReactionRepository interface {
	Find(ctx context.Context, key models.ReactionKey) (*models.Reaction, error)
	Create(ctx context.Context, reaction *models.Reaction) error
	UpdateSymbol(ctx context.Context, id int64, symbol string, at time.Time) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CountBySymbol(ctx context.Context, target models.ReactionTarget) (map[string]int, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Comment  CommentRepository
	Reaction ReactionRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Comment:  NewCommentRepo(db),
		Reaction: NewReactionRepo(db),
	}
}

// isUniqueViolation reports whether err is a Postgres unique_violation
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation"
	}
	return false
}
