package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/campus-feed-api/internal/database"
	"github.com/campus-feed-api/internal/models"
)

const commentColumns = `id, content, created_by, post_id, post_kind, parent_id, is_toxic, toxicity_score, created_at, updated_at`

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment and fills in its ID and timestamps
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (content, created_by, post_id, post_kind, parent_id, is_toxic, toxicity_score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id, created_at, updated_at
	`
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	return r.db.QueryRowContext(ctx, query,
		comment.Content, comment.CreatedBy, comment.PostID, string(comment.PostKind),
		nullableID(comment.ParentID), comment.IsToxic, comment.ToxicityScore, comment.CreatedAt,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListTopLevel returns the post's comments without a parent, oldest first
func (r *commentRepo) ListTopLevel(ctx context.Context, post models.PostRef) ([]*models.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE post_id = $1 AND post_kind = $2 AND parent_id IS NULL
		ORDER BY created_at ASC, id ASC
	`
	return r.list(ctx, query, post.PostID, string(post.PostKind))
}

// ListReplies returns the replies under one comment, oldest first
func (r *commentRepo) ListReplies(ctx context.Context, parentID int64) ([]*models.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE parent_id = $1
		ORDER BY created_at ASC, id ASC
	`
	return r.list(ctx, query, parentID)
}

// UpdateContent replaces content and toxicity fields in one statement.
// The creator check is repeated here so a concurrent ownership change
// cannot slip through between read and write.
func (r *commentRepo) UpdateContent(ctx context.Context, comment *models.Comment) (bool, error) {
	query := `
		UPDATE comments
		SET content = $1, is_toxic = $2, toxicity_score = $3, updated_at = $4
		WHERE id = $5 AND created_by = $6
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		comment.Content, comment.IsToxic, comment.ToxicityScore, time.Now().UTC(),
		comment.ID, comment.CreatedBy,
	).Scan(&comment.UpdatedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete hard-deletes a comment. Replies are left untouched.
func (r *commentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountByPost returns the number of comments and replies on a post
func (r *commentRepo) CountByPost(ctx context.Context, post models.PostRef) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM comments WHERE post_id = $1 AND post_kind = $2",
		post.PostID, string(post.PostKind),
	).Scan(&count)
	return count, err
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}

func (r *commentRepo) list(ctx context.Context, query string, args ...interface{}) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComment(row rowScanner) (*models.Comment, error) {
	var (
		comment  models.Comment
		postKind string
		parentID sql.NullInt64
	)
	err := row.Scan(
		&comment.ID, &comment.Content, &comment.CreatedBy, &comment.PostID, &postKind,
		&parentID, &comment.IsToxic, &comment.ToxicityScore, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	comment.PostKind = models.PostKind(postKind)
	if parentID.Valid {
		id := parentID.Int64
		comment.ParentID = &id
	}
	return &comment, nil
}
