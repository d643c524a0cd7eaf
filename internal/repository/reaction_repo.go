package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/campus-feed-api/internal/database"
	"github.com/campus-feed-api/internal/models"
)

// reactionRepo is the concrete implementation of ReactionRepository
type reactionRepo struct {
	db *database.DB
}

// NewReactionRepo creates a new reaction repository
func NewReactionRepo(db *database.DB) ReactionRepository {
	return &reactionRepo{db: db}
}

// Find returns the reaction occupying the key, if any
func (r *reactionRepo) Find(ctx context.Context, key models.ReactionKey) (*models.Reaction, error) {
	query := `
		SELECT id, symbol, created_by, post_id, post_kind, target_kind, target_id, created_at
		FROM reactions
		WHERE post_id = $1 AND post_kind = $2 AND created_by = $3
		  AND target_kind = $4 AND target_id IS NOT DISTINCT FROM $5
	`

	var (
		reaction   models.Reaction
		postKind   string
		targetKind string
		targetID   sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, query,
		key.PostID, string(key.PostKind), key.CreatedBy, string(key.TargetKind), nullableID(key.TargetID),
	).Scan(
		&reaction.ID, &reaction.Symbol, &reaction.CreatedBy, &reaction.PostID,
		&postKind, &targetKind, &targetID, &reaction.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	reaction.PostKind = models.PostKind(postKind)
	reaction.TargetKind = models.TargetKind(targetKind)
	if targetID.Valid {
		id := targetID.Int64
		reaction.TargetID = &id
	}
	return &reaction, nil
}

// Create inserts a reaction. A unique index violation maps to ErrReactionConflict.
func (r *reactionRepo) Create(ctx context.Context, reaction *models.Reaction) error {
	query := `
		INSERT INTO reactions (symbol, created_by, post_id, post_kind, target_kind, target_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	if reaction.CreatedAt.IsZero() {
		reaction.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, query,
		reaction.Symbol, reaction.CreatedBy, reaction.PostID, string(reaction.PostKind),
		string(reaction.TargetKind), nullableID(reaction.TargetID), reaction.CreatedAt,
	).Scan(&reaction.ID)
	if isUniqueViolation(err) {
		return ErrReactionConflict
	}
	return err
}

// UpdateSymbol overwrites the symbol and timestamp in place
func (r *reactionRepo) UpdateSymbol(ctx context.Context, id int64, symbol string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE reactions SET symbol = $1, created_at = $2 WHERE id = $3",
		symbol, at, id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes a reaction by ID
func (r *reactionRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reactions WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountBySymbol groups the target's reactions by symbol
func (r *reactionRepo) CountBySymbol(ctx context.Context, target models.ReactionTarget) (map[string]int, error) {
	query := `
		SELECT symbol, COUNT(*)
		FROM reactions
		WHERE post_id = $1 AND post_kind = $2 AND target_kind = $3
		  AND target_id IS NOT DISTINCT FROM $4
		GROUP BY symbol
	`
	rows, err := r.db.QueryContext(ctx, query,
		target.PostID, string(target.PostKind), string(target.TargetKind), nullableID(target.TargetID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			symbol string
			count  int
		)
		if err := rows.Scan(&symbol, &count); err != nil {
			return nil, err
		}
		counts[symbol] = count
	}

	return counts, rows.Err()
}

// Count returns the total number of reactions
func (r *reactionRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reactions").Scan(&count)
	return count, err
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
