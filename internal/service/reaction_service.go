package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campus-feed-api/internal/models"
	"github.com/campus-feed-api/internal/repository"
	"github.com/campus-feed-api/internal/validation"
	"github.com/rs/zerolog"
)

// maxToggleAttempts bounds retries when the row a toggle read changes
// before the write lands
const maxToggleAttempts = 3

// reactionService is the concrete implementation of ReactionService
type reactionService struct {
	repo     repository.ReactionRepository
	comments repository.CommentRepository
	log      zerolog.Logger
	now      func() time.Time
}

func newReactionService(repo repository.ReactionRepository, comments repository.CommentRepository, log zerolog.Logger) *reactionService {
	return &reactionService{
		repo:     repo,
		comments: comments,
		log:      log.With().Str("service", "reaction").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ApplyReaction toggles the actor's reaction on a target:
// no reaction -> added, same symbol -> removed, other symbol -> updated.
func (s *reactionService) ApplyReaction(ctx context.Context, target models.ReactionTarget, actor, symbol string) (*models.ReactionResult, error) {
	if err := validation.ValidateReactionTarget(target); err != nil {
		return nil, err
	}
	if err := validation.RequireText("userId", actor); err != nil {
		return nil, err
	}
	if err := validation.RequireText("reactionType", symbol); err != nil {
		return nil, err
	}
	if err := s.checkCommentTarget(ctx, target); err != nil {
		return nil, err
	}

	key := target.Key(actor)
	for attempt := 1; attempt <= maxToggleAttempts; attempt++ {
		action, settled, err := s.toggle(ctx, key, symbol)
		if err != nil {
			return nil, err
		}
		if settled {
			s.log.Debug().
				Int64("post_id", key.PostID).
				Str("target_kind", string(key.TargetKind)).
				Str("action", string(action)).
				Int("attempt", attempt).
				Msg("Reaction applied")
			return &models.ReactionResult{Action: action, ReactionType: symbol}, nil
		}
		s.log.Debug().Int("attempt", attempt).Msg("Reaction row changed during toggle, retrying")
	}

	return nil, fmt.Errorf("reaction toggle did not settle after %d attempts", maxToggleAttempts)
}

// toggle runs one read-then-write pass. settled is false when the row it
// read disappeared before the write, in which case the caller retries.
func (s *reactionService) toggle(ctx context.Context, key models.ReactionKey, symbol string) (models.ReactionAction, bool, error) {
	existing, err := s.repo.Find(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("failed to load reaction: %w", err)
	}

	if existing == nil {
		reaction := &models.Reaction{
			Symbol:     symbol,
			CreatedBy:  key.CreatedBy,
			PostID:     key.PostID,
			PostKind:   key.PostKind,
			TargetKind: key.TargetKind,
			TargetID:   key.TargetID,
			CreatedAt:  s.now(),
		}
		err := s.repo.Create(ctx, reaction)
		if errors.Is(err, repository.ErrReactionConflict) {
			// a concurrent request inserted this key first
			return s.overwrite(ctx, key, symbol)
		}
		if err != nil {
			return "", false, fmt.Errorf("failed to store reaction: %w", err)
		}
		return models.ReactionAdded, true, nil
	}

	if existing.Symbol == symbol {
		// a concurrent delete of the same row leaves the same end state
		if _, err := s.repo.Delete(ctx, existing.ID); err != nil {
			return "", false, fmt.Errorf("failed to remove reaction: %w", err)
		}
		return models.ReactionRemoved, true, nil
	}

	updated, err := s.repo.UpdateSymbol(ctx, existing.ID, symbol, s.now())
	if err != nil {
		return "", false, fmt.Errorf("failed to update reaction: %w", err)
	}
	return models.ReactionUpdated, updated, nil
}

// overwrite resolves an insert conflict by re-reading the winning row and
// writing the requested symbol over it
func (s *reactionService) overwrite(ctx context.Context, key models.ReactionKey, symbol string) (models.ReactionAction, bool, error) {
	existing, err := s.repo.Find(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("failed to reload reaction after conflict: %w", err)
	}
	if existing == nil {
		return "", false, nil
	}

	updated, err := s.repo.UpdateSymbol(ctx, existing.ID, symbol, s.now())
	if err != nil {
		return "", false, fmt.Errorf("failed to update reaction after conflict: %w", err)
	}
	return models.ReactionUpdated, updated, nil
}

// CountsByTarget maps each symbol on the target to its number of reactions
func (s *reactionService) CountsByTarget(ctx context.Context, target models.ReactionTarget) (map[string]int, error) {
	if err := validation.ValidateReactionTarget(target); err != nil {
		return nil, err
	}
	counts, err := s.repo.CountBySymbol(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to count reactions: %w", err)
	}
	return counts, nil
}

// ActorReaction returns the actor's current symbol on the target, or nil
func (s *reactionService) ActorReaction(ctx context.Context, target models.ReactionTarget, actor string) (*string, error) {
	if err := validation.ValidateReactionTarget(target); err != nil {
		return nil, err
	}
	existing, err := s.repo.Find(ctx, target.Key(actor))
	if err != nil {
		return nil, fmt.Errorf("failed to load reaction: %w", err)
	}
	if existing == nil {
		return nil, nil
	}
	symbol := existing.Symbol
	return &symbol, nil
}

// Summary combines the counts with the actor's own reaction when actor is set
func (s *reactionService) Summary(ctx context.Context, target models.ReactionTarget, actor string) (*models.ReactionSummary, error) {
	counts, err := s.CountsByTarget(ctx, target)
	if err != nil {
		return nil, err
	}

	summary := &models.ReactionSummary{Reactions: counts}
	if actor != "" {
		summary.UserReaction, err = s.ActorReaction(ctx, target, actor)
		if err != nil {
			return nil, err
		}
	}
	return summary, nil
}

// Count returns the total number of stored reactions
func (s *reactionService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// checkCommentTarget verifies that a comment target exists under the
// addressed post
func (s *reactionService) checkCommentTarget(ctx context.Context, target models.ReactionTarget) error {
	if target.TargetKind != models.TargetKindComment {
		return nil
	}

	comment, err := s.comments.GetByID(ctx, *target.TargetID)
	if err != nil {
		return fmt.Errorf("failed to load comment: %w", err)
	}
	if comment == nil || comment.PostID != target.PostID || comment.PostKind != target.PostKind {
		return fmt.Errorf("%w: comment %d on %s %d", models.ErrNotFound, *target.TargetID, target.PostKind, target.PostID)
	}
	return nil
}
