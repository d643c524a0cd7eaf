package service

import (
	"context"
	"fmt"

	"github.com/campus-feed-api/internal/ai"
	"github.com/campus-feed-api/internal/models"
	"github.com/campus-feed-api/internal/repository"
	"github.com/campus-feed-api/internal/validation"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// replyFetchConcurrency bounds the parallel reply queries per thread render
const replyFetchConcurrency = 4

// commentService is the concrete implementation of CommentService
type commentService struct {
	repo       repository.CommentRepository
	classifier ai.Classifier
	log        zerolog.Logger
}

func newCommentService(repo repository.CommentRepository, classifier ai.Classifier, log zerolog.Logger) *commentService {
	return &commentService{
		repo:       repo,
		classifier: classifier,
		log:        log.With().Str("service", "comment").Logger(),
	}
}

// AddComment stores a top-level comment, or a reply when parentID is set.
// A reply takes its post from the parent, and a reply to a reply is
// attached to the top-level comment above it.
func (s *commentService) AddComment(ctx context.Context, post models.PostRef, actor, content string, parentID *int64) (*models.Comment, error) {
	if err := validation.RequireText("userId", actor); err != nil {
		return nil, err
	}
	if err := validation.RequireText("content", content); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:   content,
		CreatedBy: actor,
		PostID:    post.PostID,
		PostKind:  post.PostKind,
	}

	if parentID != nil {
		parent, err := s.repo.GetByID(ctx, *parentID)
		if err != nil {
			return nil, fmt.Errorf("failed to load parent comment: %w", err)
		}
		if parent == nil {
			return nil, fmt.Errorf("%w: parent comment %d", models.ErrNotFound, *parentID)
		}

		topLevelID := parent.ID
		if parent.ParentID != nil {
			topLevelID = *parent.ParentID
		}
		comment.ParentID = &topLevelID
		comment.PostID = parent.PostID
		comment.PostKind = parent.PostKind
	} else if !models.ValidPostKinds[post.PostKind] || post.PostID <= 0 {
		return nil, &validation.ValidationError{Field: "post", Message: "unknown post reference", Value: post}
	}

	moderate(ctx, s.classifier, comment)

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to store comment: %w", err)
	}

	event := s.log.Info()
	if comment.IsToxic {
		event = s.log.Warn()
	}
	event.
		Int64("comment_id", comment.ID).
		Int64("post_id", comment.PostID).
		Str("post_kind", string(comment.PostKind)).
		Bool("reply", comment.IsReply()).
		Bool("is_toxic", comment.IsToxic).
		Float64("toxicity_score", comment.ToxicityScore).
		Msg("Comment created")

	return comment, nil
}

// AddReply replies to an existing comment
func (s *commentService) AddReply(ctx context.Context, parentID int64, actor, content string) (*models.Comment, error) {
	return s.AddComment(ctx, models.PostRef{}, actor, content, &parentID)
}

// EditComment replaces the content of the actor's own comment and
// re-runs moderation on it
func (s *commentService) EditComment(ctx context.Context, id int64, actor, content string) (*models.Comment, error) {
	if err := validation.RequireText("userId", actor); err != nil {
		return nil, err
	}
	if err := validation.RequireText("content", content); err != nil {
		return nil, err
	}

	comment, err := s.ownedComment(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	moderate(ctx, s.classifier, comment)

	updated, err := s.repo.UpdateContent(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	if !updated {
		// deleted between the read and the write
		return nil, fmt.Errorf("%w: comment %d", models.ErrNotFound, id)
	}

	s.log.Info().
		Int64("comment_id", id).
		Bool("is_toxic", comment.IsToxic).
		Float64("toxicity_score", comment.ToxicityScore).
		Msg("Comment edited")

	return comment, nil
}

// DeleteComment hard-deletes the actor's own comment. Replies stay.
func (s *commentService) DeleteComment(ctx context.Context, id int64, actor string) error {
	if err := validation.RequireText("userId", actor); err != nil {
		return err
	}
	if _, err := s.ownedComment(ctx, id, actor); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: comment %d", models.ErrNotFound, id)
	}

	s.log.Info().Int64("comment_id", id).Msg("Comment deleted")
	return nil
}

// ListThread returns the post's top-level comments oldest first, each with
// its replies oldest first
func (s *commentService) ListThread(ctx context.Context, post models.PostRef) ([]*models.Thread, error) {
	topLevel, err := s.repo.ListTopLevel(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	threads := make([]*models.Thread, len(topLevel))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(replyFetchConcurrency)
	for i, top := range topLevel {
		i, top := i, top
		g.Go(func() error {
			replies, err := s.repo.ListReplies(gctx, top.ID)
			if err != nil {
				return fmt.Errorf("failed to list replies for comment %d: %w", top.ID, err)
			}
			if replies == nil {
				replies = []*models.Comment{}
			}
			threads[i] = &models.Thread{Comment: *top, Replies: replies}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return threads, nil
}

// CountForPost counts comments and replies on a post
func (s *commentService) CountForPost(ctx context.Context, post models.PostRef) (int, error) {
	return s.repo.CountByPost(ctx, post)
}

// Count returns the total number of stored comments
func (s *commentService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *commentService) ownedComment(ctx context.Context, id int64, actor string) (*models.Comment, error) {
	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	if comment == nil {
		return nil, fmt.Errorf("%w: comment %d", models.ErrNotFound, id)
	}
	if comment.CreatedBy != actor {
		return nil, fmt.Errorf("%w: comment %d", models.ErrForbidden, id)
	}
	return comment, nil
}
