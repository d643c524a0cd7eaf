package mocks

import (
	"context"
	"sync"

	"github.com/campus-feed-api/internal/ai"
	"github.com/campus-feed-api/internal/models"
	"github.com/campus-feed-api/internal/service"
)

// MockClassifier is a scriptable Classifier that records its inputs.
// Unset funcs fall back to the keyword classifier.
type MockClassifier struct {
	mu            sync.Mutex
	ClassifyFunc  func(prompt string) models.ClassificationResult
	ToxicityFunc  func(content string) models.ToxicityResult
	ToxicityCalls []string
}

// Verify interface compliance
var _ ai.Classifier = (*MockClassifier)(nil)

// NewToxicClassifier flags any content as toxic with the given score and
// suggestion
func NewToxicClassifier(score float64, suggestion string) *MockClassifier {
	return &MockClassifier{
		ToxicityFunc: func(string) models.ToxicityResult {
			return models.ToxicityResult{IsToxic: true, ToxicityScore: score, Suggestion: &suggestion}
		},
	}
}

func (m *MockClassifier) Classify(ctx context.Context, prompt string) models.ClassificationResult {
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(prompt)
	}
	return ai.FallbackClassification(prompt)
}

func (m *MockClassifier) CheckToxicity(ctx context.Context, content string) models.ToxicityResult {
	m.mu.Lock()
	m.ToxicityCalls = append(m.ToxicityCalls, content)
	m.mu.Unlock()

	if m.ToxicityFunc != nil {
		return m.ToxicityFunc(content)
	}
	return ai.FallbackToxicity()
}

// MockCommentService is a mock implementation of CommentService.
// Unset funcs return zero values.
type MockCommentService struct {
	AddCommentFunc   func(ctx context.Context, post models.PostRef, actor, content string, parentID *int64) (*models.Comment, error)
	AddReplyFunc     func(ctx context.Context, parentID int64, actor, content string) (*models.Comment, error)
	EditCommentFunc  func(ctx context.Context, id int64, actor, content string) (*models.Comment, error)
	DeleteFunc       func(ctx context.Context, id int64, actor string) error
	ListThreadFunc   func(ctx context.Context, post models.PostRef) ([]*models.Thread, error)
	CountForPostFunc func(ctx context.Context, post models.PostRef) (int, error)
	CountFunc        func(ctx context.Context) (int, error)
}

// Verify interface compliance
var _ service.CommentService = (*MockCommentService)(nil)

func (m *MockCommentService) AddComment(ctx context.Context, post models.PostRef, actor, content string, parentID *int64) (*models.Comment, error) {
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, post, actor, content, parentID)
	}
	return &models.Comment{Content: content, CreatedBy: actor, PostID: post.PostID, PostKind: post.PostKind, ParentID: parentID}, nil
}

func (m *MockCommentService) AddReply(ctx context.Context, parentID int64, actor, content string) (*models.Comment, error) {
	if m.AddReplyFunc != nil {
		return m.AddReplyFunc(ctx, parentID, actor, content)
	}
	return &models.Comment{Content: content, CreatedBy: actor, ParentID: &parentID}, nil
}

func (m *MockCommentService) EditComment(ctx context.Context, id int64, actor, content string) (*models.Comment, error) {
	if m.EditCommentFunc != nil {
		return m.EditCommentFunc(ctx, id, actor, content)
	}
	return &models.Comment{ID: id, Content: content, CreatedBy: actor}, nil
}

func (m *MockCommentService) DeleteComment(ctx context.Context, id int64, actor string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, actor)
	}
	return nil
}

func (m *MockCommentService) ListThread(ctx context.Context, post models.PostRef) ([]*models.Thread, error) {
	if m.ListThreadFunc != nil {
		return m.ListThreadFunc(ctx, post)
	}
	return []*models.Thread{}, nil
}

func (m *MockCommentService) CountForPost(ctx context.Context, post models.PostRef) (int, error) {
	if m.CountForPostFunc != nil {
		return m.CountForPostFunc(ctx, post)
	}
	return 0, nil
}

func (m *MockCommentService) Count(ctx context.Context) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockReactionService is a mock implementation of ReactionService
type MockReactionService struct {
	ApplyFunc   func(ctx context.Context, target models.ReactionTarget, actor, symbol string) (*models.ReactionResult, error)
	SummaryFunc func(ctx context.Context, target models.ReactionTarget, actor string) (*models.ReactionSummary, error)
	CountFunc   func(ctx context.Context) (int, error)
}

// Verify interface compliance
var _ service.ReactionService = (*MockReactionService)(nil)

func (m *MockReactionService) ApplyReaction(ctx context.Context, target models.ReactionTarget, actor, symbol string) (*models.ReactionResult, error) {
	if m.ApplyFunc != nil {
		return m.ApplyFunc(ctx, target, actor, symbol)
	}
	return &models.ReactionResult{Action: models.ReactionAdded, ReactionType: symbol}, nil
}

func (m *MockReactionService) CountsByTarget(ctx context.Context, target models.ReactionTarget) (map[string]int, error) {
	summary, err := m.Summary(ctx, target, "")
	if err != nil {
		return nil, err
	}
	return summary.Reactions, nil
}

func (m *MockReactionService) ActorReaction(ctx context.Context, target models.ReactionTarget, actor string) (*string, error) {
	summary, err := m.Summary(ctx, target, actor)
	if err != nil {
		return nil, err
	}
	return summary.UserReaction, nil
}

func (m *MockReactionService) Summary(ctx context.Context, target models.ReactionTarget, actor string) (*models.ReactionSummary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, target, actor)
	}
	return &models.ReactionSummary{Reactions: map[string]int{}}, nil
}

func (m *MockReactionService) Count(ctx context.Context) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}
