package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/campus-feed-api/internal/models"
	"github.com/campus-feed-api/internal/repository"
)

// mockEpoch anchors generated timestamps so ordering follows insertion
var mockEpoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// MockCommentRepository is an in-memory CommentRepository.
// Comments without a CreatedAt get one second per ID after a fixed epoch.
type MockCommentRepository struct {
	mu       sync.Mutex
	Comments map[int64]*models.Comment
	nextID   int64

	CreateError      error
	ListRepliesError error
	ListRepliesCalls int
}

// Verify interface compliance
var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[int64]*models.Comment),
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return m.CreateError
	}
	m.nextID++
	comment.ID = m.nextID
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = mockEpoch.Add(time.Duration(comment.ID) * time.Second)
	}
	comment.UpdatedAt = comment.CreatedAt

	stored := copyComment(comment)
	stored.Suggestion = ""
	m.Comments[comment.ID] = stored
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.Comments[id]
	if !ok {
		return nil, nil
	}
	return copyComment(c), nil
}

func (m *MockCommentRepository) ListTopLevel(ctx context.Context, post models.PostRef) ([]*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.filter(func(c *models.Comment) bool {
		return c.ParentID == nil && c.PostID == post.PostID && c.PostKind == post.PostKind
	}), nil
}

func (m *MockCommentRepository) ListReplies(ctx context.Context, parentID int64) ([]*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListRepliesCalls++
	if m.ListRepliesError != nil {
		return nil, m.ListRepliesError
	}
	return m.filter(func(c *models.Comment) bool {
		return c.ParentID != nil && *c.ParentID == parentID
	}), nil
}

func (m *MockCommentRepository) UpdateContent(ctx context.Context, comment *models.Comment) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.Comments[comment.ID]
	if !ok || stored.CreatedBy != comment.CreatedBy {
		return false, nil
	}
	stored.Content = comment.Content
	stored.IsToxic = comment.IsToxic
	stored.ToxicityScore = comment.ToxicityScore
	stored.UpdatedAt = stored.UpdatedAt.Add(time.Minute)
	comment.UpdatedAt = stored.UpdatedAt
	return true, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Comments[id]; !ok {
		return false, nil
	}
	delete(m.Comments, id)
	return true, nil
}

func (m *MockCommentRepository) CountByPost(ctx context.Context, post models.PostRef) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, c := range m.Comments {
		if c.PostID == post.PostID && c.PostKind == post.PostKind {
			count++
		}
	}
	return count, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Comments), nil
}

func (m *MockCommentRepository) filter(keep func(*models.Comment) bool) []*models.Comment {
	out := make([]*models.Comment, 0)
	for _, c := range m.Comments {
		if keep(c) {
			out = append(out, copyComment(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func copyComment(c *models.Comment) *models.Comment {
	cp := *c
	if c.ParentID != nil {
		id := *c.ParentID
		cp.ParentID = &id
	}
	return &cp
}

// MockReactionRepository is an in-memory ReactionRepository that enforces
// the same one-per-(post, actor, target) key as the database index
type MockReactionRepository struct {
	mu        sync.Mutex
	Reactions map[int64]*models.Reaction
	nextID    int64

	// BeforeCreate runs before each insert, outside the lock. Tests use it
	// to let a concurrent writer win the race for the key.
	BeforeCreate func()
	// AfterFind runs after each lookup, outside the lock
	AfterFind func(found *models.Reaction)

	FindError   error
	CreateCalls int
	Conflicts   int
}

// Verify interface compliance
var _ repository.ReactionRepository = (*MockReactionRepository)(nil)

func NewMockReactionRepository() *MockReactionRepository {
	return &MockReactionRepository{
		Reactions: make(map[int64]*models.Reaction),
	}
}

func (m *MockReactionRepository) Find(ctx context.Context, key models.ReactionKey) (*models.Reaction, error) {
	m.mu.Lock()
	if m.FindError != nil {
		m.mu.Unlock()
		return nil, m.FindError
	}
	var found *models.Reaction
	for _, r := range m.Reactions {
		if sameKey(reactionKey(r), key) {
			cp := *r
			found = &cp
			break
		}
	}
	hook := m.AfterFind
	m.mu.Unlock()

	if hook != nil {
		hook(found)
	}
	return found, nil
}

func (m *MockReactionRepository) Create(ctx context.Context, reaction *models.Reaction) error {
	if m.BeforeCreate != nil {
		m.BeforeCreate()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	key := reactionKey(reaction)
	for _, r := range m.Reactions {
		if sameKey(reactionKey(r), key) {
			m.Conflicts++
			return repository.ErrReactionConflict
		}
	}

	m.nextID++
	reaction.ID = m.nextID
	if reaction.CreatedAt.IsZero() {
		reaction.CreatedAt = mockEpoch.Add(time.Duration(reaction.ID) * time.Second)
	}
	cp := *reaction
	m.Reactions[reaction.ID] = &cp
	return nil
}

func (m *MockReactionRepository) UpdateSymbol(ctx context.Context, id int64, symbol string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.Reactions[id]
	if !ok {
		return false, nil
	}
	r.Symbol = symbol
	r.CreatedAt = at
	return true, nil
}

func (m *MockReactionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Reactions[id]; !ok {
		return false, nil
	}
	delete(m.Reactions, id)
	return true, nil
}

func (m *MockReactionRepository) CountBySymbol(ctx context.Context, target models.ReactionTarget) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[string]int)
	for _, r := range m.Reactions {
		if r.PostID == target.PostID && r.PostKind == target.PostKind &&
			r.TargetKind == target.TargetKind && sameTargetID(r.TargetID, target.TargetID) {
			counts[r.Symbol]++
		}
	}
	return counts, nil
}

func (m *MockReactionRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Reactions), nil
}

// Insert stores a reaction directly, bypassing hooks and counters
func (m *MockReactionRepository) Insert(reaction models.Reaction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	reaction.ID = m.nextID
	m.Reactions[reaction.ID] = &reaction
}

// CountFor returns how many rows exist for the key
func (m *MockReactionRepository) CountFor(key models.ReactionKey) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, r := range m.Reactions {
		if sameKey(reactionKey(r), key) {
			n++
		}
	}
	return n
}

func reactionKey(r *models.Reaction) models.ReactionKey {
	return models.ReactionKey{
		PostID:     r.PostID,
		PostKind:   r.PostKind,
		CreatedBy:  r.CreatedBy,
		TargetKind: r.TargetKind,
		TargetID:   r.TargetID,
	}
}

func sameKey(a, b models.ReactionKey) bool {
	return a.PostID == b.PostID && a.PostKind == b.PostKind && a.CreatedBy == b.CreatedBy &&
		a.TargetKind == b.TargetKind && sameTargetID(a.TargetID, b.TargetID)
}

func sameTargetID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// NewMockRepositories bundles fresh in-memory repositories
func NewMockRepositories() (*repository.Repositories, *MockCommentRepository, *MockReactionRepository) {
	comments := NewMockCommentRepository()
	reactions := NewMockReactionRepository()
	return &repository.Repositories{Comment: comments, Reaction: reactions}, comments, reactions
}
