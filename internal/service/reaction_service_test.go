package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/campus-feed-api/internal/ai"
	"github.com/campus-feed-api/internal/mocks"
	"github.com/campus-feed-api/internal/models"
	"github.com/campus-feed-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReactionFixture(t *testing.T) (*service.Services, *mocks.MockCommentRepository, *mocks.MockReactionRepository) {
	t.Helper()
	repos, comments, reactions := mocks.NewMockRepositories()
	return service.NewServices(repos, ai.Fallback{}, zerolog.Nop()), comments, reactions
}

func postTarget(id int64) models.ReactionTarget {
	return models.ReactionTarget{PostID: id, PostKind: models.PostKindEvent, TargetKind: models.TargetKindPost}
}

func TestApplyReaction_Toggle(t *testing.T) {
	svc, _, reactions := newReactionFixture(t)
	ctx := context.Background()
	target := postTarget(7)

	result, err := svc.Reaction.ApplyReaction(ctx, target, "alice", "👍")
	require.NoError(t, err)
	assert.Equal(t, models.ReactionAdded, result.Action)
	assert.Equal(t, "👍", result.ReactionType)
	assert.Equal(t, 1, reactions.CountFor(target.Key("alice")))

	result, err = svc.Reaction.ApplyReaction(ctx, target, "alice", "👍")
	require.NoError(t, err)
	assert.Equal(t, models.ReactionRemoved, result.Action)
	assert.Equal(t, 0, reactions.CountFor(target.Key("alice")))
}

func TestApplyReaction_SwitchSymbolKeepsOneRow(t *testing.T) {
	svc, _, reactions := newReactionFixture(t)
	ctx := context.Background()
	target := postTarget(7)

	_, err := svc.Reaction.ApplyReaction(ctx, target, "alice", "👍")
	require.NoError(t, err)

	result, err := svc.Reaction.ApplyReaction(ctx, target, "alice", "❤️")
	require.NoError(t, err)
	assert.Equal(t, models.ReactionUpdated, result.Action)
	assert.Equal(t, 1, reactions.CountFor(target.Key("alice")))

	mine, err := svc.Reaction.ActorReaction(ctx, target, "alice")
	require.NoError(t, err)
	require.NotNil(t, mine)
	assert.Equal(t, "❤️", *mine)
}

func TestCountsByTarget(t *testing.T) {
	svc, _, _ := newReactionFixture(t)
	ctx := context.Background()
	target := postTarget(7)

	for actor, symbol := range map[string]string{"u1": "👍", "u2": "👍", "u3": "❤️"} {
		_, err := svc.Reaction.ApplyReaction(ctx, target, actor, symbol)
		require.NoError(t, err)
	}
	// a reaction on another post must not leak into the counts
	_, err := svc.Reaction.ApplyReaction(ctx, postTarget(8), "u1", "😂")
	require.NoError(t, err)

	counts, err := svc.Reaction.CountsByTarget(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"👍": 2, "❤️": 1}, counts)
}

func TestSummary(t *testing.T) {
	svc, _, _ := newReactionFixture(t)
	ctx := context.Background()
	target := postTarget(3)

	_, err := svc.Reaction.ApplyReaction(ctx, target, "alice", "🔥")
	require.NoError(t, err)

	summary, err := svc.Reaction.Summary(ctx, target, "alice")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"🔥": 1}, summary.Reactions)
	require.NotNil(t, summary.UserReaction)
	assert.Equal(t, "🔥", *summary.UserReaction)

	summary, err = svc.Reaction.Summary(ctx, target, "bob")
	require.NoError(t, err)
	assert.Nil(t, summary.UserReaction)

	summary, err = svc.Reaction.Summary(ctx, postTarget(99), "")
	require.NoError(t, err)
	assert.Empty(t, summary.Reactions)
	assert.NotNil(t, summary.Reactions)
}

func TestApplyReaction_CommentTarget(t *testing.T) {
	svc, _, reactions := newReactionFixture(t)
	ctx := context.Background()
	post := models.PostRef{PostID: 7, PostKind: models.PostKindEvent}

	comment, err := svc.Comment.AddComment(ctx, post, "bob", "see you there", nil)
	require.NoError(t, err)

	target := models.ReactionTarget{
		PostID:     7,
		PostKind:   models.PostKindEvent,
		TargetKind: models.TargetKindComment,
		TargetID:   &comment.ID,
	}
	result, err := svc.Reaction.ApplyReaction(ctx, target, "alice", "👍")
	require.NoError(t, err)
	assert.Equal(t, models.ReactionAdded, result.Action)

	// the post-level slot for the same actor is independent
	result, err = svc.Reaction.ApplyReaction(ctx, postTarget(7), "alice", "👍")
	require.NoError(t, err)
	assert.Equal(t, models.ReactionAdded, result.Action)
	assert.Equal(t, 1, reactions.CountFor(target.Key("alice")))

	counts, err := svc.Reaction.CountsByTarget(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"👍": 1}, counts)
}

func TestApplyReaction_CommentOnOtherPost(t *testing.T) {
	svc, _, reactions := newReactionFixture(t)
	ctx := context.Background()

	comment, err := svc.Comment.AddComment(ctx, models.PostRef{PostID: 7, PostKind: models.PostKindEvent}, "bob", "hi", nil)
	require.NoError(t, err)

	missing := int64(404)
	tests := []struct {
		name     string
		postID   int64
		targetID *int64
	}{
		{"comment under another post", 8, &comment.ID},
		{"comment does not exist", 7, &missing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := models.ReactionTarget{
				PostID:     tt.postID,
				PostKind:   models.PostKindEvent,
				TargetKind: models.TargetKindComment,
				TargetID:   tt.targetID,
			}
			_, err := svc.Reaction.ApplyReaction(ctx, target, "alice", "👍")
			assert.ErrorIs(t, err, models.ErrNotFound)
		})
	}
	assert.Empty(t, reactions.Reactions)
}

func TestApplyReaction_InvalidInput(t *testing.T) {
	svc, _, reactions := newReactionFixture(t)
	ctx := context.Background()
	id := int64(1)

	tests := []struct {
		name   string
		target models.ReactionTarget
		actor  string
		symbol string
	}{
		{"blank actor", postTarget(1), "  ", "👍"},
		{"blank symbol", postTarget(1), "alice", ""},
		{"unknown post kind", models.ReactionTarget{PostID: 1, PostKind: "BLOG", TargetKind: models.TargetKindPost}, "alice", "👍"},
		{"comment target without id", models.ReactionTarget{PostID: 1, PostKind: models.PostKindEvent, TargetKind: models.TargetKindComment}, "alice", "👍"},
		{"post target with id", models.ReactionTarget{PostID: 1, PostKind: models.PostKindEvent, TargetKind: models.TargetKindPost, TargetID: &id}, "alice", "👍"},
		{"non-positive post id", postTarget(0), "alice", "👍"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Reaction.ApplyReaction(ctx, tt.target, tt.actor, tt.symbol)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
	assert.Zero(t, reactions.CreateCalls)
}

func TestApplyReaction_InsertConflictBecomesUpdate(t *testing.T) {
	svc, _, reactions := newReactionFixture(t)
	target := postTarget(7)

	// another request inserts the same slot between our read and our insert
	var once sync.Once
	reactions.BeforeCreate = func() {
		once.Do(func() {
			reactions.Insert(models.Reaction{
				Symbol:     "❤️",
				CreatedBy:  "alice",
				PostID:     target.PostID,
				PostKind:   target.PostKind,
				TargetKind: target.TargetKind,
			})
		})
	}

	result, err := svc.Reaction.ApplyReaction(context.Background(), target, "alice", "👍")
	require.NoError(t, err)
	assert.Equal(t, models.ReactionUpdated, result.Action)
	assert.Equal(t, 1, reactions.Conflicts)
	assert.Equal(t, 1, reactions.CountFor(target.Key("alice")))

	counts, err := svc.Reaction.CountsByTarget(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"👍": 1}, counts)
}

func TestApplyReaction_RetriesWhenRowVanishes(t *testing.T) {
	svc, _, reactions := newReactionFixture(t)
	ctx := context.Background()
	target := postTarget(7)

	_, err := svc.Reaction.ApplyReaction(ctx, target, "alice", "👍")
	require.NoError(t, err)

	// the row is deleted right after the toggle reads it
	var once sync.Once
	reactions.AfterFind = func(found *models.Reaction) {
		if found == nil {
			return
		}
		once.Do(func() {
			_, _ = reactions.Delete(ctx, found.ID)
		})
	}

	result, err := svc.Reaction.ApplyReaction(ctx, target, "alice", "❤️")
	require.NoError(t, err)
	assert.Equal(t, models.ReactionAdded, result.Action)
	assert.Equal(t, 1, reactions.CountFor(target.Key("alice")))
}

func TestApplyReaction_ConcurrentSameActor(t *testing.T) {
	svc, _, reactions := newReactionFixture(t)
	target := postTarget(7)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			symbol := "👍"
			if i%2 == 1 {
				symbol = "❤️"
			}
			// a toggle may give up under contention; the slot must stay unique either way
			_, _ = svc.Reaction.ApplyReaction(context.Background(), target, "alice", symbol)
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, reactions.CountFor(target.Key("alice")), 1)
}

func TestApplyReaction_RepositoryError(t *testing.T) {
	svc, _, reactions := newReactionFixture(t)
	reactions.FindError = errors.New("connection reset")

	_, err := svc.Reaction.ApplyReaction(context.Background(), postTarget(1), "alice", "👍")
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrInvalidInput)
	assert.Contains(t, err.Error(), "connection reset")
}
