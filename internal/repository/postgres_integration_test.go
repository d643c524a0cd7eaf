package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/campus-feed-api/internal/config"
	"github.com/campus-feed-api/internal/database"
	"github.com/campus-feed-api/internal/models"
	"github.com/campus-feed-api/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// migrationsPath returns the absolute path to the migrations directory.
func migrationsPath(t *testing.T) string {
	t.Helper()
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(currentFile)))
	return filepath.Join(projectRoot, "migrations")
}

// openTestDB connects to the database named by TEST_DB_* and resets both
// tables. Tests skip when TEST_DB_HOST is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping Postgres integration test")
	}

	cfg := &config.DatabaseConfig{
		Host:         host,
		Port:         envOr("TEST_DB_PORT", "5432"),
		User:         envOr("TEST_DB_USER", "postgres"),
		Password:     envOr("TEST_DB_PASSWORD", "postgres"),
		Name:         envOr("TEST_DB_NAME", "campus_feed_test"),
		SSLMode:      "disable",
		MaxOpenConns: 5,
		MaxIdleConns: 2,
		MaxLifetime:  time.Minute,
	}
	db, err := database.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations(migrationsPath(t)))
	_, err = db.Exec("TRUNCATE comments, reactions RESTART IDENTITY")
	require.NoError(t, err)
	return db
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestPostgresReactionRepo_UniqueIndex(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewReactionRepo(db)
	ctx := context.Background()

	first := &models.Reaction{Symbol: "👍", CreatedBy: "alice", PostID: 1, PostKind: models.PostKindEvent, TargetKind: models.TargetKindPost, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID)

	// NULL target ids still collide through the COALESCE index
	dup := &models.Reaction{Symbol: "❤️", CreatedBy: "alice", PostID: 1, PostKind: models.PostKindEvent, TargetKind: models.TargetKindPost, CreatedAt: time.Now().UTC()}
	assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrReactionConflict)

	commentID := int64(10)
	onComment := &models.Reaction{Symbol: "❤️", CreatedBy: "alice", PostID: 1, PostKind: models.PostKindEvent, TargetKind: models.TargetKindComment, TargetID: &commentID, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, onComment))

	key := models.ReactionKey{PostID: 1, PostKind: models.PostKindEvent, CreatedBy: "alice", TargetKind: models.TargetKindComment, TargetID: &commentID}
	found, err := repo.Find(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, onComment.ID, found.ID)

	counts, err := repo.CountBySymbol(ctx, models.ReactionTarget{PostID: 1, PostKind: models.PostKindEvent, TargetKind: models.TargetKindPost})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"👍": 1}, counts)

	deleted, err := repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestPostgresCommentRepo_Thread(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewCommentRepo(db)
	ctx := context.Background()
	post := models.PostRef{PostID: 5, PostKind: models.PostKindLostFound}

	top := &models.Comment{Content: "is this yours?", CreatedBy: "alice", PostID: 5, PostKind: models.PostKindLostFound}
	require.NoError(t, repo.Create(ctx, top))
	reply := &models.Comment{Content: "yes!", CreatedBy: "bob", PostID: 5, PostKind: models.PostKindLostFound, ParentID: &top.ID, IsToxic: false}
	require.NoError(t, repo.Create(ctx, reply))

	topLevel, err := repo.ListTopLevel(ctx, post)
	require.NoError(t, err)
	require.Len(t, topLevel, 1)
	assert.Equal(t, top.ID, topLevel[0].ID)

	replies, err := repo.ListReplies(ctx, top.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "yes!", replies[0].Content)

	edit := *reply
	edit.CreatedBy = "mallory"
	edit.Content = "no"
	updated, err := repo.UpdateContent(ctx, &edit)
	require.NoError(t, err)
	assert.False(t, updated)

	deleted, err := repo.Delete(ctx, top.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	orphan, err := repo.GetByID(ctx, reply.ID)
	require.NoError(t, err)
	require.NotNil(t, orphan)
	assert.Equal(t, top.ID, *orphan.ParentID)

	count, err := repo.CountByPost(ctx, post)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
