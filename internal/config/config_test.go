package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AI_API_KEY", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "campus_feed", cfg.Database.Name)
	assert.Equal(t, "gpt-3.5-turbo", cfg.AI.Model)
	assert.Equal(t, 10*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 500, cfg.AI.ClassifyMaxTokens)
	assert.Equal(t, 200, cfg.AI.ToxicityMaxTokens)
	assert.False(t, cfg.AI.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AI_API_KEY", "sk-test")
	t.Setenv("AI_TIMEOUT", "3s")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.AI.Enabled())
	assert.Equal(t, 3*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 7, cfg.Database.MaxOpenConns)
	assert.Equal(t, "localhost:6379", cfg.Cache.Addr)
}

func TestLoad_BadNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("AI_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 10*time.Second, cfg.AI.Timeout)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Host: "db", Name: "feed"},
		AI:       AIConfig{Timeout: time.Second},
	}
	assert.NoError(t, cfg.Validate())

	cfg.AI.Timeout = 0
	assert.Error(t, cfg.Validate())

	cfg.AI.Timeout = time.Second
	cfg.AI.APIKey = "key"
	cfg.AI.BaseURL = ""
	assert.Error(t, cfg.Validate())

	cfg.Database.Name = ""
	assert.EqualError(t, cfg.Validate(), "DB_NAME is required")
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: "1", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=n sslmode=disable", db.GetDSN())
}
