package service_test

import (
	"context"
	"testing"

	"github.com/campus-feed-api/internal/ai"
	"github.com/campus-feed-api/internal/mocks"
	"github.com/campus-feed-api/internal/models"
	"github.com/campus-feed-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAIService(classifier ai.Classifier) service.AIService {
	repos, _, _ := mocks.NewMockRepositories()
	return service.NewServices(repos, classifier, zerolog.Nop()).AI
}

func TestAIService_Classify(t *testing.T) {
	svc := newAIService(ai.Fallback{})

	result, err := svc.Classify(context.Background(), "Lost my blue backpack near the library")
	require.NoError(t, err)
	assert.Equal(t, models.ClassificationLost, result.Type)
	assert.InDelta(t, 0.7, result.Confidence, 1e-9)

	_, err = svc.Classify(context.Background(), " ")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestAIService_CheckToxicity(t *testing.T) {
	svc := newAIService(mocks.NewToxicClassifier(0.8, "Be kind"))

	result, err := svc.CheckToxicity(context.Background(), "rude words")
	require.NoError(t, err)
	assert.True(t, result.IsToxic)
	require.NotNil(t, result.Suggestion)
	assert.Equal(t, "Be kind", *result.Suggestion)

	_, err = svc.CheckToxicity(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestAIService_GenerateMeme(t *testing.T) {
	svc := newAIService(ai.Fallback{})

	tests := []struct {
		name    string
		prompt  string
		wantURL string
	}{
		{
			name:    "short prompt",
			prompt:  "finals week",
			wantURL: "https://via.placeholder.com/400x300/3B82F6/FFFFFF?text=finals+week",
		},
		{
			name:    "caption cut at twenty characters",
			prompt:  "when the wifi drops during the exam",
			wantURL: "https://via.placeholder.com/400x300/3B82F6/FFFFFF?text=when+the+wifi+drops+",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.GenerateMeme(context.Background(), tt.prompt)
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, result.ImageURL)
			assert.Equal(t, tt.prompt, result.Prompt)
			assert.Equal(t, "true", result.Success)
		})
	}

	_, err := svc.GenerateMeme(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
