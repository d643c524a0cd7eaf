package service

import (
	"context"
	"net/url"

	"github.com/campus-feed-api/internal/ai"
	"github.com/campus-feed-api/internal/models"
	"github.com/campus-feed-api/internal/validation"
	"github.com/rs/zerolog"
)

const (
	memePlaceholderBase = "https://via.placeholder.com/400x300/3B82F6/FFFFFF?text="
	memeTextLen         = 20
)

// aiService is the concrete implementation of AIService
type aiService struct {
	classifier ai.Classifier
	log        zerolog.Logger
}

func newAIService(classifier ai.Classifier, log zerolog.Logger) *aiService {
	return &aiService{
		classifier: classifier,
		log:        log.With().Str("service", "ai").Logger(),
	}
}

// Classify suggests a feed category for the prompt. Only empty input fails.
func (s *aiService) Classify(ctx context.Context, prompt string) (*models.ClassificationResult, error) {
	if err := validation.RequireText("prompt", prompt); err != nil {
		return nil, err
	}
	result := s.classifier.Classify(ctx, prompt)
	s.log.Debug().Str("type", string(result.Type)).Float64("confidence", result.Confidence).Msg("Post classified")
	return &result, nil
}

// CheckToxicity screens content without storing anything
func (s *aiService) CheckToxicity(ctx context.Context, content string) (*models.ToxicityResult, error) {
	if err := validation.RequireText("content", content); err != nil {
		return nil, err
	}
	result := s.classifier.CheckToxicity(ctx, content)
	return &result, nil
}

// GenerateMeme returns a placeholder image URL captioned with the start of
// the prompt
func (s *aiService) GenerateMeme(_ context.Context, prompt string) (*models.MemeResult, error) {
	if err := validation.RequireText("prompt", prompt); err != nil {
		return nil, err
	}

	caption := []rune(prompt)
	if len(caption) > memeTextLen {
		caption = caption[:memeTextLen]
	}

	return &models.MemeResult{
		ImageURL: memePlaceholderBase + url.QueryEscape(string(caption)),
		Prompt:   prompt,
		Success:  "true",
	}, nil
}
