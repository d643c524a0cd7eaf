// Package ai turns free text into structured signals: a feed category for
// new posts and a toxicity verdict for comments.
//
// Two Classifier implementations exist. Fallback is pure keyword logic with
// no I/O. Client calls a chat-completions endpoint and degrades to Fallback
// on any failure, so neither implementation ever returns an error.
package ai

import (
	"context"

	"github.com/campus-feed-api/internal/models"
)

// Classifier classifies posts and screens comment content
type Classifier interface {
	Classify(ctx context.Context, prompt string) models.ClassificationResult
	CheckToxicity(ctx context.Context, content string) models.ToxicityResult
}

// ResultCache stores successful inference results keyed by a content digest.
// Implementations report a miss as (false, nil).
type ResultCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}
