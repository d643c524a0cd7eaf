package ai

import (
	"context"
	"strings"

	"github.com/campus-feed-api/internal/models"
)

const (
	fallbackConfidence = 0.7
	fallbackTitleLen   = 50
)

// keyword groups are checked in order; the first hit wins
var fallbackRules = []struct {
	kind     models.ClassificationKind
	keywords []string
}{
	{models.ClassificationLost, []string{"lost", "missing"}},
	{models.ClassificationFound, []string{"found", "discovered"}},
	{models.ClassificationEvent, []string{"event", "workshop", "seminar", "meeting"}},
}

// Fallback is the deterministic, network-free Classifier
type Fallback struct{}

var _ Classifier = Fallback{}

// Classify implements Classifier
func (Fallback) Classify(_ context.Context, prompt string) models.ClassificationResult {
	return FallbackClassification(prompt)
}

// CheckToxicity implements Classifier
func (Fallback) CheckToxicity(_ context.Context, _ string) models.ToxicityResult {
	return FallbackToxicity()
}

// FallbackClassification picks a category by keyword search over the
// lowercased prompt and uses the prompt itself as title and description.
func FallbackClassification(prompt string) models.ClassificationResult {
	lower := strings.ToLower(prompt)

	kind := models.ClassificationAnnouncement
	for _, rule := range fallbackRules {
		if containsAny(lower, rule.keywords) {
			kind = rule.kind
			break
		}
	}

	return models.ClassificationResult{
		Type:        kind,
		Confidence:  fallbackConfidence,
		Title:       truncate(prompt, fallbackTitleLen),
		Description: prompt,
	}
}

// FallbackToxicity is the fail-open moderation verdict
func FallbackToxicity() models.ToxicityResult {
	return models.ToxicityResult{IsToxic: false, ToxicityScore: 0}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// truncate cuts s to at most n characters without splitting a rune
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
