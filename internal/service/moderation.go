package service

import (
	"context"

	"github.com/campus-feed-api/internal/ai"
	"github.com/campus-feed-api/internal/models"
)

// moderate screens the comment's current content and annotates it.
// There is no rejection path: toxic content is stored with its flag.
func moderate(ctx context.Context, classifier ai.Classifier, comment *models.Comment) models.ToxicityResult {
	result := classifier.CheckToxicity(ctx, comment.Content)
	applyModeration(comment, result)
	return result
}

// applyModeration copies a verdict onto a comment. A suggestion, when the
// classifier offers one, is relayed to the author and is not part of the
// stored row.
func applyModeration(comment *models.Comment, result models.ToxicityResult) {
	comment.IsToxic = result.IsToxic
	comment.ToxicityScore = result.ToxicityScore
	comment.Suggestion = ""
	if result.Suggestion != nil {
		comment.Suggestion = *result.Suggestion
	}
}
