package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/campus-feed-api/internal/models"
)

// ValidationError represents a single rejected input field.
// It unwraps to models.ErrInvalidInput.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return models.ErrInvalidInput
}

// ParsePostKind accepts any casing and hyphens, e.g. "lost-found"
func ParsePostKind(raw string) (models.PostKind, error) {
	kind := models.PostKind(models.NormalizeKind(raw))
	if !models.ValidPostKinds[kind] {
		return "", &ValidationError{
			Field:   "postType",
			Message: "must be one of: event, lost-found, announcement",
			Value:   raw,
		}
	}
	return kind, nil
}

// ParseID parses a positive numeric identifier
func ParseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, &ValidationError{Field: field, Message: "must be a positive integer", Value: raw}
	}
	return id, nil
}

// ParseOptionalID parses an ID that may be absent
func ParseOptionalID(field, raw string) (*int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := ParseID(field, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// RequireText rejects empty or whitespace-only values
func RequireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: field + " is required"}
	}
	return nil
}

// ValidateReactionTarget checks that a target id is present exactly when
// the target is a comment
func ValidateReactionTarget(target models.ReactionTarget) error {
	if !models.ValidPostKinds[target.PostKind] {
		return &ValidationError{Field: "postType", Message: "unknown post type", Value: string(target.PostKind)}
	}
	switch target.TargetKind {
	case models.TargetKindPost:
		if target.TargetID != nil {
			return &ValidationError{Field: "targetId", Message: "must be empty for post reactions", Value: *target.TargetID}
		}
	case models.TargetKindComment:
		if target.TargetID == nil {
			return &ValidationError{Field: "targetId", Message: "is required for comment reactions"}
		}
	default:
		return &ValidationError{Field: "targetType", Message: "unknown target type", Value: string(target.TargetKind)}
	}
	if target.PostID <= 0 {
		return &ValidationError{Field: "postId", Message: "must be a positive integer", Value: target.PostID}
	}
	return nil
}
