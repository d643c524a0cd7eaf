package models

import "strings"

// PostKind is the category of feed content a comment or reaction is attached to
type PostKind string

const (
	PostKindEvent        PostKind = "EVENT"
	PostKindLostFound    PostKind = "LOST_FOUND"
	PostKindAnnouncement PostKind = "ANNOUNCEMENT"
)

// ValidPostKinds defines allowed post kinds
var ValidPostKinds = map[PostKind]bool{
	PostKindEvent:        true,
	PostKindLostFound:    true,
	PostKindAnnouncement: true,
}

// TargetKind tells whether a reaction hangs off a post or one of its comments
type TargetKind string

const (
	TargetKindPost    TargetKind = "POST"
	TargetKindComment TargetKind = "COMMENT"
)

// NormalizeKind upper-cases a path value and maps hyphens to underscores,
// so "lost-found" and "LOST_FOUND" name the same kind.
func NormalizeKind(raw string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), "-", "_"))
}

// PostRef identifies the post a comment or reaction belongs to
type PostRef struct {
	PostID   int64    `json:"postId"`
	PostKind PostKind `json:"postType"`
}
