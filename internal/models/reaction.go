package models

import (
	"time"
)

// Reaction is one actor's emoji response to a post or a comment.
// At most one exists per (post, actor, target) key.
type Reaction struct {
	ID         int64      `json:"id" db:"id"`
	Symbol     string     `json:"reactionType" db:"symbol"`
	CreatedBy  string     `json:"createdBy" db:"created_by"`
	PostID     int64      `json:"postId" db:"post_id"`
	PostKind   PostKind   `json:"postType" db:"post_kind"`
	TargetKind TargetKind `json:"targetType" db:"target_kind"`
	TargetID   *int64     `json:"targetId" db:"target_id"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
}

// ReactionKey addresses the unique reaction slot of one actor on one target
type ReactionKey struct {
	PostID     int64
	PostKind   PostKind
	CreatedBy  string
	TargetKind TargetKind
	TargetID   *int64
}

// ReactionTarget addresses a post or a comment without an actor
type ReactionTarget struct {
	PostID     int64
	PostKind   PostKind
	TargetKind TargetKind
	TargetID   *int64
}

// Key returns the unique slot for actor on this target
func (t ReactionTarget) Key(actor string) ReactionKey {
	return ReactionKey{
		PostID:     t.PostID,
		PostKind:   t.PostKind,
		CreatedBy:  actor,
		TargetKind: t.TargetKind,
		TargetID:   t.TargetID,
	}
}

// ReactionAction is the outcome of a toggle
type ReactionAction string

const (
	ReactionAdded   ReactionAction = "added"
	ReactionUpdated ReactionAction = "updated"
	ReactionRemoved ReactionAction = "removed"
)

// ReactionResult is returned from a toggle
type ReactionResult struct {
	Action       ReactionAction `json:"action"`
	ReactionType string         `json:"reactionType"`
}

// ReactionSummary is the read model for a target
type ReactionSummary struct {
	Reactions    map[string]int `json:"reactions"`
	UserReaction *string        `json:"userReaction"`
}
