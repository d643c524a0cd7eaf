package models

import (
	"time"
)

// Comment is a top-level comment or a reply on a feed post.
// A nil ParentID marks a top-level comment.
type Comment struct {
	ID            int64     `json:"id" db:"id"`
	Content       string    `json:"content" db:"content"`
	CreatedBy     string    `json:"createdBy" db:"created_by"`
	PostID        int64     `json:"postId" db:"post_id"`
	PostKind      PostKind  `json:"postType" db:"post_kind"`
	ParentID      *int64    `json:"parentId" db:"parent_id"`
	IsToxic       bool      `json:"isToxic" db:"is_toxic"`
	ToxicityScore float64   `json:"toxicityScore" db:"toxicity_score"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	// Suggestion is the moderator's rewrite hint for the author. Never stored.
	Suggestion string `json:"suggestion,omitempty" db:"-"`
}

// IsReply reports whether the comment has a parent
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// Thread is a top-level comment with its flat, chronological reply list
type Thread struct {
	Comment
	Replies []*Comment `json:"replies"`
}

// CommentRequest is the JSON body for comment writes
type CommentRequest struct {
	Content  string `json:"content"`
	ParentID string `json:"parentId,omitempty"`
}
