package models

// ClassificationKind is the feed category suggested for free text
type ClassificationKind string

const (
	ClassificationEvent        ClassificationKind = "EVENT"
	ClassificationLost         ClassificationKind = "LOST"
	ClassificationFound        ClassificationKind = "FOUND"
	ClassificationAnnouncement ClassificationKind = "ANNOUNCEMENT"
)

// ValidClassificationKinds defines the categories a classifier may return
var ValidClassificationKinds = map[ClassificationKind]bool{
	ClassificationEvent:        true,
	ClassificationLost:         true,
	ClassificationFound:        true,
	ClassificationAnnouncement: true,
}

// ClassificationResult pre-fills a post the caller submits elsewhere
type ClassificationResult struct {
	Type        ClassificationKind `json:"type"`
	Confidence  float64            `json:"confidence"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Location    string             `json:"location"`
	EventDate   string             `json:"eventDate"`
	ItemName    string             `json:"itemName"`
	Department  string             `json:"department"`
}

// ToxicityResult is the outcome of a moderation pass
type ToxicityResult struct {
	IsToxic       bool    `json:"isToxic"`
	ToxicityScore float64 `json:"toxicityScore"`
	Suggestion    *string `json:"suggestion"`
}

// PromptRequest is the JSON body for classification and meme requests
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// ContentRequest is the JSON body for toxicity checks
type ContentRequest struct {
	Content string `json:"content"`
}

// MemeResult is the placeholder image answer for a meme prompt
type MemeResult struct {
	ImageURL string `json:"imageUrl"`
	Prompt   string `json:"prompt"`
	Success  string `json:"success"`
}
