package ai

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/campus-feed-api/internal/config"
	"github.com/campus-feed-api/internal/models"
	"github.com/rs/zerolog"
)

const maxResponseBytes = 1 << 20

var (
	errNoChoices      = errors.New("response has no choices")
	errMissingFields  = errors.New("model output is missing required fields")
	errUnknownKind    = errors.New("model output has an unknown post type")
	errEmptyModelText = errors.New("model output is empty")
)

// Client is the live Classifier backed by a chat-completions endpoint.
// Every failure is logged and answered with the Fallback result.
type Client struct {
	httpClient *http.Client
	cfg        config.AIConfig
	cache      ResultCache
	fallback   Fallback
	log        zerolog.Logger
}

var _ Classifier = (*Client)(nil)

// NewClient creates a live client. cache may be nil.
func NewClient(cfg config.AIConfig, cache ResultCache, log zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		cache:      cache,
		log:        log.With().Str("component", "ai_client").Str("model", cfg.Model).Logger(),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type classificationPayload struct {
	Type          string   `json:"type"`
	Confidence    *float64 `json:"confidence"`
	ExtractedData struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Location    string `json:"location"`
		EventDate   string `json:"eventDate"`
		ItemName    string `json:"itemName"`
		Department  string `json:"department"`
	} `json:"extractedData"`
}

type toxicityPayload struct {
	IsToxic       *bool    `json:"isToxic"`
	ToxicityScore *float64 `json:"toxicityScore"`
	Suggestion    *string  `json:"suggestion"`
}

// Classify implements Classifier
func (c *Client) Classify(ctx context.Context, prompt string) models.ClassificationResult {
	key := cacheKey("classify", prompt)

	var cached models.ClassificationResult
	if c.cacheGet(ctx, key, &cached) {
		return cached
	}

	result, err := c.classify(ctx, prompt)
	if err != nil {
		c.log.Warn().Err(err).Str("task", "classify").Msg("Inference failed, using rule-based classification")
		return c.fallback.Classify(ctx, prompt)
	}

	c.cacheSet(ctx, key, result)
	return result
}

// CheckToxicity implements Classifier
func (c *Client) CheckToxicity(ctx context.Context, content string) models.ToxicityResult {
	key := cacheKey("toxicity", content)

	var cached models.ToxicityResult
	if c.cacheGet(ctx, key, &cached) {
		return cached
	}

	result, err := c.checkToxicity(ctx, content)
	if err != nil {
		c.log.Warn().Err(err).Str("task", "toxicity").Msg("Inference failed, treating content as non-toxic")
		return c.fallback.CheckToxicity(ctx, content)
	}

	c.cacheSet(ctx, key, result)
	return result
}

func (c *Client) classify(ctx context.Context, prompt string) (models.ClassificationResult, error) {
	text, err := c.complete(ctx, classifySystemPrompt, prompt, c.cfg.ClassifyMaxTokens, classifyTemperature)
	if err != nil {
		return models.ClassificationResult{}, err
	}
	return parseClassification(text)
}

func (c *Client) checkToxicity(ctx context.Context, content string) (models.ToxicityResult, error) {
	text, err := c.complete(ctx, toxicitySystemPrompt, content, c.cfg.ToxicityMaxTokens, toxicityTemperature)
	if err != nil {
		return models.ToxicityResult{}, err
	}
	return parseToxicity(text)
}

// complete sends one chat-completions request and returns the first
// choice's message content
func (c *Client) complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return "", fmt.Errorf("inference endpoint returned status %d", resp.StatusCode)
	}

	var envelope chatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&envelope); err != nil {
		return "", fmt.Errorf("failed to decode response envelope: %w", err)
	}
	if len(envelope.Choices) == 0 {
		return "", errNoChoices
	}

	text := cleanJSON(envelope.Choices[0].Message.Content)
	if text == "" {
		return "", errEmptyModelText
	}
	return text, nil
}

func parseClassification(text string) (models.ClassificationResult, error) {
	var payload classificationPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return models.ClassificationResult{}, fmt.Errorf("failed to decode classification: %w", err)
	}
	if payload.Type == "" {
		return models.ClassificationResult{}, errMissingFields
	}

	kind := models.ClassificationKind(strings.ToUpper(strings.TrimSpace(payload.Type)))
	if !models.ValidClassificationKinds[kind] {
		return models.ClassificationResult{}, fmt.Errorf("%w: %q", errUnknownKind, payload.Type)
	}

	confidence := 0.8
	if payload.Confidence != nil {
		confidence = clampScore(*payload.Confidence)
	}

	data := payload.ExtractedData
	return models.ClassificationResult{
		Type:        kind,
		Confidence:  confidence,
		Title:       data.Title,
		Description: data.Description,
		Location:    data.Location,
		EventDate:   data.EventDate,
		ItemName:    data.ItemName,
		Department:  data.Department,
	}, nil
}

func parseToxicity(text string) (models.ToxicityResult, error) {
	var payload toxicityPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return models.ToxicityResult{}, fmt.Errorf("failed to decode toxicity: %w", err)
	}
	if payload.IsToxic == nil && payload.ToxicityScore == nil {
		return models.ToxicityResult{}, errMissingFields
	}

	var result models.ToxicityResult
	if payload.IsToxic != nil {
		result.IsToxic = *payload.IsToxic
	}
	if payload.ToxicityScore != nil {
		result.ToxicityScore = clampScore(*payload.ToxicityScore)
	}
	if payload.Suggestion != nil && strings.TrimSpace(*payload.Suggestion) != "" {
		s := *payload.Suggestion
		result.Suggestion = &s
	}
	return result, nil
}

func (c *Client) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if c.cache == nil {
		return false
	}
	hit, err := c.cache.Get(ctx, key, dest)
	if err != nil {
		c.log.Warn().Err(err).Msg("Result cache read failed")
		return false
	}
	return hit
}

func (c *Client) cacheSet(ctx context.Context, key string, value interface{}) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, value); err != nil {
		c.log.Warn().Err(err).Msg("Result cache write failed")
	}
}

func cacheKey(task, text string) string {
	sum := sha256.Sum256([]byte(text))
	return task + ":" + hex.EncodeToString(sum[:])
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// cleanJSON strips Markdown code fences models like to wrap JSON in
func cleanJSON(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
