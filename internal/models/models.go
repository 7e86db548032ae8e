// internal/models/models.go
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/brandlens-ai/brandlens-workflows/internal/sov"
)

// Location represents a geographic location for running prompts
type Location struct {
	Country string  `json:"country"`          // Required
	City    *string `json:"city,omitempty"`   // Optional
	Region  *string `json:"region,omitempty"` // Optional (state/region)
}

// ModelConfig represents an AI model configuration
type ModelConfig struct {
	Name      string `json:"name"`       // e.g., "gpt-4.1", "claude-sonnet-4-20250514"
	WebSearch bool   `json:"web_search"` // Whether to enable web search
}

// Brand is a monitored brand with its competitor set and category.
type Brand struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Domain      string    `json:"domain" db:"domain"`
	Category    string    `json:"category" db:"category"`
	Competitors []string  `json:"competitors" db:"-"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Prompt is a single question sent to AI providers on a brand's behalf.
type Prompt struct {
	ID       string                 `json:"id"`
	Text     string                 `json:"text"`
	Type     string                 `json:"type"` // discovery, comparison, recommendation
	Category string                 `json:"category"`
	Options  map[string]interface{} `json:"options,omitempty"`
}

// AnswerRun represents a single execution of a prompt with a specific model
// and location.
type AnswerRun struct {
	PromptID     string    `json:"prompt_id"`
	Model        string    `json:"model"`
	Location     Location  `json:"location"`
	WebSearch    bool      `json:"web_search"`
	Response     string    `json:"response"`
	Cost         float64   `json:"cost"`
	InputTokens  int       `json:"input_tokens"`
	OutputTokens int       `json:"output_tokens"`
	Error        string    `json:"error,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// PromptResult collects all runs of one prompt across models/locations.
type PromptResult struct {
	PromptID string                 `json:"prompt_id"`
	Response string                 `json:"response"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Runs     []*AnswerRun           `json:"runs"`
}

// ShareOfVoiceRecord is the persisted form of one share-of-voice calculation
// for a brand at a point in time.
type ShareOfVoiceRecord struct {
	ID           uuid.UUID          `json:"id" db:"id"`
	BrandID      uuid.UUID          `json:"brand_id" db:"brand_id"`
	BrandName    string             `json:"brand_name" db:"brand_name"`
	Topic        string             `json:"topic" db:"topic"`
	Shares       map[string]float64 `json:"shares" db:"-"`
	BrandShare   float64            `json:"brand_share" db:"brand_share"`
	Visibility   float64            `json:"ai_visibility_score" db:"ai_visibility_score"`
	Status       string             `json:"status" db:"status"`
	AnswerCount  int                `json:"answer_count" db:"answer_count"`
	CalculatedAt time.Time          `json:"calculated_at" db:"calculated_at"`
}

// NewShareOfVoiceRecord flattens a calculation result into its persisted form.
func NewShareOfVoiceRecord(brandID uuid.UUID, topic string, answerCount int, result *sov.Result) *ShareOfVoiceRecord {
	return &ShareOfVoiceRecord{
		ID:           uuid.New(),
		BrandID:      brandID,
		BrandName:    result.Brand,
		Topic:        topic,
		Shares:       result.Shares,
		BrandShare:   result.BrandShare,
		Visibility:   result.AIVisibilityScore,
		Status:       string(result.Status),
		AnswerCount:  answerCount,
		CalculatedAt: result.CalculatedAt,
	}
}

type Analytics struct {
	Metrics   map[string]float64 `json:"metrics"`
	Insights  []string           `json:"insights"`
	Timestamp time.Time          `json:"timestamp"`
}

type BrandSummary struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	CreatedAt   time.Time  `json:"created_at"`
	IsActive    bool       `json:"is_active"`
	LastRunDate *time.Time `json:"last_run_date,omitempty"`
}
