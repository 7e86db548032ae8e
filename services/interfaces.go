// services/interfaces.go
package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/invopop/jsonschema"

	"github.com/brandlens-ai/brandlens-workflows/internal/models"
	"github.com/brandlens-ai/brandlens-workflows/internal/sov"
)

// AIProvider interface for different AI answer engines
type AIProvider interface {
	GetProviderName() string
	RunPrompt(ctx context.Context, query string, websearch bool, location *models.Location) (*AIResponse, error)

	// Batch processing support
	SupportsBatching() bool
	GetMaxBatchSize() int
	RunPromptBatch(ctx context.Context, queries []string, websearch bool, location *models.Location) ([]*AIResponse, error)
}

// AIResponse contains the response from an AI provider
type AIResponse struct {
	Response     string
	InputTokens  int
	OutputTokens int
	Cost         float64
	Citations    []string
}

// EmbeddingProvider generates vector embeddings for answer indexing.
type EmbeddingProvider interface {
	CreateEmbedding(ctx context.Context, inputs []string, model string) ([][]float32, error)
}

type CostService interface {
	CalculateCost(provider, model string, inputTokens, outputTokens int, webSearch bool) float64
}

// CategoryService classifies a brand into a topic category used for
// prompt generation and topic-relevance scoring.
type CategoryService interface {
	ClassifyBrand(ctx context.Context, brandName, domain, description string) (*CategoryResult, error)
}

type CategoryResult struct {
	Category     string  `json:"category"`
	Confidence   float64 `json:"confidence"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	Cost         float64 `json:"cost"`
}

// PromptService produces the prompt set asked on a brand's behalf.
type PromptService interface {
	GeneratePrompts(ctx context.Context, brand *models.Brand, count int) ([]*models.Prompt, error)
}

// AnswerRunnerService executes the prompt×model×location matrix for a brand
// and persists the resulting answer runs.
type AnswerRunnerService interface {
	RunPromptMatrix(ctx context.Context, brand *models.Brand, prompts []*models.Prompt) ([]*models.AnswerRun, error)
	ProcessSinglePrompt(ctx context.Context, prompt *models.Prompt, model models.ModelConfig, location models.Location) (*models.AnswerRun, error)
}

// SOVService runs the share-of-voice calculation over collected answers and
// persists the result.
type SOVService interface {
	CalculateForBrand(ctx context.Context, brandID uuid.UUID, window time.Duration) (*models.ShareOfVoiceRecord, error)
	CalculateFromAnswers(brand *models.Brand, answers []sov.RawAnswer) *sov.Result
	LatestForBrand(ctx context.Context, brandID uuid.UUID) (*models.ShareOfVoiceRecord, error)
}

// MentionAuditService cross-checks the heuristic mention pipeline with an AI
// structured-output extraction over the same answer text.
type MentionAuditService interface {
	AuditAnswer(ctx context.Context, brand *models.Brand, answerText string) (*MentionAuditResult, error)
}

type MentionAuditResult struct {
	TargetMentioned bool             `json:"target_mentioned"`
	Mentions        []AuditedMention `json:"mentions"`
	HeuristicAgrees bool             `json:"heuristic_agrees"`
	InputTokens     int              `json:"input_tokens"`
	OutputTokens    int              `json:"output_tokens"`
	Cost            float64          `json:"cost"`
}

// IndexService embeds and indexes collected answers for retrieval.
type IndexService interface {
	IndexAnswers(ctx context.Context, brand *models.Brand, runs []*models.AnswerRun) (int, error)
}

// AnalyticsService derives trend metrics from stored share-of-voice history.
type AnalyticsService interface {
	CalculateAnalytics(ctx context.Context, brandID uuid.UUID, limit int) (*models.Analytics, error)
}

// Structured output types for AI extraction

type CategoryClassification struct {
	Category   string  `json:"category" jsonschema:"enum=crm,enum=ecommerce,enum=marketing,enum=fintech,enum=cloud,enum=analytics,enum=hr,enum=support,enum=other" jsonschema_description:"The product category the brand belongs to"`
	Confidence float64 `json:"confidence" jsonschema_description:"Confidence in the classification, 0 to 1"`
}

type PromptGenerationResponse struct {
	Prompts []GeneratedPrompt `json:"prompts"`
}

type GeneratedPrompt struct {
	Text string `json:"text" jsonschema_description:"A natural question a buyer would ask an AI assistant"`
	Type string `json:"type" jsonschema:"enum=discovery,enum=comparison,enum=recommendation" jsonschema_description:"The intent class of the question"`
}

type MentionExtractionResponse struct {
	TargetMentioned bool             `json:"target_mentioned"`
	Mentions        []AuditedMention `json:"mentions"`
}

type AuditedMention struct {
	Name          string `json:"name"`
	Rank          int    `json:"rank" jsonschema_description:"Order of appearance, 1 = first mentioned"`
	MentionedText string `json:"mentioned_text" jsonschema_description:"The text span mentioning this brand"`
	TextSentiment string `json:"text_sentiment" jsonschema:"enum=positive,enum=negative,enum=neutral"`
}

// GenerateSchema generates a JSON schema for structured outputs
func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	var zero T
	schema := reflector.Reflect(zero)

	// Convert to the format expected by OpenAI
	result := map[string]interface{}{
		"type":       "object",
		"properties": schema.Properties,
		"required":   schema.Required,
	}

	if schema.AdditionalProperties != nil {
		result["additionalProperties"] = false
	}

	return result
}
