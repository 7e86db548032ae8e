// services/mention_audit_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/brandlens-ai/brandlens-workflows/internal/config"
	"github.com/brandlens-ai/brandlens-workflows/internal/models"
	"github.com/brandlens-ai/brandlens-workflows/internal/sov"
)

type mentionAuditService struct {
	cfg          *config.Config
	openAIClient *openai.Client
	costService  CostService
	extractor    *sov.Extractor
}

// NewMentionAuditService builds the audit service. It runs an AI
// structured-output extraction over answer text and compares the result with
// the regex pipeline's verdict on target presence.
func NewMentionAuditService(cfg *config.Config, costService CostService) MentionAuditService {
	fmt.Printf("[NewMentionAuditService] Creating service with OpenAI key (length: %d)\n", len(cfg.OpenAIAPIKey))

	client := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))

	return &mentionAuditService{
		cfg:          cfg,
		openAIClient: &client,
		costService:  costService,
		extractor:    sov.NewExtractor(sov.NewRecognizer(cfg.SOV.Recognizer)),
	}
}

// AuditAnswer extracts brand mentions from one answer with the AI extractor
// and reports whether the heuristic pipeline agrees about the target brand.
func (s *mentionAuditService) AuditAnswer(ctx context.Context, brand *models.Brand, answerText string) (*MentionAuditResult, error) {
	fmt.Printf("[AuditAnswer] Auditing mentions for brand %s\n", brand.Name)

	prompt := s.buildAuditPrompt(brand, answerText)

	model := openai.ChatModelGPT4_1

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "mention_extraction",
		Description: openai.String("Extract brand mentions from AI-generated answer text"),
		Schema:      GenerateSchema[MentionExtractionResponse](),
		Strict:      openai.Bool(true),
	}

	chatResponse, err := s.openAIClient.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a market analyst. Extract brand and vendor mentions accurately and comprehensively."),
			openai.UserMessage(prompt),
		},
		Model: model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Temperature: openai.Float(0), // Deterministic extraction
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract mentions: %w", err)
	}

	if len(chatResponse.Choices) == 0 {
		return nil, fmt.Errorf("no response choices returned from OpenAI")
	}

	var extracted MentionExtractionResponse
	if err := json.Unmarshal([]byte(chatResponse.Choices[0].Message.Content), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse mention extraction response: %w", err)
	}

	for i := range extracted.Mentions {
		extracted.Mentions[i].TextSentiment = normalizeSentimentLabel(extracted.Mentions[i].TextSentiment)
	}

	inputTokens := int(chatResponse.Usage.PromptTokens)
	outputTokens := int(chatResponse.Usage.CompletionTokens)

	result := &MentionAuditResult{
		TargetMentioned: extracted.TargetMentioned,
		Mentions:        extracted.Mentions,
		HeuristicAgrees: s.heuristicFindsTarget(brand, answerText) == extracted.TargetMentioned,
		InputTokens:     inputTokens,
		OutputTokens:    outputTokens,
		Cost:            s.costService.CalculateCost("openai", string(model), inputTokens, outputTokens, false),
	}

	fmt.Printf("[AuditAnswer] Extracted %d mentions for brand %s (heuristic agrees: %v)\n",
		len(result.Mentions), brand.Name, result.HeuristicAgrees)
	return result, nil
}

// heuristicFindsTarget reports whether the heuristic pipeline resolves any
// extracted entity to the target brand.
func (s *mentionAuditService) heuristicFindsTarget(brand *models.Brand, answerText string) bool {
	knownBrands := append([]string{brand.Name}, brand.Competitors...)

	// The registry is configuration-phase only, and the domain variants
	// depend on the brand under audit, so each audit builds its own.
	registry := sov.NewAliasRegistry()
	if brand.Domain != "" {
		registry.AddDomainVariants(brand.Domain, brand.Name)
	}
	matcher := sov.NewMatcher(registry)

	for _, candidate := range s.extractor.Extract(answerText, knownBrands) {
		match := matcher.Resolve(candidate, knownBrands)
		if match != nil && match.Brand == brand.Name {
			return true
		}
	}
	return false
}

func (s *mentionAuditService) buildAuditPrompt(brand *models.Brand, answerText string) string {
	return fmt.Sprintf(`Extract every brand or vendor mentioned in the following AI-generated answer.

The target brand is %q. Its known competitors are: %s.
Set target_mentioned to true only if the target brand itself appears.
For each mention record its name, order of appearance, the text span mentioning it, and the sentiment of that span.

Answer text:
%s`, brand.Name, strings.Join(brand.Competitors, ", "), answerText)
}

func normalizeSentimentLabel(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "positive":
		return "positive"
	case "negative":
		return "negative"
	default:
		return "neutral"
	}
}
