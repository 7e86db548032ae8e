// services/category_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/brandlens-ai/brandlens-workflows/internal/config"
	"github.com/brandlens-ai/brandlens-workflows/internal/sov"
)

type categoryService struct {
	cfg          *config.Config
	openAIClient *openai.Client
	costService  CostService
}

func NewCategoryService(cfg *config.Config, costService CostService) CategoryService {
	client := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))

	return &categoryService{
		cfg:          cfg,
		openAIClient: &client,
		costService:  costService,
	}
}

// ClassifyBrand assigns a brand to a topic category via structured output
// extraction. When the AI call fails the keyword heuristic takes over, so
// callers always get a usable category.
func (s *categoryService) ClassifyBrand(ctx context.Context, brandName, domain, description string) (*CategoryResult, error) {
	fmt.Printf("[ClassifyBrand] Classifying brand %s\n", brandName)

	prompt := fmt.Sprintf(`Classify the following software brand into exactly one product category.

Brand: %s
Domain: %s
Description: %s`, brandName, domain, description)

	model := openai.ChatModelGPT4_1Mini

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "category_classification",
		Description: openai.String("Classify a software brand into a product category"),
		Schema:      GenerateSchema[CategoryClassification](),
		Strict:      openai.Bool(true),
	}

	chatResponse, err := s.openAIClient.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a market analyst who classifies software vendors into product categories."),
			openai.UserMessage(prompt),
		},
		Model: model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Temperature: openai.Float(0), // Deterministic classification
	})
	if err != nil {
		fmt.Printf("[ClassifyBrand] AI classification failed, using keyword heuristic: %v\n", err)
		return s.classifyByKeywords(brandName, description), nil
	}

	if len(chatResponse.Choices) == 0 {
		return s.classifyByKeywords(brandName, description), nil
	}

	var classification CategoryClassification
	if err := json.Unmarshal([]byte(chatResponse.Choices[0].Message.Content), &classification); err != nil {
		return nil, fmt.Errorf("failed to parse category classification: %w", err)
	}

	inputTokens := int(chatResponse.Usage.PromptTokens)
	outputTokens := int(chatResponse.Usage.CompletionTokens)

	result := &CategoryResult{
		Category:     classification.Category,
		Confidence:   classification.Confidence,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		Cost:         s.costService.CalculateCost("openai", string(model), inputTokens, outputTokens, false),
	}

	fmt.Printf("[ClassifyBrand] Brand %s classified as %s (confidence %.2f)\n", brandName, result.Category, result.Confidence)
	return result, nil
}

// classifyByKeywords picks the category whose keyword list overlaps the
// description most.
func (s *categoryService) classifyByKeywords(brandName, description string) *CategoryResult {
	text := strings.ToLower(brandName + " " + description)

	bestCategory := "other"
	bestMatches := 0
	for _, category := range []string{"crm", "ecommerce", "marketing", "fintech", "cloud", "analytics", "hr", "support"} {
		matches := 0
		for _, keyword := range sov.TopicKeywords(category) {
			if strings.Contains(text, keyword) {
				matches++
			}
		}
		if matches > bestMatches {
			bestMatches = matches
			bestCategory = category
		}
	}

	confidence := 0.3
	if bestMatches >= 3 {
		confidence = 0.6
	}

	return &CategoryResult{
		Category:   bestCategory,
		Confidence: confidence,
	}
}
