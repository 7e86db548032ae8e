// services/prompt_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/brandlens-ai/brandlens-workflows/internal/config"
	"github.com/brandlens-ai/brandlens-workflows/internal/models"
)

type promptService struct {
	cfg          *config.Config
	openAIClient *openai.Client
	costService  CostService
}

func NewPromptService(cfg *config.Config, costService CostService) PromptService {
	client := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))

	return &promptService{
		cfg:          cfg,
		openAIClient: &client,
		costService:  costService,
	}
}

// promptTemplates are the fixed starting set for every brand. AI generation
// adds on top of these; they never depend on an API call succeeding.
var promptTemplates = []struct {
	text string
	typ  string
}{
	{"What are the best %s tools?", "discovery"},
	{"Which %s platform should a small business choose?", "recommendation"},
	{"Compare the leading %s solutions.", "comparison"},
	{"What %s software do experts recommend?", "recommendation"},
}

// GeneratePrompts builds the prompt set for a brand: category templates
// first, then AI-generated prompts up to count.
func (s *promptService) GeneratePrompts(ctx context.Context, brand *models.Brand, count int) ([]*models.Prompt, error) {
	fmt.Printf("[GeneratePrompts] Generating prompts for brand %s (category: %s)\n", brand.Name, brand.Category)

	category := brand.Category
	if category == "" || category == "other" {
		category = "software"
	}

	var prompts []*models.Prompt
	for _, template := range promptTemplates {
		prompts = append(prompts, &models.Prompt{
			ID:       uuid.New().String(),
			Text:     fmt.Sprintf(template.text, category),
			Type:     template.typ,
			Category: brand.Category,
		})
	}

	if count <= len(prompts) {
		return prompts[:count], nil
	}

	generated, err := s.generateWithAI(ctx, brand, category, count-len(prompts))
	if err != nil {
		fmt.Printf("[GeneratePrompts] AI generation failed, returning template prompts only: %v\n", err)
		return prompts, nil
	}

	return append(prompts, generated...), nil
}

func (s *promptService) generateWithAI(ctx context.Context, brand *models.Brand, category string, count int) ([]*models.Prompt, error) {
	prompt := fmt.Sprintf(`Generate %d distinct questions a buyer might ask an AI assistant when researching %s products.

The questions must be neutral: never name %s or any specific vendor. Mix discovery, comparison and recommendation intents.`,
		count, category, brand.Name)

	model := openai.ChatModelGPT4_1Mini

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "prompt_generation",
		Description: openai.String("Generate buyer research questions for a product category"),
		Schema:      GenerateSchema[PromptGenerationResponse](),
		Strict:      openai.Bool(true),
	}

	chatResponse, err := s.openAIClient.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You write natural questions that software buyers ask AI assistants."),
			openai.UserMessage(prompt),
		},
		Model: model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Temperature: openai.Float(0.8),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate prompts: %w", err)
	}

	if len(chatResponse.Choices) == 0 {
		return nil, fmt.Errorf("no response choices returned from OpenAI")
	}

	var response PromptGenerationResponse
	if err := json.Unmarshal([]byte(chatResponse.Choices[0].Message.Content), &response); err != nil {
		return nil, fmt.Errorf("failed to parse prompt generation response: %w", err)
	}

	var prompts []*models.Prompt
	for _, generated := range response.Prompts {
		text := strings.TrimSpace(generated.Text)
		if text == "" {
			continue
		}
		// Generated prompts must stay vendor-neutral.
		if strings.Contains(strings.ToLower(text), strings.ToLower(brand.Name)) {
			continue
		}
		prompts = append(prompts, &models.Prompt{
			ID:       uuid.New().String(),
			Text:     text,
			Type:     generated.Type,
			Category: brand.Category,
		})
		if len(prompts) >= count {
			break
		}
	}

	fmt.Printf("[generateWithAI] Generated %d prompts for category %s\n", len(prompts), category)
	return prompts, nil
}
