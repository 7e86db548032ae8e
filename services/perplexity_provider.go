// services/perplexity_provider.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brandlens-ai/brandlens-workflows/internal/config"
	"github.com/brandlens-ai/brandlens-workflows/internal/models"
)

type perplexityProvider struct {
	apiKey      string
	model       string
	baseURL     string
	costService CostService
	httpClient  *http.Client
}

func NewPerplexityProvider(cfg *config.Config, model string, costService CostService) AIProvider {
	fmt.Printf("[NewPerplexityProvider] Creating Perplexity provider\n")
	fmt.Printf("[NewPerplexityProvider]   - API Key: %s\n", maskAPIKey(cfg.PerplexityAPIKey))
	fmt.Printf("[NewPerplexityProvider]   - Model: %s\n", model)

	if cfg.PerplexityAPIKey == "" {
		fmt.Printf("[NewPerplexityProvider] WARNING: PERPLEXITY_API_KEY is empty!\n")
	}

	return &perplexityProvider{
		apiKey:      cfg.PerplexityAPIKey,
		model:       model,
		baseURL:     "https://api.perplexity.ai",
		costService: costService,
		httpClient: &http.Client{
			Timeout: 3 * time.Minute,
		},
	}
}

// Helper function to mask API key for logging
func maskAPIKey(key string) string {
	if len(key) < 8 {
		return "***"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func (p *perplexityProvider) GetProviderName() string {
	return "perplexity"
}

// Perplexity chat completions request/response structures
type perplexityRequest struct {
	Model       string              `json:"model"`
	Messages    []perplexityMessage `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float64             `json:"temperature,omitempty"`
}

type perplexityMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type perplexityResponse struct {
	ID        string             `json:"id"`
	Model     string             `json:"model"`
	Choices   []perplexityChoice `json:"choices"`
	Citations []string           `json:"citations,omitempty"`
	Usage     perplexityUsage    `json:"usage"`
}

type perplexityChoice struct {
	Index        int               `json:"index"`
	FinishReason string            `json:"finish_reason"`
	Message      perplexityMessage `json:"message"`
}

type perplexityUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// RunPrompt implements AIProvider. Perplexity answers are always grounded in
// web search, so the websearch flag only affects cost accounting.
func (p *perplexityProvider) RunPrompt(ctx context.Context, query string, websearch bool, location *models.Location) (*AIResponse, error) {
	fmt.Printf("[PerplexityProvider] Making Perplexity call for prompt: %s\n", query)

	prompt := query
	if location != nil && location.Country != "" {
		prompt = fmt.Sprintf("Answer the following question with information relevant to %s:\n\n%s", location.Country, query)
	}

	requestBody := perplexityRequest{
		Model: p.model,
		Messages: []perplexityMessage{
			{Role: "system", Content: "Be precise and concise. Answer as you would for a buyer researching software products."},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   2000,
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perplexity request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("perplexity API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp perplexityResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode perplexity response: %w", err)
	}

	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("no response choices returned")
	}

	result := &AIResponse{
		Response:     apiResp.Choices[0].Message.Content,
		InputTokens:  apiResp.Usage.PromptTokens,
		OutputTokens: apiResp.Usage.CompletionTokens,
		Cost:         p.costService.CalculateCost(p.GetProviderName(), p.model, apiResp.Usage.PromptTokens, apiResp.Usage.CompletionTokens, websearch),
		Citations:    apiResp.Citations,
	}

	return result, nil
}

// SupportsBatching returns false for Perplexity
func (p *perplexityProvider) SupportsBatching() bool {
	return false
}

func (p *perplexityProvider) GetMaxBatchSize() int {
	return 1
}

// RunPromptBatch processes prompts sequentially for Perplexity
func (p *perplexityProvider) RunPromptBatch(ctx context.Context, queries []string, websearch bool, location *models.Location) ([]*AIResponse, error) {
	responses := make([]*AIResponse, len(queries))
	for i, query := range queries {
		response, err := p.RunPrompt(ctx, query, websearch, location)
		if err != nil {
			return nil, fmt.Errorf("failed to process prompt %d: %w", i+1, err)
		}
		responses[i] = response
	}
	return responses, nil
}
