// services/answer_runner_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/brandlens-ai/brandlens-workflows/internal/config"
	"github.com/brandlens-ai/brandlens-workflows/internal/models"
	"github.com/brandlens-ai/brandlens-workflows/internal/store"
)

type answerRunnerService struct {
	cfg         *config.Config
	repos       *store.RepositoryManager
	costService CostService
	providers   map[string]AIProvider
	matrix      []models.ModelConfig
	locations   []models.Location
}

// defaultMatrix is the model set asked per prompt when a brand has no custom
// configuration.
var defaultMatrix = []models.ModelConfig{
	{Name: "gpt-4.1", WebSearch: true},
	{Name: "claude-sonnet-4-20250514", WebSearch: false},
	{Name: "sonar", WebSearch: true},
}

var defaultLocations = []models.Location{
	{Country: "US"},
}

func NewAnswerRunnerService(cfg *config.Config, repos *store.RepositoryManager, costService CostService) AnswerRunnerService {
	providers := map[string]AIProvider{
		"gpt-4.1":                  NewOpenAIProvider(cfg, "gpt-4.1", costService),
		"claude-sonnet-4-20250514": NewAnthropicProvider(cfg, "claude-sonnet-4-20250514", costService),
		"sonar":                    NewPerplexityProvider(cfg, "sonar", costService),
	}

	return &answerRunnerService{
		cfg:         cfg,
		repos:       repos,
		costService: costService,
		providers:   providers,
		matrix:      defaultMatrix,
		locations:   defaultLocations,
	}
}

// RunPromptMatrix executes every prompt against every configured model and
// location, persists the runs, and returns them. Individual run failures are
// recorded on the run, not returned, so one bad call never sinks the batch.
func (s *answerRunnerService) RunPromptMatrix(ctx context.Context, brand *models.Brand, prompts []*models.Prompt) ([]*models.AnswerRun, error) {
	totalJobs := len(prompts) * len(s.matrix) * len(s.locations)
	fmt.Printf("[RunPromptMatrix] Starting matrix for brand %s: %d prompts x %d models x %d locations = %d runs\n",
		brand.Name, len(prompts), len(s.matrix), len(s.locations), totalJobs)

	var runs []*models.AnswerRun
	completed := 0
	failed := 0

	for _, prompt := range prompts {
		for _, model := range s.matrix {
			for _, location := range s.locations {
				run, err := s.ProcessSinglePrompt(ctx, prompt, model, location)
				if err != nil {
					// ProcessSinglePrompt already embeds the error in the run;
					// a non-nil error here means we could not even build one.
					fmt.Printf("[RunPromptMatrix] Run for prompt %s on model %s failed outright: %v\n", prompt.ID, model.Name, err)
					failed++
					continue
				}
				if run.Error != "" {
					failed++
				} else {
					completed++
				}
				runs = append(runs, run)
			}
		}
	}

	if err := s.repos.AnswerRuns.CreateBatch(ctx, brand.ID, runs); err != nil {
		return nil, fmt.Errorf("failed to persist answer runs for brand %s: %w", brand.Name, err)
	}

	fmt.Printf("[RunPromptMatrix] Matrix complete for brand %s: %d succeeded, %d failed\n", brand.Name, completed, failed)
	return runs, nil
}

// ProcessSinglePrompt runs one prompt×model×location cell. Provider errors
// are captured on the returned run.
func (s *answerRunnerService) ProcessSinglePrompt(ctx context.Context, prompt *models.Prompt, model models.ModelConfig, location models.Location) (*models.AnswerRun, error) {
	provider, ok := s.providers[model.Name]
	if !ok {
		return nil, fmt.Errorf("no provider configured for model %s", model.Name)
	}

	run := &models.AnswerRun{
		PromptID:  prompt.ID,
		Model:     model.Name,
		Location:  location,
		WebSearch: model.WebSearch,
		Timestamp: time.Now().UTC(),
	}

	response, err := provider.RunPrompt(ctx, prompt.Text, model.WebSearch, &location)
	if err != nil {
		fmt.Printf("[ProcessSinglePrompt] Provider %s failed on prompt %s: %v\n", provider.GetProviderName(), prompt.ID, err)
		run.Error = err.Error()
		return run, nil
	}

	run.Response = response.Response
	run.Cost = response.Cost
	run.InputTokens = response.InputTokens
	run.OutputTokens = response.OutputTokens

	return run, nil
}
