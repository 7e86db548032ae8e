package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/brandlens-ai/brandlens-workflows/internal/config"
	"github.com/brandlens-ai/brandlens-workflows/internal/models"
	"github.com/brandlens-ai/brandlens-workflows/services"
)

func main() {
	fmt.Println("AI Provider Test Script")

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	} else {
		fmt.Println("Loaded .env file")
	}
	fmt.Println()

	cfg := loadConfig()

	// Create cost service (required for providers)
	costService := services.NewCostService()

	// Test queries
	queries := []string{
		"What are the best CRM platforms for small businesses?",
		"Which ecommerce platform should a new store use?",
		"Compare the leading marketing automation tools.",
	}

	location := &models.Location{
		Country: "US",
		Region:  strPtr("California"),
	}

	fmt.Println("\nTest Configuration:")
	fmt.Printf("  - Queries: %d\n", len(queries))
	fmt.Printf("  - Location: %s, %s\n", *location.Region, location.Country)
	fmt.Println()

	// Uncomment the provider you want to test:

	testProvider("gpt-4.1", services.NewOpenAIProvider(cfg, "gpt-4.1", costService), queries, location)

	// testProvider("claude-sonnet-4-20250514", services.NewAnthropicProvider(cfg, "claude-sonnet-4-20250514", costService), queries, location)

	// testProvider("sonar", services.NewPerplexityProvider(cfg, "sonar", costService), queries, location)
}

func testProvider(modelName string, provider services.AIProvider, queries []string, location *models.Location) {
	fmt.Printf("\nTesting Provider: %s\n", modelName)

	ctx := context.Background()
	startTime := time.Now()

	jobID := fmt.Sprintf("run_%d", time.Now().Unix())

	fmt.Println("Executing batch request...")
	responses, err := provider.RunPromptBatch(ctx, queries, true, location)
	if err != nil {
		fmt.Printf("Failed to run batch: %v\n", err)
		return
	}
	duration := time.Since(startTime)
	fmt.Printf("Batch completed in %v\n", duration)
	fmt.Println()

	// Save responses to files
	saveResponses(jobID, responses)

	// Display results
	displayResults(responses, queries)

	fmt.Println()
	fmt.Printf("Total Time: %v\n", duration)
}

func displayResults(responses []*services.AIResponse, queries []string) {
	fmt.Printf("Results Summary:\n")
	fmt.Printf("   - Total responses: %d\n", len(responses))
	fmt.Println()

	totalCost := 0.0

	for i, resp := range responses {
		fmt.Printf("Prompt %d: %s\n", i+1, truncate(queries[i], 60))
		fmt.Printf("  Response: %s\n", truncate(resp.Response, 100))
		fmt.Printf("  Tokens: %d input, %d output\n", resp.InputTokens, resp.OutputTokens)
		fmt.Printf("  Citations: %d\n", len(resp.Citations))
		fmt.Printf("  Cost: $%.6f\n", resp.Cost)
		fmt.Println()

		totalCost += resp.Cost
	}

	fmt.Printf("Total Cost: $%.6f\n", totalCost)
}

func loadConfig() *config.Config {
	return &config.Config{
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		PerplexityAPIKey: getEnv("PERPLEXITY_API_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func strPtr(s string) *string {
	return &s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func saveResponses(jobID string, responses []*services.AIResponse) {
	fmt.Println("Saving responses to files...")
	for i, resp := range responses {
		filename := fmt.Sprintf("%s_%d.json", jobID, i+1)
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			fmt.Printf("  Failed to marshal response %d: %v\n", i+1, err)
			continue
		}
		if err := os.WriteFile(filename, data, 0644); err != nil {
			fmt.Printf("  Failed to save %s: %v\n", filename, err)
			continue
		}
		fmt.Printf("  Saved: %s\n", filename)
	}
	fmt.Println()
}
