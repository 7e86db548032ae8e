// services/prompt_service_test.go
package services

import (
	"context"
	"strings"
	"testing"

	"github.com/brandlens-ai/brandlens-workflows/internal/config"
	"github.com/brandlens-ai/brandlens-workflows/internal/models"
)

func TestGeneratePromptsFromTemplates(t *testing.T) {
	s := NewPromptService(&config.Config{}, NewCostService())
	brand := &models.Brand{Name: "HubSpot", Category: "crm"}

	prompts, err := s.GeneratePrompts(context.Background(), brand, 4)
	if err != nil {
		t.Fatalf("GeneratePrompts() error = %v", err)
	}
	if len(prompts) != 4 {
		t.Fatalf("got %d prompts, want 4", len(prompts))
	}

	for i, prompt := range prompts {
		if prompt.ID == "" {
			t.Errorf("prompt %d has empty ID", i)
		}
		if !strings.Contains(prompt.Text, "crm") {
			t.Errorf("prompt %d text %q does not mention the category", i, prompt.Text)
		}
		if strings.Contains(strings.ToLower(prompt.Text), "hubspot") {
			t.Errorf("prompt %d text %q mentions the brand name", i, prompt.Text)
		}
		if prompt.Category != "crm" {
			t.Errorf("prompt %d category = %q, want crm", i, prompt.Category)
		}
	}
}

func TestGeneratePromptsTruncatesToCount(t *testing.T) {
	s := NewPromptService(&config.Config{}, NewCostService())
	brand := &models.Brand{Name: "HubSpot", Category: "crm"}

	prompts, err := s.GeneratePrompts(context.Background(), brand, 2)
	if err != nil {
		t.Fatalf("GeneratePrompts() error = %v", err)
	}
	if len(prompts) != 2 {
		t.Errorf("got %d prompts, want 2", len(prompts))
	}
}

func TestGeneratePromptsUncategorizedBrand(t *testing.T) {
	s := NewPromptService(&config.Config{}, NewCostService())
	brand := &models.Brand{Name: "Acme"}

	prompts, err := s.GeneratePrompts(context.Background(), brand, 4)
	if err != nil {
		t.Fatalf("GeneratePrompts() error = %v", err)
	}
	for i, prompt := range prompts {
		if !strings.Contains(prompt.Text, "software") {
			t.Errorf("prompt %d text %q should use the software fallback category", i, prompt.Text)
		}
	}
}
