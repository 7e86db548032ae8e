// services/category_service_test.go
package services

import "testing"

func TestClassifyByKeywords(t *testing.T) {
	s := &categoryService{}

	tests := []struct {
		name           string
		brandName      string
		description    string
		wantCategory   string
		wantConfidence float64
	}{
		{
			name:           "strong crm signal",
			brandName:      "PipeDesk",
			description:    "Sales pipeline software for managing leads, contacts and deals",
			wantCategory:   "crm",
			wantConfidence: 0.6,
		},
		{
			name:           "ecommerce signal",
			brandName:      "ShopForge",
			description:    "Build an online store with checkout, payments and inventory tracking",
			wantCategory:   "ecommerce",
			wantConfidence: 0.6,
		},
		{
			name:           "weak single match",
			brandName:      "Acme",
			description:    "We help teams with payroll",
			wantCategory:   "hr",
			wantConfidence: 0.3,
		},
		{
			name:           "no matches falls back to other",
			brandName:      "Acme",
			description:    "A thing that does stuff",
			wantCategory:   "other",
			wantConfidence: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.classifyByKeywords(tt.brandName, tt.description)
			if result.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", result.Category, tt.wantCategory)
			}
			if result.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", result.Confidence, tt.wantConfidence)
			}
		})
	}
}
