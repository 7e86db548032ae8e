// internal/sov/topics.go
package sov

import "strings"

// topicKeywords maps a topic/category identifier to the fixed keyword list
// used for topic-relevance scoring. Unknown topics use the generic list.
var topicKeywords = map[string][]string{
	"crm": {
		"crm", "sales", "pipeline", "leads", "contacts", "deals",
		"customer", "automation", "marketing",
	},
	"ecommerce": {
		"store", "shop", "checkout", "payments", "inventory", "orders",
		"shipping", "products", "cart",
	},
	"marketing": {
		"marketing", "campaign", "email", "seo", "content", "audience",
		"engagement", "conversion", "analytics",
	},
	"fintech": {
		"payments", "banking", "finance", "transactions", "invoicing",
		"accounting", "money", "credit", "lending",
	},
	"cloud": {
		"cloud", "hosting", "infrastructure", "deployment", "servers",
		"storage", "scaling", "compute", "kubernetes",
	},
	"analytics": {
		"analytics", "data", "metrics", "dashboard", "reporting",
		"insights", "tracking", "visualization", "warehouse",
	},
	"hr": {
		"hiring", "payroll", "employees", "recruiting", "onboarding",
		"benefits", "talent", "workforce", "hr",
	},
	"support": {
		"support", "helpdesk", "tickets", "chat", "customer service",
		"knowledge base", "agents", "sla", "resolution",
	},
}

// genericTopicKeywords back any topic without a dedicated list.
var genericTopicKeywords = []string{
	"software", "platform", "tool", "service", "solution", "company",
	"business", "product", "app",
}

// TopicKeywords returns the keyword list for a topic identifier.
func TopicKeywords(topic string) []string {
	if keywords, ok := topicKeywords[strings.ToLower(strings.TrimSpace(topic))]; ok {
		return keywords
	}
	return genericTopicKeywords
}

// TopicRelevance scores how on-topic a context is: the keyword-overlap ratio
// clamped to [0.2, 1.0], with 0.2 for zero overlap.
func TopicRelevance(context string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0.2
	}

	lower := strings.ToLower(context)
	matched := 0
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			matched++
		}
	}
	if matched == 0 {
		return 0.2
	}

	relevance := float64(matched) / float64(len(keywords))
	if relevance < 0.2 {
		return 0.2
	}
	if relevance > 1.0 {
		return 1.0
	}
	return relevance
}
