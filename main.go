// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/inngest/inngestgo"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/qdrant/go-client/qdrant"
	"github.com/typesense/typesense-go/v2/typesense"
	typesenseapi "github.com/typesense/typesense-go/v2/typesense/api"

	"github.com/brandlens-ai/brandlens-workflows/internal/config"
	"github.com/brandlens-ai/brandlens-workflows/internal/store"
	"github.com/brandlens-ai/brandlens-workflows/services"
	"github.com/brandlens-ai/brandlens-workflows/workflows"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("dev.env"); err != nil {
			log.Printf("Note: No .env or dev.env file loaded: %v", err)
		} else {
			log.Printf("Loaded dev.env file for local development")
		}
	} else {
		log.Printf("Loaded .env file")
	}

	cfg := config.Load()

	log.Printf("Environment: %s", cfg.Environment)
	log.Printf("Port: %s", cfg.Port)
	log.Printf("Database Host: %s", cfg.Database.Host)
	log.Printf("Database Name: %s", cfg.Database.Name)

	if cfg.OpenAIAPIKey == "" {
		log.Printf("WARNING: OpenAI API key not loaded!")
	} else {
		log.Printf("OpenAI API key loaded (length: %d)", len(cfg.OpenAIAPIKey))
	}
	if cfg.AnthropicAPIKey == "" {
		log.Printf("WARNING: Anthropic API key not loaded!")
	} else {
		log.Printf("Anthropic API key loaded (length: %d)", len(cfg.AnthropicAPIKey))
	}
	if cfg.PerplexityAPIKey == "" {
		log.Printf("WARNING: Perplexity API key not loaded!")
	}

	ctx := context.Background()
	dbClient, err := store.NewClient(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbClient.Close()
	log.Printf("Successfully connected to database")

	repos := store.NewRepositoryManager(dbClient)
	log.Printf("Repository manager initialized")

	if cfg.Environment == "development" || cfg.Environment == "" {
		os.Unsetenv("INNGEST_SIGNING_KEY")
		cfg.InngestSigningKey = ""
		log.Printf("Running in development mode - signing key verification disabled")
	}

	log.Println("Attempting to initialize Qdrant client...")
	qdrantClient, err := qdrant.NewClient(&qdrant.Config{
		Host: cfg.Qdrant.Host,
		Port: cfg.Qdrant.Port,
	})
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	err = qdrantClient.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: "answer_embeddings",
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     1536,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		log.Fatalf("Failed to create Qdrant collection, check network/firewall: %v", err)
	} else {
		log.Println("Qdrant collection 'answer_embeddings' is ready.")
	}

	log.Println("Attempting to initialize Typesense client...")
	typesenseClient := typesense.NewClient(
		typesense.WithServer(fmt.Sprintf("http://%s:%d", cfg.Typesense.Host, cfg.Typesense.Port)),
		typesense.WithAPIKey(cfg.Typesense.APIKey),
	)

	facet := true
	sort := true
	defaultSortField := "created_at"
	answersSchema := &typesenseapi.CollectionSchema{
		Name: "generated_answers",
		Fields: []typesenseapi.Field{
			{Name: "id", Type: "string"},
			{Name: "content", Type: "string"},
			{Name: "brand_id", Type: "string", Facet: &facet},
			{Name: "prompt_id", Type: "string", Facet: &facet},
			{Name: "model", Type: "string", Facet: &facet},
			{Name: "created_at", Type: "int64", Sort: &sort},
		},
		DefaultSortingField: &defaultSortField,
	}
	_, err = typesenseClient.Collections().Create(ctx, answersSchema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		log.Fatalf("Failed to create Typesense collection: %v", err)
	} else {
		log.Println("Typesense collection 'generated_answers' is ready.")
	}

	// Initialize services
	costService := services.NewCostService()
	categoryService := services.NewCategoryService(cfg, costService)
	promptService := services.NewPromptService(cfg, costService)
	mentionAuditService := services.NewMentionAuditService(cfg, costService)
	answerRunner := services.NewAnswerRunnerService(cfg, repos, costService)
	sovService := services.NewSOVService(cfg, repos)
	analyticsService := services.NewAnalyticsService(cfg, repos)

	openAIService := services.NewOpenAIProvider(cfg, "gpt-4.1", costService)
	indexService := services.NewIndexService(qdrantClient, typesenseClient, openAIService, cfg)
	log.Printf("Index service initialized")

	// Create Inngest client
	client, err := inngestgo.NewClient(
		inngestgo.ClientOpts{
			AppID:    "brandlens-workflows",
			EventKey: inngestgo.StrPtr(cfg.InngestEventKey),
			Env:      inngestgo.StrPtr(cfg.Environment),
		},
	)
	if err != nil {
		log.Fatalf("Failed to create Inngest client: %v", err)
	}

	// Initialize and register workflows
	log.Printf("Initializing and registering workflows...")

	brandProcessor := workflows.NewBrandProcessor(repos, categoryService, promptService, answerRunner, sovService, indexService, analyticsService, mentionAuditService, cfg)
	brandProcessor.SetClient(client)
	brandProcessor.AnalyzeBrand()
	brandProcessor.RecalculateShareOfVoice()
	brandProcessor.AuditBrandMentions()

	scheduledProcessor := workflows.NewScheduledProcessor(repos)
	scheduledProcessor.SetClient(client)
	scheduledProcessor.DailyBrandProcessor()
	scheduledProcessor.WeeklyCalculationAuditor()

	log.Printf("All processors initialized and functions registered")

	log.Printf("Starting Inngest client...")
	h := client.Serve()
	mux := http.NewServeMux()
	mux.Handle("/api/inngest", h)

	// Root endpoint for ALB health check
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"service":"brandlens-workflows","status":"running"}`))
	})

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	mux.HandleFunc("/test/trigger-brand", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		brandID := r.URL.Query().Get("brand_id")
		if brandID == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"brand_id query parameter is required"}`))
			return
		}
		evt := inngestgo.Event{
			Name: "brand.analyze",
			Data: map[string]interface{}{"brand_id": brandID, "triggered_by": "manual_test"},
		}
		result, err := client.Send(r.Context(), evt)
		if err != nil {
			log.Printf("Failed to send test event: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(fmt.Sprintf(`{"error":"Failed to send event: %v"}`, err)))
			return
		}
		log.Printf("Test event sent successfully: %+v", result)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(fmt.Sprintf(`{"status":"success","message":"Test event sent for brand %s","event_ids":["%s"]}`, brandID, result)))
	})

	// Start server
	port := cfg.Port
	log.Printf("Starting BrandLens Workflows service on port %s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatal(err)
	}
}
