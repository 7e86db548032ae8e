package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/brandlens-ai/brandlens-workflows/internal/config"
	"github.com/brandlens-ai/brandlens-workflows/internal/sov"
	"github.com/brandlens-ai/brandlens-workflows/internal/store"
	"github.com/brandlens-ai/brandlens-workflows/services"
)

// Standalone tool: recalculates share-of-voice from already-stored answers,
// without touching the AI providers. Useful after alias or scoring changes.
func main() {
	var (
		brandFlag = flag.String("brand", "", "Brand ID to recalculate (empty = all active brands)")
		windowStr = flag.String("window", "168h", "Answer window to aggregate over (Go duration)")
		dryRun    = flag.Bool("dry-run", false, "Calculate and print without persisting")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	window, err := time.ParseDuration(*windowStr)
	if err != nil {
		log.Fatalf("Invalid -window value %q: %v", *windowStr, err)
	}

	ctx := context.Background()

	client, err := store.NewClient(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer client.Close()

	repos := store.NewRepositoryManager(client)
	sovService := services.NewSOVService(cfg, repos)

	var brandIDs []uuid.UUID
	if *brandFlag != "" {
		brandID, err := uuid.Parse(*brandFlag)
		if err != nil {
			log.Fatalf("Invalid -brand value %q: %v", *brandFlag, err)
		}
		brandIDs = []uuid.UUID{brandID}
	} else {
		brands, err := repos.Brands.ListActive(ctx)
		if err != nil {
			log.Fatalf("Failed to list active brands: %v", err)
		}
		for _, b := range brands {
			brandIDs = append(brandIDs, b.ID)
		}
		fmt.Printf("Recalculating %d active brands\n", len(brandIDs))
	}

	succeeded := 0
	failed := 0
	for _, id := range brandIDs {
		if *dryRun {
			if err := printCalculation(ctx, repos, sovService, id, window); err != nil {
				fmt.Printf("[%s] FAILED: %v\n", id, err)
				failed++
				continue
			}
			succeeded++
			continue
		}

		record, err := sovService.CalculateForBrand(ctx, id, window)
		if err != nil {
			fmt.Printf("[%s] FAILED: %v\n", id, err)
			failed++
			continue
		}
		fmt.Printf("[%s] %s: brand share %.2f%% over %d answers (status=%s)\n",
			id, record.BrandName, record.BrandShare, record.AnswerCount, record.Status)
		succeeded++
	}

	fmt.Printf("\nDone: %d succeeded, %d failed\n", succeeded, failed)
	if failed > 0 {
		log.Fatal("Some brands failed to recalculate")
	}
}

func printCalculation(ctx context.Context, repos *store.RepositoryManager, sovService services.SOVService, brandID uuid.UUID, window time.Duration) error {
	brand, err := repos.Brands.GetByID(ctx, brandID)
	if err != nil {
		return fmt.Errorf("failed to get brand: %w", err)
	}
	if brand == nil {
		return fmt.Errorf("brand not found")
	}

	cutoff := time.Now().Add(-window)
	responses, err := repos.AnswerRuns.ResponsesSince(ctx, brandID, cutoff)
	if err != nil {
		return fmt.Errorf("failed to load answers: %w", err)
	}

	answers := make([]sov.RawAnswer, 0, len(responses))
	for _, text := range responses {
		answers = append(answers, sov.RawAnswer{Text: text})
	}

	result := sovService.CalculateFromAnswers(brand, answers)
	fmt.Printf("[%s] %s (dry run): status=%s answers=%d\n", brandID, brand.Name, result.Status, len(answers))
	for name, share := range result.Shares {
		fmt.Printf("    %-30s %6.2f%% (%d mentions)\n", name, share, result.MentionCounts[name])
	}
	return nil
}
