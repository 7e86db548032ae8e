// internal/store/answer_runs.go
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/brandlens-ai/brandlens-workflows/internal/models"
)

// AnswerRunRepo persists the raw answers collected from AI providers.
type AnswerRunRepo struct {
	db *sqlx.DB
}

func NewAnswerRunRepo(db *sqlx.DB) *AnswerRunRepo {
	return &AnswerRunRepo{db: db}
}

// CreateBatch stores all runs of one collection pass for a brand. Failed runs
// are stored too, with their error text, so reruns can target the gaps.
func (r *AnswerRunRepo) CreateBatch(ctx context.Context, brandID uuid.UUID, runs []*models.AnswerRun) error {
	if len(runs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, run := range runs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO answer_runs
			 (id, brand_id, prompt_id, model, country, web_search, response,
			  cost, input_tokens, output_tokens, error, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			uuid.New(), brandID, run.PromptID, run.Model, run.Location.Country,
			run.WebSearch, run.Response, run.Cost, run.InputTokens,
			run.OutputTokens, run.Error, run.Timestamp)
		if err != nil {
			return fmt.Errorf("failed to insert answer run for prompt %s: %w", run.PromptID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ResponsesSince returns the non-empty response texts collected for a brand
// after the cutoff, newest first. This is the input set for share-of-voice
// recalculation.
func (r *AnswerRunRepo) ResponsesSince(ctx context.Context, brandID uuid.UUID, cutoff time.Time) ([]string, error) {
	var responses []string
	err := r.db.SelectContext(ctx, &responses,
		`SELECT response FROM answer_runs
		 WHERE brand_id = $1 AND created_at >= $2 AND response <> '' AND error = ''
		 ORDER BY created_at DESC`,
		brandID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to get responses for brand %s: %w", brandID, err)
	}
	return responses, nil
}

// CountSince returns how many successful runs exist for a brand after the
// cutoff.
func (r *AnswerRunRepo) CountSince(ctx context.Context, brandID uuid.UUID, cutoff time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM answer_runs
		 WHERE brand_id = $1 AND created_at >= $2 AND error = ''`,
		brandID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to count answer runs for brand %s: %w", brandID, err)
	}
	return count, nil
}
