// internal/store/sov_records.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/brandlens-ai/brandlens-workflows/internal/models"
)

// ShareOfVoiceRepo persists share-of-voice calculation results. The full
// share map is stored as JSON alongside the flattened headline numbers.
type ShareOfVoiceRepo struct {
	db *sqlx.DB
}

func NewShareOfVoiceRepo(db *sqlx.DB) *ShareOfVoiceRepo {
	return &ShareOfVoiceRepo{db: db}
}

func (r *ShareOfVoiceRepo) Create(ctx context.Context, record *models.ShareOfVoiceRecord) error {
	sharesJSON, err := json.Marshal(record.Shares)
	if err != nil {
		return fmt.Errorf("failed to marshal shares for brand %s: %w", record.BrandName, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO share_of_voice_records
		 (id, brand_id, brand_name, topic, shares, brand_share,
		  ai_visibility_score, status, answer_count, calculated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		record.ID, record.BrandID, record.BrandName, record.Topic, sharesJSON,
		record.BrandShare, record.Visibility, record.Status, record.AnswerCount,
		record.CalculatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert share of voice record for brand %s: %w", record.BrandName, err)
	}
	return nil
}

// LatestByBrand returns the most recent record for a brand, or nil when none
// exists yet.
func (r *ShareOfVoiceRepo) LatestByBrand(ctx context.Context, brandID uuid.UUID) (*models.ShareOfVoiceRecord, error) {
	row := struct {
		models.ShareOfVoiceRecord
		SharesJSON []byte `db:"shares"`
	}{}

	err := r.db.GetContext(ctx, &row,
		`SELECT id, brand_id, brand_name, topic, shares, brand_share,
		        ai_visibility_score, status, answer_count, calculated_at
		 FROM share_of_voice_records
		 WHERE brand_id = $1 ORDER BY calculated_at DESC LIMIT 1`,
		brandID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest share of voice for brand %s: %w", brandID, err)
	}

	record := row.ShareOfVoiceRecord
	if err := json.Unmarshal(row.SharesJSON, &record.Shares); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shares for brand %s: %w", brandID, err)
	}
	return &record, nil
}

// HistoryByBrand returns up to limit records for a brand, newest first.
func (r *ShareOfVoiceRepo) HistoryByBrand(ctx context.Context, brandID uuid.UUID, limit int) ([]*models.ShareOfVoiceRecord, error) {
	rows := []struct {
		models.ShareOfVoiceRecord
		SharesJSON []byte `db:"shares"`
	}{}

	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, brand_id, brand_name, topic, shares, brand_share,
		        ai_visibility_score, status, answer_count, calculated_at
		 FROM share_of_voice_records
		 WHERE brand_id = $1 ORDER BY calculated_at DESC LIMIT $2`,
		brandID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get share of voice history for brand %s: %w", brandID, err)
	}

	records := make([]*models.ShareOfVoiceRecord, 0, len(rows))
	for i := range rows {
		record := rows[i].ShareOfVoiceRecord
		if err := json.Unmarshal(rows[i].SharesJSON, &record.Shares); err != nil {
			return nil, fmt.Errorf("failed to unmarshal shares for brand %s: %w", brandID, err)
		}
		records = append(records, &record)
	}
	return records, nil
}
