// internal/store/store.go
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/brandlens-ai/brandlens-workflows/internal/config"
)

// Client wraps the shared database handle handed to the repositories.
type Client struct {
	DB *sqlx.DB
}

// NewClient connects to Postgres using the parsed database configuration and
// verifies the connection with a ping.
func NewClient(ctx context.Context, cfg config.DatabaseConfig) (*Client, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)

	db, err := sqlx.ConnectContext(ctx, "postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{DB: db}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// RepositoryManager bundles the repositories behind one constructor so the
// services only take a single dependency.
type RepositoryManager struct {
	Brands       *BrandRepo
	AnswerRuns   *AnswerRunRepo
	ShareOfVoice *ShareOfVoiceRepo
}

func NewRepositoryManager(client *Client) *RepositoryManager {
	return &RepositoryManager{
		Brands:       NewBrandRepo(client.DB),
		AnswerRuns:   NewAnswerRunRepo(client.DB),
		ShareOfVoice: NewShareOfVoiceRepo(client.DB),
	}
}
