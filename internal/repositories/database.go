package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/config"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

const cartSnapshotSchema = `
	CREATE TABLE IF NOT EXISTS cart_snapshots (
		session_key TEXT PRIMARY KEY,
		payload     JSONB NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

type Repository struct {
	DB *sql.DB
}

// New opens the instrumented postgres pool and makes sure the cart snapshot
// table exists.
func New(ctx context.Context, cfg *config.Config) (*Repository, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := &Repository{DB: db}

	if err := repo.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (p *Repository) Migrate(ctx context.Context) error {
	if _, err := p.DB.ExecContext(ctx, cartSnapshotSchema); err != nil {
		return fmt.Errorf("failed to create cart_snapshots table: %w", err)
	}

	return nil
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
