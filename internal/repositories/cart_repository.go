package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/cart"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/utils"
)

// CartRepository persists cart snapshots in postgres, one row per session key.
type CartRepository interface {
	cart.Persister
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) Load(ctx context.Context, key string) ([]byte, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT payload
		FROM cart_snapshots
		WHERE session_key = $1
	`

	var payload []byte

	err := r.DB.QueryRowContext(dbCtx, query, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cart.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("querying cart snapshot: %w", err)
	}

	return payload, nil
}

func (r *cartRepository) Save(ctx context.Context, key string, data []byte) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_snapshots (session_key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (session_key)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`

	if _, err := r.DB.ExecContext(dbCtx, query, key, data); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}

	return nil
}

func (r *cartRepository) Delete(ctx context.Context, key string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM cart_snapshots WHERE session_key = $1`

	if _, err := r.DB.ExecContext(dbCtx, query, key); err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}

	return nil
}

// PurgeBefore removes snapshots not updated since cutoff and reports how many.
func (r *cartRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM cart_snapshots WHERE updated_at < $1`

	result, err := r.DB.ExecContext(dbCtx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cart snapshots: %w", err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get purged rows: %w", err)
	}

	return purged, nil
}
