package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// PriceCacheRepository keeps fetched price series in Postgres so they survive
// restarts and are shared between instances. Failures are logged and reported
// as misses.
type PriceCacheRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPriceCacheRepository creates a new PriceCacheRepository
func NewPriceCacheRepository(pool *pgxpool.Pool) *PriceCacheRepository {
	return &PriceCacheRepository{pool: pool, now: time.Now}
}

// GetHistory returns the cached series for symbol and window if it has not expired
func (r *PriceCacheRepository) GetHistory(ctx context.Context, symbol string, window models.Window) ([]models.PricePoint, bool) {
	var expiresAt time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT expires_at
		FROM price_history_range
		WHERE symbol = $1 AND time_window = $2
	`, symbol, string(window)).Scan(&expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		log.Warnf("price cache lookup for %s failed: %v", symbol, err)
		return nil, false
	}
	if !r.now().Before(expiresAt) {
		return nil, false
	}

	query := `
		SELECT date, close
		FROM price_history
		WHERE symbol = $1 AND time_window = $2
		ORDER BY date ASC
	`
	rows, err := r.pool.Query(ctx, query, symbol, string(window))
	if err != nil {
		log.Warnf("price cache read for %s failed: %v", symbol, err)
		return nil, false
	}
	defer rows.Close()

	var points []models.PricePoint
	for rows.Next() {
		var date time.Time
		var p models.PricePoint
		if err := rows.Scan(&date, &p.Close); err != nil {
			log.Warnf("price cache scan for %s failed: %v", symbol, err)
			return nil, false
		}
		p.Date = models.NewDate(date)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil || len(points) == 0 {
		return nil, false
	}
	return points, true
}

// SetHistory replaces the cached series for symbol and window
func (r *PriceCacheRepository) SetHistory(ctx context.Context, symbol string, window models.Window, data []models.PricePoint, expiresAt time.Time) {
	if len(data) == 0 {
		return
	}
	if err := r.replace(ctx, symbol, window, data, expiresAt); err != nil {
		log.Warnf("price cache write for %s failed: %v", symbol, err)
	}
}

func (r *PriceCacheRepository) replace(ctx context.Context, symbol string, window models.Window, data []models.PricePoint, expiresAt time.Time) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM price_history WHERE symbol = $1 AND time_window = $2`, symbol, string(window)); err != nil {
		return fmt.Errorf("failed to clear prices: %w", err)
	}

	query := `
		INSERT INTO price_history (symbol, time_window, date, close)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (symbol, time_window, date) DO UPDATE
		SET close = EXCLUDED.close
	`
	batch := &pgx.Batch{}
	for _, p := range data {
		batch.Queue(query, symbol, string(window), p.Date.Time, p.Close)
	}
	br := tx.SendBatch(ctx, batch)
	for range data {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to cache price: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to cache prices: %w", err)
	}

	rangeQuery := `
		INSERT INTO price_history_range (symbol, time_window, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (symbol, time_window) DO UPDATE
		SET expires_at = EXCLUDED.expires_at
	`
	if _, err := tx.Exec(ctx, rangeQuery, symbol, string(window), expiresAt); err != nil {
		return fmt.Errorf("failed to upsert price range: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
