package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const pgUniqueViolation = "23505"

const postgresSchema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS user_holdings (
	user_id  TEXT NOT NULL,
	category TEXT NOT NULL,
	name     TEXT NOT NULL,
	amount   NUMERIC NOT NULL,
	position INTEGER NOT NULL,
	PRIMARY KEY (user_id, category, name)
);
CREATE TABLE IF NOT EXISTS price_history (
	symbol      TEXT NOT NULL,
	time_window TEXT NOT NULL,
	date        DATE NOT NULL,
	close       DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (symbol, time_window, date)
);
CREATE TABLE IF NOT EXISTS price_history_range (
	symbol      TEXT NOT NULL,
	time_window TEXT NOT NULL,
	expires_at  TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (symbol, time_window)
);
`

// PostgresRepository stores users and holdings in Postgres
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgresRepository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the tables if they are missing
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// LoadHoldings retrieves both holdings sets for a user
func (r *PostgresRepository) LoadHoldings(ctx context.Context, userID string) (*models.UserHoldings, error) {
	query := `
		SELECT category, name, amount::text
		FROM user_holdings
		WHERE user_id = $1
		ORDER BY category, position
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	out := models.NewUserHoldings()
	for rows.Next() {
		var category, name, amount string
		if err := rows.Scan(&category, &name, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount for %s: %w", name, err)
		}
		if set := out.ByCategory(models.Category(category)); set != nil {
			set.Set(name, d)
		}
	}
	return out, rows.Err()
}

// ReplaceHoldings deletes and rewrites both sets in one transaction
func (r *PostgresRepository) ReplaceHoldings(ctx context.Context, userID string, h *models.UserHoldings) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_holdings WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete holdings: %w", err)
	}

	query := `
		INSERT INTO user_holdings (user_id, category, name, amount, position)
		VALUES ($1, $2, $3, $4::numeric, $5)
	`
	batch := &pgx.Batch{}
	queued := 0
	for _, c := range models.Categories {
		for i, e := range h.ByCategory(c).Entries() {
			batch.Queue(query, userID, string(c), e.Name, e.Amount.String(), i)
			queued++
		}
	}

	if queued > 0 {
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < queued; i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("failed to insert holding: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to insert holdings: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CreateUser inserts an account; a duplicate username yields ErrUserConflict
func (r *PostgresRepository) CreateUser(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (id, email, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query, u.ID, u.Email, u.Username, u.PasswordHash, u.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrUserConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByUsername retrieves an account by its login name
func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, email, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`
	u := &models.User{}
	err := r.pool.QueryRow(ctx, query, username).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
