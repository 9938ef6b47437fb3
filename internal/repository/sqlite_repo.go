package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS user_holdings (
	user_id  TEXT NOT NULL,
	category TEXT NOT NULL,
	name     TEXT NOT NULL,
	amount   TEXT NOT NULL,
	position INTEGER NOT NULL,
	PRIMARY KEY (user_id, category, name)
);
`

// SQLiteRepository stores users and holdings in an embedded SQLite file.
// Amounts are kept as decimal text so they survive exactly.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies the schema
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// one writer at a time keeps SQLite from returning SQLITE_BUSY
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Close closes the database
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// LoadHoldings retrieves both holdings sets for a user
func (r *SQLiteRepository) LoadHoldings(ctx context.Context, userID string) (*models.UserHoldings, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, name, amount FROM user_holdings WHERE user_id = ? ORDER BY category, position`,
		userID)
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
func (r *SQLiteRepository) ReplaceHoldings(ctx context.Context, userID string, h *models.UserHoldings) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_holdings WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to delete holdings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO user_holdings (user_id, category, name, amount, position) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range models.Categories {
		for i, e := range h.ByCategory(c).Entries() {
			if _, err := stmt.ExecContext(ctx, userID, string(c), e.Name, e.Amount.String(), i); err != nil {
				return fmt.Errorf("failed to insert holding: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CreateUser inserts an account; a duplicate username yields ErrUserConflict
func (r *SQLiteRepository) CreateUser(ctx context.Context, u *models.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, username, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Username, u.PasswordHash, u.CreatedAt.Unix())
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrUserConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByUsername retrieves an account by its login name
func (r *SQLiteRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u := &models.User{}
	var created int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, username, password_hash, created_at FROM users WHERE username = ?`,
		username).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.CreatedAt = time.Unix(created, 0).UTC()
	return u, nil
}
