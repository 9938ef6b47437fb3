package repository

import (
	"context"
	"errors"

	"github.com/epeers/portfolio-tracker/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserConflict = errors.New("username already taken")
)

// HoldingsStore persists both holdings sets of a user.
// LoadHoldings returns empty sets for a user with nothing stored.
// ReplaceHoldings swaps both sets at once or leaves the previous state intact.
type HoldingsStore interface {
	LoadHoldings(ctx context.Context, userID string) (*models.UserHoldings, error)
	ReplaceHoldings(ctx context.Context, userID string, h *models.UserHoldings) error
}

// UserStore persists accounts
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}
