package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreRepository keeps one document per user holding both sets.
// A single document write makes the replacement atomic.
type FirestoreRepository struct {
	client     *firestore.Client
	collection string
}

type firestoreEntry struct {
	Name   string  `firestore:"name"`
	Amount float64 `firestore:"amount"`
}

type firestoreHoldings struct {
	ETF       []firestoreEntry `firestore:"etf"`
	SCPI      []firestoreEntry `firestore:"scpi"`
	UpdatedAt time.Time        `firestore:"updated_at"`
}

// NewFirestoreRepository creates a repository over collection
func NewFirestoreRepository(client *firestore.Client, collection string) *FirestoreRepository {
	return &FirestoreRepository{client: client, collection: collection}
}

// OpenFirestore connects to project. FIRESTORE_EMULATOR_HOST is honoured by the client.
func OpenFirestore(ctx context.Context, project, collection string) (*FirestoreRepository, error) {
	client, err := firestore.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return NewFirestoreRepository(client, collection), nil
}

// Close closes the Firestore client
func (r *FirestoreRepository) Close() error {
	return r.client.Close()
}

// LoadHoldings reads the user's document; a missing document is empty holdings
func (r *FirestoreRepository) LoadHoldings(ctx context.Context, userID string) (*models.UserHoldings, error) {
	doc, err := r.client.Collection(r.collection).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return models.NewUserHoldings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get holdings: %w", err)
	}

	var stored firestoreHoldings
	if err := doc.DataTo(&stored); err != nil {
		return nil, fmt.Errorf("failed to decode holdings: %w", err)
	}
	return &models.UserHoldings{
		ETF:  fromFirestore(stored.ETF),
		SCPI: fromFirestore(stored.SCPI),
	}, nil
}

// ReplaceHoldings overwrites the user's document
func (r *FirestoreRepository) ReplaceHoldings(ctx context.Context, userID string, h *models.UserHoldings) error {
	doc := firestoreHoldings{
		ETF:       toFirestore(h.ETF),
		SCPI:      toFirestore(h.SCPI),
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := r.client.Collection(r.collection).Doc(userID).Set(ctx, doc); err != nil {
		return fmt.Errorf("failed to save holdings: %w", err)
	}
	return nil
}

func toFirestore(h *models.HoldingsSet) []firestoreEntry {
	out := make([]firestoreEntry, 0, h.Len())
	for _, e := range h.Entries() {
		out = append(out, firestoreEntry{Name: e.Name, Amount: e.Amount.InexactFloat64()})
	}
	return out
}

func fromFirestore(entries []firestoreEntry) *models.HoldingsSet {
	h := models.NewHoldingsSet()
	for _, e := range entries {
		h.Set(e.Name, decimal.NewFromFloat(e.Amount))
	}
	return h
}
