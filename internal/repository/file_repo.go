package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// FileRepository keeps every user's holdings in one local JSON file.
// Writes go to a temp file that is renamed over the original.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

type fileEntry struct {
	Name   string      `json:"name"`
	Amount json.Number `json:"amount"`
}

type fileHoldings struct {
	ETF  []fileEntry `json:"etf"`
	SCPI []fileEntry `json:"scpi"`
}

type fileDocument struct {
	Users map[string]fileHoldings `json:"users"`
}

// NewFileRepository creates a repository backed by path
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// LoadHoldings reads the user's holdings; a missing file or user is empty holdings
func (r *FileRepository) LoadHoldings(_ context.Context, userID string) (*models.UserHoldings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return nil, err
	}
	stored, ok := doc.Users[userID]
	if !ok {
		return models.NewUserHoldings(), nil
	}

	etf, err := fromFile(stored.ETF)
	if err != nil {
		return nil, err
	}
	scpi, err := fromFile(stored.SCPI)
	if err != nil {
		return nil, err
	}
	return &models.UserHoldings{ETF: etf, SCPI: scpi}, nil
}

// ReplaceHoldings rewrites the user's entry in the file
func (r *FileRepository) ReplaceHoldings(_ context.Context, userID string, h *models.UserHoldings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return err
	}
	doc.Users[userID] = fileHoldings{ETF: toFile(h.ETF), SCPI: toFile(h.SCPI)}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode holdings: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".holdings-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write holdings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write holdings: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace holdings file: %w", err)
	}
	return nil
}

func (r *FileRepository) read() (*fileDocument, error) {
	doc := &fileDocument{Users: make(map[string]fileHoldings)}
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read holdings file: %w", err)
	}
	if len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("corrupt holdings file: %w", err)
	}
	if doc.Users == nil {
		doc.Users = make(map[string]fileHoldings)
	}
	return doc, nil
}

func toFile(h *models.HoldingsSet) []fileEntry {
	out := make([]fileEntry, 0, h.Len())
	for _, e := range h.Entries() {
		out = append(out, fileEntry{Name: e.Name, Amount: json.Number(e.Amount.String())})
	}
	return out
}

func fromFile(entries []fileEntry) (*models.HoldingsSet, error) {
	h := models.NewHoldingsSet()
	for _, e := range entries {
		d, err := decimal.NewFromString(e.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("corrupt amount for %s: %w", e.Name, err)
		}
		h.Set(e.Name, d)
	}
	return h, nil
}
