package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Category identifies one of the two asset families a user holds
type Category string

const (
	CategoryETF  Category = "ETF"
	CategorySCPI Category = "SCPI"
)

// Categories lists the categories in display order
var Categories = []Category{CategoryETF, CategorySCPI}

// HoldingEntry is one named position and the amount invested in it.
// Name is a ticker symbol for ETFs and a free-text label for SCPIs.
type HoldingEntry struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// HoldingsSet is an insertion-ordered name -> amount mapping.
// Setting an existing name replaces its amount and keeps its original position.
type HoldingsSet struct {
	names   []string
	amounts map[string]decimal.Decimal
}

// NewHoldingsSet creates an empty HoldingsSet
func NewHoldingsSet() *HoldingsSet {
	return &HoldingsSet{amounts: make(map[string]decimal.Decimal)}
}

// HoldingsFromEntries builds a set from entries, later duplicates winning
func HoldingsFromEntries(entries []HoldingEntry) *HoldingsSet {
	h := NewHoldingsSet()
	for _, e := range entries {
		h.Set(e.Name, e.Amount)
	}
	return h
}

// Set stores amount under name
func (h *HoldingsSet) Set(name string, amount decimal.Decimal) {
	if h.amounts == nil {
		h.amounts = make(map[string]decimal.Decimal)
	}
	if _, exists := h.amounts[name]; !exists {
		h.names = append(h.names, name)
	}
	h.amounts[name] = amount
}

// Get returns the amount stored for name
func (h *HoldingsSet) Get(name string) (decimal.Decimal, bool) {
	if h == nil {
		return decimal.Zero, false
	}
	amount, ok := h.amounts[name]
	return amount, ok
}

// Len returns the number of entries
func (h *HoldingsSet) Len() int {
	if h == nil {
		return 0
	}
	return len(h.names)
}

// Names returns the entry names in insertion order
func (h *HoldingsSet) Names() []string {
	if h == nil {
		return nil
	}
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Entries returns the entries in insertion order
func (h *HoldingsSet) Entries() []HoldingEntry {
	if h == nil {
		return nil
	}
	entries := make([]HoldingEntry, 0, len(h.names))
	for _, name := range h.names {
		entries = append(entries, HoldingEntry{Name: name, Amount: h.amounts[name]})
	}
	return entries
}

// Total sums every amount in the set
func (h *HoldingsSet) Total() decimal.Decimal {
	total := decimal.Zero
	if h == nil {
		return total
	}
	for _, name := range h.names {
		total = total.Add(h.amounts[name])
	}
	return total
}

// Equal reports whether both sets hold the same names and amounts, ignoring order
func (h *HoldingsSet) Equal(o *HoldingsSet) bool {
	if h.Len() != o.Len() {
		return false
	}
	for _, name := range h.Names() {
		other, ok := o.Get(name)
		if !ok {
			return false
		}
		mine, _ := h.Get(name)
		if !mine.Equal(other) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as an ordered array of entries
func (h *HoldingsSet) MarshalJSON() ([]byte, error) {
	entries := h.Entries()
	if entries == nil {
		entries = []HoldingEntry{}
	}
	return json.Marshal(entries)
}

// UnmarshalJSON decodes an array of entries
func (h *HoldingsSet) UnmarshalJSON(b []byte) error {
	var entries []HoldingEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return fmt.Errorf("invalid holdings: %w", err)
	}
	*h = *HoldingsFromEntries(entries)
	return nil
}

// UserHoldings groups the two holdings sets a user owns
type UserHoldings struct {
	ETF  *HoldingsSet `json:"etf"`
	SCPI *HoldingsSet `json:"scpi"`
}

// NewUserHoldings returns UserHoldings with two empty sets
func NewUserHoldings() *UserHoldings {
	return &UserHoldings{ETF: NewHoldingsSet(), SCPI: NewHoldingsSet()}
}

// ByCategory returns the set for a category
func (u *UserHoldings) ByCategory(c Category) *HoldingsSet {
	switch c {
	case CategoryETF:
		return u.ETF
	case CategorySCPI:
		return u.SCPI
	}
	return nil
}

// SetCategory replaces the set for a category
func (u *UserHoldings) SetCategory(c Category, h *HoldingsSet) {
	switch c {
	case CategoryETF:
		u.ETF = h
	case CategorySCPI:
		u.SCPI = h
	}
}

// HoldingsSource tells where a loaded holdings set came from
type HoldingsSource string

const (
	SourceStored  HoldingsSource = "stored"
	SourceDefault HoldingsSource = "default"
)
