package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SignupRequest represents the request body for creating an account
type SignupRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest represents the request body for logging in.
// Username is ignored in shared-password mode.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token for subsequent requests
type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SignupResponse is returned once an account has been created
type SignupResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// HoldingsTexts is the raw editor text for both categories
type HoldingsTexts struct {
	ETF  string `json:"etf"`
	SCPI string `json:"scpi"`
}

// HoldingsResponse represents the holdings of the current user
type HoldingsResponse struct {
	Holdings   UserHoldings   `json:"holdings"`
	Texts      HoldingsTexts  `json:"texts"`
	ETFSource  HoldingsSource `json:"etf_source"`
	SCPISource HoldingsSource `json:"scpi_source"`
	Warnings   []Warning      `json:"warnings,omitempty"`
}

// SaveHoldingsRequest represents the body of PUT /holdings
type SaveHoldingsRequest struct {
	ETF  string `json:"etf"`
	SCPI string `json:"scpi"`
}

// DashboardRequest represents the body of POST /dashboard.
// Nil texts fall back to the session draft, then to stored holdings.
type DashboardRequest struct {
	ETF    *string `json:"etf,omitempty"`
	SCPI   *string `json:"scpi,omitempty"`
	Window string  `json:"window,omitempty"`
}

// AllocationRow is one holding's share of the grand total
type AllocationRow struct {
	Label      string          `json:"label"`
	Category   Category        `json:"category"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Summary holds the headline totals of a dashboard
type Summary struct {
	TotalETF       decimal.Decimal `json:"total_etf"`
	TotalSCPI      decimal.Decimal `json:"total_scpi"`
	Total          decimal.Decimal `json:"total"`
	ETFShare       decimal.Decimal `json:"etf_share"`
	SCPIShare      decimal.Decimal `json:"scpi_share"`
	Classification string          `json:"classification,omitempty"`
}

// DashboardResponse is the full computed dashboard
type DashboardResponse struct {
	Window      Window                  `json:"window"`
	Summary     Summary                 `json:"summary"`
	Allocation  []AllocationRow         `json:"allocation"`
	Categories  []AllocationRow         `json:"categories"`
	Performance []InstrumentPerformance `json:"performance"`
	Warnings    []Warning               `json:"warnings,omitempty"`
}

// ImportResponse carries workbook contents as editor text
type ImportResponse struct {
	Texts    HoldingsTexts `json:"texts"`
	ETFRows  int           `json:"etf_rows"`
	SCPIRows int           `json:"scpi_rows"`
}
