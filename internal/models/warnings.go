package models

// WarningCode categorizes warnings by subsystem.
// W1xxx = holdings, W2xxx = market data, W3xxx = persistence.
type WarningCode string

const (
	WarnHoldingsDefaulted  WarningCode = "W1001" // category empty in storage, built-in defaults used
	WarnLinesDropped       WarningCode = "W1002" // malformed editor lines skipped during parse
	WarnNoPriceData        WarningCode = "W2001" // provider returned nothing usable for a ticker
	WarnPriceFetchFailed   WarningCode = "W2002" // provider error or timeout for a ticker
	WarnHoldingsLoadFailed WarningCode = "W3001" // storage unreachable, built-in defaults used
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
