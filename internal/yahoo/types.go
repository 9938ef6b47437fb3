package yahoo

// ChartResponse represents the v8 chart API response
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *ChartError   `json:"error"`
	} `json:"chart"`
}

// ChartResult holds one symbol's bars
type ChartResult struct {
	Meta struct {
		Symbol           string  `json:"symbol"`
		Currency         string  `json:"currency"`
		ExchangeTimezone string  `json:"exchangeTimezoneName"`
		GMTOffset        int64   `json:"gmtoffset"`
		RegularPrice     float64 `json:"regularMarketPrice"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

// ChartError is the error object Yahoo embeds in failed responses
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
