package alphavantage

// TimeSeriesDailyResponse represents the AlphaVantage TIME_SERIES_DAILY response.
// Throttling and bad symbols come back as 200 with Note, Information or Error Message set.
type TimeSeriesDailyResponse struct {
	MetaData     map[string]string `json:"Meta Data"`
	TimeSeries   map[string]OHLCV  `json:"Time Series (Daily)"`
	ErrorMessage string            `json:"Error Message"`
	Note         string            `json:"Note"`
	Information  string            `json:"Information"`
}

// OHLCV is one day of a daily series; AlphaVantage sends numbers as strings
type OHLCV struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// apiError returns the first error-like field AlphaVantage populated
func (r TimeSeriesDailyResponse) apiError() string {
	switch {
	case r.ErrorMessage != "":
		return r.ErrorMessage
	case r.Note != "":
		return r.Note
	case r.Information != "" && len(r.TimeSeries) == 0:
		return r.Information
	}
	return ""
}
