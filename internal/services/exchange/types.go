package exchange

import (
	"context"
	"time"
)

// Supported cryptocurrencies.
const (
	CurrencyBTC  = "BTC"
	CurrencyETH  = "ETH"
	CurrencyDOGE = "DOGE"
	CurrencySOL  = "SOL"
)

// RateTTL is how long a fetched rate stays fresh. Expired entries are
// evicted and refetched on the next lookup.
const RateTTL = 300 * time.Second

// Rate is a crypto-to-USD exchange rate snapshot.
type Rate struct {
	Currency  string    `json:"currency"`
	RateToUSD float64   `json:"rate_to_usd"`
	FetchedAt time.Time `json:"fetched_at"`
	Cached    bool      `json:"cached"`
}

// Fetcher retrieves the current USD rate for a currency from the upstream
// pricing provider.
type Fetcher interface {
	FetchRate(ctx context.Context, currency string) (float64, error)
}

// Service is the cached rate lookup and conversion interface.
type Service interface {
	GetRate(ctx context.Context, currency string, useCache bool) (Rate, error)
	Convert(amount, rateToUSD float64) (float64, error)
}
