// Package market is the repository layer between the screens and the
// Alpha Vantage client. It caches what is worth caching, collapses
// duplicate in-flight requests and turns raw responses into typed records.
package market

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"quotedesk/internal/alphavantage"
)

// API is the subset of the Alpha Vantage client the repository calls.
//
//go:generate mockgen -package=market_test -destination=mock_api_test.go -source=market.go API
type API interface {
	TopGainersLosers(ctx context.Context) (*alphavantage.Movers, error)
	Overview(ctx context.Context, symbol string) (*alphavantage.Overview, error)
	TimeSeriesDaily(ctx context.Context, symbol string) (json.RawMessage, error)
	SymbolSearch(ctx context.Context, keywords string) (json.RawMessage, error)
	GlobalQuote(ctx context.Context, symbol string) (json.RawMessage, error)
}

// Overview is the company fundamentals record.
type Overview = alphavantage.Overview

// Movers is the top gainers, losers and most active report.
type Movers = alphavantage.Movers

// Mover is a single row of the movers report.
type Mover = alphavantage.Mover

// PricePoint is one trading day of the daily series.
type PricePoint struct {
	Date   time.Time       `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// SearchMatch is a single symbol search result.
type SearchMatch struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Region      string `json:"region"`
	MarketOpen  string `json:"market_open"`
	MarketClose string `json:"market_close"`
	Timezone    string `json:"timezone"`
	Currency    string `json:"currency"`
	MatchScore  string `json:"match_score"`
}

// NotAvailable is the price reported when a quote lacks a price field.
const NotAvailable = "N/A"

// MinQueryLength is the shortest trimmed query sent to the search endpoint.
const MinQueryLength = 2
