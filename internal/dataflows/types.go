// Package dataflows provides the upstream market data sources behind the
// quote backend.
package dataflows

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dyike/stockinfo/config"
	"github.com/dyike/stockinfo/internal/models"
)

// ErrQuoteNotFound means the upstream answered but had no daily data for the symbol.
var ErrQuoteNotFound = errors.New("quote not found")

// QuoteProvider returns the most recent daily bar for a symbol.
type QuoteProvider interface {
	Name() string
	GetDailyQuote(ctx context.Context, symbol string) (*models.StockInfo, error)
}

// NewsProvider returns recent company news, newest first, at most limit items (0 = no cap).
type NewsProvider interface {
	Name() string
	GetCompanyNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error)
}

func NewQuoteProvider(cfg *config.Config) (QuoteProvider, error) {
	switch cfg.QuoteProvider {
	case config.QuoteProviderAlphaVantage:
		return NewAlphaVantageClient(cfg.AlphaVantageAPIKey), nil
	case config.QuoteProviderYahoo:
		return NewYahooFinanceClient(), nil
	default:
		return nil, fmt.Errorf("unknown quote provider %q", cfg.QuoteProvider)
	}
}

// NewNewsProvider returns nil when news is disabled.
func NewNewsProvider(cfg *config.Config) (NewsProvider, error) {
	switch cfg.NewsProvider {
	case config.NewsProviderNone, "":
		return nil, nil
	case config.NewsProviderFinnhub:
		if cfg.FinnhubAPIKey == "" {
			return nil, fmt.Errorf("Finnhub API key not configured")
		}
		return NewFinnhubClient(cfg.FinnhubAPIKey, cfg.NewsLookbackDays), nil
	case config.NewsProviderAlphaVantage:
		return NewAlphaVantageClient(cfg.AlphaVantageAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown news provider %q", cfg.NewsProvider)
	}
}

// ValidateSymbol checks if a stock symbol is valid format
func ValidateSymbol(symbol string) error {
	symbol = models.NormalizeSymbol(symbol)
	if len(symbol) == 0 {
		return fmt.Errorf("symbol cannot be empty")
	}
	if len(symbol) > 10 {
		return fmt.Errorf("symbol too long: %s", symbol)
	}
	return nil
}

// compactDate turns 2024-03-15 into 20240315.
func compactDate(isoDate string) string {
	return strings.ReplaceAll(isoDate, "-", "")
}

func capNews(items []models.NewsItem, limit int) []models.NewsItem {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
