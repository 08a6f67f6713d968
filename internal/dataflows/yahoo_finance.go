package dataflows

import (
	"context"
	"fmt"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"

	"github.com/dyike/stockinfo/internal/models"
)

// YahooFinanceClient reads the regular-market session from Yahoo Finance.
type YahooFinanceClient struct {
	get func(symbol string) (*finance.Quote, error)
}

func NewYahooFinanceClient() *YahooFinanceClient {
	return &YahooFinanceClient{get: quote.Get}
}

func (yf *YahooFinanceClient) Name() string {
	return "YahooFinance"
}

// GetDailyQuote gets current session data for a symbol. The library call is
// not context aware; ctx is only checked before the request.
func (yf *YahooFinanceClient) GetDailyQuote(ctx context.Context, symbol string) (*models.StockInfo, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	symbol = models.NormalizeSymbol(symbol)

	q, err := yf.get(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}
	if q == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, symbol)
	}
	return yahooToStockInfo(symbol, q), nil
}

func yahooToStockInfo(symbol string, q *finance.Quote) *models.StockInfo {
	info := &models.StockInfo{
		Symbol: symbol,
		Open:   decimal.NewFromFloat(q.RegularMarketOpen),
		High:   decimal.NewFromFloat(q.RegularMarketDayHigh),
		Low:    decimal.NewFromFloat(q.RegularMarketDayLow),
		Close:  decimal.NewFromFloat(q.RegularMarketPrice),
	}
	if q.RegularMarketTime > 0 {
		info.Date = time.Unix(int64(q.RegularMarketTime), 0).UTC().Format("20060102")
	}
	return info
}
