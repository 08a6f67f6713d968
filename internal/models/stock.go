package models

import "github.com/shopspring/decimal"

// StockInfo is the daily quote for one symbol. Amounts are USD.
type StockInfo struct {
	Symbol string          `json:"symbol,omitempty"`
	Date   string          `json:"date,omitempty"` // YYYYMMDD
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
}

type NewsItem struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

// StockResult is a successful quote-and-news response. Both parts are always present.
type StockResult struct {
	StockInfo StockInfo  `json:"stock_info"`
	NewsInfo  []NewsItem `json:"news_info"`
}
