package models

import (
	"fmt"
	"strings"
)

type Ticker struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Tickers is the selectable universe, in menu order. Display names come from
// the same table so every selectable symbol has a name.
var Tickers = []Ticker{
	{Symbol: "AAPL", Name: "Apple"},
	{Symbol: "GOOG", Name: "Google"},
	{Symbol: "MSFT", Name: "Microsoft"},
	{Symbol: "AMZN", Name: "Amazon"},
	{Symbol: "TSLA", Name: "Tesla"},
}

// Label renders the ticker the way the selector shows it, e.g. "Apple (AAPL)".
func (t Ticker) Label() string {
	return fmt.Sprintf("%s (%s)", t.Name, t.Symbol)
}

// LookupTicker finds a ticker by symbol, ignoring case and surrounding space.
func LookupTicker(symbol string) (Ticker, bool) {
	symbol = NormalizeSymbol(symbol)
	for _, t := range Tickers {
		if t.Symbol == symbol {
			return t, true
		}
	}
	return Ticker{}, false
}

// DisplayName returns the company name for symbol, or the symbol itself when unknown.
func DisplayName(symbol string) string {
	if t, ok := LookupTicker(symbol); ok {
		return t.Name
	}
	return NormalizeSymbol(symbol)
}

func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
