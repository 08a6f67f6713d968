package models

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestEveryTickerHasAName(t *testing.T) {
	seen := map[string]bool{}
	for _, tk := range Tickers {
		assert.NotEqual(t, "", tk.Name)
		assert.Equal(t, false, seen[tk.Symbol])
		seen[tk.Symbol] = true
	}
	assert.Equal(t, true, seen["TSLA"])
}

func TestLookupTicker(t *testing.T) {
	tk, ok := LookupTicker(" aapl ")
	assert.Equal(t, true, ok)
	assert.Equal(t, "Apple (AAPL)", tk.Label())

	_, ok = LookupTicker("NFLX")
	assert.Equal(t, false, ok)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Microsoft", DisplayName("MSFT"))
	assert.Equal(t, "NFLX", DisplayName("nflx"))
}
