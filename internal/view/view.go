// Package view derives display attributes from a fetched quote.
package view

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the close-versus-open movement of a quote.
type Direction int

const (
	Neutral Direction = iota
	Increase
	Decrease
)

func (d Direction) String() string {
	switch d {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	default:
		return "neutral"
	}
}

// Arrow returns the glyph shown next to the change amount.
func (d Direction) Arrow() string {
	switch d {
	case Increase:
		return "▲"
	case Decrease:
		return "▼"
	default:
		return "→"
	}
}

// Trend compares close against open. Equal prices are Neutral.
func Trend(close, open decimal.Decimal) Direction {
	switch close.Cmp(open) {
	case 1:
		return Increase
	case -1:
		return Decrease
	default:
		return Neutral
	}
}

func TrendColor(close, open decimal.Decimal) string {
	return Trend(close, open).String()
}

func TrendArrow(close, open decimal.Decimal) string {
	return Trend(close, open).Arrow()
}

// ChangeMagnitude is |round(close-open, 2)| with exactly two decimals.
func ChangeMagnitude(close, open decimal.Decimal) string {
	return close.Sub(open).Round(2).Abs().StringFixed(2)
}

// Amount renders d with the number of decimals it was received with, so
// "420.0000" stays "420.0000".
func Amount(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

var ErrInvalidDate = errors.New("date must be an 8-digit YYYYMMDD calendar date")

// FormatDate turns YYYYMMDD into YYYY-MM-DD. An empty input yields "".
func FormatDate(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	if len(raw) != 8 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	t, err := time.Parse("20060102", raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return t.Format("2006-01-02"), nil
}
