// Package widget holds the picker state: the selected symbol, the last
// successful result and the current error message.
package widget

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dyike/stockinfo/internal/models"
	"github.com/dyike/stockinfo/internal/quote"
)

var (
	// ErrRequestPending is returned by Submit while an earlier Submit is still running.
	ErrRequestPending = errors.New("a request is already in flight")
	ErrUnknownTicker  = errors.New("ticker is not in the selectable list")
)

type Fetcher interface {
	FetchQuoteAndNews(ctx context.Context, symbol string) (*models.StockResult, error)
}

// State is a snapshot. Result and Error are never both set.
type State struct {
	Symbol  string
	Result  *models.StockResult
	Error   string
	Pending bool
}

type Widget struct {
	mu      sync.Mutex
	fetcher Fetcher
	symbol  string
	result  *models.StockResult
	errMsg  string
	pending bool
}

func New(fetcher Fetcher) *Widget {
	return &Widget{fetcher: fetcher}
}

// Select changes the selected symbol. An empty symbol clears the selection.
// The shown result is left alone until the next Submit.
func (w *Widget) Select(symbol string) error {
	if symbol != "" {
		t, ok := models.LookupTicker(symbol)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTicker, symbol)
		}
		symbol = t.Symbol
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.symbol = symbol
	return nil
}

// Submit fetches the selected symbol and replaces the state with the outcome.
// On error the previous result is cleared and the error message is set.
func (w *Widget) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.pending {
		w.mu.Unlock()
		return ErrRequestPending
	}
	w.pending = true
	symbol := w.symbol
	w.mu.Unlock()

	res, err := w.fetcher.FetchQuoteAndNews(ctx, symbol)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = false
	if err != nil {
		w.result = nil
		w.errMsg = quote.UserMessage(err)
		return err
	}
	w.result = res
	w.errMsg = ""
	return nil
}

func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return State{
		Symbol:  w.symbol,
		Result:  w.result,
		Error:   w.errMsg,
		Pending: w.pending,
	}
}
