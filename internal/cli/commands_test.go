package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/dyike/stockinfo/internal/models"
	"github.com/dyike/stockinfo/internal/quote"
	"github.com/dyike/stockinfo/internal/widget"
)

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.json")}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func stockEndpoint(t *testing.T, status int, body string) *int32 {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	t.Setenv("STOCKINFO_ENDPOINT", srv.URL+"/stock")
	return &hits
}

const appleBody = `{"stock_info":{"open":100,"high":110,"low":95,"close":105},"news_info":[{"title":"T","summary":"S","url":"U"}]}`

func TestQuoteCommandRendersResult(t *testing.T) {
	hits := stockEndpoint(t, http.StatusOK, appleBody)

	out, err := executeCmd(t, "quote", "aapl")

	assert.Equal(t, nil, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
	assert.Equal(t, true, strings.Contains(out, "Stock: Apple"))
	assert.Equal(t, true, strings.Contains(out, "Open:  100 USD"))
	assert.Equal(t, true, strings.Contains(out, "Close: 105 USD"))
	assert.Equal(t, true, strings.Contains(out, "▲ 5.00 USD"))
	assert.Equal(t, true, strings.Contains(out, "• T"))
}

func TestQuoteCommandJSON(t *testing.T) {
	stockEndpoint(t, http.StatusOK, appleBody)

	out, err := executeCmd(t, "quote", "AAPL", "--json")

	assert.Equal(t, nil, err)
	var res models.StockResult
	assert.Equal(t, nil, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "105", res.StockInfo.Close.String())
	assert.Equal(t, "U", res.NewsInfo[0].URL)
}

func TestQuoteCommandKeepsAmountText(t *testing.T) {
	stockEndpoint(t, http.StatusOK, `{"stock_info":{"open":"415.2500","high":"420.0000","low":"414.10","close":"418.00"},"news_info":[]}`)

	out, err := executeCmd(t, "quote", "MSFT")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(out, "Open:  415.2500 USD"))
	assert.Equal(t, true, strings.Contains(out, "High:  420.0000 USD"))
	assert.Equal(t, true, strings.Contains(out, "▲ 2.75 USD"))

	out, err = executeCmd(t, "quote", "MSFT", "--json")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(out, `"open": 415.2500`))
	assert.Equal(t, true, strings.Contains(out, `"close": 418.00`))
}

func TestQuoteCommandWithoutSymbol(t *testing.T) {
	hits := stockEndpoint(t, http.StatusOK, appleBody)

	out, err := executeCmd(t, "quote")

	assert.Equal(t, true, errors.Is(err, quote.ErrMissingSelection))
	assert.Equal(t, true, Reported(err))
	assert.Equal(t, true, strings.Contains(out, "Please select a stock symbol"))
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestQuoteCommandServerError(t *testing.T) {
	stockEndpoint(t, http.StatusInternalServerError, `oops`)

	out, err := executeCmd(t, "quote", "MSFT")

	assert.Equal(t, true, errors.Is(err, quote.ErrTransport))
	assert.Equal(t, true, strings.Contains(out, "Error fetching data"))
}

func TestQuoteCommandMalformedPayload(t *testing.T) {
	stockEndpoint(t, http.StatusOK, `{"stock_info":{"open":1,"high":1,"low":1,"close":1}}`)

	out, err := executeCmd(t, "quote", "GOOG")

	assert.Equal(t, true, errors.Is(err, quote.ErrMalformedPayload))
	assert.Equal(t, true, strings.Contains(out, "Invalid response structure from server"))
	assert.Equal(t, false, strings.Contains(out, "Stock Information"))
}

func TestQuoteCommandUnknownTicker(t *testing.T) {
	hits := stockEndpoint(t, http.StatusOK, appleBody)

	_, err := executeCmd(t, "quote", "NFLX")

	assert.Equal(t, true, errors.Is(err, widget.ErrUnknownTicker))
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestTickersCommand(t *testing.T) {
	out, err := executeCmd(t, "tickers")

	assert.Equal(t, nil, err)
	for _, tk := range models.Tickers {
		assert.Equal(t, true, strings.Contains(out, tk.Symbol))
	}
}

func TestConfigSetAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	run := func(args ...string) string {
		cmd := NewRootCmd()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetArgs(append([]string{"--config", path}, args...))
		if err := cmd.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return buf.String()
	}

	run("config", "set", "news_limit", "3")
	out := run("config", "show")

	assert.Equal(t, true, strings.Contains(out, "News Limit:           3"))
	assert.Equal(t, true, strings.Contains(out, path))
}

func TestConfigSetRejectsInvalidValue(t *testing.T) {
	_, err := executeCmd(t, "config", "set", "endpoint", "not a url")
	assert.NotEqual(t, nil, err)
}

func TestTickerOptionsIncludePlaceholder(t *testing.T) {
	options, symbols := tickerOptions()

	assert.Equal(t, placeholderOption, options[0])
	assert.Equal(t, "", symbols[placeholderOption])
	assert.Equal(t, len(models.Tickers)+1, len(options))
	assert.Equal(t, "TSLA", symbols["Tesla (TSLA)"])
}

func TestConfigShowAppliesEnvironmentOverFile(t *testing.T) {
	t.Setenv("STOCKINFO_NEWS_PROVIDER", "alphavantage")

	out, err := executeCmd(t, "config", "show")

	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(out, "News Provider:        alphavantage"))
}
