package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/dyike/stockinfo/config"
	"github.com/dyike/stockinfo/internal/dataflows"
	"github.com/dyike/stockinfo/internal/models"
	"github.com/dyike/stockinfo/internal/quote"
)

type fakeQuotes struct {
	info *models.StockInfo
	err  error
	seen []string
}

func (f *fakeQuotes) Name() string { return "fake" }

func (f *fakeQuotes) GetDailyQuote(ctx context.Context, symbol string) (*models.StockInfo, error) {
	f.seen = append(f.seen, symbol)
	return f.info, f.err
}

type fakeNews struct {
	items []models.NewsItem
	err   error
	limit int
}

func (f *fakeNews) Name() string { return "fake-news" }

func (f *fakeNews) GetCompanyNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	f.limit = limit
	return f.items, f.err
}

func appleInfo() *models.StockInfo {
	return &models.StockInfo{
		Symbol: "AAPL",
		Date:   "20240315",
		Open:   decimal.NewFromInt(100),
		High:   decimal.NewFromInt(110),
		Low:    decimal.NewFromInt(95),
		Close:  decimal.NewFromInt(105),
	}
}

func newTestRouter(s *Server) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return s.Router()
}

func doGet(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetStock_MissingSymbol(t *testing.T) {
	quotes := &fakeQuotes{info: appleInfo()}
	r := newTestRouter(NewWithProviders(quotes, nil, 0))

	w := doGet(r, "/stock")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `{"error":"Stock symbol is required"}`, w.Body.String())
	assert.Equal(t, 0, len(quotes.seen))
}

func TestGetStock_ReturnsQuoteAndNews(t *testing.T) {
	quotes := &fakeQuotes{info: appleInfo()}
	news := &fakeNews{items: []models.NewsItem{{Title: "T", Summary: "S", URL: "U"}}}
	r := newTestRouter(NewWithProviders(quotes, news, 3))

	w := doGet(r, "/stock?symbol=aapl")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"AAPL"}, quotes.seen)
	assert.Equal(t, 3, news.limit)

	var body struct {
		StockInfo map[string]any   `json:"stock_info"`
		NewsInfo  []models.NewsItem `json:"news_info"`
	}
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "20240315", body.StockInfo["date"])
	assert.Equal(t, "105", body.StockInfo["close"])
	assert.Equal(t, 1, len(body.NewsInfo))
	assert.Equal(t, "T", body.NewsInfo[0].Title)
}

func TestGetStock_NewsFailureStillReturnsQuote(t *testing.T) {
	quotes := &fakeQuotes{info: appleInfo()}
	news := &fakeNews{err: errors.New("upstream down")}
	r := newTestRouter(NewWithProviders(quotes, news, 0))

	w := doGet(r, "/stock?symbol=AAPL")

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]json.RawMessage
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "[]", string(body["news_info"]))
}

func TestGetStock_WithoutNewsProviderReturnsEmptyList(t *testing.T) {
	r := newTestRouter(NewWithProviders(&fakeQuotes{info: appleInfo()}, nil, 0))

	w := doGet(r, "/stock?symbol=AAPL")

	var body map[string]json.RawMessage
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "[]", string(body["news_info"]))
}

func TestGetStock_QuoteNotFound(t *testing.T) {
	quotes := &fakeQuotes{err: fmt.Errorf("%w: ZZZZ", dataflows.ErrQuoteNotFound)}
	r := newTestRouter(NewWithProviders(quotes, nil, 0))

	w := doGet(r, "/stock?symbol=zzzz")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, `{"error":"Unable to fetch stock data for 'ZZZZ'"}`, w.Body.String())
}

func TestGetStock_UpstreamFailure(t *testing.T) {
	quotes := &fakeQuotes{err: errors.New("connection reset")}
	r := newTestRouter(NewWithProviders(quotes, nil, 0))

	w := doGet(r, "/stock?symbol=AAPL")

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetHealthAndTickers(t *testing.T) {
	r := newTestRouter(NewWithProviders(&fakeQuotes{}, &fakeNews{}, 0))

	w := doGet(r, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"news":"fake-news","quotes":"fake","status":"ok"}`, w.Body.String())

	w = doGet(r, "/tickers")
	var tickers []models.Ticker
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &tickers))
	assert.Equal(t, len(models.Tickers), len(tickers))
}

func TestReloadSwapsProviders(t *testing.T) {
	cfg := config.Defaults()
	s, err := New(&cfg)
	assert.Equal(t, nil, err)
	assert.Equal(t, "AlphaVantage", s.providers.Load().quotes.Name())

	cfg.QuoteProvider = config.QuoteProviderYahoo
	assert.Equal(t, nil, s.Reload(&cfg))
	assert.Equal(t, "YahooFinance", s.providers.Load().quotes.Name())

	cfg.NewsProvider = config.NewsProviderFinnhub
	assert.NotEqual(t, nil, s.Reload(&cfg))
	assert.Equal(t, "YahooFinance", s.providers.Load().quotes.Name())
}

func TestClientAgainstServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	news := &fakeNews{items: []models.NewsItem{{Title: "T", Summary: "S", URL: "U"}}}
	srv := httptest.NewServer(NewWithProviders(&fakeQuotes{info: appleInfo()}, news, 0).Router())
	defer srv.Close()

	cfg := config.Defaults()
	cfg.Endpoint = srv.URL + "/stock"
	client := quote.NewClient(&cfg)

	res, err := client.FetchQuoteAndNews(context.Background(), "AAPL")
	assert.Equal(t, nil, err)
	assert.Equal(t, "100", res.StockInfo.Open.String())
	assert.Equal(t, "T", res.NewsInfo[0].Title)

	_, err = client.FetchQuoteAndNews(context.Background(), "")
	assert.Equal(t, true, errors.Is(err, quote.ErrMissingSelection))
}
