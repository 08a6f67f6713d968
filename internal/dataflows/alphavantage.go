package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/dyike/stockinfo/internal/models"
)

const alphaVantageBaseURL = "https://www.alphavantage.co"

// AlphaVantageClient serves both daily quotes and news sentiment feeds.
type AlphaVantageClient struct {
	client *resty.Client
	apiKey string
}

func NewAlphaVantageClient(apiKey string) *AlphaVantageClient {
	client := resty.New()
	client.SetBaseURL(alphaVantageBaseURL)
	client.SetTimeout(30 * time.Second)

	return &AlphaVantageClient{
		client: client,
		apiKey: apiKey,
	}
}

func (c *AlphaVantageClient) Name() string {
	return "AlphaVantage"
}

type avDailyResponse struct {
	TimeSeries   map[string]avDailyBar `json:"Time Series (Daily)"`
	ErrorMessage string                `json:"Error Message"`
	Note         string                `json:"Note"`
	Information  string                `json:"Information"`
}

type avDailyBar struct {
	Open  decimal.Decimal `json:"1. open"`
	High  decimal.Decimal `json:"2. high"`
	Low   decimal.Decimal `json:"3. low"`
	Close decimal.Decimal `json:"4. close"`
}

// GetDailyQuote returns the most recent trading day from TIME_SERIES_DAILY.
func (c *AlphaVantageClient) GetDailyQuote(ctx context.Context, symbol string) (*models.StockInfo, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = models.NormalizeSymbol(symbol)

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "TIME_SERIES_DAILY",
			"symbol":   symbol,
			"apikey":   c.apiKey,
		}).
		Get("/query")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily series for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
	}

	var raw avDailyResponse
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse daily series: %w", err)
	}

	if len(raw.TimeSeries) == 0 {
		reason := firstNonEmpty(raw.ErrorMessage, raw.Note, raw.Information, "no daily series in response")
		return nil, fmt.Errorf("%w: %s: %s", ErrQuoteNotFound, symbol, reason)
	}

	latest := latestDate(raw.TimeSeries)
	bar := raw.TimeSeries[latest]
	return &models.StockInfo{
		Symbol: symbol,
		Date:   compactDate(latest),
		Open:   bar.Open,
		High:   bar.High,
		Low:    bar.Low,
		Close:  bar.Close,
	}, nil
}

type avNewsResponse struct {
	Feed        []avFeedItem `json:"feed"`
	Information string       `json:"Information"`
}

type avFeedItem struct {
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	URL           string `json:"url"`
	TimePublished string `json:"time_published"`
}

// GetCompanyNews reads NEWS_SENTIMENT filtered to one ticker.
func (c *AlphaVantageClient) GetCompanyNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = models.NormalizeSymbol(symbol)

	params := map[string]string{
		"function": "NEWS_SENTIMENT",
		"tickers":  symbol,
		"sort":     "LATEST",
		"apikey":   c.apiKey,
	}
	if limit > 0 {
		params["limit"] = fmt.Sprintf("%d", limit)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/query")
	if err != nil {
		return nil, fmt.Errorf("alphavantage news fetch: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
	}

	var raw avNewsResponse
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("alphavantage news decode: %w", err)
	}
	if raw.Feed == nil && raw.Information != "" {
		return nil, fmt.Errorf("alphavantage news: %s", raw.Information)
	}

	items := make([]models.NewsItem, 0, len(raw.Feed))
	for _, item := range raw.Feed {
		items = append(items, models.NewsItem{
			Title:   item.Title,
			Summary: item.Summary,
			URL:     item.URL,
		})
	}
	return capNews(items, limit), nil
}

func latestDate(series map[string]avDailyBar) string {
	dates := make([]string, 0, len(series))
	for d := range series {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates[len(dates)-1]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
