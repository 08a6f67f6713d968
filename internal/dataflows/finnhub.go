package dataflows

import (
	"context"
	"fmt"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"github.com/dyike/stockinfo/internal/models"
)

// FinnhubClient reads company news from Finnhub.
type FinnhubClient struct {
	client       *finnhub.DefaultApiService
	lookbackDays int
	now          func() time.Time
}

func NewFinnhubClient(apiKey string, lookbackDays int) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	if lookbackDays < 1 {
		lookbackDays = 7
	}
	return &FinnhubClient{
		client:       finnhub.NewAPIClient(cfg).DefaultApi,
		lookbackDays: lookbackDays,
		now:          time.Now,
	}
}

func (fc *FinnhubClient) Name() string {
	return "Finnhub"
}

// GetCompanyNews gets news articles for a specific company over the lookback window
func (fc *FinnhubClient) GetCompanyNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = models.NormalizeSymbol(symbol)

	to := fc.now()
	from := to.AddDate(0, 0, -fc.lookbackDays)

	res, _, err := fc.client.CompanyNews(ctx).
		Symbol(symbol).
		From(from.Format("2006-01-02")).
		To(to.Format("2006-01-02")).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news for %s: %w", symbol, err)
	}

	return capNews(convertFinnhubNews(res), limit), nil
}

func convertFinnhubNews(res []finnhub.CompanyNews) []models.NewsItem {
	items := make([]models.NewsItem, 0, len(res))
	for _, news := range res {
		var item models.NewsItem
		if news.Headline != nil {
			item.Title = *news.Headline
		}
		if news.Summary != nil {
			item.Summary = *news.Summary
		}
		if news.Url != nil {
			item.URL = *news.Url
		}
		items = append(items, item)
	}
	return items
}
