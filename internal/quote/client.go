// Package quote fetches a stock quote together with its news from the
// configured endpoint and classifies the outcome.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dyike/stockinfo/config"
	"github.com/dyike/stockinfo/internal/models"
)

// Client issues exactly one GET per FetchQuoteAndNews call. It never retries.
type Client struct {
	client   *resty.Client
	endpoint string
	debug    bool
}

// NewClient builds a client for cfg.Endpoint. A zero timeout keeps the HTTP default.
func NewClient(cfg *config.Config) *Client {
	client := resty.New()
	client.SetRetryCount(0)
	client.SetHeader("Accept", "application/json")
	if cfg.RequestTimeoutSeconds > 0 {
		client.SetTimeout(time.Duration(cfg.RequestTimeoutSeconds) * time.Second)
	}

	return &Client{
		client:   client,
		endpoint: cfg.Endpoint,
		debug:    cfg.Debug,
	}
}

// payload mirrors the wire shape; pointer and slice nil-ness record presence.
type payload struct {
	StockInfo *models.StockInfo `json:"stock_info"`
	NewsInfo  []models.NewsItem `json:"news_info"`
}

// FetchQuoteAndNews queries the endpoint for symbol. Errors are *FetchError.
func (c *Client) FetchQuoteAndNews(ctx context.Context, symbol string) (*models.StockResult, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, ErrMissingSelection
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("symbol", symbol).
		Get(c.endpoint)
	if err != nil {
		c.logf("fetch %s failed: %v", symbol, err)
		return nil, &FetchError{Kind: TransportOrServerError, Err: err}
	}

	if !resp.IsSuccess() {
		c.logf("fetch %s: server returned %d", symbol, resp.StatusCode())
		return nil, &FetchError{
			Kind:   TransportOrServerError,
			Status: resp.StatusCode(),
			Err:    fmt.Errorf("unexpected status %s", resp.Status()),
		}
	}

	var body payload
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		c.logf("fetch %s: decode body: %v", symbol, err)
		return nil, &FetchError{Kind: TransportOrServerError, Status: resp.StatusCode(), Err: err}
	}

	if body.StockInfo == nil || body.NewsInfo == nil {
		c.logf("fetch %s: stock_info present=%t news_info present=%t", symbol, body.StockInfo != nil, body.NewsInfo != nil)
		return nil, &FetchError{Kind: MalformedPayload, Status: resp.StatusCode()}
	}

	return &models.StockResult{
		StockInfo: *body.StockInfo,
		NewsInfo:  body.NewsInfo,
	}, nil
}

func (c *Client) logf(format string, args ...any) {
	if c.debug {
		log.Printf("[quote] "+format, args...)
	}
}
