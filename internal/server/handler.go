package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dyike/stockinfo/internal/dataflows"
	"github.com/dyike/stockinfo/internal/models"
)

type errorResponse struct {
	Error string `json:"error"`
}

// GetStock answers GET /stock?symbol=SYM with {stock_info, news_info}.
func (s *Server) GetStock(c *gin.Context) {
	symbol := models.NormalizeSymbol(c.Query("symbol"))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Stock symbol is required"})
		return
	}

	p := s.providers.Load()
	ctx := c.Request.Context()

	info, err := p.quotes.GetDailyQuote(ctx, symbol)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, dataflows.ErrQuoteNotFound) {
			status = http.StatusNotFound
		}
		slog.Error("error fetching quote", "symbol", symbol, "provider", p.quotes.Name(), "error", err)
		c.JSON(status, errorResponse{Error: fmt.Sprintf("Unable to fetch stock data for '%s'", symbol)})
		return
	}

	news := []models.NewsItem{}
	if p.news != nil {
		items, err := p.news.GetCompanyNews(ctx, symbol, p.newsLimit)
		if err != nil {
			slog.Warn("error fetching news, returning quote only", "symbol", symbol, "provider", p.news.Name(), "error", err)
		} else if items != nil {
			news = items
		}
	}

	c.JSON(http.StatusOK, models.StockResult{
		StockInfo: *info,
		NewsInfo:  news,
	})
}

func (s *Server) GetHealth(c *gin.Context) {
	p := s.providers.Load()
	newsName := "none"
	if p.news != nil {
		newsName = p.news.Name()
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"quotes": p.quotes.Name(),
		"news":   newsName,
	})
}

func (s *Server) GetTickers(c *gin.Context) {
	c.JSON(http.StatusOK, models.Tickers)
}
