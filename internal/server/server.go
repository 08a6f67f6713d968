// Package server exposes the quote-and-news endpoint the client consumes.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dyike/stockinfo/config"
	"github.com/dyike/stockinfo/internal/dataflows"
)

type providerSet struct {
	quotes    dataflows.QuoteProvider
	news      dataflows.NewsProvider
	newsLimit int
}

type Server struct {
	addr      string
	origins   []string
	providers atomic.Pointer[providerSet]
}

func New(cfg *config.Config) (*Server, error) {
	s := &Server{
		addr:    cfg.ServerAddr,
		origins: cfg.AllowedOrigins,
	}
	if err := s.Reload(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// NewWithProviders wires explicit providers; news may be nil.
func NewWithProviders(quotes dataflows.QuoteProvider, news dataflows.NewsProvider, newsLimit int) *Server {
	s := &Server{}
	s.providers.Store(&providerSet{quotes: quotes, news: news, newsLimit: newsLimit})
	return s
}

// Reload swaps the upstream providers. In-flight requests keep the old set.
// Address and CORS origins only take effect on restart.
func (s *Server) Reload(cfg *config.Config) error {
	quotes, err := dataflows.NewQuoteProvider(cfg)
	if err != nil {
		return err
	}
	news, err := dataflows.NewNewsProvider(cfg)
	if err != nil {
		return err
	}
	s.providers.Store(&providerSet{quotes: quotes, news: news, newsLimit: cfg.NewsLimit})
	return nil
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if len(s.origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: s.origins,
			AllowMethods: []string{"GET", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type"},
		}))
	}

	r.GET("/stock", s.GetStock)
	r.GET("/tickers", s.GetTickers)
	r.GET("/health", s.GetHealth)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting quote server on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("quote server failed: %w", err)
	case <-ctx.Done():
		log.Printf("Shutting down quote server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
