package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	QuoteProviderAlphaVantage = "alphavantage"
	QuoteProviderYahoo        = "yahoo"

	NewsProviderNone         = "none"
	NewsProviderFinnhub      = "finnhub"
	NewsProviderAlphaVantage = "alphavantage"
)

type Config struct {
	// Endpoint is the quote-and-news URL the client queries with ?symbol=.
	Endpoint string `json:"endpoint"`

	// RequestTimeoutSeconds of 0 leaves the HTTP stack default in place.
	RequestTimeoutSeconds int  `json:"request_timeout_seconds"`
	Debug                 bool `json:"debug"`

	// Backend (stockinfo serve)
	ServerAddr       string   `json:"server_addr"`
	AllowedOrigins   []string `json:"allowed_origins"`
	QuoteProvider    string   `json:"quote_provider"`
	NewsProvider     string   `json:"news_provider"`
	NewsLookbackDays int      `json:"news_lookback_days"`
	NewsLimit        int      `json:"news_limit"`

	// Market data API keys
	AlphaVantageAPIKey string `json:"alphavantage_api_key"`
	FinnhubAPIKey      string `json:"finnhub_api_key"`
}

// Defaults returns the built-in configuration without consulting the environment.
func Defaults() Config {
	return Config{
		Endpoint:              "http://localhost:8080/stock",
		RequestTimeoutSeconds: 0,
		Debug:                 false,

		ServerAddr:       ":8080",
		AllowedOrigins:   []string{"http://localhost:3000"},
		QuoteProvider:    QuoteProviderAlphaVantage,
		NewsProvider:     NewsProviderNone,
		NewsLookbackDays: 7,
		NewsLimit:        5,

		AlphaVantageAPIKey: "demo",
	}
}

// clone copies c so the origins slice is not shared.
func (c Config) clone() Config {
	c.AllowedOrigins = append([]string(nil), c.AllowedOrigins...)
	return c
}

// LoadFromEnv reads a .env file if present and applies STOCKINFO_* overrides.
func (c *Config) LoadFromEnv() {
	_ = godotenv.Load()

	if val := os.Getenv("STOCKINFO_ENDPOINT"); val != "" {
		c.Endpoint = val
	}
	if val := os.Getenv("STOCKINFO_TIMEOUT"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.RequestTimeoutSeconds = v
		}
	}
	if val := os.Getenv("STOCKINFO_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}

	if val := os.Getenv("STOCKINFO_ADDR"); val != "" {
		c.ServerAddr = val
	}
	if val := os.Getenv("STOCKINFO_ALLOWED_ORIGINS"); val != "" {
		c.AllowedOrigins = splitList(val)
	}
	if val := os.Getenv("STOCKINFO_QUOTE_PROVIDER"); val != "" {
		c.QuoteProvider = strings.ToLower(val)
	}
	if val := os.Getenv("STOCKINFO_NEWS_PROVIDER"); val != "" {
		c.NewsProvider = strings.ToLower(val)
	}
	if val := os.Getenv("STOCKINFO_NEWS_LOOKBACK_DAYS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.NewsLookbackDays = v
		}
	}
	if val := os.Getenv("STOCKINFO_NEWS_LIMIT"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.NewsLimit = v
		}
	}

	if val := os.Getenv("ALPHAVANTAGE_API_KEY"); val != "" {
		c.AlphaVantageAPIKey = val
	}
	if val := os.Getenv("STOCKINFO_FINNHUB_API_KEY"); val != "" {
		c.FinnhubAPIKey = val
	}
}

func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint must be an http or https URL, got %q", c.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint %q has no host", c.Endpoint)
	}
	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}

	switch c.QuoteProvider {
	case QuoteProviderAlphaVantage, QuoteProviderYahoo:
	default:
		return fmt.Errorf("unknown quote provider %q", c.QuoteProvider)
	}
	switch c.NewsProvider {
	case NewsProviderNone, NewsProviderFinnhub, NewsProviderAlphaVantage:
	default:
		return fmt.Errorf("unknown news provider %q", c.NewsProvider)
	}
	if c.NewsLookbackDays < 1 {
		return fmt.Errorf("news lookback must be at least one day")
	}
	if c.NewsLimit < 0 {
		return fmt.Errorf("news limit must not be negative")
	}
	return nil
}

// Set assigns a single setting by its JSON key. The result is not validated.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "endpoint":
		c.Endpoint = value
	case "request_timeout_seconds":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.RequestTimeoutSeconds = v
	case "debug":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.Debug = v
	case "server_addr":
		c.ServerAddr = value
	case "allowed_origins":
		c.AllowedOrigins = splitList(value)
	case "quote_provider":
		c.QuoteProvider = strings.ToLower(value)
	case "news_provider":
		c.NewsProvider = strings.ToLower(value)
	case "news_lookback_days":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.NewsLookbackDays = v
	case "news_limit":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.NewsLimit = v
	case "alphavantage_api_key":
		c.AlphaVantageAPIKey = value
	case "finnhub_api_key":
		c.FinnhubAPIKey = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
