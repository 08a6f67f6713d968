package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dyike/stockinfo/config"
	"github.com/dyike/stockinfo/internal/display"
	"github.com/dyike/stockinfo/internal/models"
	"github.com/dyike/stockinfo/internal/quote"
	"github.com/dyike/stockinfo/internal/server"
	"github.com/dyike/stockinfo/internal/widget"
)

const version = "v1.0.0"

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	debug      bool

	mgr *config.Manager
	cfg *config.Config
}

// load opens config.json and takes its effective values (file, then .env and
// STOCKINFO_* overrides, then flags).
func (a *app) load() error {
	mgr, err := config.NewManager(a.configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	a.mgr = mgr

	cfg, err := a.effective(mgr.Effective())
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) effective(cfg config.Config) (*config.Config, error) {
	if a.debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "stockinfo",
		Short: "stockinfo - stock quotes and news in your terminal",
		Long: `stockinfo lets you pick a stock ticker, fetches its latest daily quote and
news from the configured endpoint and shows the price change at a glance.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: start interactive mode
			return runInteractiveMode(cmd, a.cfg)
		},
	}

	rootCmd.AddCommand(newQuoteCmd(a))
	rootCmd.AddCommand(newTickersCmd())
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Configuration file path")

	return rootCmd
}

// newQuoteCmd creates the one-shot quote command
func newQuoteCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "quote [SYMBOL]",
		Short: "Fetch the latest quote and news for a ticker",
		Long: `Fetch the latest daily quote and news for one of the supported tickers.
Example: stockinfo quote AAPL`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := ""
			if len(args) == 1 {
				symbol = args[0]
			}
			return runQuoteCommand(cmd, a.cfg, symbol, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw result as JSON")

	return cmd
}

func runQuoteCommand(cmd *cobra.Command, cfg *config.Config, symbol string, asJSON bool) error {
	out := cmd.OutOrStdout()

	w := widget.New(quote.NewClient(cfg))
	if err := w.Select(symbol); err != nil {
		return fmt.Errorf("%w (supported: %s)", err, supportedSymbols())
	}

	if err := w.Submit(cmd.Context()); err != nil {
		display.DisplayError(out, w.State().Error)
		return &reportedError{err: err}
	}

	st := w.State()
	if asJSON {
		return display.WriteJSON(out, st.Result)
	}

	display.NewResultsDisplay(out, st.Symbol).Show(st.Result)
	return nil
}

func newTickersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tickers",
		Short: "List the selectable tickers",
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range models.Tickers {
				fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", t.Symbol, t.Name)
			}
		},
	}
}

// newServeCmd runs the quote backend
func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the quote-and-news endpoint",
		Long: `Serve GET /stock?symbol=SYM backed by the configured quote and news providers.
Edits to the config file reload the providers without a restart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				a.cfg.ServerAddr = addr
			}
			return runServeCommand(cmd.Context(), a)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides server_addr)")

	return cmd
}

func runServeCommand(parent context.Context, a *app) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(a.cfg)
	if err != nil {
		return fmt.Errorf("configure providers: %w", err)
	}

	err = a.mgr.Watch(ctx, func(next config.Config) {
		cfg, err := a.effective(next)
		if err == nil {
			err = srv.Reload(cfg)
		}
		if err != nil {
			DisplayWarning(fmt.Sprintf("config reload ignored: %v", err))
			return
		}
		DisplayInfo("Configuration reloaded")
	})
	if err != nil {
		DisplayWarning(fmt.Sprintf("config hot reload disabled: %v", err))
	}

	return srv.Run(ctx)
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stockinfo %s\n", version)
		},
	}
}

// newConfigCmd creates the config command
func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "Manage stockinfo configuration settings",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(cmd, a)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig(cmd, a.cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Update a configuration value in the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.mgr.Set(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to %s\n", args[0], a.mgr.Path())
			return nil
		},
	})

	return configCmd
}

// showConfig displays the effective configuration
func showConfig(cmd *cobra.Command, a *app) {
	out := cmd.OutOrStdout()
	cfg := a.cfg

	fmt.Fprintln(out, "Current stockinfo configuration:")
	fmt.Fprintln(out, strings.Repeat("═", 40))
	fmt.Fprintf(out, "Config File:          %s\n", a.mgr.Path())
	fmt.Fprintf(out, "Endpoint:             %s\n", cfg.Endpoint)
	if cfg.RequestTimeoutSeconds > 0 {
		fmt.Fprintf(out, "Request Timeout:      %ds\n", cfg.RequestTimeoutSeconds)
	} else {
		fmt.Fprintln(out, "Request Timeout:      HTTP default")
	}
	fmt.Fprintf(out, "Debug Mode:           %t\n", cfg.Debug)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Server Address:       %s\n", cfg.ServerAddr)
	fmt.Fprintf(out, "Allowed Origins:      %s\n", strings.Join(cfg.AllowedOrigins, ", "))
	fmt.Fprintf(out, "Quote Provider:       %s\n", cfg.QuoteProvider)
	fmt.Fprintf(out, "News Provider:        %s\n", cfg.NewsProvider)
	fmt.Fprintf(out, "News Lookback:        %d days\n", cfg.NewsLookbackDays)
	fmt.Fprintf(out, "News Limit:           %d\n", cfg.NewsLimit)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Alpha Vantage Key:    %s\n", configuredMark(cfg.AlphaVantageAPIKey))
	fmt.Fprintf(out, "Finnhub Key:          %s\n", configuredMark(cfg.FinnhubAPIKey))
}

func configuredMark(key string) string {
	if key == "" {
		return "not configured"
	}
	return "configured"
}

// validateConfig checks values and provider credentials
func validateConfig(cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()
	if err := cfg.Validate(); err != nil {
		return err
	}

	var warnings []string
	if cfg.QuoteProvider == config.QuoteProviderAlphaVantage && cfg.AlphaVantageAPIKey == "demo" {
		warnings = append(warnings, "Alpha Vantage is using the demo key; only a few symbols will resolve")
	}
	if cfg.NewsProvider == config.NewsProviderFinnhub && cfg.FinnhubAPIKey == "" {
		warnings = append(warnings, "news provider is finnhub but no Finnhub API key is set")
	}

	for _, w := range warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	fmt.Fprintln(out, "Configuration is valid.")
	return nil
}

func supportedSymbols() string {
	symbols := make([]string, 0, len(models.Tickers))
	for _, t := range models.Tickers {
		symbols = append(symbols, t.Symbol)
	}
	return strings.Join(symbols, ", ")
}
