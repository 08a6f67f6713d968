package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/dyike/stockinfo/config"
	"github.com/dyike/stockinfo/internal/display"
	"github.com/dyike/stockinfo/internal/quote"
	"github.com/dyike/stockinfo/internal/widget"
)

// runInteractiveMode loops: pick a ticker, fetch, show the outcome.
func runInteractiveMode(cmd *cobra.Command, cfg *config.Config) error {
	DisplayWelcomeBanner()

	w := widget.New(quote.NewClient(cfg))

	for {
		symbol, err := PromptForTicker(w.State().Symbol)
		if errors.Is(err, terminal.InterruptErr) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read selection: %w", err)
		}

		if err := w.Select(symbol); err != nil {
			return err
		}
		if symbol != "" {
			DisplayFetching(symbol)
		}

		// Submit blocks until the request settles, so the menu cannot issue
		// a second request meanwhile. The widget also rejects overlaps.
		if err := w.Submit(cmd.Context()); err != nil {
			display.DisplayError(os.Stdout, w.State().Error)
		} else {
			st := w.State()
			fmt.Println()
			display.NewResultsDisplay(os.Stdout, st.Symbol).Show(st.Result)
		}

		fmt.Println(strings.Repeat("-", 60))

		again, err := PromptForRestartOrExit()
		if errors.Is(err, terminal.InterruptErr) || (err == nil && !again) {
			fmt.Println("Goodbye!")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read answer: %w", err)
		}
	}
}
