package cli

import (
	"github.com/AlecAivazis/survey/v2"

	"github.com/dyike/stockinfo/internal/models"
)

// placeholderOption stands for "nothing selected" in the ticker menu.
const placeholderOption = "Select Stock Symbol"

// tickerOptions returns the menu labels, placeholder first, and a label-to-symbol map.
func tickerOptions() ([]string, map[string]string) {
	options := []string{placeholderOption}
	symbols := map[string]string{placeholderOption: ""}
	for _, t := range models.Tickers {
		options = append(options, t.Label())
		symbols[t.Label()] = t.Symbol
	}
	return options, symbols
}

// PromptForTicker asks the user to pick a ticker. current preselects the
// previous choice; the placeholder maps to an empty symbol.
func PromptForTicker(current string) (string, error) {
	options, symbols := tickerOptions()

	def := placeholderOption
	if t, ok := models.LookupTicker(current); ok {
		def = t.Label()
	}

	var selected string
	prompt := &survey.Select{
		Message: "Stock symbol:",
		Options: options,
		Default: def,
		Help:    "Pick a company and press Enter to fetch its latest quote and news.",
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return symbols[selected], nil
}

// PromptForRestartOrExit asks whether to fetch another quote
func PromptForRestartOrExit() (bool, error) {
	again := true
	prompt := &survey.Confirm{
		Message: "Fetch another quote?",
		Default: true,
	}

	err := survey.AskOne(prompt, &again)
	return again, err
}
