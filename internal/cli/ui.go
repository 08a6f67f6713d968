package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Padding(0, 1).
		MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6")).
		Italic(true)

	inProgressStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B")).
		Bold(true)

	warningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B"))
)

// DisplayWelcomeBanner shows the welcome banner
func DisplayWelcomeBanner() {
	fmt.Println(titleStyle.Render("Stock Information App"))
	fmt.Println(subtitleStyle.Render("Pick a ticker to see its latest daily quote and news."))
	fmt.Println()
}

// DisplayFetching shows the in-flight message for symbol
func DisplayFetching(symbol string) {
	fmt.Println(inProgressStyle.Render(fmt.Sprintf("Fetching %s...", symbol)))
}

// DisplayInfo shows an info message
func DisplayInfo(message string) {
	fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Render(message))
}

// DisplayWarning shows a warning message
func DisplayWarning(message string) {
	fmt.Println(warningStyle.Render("warning: " + message))
}
