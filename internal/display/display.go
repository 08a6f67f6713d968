package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dyike/stockinfo/internal/models"
	"github.com/dyike/stockinfo/internal/view"
)

var (
	sectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6"))

	priceStyle = lipgloss.NewStyle().
		Bold(true)

	linkStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8B5CF6")).
		Underline(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	// Keyed by view.Direction: green up, red down, gray flat.
	trendStyles = map[view.Direction]lipgloss.Style{
		view.Increase: lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true),
		view.Decrease: lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		view.Neutral:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Bold(true),
	}
)

const wrapWidth = 75

// ResultsDisplay renders a fetched quote and its news for one symbol.
type ResultsDisplay struct {
	symbol string
	out    io.Writer
}

func NewResultsDisplay(out io.Writer, symbol string) *ResultsDisplay {
	return &ResultsDisplay{
		symbol: models.NormalizeSymbol(symbol),
		out:    out,
	}
}

// Show writes the stock section followed by the news section.
func (d *ResultsDisplay) Show(res *models.StockResult) {
	d.showStockInfo(res.StockInfo)
	d.showNews(res.NewsInfo)
}

func (d *ResultsDisplay) showStockInfo(info models.StockInfo) {
	fmt.Fprintln(d.out, sectionStyle.Render("Stock Information"))
	fmt.Fprintf(d.out, "Stock: %s\n", models.DisplayName(d.symbol))

	// A malformed date is left out rather than shown half-sliced.
	if date, err := view.FormatDate(info.Date); err == nil && date != "" {
		fmt.Fprintf(d.out, "Date:  %s\n", date)
	}

	fmt.Fprintln(d.out, priceStyle.Render(fmt.Sprintf("Open:  %s USD", view.Amount(info.Open))))
	fmt.Fprintln(d.out, priceStyle.Render(fmt.Sprintf("High:  %s USD", view.Amount(info.High))))
	fmt.Fprintln(d.out, priceStyle.Render(fmt.Sprintf("Low:   %s USD", view.Amount(info.Low))))
	fmt.Fprintln(d.out, priceStyle.Render(fmt.Sprintf("Close: %s USD", view.Amount(info.Close))))
	fmt.Fprintln(d.out, ChangeLine(info))
	fmt.Fprintln(d.out)
}

func (d *ResultsDisplay) showNews(news []models.NewsItem) {
	fmt.Fprintln(d.out, sectionStyle.Render("Latest News"))
	if len(news) == 0 {
		fmt.Fprintln(d.out, "   (No news available)")
		return
	}
	for _, article := range news {
		fmt.Fprintf(d.out, "• %s\n", article.Title)
		d.displayWrappedText(article.Summary, "   ")
		if article.URL != "" {
			fmt.Fprintf(d.out, "   Read more: %s\n", linkStyle.Render(article.URL))
		}
		fmt.Fprintln(d.out)
	}
}

// ChangeLine renders "▲ 5.00 USD" in the trend color.
func ChangeLine(info models.StockInfo) string {
	dir := view.Trend(info.Close, info.Open)
	text := fmt.Sprintf("%s %s USD", dir.Arrow(), view.ChangeMagnitude(info.Close, info.Open))
	return trendStyles[dir].Render(text)
}

// displayWrappedText displays text with word wrapping and indentation
func (d *ResultsDisplay) displayWrappedText(text, indent string) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return
	}

	line := indent + words[0]
	for i := 1; i < len(words); i++ {
		if len(line)+1+len(words[i]) > wrapWidth {
			fmt.Fprintln(d.out, line)
			line = indent + words[i]
		} else {
			line += " " + words[i]
		}
	}
	if line != indent {
		fmt.Fprintln(d.out, line)
	}
}

// DisplayError shows the single user-facing error line.
func DisplayError(out io.Writer, message string) {
	fmt.Fprintln(out, errorStyle.Render(message))
}

type jsonStockInfo struct {
	Symbol string      `json:"symbol,omitempty"`
	Date   string      `json:"date,omitempty"`
	Open   json.Number `json:"open"`
	High   json.Number `json:"high"`
	Low    json.Number `json:"low"`
	Close  json.Number `json:"close"`
}

type jsonResult struct {
	StockInfo jsonStockInfo     `json:"stock_info"`
	NewsInfo  []models.NewsItem `json:"news_info"`
}

// WriteJSON prints res in the endpoint's shape. Amounts are JSON numbers
// carrying the precision they were received with.
func WriteJSON(out io.Writer, res *models.StockResult) error {
	info := res.StockInfo
	doc := jsonResult{
		StockInfo: jsonStockInfo{
			Symbol: info.Symbol,
			Date:   info.Date,
			Open:   json.Number(view.Amount(info.Open)),
			High:   json.Number(view.Amount(info.High)),
			Low:    json.Number(view.Amount(info.Low)),
			Close:  json.Number(view.Amount(info.Close)),
		},
		NewsInfo: res.NewsInfo,
	}
	if doc.NewsInfo == nil {
		doc.NewsInfo = []models.NewsItem{}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
