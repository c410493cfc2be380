package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Series colors match the web charts: brown for nickel, green for biomass.
var (
	NickelColor  = lipgloss.Color("#8C564B")
	BiomassColor = lipgloss.Color("#2CA02C")
	SafeColor    = lipgloss.Color("#00cc66")
	WarnColor    = lipgloss.Color("#ffaa00")
	ErrorColor   = lipgloss.Color("#ff4444")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00cccc"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00aaaa")).
		Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	resultBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	card = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	cardTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff"))

	link = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5f87ff")).
		Underline(true)
)

// SparklineChart renders values as a single row of block characters,
// sampling every len(values)/width-th value.
func SparklineChart(values []float64, width int, style lipgloss.Style) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := max(len(values)/width, 1)

	var sb strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		sb.WriteRune(chars[idx])
	}
	return style.Render(sb.String())
}

func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return Subtle.Render(left + " ◆ " + right)
}
