package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/san-kum/phytosim/internal/analysis"
	"github.com/san-kum/phytosim/internal/content"
	"github.com/san-kum/phytosim/internal/report"
	"github.com/san-kum/phytosim/internal/sim"
)

// Interpretation boxes the outcome sentence, green when the threshold is
// reached and amber otherwise.
func Interpretation(o analysis.Outcome, width int) string {
	color := WarnColor
	if o.Reached {
		color = SafeColor
	}
	return resultBox.
		BorderForeground(color).
		Width(width).
		Render(report.Interpret(o))
}

// Failure renders the error message shown in place of a result.
func Failure(err error, width int) string {
	return resultBox.
		BorderForeground(ErrorColor).
		Width(width).
		Render(ErrorText.Render(report.Failure(err)))
}

// Summary lists the headline figures of a run, one per line.
func Summary(res *sim.Result) string {
	s := res.Summary
	rows := [][2]string{
		{"samples", humanize.Comma(int64(s.Samples))},
		{"nickel start", Number(s.InitialContaminant) + " mg/kg"},
		{"nickel end", Number(s.FinalContaminant) + " mg/kg"},
		{"removed", Percent(s.RemovalFraction)},
		{"biomass peak", fmt.Sprintf("%s kg/ha at %.1f y", Number(s.PeakBiomass), s.PeakBiomassTime)},
		{"biomass end", Number(s.FinalBiomass) + " kg/ha"},
	}
	if v, ok := res.Metrics["negative_excursions"]; ok && v > 0 {
		rows = append(rows, [2]string{"negative samples", humanize.Comma(int64(v))})
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(MetricLabel.Render(fmt.Sprintf("%-18s", r[0])))
		sb.WriteString(MetricValue.Render(r[1]))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Result combines interpretation, summary, plots and phase portrait.
func Result(res *sim.Result, width int) string {
	if width <= 0 {
		width = DefaultPlotWidth + 12
	}
	plotWidth := max(width-12, 20)

	var sb strings.Builder
	sb.WriteString(Interpretation(res.Outcome, width-2))
	sb.WriteString("\n\n")
	sb.WriteString(Summary(res))
	sb.WriteString("\n")
	sb.WriteString(Plots(res.Trajectory, res.Outcome.Threshold, plotWidth, DefaultPlotHeight))
	sb.WriteString("\n\n")
	sb.WriteString(Title.Render("phase plane") + Subtle.Render("  biomass →, nickel ↑, . early  o middle  ● late") + "\n")
	sb.WriteString(Phase(res.Trajectory, plotWidth, DefaultPlotHeight+4))
	sb.WriteString("\n")
	return sb.String()
}

// Articles lays the reading list out as cards, side by side when width
// allows and stacked otherwise.
func Articles(articles []content.Article, width int) string {
	if len(articles) == 0 {
		return ""
	}
	cardWidth := 34
	perRow := max(width/(cardWidth+2), 1)

	cards := make([]string, 0, len(articles))
	for _, a := range articles {
		body := cardTitle.Render(a.Title) + "\n" +
			Subtle.Render(a.Description) + "\n" +
			link.Render(a.LinkURL)
		cards = append(cards, card.Width(cardWidth).Render(body))
	}

	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := min(i+perRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
