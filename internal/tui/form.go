// Package tui is the terminal form: enter the initial biomass and nickel
// level, run the simulation and read the result.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/phytosim/internal/config"
	"github.com/san-kum/phytosim/internal/content"
	"github.com/san-kum/phytosim/internal/dynamo"
	"github.com/san-kum/phytosim/internal/experiment"
	"github.com/san-kum/phytosim/internal/sim"
	"github.com/san-kum/phytosim/internal/viz"
)

type state int

const (
	stateForm state = iota
	stateRunning
	stateResult
)

type field struct {
	label string
	unit  string
	value float64
}

type resultMsg struct {
	res *sim.Result
	err error
}

type Model struct {
	state  state
	cfg    *config.Config
	fields []field
	cursor int

	editing  bool
	editBuf  string
	inputErr string

	articles []content.Article
	result   *sim.Result
	err      error

	width  int
	height int
}

func New(cfg *config.Config, articles []content.Article) Model {
	return Model{
		state: stateForm,
		cfg:   cfg,
		fields: []field{
			{label: "Initial biomass (A)", unit: "kg/ha", value: cfg.Run.Biomass},
			{label: "Initial nickel (N)", unit: "mg/kg", value: cfg.Run.Contaminant},
		},
		articles: articles,
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case resultMsg:
		m.state = stateResult
		m.result, m.err = msg.res, msg.err
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.state {
	case stateForm:
		return m.formKey(msg)
	case stateResult:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "esc", "r", "enter":
			m.state, m.result, m.err = stateForm, nil, nil
		}
	}
	return m, nil
}

func (m Model) formKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			v, err := strconv.ParseFloat(strings.TrimSpace(m.editBuf), 64)
			if err != nil || !dynamo.Finite(v) {
				m.inputErr = fmt.Sprintf("%q is not a number", m.editBuf)
				return m, nil
			}
			m.fields[m.cursor].value = v
			m.editing, m.editBuf, m.inputErr = false, "", ""
		case "esc":
			m.editing, m.editBuf, m.inputErr = false, "", ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, strconv.FormatFloat(m.fields[m.cursor].value, 'f', -1, 64)
	case "s":
		m.state = stateRunning
		return m, m.run()
	}
	return m, nil
}

// run copies the configuration so that each submission is independent.
func (m Model) run() tea.Cmd {
	cfg := *m.cfg
	cfg.Run.Biomass = m.fields[0].value
	cfg.Run.Contaminant = m.fields[1].value
	return func() tea.Msg {
		res, err := experiment.Run(context.Background(), &cfg)
		return resultMsg{res: res, err: err}
	}
}

func (m Model) View() string {
	switch m.state {
	case stateRunning:
		return m.viewHeader() + "    " + viz.Subtle.Render("Running simulation...") + "\n"
	case stateResult:
		return m.viewResult()
	}
	return m.viewForm()
}

func (m Model) viewHeader() string {
	return "\n\n    " + viz.Title.Render("PHYTOSIM") + "\n    " +
		viz.Subtle.Render("nickel phytoremediation with Alyssum") + "\n    " +
		viz.Subtle.Render("─────────────────────────────────────") + "\n\n"
}

func (m Model) viewForm() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())

	selected := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	value := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Bold(true)
	idle := lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))

	for i, f := range m.fields {
		valStr := fmt.Sprintf("%10s", strconv.FormatFloat(f.value, 'f', -1, 64))
		if m.editing && i == m.cursor {
			valStr = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.cursor {
			fmt.Fprintf(&b, "    %s %s %s %s\n", viz.KeyHint.Render("▸"),
				selected.Render(fmt.Sprintf("%-22s", f.label)), value.Render(valStr), viz.Subtle.Render(f.unit))
		} else {
			fmt.Fprintf(&b, "      %s %s %s\n", idle.Render(fmt.Sprintf("%-22s", f.label)), idle.Render(valStr), idle.Render(f.unit))
		}
	}
	if m.inputErr != "" {
		b.WriteString("\n    " + viz.ErrorText.Render(m.inputErr) + "\n")
	}

	b.WriteString("\n    " + hints("j/k", "select", "enter", "edit", "s", "simulate", "q", "quit") + "\n\n")
	if len(m.articles) > 0 {
		b.WriteString(viz.Articles(m.articles, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewResult() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())
	width := max(m.width-4, 40)
	if m.err != nil {
		b.WriteString(viz.Failure(m.err, width))
	} else if m.result != nil {
		traj := m.result.Trajectory
		b.WriteString("    " + viz.MetricLabel.Render(fmt.Sprintf("%-8s", "nickel")) +
			viz.SparklineChart(traj.Contaminant, width-12, lipgloss.NewStyle().Foreground(viz.NickelColor)) + "\n")
		b.WriteString("    " + viz.MetricLabel.Render(fmt.Sprintf("%-8s", "biomass")) +
			viz.SparklineChart(traj.Biomass, width-12, lipgloss.NewStyle().Foreground(viz.BiomassColor)) + "\n")
		b.WriteString("    " + viz.Separator(width-4) + "\n\n")
		b.WriteString(viz.Result(m.result, width))
	}
	b.WriteString("\n    " + hints("r", "new run", "q", "quit") + "\n")
	return b.String()
}

func hints(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, viz.KeyHint.Render(pairs[i])+viz.Subtle.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

// Run starts the form on the alternate screen and blocks until it exits.
func Run(cfg *config.Config, articles []content.Article) error {
	_, err := tea.NewProgram(New(cfg, articles), tea.WithAltScreen()).Run()
	return err
}
