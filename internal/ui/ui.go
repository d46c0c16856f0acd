// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-marstime/internal/earth"
	"github.com/litescript/ls-marstime/internal/mars"
	"github.com/litescript/ls-marstime/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewClock ViewMode = iota
	ViewOrbit
	ViewSites
)

// TickMsg triggers a fresh snapshot.
type TickMsg time.Time

// Options configures the root model.
type Options struct {
	Engine        *mars.Engine
	Sites         []mars.Observer
	Site          int
	AngularRadius float64
	Earth         *earth.Site
	Refresh       time.Duration
}

// Model is the root Bubble Tea model.
type Model struct {
	engine  *mars.Engine
	sites   []mars.Observer
	site    int
	radius  float64
	earth   *earth.Site
	refresh time.Duration

	viewMode ViewMode
	width    int
	height   int
	ready    bool

	clock  ClockModel
	orbit  OrbitModel
	survey SitesModel

	snapshot mars.Snapshot
	day      *earth.Day
}

// New creates a new root UI model and takes an initial snapshot.
func New(opts Options) Model {
	sites := opts.Sites
	if len(sites) == 0 {
		sites = []mars.Observer{opts.Engine.Observer()}
	}
	site := opts.Site
	if site < 0 || site >= len(sites) {
		site = 0
	}
	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = time.Second
	}

	m := Model{
		engine:  opts.Engine,
		sites:   sites,
		site:    site,
		radius:  opts.AngularRadius,
		earth:   opts.Earth,
		refresh: refresh,
		clock:   NewClockModel(),
		orbit:   NewOrbitModel(),
		survey:  NewSitesModel(),
	}
	m.resample()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "c":
			m.viewMode = ViewClock
		case "2", "o":
			m.viewMode = ViewOrbit
		case "3", "s":
			m.viewMode = ViewSites

		case "tab":
			m.site = (m.site + 1) % len(m.sites)
			m.resample()
		case "shift+tab":
			m.site = (m.site + len(m.sites) - 1) % len(m.sites)
			m.resample()

		case "+", "=":
			m.nudge(1)
		case "-", "_":
			m.nudge(-1)

		case "enter":
			if m.viewMode == ViewSites {
				m.site = m.survey.Cursor()
				m.viewMode = ViewClock
				m.resample()
			}

		default:
			if m.viewMode == ViewSites {
				m.survey, _ = m.survey.Update(msg)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentHeight := msg.Height - 6
		m.clock = m.clock.SetSize(msg.Width, contentHeight)
		m.orbit = m.orbit.SetSize(msg.Width, contentHeight)
		m.survey = m.survey.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, m.tickCmd())
		m.resample()
	}

	return m, tea.Batch(cmds...)
}

// resample takes a new snapshot for the selected site and pushes it to the
// views. With a fixed time source the instant does not move.
func (m *Model) resample() {
	e := m.current()
	m.snapshot = e.Snapshot(m.radius)

	m.day = nil
	if m.earth != nil {
		d := earth.DayOf(*m.earth, m.snapshot.Earth)
		m.day = &d
	}

	m.clock = m.clock.UpdateData(m.snapshot, m.day)
	m.orbit = m.orbit.UpdateData(m.snapshot)
	m.survey = m.survey.UpdateData(m.engine.At(m.snapshot.Earth), m.sites, m.site, m.radius)
}

func (m Model) current() *mars.Engine {
	return m.engine.For(m.sites[m.site])
}

// nudge moves a fixed-time engine by sols. A live engine ignores it.
func (m *Model) nudge(sols int) {
	fixed, ok := m.engine.TimeSource().(mars.FixedTimeSource)
	if !ok {
		return
	}
	step := time.Duration(float64(sols) * mars.SolSeconds * float64(time.Second))
	m.engine = m.engine.At(fixed.T.Add(step))
	m.resample()
}

// Live reports whether the model follows the host clock.
func (m Model) Live() bool {
	_, fixed := m.engine.TimeSource().(mars.FixedTimeSource)
	return !fixed
}

// Snapshot returns the most recent snapshot.
func (m Model) Snapshot() mars.Snapshot {
	return m.snapshot
}

// Site returns the selected observer.
func (m Model) Site() mars.Observer {
	return m.sites[m.site]
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewClock:
		content = m.clock.View()
	case ViewOrbit:
		content = m.orbit.View()
	case ViewSites:
		content = m.survey.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(renderGradientText("ls-marstime"))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  Mars Coordinated Time · v%s", version.Version)))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

// renderGradientText colors each rune along a rust to sand gradient.
func renderGradientText(text string) string {
	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(gradientColor(i, len(runes))))
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// gradientColor returns a hex color for position col of width.
// Rust (#B7410E) -> orange (#E2725B) -> sand (#E8C39E).
func gradientColor(col, width int) string {
	if width <= 1 {
		return "#B7410E"
	}
	x := float64(col) / float64(width-1)

	var r, g, b float64
	if x < 0.5 {
		t := x / 0.5
		r = 183 + t*(226-183)
		g = 65 + t*(114-65)
		b = 14 + t*(91-14)
	} else {
		t := (x - 0.5) / 0.5
		r = 226 + t*(232-226)
		g = 114 + t*(195-114)
		b = 91 + t*(158-91)
	}

	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return int(v)
	}
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Clock", "[2] Orbit", "[3] Sites"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E2725B")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E2725B"))

	var status string
	if m.Live() {
		status = accentStyle.Render("● live")
	} else {
		status = accentStyle.Render("■ fixed") + dimStyle.Render(" "+m.snapshot.Earth.UTC().Format(time.RFC3339))
	}

	help := "tab: site | 1-3: view | q: quit"
	if !m.Live() {
		help = "+/-: sol | " + help
	}
	if m.viewMode == ViewSites {
		help = "↑↓: select | enter: open | " + help
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help)
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
