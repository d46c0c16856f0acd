package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-marstime/internal/mars"
)

// OrbitModel draws Mars on its orbit, viewed from the north ecliptic pole.
type OrbitModel struct {
	width    int
	height   int
	snapshot mars.Snapshot
}

// NewOrbitModel creates a new orbit view.
func NewOrbitModel() OrbitModel {
	return OrbitModel{}
}

// SetSize updates the viewport size.
func (m OrbitModel) SetSize(width, height int) OrbitModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the view with a new snapshot.
func (m OrbitModel) UpdateData(s mars.Snapshot) OrbitModel {
	m.snapshot = s
	return m
}

// View renders the orbit view.
func (m OrbitModel) View() string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small for orbit view"
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.buildCanvas(), m.renderHUD())
}

// orbitRadius returns the heliocentric distance in units of the semi-major
// axis for true anomaly nu (degrees).
func orbitRadius(e, nu float64) float64 {
	return (1 - e*e) / (1 + e*math.Cos(nu*math.Pi/180))
}

// project maps a heliocentric longitude (degrees) and radius to grid cells.
// Rows are half as tall as columns are wide.
func project(cx, cy int, scale, lon, r float64) (int, int) {
	rad := lon * math.Pi / 180
	x := cx + int(math.Round(scale*r*math.Cos(rad)))
	y := cy - int(math.Round(scale*r*math.Sin(rad)*0.5))
	return x, y
}

func (m OrbitModel) buildCanvas() string {
	canvasH := m.height - 4
	if canvasH < 5 {
		canvasH = 5
	}
	canvasW := m.width

	grid := make([][]rune, canvasH)
	for y := range grid {
		grid[y] = make([]rune, canvasW)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	s := m.snapshot
	cx, cy := canvasW/2, canvasH/2
	scale := math.Min(float64(cx), float64(cy)*2) * 0.8

	// Heliocentric longitude of Mars is Ls + 180; perihelion lies at Ls − ν.
	perihelion := s.Ls - s.TrueAnomaly
	put := func(x, y int, r rune, overwrite bool) {
		if x < 0 || x >= canvasW || y < 0 || y >= canvasH {
			return
		}
		if overwrite || grid[y][x] == ' ' {
			grid[y][x] = r
		}
	}

	for deg := 0.0; deg < 360; deg += 2 {
		x, y := project(cx, cy, scale, perihelion+180+deg, orbitRadius(s.Eccentricity, deg))
		put(x, y, '·', false)
	}

	markers := []struct {
		ls    float64
		glyph rune
	}{
		{0, 'E'}, {90, 'S'}, {180, 'E'}, {270, 'S'},
	}
	for _, mk := range markers {
		x, y := project(cx, cy, scale, mk.ls+180, orbitRadius(s.Eccentricity, mk.ls-perihelion))
		put(x, y, mk.glyph, true)
	}

	put(cx, cy, '☉', true)
	mx, my := project(cx, cy, scale, s.Ls+180, orbitRadius(s.Eccentricity, s.TrueAnomaly))
	put(mx, my, '♂', true)

	sunStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	marsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("202")).Bold(true)
	orbitStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	var b strings.Builder
	for _, row := range grid {
		for _, r := range row {
			switch r {
			case '☉':
				b.WriteString(sunStyle.Render(string(r)))
			case '♂':
				b.WriteString(marsStyle.Render(string(r)))
			case ' ':
				b.WriteRune(r)
			default:
				b.WriteString(orbitStyle.Render(string(r)))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m OrbitModel) renderHUD() string {
	s := m.snapshot
	dist := orbitRadius(s.Eccentricity, s.TrueAnomaly) * marsSemiMajorAU

	line1 := field("Ls", fmt.Sprintf("%.2f°", s.Ls)) +
		field("Season", s.Season.String()) +
		field("True anomaly", fmt.Sprintf("%.2f°", mars.NormalizeAngle(s.TrueAnomaly))) +
		field("Distance", fmt.Sprintf("%.3f AU", dist))
	line2 := field("Mean anomaly", fmt.Sprintf("%.2f°", s.MeanAnomaly)) +
		field("Eq. of center", fmt.Sprintf("%.3f°", s.EquationOfCenter)) +
		field("e", fmt.Sprintf("%.5f", s.Eccentricity))
	legend := "  " + labelStyle.Render("E equinox · S solstice · ☉ Sun · ♂ Mars")
	return line1 + "\n" + line2 + "\n" + legend
}

// marsSemiMajorAU is the semi-major axis of the Mars orbit.
const marsSemiMajorAU = 1.52368
