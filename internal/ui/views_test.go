package ui

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/litescript/ls-marstime/internal/earth"
	"github.com/litescript/ls-marstime/internal/mars"
)

func testSnapshot(obs mars.Observer) mars.Snapshot {
	return mars.New(mars.WithTime(landing), mars.WithObserver(obs)).Snapshot(0)
}

func TestRenderDaylightBar(t *testing.T) {
	m := NewClockModel().UpdateData(testSnapshot(testSites[0]), nil)

	bar := m.renderDaylightBar(48)
	if !strings.HasPrefix(bar, "[") || !strings.HasSuffix(bar, "]") {
		t.Fatalf("bar should have brackets, got %q", bar)
	}

	day := strings.Count(bar, "█")
	night := strings.Count(bar, "░")
	marker := strings.Count(bar, "│")
	if day+night+marker != 48 || marker != 1 {
		t.Errorf("cells day=%d night=%d marker=%d", day, night, marker)
	}
	// about half the sol is daylight at the equator
	if day < 20 || day > 28 {
		t.Errorf("day cells = %d, want about 24", day)
	}
}

func TestRenderDaylightBarPolar(t *testing.T) {
	at := mars.New().TimeScale().Time(1030)
	north := mars.New(mars.WithTime(at), mars.WithObserver(mars.Observer{LatNorthDeg: 85})).Snapshot(0)
	south := mars.New(mars.WithTime(at), mars.WithObserver(mars.Observer{LatNorthDeg: -85})).Snapshot(0)

	if bar := NewClockModel().UpdateData(north, nil).renderDaylightBar(20); strings.Count(bar, "░") != 0 {
		t.Errorf("polar day bar has night cells: %q", bar)
	}
	if bar := NewClockModel().UpdateData(south, nil).renderDaylightBar(20); strings.Count(bar, "█") != 0 {
		t.Errorf("polar night bar has day cells: %q", bar)
	}

	view := NewClockModel().SetSize(80, 30).UpdateData(north, nil).View()
	if !strings.Contains(view, "Polar day") {
		t.Errorf("clock view should mention polar day:\n%s", view)
	}
}

func TestClockViewEarthPanel(t *testing.T) {
	s := testSnapshot(testSites[0])
	day := earth.DayOf(earth.Site{Lat: 78.22, Lon: 15.65}, s.Earth)

	view := NewClockModel().SetSize(80, 30).UpdateData(s, &day).View()
	if !strings.Contains(view, "Earth · 78.22, 15.65") {
		t.Errorf("missing earth panel:\n%s", view)
	}
	if !strings.Contains(view, fmt.Sprintf("el %6.2f°", day.Sun.ElDeg)) {
		t.Errorf("missing earth sun elevation:\n%s", view)
	}

	none := NewClockModel().SetSize(80, 30).UpdateData(s, nil).View()
	if strings.Contains(none, "Earth ·") {
		t.Error("earth panel shown without a day")
	}
}

func TestOrbitRadius(t *testing.T) {
	e := 0.0934
	if got := orbitRadius(e, 0); math.Abs(got-(1-e)) > 1e-12 {
		t.Errorf("perihelion = %v, want %v", got, 1-e)
	}
	if got := orbitRadius(e, 180); math.Abs(got-(1+e)) > 1e-12 {
		t.Errorf("aphelion = %v, want %v", got, 1+e)
	}
}

func TestOrbitCanvas(t *testing.T) {
	m := NewOrbitModel().SetSize(80, 30).UpdateData(testSnapshot(testSites[0]))
	canvas := m.buildCanvas()

	if strings.Count(canvas, "☉") != 1 || strings.Count(canvas, "♂") != 1 {
		t.Errorf("canvas should hold one Sun and one Mars:\n%s", canvas)
	}
	if lines := strings.Count(canvas, "\n"); lines != 26 {
		t.Errorf("canvas has %d rows, want 26", lines)
	}

	if NewOrbitModel().SetSize(20, 5).View() != "Terminal too small for orbit view" {
		t.Error("small terminal not handled")
	}
}

func TestSitesView(t *testing.T) {
	e := mars.New(mars.WithTime(landing))
	m := NewSitesModel().SetSize(100, 30).UpdateData(e, testSites, 1, 0)

	view := m.View()
	for _, s := range testSites {
		if !strings.Contains(view, s.Name) {
			t.Errorf("sites view missing %q", s.Name)
		}
	}
	if !strings.Contains(view, "▸ InSight") {
		t.Errorf("active site not marked:\n%s", view)
	}

	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("down"))
	if m.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2 (clamped)", m.Cursor())
	}

	m = m.UpdateData(e, testSites[:1], 0, 0)
	if m.Cursor() != 0 {
		t.Errorf("cursor not clamped after sites shrink: %d", m.Cursor())
	}

	empty := NewSitesModel().View()
	if !strings.Contains(empty, "No sites configured") {
		t.Errorf("empty view = %q", empty)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Curiosity", 16, "Curiosity"},
		{"Mars Pathfinder Sojourner", 16, "Mars Pathfind..."},
		{"Zhurong", 3, "Zhu"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
