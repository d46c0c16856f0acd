package earth

import (
	"testing"
	"time"
)

var jpl = Site{Name: "JPL", Lat: 34.2, Lon: -118.17}

func TestDayOf(t *testing.T) {
	// 2024 June solstice in Pasadena: about 14h24m of daylight.
	day := DayOf(jpl, time.Date(2024, 6, 20, 20, 0, 0, 0, time.UTC))

	if day.NoCrossing() {
		t.Fatal("expected sunrise and sunset")
	}
	if !day.Sunrise.Before(day.Sunset) {
		t.Errorf("sunrise %v not before sunset %v", day.Sunrise, day.Sunset)
	}
	got := day.Daylight().Hours()
	if got < 14.2 || got > 14.6 {
		t.Errorf("Daylight = %.2fh, want about 14.4h", got)
	}
	if !day.IsDaylight(time.Date(2024, 6, 20, 20, 0, 0, 0, time.UTC)) {
		t.Error("local noon should be daylight")
	}
}

func TestDayOfUsesUTCDate(t *testing.T) {
	local := time.FixedZone("PDT", -7*3600)
	day := DayOf(jpl, time.Date(2024, 6, 20, 22, 0, 0, 0, local))

	want := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	if !day.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", day.Date, want)
	}
}

func TestPolarNight(t *testing.T) {
	svalbard := Site{Name: "Longyearbyen", Lat: 78.22, Lon: 15.65}
	day := DayOf(svalbard, time.Date(2024, 12, 21, 12, 0, 0, 0, time.UTC))

	if !day.NoCrossing() {
		t.Fatalf("expected no crossing, got %v / %v", day.Sunrise, day.Sunset)
	}
	if day.Daylight() != 0 || day.IsDaylight(time.Date(2024, 12, 21, 12, 0, 0, 0, time.UTC)) {
		t.Error("polar night should report no daylight")
	}
}

func TestNext(t *testing.T) {
	noon := time.Date(2024, 6, 20, 20, 0, 0, 0, time.UTC)

	at, rising, ok := Next(jpl, noon)
	if !ok {
		t.Fatal("no event found")
	}
	if rising {
		t.Error("after noon the next event should be sunset")
	}
	if !at.After(noon) || at.Sub(noon) > 12*time.Hour {
		t.Errorf("unexpected sunset %v", at)
	}

	at2, rising, ok := Next(jpl, at)
	if !ok || !rising || !at2.After(at) {
		t.Errorf("expected sunrise after %v, got %v rising=%v", at, at2, rising)
	}
}
