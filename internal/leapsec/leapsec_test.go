package leapsec

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDefaultLookup(t *testing.T) {
	tb := Default()

	tests := []struct {
		name string
		time time.Time
		want int
	}{
		{"before table", time.Date(1970, 8, 29, 13, 24, 12, 0, time.UTC), 0},
		{"first entry exact", time.Date(1972, 1, 1, 0, 0, 0, 0, time.UTC), 10},
		{"last instant before second entry", time.Date(1972, 6, 30, 23, 59, 59, 0, time.UTC), 10},
		{"mid 1984", time.Date(1984, 8, 29, 13, 24, 12, 0, time.UTC), 22},
		{"J2000", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 32},
		{"2019", time.Date(2019, 8, 29, 13, 24, 12, 0, time.UTC), 37},
		{"far future", time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC), 37},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tb.Lookup(tt.time); got != tt.want {
				t.Errorf("Lookup(%s) = %d, want %d", tt.time.Format(time.RFC3339), got, tt.want)
			}
		})
	}
}

func TestLookupIgnoresZone(t *testing.T) {
	tb := Default()
	loc := time.FixedZone("UTC+2", 2*3600)

	// 2017-01-01 01:00 at UTC+2 is still 2016 in UTC
	local := time.Date(2017, 1, 1, 1, 0, 0, 0, loc)
	if got := tb.Lookup(local); got != 36 {
		t.Errorf("Lookup(%s) = %d, want 36", local, got)
	}
}

func TestNewRejectsBadTables(t *testing.T) {
	d := func(y int) time.Time { return time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name    string
		entries []Entry
		wantErr error
	}{
		{"empty", nil, ErrEmpty},
		{"unordered dates", []Entry{{d(1980), 19}, {d(1975), 20}}, ErrUnordered},
		{"duplicate dates", []Entry{{d(1980), 19}, {d(1980), 20}}, ErrUnordered},
		{"decreasing offset", []Entry{{d(1980), 19}, {d(1981), 18}}, ErrUnordered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewCopiesEntries(t *testing.T) {
	entries := []Entry{{time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), 25}}
	tb, err := New(entries)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	entries[0].Offset = 99
	if got := tb.Lookup(time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC)); got != 25 {
		t.Errorf("table changed through caller slice: got %d", got)
	}
}

func TestLatest(t *testing.T) {
	e, ok := Default().Latest()
	if !ok {
		t.Fatal("Latest() on default table returned ok=false")
	}
	if e.Offset != 37 {
		t.Errorf("Latest().Offset = %d, want 37", e.Offset)
	}

	if _, ok := (Table{}).Latest(); ok {
		t.Error("Latest() on empty table returned ok=true")
	}
}

const sampleList = `#	leap-seconds.list excerpt
#$	 3676924800
#@	 3928521600
2272060800	10	# 1 Jan 1972
2287785600	11	# 1 Jul 1972

2303683200	12	# 1 Jan 1973
3692217600	37	# 1 Jan 2017
`

func TestParseIERS(t *testing.T) {
	tb, err := ParseIERS(strings.NewReader(sampleList))
	if err != nil {
		t.Fatalf("ParseIERS() error = %v", err)
	}

	if tb.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", tb.Len())
	}

	first := tb.Entries()[0]
	want := time.Date(1972, 1, 1, 0, 0, 0, 0, time.UTC)
	if !first.Effective.Equal(want) {
		t.Errorf("first entry = %s, want %s", first.Effective, want)
	}

	last := tb.Entries()[3]
	want = time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)
	if !last.Effective.Equal(want) {
		t.Errorf("last entry = %s, want %s", last.Effective, want)
	}

	if got := tb.Lookup(time.Date(1972, 8, 1, 0, 0, 0, 0, time.UTC)); got != 11 {
		t.Errorf("Lookup(1972-08) = %d, want 11", got)
	}
}

func TestParseIERSErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"single field", "2272060800\n"},
		{"bad timestamp", "abc 10\n"},
		{"bad offset", "2272060800 ten\n"},
		{"only comments", "# nothing here\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseIERS(strings.NewReader(tt.input)); err == nil {
				t.Error("ParseIERS() expected error, got nil")
			}
		})
	}
}
