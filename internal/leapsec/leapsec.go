// Package leapsec holds the TAI−UTC leap-second table used to move civil
// timestamps onto Terrestrial Time.
package leapsec

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Errors for table construction.
var (
	ErrEmpty     = errors.New("leap-second table is empty")
	ErrUnordered = errors.New("leap-second table is not in chronological order")
)

// Entry is one row of the table: from Effective onward, TAI−UTC equals Offset seconds.
type Entry struct {
	Effective time.Time
	Offset    int
}

// Table is an ordered list of entries. It is never modified after construction,
// so a single Table may be shared between goroutines.
type Table struct {
	entries []Entry
}

// builtin is the cumulative TAI−UTC offset as published by the IERS.
// Adding a row here is the only maintenance the table needs.
var builtin = []Entry{
	{entryDate(1972, time.January, 1), 10},
	{entryDate(1972, time.July, 1), 11},
	{entryDate(1973, time.January, 1), 12},
	{entryDate(1974, time.January, 1), 13},
	{entryDate(1975, time.January, 1), 14},
	{entryDate(1976, time.January, 1), 15},
	{entryDate(1977, time.January, 1), 16},
	{entryDate(1978, time.January, 1), 17},
	{entryDate(1979, time.January, 1), 18},
	{entryDate(1980, time.January, 1), 19},
	{entryDate(1981, time.July, 1), 20},
	{entryDate(1982, time.July, 1), 21},
	{entryDate(1983, time.July, 1), 22},
	{entryDate(1985, time.July, 1), 23},
	{entryDate(1988, time.January, 1), 24},
	{entryDate(1990, time.January, 1), 25},
	{entryDate(1991, time.January, 1), 26},
	{entryDate(1992, time.July, 1), 27},
	{entryDate(1993, time.July, 1), 28},
	{entryDate(1994, time.July, 1), 29},
	{entryDate(1996, time.January, 1), 30},
	{entryDate(1997, time.July, 1), 31},
	{entryDate(1999, time.January, 1), 32},
	{entryDate(2006, time.January, 1), 33},
	{entryDate(2009, time.January, 1), 34},
	{entryDate(2012, time.July, 1), 35},
	{entryDate(2015, time.July, 1), 36},
	{entryDate(2017, time.January, 1), 37},
}

var defaultTable = Table{entries: builtin}

func entryDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Default returns the built-in table.
func Default() Table {
	return defaultTable
}

// New builds a table from entries, which must be sorted by Effective date
// with non-decreasing offsets. The slice is copied.
func New(entries []Entry) (Table, error) {
	if len(entries) == 0 {
		return Table{}, ErrEmpty
	}

	cp := make([]Entry, len(entries))
	copy(cp, entries)

	for i := 1; i < len(cp); i++ {
		if !cp[i].Effective.After(cp[i-1].Effective) {
			return Table{}, fmt.Errorf("entry %d (%s): %w", i, cp[i].Effective.Format("2006-01-02"), ErrUnordered)
		}
		if cp[i].Offset < cp[i-1].Offset {
			return Table{}, fmt.Errorf("entry %d: offset %d decreases from %d: %w", i, cp[i].Offset, cp[i-1].Offset, ErrUnordered)
		}
	}

	return Table{entries: cp}, nil
}

// Lookup returns TAI−UTC in seconds effective at t, or 0 before the first entry.
func (tb Table) Lookup(t time.Time) int {
	// index of the first entry strictly after t
	idx := sort.Search(len(tb.entries), func(i int) bool {
		return tb.entries[i].Effective.After(t)
	})
	if idx == 0 {
		return 0
	}
	return tb.entries[idx-1].Offset
}

// Len returns the number of entries.
func (tb Table) Len() int {
	return len(tb.entries)
}

// Entries returns a copy of the table rows.
func (tb Table) Entries() []Entry {
	out := make([]Entry, len(tb.entries))
	copy(out, tb.entries)
	return out
}

// Latest returns the most recent entry. ok is false for an empty table.
func (tb Table) Latest() (Entry, bool) {
	if len(tb.entries) == 0 {
		return Entry{}, false
	}
	return tb.entries[len(tb.entries)-1], true
}
