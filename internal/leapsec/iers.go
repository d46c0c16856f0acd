package leapsec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ntpEpoch is the zero point of the timestamps in leap-seconds.list.
var ntpEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseIERS reads the IETF/IERS leap-seconds.list format:
//
//	# comment
//	2272060800	10	# 1 Jan 1972
//
// The first column is seconds since 1900-01-01 (NTP epoch), the second is TAI−UTC.
func ParseIERS(r io.Reader) (Table, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return Table{}, fmt.Errorf("line %d: expected 2 fields, got %d", lineNo, len(fields))
		}

		ntp, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return Table{}, fmt.Errorf("line %d: parse timestamp: %w", lineNo, err)
		}
		offset, err := strconv.Atoi(fields[1])
		if err != nil {
			return Table{}, fmt.Errorf("line %d: parse offset: %w", lineNo, err)
		}

		entries = append(entries, Entry{
			Effective: ntpEpoch.Add(time.Duration(ntp) * time.Second),
			Offset:    offset,
		})
	}
	if err := scanner.Err(); err != nil {
		return Table{}, fmt.Errorf("scan leap-second list: %w", err)
	}

	return New(entries)
}

// Load opens and parses a leap-seconds.list file.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open leap-second file: %w", err)
	}
	defer f.Close()

	tb, err := ParseIERS(f)
	if err != nil {
		return Table{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return tb, nil
}
