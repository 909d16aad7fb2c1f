// Package timeslot converts between wall-clock strings and the fixed
// hourly period grid of the lecture timetable: period 1 starts at 09:00
// and period 12 at 20:00.
package timeslot

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrMalformed  = errors.New("malformed time, want HH:MM")
	ErrOutOfRange = errors.New("time outside 09:00-20:59")
)

const (
	FirstPeriod = 1
	LastPeriod  = 12

	firstHour = 9
	lastHour  = 20
)

var labels = map[int]string{
	1: "09:00", 2: "10:00", 3: "11:00", 4: "12:00",
	5: "13:00", 6: "14:00", 7: "15:00", 8: "16:00",
	9: "17:00", 10: "18:00", 11: "19:00", 12: "20:00",
}

// Period parses an "HH:MM" string and returns the period containing that
// time.  Unparsable text or minutes outside 0-59 give ErrMalformed; hours
// outside 09..20 give ErrOutOfRange.
func Period(text string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(text), ":")
	if !ok {
		return 0, ErrMalformed
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, ErrMalformed
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, ErrMalformed
	}
	if hour < firstHour || hour > lastHour {
		return 0, ErrOutOfRange
	}
	return hour - firstHour + 1, nil
}

// ToPeriod is Period reporting success as a bool.
func ToPeriod(text string) (int, bool) {
	p, err := Period(text)
	return p, err == nil
}

// Label returns the start time of period p, or "" when p is outside the
// grid.
func Label(p int) string {
	if !Valid(p) {
		return ""
	}
	return labels[p]
}

// Valid reports whether p lies on the grid.
func Valid(p int) bool {
	return p >= FirstPeriod && p <= LastPeriod
}
