// Package repository persists the schedule index in MySQL so several
// server instances can share one normalized timetable.
package repository

import "errors"

// ErrEmptySchedule is returned by Load when the tables hold no rooms.
// Callers treat it like a missing artifact and start without data.
var ErrEmptySchedule = errors.New("schedule tables are empty")
