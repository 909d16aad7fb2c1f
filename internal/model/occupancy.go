package model

import "time"

// OccupancyReport is a single self-reported headcount for a room.
//
// Fields:
//  At    – when the report was received.
//  Count – representative headcount of the chosen bucket (1..5).
type OccupancyReport struct {
	At    time.Time
	Count int
}

// FreeRoom is one row of an availability answer before live occupancy
// is attached.
type FreeRoom struct {
	Room      string // resolved room name
	NextClass string // "<p>교시 (HH:00)" or "없음"
}

// ClassroomResult is the client-facing row returned by GET /find.
type ClassroomResult struct {
	Classroom string `json:"classroom"`
	NextClass string `json:"next_class"`
	Occupancy int    `json:"occupancy"`
}
