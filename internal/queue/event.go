// Package queue defines message payloads exchanged over the message broker.
package queue

// OccupancyQueueName is the durable queue carrying occupancy reports.
const OccupancyQueueName = "occupancy.reported"

// OccupancyReportedEvent is published after a client reports a headcount
// for a room.  It carries the live total so consumers do not need to
// query the service.
type OccupancyReportedEvent struct {
	EventID        string `json:"event_id"`
	Classroom      string `json:"classroom"`
	CountRange     string `json:"count_range"`
	Count          int    `json:"count"`
	TotalOccupancy int    `json:"total_occupancy"`
	ReportedAt     string `json:"reported_at"`
}
