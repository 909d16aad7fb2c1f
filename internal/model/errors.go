// Package model holds the domain types shared by the schedule, availability
// and occupancy packages together with the sentinel errors that handlers
// translate into HTTP status codes.
package model

import "errors"

// ErrInvalidQuery is returned when a free-room query is missing a field,
// carries a malformed day or time, or has a start after its end.
// Handlers should translate this into an HTTP 400 response.
var ErrInvalidQuery = errors.New("invalid query")

// ErrInvalidBucket is returned when an occupancy report uses a bucket
// label outside the known set.  Handlers respond with 400.
var ErrInvalidBucket = errors.New("invalid occupancy bucket")

// ErrDataUnavailable signals that no schedule index has been loaded.
// Handlers respond with 500; the process keeps running.
var ErrDataUnavailable = errors.New("schedule data unavailable")
