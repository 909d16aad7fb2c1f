// Package occupancy keeps a short-lived, self-reported headcount per room.
// Reports expire after TTL and are pruned lazily whenever a room's ledger
// is read or written; there is no background sweeper.
package occupancy

import (
	"fmt"
	"sync"
	"time"

	"github.com/hufspace/classroom-finder/internal/model"
)

// TTL is how long a report contributes to a room's total.
const TTL = 2700 * time.Second

var buckets = map[string]int{
	"1명":    1,
	"2명":    2,
	"3명":    3,
	"4명":    4,
	"5명 이상": 5,
}

// BucketCount maps a client bucket label to its representative headcount.
func BucketCount(label string) (int, error) {
	n, ok := buckets[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", model.ErrInvalidBucket, label)
	}
	return n, nil
}

// Prune returns the reports younger than ttl at now, preserving order.
// A report exactly ttl old is expired.  entries is not modified.
func Prune(entries []model.OccupancyReport, now time.Time, ttl time.Duration) []model.OccupancyReport {
	kept := make([]model.OccupancyReport, 0, len(entries))
	for _, e := range entries {
		if now.Sub(e.At) < ttl {
			kept = append(kept, e)
		}
	}
	return kept
}

func sum(entries []model.OccupancyReport) int {
	total := 0
	for _, e := range entries {
		total += e.Count
	}
	return total
}

// Tracker is the process-wide occupancy ledger.  A single mutex guards
// the whole map; write volume is low and every operation is in-memory.
type Tracker struct {
	mu     sync.Mutex
	ttl    time.Duration
	ledger map[string][]model.OccupancyReport
}

// NewTracker returns an empty tracker using TTL.
func NewTracker() *Tracker {
	return &Tracker{ttl: TTL, ledger: make(map[string][]model.OccupancyReport)}
}

// Report records a headcount for room at now and returns the room's live
// total after pruning.
func (t *Tracker) Report(room, bucket string, now time.Time) (int, error) {
	count, err := BucketCount(bucket)
	if err != nil {
		return 0, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := append(t.ledger[room], model.OccupancyReport{At: now, Count: count})
	return t.store(room, Prune(entries, now, t.ttl)), nil
}

// CurrentTotal prunes the room's ledger and returns the live total; rooms
// without reports yield 0.
func (t *Tracker) CurrentTotal(room string, now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries, ok := t.ledger[room]
	if !ok {
		return 0
	}
	return t.store(room, Prune(entries, now, t.ttl))
}

// store writes back a pruned ledger, dropping the key once it is empty.
// Callers must hold t.mu.
func (t *Tracker) store(room string, entries []model.OccupancyReport) int {
	if len(entries) == 0 {
		delete(t.ledger, room)
		return 0
	}
	t.ledger[room] = entries
	return sum(entries)
}

