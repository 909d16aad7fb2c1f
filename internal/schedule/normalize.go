// Package schedule turns raw lecture records into the canonical
// room → day → periods index used by the availability engine, and
// reads/writes that index as a JSON artifact.
package schedule

import (
	"sort"

	"github.com/hufspace/classroom-finder/internal/model"
)

// DefaultField is the lecture attribute carrying "day periods (room)"
// groups in the scraped dataset.
const DefaultField = "강의시간_강의실"

// RawLecture is one scraped lecture record.  Only the time/location field
// is read; everything else is carried along untouched.
type RawLecture map[string]any

// Stats summarises a normalization run.
type Stats struct {
	Total     int // lectures read
	Processed int // lectures whose field produced at least one entry
	Rooms     int // distinct rooms in the resulting index
}

// Normalizer builds a ScheduleIndex from raw lectures.
type Normalizer struct {
	Field string // lecture attribute to parse; DefaultField when empty
}

// Normalize parses every lecture, resolves room codes, drops blacklisted
// rooms and accumulates periods per room and day with set semantics.  The
// result lists every weekday for every room, each sorted ascending.
// Running it twice over the same records yields an identical index.
func (n Normalizer) Normalize(lectures []RawLecture) (model.ScheduleIndex, Stats) {
	field := n.Field
	if field == "" {
		field = DefaultField
	}

	sets := make(map[string]map[string]map[int]struct{})
	stats := Stats{Total: len(lectures)}

	for _, lec := range lectures {
		text, _ := lec[field].(string)
		if text == "" {
			continue
		}
		entries := ParseTimeLocation(text)
		if len(entries) == 0 {
			continue
		}
		stats.Processed++

		for _, e := range entries {
			room := ResolveRoomName(e.RoomCode)
			if IsBlacklisted(room) {
				continue
			}
			days, ok := sets[room]
			if !ok {
				days = make(map[string]map[int]struct{}, len(model.Days))
				for _, d := range model.Days {
					days[d] = make(map[int]struct{})
				}
				sets[room] = days
			}
			for _, p := range e.Periods {
				days[e.Day][p] = struct{}{}
			}
		}
	}

	idx := make(model.ScheduleIndex, len(sets))
	for room, days := range sets {
		sched := make(model.RoomSchedule, len(days))
		for day, set := range days {
			periods := make([]int, 0, len(set))
			for p := range set {
				periods = append(periods, p)
			}
			sort.Ints(periods)
			sched[day] = periods
		}
		idx[room] = sched
	}
	stats.Rooms = len(idx)
	return idx, stats
}

// Canonicalize sorts and de-duplicates every period list in place.  It is
// applied to indexes loaded from external artifacts, which may have been
// edited by hand.
func Canonicalize(idx model.ScheduleIndex) {
	for _, sched := range idx {
		for day, periods := range sched {
			sched[day] = sortedUnique(periods)
		}
	}
}

func sortedUnique(in []int) []int {
	out := make([]int, 0, len(in))
	seen := make(map[int]struct{}, len(in))
	for _, p := range in {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
