// Package availability answers "which rooms are free for this whole
// window" over a ScheduleIndex.
package availability

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hufspace/classroom-finder/internal/model"
	"github.com/hufspace/classroom-finder/internal/timeslot"
)

// NoNextClass is the label used when a free room has no later class that day.
const NoNextClass = "없음"

// Query describes a free-room search.  Buildings holds building-name
// prefixes; an empty slice means every building.
type Query struct {
	Day       string
	StartTime string
	EndTime   string
	Buildings []string
}

// FindFree returns the rooms that are unoccupied for every period from
// the start period through the end period inclusive, sorted by floor and
// then room number.
func FindFree(idx model.ScheduleIndex, q Query) ([]model.FreeRoom, error) {
	if len(idx) == 0 {
		return nil, model.ErrDataUnavailable
	}
	start, end, err := validate(q)
	if err != nil {
		return nil, err
	}

	out := make([]model.FreeRoom, 0)
	for room := range idx {
		if !matchesBuilding(room, q.Buildings) {
			continue
		}
		occupied := idx.Occupied(room, q.Day)
		if overlaps(occupied, start, end) {
			continue
		}
		out = append(out, model.FreeRoom{Room: room, NextClass: nextClassLabel(occupied, end)})
	}
	SortRooms(out)
	return out, nil
}

func validate(q Query) (int, int, error) {
	if q.Day == "" || q.StartTime == "" || q.EndTime == "" {
		return 0, 0, fmt.Errorf("%w: day, startTime and endTime are required", model.ErrInvalidQuery)
	}
	if !model.IsDay(q.Day) {
		return 0, 0, fmt.Errorf("%w: unknown day %q", model.ErrInvalidQuery, q.Day)
	}
	start, err := timeslot.Period(q.StartTime)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: startTime %q: %v", model.ErrInvalidQuery, q.StartTime, err)
	}
	end, err := timeslot.Period(q.EndTime)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: endTime %q: %v", model.ErrInvalidQuery, q.EndTime, err)
	}
	if start > end {
		return 0, 0, fmt.Errorf("%w: startTime must not be after endTime", model.ErrInvalidQuery)
	}
	return start, end, nil
}

func matchesBuilding(room string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(room, p) {
			return true
		}
	}
	return false
}

// overlaps reports whether any occupied period lies in [start, end].
// Partial overlap counts as busy.
func overlaps(occupied []int, start, end int) bool {
	for _, p := range occupied {
		if p >= start && p <= end {
			return true
		}
	}
	return false
}

func nextClassLabel(occupied []int, end int) string {
	next := 0
	for _, p := range occupied {
		if p > end && (next == 0 || p < next) {
			next = p
		}
	}
	if next == 0 {
		return NoNextClass
	}
	return fmt.Sprintf("%d교시 (%s)", next, timeslot.Label(next))
}

// ParseBuildings splits a comma-separated building filter, dropping blanks.
func ParseBuildings(raw string) []string {
	var out []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// SortRooms orders rooms floor-major, then by full room number compared
// numerically.  Names without a " <digits>" token sort first with key
// (0, 0).  Equal keys fall back to the name so output is deterministic.
func SortRooms(rooms []model.FreeRoom) {
	sort.SliceStable(rooms, func(i, j int) bool {
		fi, ni := RoomKey(rooms[i].Room)
		fj, nj := RoomKey(rooms[j].Room)
		if fi != fj {
			return fi < fj
		}
		if ni != nj {
			return ni < nj
		}
		return rooms[i].Room < rooms[j].Room
	})
}

// RoomKey extracts (floor, number) from the first run of ASCII digits that
// directly follows a space, e.g. "사회과학관 201호" → (2, 201).
func RoomKey(name string) (floor, number int) {
	for i := 1; i < len(name); i++ {
		if name[i-1] != ' ' || !isDigit(name[i]) {
			continue
		}
		j := i
		for j < len(name) && isDigit(name[j]) {
			j++
		}
		digits := name[i:j]
		n, err := strconv.Atoi(digits)
		if err != nil {
			return 0, 0
		}
		return int(digits[0] - '0'), n
	}
	return 0, 0
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
