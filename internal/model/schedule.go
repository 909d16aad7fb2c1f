package model

// Days lists the weekday symbols used by the lecture timetable, Monday
// first.  Only equality matters; the slice order is used when an index
// is materialised so every room carries all seven keys.
var Days = []string{"월", "화", "수", "목", "금", "토", "일"}

// IsDay reports whether s is one of the seven weekday symbols.
func IsDay(s string) bool {
	for _, d := range Days {
		if d == s {
			return true
		}
	}
	return false
}

// RoomSchedule maps a weekday symbol to the ascending, de-duplicated
// list of periods during which a room is occupied.
type RoomSchedule map[string][]int

// ScheduleIndex maps a resolved room name to its weekly schedule.  It is
// built once (by the normalizer or loaded from an artifact) and never
// mutated by query traffic.  Its JSON form is the nested object the
// offline batch writes:
//
//	{"사회과학관 201호": {"월": [1, 2], "화": [], ...}}
type ScheduleIndex map[string]RoomSchedule

// Occupied returns the periods a room is busy on day.  A missing room or
// day yields nil, which callers treat as "free all day".
func (idx ScheduleIndex) Occupied(room, day string) []int {
	sched, ok := idx[room]
	if !ok {
		return nil
	}
	return sched[day]
}

// Rooms returns the number of distinct rooms in the index.
func (idx ScheduleIndex) Rooms() int { return len(idx) }
