package availability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hufspace/classroom-finder/internal/model"
	"github.com/hufspace/classroom-finder/internal/timeslot"
)

func rooms(free []model.FreeRoom) []string {
	out := make([]string, 0, len(free))
	for _, f := range free {
		out = append(out, f.Room)
	}
	return out
}

func TestFindFree_Scenario(t *testing.T) {
	idx := model.ScheduleIndex{"H관 101호": {"월": {1, 2}}}

	got, err := FindFree(idx, Query{Day: "월", StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = FindFree(idx, Query{Day: "월", StartTime: "11:00", EndTime: "12:00"})
	require.NoError(t, err)
	assert.Equal(t, []model.FreeRoom{{Room: "H관 101호", NextClass: NoNextClass}}, got)
}

func TestFindFree_PartialOverlapIsBusy(t *testing.T) {
	idx := model.ScheduleIndex{"H관 101호": {"화": {4}}}
	// window covers periods 3..5; period 4 is only an interior point
	got, err := FindFree(idx, Query{Day: "화", StartTime: "11:00", EndTime: "13:10"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindFree_NextClass(t *testing.T) {
	idx := model.ScheduleIndex{
		"A관 101호": {"수": {1, 6, 4}},
		"A관 102호": {"목": {3}},
	}
	got, err := FindFree(idx, Query{Day: "수", StartTime: "10:00", EndTime: "11:30"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A관 101호", got[0].Room)
	assert.Equal(t, "4교시 (12:00)", got[0].NextClass)
	assert.Equal(t, "A관 102호", got[1].Room)
	assert.Equal(t, NoNextClass, got[1].NextClass)
}

func TestFindFree_BuildingFilter(t *testing.T) {
	idx := model.ScheduleIndex{
		"H관 101호": {},
		"H관 201호": {},
		"G관 101호": {},
	}
	got, err := FindFree(idx, Query{Day: "금", StartTime: "09:00", EndTime: "09:00", Buildings: []string{"H관"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"H관 101호", "H관 201호"}, rooms(got))

	got, err = FindFree(idx, Query{Day: "금", StartTime: "09:00", EndTime: "09:00", Buildings: []string{"H관", "G관"}})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestFindFree_Errors(t *testing.T) {
	idx := model.ScheduleIndex{"H관 101호": {}}
	bad := []Query{
		{StartTime: "09:00", EndTime: "10:00"},
		{Day: "월", EndTime: "10:00"},
		{Day: "월", StartTime: "09:00"},
		{Day: "Mon", StartTime: "09:00", EndTime: "10:00"},
		{Day: "월", StartTime: "08:00", EndTime: "10:00"},
		{Day: "월", StartTime: "09:00", EndTime: "21:00"},
		{Day: "월", StartTime: "9시", EndTime: "10:00"},
		{Day: "월", StartTime: "12:00", EndTime: "10:00"},
	}
	for _, q := range bad {
		_, err := FindFree(idx, q)
		assert.True(t, errors.Is(err, model.ErrInvalidQuery), "query %+v: %v", q, err)
	}

	_, err := FindFree(model.ScheduleIndex{}, Query{Day: "월", StartTime: "09:00", EndTime: "10:00"})
	assert.True(t, errors.Is(err, model.ErrDataUnavailable))
}

func TestFindFree_TimeErrorMessages(t *testing.T) {
	idx := model.ScheduleIndex{"H관 101호": {}}

	_, err := FindFree(idx, Query{Day: "월", StartTime: "ab:00", EndTime: "10:00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
	assert.NotContains(t, err.Error(), "outside")

	_, err = FindFree(idx, Query{Day: "월", StartTime: "09:00", EndTime: "21:00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside 09:00-20:59")
}

func TestFindFree_RoomWithoutDayKeyIsFree(t *testing.T) {
	idx := model.ScheduleIndex{"H관 101호": {"화": {1}}}
	got, err := FindFree(idx, Query{Day: "월", StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, NoNextClass, got[0].NextClass)
}

func TestFindFree_NeverReturnsOverlap(t *testing.T) {
	idx := model.ScheduleIndex{
		"A관 101호": {"월": {1, 2}},
		"A관 102호": {"월": {5}},
		"A관 103호": {"월": {12}},
		"A관 104호": {"월": {}},
		"A관 105호": {"월": {3, 7, 9}},
	}
	for s := timeslot.FirstPeriod; s <= timeslot.LastPeriod; s++ {
		for e := s; e <= timeslot.LastPeriod; e++ {
			got, err := FindFree(idx, Query{Day: "월", StartTime: timeslot.Label(s), EndTime: timeslot.Label(e)})
			require.NoError(t, err)
			for _, f := range got {
				for _, p := range idx[f.Room]["월"] {
					assert.False(t, p >= s && p <= e, "room %s busy at %d in [%d,%d]", f.Room, p, s, e)
				}
			}
		}
	}
}

func TestSortRooms(t *testing.T) {
	in := []model.FreeRoom{
		{Room: "A관 201호"},
		{Room: "A관 1001호"},
		{Room: "A관 105호"},
		{Room: "사이버관"},
		{Room: "B관 105호"},
		{Room: "A관 99호"},
	}
	SortRooms(in)
	assert.Equal(t, []string{"사이버관", "A관 105호", "B관 105호", "A관 1001호", "A관 201호", "A관 99호"}, rooms(in))
}

func TestRoomKey(t *testing.T) {
	f, n := RoomKey("A관 105호")
	assert.Equal(t, 1, f)
	assert.Equal(t, 105, n)

	f, n = RoomKey("미네르바컴플렉스 B106호")
	assert.Equal(t, 0, f)
	assert.Equal(t, 0, n)

	f, n = RoomKey("XYZ9")
	assert.Equal(t, 0, f)
	assert.Equal(t, 0, n)
}

func TestParseBuildings(t *testing.T) {
	assert.Nil(t, ParseBuildings(""))
	assert.Equal(t, []string{"H관", "본관"}, ParseBuildings(" H관, ,본관 "))
}
