package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduleIndex_Occupied(t *testing.T) {
	idx := ScheduleIndex{"역사관 101호": {"월": {1, 2}}}
	assert.Equal(t, []int{1, 2}, idx.Occupied("역사관 101호", "월"))
	assert.Nil(t, idx.Occupied("역사관 101호", "화"))
	assert.Nil(t, idx.Occupied("사이버관", "월"))
	assert.Equal(t, 1, idx.Rooms())
}

func TestIsDay(t *testing.T) {
	for _, d := range Days {
		assert.True(t, IsDay(d))
	}
	assert.False(t, IsDay("월요일"))
	assert.False(t, IsDay(""))
}
