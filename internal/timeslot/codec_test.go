package timeslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPeriod(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"09:00", 1, true},
		{"9:15", 1, true},
		{"13:30", 5, true},
		{"20:30", 12, true},
		{"20:59", 12, true},
		{"08:59", 0, false},
		{"21:00", 0, false},
		{"", 0, false},
		{"0900", 0, false},
		{"ab:00", 0, false},
		{"10:xx", 0, false},
		{"10:75", 0, false},
	}
	for _, tc := range cases {
		got, ok := ToPeriod(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "09:00", Label(1))
	assert.Equal(t, "20:00", Label(12))
	assert.Equal(t, "", Label(0))
	assert.Equal(t, "", Label(13))
}

func TestLabelMatchesGrid(t *testing.T) {
	for p := FirstPeriod; p <= LastPeriod; p++ {
		back, ok := ToPeriod(Label(p))
		assert.True(t, ok)
		assert.Equal(t, p, back)
	}
	assert.False(t, Valid(0))
	assert.True(t, Valid(12))
}

func TestPeriod_Errors(t *testing.T) {
	for _, in := range []string{"", "9", "ab:00", "10:xx", "10:60", "10:-1"} {
		_, err := Period(in)
		assert.ErrorIs(t, err, ErrMalformed, in)
	}
	for _, in := range []string{"08:59", "21:00", "00:00"} {
		_, err := Period(in)
		assert.ErrorIs(t, err, ErrOutOfRange, in)
	}
	p, err := Period(" 20:59 ")
	assert.NoError(t, err)
	assert.Equal(t, LastPeriod, p)
}
