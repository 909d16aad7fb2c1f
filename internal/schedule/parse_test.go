package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestParseTimeLocation_MultipleGroups(t *testing.T) {
	got := ParseTimeLocation("월 1 2 (H101), 수 3 4 (H101)")
	require.Len(t, got, 2)
	assert.Equal(t, Entry{Day: "월", Periods: []int{1, 2}, RoomCode: "H101"}, got[0])
	assert.Equal(t, Entry{Day: "수", Periods: []int{3, 4}, RoomCode: "H101"}, got[1])
}

func TestParseTimeLocation_SkipsNoise(t *testing.T) {
	got := ParseTimeLocation("온라인 강의, 화 5 6 (3201), 미정, 금(H101)")
	require.Len(t, got, 1)
	assert.Equal(t, "화", got[0].Day)
	assert.Equal(t, []int{5, 6}, got[0].Periods)
	assert.Equal(t, "3201", got[0].RoomCode)
}

func TestParseTimeLocation_Empty(t *testing.T) {
	assert.Nil(t, ParseTimeLocation(""))
	assert.Nil(t, ParseTimeLocation("   "))
}

func TestParseEntry(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		ok    bool
		entry Entry
	}{
		{"compact", "목3 4(0501)", true, Entry{Day: "목", Periods: []int{3, 4}, RoomCode: "0501"}},
		{"unsorted periods kept in order", "금 7 5 6 (C)", true, Entry{Day: "금", Periods: []int{7, 5, 6}, RoomCode: "C"}},
		{"leading text", "강의실: 토 9 (AT B106)", true, Entry{Day: "토", Periods: []int{9}, RoomCode: "AT B106"}},
		{"code trimmed", "일 1 ( 8102 )", true, Entry{Day: "일", Periods: []int{1}, RoomCode: "8102"}},
		{"missing parens", "월 1 2 H101", false, Entry{}},
		{"unterminated code", "월 1 2 (H101", false, Entry{}},
		{"blank code", "월 1 ( )", false, Entry{}},
		{"no day", "1 2 (H101)", false, Entry{}},
		{"letters in periods", "월 1a (H101)", false, Entry{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, ok := ParseEntry(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.entry, e)
			}
		})
	}
}

func TestParseEntry_LaterDayMatches(t *testing.T) {
	// "일반" starts with a day symbol but is not followed by periods.
	e, ok := ParseEntry("일반 수 2 (1301)")
	require.True(t, ok)
	assert.Equal(t, "수", e.Day)
	assert.Equal(t, "1301", e.RoomCode)
}

func TestParseTimeLocation_DecomposedHangul(t *testing.T) {
	decomposed := norm.NFD.String("월 1 (H101)")
	got := ParseTimeLocation(decomposed)
	require.Len(t, got, 1)
	assert.Equal(t, "월", got[0].Day)
}

func TestParseEntry_SpacesOnlyRun(t *testing.T) {
	e, ok := ParseEntry("금 (H101)")
	require.True(t, ok)
	assert.Equal(t, "금", e.Day)
	assert.Empty(t, e.Periods)
	assert.Equal(t, "H101", e.RoomCode)

	// the run between day and '(' must not be empty
	_, ok = ParseEntry("금(H101)")
	assert.False(t, ok)
	_, ok = ParseEntry("금 ( )")
	assert.False(t, ok)
}
