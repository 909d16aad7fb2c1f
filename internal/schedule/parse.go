package schedule

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Entry is one "day periods (room)" group from a lecture's time/location
// field, e.g. "월 1 2 (H101)".
type Entry struct {
	Day      string
	Periods  []int // in source order, may contain repeats
	RoomCode string
}

// ParseTimeLocation splits a free-text field such as
// "월 1 2 (H101), 수 3 4 (H101)" into entries.  Chunks that do not follow
// the grammar are skipped silently; the scraped data is noisy and total
// recall is not required.
func ParseTimeLocation(text string) []Entry {
	text = norm.NFC.String(text)
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []Entry
	for _, chunk := range strings.Split(text, ",") {
		if e, ok := ParseEntry(chunk); ok {
			out = append(out, e)
		}
	}
	return out
}

// ParseEntry scans a single chunk for the first position where a day
// symbol is followed by a run of digits and spaces and a parenthesised
// room code.  Text around the match is ignored.  A run made only of
// spaces, as in "금 (H101)", matches with no periods: the room is still
// known even though no slot is occupied.
func ParseEntry(chunk string) (Entry, bool) {
	runes := []rune(chunk)
	for i, r := range runes {
		if !isDayRune(r) {
			continue
		}
		if e, ok := matchAt(runes, i); ok {
			return e, true
		}
	}
	return Entry{}, false
}

func matchAt(runes []rune, start int) (Entry, bool) {
	j := start + 1
	runStart := j
	for j < len(runes) && (isASCIIDigit(runes[j]) || unicode.IsSpace(runes[j])) {
		j++
	}
	if j == runStart || j >= len(runes) || runes[j] != '(' {
		return Entry{}, false
	}
	periodText := string(runes[runStart:j])

	j++ // '('
	codeStart := j
	for j < len(runes) && runes[j] != ')' {
		j++
	}
	if j >= len(runes) || j == codeStart {
		return Entry{}, false
	}
	code := strings.TrimSpace(string(runes[codeStart:j]))
	if code == "" {
		return Entry{}, false
	}

	fields := strings.Fields(periodText)
	periods := make([]int, 0, len(fields))
	for _, f := range fields {
		p, err := strconv.Atoi(f)
		if err != nil {
			return Entry{}, false
		}
		periods = append(periods, p)
	}
	return Entry{Day: string(runes[start]), Periods: periods, RoomCode: code}, true
}

func isDayRune(r rune) bool {
	switch r {
	case '월', '화', '수', '목', '금', '토', '일':
		return true
	}
	return false
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
