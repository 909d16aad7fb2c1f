package schedule

import (
	"strings"
	"unicode/utf8"
)

// buildingNames maps the first character of a room code to its building.
// A code equal to one of the keys names the whole building.
var buildingNames = map[string]string{
	"0": "본관",
	"1": "인문과학관",
	"2": "교수학습개발원",
	"3": "사회과학관",
	"5": "법학관",
	"6": "대학원",
	"8": "국제관",
	"C": "사이버관",
	"B": "미네르바컴플렉스",
	"H": "역사관",
}

// blacklist holds shared or special-purpose spaces that never count as
// classrooms.  Entries are resolved room names, not raw codes.
var blacklist = map[string]struct{}{
	"오바마홀":   {},
	"한예종":    {},
	"무용실":    {},
	"운동장":    {},
	"AT B106": {},
	"7208":    {},
}

// ResolveRoomName turns a raw room code such as "3201" into its display
// name ("사회과학관 201호").  Codes whose first character is not a known
// building are returned verbatim; they are legitimate off-campus rooms,
// not parse failures.
func ResolveRoomName(code string) string {
	if name, ok := buildingNames[code]; ok {
		return name
	}
	r, size := utf8.DecodeRuneInString(code)
	if r == utf8.RuneError {
		return code
	}
	building, ok := buildingNames[string(r)]
	if !ok {
		return code
	}
	return building + " " + code[size:] + "호"
}

// IsBlacklisted reports whether a resolved room name is excluded from the
// schedule index.
func IsBlacklisted(name string) bool {
	_, ok := blacklist[name]
	return ok
}

// BuildingOf returns the part of a room name before its first space, or
// the whole name for bare building names.
func BuildingOf(room string) string {
	if i := strings.IndexByte(room, ' '); i >= 0 {
		return room[:i]
	}
	return room
}
