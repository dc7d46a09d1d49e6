package plan

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Weekday is one of the seven canonical day names.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays is the canonical week order. Parsed plans are always emitted in
// this order, never in the order days appeared in the source text.
var Weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// headerDecoration are the characters stripped around a day name: markdown
// bold/bullet markers, list dashes, heading hashes and the trailing colon.
const headerDecoration = "*_-•#:. \t"

// splitDayHeader reports whether line is a day-header line. On a match it
// returns the canonical weekday and whatever follows the day name on the same
// line, with decoration trimmed from both.
//
// The day name must be the first word after leading decoration; a weekday
// mentioned mid-sentence ("On Monday try...") does not start a new day.
func splitDayHeader(line string) (Weekday, string, bool) {
	trimmed := strings.TrimLeft(line, headerDecoration)
	lower := strings.ToLower(trimmed)
	for _, day := range Weekdays {
		name := strings.ToLower(string(day))
		if !strings.HasPrefix(lower, name) {
			continue
		}
		rest := trimmed[len(name):]
		// Reject partial-word matches such as "Mondays" or "Saturdayish".
		if r, _ := utf8.DecodeRuneInString(rest); rest != "" && isWordRune(r) {
			continue
		}
		return day, strings.Trim(rest, headerDecoration), true
	}
	return "", "", false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
