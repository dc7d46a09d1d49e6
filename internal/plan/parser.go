// Package plan turns the freeform weekly-plan text produced by the coaching
// model into a structured seven-day schedule, and tracks which days the user
// has checked off.
//
// The generation prompt asks the model for a "**Weekday:** activity" line per
// day, but models drift: bullets instead of bold, prose greetings, missing or
// reordered days. Parse tolerates all of that and always yields a complete
// week, so the rest of the app never has to handle a half-parsed plan.
package plan

import (
	"strings"
	"unicode/utf8"
)

// FallbackActivity is synthesized for any weekday the source text never
// mentioned, so every DayRecord has at least one activity.
const FallbackActivity = "Rest day / easy recovery"

// minActivityLen is the noise filter: stripped activity lines shorter than
// this many runes are discarded. 4 keeps "Rest" and "Run." but drops stray
// markers like "ok" or a lone "-".
const minActivityLen = 4

// scaffoldingPrefixes mark narrative filler the model wraps around the actual
// schedule (greetings, sign-offs, generic advice). Matched case-insensitively
// against the start of a line inside a day block.
var scaffoldingPrefixes = []string{
	"here's",
	"here is",
	"welcome",
	"remember",
	"feel free",
	"good luck",
	"let me know",
}

// DayRecord is one weekday's slice of the plan.
type DayRecord struct {
	Day        Weekday  `json:"day"`
	Activities []string `json:"activities"` // never empty; fallback-filled if nothing parsed
}

// Plan is a full parsed week: exactly seven DayRecords in canonical weekday
// order (Monday first), regardless of the order days appeared in the text.
type Plan []DayRecord

// Parse converts raw plan text into a complete week. It never fails: empty,
// garbled or headerless input yields seven fallback-only records. It is a
// pure function of its input.
//
// Lines before the first recognized day header are treated as preamble and
// dropped. A repeated header for an already-seen day appends to that day
// rather than creating a duplicate.
func Parse(raw string) Plan {
	activities := make(map[Weekday][]string, len(Weekdays))

	var current Weekday
	inDay := false
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if day, rest, ok := splitDayHeader(line); ok {
			current = day
			inDay = true
			if act, ok := cleanActivity(rest); ok {
				activities[day] = append(activities[day], act)
			}
			continue
		}

		if !inDay || isScaffolding(line) {
			continue
		}
		if act, ok := cleanActivity(line); ok {
			activities[current] = append(activities[current], act)
		}
	}

	week := make(Plan, 0, len(Weekdays))
	for _, day := range Weekdays {
		acts := activities[day]
		if len(acts) == 0 {
			acts = []string{FallbackActivity}
		}
		week = append(week, DayRecord{Day: day, Activities: acts})
	}
	return week
}

// FallbackOnly reports whether nothing usable was parsed: every day carries
// only the synthesized fallback activity. Callers may use this to show the
// raw text instead of the day cards.
func (p Plan) FallbackOnly() bool {
	for _, d := range p {
		if len(d.Activities) != 1 || d.Activities[0] != FallbackActivity {
			return false
		}
	}
	return true
}

// cleanActivity strips a single leading bullet marker and applies the noise
// filter. The second return is false when the line should be discarded.
func cleanActivity(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if r, size := utf8.DecodeRuneInString(line); size > 0 && isBulletRune(r) {
		line = strings.TrimSpace(line[size:])
	}
	if utf8.RuneCountInString(line) < minActivityLen {
		return "", false
	}
	return line, true
}

func isBulletRune(r rune) bool {
	switch r {
	case '-', '*', '•', '–', '+':
		return true
	}
	return false
}

func isScaffolding(line string) bool {
	lower := strings.ToLower(line)
	for _, prefix := range scaffoldingPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
