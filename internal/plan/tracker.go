package plan

import "fmt"

// DayKey derives the stable completion key for a day at a given position in
// the parsed plan, e.g. "Monday-0". Keys are deterministic across repeated
// parses of the same text, so checked-off days survive redisplay. The index
// is redundant while the canonical-order invariant holds (every weekday
// appears exactly once) but keeps keys collision-free if that ever changes.
func DayKey(day Weekday, index int) string {
	return fmt.Sprintf("%s-%d", day, index)
}

// Keys returns the completion key for every day of the plan, in plan order.
func (p Plan) Keys() []string {
	keys := make([]string, len(p))
	for i, d := range p {
		keys[i] = DayKey(d.Day, i)
	}
	return keys
}

// Contains reports whether key is present in the completion set.
func Contains(set []string, key string) bool {
	for _, k := range set {
		if k == key {
			return true
		}
	}
	return false
}

// Toggle returns a new completion set with key added if absent, removed if
// present. The input slice is never mutated; toggling twice with the same key
// yields a set equal to the original.
func Toggle(set []string, key string) []string {
	if Contains(set, key) {
		out := make([]string, 0, len(set)-1)
		for _, k := range set {
			if k != key {
				out = append(out, k)
			}
		}
		return out
	}
	out := make([]string, 0, len(set)+1)
	out = append(out, set...)
	return append(out, key)
}

// Progress counts how many of the plan's days are checked off. Total is
// always the full week (7 for any parsed plan); keys in the set that do not
// belong to the plan are ignored rather than counted.
func Progress(set []string, p Plan) (done, total int) {
	valid := make(map[string]bool, len(p))
	for i, d := range p {
		valid[DayKey(d.Day, i)] = false
	}
	for _, k := range set {
		if seen, ok := valid[k]; ok && !seen {
			valid[k] = true
			done++
		}
	}
	return done, len(p)
}
