package plan

import (
	"reflect"
	"sort"
	"testing"
)

func TestDayKey(t *testing.T) {
	if got := DayKey(Monday, 0); got != "Monday-0" {
		t.Errorf("DayKey(Monday, 0) = %q, want %q", got, "Monday-0")
	}
	if got := DayKey(Sunday, 6); got != "Sunday-6" {
		t.Errorf("DayKey(Sunday, 6) = %q, want %q", got, "Sunday-6")
	}
}

func TestKeys_StableAcrossReparses(t *testing.T) {
	raw := "Wednesday: Intervals\nMonday: Easy run"
	first := Parse(raw).Keys()
	second := Parse(raw).Keys()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("keys changed across parses: %v vs %v", first, second)
	}
	want := []string{"Monday-0", "Tuesday-1", "Wednesday-2", "Thursday-3", "Friday-4", "Saturday-5", "Sunday-6"}
	if !reflect.DeepEqual(first, want) {
		t.Errorf("Keys() = %v, want %v", first, want)
	}
}

func TestToggle_SelfInverse(t *testing.T) {
	original := []string{"Monday-0", "Friday-4"}

	once := Toggle(original, "Wednesday-2")
	if !Contains(once, "Wednesday-2") {
		t.Fatal("toggle did not add the key")
	}
	twice := Toggle(once, "Wednesday-2")

	sorted := func(s []string) []string {
		out := append([]string(nil), s...)
		sort.Strings(out)
		return out
	}
	if !reflect.DeepEqual(sorted(twice), sorted(original)) {
		t.Errorf("toggle twice = %v, want %v", twice, original)
	}
}

func TestToggle_DoesNotMutateInput(t *testing.T) {
	original := []string{"Monday-0", "Friday-4"}
	snapshot := append([]string(nil), original...)

	_ = Toggle(original, "Monday-0")
	_ = Toggle(original, "Sunday-6")

	if !reflect.DeepEqual(original, snapshot) {
		t.Errorf("input set mutated: %v, want %v", original, snapshot)
	}
}

func TestToggle_RemovesPresentKey(t *testing.T) {
	set := []string{"Monday-0", "Wednesday-2", "Friday-4"}
	got := Toggle(set, "Wednesday-2")
	want := []string{"Monday-0", "Friday-4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Toggle remove = %v, want %v", got, want)
	}
}

func TestProgress(t *testing.T) {
	week := Parse("Monday: Easy run\nTuesday: Hills workout")

	tests := []struct {
		name     string
		set      []string
		wantDone int
	}{
		{"empty set", nil, 0},
		{"two valid keys", []string{"Monday-0", "Tuesday-1"}, 2},
		{"stale key ignored", []string{"Monday-0", "Monday-99", "NotADay-3"}, 1},
		{"duplicate key counted once", []string{"Friday-4", "Friday-4"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done, total := Progress(tt.set, week)
			if total != 7 {
				t.Errorf("total = %d, want 7", total)
			}
			if done != tt.wantDone {
				t.Errorf("done = %d, want %d", done, tt.wantDone)
			}
		})
	}
}
