// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package schedule computes when a weekly maintenance window runs next.
package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeFormat indicates a start time that is not 24-hour HH:mm.
	ErrInvalidTimeFormat = errors.New("start time must be in 24-hour HH:mm format")
	// ErrEmptyDaySet indicates a schedule without any day of week.
	ErrEmptyDaySet = errors.New("at least one day of week is required")
	// ErrInvalidWeekday indicates an unknown day of week name.
	ErrInvalidWeekday = errors.New("invalid day of week")
)

const timeLayout = "15:04"

// TimeOfDay is a wall clock time in the local time zone.
type TimeOfDay struct {
	Hour, Minute int
}

// ParseTimeOfDay parses a strict 24-hour HH:mm string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != len(timeLayout) {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Valid reports whether t is a time of day.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalText renders t as HH:mm.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d:%d", ErrInvalidTimeFormat, t.Hour, t.Minute)
	}
	return []byte(t.String()), nil
}

// UnmarshalText parses HH:mm.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	p, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = p
	return nil
}

// On returns the moment t occurs on the calendar day of d, in d's location.
// The day offset is applied through time.Date so the wall clock survives DST changes.
func (t TimeOfDay) On(d time.Time, addDays int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day()+addDays, t.Hour, t.Minute, 0, 0, d.Location())
}

// ParseWeekday accepts full or three letter English day names in any case.
func ParseWeekday(s string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if n == full || (len(n) == 3 && n == full[:3]) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// ParseWeekdays parses a list of day names, dropping duplicates and empty entries.
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		d, err := ParseWeekday(n)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return Normalize(days), nil
}

// Normalize sorts days Sunday first and removes duplicates.
func Normalize(days []time.Weekday) []time.Weekday {
	seen := make(map[time.Weekday]bool)
	var out []time.Weekday
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ComputeNextRun returns the earliest moment strictly after now that falls on one of days at start.
// excludeToday skips today's slot even if it is still ahead, which is what a run that just consumed
// today's slot needs.
func ComputeNextRun(now time.Time, start TimeOfDay, days []time.Weekday, excludeToday bool) (time.Time, error) {
	if !start.Valid() {
		return time.Time{}, fmt.Errorf("%w: %d:%d", ErrInvalidTimeFormat, start.Hour, start.Minute)
	}
	if len(days) == 0 {
		return time.Time{}, ErrEmptyDaySet
	}

	var next time.Time
	for _, d := range days {
		delta := (int(d) - int(now.Weekday()) + 7) % 7
		candidate := start.On(now, delta)
		if delta == 0 && (excludeToday || !candidate.After(now)) {
			candidate = start.On(now, 7)
		}
		if next.IsZero() || candidate.Before(next) {
			next = candidate
		}
	}
	return next, nil
}

// Open reports whether now falls inside a window that starts at start on one of days and lasts
// duration. Windows may run past midnight into the next day.
func Open(now time.Time, start TimeOfDay, duration time.Duration, days []time.Weekday) bool {
	if duration <= 0 || !start.Valid() {
		return false
	}
	// A window can only cover now if it began within the last ceil(duration) days.
	back := int(duration/(24*time.Hour)) + 1
	for offset := 0; offset <= back; offset++ {
		begin := start.On(now, -offset)
		if !containsDay(days, begin.Weekday()) {
			continue
		}
		if !now.Before(begin) && now.Before(begin.Add(duration)) {
			return true
		}
	}
	return false
}

func containsDay(days []time.Weekday, d time.Weekday) bool {
	for _, v := range days {
		if v == d {
			return true
		}
	}
	return false
}
