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

// Package window defines maintenance window records.
package window

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/schedule"
	"github.com/robfig/cron/v3"
)

// Days is a set of weekdays that serializes as day names.
type Days []time.Weekday

// MarshalJSON renders the days as English names.
func (d Days) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, len(d))
	for _, v := range d {
		names = append(names, v.String())
	}
	return json.Marshal(names)
}

// UnmarshalJSON parses English day names.
func (d *Days) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	days, err := schedule.ParseWeekdays(names)
	if err != nil {
		return err
	}
	*d = days
	return nil
}

// MarshalYAML renders the days as English names.
func (d Days) MarshalYAML() (any, error) {
	names := make([]string, 0, len(d))
	for _, v := range d {
		names = append(names, v.String())
	}
	return names, nil
}

func (d Days) String() string {
	names := make([]string, 0, len(d))
	for _, v := range d {
		names = append(names, v.String())
	}
	return strings.Join(names, ",")
}

// Window is a named, recurring maintenance window.
type Window struct {
	Name             string             `json:"name" yaml:"name" validate:"required,max=128,windowname"`
	StartTime        schedule.TimeOfDay `json:"startTime" yaml:"startTime"`
	Duration         int                `json:"durationMinutes" yaml:"durationMinutes" validate:"gt=0"`
	DaysOfWeek       Days               `json:"daysOfWeek" yaml:"daysOfWeek" validate:"dive,min=0,max=6"`
	UpdateCategories []Category         `json:"updateCategories" yaml:"updateCategories" validate:"dive,category"`
	AllowReboot      bool               `json:"allowReboot" yaml:"allowReboot"`

	CreatedOn    time.Time  `json:"createdOn" yaml:"createdOn"`
	LastModified time.Time  `json:"lastModified" yaml:"lastModified"`
	LastRun      *time.Time `json:"lastRun" yaml:"lastRun"`
	NextRun      *time.Time `json:"nextRun" yaml:"nextRun"`
}

// Length is the advisory duration of the window.
func (w Window) Length() time.Duration {
	return time.Duration(w.Duration) * time.Minute
}

// TaskName is the name of the scheduled trigger bound to the window.
func (w Window) TaskName() string {
	return cablib.TaskName(w.Name)
}

// Next computes the next run of the window after now.
func (w Window) Next(now time.Time, excludeToday bool) (time.Time, error) {
	return schedule.ComputeNextRun(now, w.StartTime, w.DaysOfWeek, excludeToday)
}

// Open reports whether now falls inside one of the window's slots.
func (w Window) Open(now time.Time) bool {
	return schedule.Open(now, w.StartTime, w.Length(), w.DaysOfWeek)
}

// EngineCategories translates the window's categories into the engine's vocabulary.
func (w Window) EngineCategories() []string {
	return EngineCategories(w.UpdateCategories)
}

// CronSpec renders the window as a standard five field cron expression.
func (w Window) CronSpec() (string, error) {
	if len(w.DaysOfWeek) == 0 {
		return "", schedule.ErrEmptyDaySet
	}
	days := make([]string, 0, len(w.DaysOfWeek))
	for _, d := range schedule.Normalize(w.DaysOfWeek) {
		days = append(days, strconv.Itoa(int(d)))
	}
	spec := fmt.Sprintf("%d %d * * %s", w.StartTime.Minute, w.StartTime.Hour, strings.Join(days, ","))
	if _, err := cron.ParseStandard(spec); err != nil {
		return "", fmt.Errorf("invalid cron spec %q: %v", spec, err)
	}
	return spec, nil
}

// HumanSchedule describes the window in plain English, e.g. "Sunday at 22:00 for 2h".
func (w Window) HumanSchedule() string {
	h, m := w.Duration/60, w.Duration%60
	var d string
	switch {
	case h > 0 && m > 0:
		d = fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		d = fmt.Sprintf("%dh", h)
	default:
		d = fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%s at %s for %s", w.DaysOfWeek, w.StartTime, d)
}

func (w Window) String() string {
	next := "never"
	if w.NextRun != nil {
		next = w.NextRun.Format(time.RFC3339)
	}
	last := "never"
	if w.LastRun != nil {
		last = w.LastRun.Format(time.RFC3339)
	}
	return fmt.Sprintf("%s: %s\n  Categories: %v\n  AllowReboot: %t\n  LastRun: %s\n  NextRun: %s",
		w.Name, w.HumanSchedule(), w.UpdateCategories, w.AllowReboot, last, next)
}
