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

package trigger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/shell"
	"github.com/google/patchwindow/window"
)

// SchTasks manages weekly tasks through schtasks.exe.
type SchTasks struct {
	// Folder is the task scheduler folder holding the tasks, e.g. `\PatchWindow`.
	Folder string
	// Exe is the binary the task runs.
	Exe     string
	Timeout time.Duration
	Run     shell.Runner
}

const schtasks = "schtasks.exe"

// NewSchTasks returns a SchTasks scheduler using the platform runner.
func NewSchTasks(folder, exe string, timeout time.Duration) *SchTasks {
	return &SchTasks{Folder: folder, Exe: exe, Timeout: timeout, Run: shell.Exec}
}

func (s *SchTasks) taskPath(name string) string {
	return strings.TrimRight(s.Folder, `\`) + `\` + cablib.TaskName(name)
}

var dayAbbrev = map[time.Weekday]string{
	time.Sunday:    "SUN",
	time.Monday:    "MON",
	time.Tuesday:   "TUE",
	time.Wednesday: "WED",
	time.Thursday:  "THU",
	time.Friday:    "FRI",
	time.Saturday:  "SAT",
}

func (s *SchTasks) createArgs(w window.Window) []string {
	days := make([]string, 0, len(w.DaysOfWeek))
	for _, d := range w.DaysOfWeek {
		days = append(days, dayAbbrev[d])
	}
	action := fmt.Sprintf(`"%s" start --name "%s"`, s.Exe, w.Name)
	return []string{
		"/Create", "/F",
		"/TN", s.taskPath(w.Name),
		"/SC", "WEEKLY",
		"/D", strings.Join(days, ","),
		"/ST", w.StartTime.String(),
		"/TR", action,
		"/RU", "SYSTEM",
		"/RL", "HIGHEST",
	}
}

func (s *SchTasks) exec(ctx context.Context, args []string) (shell.Result, error) {
	if err := ctx.Err(); err != nil {
		return shell.Result{}, err
	}
	return s.Run(ctx, schtasks, args, s.Timeout)
}

// Register creates or replaces the weekly task for w.
func (s *SchTasks) Register(ctx context.Context, w window.Window) error {
	if _, err := s.exec(ctx, s.createArgs(w)); err != nil {
		return fmt.Errorf("%w: registering %s: %v", ErrTrigger, s.taskPath(w.Name), err)
	}
	return nil
}

// Unregister deletes the task for the named window if present.
func (s *SchTasks) Unregister(ctx context.Context, name string) error {
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	if _, err := s.exec(ctx, []string{"/Delete", "/F", "/TN", s.taskPath(name)}); err != nil {
		return fmt.Errorf("%w: deleting %s: %v", ErrTrigger, s.taskPath(name), err)
	}
	return nil
}

// Exists queries the task for the named window. schtasks exits 1 for unknown tasks.
func (s *SchTasks) Exists(ctx context.Context, name string) (bool, error) {
	res, err := s.exec(ctx, []string{"/Query", "/TN", s.taskPath(name)})
	if err == nil {
		return true, nil
	}
	if res.ExitCode == 1 {
		return false, nil
	}
	return false, fmt.Errorf("%w: querying %s: %v", ErrTrigger, s.taskPath(name), err)
}
