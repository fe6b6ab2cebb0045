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

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/patchwindow/engine"
	"github.com/google/patchwindow/notification"
	"github.com/google/patchwindow/report"
	"github.com/google/patchwindow/schedule"
	"github.com/google/patchwindow/store"
	"github.com/google/patchwindow/window"
	"github.com/google/subcommands"
	"golang.org/x/net/context"
)

// monday is 2026-10-19 10:00 UTC.
var monday = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

type fakeScheduler struct {
	registered map[string]window.Window
}

func (f *fakeScheduler) Register(ctx context.Context, w window.Window) error {
	f.registered[w.Name] = w
	return nil
}

func (f *fakeScheduler) Unregister(ctx context.Context, name string) error {
	delete(f.registered, name)
	return nil
}

func (f *fakeScheduler) Exists(ctx context.Context, name string) (bool, error) {
	_, ok := f.registered[name]
	return ok, nil
}

type fakeEngine struct {
	ready   engine.Readiness
	updates []engine.Update
	install engine.InstallResult
	history []engine.HistoryEntry
	reboot  bool
	err     error

	requests []engine.Request
	hidden   []string
	unhidden []string
}

func (f *fakeEngine) Ready(ctx context.Context) (engine.Readiness, error) { return f.ready, nil }

func (f *fakeEngine) Search(ctx context.Context, req engine.Request) ([]engine.Update, error) {
	f.requests = append(f.requests, req)
	return f.updates, f.err
}

func (f *fakeEngine) Download(ctx context.Context, req engine.Request) ([]engine.Update, error) {
	f.requests = append(f.requests, req)
	return f.updates, f.err
}

func (f *fakeEngine) Install(ctx context.Context, req engine.Request) (engine.InstallResult, error) {
	f.requests = append(f.requests, req)
	return f.install, f.err
}

func (f *fakeEngine) RebootRequired(ctx context.Context) (bool, error) { return f.reboot, f.err }

func (f *fakeEngine) History(ctx context.Context, last int) ([]engine.HistoryEntry, error) {
	return f.history, f.err
}

func (f *fakeEngine) Hide(ctx context.Context, kbs []string) ([]engine.Update, error) {
	f.hidden = append(f.hidden, kbs...)
	return f.updates, f.err
}

func (f *fakeEngine) Unhide(ctx context.Context, kbs []string) ([]engine.Update, error) {
	f.unhidden = append(f.unhidden, kbs...)
	return f.updates, f.err
}

type env struct {
	out      *bytes.Buffer
	engine   *fakeEngine
	sched    *fakeScheduler
	messages []notification.Message
	elevated bool
	aukera   bool
}

// setup replaces the command dependencies with fakes for the duration of the test.
func setup(t *testing.T) *env {
	t.Helper()
	e := &env{
		out:      new(bytes.Buffer),
		engine:   &fakeEngine{ready: engine.Readiness{Ready: true, Elevated: true, ModuleVersion: "2.2.1"}},
		sched:    &fakeScheduler{registered: map[string]window.Window{}},
		elevated: true,
		aukera:   true,
	}
	dir := t.TempDir()

	oldStdout, oldNow, oldElevated, oldNotify, oldHost := stdout, now, isElevated, notify, hostInfo
	oldStore, oldEngine, oldAukera, oldConfig := openStore, newEngine, aukeraOpen, config
	t.Cleanup(func() {
		stdout, now, isElevated, notify, hostInfo = oldStdout, oldNow, oldElevated, oldNotify, oldHost
		openStore, newEngine, aukeraOpen, config = oldStore, oldEngine, oldAukera, oldConfig
	})

	stdout = e.out
	now = func() time.Time { return monday }
	isElevated = func() bool { return e.elevated }
	notify = func(m notification.Message) error {
		e.messages = append(e.messages, m)
		return nil
	}
	hostInfo = func(context.Context) report.Host { return report.Host{Hostname: "host1"} }
	openStore = func() (*store.Store, error) { return store.New(store.NewDir(dir), e.sched), nil }
	newEngine = func() engine.Engine { return e.engine }
	aukeraOpen = func(int, string) (bool, error) { return e.aukera, nil }
	config = newSettings()
	return e
}

func execute(c subcommands.Command) subcommands.ExitStatus {
	return c.Execute(context.Background(), flag.NewFlagSet(c.Name(), flag.ContinueOnError))
}

func weekly() *createCmd {
	return &createCmd{name: "Weekly", start: "22:00", days: "Sunday,Wednesday", duration: 120, categories: "Security"}
}

// stored reads a window back from the fake environment.
func stored(t *testing.T, name string) window.Window {
	t.Helper()
	st, err := openStore()
	if err != nil {
		t.Fatalf("openStore() failed: %v", err)
	}
	w, err := st.Get(context.Background(), name)
	if err != nil {
		t.Fatalf("Get(%q) failed: %v", name, err)
	}
	return w
}

func TestCommandInfo(t *testing.T) {
	for _, tt := range []struct {
		cmd  subcommands.Command
		name string
	}{
		{&createCmd{}, "create"},
		{&removeCmd{}, "remove"},
		{&listCmd{}, "list"},
		{&startCmd{}, "start"},
		{&reportCmd{}, "report"},
		{&searchCmd{}, "search"},
		{&downloadCmd{}, "download"},
		{&installCmd{}, "install"},
		{&hideCmd{}, "hide"},
		{&hideCmd{unhide: true}, "unhide"},
		{&historyCmd{}, "history"},
		{&rebootCmd{}, "reboot"},
	} {
		if got := tt.cmd.Name(); got != tt.name {
			t.Errorf("Name() got: %q, want: %q", got, tt.name)
		}
		if got := tt.cmd.Synopsis(); got == "" {
			t.Errorf("%s: Synopsis() got: %q, want: not empty", tt.name, got)
		}
		if got := tt.cmd.Usage(); !strings.Contains(got, tt.name) {
			t.Errorf("%s: Usage() got: %q, want the command name", tt.name, got)
		}
	}
}

func TestCreate(t *testing.T) {
	for _, tt := range []struct {
		desc     string
		cmd      *createCmd
		elevated bool
		want     subcommands.ExitStatus
	}{
		{"valid", weekly(), true, subcommands.ExitSuccess},
		{"missing name", &createCmd{start: "22:00", days: "Sunday"}, true, subcommands.ExitUsageError},
		{"bad start", &createCmd{name: "Weekly", start: "25:00", days: "Sunday", duration: 120}, true, subcommands.ExitFailure},
		{"no days", &createCmd{name: "Weekly", start: "22:00", duration: 120}, true, subcommands.ExitFailure},
		{"bad day", &createCmd{name: "Weekly", start: "22:00", days: "Someday", duration: 120}, true, subcommands.ExitFailure},
		{"bad category", &createCmd{name: "Weekly", start: "22:00", days: "Sunday", duration: 120, categories: "Firmware"}, true, subcommands.ExitFailure},
		{"bad name", &createCmd{name: "Week/ly", start: "22:00", days: "Sunday", duration: 120}, true, subcommands.ExitFailure},
		{"not elevated", weekly(), false, subcommands.ExitFailure},
	} {
		t.Run(tt.desc, func(t *testing.T) {
			e := setup(t)
			e.elevated = tt.elevated
			if got := execute(tt.cmd); got != tt.want {
				t.Fatalf("Execute() got: %v, want: %v\n%s", got, tt.want, e.out)
			}
			_, registered := e.sched.registered[tt.cmd.name]
			if registered != (tt.want == subcommands.ExitSuccess) {
				t.Errorf("trigger registered: got %t, want %t", registered, !registered)
			}
		})
	}
}

func TestCreateStoresWindow(t *testing.T) {
	e := setup(t)
	if got := execute(weekly()); got != subcommands.ExitSuccess {
		t.Fatalf("Execute() got: %v, want: %v\n%s", got, subcommands.ExitSuccess, e.out)
	}
	w := stored(t, "Weekly")
	want := window.Window{
		Name:             "Weekly",
		StartTime:        schedule.TimeOfDay{Hour: 22},
		Duration:         120,
		DaysOfWeek:       window.Days{time.Sunday, time.Wednesday},
		UpdateCategories: []window.Category{window.Security},
		CreatedOn:        monday,
		LastModified:     monday,
	}
	next := time.Date(2026, 10, 21, 22, 0, 0, 0, time.UTC)
	want.NextRun = &next
	if diff := cmp.Diff(want, w); diff != "" {
		t.Errorf("stored window returned diff (-want +got):\n%s", diff)
	}
}

func TestListRemove(t *testing.T) {
	e := setup(t)
	if got := execute(weekly()); got != subcommands.ExitSuccess {
		t.Fatalf("create got: %v, want: %v\n%s", got, subcommands.ExitSuccess, e.out)
	}

	e.out.Reset()
	if got := execute(&listCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("list got: %v, want: %v", got, subcommands.ExitSuccess)
	}
	if !strings.Contains(e.out.String(), "Weekly") {
		t.Errorf("list output %q does not name the window", e.out)
	}

	e.out.Reset()
	if got := execute(&listCmd{json: true}); got != subcommands.ExitSuccess {
		t.Fatalf("list --json got: %v, want: %v", got, subcommands.ExitSuccess)
	}
	var ws []window.Window
	if err := json.Unmarshal(e.out.Bytes(), &ws); err != nil {
		t.Fatalf("list --json output is not JSON: %v\n%s", err, e.out)
	}
	if len(ws) != 1 || ws[0].Name != "Weekly" {
		t.Errorf("list --json got: %+v, want one window named Weekly", ws)
	}

	if got := execute(&removeCmd{name: "Weekly"}); got != subcommands.ExitSuccess {
		t.Fatalf("remove got: %v, want: %v\n%s", got, subcommands.ExitSuccess, e.out)
	}
	if _, ok := e.sched.registered["Weekly"]; ok {
		t.Errorf("remove left the trigger registered")
	}
	if got := execute(&removeCmd{name: "Weekly"}); got != subcommands.ExitFailure {
		t.Errorf("second remove got: %v, want: %v", got, subcommands.ExitFailure)
	}

	e.out.Reset()
	if got := execute(&listCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("list got: %v, want: %v", got, subcommands.ExitSuccess)
	}
	if !strings.Contains(e.out.String(), "No maintenance windows configured.") {
		t.Errorf("list output %q, want no windows", e.out)
	}
}

func TestStart(t *testing.T) {
	for _, tt := range []struct {
		desc        string
		allowReboot bool
		ready       bool
		aukera      bool
		install     engine.InstallResult
		err         error
		wantRun     bool
		wantLastRun bool
		wantTitles  []string
	}{
		{
			desc:        "success",
			ready:       true,
			aukera:      true,
			install:     engine.InstallResult{Updates: []engine.Update{{KB: "KB1", Result: "Installed"}}},
			wantRun:     true,
			wantLastRun: true,
			wantTitles:  []string{"Installing Updates"},
		},
		{
			desc:        "reboot pending",
			ready:       true,
			aukera:      true,
			install:     engine.InstallResult{Updates: []engine.Update{{KB: "KB1", Result: "Installed"}}, RebootRequired: true},
			wantRun:     true,
			wantLastRun: true,
			wantTitles:  []string{"Installing Updates", "Reboot Your Machine"},
		},
		{
			desc:        "reboot allowed",
			allowReboot: true,
			ready:       true,
			aukera:      true,
			install:     engine.InstallResult{RebootRequired: true},
			wantRun:     true,
			wantLastRun: true,
			wantTitles:  []string{"Installing Updates"},
		},
		{
			desc:       "engine failure",
			ready:      true,
			aukera:     true,
			err:        errors.New("boom"),
			wantRun:    true,
			wantTitles: []string{"Installing Updates"},
		},
		{
			desc:   "not ready",
			aukera: true,
		},
		{
			desc:  "aukera closed",
			ready: true,
		},
	} {
		t.Run(tt.desc, func(t *testing.T) {
			e := setup(t)
			config.AukeraEnabled = true
			c := weekly()
			c.allowReboot = tt.allowReboot
			if got := execute(c); got != subcommands.ExitSuccess {
				t.Fatalf("create got: %v, want: %v\n%s", got, subcommands.ExitSuccess, e.out)
			}
			e.engine.ready.Ready = tt.ready
			e.engine.install = tt.install
			e.engine.err = tt.err
			e.aukera = tt.aukera

			if got := execute(&startCmd{name: "Weekly"}); got != subcommands.ExitSuccess {
				t.Fatalf("start got: %v, want: %v\n%s", got, subcommands.ExitSuccess, e.out)
			}
			if ran := len(e.engine.requests) > 0; ran != tt.wantRun {
				t.Errorf("engine install called: got %t, want %t", ran, tt.wantRun)
			}
			if w := stored(t, "Weekly"); (w.LastRun != nil) != tt.wantLastRun {
				t.Errorf("LastRun got: %v, want set: %t", w.LastRun, tt.wantLastRun)
			} else if tt.wantLastRun && !w.LastRun.Equal(monday) {
				t.Errorf("LastRun got: %v, want: %v", w.LastRun, monday)
			}
			var titles []string
			for _, m := range e.messages {
				titles = append(titles, m.Title)
			}
			if diff := cmp.Diff(tt.wantTitles, titles); diff != "" {
				t.Errorf("notifications returned diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStartRequest(t *testing.T) {
	e := setup(t)
	c := weekly()
	c.categories = "Security,Critical"
	c.allowReboot = true
	if got := execute(c); got != subcommands.ExitSuccess {
		t.Fatalf("create got: %v, want: %v\n%s", got, subcommands.ExitSuccess, e.out)
	}
	if got := execute(&startCmd{name: "Weekly"}); got != subcommands.ExitSuccess {
		t.Fatalf("start got: %v, want: %v\n%s", got, subcommands.ExitSuccess, e.out)
	}
	want := []engine.Request{{Categories: []string{"Security Updates", "Critical Updates"}, Reboot: engine.RebootAuto}}
	if diff := cmp.Diff(want, e.engine.requests); diff != "" {
		t.Errorf("engine requests returned diff (-want +got):\n%s", diff)
	}
}

func TestStartOutsideSlot(t *testing.T) {
	for _, tt := range []struct {
		desc string
		now  time.Time
		want bool
	}{
		{"outside", monday, true},
		{"inside", time.Date(2026, 10, 18, 22, 30, 0, 0, time.UTC), false},
	} {
		t.Run(tt.desc, func(t *testing.T) {
			e := setup(t)
			now = func() time.Time { return tt.now }
			if got := execute(weekly()); got != subcommands.ExitSuccess {
				t.Fatalf("create got: %v, want: %v\n%s", got, subcommands.ExitSuccess, e.out)
			}
			e.out.Reset()
			if got := execute(&startCmd{name: "Weekly"}); got != subcommands.ExitSuccess {
				t.Fatalf("start got: %v, want: %v\n%s", got, subcommands.ExitSuccess, e.out)
			}
			if got := strings.Contains(e.out.String(), "outside its slot"); got != tt.want {
				t.Errorf("start output mentions the slot: got %t, want %t\n%s", got, tt.want, e.out)
			}
			if len(e.engine.requests) != 1 {
				t.Errorf("engine install calls got: %d, want: 1", len(e.engine.requests))
			}
		})
	}
}

func TestStartErrors(t *testing.T) {
	e := setup(t)
	if got := execute(&startCmd{}); got != subcommands.ExitUsageError {
		t.Errorf("start without name got: %v, want: %v", got, subcommands.ExitUsageError)
	}
	if got := execute(&startCmd{name: "Missing"}); got != subcommands.ExitFailure {
		t.Errorf("start of a missing window got: %v, want: %v", got, subcommands.ExitFailure)
	}
	e.elevated = false
	if got := execute(&startCmd{name: "Weekly"}); got != subcommands.ExitFailure {
		t.Errorf("start without elevation got: %v, want: %v", got, subcommands.ExitFailure)
	}
}

func TestReport(t *testing.T) {
	e := setup(t)
	if got := execute(weekly()); got != subcommands.ExitSuccess {
		t.Fatalf("create got: %v, want: %v\n%s", got, subcommands.ExitSuccess, e.out)
	}
	if got := execute(&startCmd{name: "Weekly"}); got != subcommands.ExitSuccess {
		t.Fatalf("start got: %v, want: %v\n%s", got, subcommands.ExitSuccess, e.out)
	}
	e.engine.history = []engine.HistoryEntry{
		{Date: monday.Add(-time.Hour), KB: "KB100", Title: "Earlier today", Result: "Succeeded", Operation: "Installation"},
		{Date: monday.Add(-48 * time.Hour), KB: "KB200", Title: "Last week", Result: "Succeeded", Operation: "Installation"},
	}

	e.out.Reset()
	if got := execute(&reportCmd{name: "Weekly", format: report.FormatJSON}); got != subcommands.ExitSuccess {
		t.Fatalf("report got: %v, want: %v\n%s", got, subcommands.ExitSuccess, e.out)
	}
	var r report.ComplianceReport
	if err := json.Unmarshal(e.out.Bytes(), &r); err != nil {
		t.Fatalf("report output is not JSON: %v\n%s", err, e.out)
	}
	var kbs []string
	for _, u := range r.Updates {
		kbs = append(kbs, u.KB)
	}
	if diff := cmp.Diff([]string{"KB100"}, kbs); diff != "" {
		t.Errorf("report updates returned diff (-want +got):\n%s", diff)
	}
	if r.Host.Hostname != "host1" {
		t.Errorf("report host got: %q, want: %q", r.Host.Hostname, "host1")
	}

	for _, c := range []*reportCmd{{format: report.FormatText}, {name: "Weekly", format: "xml"}} {
		if got := execute(c); got != subcommands.ExitUsageError {
			t.Errorf("report %+v got: %v, want: %v", *c, got, subcommands.ExitUsageError)
		}
	}
	if got := execute(&reportCmd{name: "Missing", format: report.FormatText}); got != subcommands.ExitFailure {
		t.Errorf("report of a missing window got: %v, want: %v", got, subcommands.ExitFailure)
	}
}

func TestSearch(t *testing.T) {
	for _, tt := range []struct {
		desc     string
		cmd      *searchCmd
		want     subcommands.ExitStatus
		requests []engine.Request
	}{
		{
			desc:     "all",
			cmd:      &searchCmd{},
			want:     subcommands.ExitSuccess,
			requests: []engine.Request{{}},
		},
		{
			desc:     "selection",
			cmd:      &searchCmd{categories: "Important", kbs: "123", max: 3, hidden: true},
			want:     subcommands.ExitSuccess,
			requests: []engine.Request{{Categories: []string{"Updates", "Update Rollups"}, KBs: []string{"KB123"}, Max: 3, Hidden: true}},
		},
		{desc: "bad category", cmd: &searchCmd{categories: "Firmware"}, want: subcommands.ExitFailure},
		{desc: "bad kb", cmd: &searchCmd{kbs: "KBabc"}, want: subcommands.ExitFailure},
	} {
		t.Run(tt.desc, func(t *testing.T) {
			e := setup(t)
			e.engine.updates = []engine.Update{{KB: "KB123", Title: "Cumulative Update", Size: "10 MB"}}
			if got := execute(tt.cmd); got != tt.want {
				t.Fatalf("Execute() got: %v, want: %v\n%s", got, tt.want, e.out)
			}
			if diff := cmp.Diff(tt.requests, e.engine.requests); diff != "" {
				t.Errorf("engine requests returned diff (-want +got):\n%s", diff)
			}
			if tt.want == subcommands.ExitSuccess && !strings.Contains(e.out.String(), "KB123") {
				t.Errorf("output %q does not list the update", e.out)
			}
		})
	}
}

func TestDownload(t *testing.T) {
	e := setup(t)
	e.engine.updates = []engine.Update{{KB: "KB1", Result: "Downloaded"}, {KB: "KB2", Result: "Failed"}}
	if got := execute(&downloadCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("Execute() got: %v, want: %v\n%s", got, subcommands.ExitSuccess, e.out)
	}
	if !strings.Contains(e.out.String(), "2 updates downloaded") {
		t.Errorf("output %q, want two updates", e.out)
	}
	e.elevated = false
	if got := execute(&downloadCmd{}); got != subcommands.ExitFailure {
		t.Errorf("Execute() without elevation got: %v, want: %v", got, subcommands.ExitFailure)
	}
}

func TestInstall(t *testing.T) {
	for _, tt := range []struct {
		desc       string
		cmd        *installCmd
		result     engine.InstallResult
		err        error
		want       subcommands.ExitStatus
		wantOut    string
		wantTitles []string
	}{
		{
			desc:    "no reboot",
			cmd:     &installCmd{reboot: "ignore"},
			result:  engine.InstallResult{Updates: []engine.Update{{KB: "KB1", Result: "Installed"}}},
			want:    subcommands.ExitSuccess,
			wantOut: "No reboot needed.",
		},
		{
			desc:    "reboot required",
			cmd:     &installCmd{reboot: "ignore"},
			result:  engine.InstallResult{RebootRequired: true},
			want:    subcommands.ExitSuccess,
			wantOut: "Please reboot",
		},
		{
			desc:       "scheduled reboot",
			cmd:        &installCmd{reboot: "schedule", rebootAt: "23:00"},
			result:     engine.InstallResult{RebootRequired: true},
			want:       subcommands.ExitSuccess,
			wantTitles: []string{"Reboot Scheduled"},
		},
		{
			desc: "flag conflict",
			cmd:  &installCmd{reboot: "auto", rebootAt: "23:00"},
			want: subcommands.ExitUsageError,
		},
		{
			desc: "engine failure",
			cmd:  &installCmd{reboot: "ignore"},
			err:  errors.New("boom"),
			want: subcommands.ExitFailure,
		},
	} {
		t.Run(tt.desc, func(t *testing.T) {
			e := setup(t)
			e.engine.install = tt.result
			e.engine.err = tt.err
			if got := execute(tt.cmd); got != tt.want {
				t.Fatalf("Execute() got: %v, want: %v\n%s", got, tt.want, e.out)
			}
			if !strings.Contains(e.out.String(), tt.wantOut) {
				t.Errorf("output %q does not contain %q", e.out, tt.wantOut)
			}
			var titles []string
			for _, m := range e.messages {
				titles = append(titles, m.Title)
			}
			if diff := cmp.Diff(tt.wantTitles, titles); diff != "" {
				t.Errorf("notifications returned diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHide(t *testing.T) {
	e := setup(t)
	if got := execute(&hideCmd{}); got != subcommands.ExitUsageError {
		t.Errorf("hide without kbs got: %v, want: %v", got, subcommands.ExitUsageError)
	}
	if got := execute(&hideCmd{kbs: "abc"}); got != subcommands.ExitFailure {
		t.Errorf("hide with a bad kb got: %v, want: %v", got, subcommands.ExitFailure)
	}
	e.engine.updates = []engine.Update{{KB: "KB1", Title: "Cumulative Update"}}
	if got := execute(&hideCmd{kbs: "KB1,2"}); got != subcommands.ExitSuccess {
		t.Errorf("hide got: %v, want: %v\n%s", got, subcommands.ExitSuccess, e.out)
	}
	if !strings.Contains(e.out.String(), "No update found for KB2.") {
		t.Errorf("hide output %q does not report the missing update", e.out)
	}
	if got := execute(&hideCmd{kbs: "3", unhide: true}); got != subcommands.ExitSuccess {
		t.Errorf("unhide got: %v, want: %v\n%s", got, subcommands.ExitSuccess, e.out)
	}
	if diff := cmp.Diff([]string{"KB1", "KB2"}, e.engine.hidden); diff != "" {
		t.Errorf("hidden returned diff (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"KB3"}, e.engine.unhidden); diff != "" {
		t.Errorf("unhidden returned diff (-want +got):\n%s", diff)
	}
	e.elevated = false
	if got := execute(&hideCmd{kbs: "1"}); got != subcommands.ExitFailure {
		t.Errorf("hide without elevation got: %v, want: %v", got, subcommands.ExitFailure)
	}
}

func TestHistory(t *testing.T) {
	for _, tt := range []struct {
		desc string
		cmd  *historyCmd
		want subcommands.ExitStatus
		kbs  []string
	}{
		{"all", &historyCmd{}, subcommands.ExitSuccess, []string{"KB100", "KB200"}},
		{"since", &historyCmd{since: "2026-10-18"}, subcommands.ExitSuccess, []string{"KB100"}},
		{"bad since", &historyCmd{since: "yesterday"}, subcommands.ExitUsageError, nil},
		{"negative last", &historyCmd{last: -1}, subcommands.ExitUsageError, nil},
	} {
		t.Run(tt.desc, func(t *testing.T) {
			e := setup(t)
			e.engine.history = []engine.HistoryEntry{
				{Date: time.Date(2026, 10, 19, 3, 0, 0, 0, time.Local), KB: "KB100", Title: "Recent", Result: "Succeeded", Operation: "Installation"},
				{Date: time.Date(2026, 10, 1, 3, 0, 0, 0, time.Local), KB: "KB200", Title: "Older", Result: "Succeeded", Operation: "Installation"},
			}
			if got := execute(tt.cmd); got != tt.want {
				t.Fatalf("Execute() got: %v, want: %v\n%s", got, tt.want, e.out)
			}
			for _, kb := range []string{"KB100", "KB200"} {
				want := false
				for _, k := range tt.kbs {
					want = want || k == kb
				}
				if got := strings.Contains(e.out.String(), kb); got != want {
					t.Errorf("output lists %s: got %t, want %t\n%s", kb, got, want, e.out)
				}
			}
		})
	}
}

func TestReboot(t *testing.T) {
	for _, tt := range []struct {
		desc       string
		cmd        *rebootCmd
		pending    bool
		err        error
		want       subcommands.ExitStatus
		wantOut    string
		wantTitles []string
	}{
		{"none", &rebootCmd{notify: true}, false, nil, subcommands.ExitSuccess, "No reboot is pending.", nil},
		{"pending", &rebootCmd{}, true, nil, subcommands.ExitSuccess, "A reboot is pending.", nil},
		{"pending notify", &rebootCmd{notify: true}, true, nil, subcommands.ExitSuccess, "A reboot is pending.", []string{"Reboot Your Machine"}},
		{"error", &rebootCmd{}, false, errors.New("boom"), subcommands.ExitFailure, "boom", nil},
	} {
		t.Run(tt.desc, func(t *testing.T) {
			e := setup(t)
			e.engine.reboot = tt.pending
			e.engine.err = tt.err
			if got := execute(tt.cmd); got != tt.want {
				t.Fatalf("Execute() got: %v, want: %v\n%s", got, tt.want, e.out)
			}
			if !strings.Contains(e.out.String(), tt.wantOut) {
				t.Errorf("output %q does not contain %q", e.out, tt.wantOut)
			}
			var titles []string
			for _, m := range e.messages {
				titles = append(titles, m.Title)
			}
			if diff := cmp.Diff(tt.wantTitles, titles); diff != "" {
				t.Errorf("notifications returned diff (-want +got):\n%s", diff)
			}
		})
	}
}
