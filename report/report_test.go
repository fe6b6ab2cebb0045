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

package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/engine"
	"github.com/google/patchwindow/schedule"
	"github.com/google/patchwindow/window"
	"gopkg.in/yaml.v3"
)

type fakeStore map[string]window.Window

func (f fakeStore) Get(ctx context.Context, name string) (window.Window, error) {
	w, ok := f[name]
	if !ok {
		return w, fmt.Errorf("%w: %s", cablib.ErrNotFound, name)
	}
	return w, nil
}

type fakeHistory struct {
	entries []engine.HistoryEntry
	err     error
	calls   int
}

func (f *fakeHistory) History(ctx context.Context, last int) ([]engine.HistoryEntry, error) {
	f.calls++
	return f.entries, f.err
}

var testHost = Host{Hostname: "host1", OS: "windows", Platform: "Microsoft Windows Server 2022", PlatformVersion: "10.0.20348", MachineID: "abc"}

func hostInfo(context.Context) Host { return testHost }

func testWindow(lastRun *time.Time) window.Window {
	return window.Window{
		Name:       "Weekly",
		StartTime:  schedule.TimeOfDay{Hour: 22},
		Duration:   120,
		DaysOfWeek: window.Days{time.Sunday},
		LastRun:    lastRun,
	}
}

var (
	lastRun = time.Date(2026, 10, 18, 22, 0, 0, 0, time.UTC)
	now     = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	history = []engine.HistoryEntry{
		{Date: time.Date(2026, 10, 17, 23, 59, 0, 0, time.UTC), KB: "KB0", Result: "Succeeded"},
		{Date: time.Date(2026, 10, 18, 3, 0, 0, 0, time.UTC), KB: "KB1", Result: "Succeeded"},
		{Date: time.Date(2026, 10, 18, 22, 30, 0, 0, time.UTC), KB: "KB2", Result: "Failed"},
	}
)

func TestReport(t *testing.T) {
	h := &fakeHistory{entries: history}
	g := &Generator{Store: fakeStore{"Weekly": testWindow(&lastRun)}, Engine: h, HostInfo: hostInfo}
	got, err := g.Report(context.Background(), "Weekly", now)
	if err != nil {
		t.Fatalf("Report() returned unexpected error: %v", err)
	}
	since := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	want := ComplianceReport{
		Generated: now,
		Host:      testHost,
		Window:    testWindow(&lastRun),
		Since:     &since,
		// Entries earlier on the day of the last run still count.
		Updates: history[1:],
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Report() returned unexpected diff (-want +got):\n%s", diff)
	}
}

func TestReportNeverRun(t *testing.T) {
	h := &fakeHistory{entries: history}
	g := &Generator{Store: fakeStore{"Weekly": testWindow(nil)}, Engine: h, HostInfo: hostInfo}
	got, err := g.Report(context.Background(), "Weekly", now)
	if err != nil {
		t.Fatalf("Report() returned unexpected error: %v", err)
	}
	if len(got.Updates) != 0 || got.Since != nil {
		t.Errorf("Report() got updates %v since %v, want none", got.Updates, got.Since)
	}
	if h.calls != 0 {
		t.Errorf("Report() read history %d times, want 0", h.calls)
	}
}

func TestReportErrors(t *testing.T) {
	engineErr := fmt.Errorf("%w: exit status 1", cablib.ErrEngine)
	tests := []struct {
		desc string
		name string
		err  error
		want error
	}{
		{"missing window", "Other", nil, cablib.ErrNotFound},
		{"history failure", "Weekly", engineErr, cablib.ErrEngine},
	}
	for _, tt := range tests {
		g := &Generator{Store: fakeStore{"Weekly": testWindow(&lastRun)}, Engine: &fakeHistory{err: tt.err}, HostInfo: hostInfo}
		if _, err := g.Report(context.Background(), tt.name, now); !errors.Is(err, tt.want) {
			t.Errorf("%s: Report() got: %v, want: %v", tt.desc, err, tt.want)
		}
	}
}

func TestSinceKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*60*60)
	lr := time.Date(2026, 10, 18, 23, 30, 0, 0, loc)
	want := time.Date(2026, 10, 18, 0, 0, 0, 0, loc)
	if got := Since(lr); !got.Equal(want) {
		t.Errorf("Since(%v) got: %v, want: %v", lr, got, want)
	}
}

func TestRender(t *testing.T) {
	since := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	r := ComplianceReport{
		Generated: now,
		Host:      testHost,
		Window:    testWindow(&lastRun),
		Since:     &since,
		Updates:   history[1:],
	}

	var text bytes.Buffer
	if err := Render(&text, r, FormatText); err != nil {
		t.Fatalf("Render(text) returned unexpected error: %v", err)
	}
	for _, s := range []string{"maintenance window Weekly", "since 2026-10-18: 2", "KB2", "host1"} {
		if !strings.Contains(text.String(), s) {
			t.Errorf("Render(text) output missing %q:\n%s", s, text.String())
		}
	}

	var js bytes.Buffer
	if err := Render(&js, r, FormatJSON); err != nil {
		t.Fatalf("Render(json) returned unexpected error: %v", err)
	}
	var back ComplianceReport
	if err := json.Unmarshal(js.Bytes(), &back); err != nil {
		t.Fatalf("json.Unmarshal() returned unexpected error: %v", err)
	}
	if diff := cmp.Diff(r, back); diff != "" {
		t.Errorf("Render(json) round trip returned unexpected diff (-want +got):\n%s", diff)
	}

	var ym bytes.Buffer
	if err := Render(&ym, r, FormatYAML); err != nil {
		t.Fatalf("Render(yaml) returned unexpected error: %v", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(ym.Bytes(), &doc); err != nil {
		t.Fatalf("yaml.Unmarshal() returned unexpected error: %v", err)
	}
	w, ok := doc["window"].(map[string]any)
	if !ok {
		t.Fatalf("Render(yaml) window got: %T, want map", doc["window"])
	}
	if diff := cmp.Diff([]any{"Sunday"}, w["daysOfWeek"]); diff != "" {
		t.Errorf("Render(yaml) daysOfWeek returned unexpected diff (-want +got):\n%s", diff)
	}
	if w["startTime"] != "22:00" {
		t.Errorf("Render(yaml) startTime got: %v, want: 22:00", w["startTime"])
	}

	if err := Render(&bytes.Buffer{}, r, "xml"); !errors.Is(err, cablib.ErrValidation) {
		t.Errorf("Render(xml) got: %v, want: %v", err, cablib.ErrValidation)
	}
}
