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

// Package report builds compliance reports for maintenance windows.
package report

import (
	"context"
	"time"

	"github.com/google/deck"
	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/engine"
	"github.com/google/patchwindow/window"
)

// ComplianceReport lists the updates installed since a window last ran.
type ComplianceReport struct {
	Generated time.Time             `json:"generated" yaml:"generated"`
	Host      Host                  `json:"host" yaml:"host"`
	Window    window.Window         `json:"window" yaml:"window"`
	Since     *time.Time            `json:"since" yaml:"since"`
	Updates   []engine.HistoryEntry `json:"updates" yaml:"updates"`
}

// Getter reads maintenance windows.
type Getter interface {
	Get(ctx context.Context, name string) (window.Window, error)
}

// Historian reads the update installation history.
type Historian interface {
	History(ctx context.Context, last int) ([]engine.HistoryEntry, error)
}

// Generator produces compliance reports.
type Generator struct {
	Store  Getter
	Engine Historian
	// HistoryLimit caps the number of history entries read. Zero reads all of them.
	HistoryLimit int
	// HostInfo identifies the host. Defaults to LocalHost.
	HostInfo func(ctx context.Context) Host
}

// Since is the start of the calendar day of lastRun in its own location. Installation history
// is compared against the day, not the instant, of the last run.
func Since(lastRun time.Time) time.Time {
	y, m, d := lastRun.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, lastRun.Location())
}

// Qualifying returns the entries dated on or after since.
func Qualifying(entries []engine.HistoryEntry, since time.Time) []engine.HistoryEntry {
	out := []engine.HistoryEntry{}
	for _, e := range entries {
		if !e.Date.Before(since) {
			out = append(out, e)
		}
	}
	return out
}

// Report builds the compliance report for the named window.
func (g *Generator) Report(ctx context.Context, name string, now time.Time) (ComplianceReport, error) {
	var r ComplianceReport
	w, err := g.Store.Get(ctx, name)
	if err != nil {
		return r, err
	}
	hostInfo := g.HostInfo
	if hostInfo == nil {
		hostInfo = LocalHost
	}
	r = ComplianceReport{
		Generated: now,
		Host:      hostInfo(ctx),
		Window:    w,
		Updates:   []engine.HistoryEntry{},
	}
	if w.LastRun == nil {
		deck.InfofA("Maintenance window %s has never run, report is empty.", name).With(cablib.EventID(cablib.EvtReport)).Go()
		return r, nil
	}
	since := Since(*w.LastRun)
	r.Since = &since
	hist, err := g.Engine.History(ctx, g.HistoryLimit)
	if err != nil {
		return r, err
	}
	r.Updates = Qualifying(hist, since)
	deck.InfofA("Maintenance window %s report: %d updates since %s.", name, len(r.Updates), since.Format("2006-01-02")).With(cablib.EventID(cablib.EvtReport)).Go()
	return r, nil
}
