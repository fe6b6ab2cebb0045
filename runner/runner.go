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

// Package runner executes a maintenance window against the update engine.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/deck"
	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/engine"
	"github.com/google/patchwindow/window"
	"github.com/google/uuid"
)

// Status is the result of a run.
type Status string

// Run statuses.
const (
	Succeeded Status = "Succeeded"
	Failed    Status = "Failed"
	Skipped   Status = "Skipped"
)

// Outcome describes one run of a maintenance window.
type Outcome struct {
	RunID          string          `json:"runId"`
	Window         string          `json:"window"`
	Status         Status          `json:"status"`
	Reason         string          `json:"reason,omitempty"`
	Started        time.Time       `json:"started"`
	Finished       time.Time       `json:"finished"`
	Updates        []engine.Update `json:"updates"`
	FailedUpdates  int             `json:"failedUpdates"`
	RebootRequired bool            `json:"rebootRequired"`
	LastRun        *time.Time      `json:"lastRun"`
	NextRun        *time.Time      `json:"nextRun"`
}

func (o Outcome) String() string {
	s := fmt.Sprintf("Maintenance window %s run %s: %s", o.Window, o.RunID, o.Status)
	if o.Reason != "" {
		s += " (" + o.Reason + ")"
	}
	s += fmt.Sprintf("\n  Updates: %d, failed: %d, reboot required: %t", len(o.Updates), o.FailedUpdates, o.RebootRequired)
	for _, u := range o.Updates {
		s += "\n    " + u.String()
	}
	if o.NextRun != nil {
		s += "\n  NextRun: " + o.NextRun.Format(time.RFC3339)
	}
	return s
}

// Saver persists run bookkeeping.
type Saver interface {
	Save(ctx context.Context, w window.Window) error
}

// Runner runs maintenance windows.
type Runner struct {
	Engine engine.Engine
	Store  Saver
	// Readiness is the result of the engine capability check made at startup.
	Readiness engine.Readiness
	// AdvanceOnFailure moves NextRun past today even when a run fails.
	AdvanceOnFailure bool
	// Clock reports the time a run finishes.
	Clock func() time.Time
}

func (r *Runner) clock() time.Time {
	if r.Clock == nil {
		return time.Now()
	}
	return r.Clock()
}

// Run installs the updates selected by w. Engine failures are reported in the Outcome; the
// returned error is reserved for failures to record the run.
func (r *Runner) Run(ctx context.Context, w window.Window, now time.Time) (Outcome, error) {
	out := Outcome{
		RunID:   uuid.NewString(),
		Window:  w.Name,
		Started: now,
		LastRun: w.LastRun,
		NextRun: w.NextRun,
	}
	if !r.Readiness.Ready {
		out.Status = Failed
		out.Reason = "update engine not ready: " + r.Readiness.Reason
		out.Finished = r.clock()
		deck.ErrorfA("Maintenance window %s run %s not started: %s", w.Name, out.RunID, out.Reason).With(cablib.EventID(cablib.EvtErrEngine)).Go()
		return r.record(ctx, w, now, out)
	}

	req := engine.Request{Categories: w.EngineCategories(), Reboot: engine.RebootIgnore}
	if w.AllowReboot {
		req.Reboot = engine.RebootAuto
	}
	deck.InfofA("Starting maintenance window %s run %s: categories %v, reboot %s.", w.Name, out.RunID, req.Categories, req.Reboot).With(cablib.EventID(cablib.EvtWindowStart)).Go()

	res, err := r.Engine.Install(ctx, req)
	out.Finished = r.clock()
	if elapsed := out.Finished.Sub(now); w.Duration > 0 && elapsed > w.Length() {
		deck.WarningfA("Maintenance window %s run %s took %s, longer than its %s duration.", w.Name, out.RunID, elapsed.Round(time.Second), w.Length()).With(cablib.EventID(cablib.EvtWindowComplete)).Go()
	}
	if err != nil {
		out.Status = Failed
		out.Reason = err.Error()
		deck.ErrorfA("Maintenance window %s run %s failed: %v", w.Name, out.RunID, err).With(cablib.EventID(cablib.EvtErrEngine)).Go()
		return r.record(ctx, w, now, out)
	}

	out.Status = Succeeded
	out.Updates = res.Updates
	out.RebootRequired = res.RebootRequired
	for _, u := range res.Updates {
		if u.Failed() {
			out.FailedUpdates++
			deck.ErrorfA("Failed to install update:\n%s", u).With(cablib.EventID(cablib.EvtErrInstallFailure)).Go()
			continue
		}
		deck.InfofA("Update result:\n%s", u).With(cablib.EventID(cablib.EvtInstallSuccess)).Go()
	}
	if out.RebootRequired {
		deck.InfofA("Maintenance window %s left a reboot pending.", w.Name).With(cablib.EventID(cablib.EvtRebootRequired)).Go()
	}
	return r.record(ctx, w, now, out)
}

// record updates LastRun and NextRun according to the outcome and saves the window.
func (r *Runner) record(ctx context.Context, w window.Window, now time.Time, out Outcome) (Outcome, error) {
	if out.Status != Succeeded && !r.AdvanceOnFailure {
		return out, nil
	}
	if out.Status == Succeeded {
		last := now
		w.LastRun = &last
	}
	next, err := w.Next(now, true)
	if err != nil {
		return out, fmt.Errorf("computing next run of %s: %w", w.Name, err)
	}
	w.NextRun = &next
	if err := r.Store.Save(ctx, w); err != nil {
		return out, fmt.Errorf("saving maintenance window %s: %w", w.Name, err)
	}
	out.LastRun, out.NextRun = w.LastRun, w.NextRun
	deck.InfofA("Maintenance window %s run %s finished %s, next run %s.", w.Name, out.RunID, out.Status, next.Format(time.RFC3339)).With(cablib.EventID(cablib.EvtWindowComplete)).Go()
	return out, nil
}
