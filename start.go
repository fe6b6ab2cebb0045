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
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/deck"
	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/engine"
	"github.com/google/patchwindow/notification"
	"github.com/google/patchwindow/runner"
	"github.com/google/subcommands"
	"golang.org/x/net/context"
)

// Available flags
type startCmd struct {
	name string
}

func (startCmd) Name() string     { return "start" }
func (startCmd) Synopsis() string { return "run a maintenance window now, as its scheduled task does." }
func (startCmd) Usage() string {
	return fmt.Sprintf("%s start --name=<name>\n", filepath.Base(os.Args[0]))
}

func (c *startCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "name of the maintenance window to run.")
}

func (c *startCmd) Execute(ctx context.Context, flags *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.name == "" {
		return usage(c, "--name is required.")
	}
	if err := requireElevation(c.Name()); err != nil {
		return failure(cablib.EvtErrPermission, err, "Failed to start maintenance window %q", c.name)
	}
	st, err := openStore()
	if err != nil {
		return failure(cablib.EvtErrStore, err, "Failed to open the maintenance window store")
	}
	defer st.Close()

	w, err := st.Get(ctx, c.name)
	if err != nil {
		return failure(cablib.EvtErrStore, err, "Failed to start maintenance window %q", c.name)
	}

	if config.AukeraEnabled {
		open, err := aukeraOpen(config.AukeraPort, w.Name)
		if err != nil {
			deck.ErrorfA("Error getting Aukera maintenance window %q, skipping run:\n%v", w.Name, err).With(eventID(cablib.EvtErrMaintWindow)).Go()
			fmt.Fprintf(stdout, "Maintenance window %s skipped: %v\n", w.Name, err)
			return subcommands.ExitSuccess
		}
		if !open {
			deck.InfofA("Aukera reports maintenance window %q closed, skipping run.", w.Name).With(eventID(cablib.EvtWindowSkip)).Go()
			fmt.Fprintf(stdout, "Maintenance window %s skipped: Aukera reports it closed.\n", w.Name)
			return subcommands.ExitSuccess
		}
	}

	// Manual starts may fall outside the slot; the run goes ahead.
	if !w.Open(now()) {
		deck.WarningfA("Maintenance window %s started outside its slot (%s).", w.Name, w.HumanSchedule()).With(eventID(cablib.EvtWindowStart)).Go()
		fmt.Fprintf(stdout, "Maintenance window %s is outside its slot (%s), running anyway.\n", w.Name, w.HumanSchedule())
	}

	e := newEngine()
	ready, err := e.Ready(ctx)
	if err != nil {
		ready = engine.Readiness{Reason: err.Error()}
	}
	deck.InfofA("Update engine readiness: %+v", ready).With(eventID(cablib.EvtReadiness)).Go()

	if config.Notify && ready.Ready {
		if err := notify(notification.NewInstallingMessage(w.Name, w.Length())); err != nil {
			deck.ErrorfA("Failed to create notification:\n%v", err).With(eventID(cablib.EvtErrNotifications)).Go()
		}
	}

	r := &runner.Runner{
		Engine:           e,
		Store:            st,
		Readiness:        ready,
		AdvanceOnFailure: config.AdvanceOnFailure,
		Clock:            now,
	}
	out, err := r.Run(ctx, w, now())
	if err != nil {
		return failure(cablib.EvtErrStore, err, "Failed to record maintenance window %q run", c.name)
	}
	fmt.Fprintln(stdout, out)

	if out.RebootRequired && !w.AllowReboot && config.Notify {
		if err := notify(notification.NewRebootMessage(w.Name)); err != nil {
			deck.ErrorfA("Failed to create reboot notification:\n%v", err).With(eventID(cablib.EvtErrNotifications)).Go()
		}
	}
	// Engine failures are reported in the outcome and do not fail the command.
	return subcommands.ExitSuccess
}
