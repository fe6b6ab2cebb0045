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

	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/schedule"
	"github.com/google/patchwindow/window"
	"github.com/google/subcommands"
	"golang.org/x/net/context"
)

// Available flags
type createCmd struct {
	name, start, days, categories string
	duration                      int
	allowReboot                   bool
}

func (createCmd) Name() string     { return "create" }
func (createCmd) Synopsis() string { return "create or replace a recurring maintenance window." }
func (createCmd) Usage() string {
	return fmt.Sprintf("%s create --name=<name> --start=<HH:mm> --days=<Sunday,...> [--duration=<minutes>] [--categories=<Security,...>] [--allow_reboot]\n", filepath.Base(os.Args[0]))
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "name of the maintenance window.")
	f.StringVar(&c.start, "start", "", "local start time of the window in 24 hour HH:mm format.")
	f.StringVar(&c.days, "days", "", "comma separated list of weekdays the window opens on.")
	f.IntVar(&c.duration, "duration", 120, "advisory length of the window in minutes.")
	f.StringVar(&c.categories, "categories", "", fmt.Sprintf("comma separated list of update categories to install, any of %v. Empty installs every category.", window.Categories))
	f.BoolVar(&c.allowReboot, "allow_reboot", false, "let the window reboot the machine when updates require it.")
}

// build returns the maintenance window described by the flags.
func (c *createCmd) build() (window.Window, error) {
	var w window.Window
	start, err := schedule.ParseTimeOfDay(c.start)
	if err != nil {
		return w, fmt.Errorf("%w: %w", cablib.ErrValidation, err)
	}
	days, err := schedule.ParseWeekdays(splitList(c.days))
	if err != nil {
		return w, fmt.Errorf("%w: %w", cablib.ErrValidation, err)
	}
	cats, err := window.ParseCategories(splitList(c.categories))
	if err != nil {
		return w, err
	}
	return window.Window{
		Name:             c.name,
		StartTime:        start,
		Duration:         c.duration,
		DaysOfWeek:       days,
		UpdateCategories: cats,
		AllowReboot:      c.allowReboot,
	}, nil
}

func (c *createCmd) Execute(ctx context.Context, flags *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.name == "" {
		return usage(c, "--name is required.")
	}
	w, err := c.build()
	if err != nil {
		return failure(cablib.EvtErrValidation, err, "Invalid maintenance window %q", c.name)
	}
	if err := w.Validate(); err != nil {
		return failure(cablib.EvtErrValidation, err, "Invalid maintenance window %q", c.name)
	}
	if err := requireElevation(c.Name()); err != nil {
		return failure(cablib.EvtErrPermission, err, "Failed to create maintenance window %q", c.name)
	}
	st, err := openStore()
	if err != nil {
		return failure(cablib.EvtErrStore, err, "Failed to open the maintenance window store")
	}
	defer st.Close()

	created, err := st.Create(ctx, w, now())
	if err != nil {
		return failure(cablib.EvtErrStore, err, "Failed to create maintenance window %q", c.name)
	}
	fmt.Fprintln(stdout, created)
	return subcommands.ExitSuccess
}
