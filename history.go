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
	"time"

	"github.com/google/deck"
	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/report"
	"github.com/google/subcommands"
	"golang.org/x/net/context"
)

// Available flags
type historyCmd struct {
	last  int
	since string
}

func (historyCmd) Name() string     { return "history" }
func (historyCmd) Synopsis() string { return "Get a list of the installed updates on the device." }
func (historyCmd) Usage() string {
	return fmt.Sprintf("%s history [--last=<n>] [--since=<YYYY-MM-DD>]\n", filepath.Base(os.Args[0]))
}
func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.last, "last", 0, "only the last n history entries; 0 for all of them.")
	f.StringVar(&c.since, "since", "", "only entries dated on or after this local date.")
}

func (c *historyCmd) Execute(ctx context.Context, flags *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.last < 0 {
		return usage(c, "--last must not be negative.")
	}
	var since time.Time
	if c.since != "" {
		t, err := time.ParseInLocation(time.DateOnly, c.since, time.Local)
		if err != nil {
			return usage(c, fmt.Sprintf("Invalid --since date %q.", c.since))
		}
		since = t
	}

	deck.InfoA("Collecting installed updates...").With(eventID(cablib.EvtHistory)).Go()
	entries, err := newEngine().History(ctx, c.last)
	if err != nil {
		return failure(cablib.EvtErrHistory, err, "Failed to get update history")
	}
	if !since.IsZero() {
		entries = report.Qualifying(entries, since)
	}
	if len(entries) == 0 {
		fmt.Fprintln(stdout, "No update history found.")
		return subcommands.ExitSuccess
	}
	for _, e := range entries {
		fmt.Fprintf(stdout, "%s  %-10s %-12s %-10s %s\n", e.Date.Format(time.DateTime), e.KB, e.Operation, e.Result, e.Title)
	}
	return subcommands.ExitSuccess
}
