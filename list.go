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
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/deck"
	"github.com/google/patchwindow/cablib"
	"github.com/google/subcommands"
	"golang.org/x/net/context"
)

// Available flags
type listCmd struct {
	json bool
}

func (listCmd) Name() string     { return "list" }
func (listCmd) Synopsis() string { return "list the configured maintenance windows." }
func (listCmd) Usage() string {
	return fmt.Sprintf("%s list [--json]\n", filepath.Base(os.Args[0]))
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "print the windows as a JSON array.")
}

func (c *listCmd) Execute(ctx context.Context, flags *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	st, err := openStore()
	if err != nil {
		return failure(cablib.EvtErrStore, err, "Failed to open the maintenance window store")
	}
	defer st.Close()

	windows, err := st.List(ctx)
	if err != nil {
		return failure(cablib.EvtErrStore, err, "Failed to list maintenance windows")
	}
	deck.InfofA("Found %d maintenance windows.", len(windows)).With(eventID(cablib.EvtWindowList)).Go()

	if c.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(windows); err != nil {
			return failure(cablib.EvtErrMisc, err, "Failed to encode maintenance windows")
		}
		return subcommands.ExitSuccess
	}
	if len(windows) == 0 {
		fmt.Fprintln(stdout, "No maintenance windows configured.")
		return subcommands.ExitSuccess
	}
	for _, w := range windows {
		fmt.Fprintf(stdout, "%s\n\n", w)
	}
	return subcommands.ExitSuccess
}
