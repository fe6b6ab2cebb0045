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
	"github.com/google/subcommands"
	"golang.org/x/net/context"
)

// Available flags
type removeCmd struct {
	name string
}

func (removeCmd) Name() string     { return "remove" }
func (removeCmd) Synopsis() string { return "remove a maintenance window and its scheduled task." }
func (removeCmd) Usage() string {
	return fmt.Sprintf("%s remove --name=<name>\n", filepath.Base(os.Args[0]))
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "name of the maintenance window to remove.")
}

func (c *removeCmd) Execute(ctx context.Context, flags *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.name == "" {
		return usage(c, "--name is required.")
	}
	if err := requireElevation(c.Name()); err != nil {
		return failure(cablib.EvtErrPermission, err, "Failed to remove maintenance window %q", c.name)
	}
	st, err := openStore()
	if err != nil {
		return failure(cablib.EvtErrStore, err, "Failed to open the maintenance window store")
	}
	defer st.Close()

	if err := st.Remove(ctx, c.name); err != nil {
		return failure(cablib.EvtErrStore, err, "Failed to remove maintenance window %q", c.name)
	}
	fmt.Fprintf(stdout, "Removed maintenance window %s.\n", c.name)
	return subcommands.ExitSuccess
}
