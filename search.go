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
	"strings"

	"github.com/google/deck"
	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/window"
	"github.com/google/subcommands"
	"golang.org/x/net/context"
)

// Available flags
type searchCmd struct {
	categories, kbs string
	max             int
	hidden          bool
}

func (searchCmd) Name() string     { return "search" }
func (searchCmd) Synopsis() string { return "list updates available for install." }
func (searchCmd) Usage() string {
	return fmt.Sprintf("%s search [--categories=<Security,...>] [--kbs=<KBNumber,...>] [--max=<n>] [--hidden]\n", filepath.Base(os.Args[0]))
}

// setSelectionFlags registers the flags shared by search, download and install.
func setSelectionFlags(f *flag.FlagSet, categories, kbs *string, max *int) {
	f.StringVar(categories, "categories", "", fmt.Sprintf("comma separated list of update categories, any of %v.", window.Categories))
	f.StringVar(kbs, "kbs", "", "comma separated list of KB numbers in the form of KB1234567 or 1234567.")
	f.IntVar(max, "max", 0, "maximum number of updates to act on, 0 for no limit.")
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	setSelectionFlags(f, &c.categories, &c.kbs, &c.max)
	f.BoolVar(&c.hidden, "hidden", false, "show updates that have been marked as hidden.")
}

func (c *searchCmd) Execute(ctx context.Context, flags *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	req, err := engineRequest(c.categories, c.kbs, c.max)
	if err != nil {
		return failure(cablib.EvtErrValidation, err, "Invalid search")
	}
	req.Hidden = c.hidden
	deck.InfofA("Searching for updates: categories %v, KBs %v, hidden %t.", req.Categories, req.KBs, req.Hidden).With(eventID(cablib.EvtSearch)).Go()
	updates, err := newEngine().Search(ctx, req)
	if err != nil {
		return failure(cablib.EvtErrQueryFailure, err, "Failed to search for updates")
	}
	printUpdates("found", updates)
	if missing := NewKBSet(c.kbs).Missing(updates); len(missing) > 0 {
		fmt.Fprintf(stdout, "No update found for %s.\n", strings.Join(missing, ", "))
	}
	return subcommands.ExitSuccess
}
