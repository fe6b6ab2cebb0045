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
	"github.com/google/patchwindow/report"
	"github.com/google/subcommands"
	"golang.org/x/net/context"
)

// Available flags
type reportCmd struct {
	name, format string
}

func (reportCmd) Name() string { return "report" }
func (reportCmd) Synopsis() string {
	return "report the updates installed since a maintenance window last ran."
}
func (reportCmd) Usage() string {
	return fmt.Sprintf("%s report --name=<name> [--format=text|json|yaml]\n", filepath.Base(os.Args[0]))
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "name of the maintenance window to report on.")
	f.StringVar(&c.format, "format", report.FormatText, "output format: text, json or yaml.")
}

func (c *reportCmd) Execute(ctx context.Context, flags *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.name == "" {
		return usage(c, "--name is required.")
	}
	switch c.format {
	case report.FormatText, report.FormatJSON, report.FormatYAML:
	default:
		return usage(c, fmt.Sprintf("Unknown format %q.", c.format))
	}
	st, err := openStore()
	if err != nil {
		return failure(cablib.EvtErrStore, err, "Failed to open the maintenance window store")
	}
	defer st.Close()

	g := &report.Generator{Store: st, Engine: newEngine(), HistoryLimit: config.HistoryLimit, HostInfo: hostInfo}
	r, err := g.Report(ctx, c.name, now())
	if err != nil {
		return failure(cablib.EvtErrReport, err, "Failed to build the report for maintenance window %q", c.name)
	}
	if err := report.Render(stdout, r, c.format); err != nil {
		return failure(cablib.EvtErrReport, err, "Failed to render the report for maintenance window %q", c.name)
	}
	return subcommands.ExitSuccess
}
