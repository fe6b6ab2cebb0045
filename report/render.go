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
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/patchwindow/cablib"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Render writes r to w in the given format.
func Render(w io.Writer, r ComplianceReport, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		_, err := io.WriteString(w, Text(r))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: unknown report format %q", cablib.ErrValidation, format)
}

// Text renders r for humans.
func Text(r ComplianceReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Compliance report for maintenance window %s\n", r.Window.Name)
	fmt.Fprintf(&b, "Generated: %s\n", r.Generated.Format(time.RFC3339))
	fmt.Fprintf(&b, "Host: %s (%s %s) machine %s\n", r.Host.Hostname, r.Host.Platform, r.Host.PlatformVersion, r.Host.MachineID)
	fmt.Fprintf(&b, "Window: %s\n", r.Window)
	if r.Since == nil {
		b.WriteString("The maintenance window has not run yet.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Updates installed since %s: %d\n", r.Since.Format("2006-01-02"), len(r.Updates))
	for _, u := range r.Updates {
		fmt.Fprintf(&b, "  %s %-10s %-9s %s\n", u.Date.Format(time.RFC3339), u.KB, u.Result, u.Title)
	}
	return b.String()
}
