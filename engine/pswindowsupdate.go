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

package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/deck"
	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/shell"
)

// ModuleName is the PowerShell module providing the engine.
const ModuleName = "PSWindowsUpdate"

// PSWindowsUpdate drives the PSWindowsUpdate module through PowerShell.
type PSWindowsUpdate struct {
	// PowerShell is the path to powershell.exe.
	PowerShell string
	Timeout    time.Duration
	// MinVersion is the oldest acceptable module version.
	MinVersion string
	// InstallModule installs the module from the PowerShell Gallery when it is missing.
	InstallModule bool
	// MicrosoftUpdate includes products other than Windows.
	MicrosoftUpdate bool

	Run          shell.Runner
	Elevated     func() bool
	RebootStatus func() (bool, error)
}

// New returns a PSWindowsUpdate engine using the platform runner.
func New(ps string, timeout time.Duration) *PSWindowsUpdate {
	return &PSWindowsUpdate{
		PowerShell:   ps,
		Timeout:      timeout,
		Run:          shell.Exec,
		Elevated:     cablib.IsElevated,
		RebootStatus: cablib.RebootRequired,
	}
}

const updateFields = `KB, Title, @{n='Size';e={[string]$_.Size}}, @{n='Status';e={[string]$_.Status}}, @{n='Result';e={[string]$_.Result}}`

const historyFields = `@{n='Date';e={$_.Date.ToUniversalTime().ToString('o')}}, KB, Title, ` +
	`@{n='Result';e={[string]$_.Result}}, @{n='Operation';e={[string]$_.Operationname}}`

// toJSON always emits a JSON array, including for zero or one items.
func toJSON(pipeline, fields string) string {
	return fmt.Sprintf("ConvertTo-Json -InputObject @(%s | Select-Object %s) -Depth 3 -Compress", pipeline, fields)
}

func (p *PSWindowsUpdate) filters(req Request) []string {
	var f []string
	if len(req.Categories) > 0 {
		f = append(f, "-Category "+shell.QuoteList(req.Categories))
	}
	if len(req.KBs) > 0 {
		f = append(f, "-KBArticleID "+shell.QuoteList(req.KBs))
	}
	if p.MicrosoftUpdate {
		f = append(f, "-MicrosoftUpdate")
	}
	return f
}

// selection returns a script prefix and the parameters that select the updates of req. With a cap
// the matching KBs are resolved first so that only the first Max updates are acted upon.
func (p *PSWindowsUpdate) selection(req Request) (string, []string) {
	f := p.filters(req)
	if req.Max <= 0 {
		return "", f
	}
	prefix := fmt.Sprintf("$kbs = @(%s | Select-Object -First %d | ForEach-Object { $_.KB }); if ($kbs.Count -eq 0) { '[]'; return }; ",
		join("Get-WindowsUpdate", strings.Join(f, " ")), req.Max)
	sel := []string{"-KBArticleID $kbs"}
	if p.MicrosoftUpdate {
		sel = append(sel, "-MicrosoftUpdate")
	}
	return prefix, sel
}

func rebootArg(req Request) string {
	switch req.Reboot {
	case RebootAuto:
		return "-AutoReboot"
	case RebootSchedule:
		return fmt.Sprintf("-ScheduleReboot ([datetime]%s)", shell.Quote(req.RebootAt.Format(time.RFC3339)))
	}
	return "-IgnoreReboot"
}

func join(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func (p *PSWindowsUpdate) searchScript(req Request) string {
	f := p.filters(req)
	if req.Hidden {
		f = append(f, "-IsHidden")
	}
	pipeline := join("Get-WindowsUpdate", strings.Join(f, " "))
	if req.Max > 0 {
		pipeline += fmt.Sprintf(" | Select-Object -First %d", req.Max)
	}
	return toJSON(pipeline, updateFields)
}

func (p *PSWindowsUpdate) downloadScript(req Request) string {
	prefix, sel := p.selection(req)
	return prefix + toJSON(join("Get-WindowsUpdate", strings.Join(sel, " "), "-Download -AcceptAll -Confirm:$false"), updateFields)
}

func (p *PSWindowsUpdate) installScript(req Request) string {
	prefix, sel := p.selection(req)
	return prefix + toJSON(join("Install-WindowsUpdate", strings.Join(sel, " "), "-AcceptAll -Confirm:$false", rebootArg(req)), updateFields)
}

func (p *PSWindowsUpdate) hideScript(kbs []string, hide bool) string {
	cmd := join("Hide-WindowsUpdate -KBArticleID", shell.QuoteList(kbs), "-AcceptAll -Confirm:$false")
	if !hide {
		cmd += " -HideStatus:$false"
	}
	if p.MicrosoftUpdate {
		cmd += " -MicrosoftUpdate"
	}
	return toJSON(cmd, updateFields)
}

func historyScript(last int) string {
	cmd := "Get-WUHistory"
	if last > 0 {
		cmd += " -Last " + strconv.Itoa(last)
	}
	return toJSON(cmd, historyFields)
}

func (p *PSWindowsUpdate) run(ctx context.Context, script string) ([]byte, error) {
	deck.InfofA("Running PowerShell: %s", script).With(deck.V(2)).Go()
	out, err := shell.PowerShell(ctx, p.Run, p.PowerShell, script, p.Timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cablib.ErrEngine, err)
	}
	return out, nil
}

// parseList decodes ConvertTo-Json output which is an array, a single object or nothing.
func parseList[T any](out []byte) ([]T, error) {
	out = bytes.TrimSpace(bytes.TrimPrefix(out, []byte("\xef\xbb\xbf")))
	if len(out) == 0 || bytes.Equal(out, []byte("null")) {
		return nil, nil
	}
	if out[0] == '{' {
		var v T
		if err := json.Unmarshal(out, &v); err != nil {
			return nil, fmt.Errorf("%w: parsing engine output: %v", cablib.ErrEngine, err)
		}
		return []T{v}, nil
	}
	var v []T
	if err := json.Unmarshal(out, &v); err != nil {
		return nil, fmt.Errorf("%w: parsing engine output: %v", cablib.ErrEngine, err)
	}
	return v, nil
}

func (p *PSWindowsUpdate) updates(ctx context.Context, script string) ([]Update, error) {
	out, err := p.run(ctx, script)
	if err != nil {
		return nil, err
	}
	return parseList[Update](out)
}

// Search lists available updates matching req.
func (p *PSWindowsUpdate) Search(ctx context.Context, req Request) ([]Update, error) {
	return p.updates(ctx, p.searchScript(req))
}

// Download downloads the updates matching req.
func (p *PSWindowsUpdate) Download(ctx context.Context, req Request) ([]Update, error) {
	return p.updates(ctx, p.downloadScript(req))
}

// Install installs the updates matching req and reports whether a reboot is pending afterwards.
func (p *PSWindowsUpdate) Install(ctx context.Context, req Request) (InstallResult, error) {
	var res InstallResult
	u, err := p.updates(ctx, p.installScript(req))
	if err != nil {
		return res, err
	}
	res.Updates = u
	if res.RebootRequired, err = p.RebootRequired(ctx); err != nil {
		deck.WarningfA("Unable to determine reboot status: %v", err).With(cablib.EventID(cablib.EvtRebootRequired)).Go()
	}
	return res, nil
}

// RebootRequired asks the Windows Update Agent, falling back to Get-WURebootStatus.
func (p *PSWindowsUpdate) RebootRequired(ctx context.Context) (bool, error) {
	if p.RebootStatus != nil {
		r, err := p.RebootStatus()
		if err == nil {
			return r, nil
		}
		deck.InfofA("Windows Update Agent reboot query failed, asking %s: %v", ModuleName, err).With(deck.V(1)).Go()
	}
	out, err := p.run(ctx, "Get-WURebootStatus -Silent")
	if err != nil {
		return false, err
	}
	r, err := strconv.ParseBool(strings.TrimSpace(string(out)))
	if err != nil {
		return false, fmt.Errorf("%w: unexpected reboot status %q", cablib.ErrEngine, strings.TrimSpace(string(out)))
	}
	return r, nil
}

// History returns the installation history.
func (p *PSWindowsUpdate) History(ctx context.Context, last int) ([]HistoryEntry, error) {
	out, err := p.run(ctx, historyScript(last))
	if err != nil {
		return nil, err
	}
	return parseList[HistoryEntry](out)
}

// Hide hides the updates with the given KB IDs.
func (p *PSWindowsUpdate) Hide(ctx context.Context, kbs []string) ([]Update, error) {
	return p.updates(ctx, p.hideScript(kbs, true))
}

// Unhide makes hidden updates with the given KB IDs visible again.
func (p *PSWindowsUpdate) Unhide(ctx context.Context, kbs []string) ([]Update, error) {
	return p.updates(ctx, p.hideScript(kbs, false))
}
