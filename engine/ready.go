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
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/google/deck"
	"github.com/google/patchwindow/cablib"
)

const versionScript = `$m = Get-Module -ListAvailable -Name PSWindowsUpdate | Sort-Object Version -Descending | Select-Object -First 1; if ($m) { $m.Version.ToString() }`

const installModuleScript = `Install-PackageProvider -Name NuGet -MinimumVersion 2.8.5.201 -Force -Scope AllUsers | Out-Null; ` +
	`Install-Module -Name PSWindowsUpdate -Force -Scope AllUsers -AllowClobber`

// moduleVersion returns the newest installed module version, or "" when it is missing.
func (p *PSWindowsUpdate) moduleVersion(ctx context.Context) (string, error) {
	out, err := p.run(ctx, versionScript)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// semverOf converts a four part .NET version into a semantic version.
func semverOf(v string) (*semver.Version, error) {
	parts := strings.Split(strings.TrimSpace(v), ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return semver.NewVersion(strings.Join(parts, "."))
}

// ValidVersion checks that v parses as a module version.
func ValidVersion(v string) error {
	_, err := semverOf(v)
	return err
}

// AtLeast reports whether version v satisfies the minimum version min. An empty min accepts any version.
func AtLeast(v, min string) (bool, error) {
	if min == "" {
		return true, nil
	}
	have, err := semverOf(v)
	if err != nil {
		return false, fmt.Errorf("invalid module version %q: %v", v, err)
	}
	want, err := semverOf(min)
	if err != nil {
		return false, fmt.Errorf("invalid minimum version %q: %v", min, err)
	}
	return !have.LessThan(want), nil
}

// Ready checks that the module is present and recent enough and that the process is elevated.
func (p *PSWindowsUpdate) Ready(ctx context.Context) (Readiness, error) {
	var r Readiness
	if p.Elevated != nil {
		r.Elevated = p.Elevated()
	}
	v, err := p.moduleVersion(ctx)
	if err != nil {
		return r, err
	}
	if v == "" && p.InstallModule {
		deck.InfofA("Installing the %s module.", ModuleName).With(cablib.EventID(cablib.EvtReadiness)).Go()
		if _, err := p.run(ctx, installModuleScript); err != nil {
			return r, err
		}
		if v, err = p.moduleVersion(ctx); err != nil {
			return r, err
		}
	}
	if v == "" {
		r.Reason = fmt.Sprintf("the %s module is not installed", ModuleName)
		return r, nil
	}
	r.ModuleVersion = v
	ok, err := AtLeast(v, p.MinVersion)
	if err != nil {
		return r, fmt.Errorf("%w: %v", cablib.ErrEngine, err)
	}
	if !ok {
		r.Reason = fmt.Sprintf("%s %s is older than the required %s", ModuleName, v, p.MinVersion)
		return r, nil
	}
	if !r.Elevated {
		r.Reason = "the process is not running elevated"
		return r, nil
	}
	r.Ready = true
	return r, nil
}
