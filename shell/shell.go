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

// Package shell runs external programs such as powershell.exe and schtasks.exe.
package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnsupported is returned when external programs cannot be run on this platform.
var ErrUnsupported = errors.New("external command execution is not supported on this platform")

// Result holds the output of a finished command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executes path with args. A non-zero exit code is reported as an error alongside the Result.
type Runner func(ctx context.Context, path string, args []string, timeout time.Duration) (Result, error)

// Exec is the platform Runner. Tests replace it.
var Exec Runner = execute

// preamble makes cmdlet failures terminate the script with a non-zero exit code and keeps progress
// bars out of the captured output.
const preamble = "$ErrorActionPreference = 'Stop'; $ProgressPreference = 'SilentlyContinue'; "

// PowerShellArgs builds the argument list used to run script non-interactively.
func PowerShellArgs(script string) []string {
	return []string{
		"-NoProfile",
		"-NonInteractive",
		"-ExecutionPolicy", "Bypass",
		"-Command", preamble + script,
	}
}

// PowerShell runs script through the PowerShell binary at ps using run.
func PowerShell(ctx context.Context, run Runner, ps, script string, timeout time.Duration) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := run(ctx, ps, PowerShellArgs(script), timeout)
	if err != nil {
		if msg := strings.TrimSpace(string(res.Stderr)); msg != "" {
			return nil, fmt.Errorf("%v: %s", err, msg)
		}
		return nil, err
	}
	return res.Stdout, nil
}

// Quote returns s as a single quoted PowerShell string literal.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// QuoteList renders values as a PowerShell array of string literals.
func QuoteList(values []string) string {
	q := make([]string, 0, len(values))
	for _, v := range values {
		q = append(q, Quote(v))
	}
	return "@(" + strings.Join(q, ",") + ")"
}
