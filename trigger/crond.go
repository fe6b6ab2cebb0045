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

package trigger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/window"
)

// CronD manages triggers as files in a cron.d directory.
type CronD struct {
	Dir  string
	Exe  string
	User string
}

// cron ignores cron.d files whose names contain anything but these characters.
var unsafeCronName = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// fileName keeps the task name readable and appends a hash of the raw window name, so that
// windows differing only in unsafe characters get distinct files.
func fileName(name string) string {
	sum := sha256.Sum256([]byte(name))
	return unsafeCronName.ReplaceAllString(cablib.TaskName(name), "_") + "_" + hex.EncodeToString(sum[:4])
}

func (c *CronD) path(name string) string {
	return filepath.Join(c.Dir, fileName(name))
}

// Entry renders the cron.d line for w.
func (c *CronD) Entry(w window.Window) (string, error) {
	spec, err := w.CronSpec()
	if err != nil {
		return "", err
	}
	user := c.User
	if user == "" {
		user = "root"
	}
	// cron turns an unescaped % in the command field into a newline.
	cmd := strings.ReplaceAll(fmt.Sprintf("%s start --name %s", c.Exe, shellQuote(w.Name)), "%", `\%`)
	return fmt.Sprintf("# Maintenance window %q, managed by patchwindow.\n%s %s %s\n", w.Name, spec, user, cmd), nil
}

func shellQuote(s string) string {
	q := "'"
	for _, r := range s {
		if r == '\'' {
			q += `'\''`
			continue
		}
		q += string(r)
	}
	return q + "'"
}

// Register writes the cron.d file for w, replacing any previous one.
func (c *CronD) Register(ctx context.Context, w window.Window) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entry, err := c.Entry(w)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTrigger, err)
	}
	p := c.path(w.Name)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, []byte(entry), 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrTrigger, tmp, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: installing %s: %v", ErrTrigger, p, err)
	}
	return nil
}

// Unregister removes the cron.d file for the named window.
func (c *CronD) Unregister(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(c.path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrTrigger, err)
	}
	return nil
}

// Exists reports whether the cron.d file for the named window is present.
func (c *CronD) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, err := os.Stat(c.path(name))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrTrigger, err)
}
