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

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/patchwindow/cablib"
)

const ext = ".json"

// Dir stores each record as <name>.json inside a directory.
type Dir struct {
	Path string
}

// NewDir returns a directory backend. The directory is created on first write.
func NewDir(path string) *Dir {
	return &Dir{Path: path}
}

func (d *Dir) file(name string) string {
	return filepath.Join(d.Path, name+ext)
}

// Get reads the record file for name.
func (d *Dir) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(d.file(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: maintenance window %q", cablib.ErrNotFound, name)
	}
	return b, err
}

// Put writes the record through a temporary file so readers never see a partial record.
func (d *Dir) Put(ctx context.Context, name string, record []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.Path, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", d.Path, err)
	}
	f, err := os.CreateTemp(d.Path, name+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(record); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, d.file(name)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", d.file(name), err)
	}
	return nil
}

// Delete removes the record file for name.
func (d *Dir) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(d.file(name))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: maintenance window %q", cablib.ErrNotFound, name)
	}
	return err
}

// Names lists the record files in directory order.
func (d *Dir) Names(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(d.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	return names, nil
}

// Close is a no-op.
func (d *Dir) Close() error { return nil }
