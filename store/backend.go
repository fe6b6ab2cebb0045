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
	"fmt"
	"path/filepath"

	"github.com/google/patchwindow/cablib"
)

// Backend is a key value store of serialized window records keyed by window name.
type Backend interface {
	// Get returns the record for name or cablib.ErrNotFound.
	Get(ctx context.Context, name string) ([]byte, error)
	// Put writes the record for name, replacing any existing one.
	Put(ctx context.Context, name string, record []byte) error
	// Delete removes the record for name or returns cablib.ErrNotFound.
	Delete(ctx context.Context, name string) error
	// Names enumerates the stored window names.
	Names(ctx context.Context) ([]string, error)
	Close() error
}

// Backend kinds accepted by OpenBackend.
const (
	KindDir    = "dir"
	KindSQLite = "sqlite"
)

// DBName is the database file used by the sqlite backend.
const DBName = "windows.db"

// OpenBackend opens the backend of the given kind rooted at dir.
func OpenBackend(kind, dir string) (Backend, error) {
	switch kind {
	case "", KindDir:
		return NewDir(dir), nil
	case KindSQLite:
		db, err := OpenSQLite(filepath.Join(dir, DBName))
		if err != nil {
			return nil, err
		}
		return db, nil
	}
	return nil, fmt.Errorf("%w: unknown store backend %q", cablib.ErrValidation, kind)
}
