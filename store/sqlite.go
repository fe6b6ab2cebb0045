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
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/patchwindow/cablib"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLite keeps all records in a single database file.
type SQLite struct {
	db *sql.DB
}

const schema = `CREATE TABLE IF NOT EXISTS windows (
	name TEXT PRIMARY KEY COLLATE NOCASE,
	record TEXT NOT NULL
)`

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create windows table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Get selects the record for name.
func (s *SQLite) Get(ctx context.Context, name string) ([]byte, error) {
	var rec string
	err := s.db.QueryRowContext(ctx, `SELECT record FROM windows WHERE name = ?`, name).Scan(&rec)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: maintenance window %q", cablib.ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return []byte(rec), nil
}

// Put upserts the record for name.
func (s *SQLite) Put(ctx context.Context, name string, record []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO windows (name, record) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET record = excluded.record`,
		name, string(record))
	return err
}

// Delete removes the record for name.
func (s *SQLite) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM windows WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: maintenance window %q", cablib.ErrNotFound, name)
	}
	return nil
}

// Names lists the stored names in sorted order.
func (s *SQLite) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM windows ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
