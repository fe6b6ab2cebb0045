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

// Package logger configures the deck backends that receive patchwindow log events.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/deck"
	dlogger "github.com/google/deck/backends/logger"
)

// Options describes where log events go.
type Options struct {
	// Path is the append-only log file. Empty disables file logging.
	Path string
	// Console mirrors every event. Nil disables console output.
	Console io.Writer
	// EventLog also sends events to the Windows event log.
	EventLog  bool
	Verbosity int
}

// Logger owns the open log file.
type Logger struct {
	file *os.File
}

// Init adds the configured backends to deck.
func Init(o Options) (*Logger, error) {
	l := &Logger{}
	var writers []io.Writer
	if o.Path != "" {
		if err := os.MkdirAll(filepath.Dir(o.Path), 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(o.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file %s: %w", o.Path, err)
		}
		l.file = f
		writers = append(writers, f)
	}
	if o.Console != nil {
		writers = append(writers, o.Console)
	}
	if len(writers) > 0 {
		deck.Add(dlogger.Init(io.MultiWriter(writers...), log.LstdFlags))
	}
	if o.EventLog {
		if err := addEventLog(); err != nil {
			// The log file and console keep working without the event log.
			deck.ErrorfA("Failed to open the event log: %v", err).Go()
		}
	}
	deck.SetVerbosity(o.Verbosity)
	return l, nil
}

// Close flushes deck and closes the log file.
func (l *Logger) Close() error {
	deck.Close()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
