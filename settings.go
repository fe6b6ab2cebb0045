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
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/engine"
	"github.com/google/patchwindow/store"
	"github.com/spf13/viper"
)

// Settings contains configurable options.
type Settings struct {
	ConfigDir    string `mapstructure:"config_dir"`
	LogPath      string `mapstructure:"log_path"`
	StoreBackend string `mapstructure:"store_backend"`

	// Update engine.
	PowerShell       string        `mapstructure:"powershell"`
	ScriptTimeout    time.Duration `mapstructure:"script_timeout"`
	MinModuleVersion string        `mapstructure:"min_module_version"`
	InstallModule    bool          `mapstructure:"install_module"`
	MicrosoftUpdate  bool          `mapstructure:"microsoft_update"`

	// Maintenance windows.
	AdvanceOnFailure bool   `mapstructure:"advance_on_failure"`
	TaskFolder       string `mapstructure:"task_folder"`
	ExePath          string `mapstructure:"exe_path"`
	HistoryLimit     int    `mapstructure:"history_limit"`
	Notify           bool   `mapstructure:"notify"`

	// Aukera Integration
	AukeraEnabled bool `mapstructure:"aukera_enabled"`
	AukeraPort    int  `mapstructure:"aukera_port"`
}

func newSettings() *Settings {
	// Set non-Zero defaults.
	dir := cablib.DataDir()
	return &Settings{
		ConfigDir:        filepath.Join(dir, "windows"),
		LogPath:          filepath.Join(dir, "logs", cablib.SettingsName+".log"),
		StoreBackend:     store.KindDir,
		PowerShell:       defaultPowerShell,
		ScriptTimeout:    2 * time.Hour,
		MinModuleVersion: "2.2.0",
		TaskFolder:       defaultTaskFolder,
		ExePath:          defaultExePath(),
		HistoryLimit:     500,
		Notify:           true,
		AukeraPort:       9119,
	}
}

// defaults registers every setting with v so that environment variables can override all of them.
func (s *Settings) defaults(v *viper.Viper) {
	v.SetDefault("config_dir", s.ConfigDir)
	v.SetDefault("log_path", s.LogPath)
	v.SetDefault("store_backend", s.StoreBackend)
	v.SetDefault("powershell", s.PowerShell)
	v.SetDefault("script_timeout", s.ScriptTimeout)
	v.SetDefault("min_module_version", s.MinModuleVersion)
	v.SetDefault("install_module", s.InstallModule)
	v.SetDefault("microsoft_update", s.MicrosoftUpdate)
	v.SetDefault("advance_on_failure", s.AdvanceOnFailure)
	v.SetDefault("task_folder", s.TaskFolder)
	v.SetDefault("exe_path", s.ExePath)
	v.SetDefault("history_limit", s.HistoryLimit)
	v.SetDefault("notify", s.Notify)
	v.SetDefault("aukera_enabled", s.AukeraEnabled)
	v.SetDefault("aukera_port", s.AukeraPort)
}

// loadSettings layers the settings file, PATCHWINDOW_* environment variables and, on Windows,
// the registry over the defaults. file may be empty to search the data directory.
func loadSettings(file string) (*Settings, error) {
	s := newSettings()
	v := viper.New()
	s.defaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(cablib.SettingsName)
		v.SetConfigType("yaml")
		v.AddConfigPath(cablib.DataDir())
	}
	v.SetEnvPrefix(cablib.EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return s, err
		}
	}
	if err := v.Unmarshal(s); err != nil {
		return s, err
	}
	if err := s.regLoad(cablib.RegPath); err != nil {
		return s, err
	}
	return s, s.validate()
}

func (s *Settings) validate() error {
	switch s.StoreBackend {
	case store.KindDir, store.KindSQLite:
	default:
		return errors.New("store_backend must be " + store.KindDir + " or " + store.KindSQLite)
	}
	if s.MinModuleVersion != "" {
		if err := engine.ValidVersion(s.MinModuleVersion); err != nil {
			return fmt.Errorf("min_module_version %q: %v", s.MinModuleVersion, err)
		}
	}
	if s.ScriptTimeout <= 0 {
		return errors.New("script_timeout must be positive")
	}
	return nil
}
