/*
Copyright © 2025 The marchexec authors
SPDX-License-Identifier: Apache-2.0
*/

// Package config loads the optional marchexec defaults file. Values from
// the file rank below command-line flags and above boot-parameter
// discovery. The loaded value is immutable after startup and handed to the
// other components by parameter.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the defaults file is looked up unless overridden.
const DefaultPath = "/etc/marchexec.yaml"

// File holds the defaults read from the configuration file. All fields are
// optional; the zero value behaves as if no file existed.
type File struct {
	// March is the default tuning level, overridden by the -m flag.
	March string `yaml:"march"`
	// Logfile receives log records instead of stderr.
	Logfile string `yaml:"logfile"`
	// Syslog duplicates error records to the systemd journal.
	Syslog bool `yaml:"syslog"`
	// Verbosity is the default log verbosity (0 warn, 1 info, 2+ debug).
	Verbosity int `yaml:"verbosity"`
	// Cmdline overrides the boot-parameter source path.
	Cmdline string `yaml:"cmdline"`
}

// Load reads and parses the defaults file at path. A missing file is only
// an error when the path was explicitly requested; the absent default file
// yields an empty File.
func Load(path string, explicit bool) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	f := &File{}
	if err := yaml.Unmarshal(raw, f); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return f, nil
}
