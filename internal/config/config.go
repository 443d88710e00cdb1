// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package config

import (
	"time"
)

// Config is the top-level configuration container for the vault application.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type Config struct {
	// Storage holds configuration for all persistence backends: the record
	// database and the attachment blob store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Session holds the inactivity-timeout settings of the authenticated
	// session.
	Session Session `envPrefix:"SESSION_"`

	// Files holds limits applied to file attachments.
	Files Files `envPrefix:"FILES_"`

	// Log holds logging output settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged in after environment
	// variables and flags, filling only the fields they left unset.
	// Populated via the EVAULT_CONFIG environment variable or the
	// -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the record database settings.
	DB DB `envPrefix:"DB_"`

	// Blobs holds the attachment blob store settings.
	Blobs Blobs `envPrefix:"BLOBS_"`
}

// DB holds settings for the SQLite record database.
type DB struct {
	// Path is the SQLite database file path (e.g. "~/.e-vault/vault.db").
	// Env: STORAGE_DB_PATH
	Path string `env:"PATH"`
}

// Blobs holds settings for the bbolt attachment blob store.
type Blobs struct {
	// Path is the bbolt file path holding encrypted attachment payloads.
	// Env: STORAGE_BLOBS_PATH
	Path string `env:"PATH"`
}

// Session holds inactivity settings for the authenticated session.
type Session struct {
	// InactivityTimeout is how long a session may stay idle before it is
	// logged out (e.g. "5m"). The engine treats this as a parameter, not a
	// constant.
	// Env: SESSION_INACTIVITY_TIMEOUT
	InactivityTimeout time.Duration `env:"INACTIVITY_TIMEOUT"`

	// PollInterval is how often the inactivity watcher checks the session
	// (e.g. "15s").
	// Env: SESSION_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`
}

// Files holds limits applied to file attachments.
type Files struct {
	// MaxAttachmentSize is the largest attachment payload accepted, in
	// bytes. Attachments are encrypted in one call, so this also bounds
	// memory per operation.
	// Env: FILES_MAX_ATTACHMENT_SIZE
	MaxAttachmentSize int64 `env:"MAX_ATTACHMENT_SIZE"`
}

// Log holds logging output settings.
type Log struct {
	// Path is the log file path. The TUI owns the terminal, so logs go to a
	// file; empty means a file next to the executable.
	// Env: LOG_PATH
	Path string `env:"PATH"`
}

// Defaults used when no source provides a value.
const (
	DefaultDBPath            = "e-vault.db"
	DefaultBlobsPath         = "e-vault-blobs.db"
	DefaultInactivityTimeout = 5 * time.Minute
	DefaultPollInterval      = 15 * time.Second
	DefaultMaxAttachmentSize = 10 << 20 // 10 MiB
)

// GetConfig loads, merges, and validates the application configuration from
// all available sources in the following priority order (an earlier source
// wins for any field it sets):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Unset values fall back to the package defaults. Returns a fully populated
// *Config or an error if any source fails to load or the final config fails
// validation.
func GetConfig() (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
