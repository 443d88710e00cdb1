// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package config

import "strings"

// validate checks that the final merged [Config] satisfies all application
// invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *Config) validate() error {
	if cfg.Storage.DB.Path == "" || strings.Contains(cfg.Storage.DB.Path, ":memory:") {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.Blobs.Path == "" || cfg.Storage.Blobs.Path == cfg.Storage.DB.Path {
		return ErrInvalidStorageConfigs
	}

	if cfg.Session.InactivityTimeout <= 0 || cfg.Session.PollInterval <= 0 {
		return ErrInvalidSessionConfigs
	}

	if cfg.Files.MaxAttachmentSize <= 0 {
		return ErrInvalidFilesConfigs
	}

	return nil
}
