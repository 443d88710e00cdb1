package config

import "errors"

// Validation errors returned by [Config.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings (for
	// example, an empty or in-memory record database path, or the blob
	// store pointed at the same file as the record database).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSessionConfigs indicates invalid session settings (for
	// example, a zero inactivity timeout or poll interval).
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
	// ErrInvalidFilesConfigs indicates invalid attachment settings (for
	// example, a zero size cap).
	ErrInvalidFilesConfigs = errors.New("invalid files configuration")
)
