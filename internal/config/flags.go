package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database file path
//	-b attachment blob store path
//	-inactivity-timeout session inactivity timeout (e.g., "5m")
//	-poll-interval inactivity poll interval (e.g., "15s")
//	-max-attachment-size attachment size cap in bytes
//	-log log file path
//	-c/-config json file path with configs
func ParseFlags() *Config {
	var dbPath string
	var blobsPath string
	var inactivityTimeout time.Duration
	var pollInterval time.Duration
	var maxAttachmentSize int64
	var logPath string
	var jsonConfigPath string

	flag.StringVar(&dbPath, "d", "", "Database file path")
	flag.StringVar(&blobsPath, "b", "", "Attachment blob store path")
	flag.DurationVar(&inactivityTimeout, "inactivity-timeout", 0, "Session inactivity timeout (e.g., 5m)")
	flag.DurationVar(&pollInterval, "poll-interval", 0, "Inactivity poll interval (e.g., 15s)")
	flag.Int64Var(&maxAttachmentSize, "max-attachment-size", 0, "Attachment size cap in bytes")
	flag.StringVar(&logPath, "log", "", "Log file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &Config{
		Storage: Storage{
			DB:    DB{Path: dbPath},
			Blobs: Blobs{Path: blobsPath},
		},
		Session: Session{
			InactivityTimeout: inactivityTimeout,
			PollInterval:      pollInterval,
		},
		Files:        Files{MaxAttachmentSize: maxAttachmentSize},
		Log:          Log{Path: logPath},
		JSONFilePath: jsonConfigPath,
	}
}
