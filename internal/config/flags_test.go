package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestParseFlags exercises the flag surface end to end. flag.CommandLine is
// replaced per case because ParseFlags registers on the global set.
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want *Config
	}{
		{
			name: "no flags",
			args: nil,
			want: &Config{},
		},
		{
			name: "storage paths",
			args: []string{"-d", "vault.db", "-b", "blobs.db"},
			want: &Config{Storage: Storage{DB: DB{Path: "vault.db"}, Blobs: Blobs{Path: "blobs.db"}}},
		},
		{
			name: "session settings",
			args: []string{"-inactivity-timeout", "10m", "-poll-interval", "1s"},
			want: &Config{Session: Session{InactivityTimeout: 10 * time.Minute, PollInterval: time.Second}},
		},
		{
			name: "attachment cap and log path",
			args: []string{"-max-attachment-size", "1024", "-log", "e-vault.log"},
			want: &Config{Files: Files{MaxAttachmentSize: 1024}, Log: Log{Path: "e-vault.log"}},
		},
		{
			name: "json config short flag",
			args: []string{"-c", "cfg.json"},
			want: &Config{JSONFilePath: "cfg.json"},
		},
		{
			name: "json config long flag",
			args: []string{"-config", "cfg.json"},
			want: &Config{JSONFilePath: "cfg.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

			oldArgs := os.Args
			os.Args = append([]string{"cmd"}, tt.args...)
			defer func() { os.Args = oldArgs }()

			cfg := ParseFlags()
			assert.Equal(t, tt.want, cfg)
		})
	}
}
