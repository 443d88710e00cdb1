package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type jsonConfig struct {
	Storage struct {
		DB struct {
			Path string `json:"path"`
		} `json:"db,omitempty"`

		Blobs struct {
			Path string `json:"path"`
		} `json:"blobs,omitempty"`
	} `json:"storage,omitempty"`

	Session struct {
		InactivityTimeout Duration `json:"inactivity_timeout"`
		PollInterval      Duration `json:"poll_interval"`
	} `json:"session,omitempty"`

	Files struct {
		MaxAttachmentSize int64 `json:"max_attachment_size"`
	} `json:"files,omitempty"`

	Log struct {
		Path string `json:"path"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*Config, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg jsonConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &Config{
		Storage: Storage{
			DB:    DB{Path: jsonCfg.Storage.DB.Path},
			Blobs: Blobs{Path: jsonCfg.Storage.Blobs.Path},
		},
		Session: Session{
			InactivityTimeout: time.Duration(jsonCfg.Session.InactivityTimeout),
			PollInterval:      time.Duration(jsonCfg.Session.PollInterval),
		},
		Files: Files{MaxAttachmentSize: jsonCfg.Files.MaxAttachmentSize},
		Log:   Log{Path: jsonCfg.Log.Path},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
