package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		Version   string `json:"version"`
		InboxSize int    `json:"inbox_size"`
	} `json:"app,omitempty"`

	Storage struct {
		DSN          string `json:"dsn"`
		MaxValueSize int    `json:"max_value_size"`
		Quota        int    `json:"quota"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		CompanionURL   string   `json:"companion_url"`
		RequestTimeout Duration `json:"request_timeout"`
		NATSURL        string   `json:"nats_url"`
		NATSSubject    string   `json:"nats_subject"`
	} `json:"adapter,omitempty"`

	Workers struct {
		ReconnectDelay Duration `json:"reconnect_delay"`
		QueueSize      int      `json:"queue_size"`
	} `json:"workers,omitempty"`

	UI struct {
		Enabled          bool   `json:"enabled"`
		LogFile          string `json:"log_file"`
		AwaitInitialSync bool   `json:"await_initial_sync"`
	} `json:"ui,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:   jsonCfg.App.Version,
			InboxSize: jsonCfg.App.InboxSize,
		},
		Storage: Storage{
			DSN:          jsonCfg.Storage.DSN,
			MaxValueSize: jsonCfg.Storage.MaxValueSize,
			Quota:        jsonCfg.Storage.Quota,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			CompanionURL:   jsonCfg.Adapter.CompanionURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			NATSURL:        jsonCfg.Adapter.NATSURL,
			NATSSubject:    jsonCfg.Adapter.NATSSubject,
		},
		Workers: Workers{
			ReconnectDelay: time.Duration(jsonCfg.Workers.ReconnectDelay),
			QueueSize:      jsonCfg.Workers.QueueSize,
		},
		UI: UI{
			Enabled:          jsonCfg.UI.Enabled,
			LogFile:          jsonCfg.UI.LogFile,
			AwaitInitialSync: jsonCfg.UI.AwaitInitialSync,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
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
