package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/flagx"
	"github.com/dmitrijs2005/taskboard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It uses
// timex.Duration so the timeout can be written as "10s" or as integer
// nanoseconds; values are then copied into the runtime Config.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DatabaseDSN    string         `json:"database_dsn"`
}

// parseJson overlays cfg with values loaded from the JSON file named by
// the -c/-config flags. Missing flag means no JSON is loaded. Read or
// unmarshal errors panic; config is loaded once at startup and a broken
// file should be fatal.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
}
