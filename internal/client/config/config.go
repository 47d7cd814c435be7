package config

import "time"

// Config holds runtime settings for the taskboard client.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - RequestTimeout: per-request timeout for the resource client.
//   - DatabaseDSN: path/DSN of the local state database.
type Config struct {
	APIBaseURL     string        `env:"TASKBOARD_API_URL"`
	RequestTimeout time.Duration `env:"TASKBOARD_REQUEST_TIMEOUT"`
	DatabaseDSN    string        `env:"TASKBOARD_DB"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.DatabaseDSN = "taskboard.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
