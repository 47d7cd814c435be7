package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays cfg with values from the environment (see the env
// tags on Config). Unset variables leave the current values alone.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
