// Package config loads runtime configuration for the taskboard client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment variables (TASKBOARD_API_URL, TASKBOARD_REQUEST_TIMEOUT,
//     TASKBOARD_DB).
//  4. Command-line flags (-a, -t, -d), which override earlier values.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "10s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "database_dsn": "taskboard.db"
//	}
package config
