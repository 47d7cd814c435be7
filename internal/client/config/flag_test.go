package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "http://127.0.0.1:9090", "-t", "30", "-d", "other.db"},
			expected: &Config{
				APIBaseURL:     "http://127.0.0.1:9090",
				RequestTimeout: 30 * time.Second,
				DatabaseDSN:    "other.db",
			},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"cmd", "-a", "http://127.0.0.1:9090", "-x", "whatever"},
			expected: &Config{
				APIBaseURL: "http://127.0.0.1:9090",
			},
		},
		{
			name:        "incorrect timeout",
			args:        []string{"cmd", "-t", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Equal(t, tt.expected, config)
		})
	}
}
