package config

import "github.com/calmcp/calcom-mcp/internal/common"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 5000,
			Host: "0.0.0.0",
		},
		API: APIConfig{
			URL:            "https://api.cal.com/v2",
			TimeoutSeconds: 30,
		},
		Logging: common.LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
