// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultHTTPAddr = "127.0.0.1:5080"

	DefaultMode             = ModeDisabled
	DefaultTTL              = 5 * time.Minute
	DefaultSoftCapacity     = 100
	DefaultHardCapacity     = 200
	DefaultMaxContentLength = 4096

	DefaultRateLimitRPS   = 10
	DefaultRateLimitBurst = 20

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr: DefaultHTTPAddr,
			},
			RateLimit: RateLimitConfig{
				Enabled: false,
				RPS:     DefaultRateLimitRPS,
				Burst:   DefaultRateLimitBurst,
			},
		},
		Rendezvous: RendezvousSection{
			Mode:             DefaultMode,
			TTL:              DefaultTTL,
			SoftCapacity:     DefaultSoftCapacity,
			HardCapacity:     DefaultHardCapacity,
			MaxContentLength: DefaultMaxContentLength,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
