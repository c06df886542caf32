// Package config defines the server configuration structure.
package config

import "time"

// Rendezvous operation modes.
const (
	// ModeDisabled turns the endpoint off; requests fall through to 404.
	ModeDisabled = "disabled"

	// ModeNative serves sessions from the local in-memory store.
	ModeNative = "native"

	// ModeDelegated redirects every endpoint request to DelegationURL.
	ModeDelegated = "delegated"
)

// ServerConfig is the root configuration for rendezvous-server.
type ServerConfig struct {
	Server     ServerSection     `koanf:"server"`
	Rendezvous RendezvousSection `koanf:"rendezvous"`
	Log        LogSection        `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP      HTTPConfig      `koanf:"http"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr        string `koanf:"addr"`
	TLSCertFile string `koanf:"tls_cert_file"`
	TLSKeyFile  string `koanf:"tls_key_file"`
}

// RateLimitConfig configures per-client request rate limiting.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	RPS     float64 `koanf:"rps"`
	Burst   int     `koanf:"burst"`
}

// RendezvousSection configures the rendezvous channel behavior.
type RendezvousSection struct {
	// Mode selects disabled, native, or delegated operation.
	Mode string `koanf:"mode"`

	// DelegationURL is the absolute URL requests are redirected to in
	// delegated mode. Required when Mode is "delegated".
	DelegationURL string `koanf:"delegation_url"`

	// LegacyRedirectURL, when set, registers the legacy endpoint path
	// as a 307 redirect to this URL. Independent of Mode.
	LegacyRedirectURL string `koanf:"legacy_redirect_url"`

	// SessionURLPrefix is the absolute prefix session URLs are built
	// from (e.g. "https://example.com/_synapse/client/rendezvous/").
	// When empty, URLs are derived from the incoming request.
	SessionURLPrefix string `koanf:"session_url_prefix"`

	// TTL is the session lifetime, counted from the last write.
	TTL time.Duration `koanf:"ttl"`

	// SoftCapacity is the session count above which a deferred
	// eviction pass is scheduled.
	SoftCapacity int `koanf:"soft_capacity"`

	// HardCapacity is the session count never exceeded; inserts at the
	// limit evict the oldest sessions synchronously.
	HardCapacity int `koanf:"hard_capacity"`

	// MaxContentLength bounds session payload size in bytes.
	MaxContentLength int `koanf:"max_content_length"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
