// Package config defines the server configuration structure.
package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Check server defaults
	if cfg.Server.HTTP.Addr != DefaultHTTPAddr {
		t.Errorf("HTTP.Addr = %q, want %q", cfg.Server.HTTP.Addr, DefaultHTTPAddr)
	}
	if cfg.Server.RateLimit.Enabled {
		t.Error("Rate limiting should be disabled by default")
	}

	// Check rendezvous defaults
	if cfg.Rendezvous.Mode != ModeDisabled {
		t.Errorf("Mode = %q, want %q", cfg.Rendezvous.Mode, ModeDisabled)
	}
	if cfg.Rendezvous.TTL != 5*time.Minute {
		t.Errorf("TTL = %v, want 5m", cfg.Rendezvous.TTL)
	}
	if cfg.Rendezvous.SoftCapacity != 100 {
		t.Errorf("SoftCapacity = %d, want 100", cfg.Rendezvous.SoftCapacity)
	}
	if cfg.Rendezvous.HardCapacity != 200 {
		t.Errorf("HardCapacity = %d, want 200", cfg.Rendezvous.HardCapacity)
	}
	if cfg.Rendezvous.MaxContentLength != 4096 {
		t.Errorf("MaxContentLength = %d, want 4096", cfg.Rendezvous.MaxContentLength)
	}

	// Check log defaults
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, DefaultLogFormat)
	}

	// The defaults must verify cleanly.
	if err := Verify(cfg); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr bool
	}{
		{
			"defaults",
			func(cfg *ServerConfig) {},
			false,
		},
		{
			"native mode",
			func(cfg *ServerConfig) { cfg.Rendezvous.Mode = ModeNative },
			false,
		},
		{
			"delegated mode with url",
			func(cfg *ServerConfig) {
				cfg.Rendezvous.Mode = ModeDelegated
				cfg.Rendezvous.DelegationURL = "https://other.example.com/rendezvous"
			},
			false,
		},
		{
			"delegated mode without url",
			func(cfg *ServerConfig) { cfg.Rendezvous.Mode = ModeDelegated },
			true,
		},
		{
			"unknown mode",
			func(cfg *ServerConfig) { cfg.Rendezvous.Mode = "proxy" },
			true,
		},
		{
			"relative delegation url",
			func(cfg *ServerConfig) {
				cfg.Rendezvous.Mode = ModeDelegated
				cfg.Rendezvous.DelegationURL = "/rendezvous"
			},
			true,
		},
		{
			"relative legacy redirect is allowed",
			func(cfg *ServerConfig) { cfg.Rendezvous.LegacyRedirectURL = "/asd" },
			false,
		},
		{
			"missing http addr",
			func(cfg *ServerConfig) { cfg.Server.HTTP.Addr = "" },
			true,
		},
		{
			"tls cert without key",
			func(cfg *ServerConfig) { cfg.Server.HTTP.TLSCertFile = "/etc/tls/cert.pem" },
			true,
		},
		{
			"zero ttl",
			func(cfg *ServerConfig) { cfg.Rendezvous.TTL = 0 },
			true,
		},
		{
			"hard below soft",
			func(cfg *ServerConfig) {
				cfg.Rendezvous.SoftCapacity = 100
				cfg.Rendezvous.HardCapacity = 50
			},
			true,
		},
		{
			"zero max content length",
			func(cfg *ServerConfig) { cfg.Rendezvous.MaxContentLength = 0 },
			true,
		},
		{
			"rate limit enabled with bad rps",
			func(cfg *ServerConfig) {
				cfg.Server.RateLimit.Enabled = true
				cfg.Server.RateLimit.RPS = 0
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Verify(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerify_NormalizesSessionURLPrefix(t *testing.T) {
	cfg := Default()
	cfg.Rendezvous.SessionURLPrefix = "https://example.com/rendezvous"

	if err := Verify(cfg); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if got := cfg.Rendezvous.SessionURLPrefix; got != "https://example.com/rendezvous/" {
		t.Errorf("SessionURLPrefix = %q, want trailing slash", got)
	}
}
