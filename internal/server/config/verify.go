// Package config defines the server configuration structure.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyRendezvous(&cfg.Rendezvous); err != nil {
		return err
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	if cfg.HTTP.Addr == "" {
		return errors.New("server.http.addr is required")
	}
	if (cfg.HTTP.TLSCertFile == "") != (cfg.HTTP.TLSKeyFile == "") {
		return errors.New("server.http: tls_cert_file and tls_key_file must be set together")
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.RPS <= 0 {
			return errors.New("server.rate_limit.rps must be positive")
		}
		if cfg.RateLimit.Burst < 1 {
			return errors.New("server.rate_limit.burst must be at least 1")
		}
	}
	return nil
}

func verifyRendezvous(cfg *RendezvousSection) error {
	switch cfg.Mode {
	case ModeDisabled, ModeNative:
	case ModeDelegated:
		if cfg.DelegationURL == "" {
			return errors.New("rendezvous.delegation_url is required in delegated mode")
		}
	default:
		return fmt.Errorf("rendezvous.mode must be one of %q, %q, %q",
			ModeDisabled, ModeNative, ModeDelegated)
	}

	if cfg.DelegationURL != "" {
		if err := verifyAbsoluteURL("rendezvous.delegation_url", cfg.DelegationURL); err != nil {
			return err
		}
	}

	if cfg.SessionURLPrefix != "" {
		if err := verifyAbsoluteURL("rendezvous.session_url_prefix", cfg.SessionURLPrefix); err != nil {
			return err
		}
		// Normalized so that prefix + id always joins cleanly.
		if !strings.HasSuffix(cfg.SessionURLPrefix, "/") {
			cfg.SessionURLPrefix += "/"
		}
	}

	if cfg.TTL <= 0 {
		return errors.New("rendezvous.ttl must be positive")
	}
	if cfg.SoftCapacity < 1 {
		return errors.New("rendezvous.soft_capacity must be at least 1")
	}
	if cfg.HardCapacity < cfg.SoftCapacity {
		return errors.New("rendezvous.hard_capacity must be at least soft_capacity")
	}
	if cfg.MaxContentLength < 1 {
		return errors.New("rendezvous.max_content_length must be at least 1")
	}

	return nil
}

func verifyAbsoluteURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an absolute http(s) URL", key)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host", key)
	}
	return nil
}
