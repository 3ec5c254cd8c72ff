package vaultcreds

import (
	"fmt"
	"net/url"
	"time"
)

// Config carries the connection settings for a [Client]. It is populated
// by the caller - typically from the environment at process start - and
// passed to [New]. The client itself never reads ambient state.
type Config struct {
	// Address is the URL of the Vault server, e.g.
	// "https://vault.example.com:8200". Required.
	Address string

	// Mount is the KV version 2 mount point secrets are read from.
	// Defaults to "secret".
	Mount string

	// Timeout bounds each request. When zero, the Vault API client's
	// default (60s) applies.
	Timeout time.Duration
}

// Validate checks that the configuration is complete enough to build a
// client. It runs before any network call is attempted.
func (c Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("vault address is required: %w", ErrConfiguration)
	}

	u, err := url.Parse(c.Address)
	if err != nil {
		return fmt.Errorf("vault address %q is not a valid URL: %w", c.Address, ErrConfiguration)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("vault address %q must use the http or https scheme: %w", c.Address, ErrConfiguration)
	}

	if u.Host == "" {
		return fmt.Errorf("vault address %q is missing a host: %w", c.Address, ErrConfiguration)
	}

	return nil
}
