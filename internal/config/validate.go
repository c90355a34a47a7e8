package config

import (
	"fmt"
	"net/url"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if _, err := url.Parse(c.IPFS.Endpoint); err != nil {
		return fmt.Errorf("ipfs.endpoint: %w", err)
	}
	if c.IPFS.Timeout <= 0 {
		return fmt.Errorf("ipfs.timeout must be > 0 (got %v)", c.IPFS.Timeout)
	}

	if _, err := url.Parse(c.Ledger.RelayURL); err != nil {
		return fmt.Errorf("ledger.relay_url: %w", err)
	}
	if c.Ledger.Timeout <= 0 {
		return fmt.Errorf("ledger.timeout must be > 0 (got %v)", c.Ledger.Timeout)
	}

	if c.Vault.MaxUploadBytes <= 0 {
		return fmt.Errorf("vault.max_upload_bytes must be > 0 (got %d)", c.Vault.MaxUploadBytes)
	}
	if c.Vault.PublicPageSize <= 0 {
		return fmt.Errorf("vault.public_page_size must be > 0 (got %d)", c.Vault.PublicPageSize)
	}

	if c.Mirror.Enabled {
		if c.Mirror.PollInterval <= 0 {
			return fmt.Errorf("mirror.poll_interval must be > 0 (got %v)", c.Mirror.PollInterval)
		}
		if c.Mirror.MaxAttempts <= 0 {
			return fmt.Errorf("mirror.max_attempts must be > 0 (got %d)", c.Mirror.MaxAttempts)
		}
		if c.Mirror.BatchSize <= 0 {
			return fmt.Errorf("mirror.batch_size must be > 0 (got %d)", c.Mirror.BatchSize)
		}
	}

	return nil
}
