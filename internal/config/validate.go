package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Lookup.validate(); err != nil {
		return fmt.Errorf("lookup: %w", err)
	}
	if err := c.Cache.validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return nil
}

func (c *LookupConfig) validate() error {
	if c.MaxQueryLength <= 0 {
		return fmt.Errorf("max_query_length must be > 0 (got %d)", c.MaxQueryLength)
	}
	if c.PerSourceTimeout <= 0 {
		return fmt.Errorf("per_source_timeout must be > 0 (got %v)", c.PerSourceTimeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0 (got %d)", c.MaxRetries)
	}
	if c.BackoffBase <= 0 {
		return fmt.Errorf("backoff_base must be > 0 (got %v)", c.BackoffBase)
	}
	if c.BackoffJitterFraction < 0 || c.BackoffJitterFraction > 1 {
		return fmt.Errorf("backoff_jitter_fraction must be in [0, 1] (got %v)", c.BackoffJitterFraction)
	}
	if c.CircuitFailureThreshold <= 0 {
		return fmt.Errorf("circuit_failure_threshold must be > 0 (got %d)", c.CircuitFailureThreshold)
	}
	if c.CircuitCooldown <= 0 {
		return fmt.Errorf("circuit_cooldown must be > 0 (got %v)", c.CircuitCooldown)
	}
	if c.CircuitWindow < 0 {
		return fmt.Errorf("circuit_window must be >= 0 (got %v)", c.CircuitWindow)
	}
	if c.OuterDeadline < 0 {
		return fmt.Errorf("outer_deadline must be >= 0 (got %v)", c.OuterDeadline)
	}
	if c.RatePerSecond > 0 && c.RateBurst <= 0 {
		return fmt.Errorf("rate_burst must be > 0 when rate limiting is enabled (got %d)", c.RateBurst)
	}
	return nil
}

func (c *CacheConfig) validate() error {
	if c.TTL <= 0 {
		return fmt.Errorf("ttl must be > 0 (got %v)", c.TTL)
	}
	if c.MaxEntries <= 0 {
		return fmt.Errorf("max_entries must be > 0 (got %d)", c.MaxEntries)
	}
	return nil
}
