package config

import (
	"fmt"
)

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("invalid max open connections: %d", c.Database.MaxOpenConns)
	}
	if c.Database.MaxIdleConns < 1 {
		return fmt.Errorf("invalid max idle connections: %d", c.Database.MaxIdleConns)
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required")
	}
	if c.RateLimit.APIRequests < 1 {
		return fmt.Errorf("invalid API rate limit: %d", c.RateLimit.APIRequests)
	}
	if c.RateLimit.APIPeriod <= 0 {
		return fmt.Errorf("invalid API rate limit period: %s", c.RateLimit.APIPeriod)
	}
	return nil
}
