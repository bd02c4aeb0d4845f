package biz

import (
	"fmt"
	"time"
)

// AuthConfig holds token issuance settings.
type AuthConfig struct {
	// SecretKey signs HS256 tokens. Generated at first boot when empty.
	SecretKey       string        `conf:"secret_key" yaml:"secret_key" json:"-"`
	AccessTokenTTL  time.Duration `conf:"access_token_ttl" yaml:"access_token_ttl" json:"access_token_ttl"`
	RefreshTokenTTL time.Duration `conf:"refresh_token_ttl" yaml:"refresh_token_ttl" json:"refresh_token_ttl"`
}

// Validate checks the configured TTL ordering.
func (c AuthConfig) Validate() error {
	if c.AccessTokenTTL < 0 || c.RefreshTokenTTL < 0 {
		return fmt.Errorf("auth: token ttl must not be negative")
	}

	if c.RefreshTokenTTL != 0 && c.AccessTokenTTL > c.RefreshTokenTTL {
		return fmt.Errorf("auth: access token ttl exceeds refresh token ttl")
	}

	return nil
}

func (c AuthConfig) accessTTL() time.Duration {
	if c.AccessTokenTTL <= 0 {
		return 24 * time.Hour
	}

	return c.AccessTokenTTL
}

func (c AuthConfig) refreshTTL() time.Duration {
	if c.RefreshTokenTTL <= 0 {
		return 7 * 24 * time.Hour
	}

	return c.RefreshTokenTTL
}
