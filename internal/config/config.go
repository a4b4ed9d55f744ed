// Package config loads the client configuration from optional TOML files
// and STOREFRONT_* environment variables merged on top.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	sessredis "github.com/dacsanviet/storefront/internal/session/redis"
)

const (
	// DefaultTimeout is the shared HTTP client timeout.
	DefaultTimeout = 15 * time.Second

	// DefaultOTPTTL is the validity window of an OTP challenge. It is also
	// the resend countdown shown to the user; the server's own expiry is
	// authoritative.
	DefaultOTPTTL = 300 * time.Second
)

// envPrefix is stripped from environment variables and `__` maps to `.`,
// eg: STOREFRONT_APP__ROOT_URL -> app.root_url.
const envPrefix = "STOREFRONT_"

// Config holds the client settings.
type Config struct {
	RootURL string        `json:"root_url"`
	Timeout time.Duration `json:"timeout"`
	OTPTTL  time.Duration `json:"otp_ttl"`

	Redis sessredis.Conf `json:"-"`
}

// Load reads zero or more TOML config files in order and merges
// environment variables on top.
func Load(files ...string) (Config, error) {
	ko := koanf.New(".")
	for _, f := range files {
		if err := ko.Load(file.Provider(f), toml.Parser()); err != nil {
			return Config{}, fmt.Errorf("error reading config %s: %w", f, err)
		}
	}

	if err := ko.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, envPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("error loading env config: %w", err)
	}

	var c Config
	if err := ko.UnmarshalWithConf("app", &c, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return Config{}, err
	}
	if err := ko.UnmarshalWithConf("store.redis", &c.Redis, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return Config{}, err
	}

	// OTP TTL and timeout are configured in seconds.
	c.Timeout *= time.Second
	c.OTPTTL *= time.Second
	if c.Timeout.Seconds() < 1 {
		c.Timeout = DefaultTimeout
	}
	if c.OTPTTL.Seconds() < 1 {
		c.OTPTTL = DefaultOTPTTL
	}

	return c, nil
}
