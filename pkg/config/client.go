package config

import (
	"fmt"
	"net/url"
	"time"
)

// ClientConfig configures catalogctl and other API consumers. An empty
// RedisAddr keeps the session in memory for the life of the process.
type ClientConfig struct {
	APIBaseURL    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TokenKey      string
	TokenTTL      time.Duration
}

func LoadClient() (*ClientConfig, error) {
	cfg := &ClientConfig{
		APIBaseURL:    getEnvStr(EnvAPIBaseURL, DefaultAPIBaseURL),
		RedisAddr:     getEnvStr(EnvRedisAddr, ""),
		RedisPassword: getEnvStr(EnvRedisPassword, ""),
		RedisDB:       getEnvNum(EnvRedisDB, DefaultRedisDB),
		TokenKey:      getEnvStr(EnvTokenKey, "auth_token"),
		TokenTTL:      getEnvDuration(EnvTokenTTL, DefaultTokenTTL),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *ClientConfig) Validate() error {
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API base URL must be an http(s) URL, got: %s", cfg.APIBaseURL)
	}
	if cfg.RedisDB < 0 {
		return fmt.Errorf("Redis DB cannot be negative, got: %d", cfg.RedisDB)
	}
	if cfg.TokenTTL < 0 {
		return fmt.Errorf("token TTL cannot be negative, got: %s", cfg.TokenTTL)
	}
	return nil
}
