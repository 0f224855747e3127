package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"storefront/pkg/client"
	"storefront/pkg/config"
	"storefront/pkg/logger"
)

// session is what every command works with. It is built once per run in
// the app's Before hook.
type session struct {
	catalog *client.CatalogClient
	tokens  client.TokenStore
	redis   *redis.Client
	log     *logger.Logger
	out     io.Writer
}

func (s *session) print(v any) error {
	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *session) close() error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Close()
}

func newApp(out io.Writer) *cli.App {
	s := &session{out: out}

	return &cli.App{
		Name:   "catalogctl",
		Usage:  "browse and manage the storefront catalog",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "api",
				Usage: "catalog API base URL (overrides " + config.EnvAPIBaseURL + ")",
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "admin bearer token to use instead of the stored session",
				EnvVars: []string{"CATALOG_TOKEN"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log requests to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			return s.open(c)
		},
		After: func(*cli.Context) error {
			return s.close()
		},
		Commands: commands(s),
	}
}

func (s *session) open(c *cli.Context) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	if api := c.String("api"); api != "" {
		cfg.APIBaseURL = api
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	level := logger.ERROR
	if c.Bool("verbose") {
		level = logger.DEBUG
	}
	log := logger.New(logger.Config{Level: level, Format: logger.TEXT, Output: os.Stderr, Service: "catalogctl"})
	s.log = log

	s.tokens = client.NewMemoryTokenStore()
	if cfg.RedisAddr != "" {
		s.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		s.tokens = client.NewRedisTokenStore(s.redis, cfg.TokenKey, cfg.TokenTTL)
	}

	if token := c.String("token"); token != "" {
		s.tokens = client.NewMemoryTokenStore()
		if err := s.tokens.SetToken(c.Context, token); err != nil {
			return fmt.Errorf("failed to use token: %w", err)
		}
	}

	s.catalog = client.NewCatalogClient(client.NewHttpClient(
		cfg.APIBaseURL,
		client.WithTokenStore(s.tokens),
		client.WithLogger(log),
	))
	return nil
}
