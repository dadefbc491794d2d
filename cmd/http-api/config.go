package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/peterbourgon/ff/v3"

	"github.com/uswitch/typearchive/pkg/authnz"
	"github.com/uswitch/typearchive/pkg/logging"
	"github.com/uswitch/typearchive/pkg/middleware"
	"github.com/uswitch/typearchive/pkg/types"
)

var ErrInvalidConfig = errors.New("invalid config")

type ServerConfig struct {
	Addr string

	WriteTimeoutSecs uint
	ReadTimeoutSecs  uint
	IdleTimeoutSecs  uint
}

func secs(n uint) time.Duration { return time.Duration(n) * time.Second }

type ApiConfig struct {
	Server ServerConfig
	CORS   middleware.CORSConfig

	// largest archive accepted by PUT /archives
	MaxBodyBytes int64
}

type OpsConfig struct {
	Server ServerConfig
}

type StoreConfig struct {
	Dir    string
	Format types.Format

	// put every built in release into the store on start
	Seed bool
}

type Config struct {
	Env      string
	LogLevel string

	Api   ApiConfig
	Ops   OpsConfig
	Store StoreConfig

	// archive to serve over graphql, the newest version in the store if empty
	Follow types.GUID

	GracefulTimeoutSecs uint

	Providers []authnz.OIDCConfig

	// user requests are made as when no providers are configured outside production
	AnonymousUser string
}

func DefaultConfig() Config {
	return Config{
		Env:                 logging.Production,
		GracefulTimeoutSecs: 15,
		AnonymousUser:       "anonymous",
		Api: ApiConfig{
			Server: ServerConfig{
				Addr: "127.0.0.1:8080",

				WriteTimeoutSecs: 15,
				ReadTimeoutSecs:  15,
				IdleTimeoutSecs:  60,
			},
			CORS: middleware.CORSConfig{
				AllowedOrigins: []string{},
				MaxAge:         86400, // 24 hours
			},
			MaxBodyBytes: 16 << 20,
		},
		Ops: OpsConfig{
			Server: ServerConfig{
				Addr: "127.0.0.1:8081",

				WriteTimeoutSecs: 15,
				ReadTimeoutSecs:  15,
				IdleTimeoutSecs:  60,
			},
		},
		Store: StoreConfig{
			Dir:    "archives",
			Format: types.JSON,
			Seed:   true,
		},
	}
}

func (c *Config) validate() error {
	if c.Env != logging.Production && c.Env != logging.Development {
		return fmt.Errorf("%w: env must be %s or %s, got '%s'", ErrInvalidConfig, logging.Production, logging.Development, c.Env)
	}

	if len(c.Providers) == 0 && c.Env == logging.Production {
		return fmt.Errorf("%w: you need to have at least one OIDC provider defined in production", ErrInvalidConfig)
	}

	for idx := range c.Providers {
		provider := &c.Providers[idx]

		if _, err := url.ParseRequestURI(provider.URL); err != nil {
			return fmt.Errorf("%w: provider %d has an invalid URL: %v", ErrInvalidConfig, idx, err)
		}

		if provider.ClientID == "" {
			return fmt.Errorf("%w: provider %s needs a client id", ErrInvalidConfig, provider.URL)
		}

		if provider.UserClaim == "" {
			provider.UserClaim = "sub"
		}
	}

	for _, origin := range c.Api.CORS.AllowedOrigins {
		if origin == "*" {
			continue
		}
		if _, err := url.ParseRequestURI(origin); err != nil {
			return fmt.Errorf("%w: invalid allowed origin '%s': %v", ErrInvalidConfig, origin, err)
		}
	}

	if c.Store.Dir == "" {
		return fmt.Errorf("%w: store dir is required", ErrInvalidConfig)
	}
	if _, err := types.ParseFormat(string(c.Store.Format)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if c.Follow != "" {
		if err := c.Follow.Validate(); err != nil {
			return fmt.Errorf("%w: follow: %v", ErrInvalidConfig, err)
		}
	}

	return nil
}

// ConfigFromPath overlays the JSON file at path onto config.
func ConfigFromPath(path string, config *Config) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(content, config); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	return nil
}

// ParseConfig builds the config from defaults, then the JSON config file, then flags or
// TYPEARCHIVE_ environment variables.
func ParseConfig(args []string) (*Config, error) {
	config := DefaultConfig()

	fs := flag.NewFlagSet("http-api", flag.ContinueOnError)

	configPath := fs.String("config", "", "path to a JSON config file")
	env := fs.String("env", "", "production or development")
	logLevel := fs.String("log-level", "", "minimum level to log, the env's default if empty")
	apiAddr := fs.String("api-addr", "", "address the API listens on")
	opsAddr := fs.String("ops-addr", "", "address the ops server listens on")
	storeDir := fs.String("store-dir", "", "directory archives are kept in")
	storeFormat := fs.String("store-format", "", "json or yaml")
	follow := fs.String("follow", "", "GUID of the archive to serve, the newest if empty")
	noSeed := fs.Bool("no-seed", false, "don't put the built in releases into the store")

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("TYPEARCHIVE")); err != nil {
		return nil, err
	}

	if *configPath != "" {
		if err := ConfigFromPath(*configPath, &config); err != nil {
			return nil, err
		}
	}

	overrides := []struct {
		value string
		dest  *string
	}{
		{*env, &config.Env},
		{*logLevel, &config.LogLevel},
		{*apiAddr, &config.Api.Server.Addr},
		{*opsAddr, &config.Ops.Server.Addr},
		{*storeDir, &config.Store.Dir},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.dest = o.value
		}
	}

	if *storeFormat != "" {
		format, err := types.ParseFormat(*storeFormat)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		config.Store.Format = format
	}
	if *follow != "" {
		config.Follow = types.GUID(*follow)
	}
	if *noSeed {
		config.Store.Seed = false
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
