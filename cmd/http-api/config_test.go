package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/uswitch/typearchive/pkg/authnz"
	"github.com/uswitch/typearchive/pkg/logging"
	"github.com/uswitch/typearchive/pkg/types"
)

func TestParseConfigNeedsProvidersInProduction(t *testing.T) {
	if _, err := ParseConfig([]string{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, but got %v", err)
	}
}

func TestParseConfigDevelopment(t *testing.T) {
	config, err := ParseConfig([]string{"-env", logging.Development, "-store-format", "yml", "-no-seed"})
	if err != nil {
		t.Fatal(err)
	}

	if config.Store.Format != types.YAML {
		t.Errorf("expected yaml, but got %s", config.Store.Format)
	}
	if config.Store.Seed {
		t.Error("expected seeding to be turned off")
	}
	if config.Api.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("expected the default api addr, but got %s", config.Api.Server.Addr)
	}
}

func TestParseConfigFromEnv(t *testing.T) {
	t.Setenv("TYPEARCHIVE_ENV", logging.Development)
	t.Setenv("TYPEARCHIVE_STORE_DIR", "/var/lib/typearchive")

	config, err := ParseConfig([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if config.Store.Dir != "/var/lib/typearchive" {
		t.Errorf("expected the store dir from the environment, but got %s", config.Store.Dir)
	}
}

func TestParseConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	content := `{
  "Api": {"Server": {"Addr": "0.0.0.0:9000"}, "CORS": {"AllowedOrigins": ["https://wibble.com"]}},
  "Providers": [{"URL": "https://bibble.com", "ClientID": "api"}]
}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	config, err := ParseConfig([]string{"-config", path, "-ops-addr", "0.0.0.0:9001"})
	if err != nil {
		t.Fatal(err)
	}

	if config.Api.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("expected the addr from the file, but got %s", config.Api.Server.Addr)
	}
	if config.Api.Server.ReadTimeoutSecs != 15 {
		t.Errorf("expected the default read timeout to survive, but got %d", config.Api.Server.ReadTimeoutSecs)
	}
	if config.Ops.Server.Addr != "0.0.0.0:9001" {
		t.Errorf("expected the flag to override the ops addr, but got %s", config.Ops.Server.Addr)
	}
	if config.Providers[0].UserClaim != "sub" {
		t.Errorf("expected the user claim to default to sub, but got '%s'", config.Providers[0].UserClaim)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bad env", func(c *Config) { c.Env = "staging" }},
		{"provider without client id", func(c *Config) {
			c.Providers = []authnz.OIDCConfig{{URL: "https://bibble.com"}}
		}},
		{"bad origin", func(c *Config) { c.Api.CORS.AllowedOrigins = []string{"not a url"} }},
		{"no store dir", func(c *Config) { c.Store.Dir = "" }},
		{"bad follow", func(c *Config) { c.Follow = "wibble" }},
	}

	for _, test := range tests {
		config := DefaultConfig()
		config.Env = logging.Development
		test.modify(&config)

		if err := config.validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, but got %v", test.name, err)
		}
	}
}
