package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/joinflow/internal/flow"
)

// Config holds runtime settings for the joinflow CLI.
//
// Mode pins the active form; DefaultMode only picks the initial one.
// SignInRoute and CreateAccountRoute, when set, make the secondary action
// navigate instead of flipping the form in place.
type Config struct {
	ServerEndpointAddr string            `env:"JOINFLOW_SERVER_ADDR"`
	RequestTimeout     time.Duration     `env:"JOINFLOW_REQUEST_TIMEOUT"`
	OriginURL          string            `env:"JOINFLOW_ORIGIN_URL"`
	StartPath          string            `env:"JOINFLOW_START_PATH"`
	Mode               string            `env:"JOINFLOW_MODE"`
	DefaultMode        string            `env:"JOINFLOW_DEFAULT_MODE"`
	Redirect           string            `env:"JOINFLOW_REDIRECT"`
	SignInRoute        string            `env:"JOINFLOW_SIGNIN_ROUTE"`
	CreateAccountRoute string            `env:"JOINFLOW_CREATE_ACCOUNT_ROUTE"`
	Labels             map[string]string `env:"JOINFLOW_LABELS"`
	LogLevel           string            `env:"JOINFLOW_LOG_LEVEL"`
	LogFormat          string            `env:"JOINFLOW_LOG_FORMAT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
	c.StartPath = "/signin"
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// Validate checks the values that cannot be checked by type alone.
func (c *Config) Validate() error {
	if c.ServerEndpointAddr == "" {
		return fmt.Errorf("server endpoint address is required")
	}
	if _, err := flow.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	if _, err := flow.ParseMode(c.DefaultMode); err != nil {
		return fmt.Errorf("default mode: %w", err)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	return nil
}

// Routes maps each mode to its configured route name, skipping empty ones.
func (c *Config) Routes() map[flow.Mode]string {
	routes := map[flow.Mode]string{}
	if c.SignInRoute != "" {
		routes[flow.ModeSignIn] = c.SignInRoute
	}
	if c.CreateAccountRoute != "" {
		routes[flow.ModeCreateAccount] = c.CreateAccountRoute
	}
	return routes
}

// LoadConfig constructs a Config from defaults, the environment, an
// optional JSON file and command-line flags. Later sources take precedence.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
