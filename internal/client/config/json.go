package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"

	"github.com/dmitrijs2005/joinflow/internal/flagx"
	"github.com/dmitrijs2005/joinflow/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Empty
// fields leave the corresponding Config value untouched.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	OriginURL          string         `json:"origin_url"`
	StartPath          string         `json:"start_path"`
	Mode               string         `json:"mode"`
	DefaultMode        string         `json:"default_mode"`
	Redirect           string         `json:"redirect"`
	Routes             struct {
		SignIn        string `json:"signin"`
		CreateAccount string `json:"create_account"`
	} `json:"routes"`
	Labels    map[string]string `json:"labels"`
	LogLevel  string            `json:"log_level"`
	LogFormat string            `json:"log_format"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
// Without such a flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setString(&cfg.OriginURL, jc.OriginURL)
	setString(&cfg.StartPath, jc.StartPath)
	setString(&cfg.Mode, jc.Mode)
	setString(&cfg.DefaultMode, jc.DefaultMode)
	setString(&cfg.Redirect, jc.Redirect)
	setString(&cfg.SignInRoute, jc.Routes.SignIn)
	setString(&cfg.CreateAccountRoute, jc.Routes.CreateAccount)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if len(jc.Labels) > 0 {
		if cfg.Labels == nil {
			cfg.Labels = map[string]string{}
		}
		maps.Copy(cfg.Labels, jc.Labels)
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
