package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/joinflow/internal/flagx"
	"github.com/dmitrijs2005/joinflow/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "1s" and integer nanoseconds.
//
// After unmarshalling, non-empty fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrGRPC  string         `json:"endpoint_addr_grpc"`
	DatabaseDSN       string         `json:"database_dsn"`
	SecretKey         string         `json:"secret_key"`
	LinkValidity      timex.Duration `json:"link_validity"`
	PublicURL         string         `json:"public_url"`
	TestEmailDomain   string         `json:"test_email_domain"`
	RedisAddr         string         `json:"redis_addr"`
	LinkRequestLimit  int            `json:"link_request_limit"`
	LinkRequestWindow timex.Duration `json:"link_request_window"`
	S3RootUser        string         `json:"s3_root_user"`
	S3RootPassword    string         `json:"s3_root_password"`
	S3Bucket          string         `json:"s3_bucket"`
	S3Region          string         `json:"s3_region"`
	S3BaseEndpoint    string         `json:"s3_base_endpoint"`
	LogLevel          string         `json:"log_level"`
	LogFormat         string         `json:"log_format"`
}

// parseJson loads configuration values from the JSON file named by -c or
// -config in args. Without such a flag nothing is loaded.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.PublicURL, c.PublicURL)
	setString(&config.TestEmailDomain, c.TestEmailDomain)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)

	if c.LinkValidity.Duration != 0 {
		config.LinkValidity = c.LinkValidity.Duration
	}
	if c.LinkRequestWindow.Duration != 0 {
		config.LinkRequestWindow = c.LinkRequestWindow.Duration
	}
	if c.LinkRequestLimit != 0 {
		config.LinkRequestLimit = c.LinkRequestLimit
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
