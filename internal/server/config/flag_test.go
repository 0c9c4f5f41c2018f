package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected  *Config
		name      string
		args      []string
		expectErr bool
	}{
		{name: "Test1 OK", args: []string{
			"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-t", "30m", "-w", "https://example.com",
			"-x", "sandbox.example", "-R", "localhost:6379", "-n", "3", "-W", "1m",
			"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint", "-l", "debug",
		},
			expected: &Config{
				EndpointAddrGRPC:  "127.0.0.1:9090",
				DatabaseDSN:       "db",
				SecretKey:         "secret",
				LinkValidity:      30 * time.Minute,
				PublicURL:         "https://example.com",
				TestEmailDomain:   "sandbox.example",
				RedisAddr:         "localhost:6379",
				LinkRequestLimit:  3,
				LinkRequestWindow: time.Minute,
				S3RootUser:        "user",
				S3RootPassword:    "password",
				S3Bucket:          "bucket",
				S3Region:          "us-west-1",
				S3BaseEndpoint:    "http://endpoint",
				LogLevel:          "debug",
			}},
		{name: "Test2 incorrect validity", args: []string{"-t", "abc"}, expectErr: true, expected: &Config{}},
		{name: "Test3 incorrect limit", args: []string{"-n", "many"}, expectErr: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			err := parseFlags(config, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}
