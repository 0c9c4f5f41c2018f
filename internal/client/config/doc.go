// Package config loads runtime configuration for the joinflow CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed with JOINFLOW_ (see parseEnv).
//  3. Optional JSON file selected via -c or -config (see parseJson).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     address:port of the identity server
//	-t duration   per-call timeout for identity requests
//	-o string     origin URL passed to the identity server
//	-p string     path the flow starts on
//	-m string     fixed mode (signin | create-account)
//	-d string     default mode when -m is not set
//	-r string     explicit post-link redirect
//	-l string     log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "5s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "5s",
//	  "origin_url": "https://example.com",
//	  "mode": "signin",
//	  "routes": {"create_account": "createAccount"},
//	  "labels": {"signin.title": "Continue with your email"}
//	}
package config
