package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/joinflow/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     gRPC bind address (e.g., ":50051")
//	-d string     PostgreSQL DSN
//	-s string     JWT HMAC secret key
//	-t duration   sign-in link validity
//	-w string     public website URL
//	-x string     test email domain
//	-R string     Redis address
//	-n int        link requests allowed per window
//	-W duration   link request window
//	-u string     S3 root user
//	-p string     S3 root password
//	-b string     S3 bucket name
//	-g string     S3 region
//	-e string     S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-l string     log level
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-w", "-x", "-R", "-n", "-W", "-u", "-p", "-b", "-g", "-e", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.LinkValidity, "t", config.LinkValidity, "sign-in link validity")
	fs.StringVar(&config.PublicURL, "w", config.PublicURL, "public website URL")
	fs.StringVar(&config.TestEmailDomain, "x", config.TestEmailDomain, "test email domain")
	fs.StringVar(&config.RedisAddr, "R", config.RedisAddr, "redis address")
	fs.IntVar(&config.LinkRequestLimit, "n", config.LinkRequestLimit, "link requests per window")
	fs.DurationVar(&config.LinkRequestWindow, "W", config.LinkRequestWindow, "link request window")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 outbox bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	return fs.Parse(args)
}
