package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/joinflow/internal/flagx"
)

var knownFlags = []string{"-a", "-t", "-o", "-p", "-m", "-d", "-r", "-l"}

// parseFlags populates Config fields from command-line flags. args is
// filtered through flagx.FilterArgs first so flags owned by other loaders
// (such as -c) do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the identity server")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-call timeout for identity requests")
	fs.StringVar(&cfg.OriginURL, "o", cfg.OriginURL, "origin URL of the hosting website")
	fs.StringVar(&cfg.StartPath, "p", cfg.StartPath, "path the flow starts on")
	fs.StringVar(&cfg.Mode, "m", cfg.Mode, "fixed mode (signin | create-account)")
	fs.StringVar(&cfg.DefaultMode, "d", cfg.DefaultMode, "default mode")
	fs.StringVar(&cfg.Redirect, "r", cfg.Redirect, "redirect after following the sign-in link")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	return fs.Parse(args)
}
