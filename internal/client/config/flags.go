package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/pwakit/internal/flagx"
)

// ValueFlags are the flags that consume the following argument.
var ValueFlags = []string{"-a", "-t", "-T", "-c", "-config"}

func parseFlags(cfg *Config, args []string) error {
	// Filter args to include only those handled here.
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-T"})

	fs := flag.NewFlagSet("pwakit-cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the gRPC server")
	fs.StringVar(&cfg.AccessToken, "t", cfg.AccessToken, "admin access token")
	fs.DurationVar(&cfg.Timeout, "T", cfg.Timeout, "timeout of one call")

	return fs.Parse(args)
}
