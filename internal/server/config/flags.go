package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/pwakit/internal/flagx"
)

// ValueFlags lists every server flag that takes a value, so positional
// commands can be told apart from flag values.
var ValueFlags = []string{"-a", "-g", "-d", "-D", "-p", "-r", "-s", "-b", "-e", "-l", "-c", "-config"}

// parseFlags overlays selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-g string   gRPC bind address (e.g. ":50051")
//	-d string   database DSN
//	-D string   database driver: postgres | sqlite
//	-p string   storage provider: local | s3
//	-r string   board root directory
//	-s string   secret key
//	-b string   S3 bucket name
//	-e string   S3 base endpoint (e.g. "http://127.0.0.1:9000/")
//	-l string   log level
//
// Only the flags above are picked out of args, so other components may
// define their own.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-D", "-p", "-r", "-s", "-b", "-e", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port to run server")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DatabaseDriver, "D", config.DatabaseDriver, "database driver (postgres|sqlite)")
	fs.StringVar(&config.StorageProvider, "p", config.StorageProvider, "storage provider (local|s3)")
	fs.StringVar(&config.BoardRoot, "r", config.BoardRoot, "board root directory")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	return fs.Parse(args)
}
