// Package config loads the settings of the pwakit admin CLI.
//
// Sources, later ones overriding earlier ones: defaults, an optional JSON
// file (-c / -config), PWAKIT_CLI_* environment variables, then flags.
//
//	-a string   address:port of the gRPC endpoint
//	-t string   admin access token
//	-T duration timeout of one call
package config

import "time"

type Config struct {
	ServerEndpointAddr string        `mapstructure:"server_endpoint_addr" env:"ADDR"`
	AccessToken        string        `mapstructure:"access_token" env:"TOKEN"`
	Timeout            time.Duration `mapstructure:"timeout" env:"TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.Timeout = 10 * time.Second
}

// LoadConfig builds a Config from args (without the program name).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
