// Package config handles configuration for the pwakit server: defaults,
// an optional JSON file, environment variables (optionally seeded from a
// .env file) and command-line flags, applied in that order.
package config

import (
	"time"

	"github.com/dmitrijs2005/pwakit/internal/common"
)

// Storage providers.
const (
	ProviderLocal = "local"
	ProviderS3    = "s3"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds runtime settings for the pwakit server.
//
// Fields:
//   - HTTPAddr / GRPCAddr: bind addresses for the admin+manifest HTTP API and the gRPC API.
//   - DatabaseDriver / DatabaseDSN: "postgres" (pgx) or "sqlite" (modernc).
//   - StorageProvider: "local" or "s3"; StoragePath is the storage root (icon directory).
//   - BoardRoot: filesystem directory the local provider resolves StoragePath against.
//   - BoardPath: public URL prefix of the board, used for manifest icon sources.
//   - S3*: object storage settings for the s3 provider.
//   - SecretKey: HMAC secret for admin, form and confirmation tokens.
//   - AdminPasswordSalt / AdminPasswordHash: hex argon2id credentials (see cli hash-password).
//   - TokenTTL: lifetime of the admin access token; FormKeyTTL: lifetime of form/confirm keys.
//   - IconCacheTTL: upper bound on icon manifest staleness.
//   - PresignTTL: lifetime of redirect URLs handed out for s3-backed icons.
type Config struct {
	HTTPAddr          string        `mapstructure:"http_addr" env:"HTTP_ADDR"`
	GRPCAddr          string        `mapstructure:"grpc_addr" env:"GRPC_ADDR"`
	DatabaseDriver    string        `mapstructure:"database_driver" env:"DATABASE_DRIVER"`
	DatabaseDSN       string        `mapstructure:"database_dsn" env:"DATABASE_DSN"`
	StorageProvider   string        `mapstructure:"storage_provider" env:"STORAGE_PROVIDER"`
	StoragePath       string        `mapstructure:"storage_path" env:"STORAGE_PATH"`
	BoardRoot         string        `mapstructure:"board_root" env:"BOARD_ROOT"`
	BoardPath         string        `mapstructure:"board_path" env:"BOARD_PATH"`
	S3RootUser        string        `mapstructure:"s3_root_user" env:"S3_ROOT_USER"`
	S3RootPassword    string        `mapstructure:"s3_root_password" env:"S3_ROOT_PASSWORD"`
	S3Bucket          string        `mapstructure:"s3_bucket" env:"S3_BUCKET"`
	S3Region          string        `mapstructure:"s3_region" env:"S3_REGION"`
	S3BaseEndpoint    string        `mapstructure:"s3_base_endpoint" env:"S3_BASE_ENDPOINT"`
	SecretKey         string        `mapstructure:"secret_key" env:"SECRET_KEY"`
	AdminPasswordSalt string        `mapstructure:"admin_password_salt" env:"ADMIN_PASSWORD_SALT"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash" env:"ADMIN_PASSWORD_HASH"`
	TokenTTL          time.Duration `mapstructure:"token_ttl" env:"TOKEN_TTL"`
	FormKeyTTL        time.Duration `mapstructure:"form_key_ttl" env:"FORM_KEY_TTL"`
	IconCacheTTL      time.Duration `mapstructure:"icon_cache_ttl" env:"ICON_CACHE_TTL"`
	PresignTTL        time.Duration `mapstructure:"presign_ttl" env:"PRESIGN_TTL"`
	Locale            string        `mapstructure:"locale" env:"LOCALE"`
	LogLevel          string        `mapstructure:"log_level" env:"LOG_LEVEL"`
	LogFormat         string        `mapstructure:"log_format" env:"LOG_FORMAT"`
	OTLPEndpoint      string        `mapstructure:"otlp_endpoint" env:"OTLP_ENDPOINT"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey and the empty admin credentials must be overridden in production.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.GRPCAddr = ":50051"
	c.DatabaseDriver = DriverSQLite
	c.DatabaseDSN = "file:pwakit.db?_pragma=busy_timeout(5000)"
	c.StorageProvider = ProviderLocal
	c.StoragePath = common.DefaultIconDir
	c.BoardRoot = "."
	c.BoardPath = "/"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "board"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.SecretKey = "secretKey"
	c.TokenTTL = 30 * time.Minute
	c.FormKeyTTL = 15 * time.Minute
	c.IconCacheTTL = time.Hour
	c.PresignTTL = 15 * time.Minute
	c.Locale = "en"
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// LoadConfig builds a Config from defaults, then overlays the JSON file,
// the environment and finally the command-line flags.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
