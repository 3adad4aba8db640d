package config

import (
	"flag"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseDSN string `env:"DATABASE_DSN"`
	RunAddr     string `env:"RUN_ADDR"`
	SecretKey   string `env:"SECRET_KEY"` // session cookie signing
	UploadDir   string `env:"UPLOAD_DIR"`

	// BaseURL is the public prefix written into stored file URLs.
	BaseURL string `env:"BASE_URL"`

	// EnableUnsafeUpload opens the demonstration-only passthrough upload
	// endpoint. Off by default: it stores client-supplied file names.
	EnableUnsafeUpload bool `env:"ENABLE_UNSAFE_UPLOAD"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags apply only when env did not set the value
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN (postgres URL or sqlite file path)")
	flag.StringVar(&cfg.RunAddr, "a", cfg.RunAddr, "address:port to listen on")
	flag.StringVar(&cfg.SecretKey, "secret", cfg.SecretKey, "secret for session cookie signing")
	flag.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "directory for uploaded files")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "public base URL used in stored file links")
	flag.BoolVar(&cfg.EnableUnsafeUpload, "unsafe-upload", cfg.EnableUnsafeUpload, "enable the unvalidated demo upload endpoint")
	flag.Parse()

	// Defaults
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "data.sqlite"
	}
	if cfg.SecretKey == "" {
		cfg.SecretKey = "dev-secret-key"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	// RunAddr must be "address:port" without scheme or path
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.RunAddr) {
		cfg.RunAddr = "localhost:8080"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://" + cfg.RunAddr
	}

	return cfg
}
