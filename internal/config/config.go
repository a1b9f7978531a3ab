package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress       string
	DatabaseURI      string
	PaystackSecret   string
	PaystackBaseURL  string
	GatewayTimeout   time.Duration
	JWTSecret        string
	AdminEmail       string
	AdminPassword    string
	CloudinaryURL    string
	UploadMaxRetries int
	UploadRetryDelay time.Duration
	UploadPoolSize   int
	ImageCacheSize   int
	ImageCacheTTL    time.Duration
	ShutdownTimeout  time.Duration
	LogLevel         string
}

const (
	defaultRunAddress       = ":9000"
	defaultPaystackBaseURL  = "https://api.paystack.co"
	defaultGatewayTimeout   = 10 * time.Second
	defaultJWTSecret        = "change-me-in-production"
	defaultUploadMaxRetries = 3
	defaultUploadRetryDelay = 2 * time.Second
	defaultUploadPoolSize   = 4
	defaultImageCacheSize   = 100
	defaultImageCacheTTL    = time.Hour
	defaultShutdownTimeout  = 10 * time.Second
	defaultLogLevel         = "info"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		PaystackSecret:   getString(lookup, "PAYSTACK_SECRET", ""),
		PaystackBaseURL:  getString(lookup, "PAYSTACK_BASE_URL", defaultPaystackBaseURL),
		GatewayTimeout:   getDuration(lookup, "GATEWAY_TIMEOUT", defaultGatewayTimeout),
		JWTSecret:        getString(lookup, "JWT_SECRET", defaultJWTSecret),
		AdminEmail:       getString(lookup, "ADMIN_EMAIL", ""),
		AdminPassword:    getString(lookup, "ADMIN_PASSWORD", ""),
		CloudinaryURL:    getString(lookup, "CLOUDINARY_URL", ""),
		UploadMaxRetries: getInt(lookup, "UPLOAD_MAX_RETRIES", defaultUploadMaxRetries),
		UploadRetryDelay: getDuration(lookup, "UPLOAD_RETRY_DELAY", defaultUploadRetryDelay),
		UploadPoolSize:   getInt(lookup, "UPLOAD_POOL_SIZE", defaultUploadPoolSize),
		ImageCacheSize:   getInt(lookup, "IMAGE_CACHE_SIZE", defaultImageCacheSize),
		ImageCacheTTL:    getDuration(lookup, "IMAGE_CACHE_TTL", defaultImageCacheTTL),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:         getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		gatewayTimeoutStr  = cfg.GatewayTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PaystackBaseURL, "gateway-url", cfg.PaystackBaseURL, "Payment gateway base URL")
	fs.StringVar(&gatewayTimeoutStr, "gateway-timeout", gatewayTimeoutStr, "Payment gateway request timeout")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.CloudinaryURL, "cloudinary-url", cfg.CloudinaryURL, "Image host upload endpoint")
	fs.IntVar(&cfg.UploadMaxRetries, "upload-retries", cfg.UploadMaxRetries, "Maximum image upload attempts")
	fs.IntVar(&cfg.UploadPoolSize, "upload-pool", cfg.UploadPoolSize, "Number of concurrent image upload workers")
	fs.IntVar(&cfg.ImageCacheSize, "image-cache-size", cfg.ImageCacheSize, "Image cache capacity")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Minimum log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.GatewayTimeout, err = time.ParseDuration(gatewayTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid gateway timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("PAYSTACK_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read paystack secret file: %w", err)
		}
		cfg.PaystackSecret = strings.TrimSpace(string(content))
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = defaultGatewayTimeout
	}

	if cfg.UploadMaxRetries <= 0 {
		cfg.UploadMaxRetries = defaultUploadMaxRetries
	}

	if cfg.UploadRetryDelay <= 0 {
		cfg.UploadRetryDelay = defaultUploadRetryDelay
	}

	if cfg.UploadPoolSize <= 0 {
		cfg.UploadPoolSize = defaultUploadPoolSize
	}

	if cfg.ImageCacheSize <= 0 {
		cfg.ImageCacheSize = defaultImageCacheSize
	}

	if cfg.ImageCacheTTL <= 0 {
		cfg.ImageCacheTTL = defaultImageCacheTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.PaystackSecret == "" {
		return nil, fmt.Errorf("paystack secret must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
