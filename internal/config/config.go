package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultPort           = "8080"
	defaultBasePath       = "/upload/data"
	defaultMaxUploadBytes = 50 << 20
)

type Config struct {
	Port           string
	DatabaseURL    string
	AllowedOrigins []string
	MaxUploadBytes int64
	BasePath       string
}

// Load reads the process configuration from the environment once at start.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           defaultPort,
		AllowedOrigins: []string{"*"},
		MaxUploadBytes: defaultMaxUploadBytes,
		BasePath:       defaultBasePath,
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be a positive integer, got %q", v)
		}
		cfg.MaxUploadBytes = n
	}

	if v := os.Getenv("BASE_PATH"); v != "" {
		if !strings.HasPrefix(v, "/") {
			return nil, fmt.Errorf("BASE_PATH must start with /, got %q", v)
		}
		cfg.BasePath = strings.TrimRight(v, "/")
	}

	return cfg, nil
}
