package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port           string
	DataDir        string // badger blob store location
	DatabaseURL    string // optional; in-memory job repo when empty
	MaxUploadBytes int64
}

func Load() Config {
	cfg := Config{
		Port:           "8080",
		DataDir:        "data",
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MaxUploadBytes: 15 << 20,
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxUploadBytes = int64(n) << 20
		}
	}
	return cfg
}
