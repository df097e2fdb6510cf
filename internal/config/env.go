package config

import (
	"log/slog"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvListen   = "VCASHWEB_LISTEN"
	EnvDatabase = "VCASHWEB_DATABASE"
	EnvNewsURL  = "VCASHWEB_NEWS_URL"
	EnvWWWHost  = "VCASHWEB_WWW_HOST"
	EnvLogLevel = "VCASHWEB_LOG_LEVEL"
)

var loadDotEnvOnce sync.Once

// LoadDotEnv loads .env from the working directory once per process, if it
// exists. Variables already present in the environment are kept.
func LoadDotEnv() {
	loadDotEnvOnce.Do(func() {
		if err := LoadDotEnvFile(".env"); err != nil {
			slog.Warn("failed to load .env", "error", err)
		}
	})
}

// LoadDotEnvFile loads path into the process environment. A missing file is
// not an error.
func LoadDotEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return godotenv.Load(path)
}

// applyEnv overlays VCASHWEB_* variables onto c. Empty values are ignored.
func applyEnv(c *fileConfig, getenv func(string) string) {
	overlay := []struct {
		key string
		dst *string
	}{
		{EnvListen, &c.Listen},
		{EnvDatabase, &c.Database},
		{EnvNewsURL, &c.NewsURL},
		{EnvWWWHost, &c.WWWHost},
		{EnvLogLevel, &c.LogLevel},
	}
	for _, o := range overlay {
		if v := getenv(o.key); v != "" {
			*o.dst = v
		}
	}
}
