package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vcashweb.cue")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func requireLoadError(t *testing.T, err error, code string) *LoadError {
	t.Helper()
	var le *LoadError
	require.True(t, errors.As(err, &le), "expected *LoadError, got %v", err)
	assert.Equal(t, code, le.Code, le.Error())
	return le
}

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, Config{
		Listen:          ":3000",
		Database:        "vcash.db",
		NewsURL:         "http://localhost:3000/api/news",
		DefaultLanguage: "en-US",
		SearchDelay:     time.Second,
		FetchTimeout:    10 * time.Second,
		LogLevel:        slog.LevelInfo,
	}, c)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
listen:      ":8080"
database:    "/var/lib/vcash/news.db"
searchDelay: "250ms"
logLevel:    "debug"
seed:        "news.yaml"
`)

	c, err := Load(Options{Path: path, Getenv: noEnv})
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Listen)
	assert.Equal(t, "/var/lib/vcash/news.db", c.Database)
	assert.Equal(t, 250*time.Millisecond, c.SearchDelay)
	assert.Equal(t, 10*time.Second, c.FetchTimeout, "unset fields keep defaults")
	assert.Equal(t, slog.LevelDebug, c.LogLevel)
	assert.Equal(t, "news.yaml", c.Seed)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `listen: ":8080"`)
	env := map[string]string{
		EnvListen:   ":9090",
		EnvDatabase: "env.db",
		EnvNewsURL:  "http://news.example/api/news",
		EnvWWWHost:  "https://vcash.info",
		EnvLogLevel: "warn",
	}

	c, err := Load(Options{Path: path, Getenv: func(k string) string { return env[k] }})
	require.NoError(t, err)

	assert.Equal(t, ":9090", c.Listen)
	assert.Equal(t, "env.db", c.Database)
	assert.Equal(t, "http://news.example/api/news", c.NewsURL)
	assert.Equal(t, "https://vcash.info", c.WWWHost)
	assert.Equal(t, slog.LevelWarn, c.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    string
	}{
		{"invalid cue", `listen: `, ErrCodeCompile},
		{"unknown field", `port: 3000`, ErrCodeValidate},
		{"wrong type", `listen: 3000`, ErrCodeValidate},
		{"bad log level", `logLevel: "verbose"`, ErrCodeValidate},
		{"empty language", `defaultLanguage: ""`, ErrCodeValidate},
		{"bad duration", `searchDelay: "soon"`, ErrCodeDuration},
		{"negative duration", `fetchTimeout: "-1s"`, ErrCodeDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(Options{Path: path, Getenv: noEnv})
			le := requireLoadError(t, err, tt.code)
			assert.Equal(t, path, le.Path)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.cue")

	_, err := Load(Options{Path: path, Getenv: noEnv})
	requireLoadError(t, err, ErrCodeRead)

	c, err := Load(Options{Path: path, Optional: true, Getenv: noEnv})
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoad_BadEnvLogLevel(t *testing.T) {
	_, err := Load(Options{Getenv: func(k string) string {
		if k == EnvLogLevel {
			return "loud"
		}
		return ""
	}})
	requireLoadError(t, err, ErrCodeEnvOverlay)
}

func TestLoadError_Message(t *testing.T) {
	assert.Equal(t, "E201: boom", (&LoadError{Code: ErrCodeRead, Message: "boom"}).Error())
	assert.Equal(t, "a.cue: E205: x", (&LoadError{Code: ErrCodeDuration, Path: "a.cue", Message: "x"}).Error())
}

func TestLoadDotEnvFile(t *testing.T) {
	t.Setenv(EnvListen, "")
	t.Setenv(EnvDatabase, "kept.db")
	require.NoError(t, os.Unsetenv(EnvListen))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("VCASHWEB_LISTEN=:7070\nVCASHWEB_DATABASE=dotenv.db\n"), 0o644))

	require.NoError(t, LoadDotEnvFile(path))

	assert.Equal(t, ":7070", os.Getenv(EnvListen))
	assert.Equal(t, "kept.db", os.Getenv(EnvDatabase), "existing variables win over .env")

	c, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, ":7070", c.Listen)
}

func TestLoadDotEnvFile_Missing(t *testing.T) {
	assert.NoError(t, LoadDotEnvFile(filepath.Join(t.TempDir(), ".env")))
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("trace")
	assert.Error(t, err)
}
