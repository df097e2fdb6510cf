// Package config loads site configuration.
//
// Precedence, lowest first: schema defaults, the CUE config file, .env,
// VCASHWEB_* environment variables. Command-line flags are applied by the
// CLI on top of the returned Config.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaCUE string

// DefaultPath is the config file read when no --config flag is given.
const DefaultPath = "vcashweb.cue"

// Config is the resolved site configuration.
type Config struct {
	Listen          string
	Database        string
	NewsURL         string
	WWWHost         string
	LocalesDir      string
	DefaultLanguage string
	SearchDelay     time.Duration
	FetchTimeout    time.Duration
	LogLevel        slog.Level
	Seed            string
}

// fileConfig mirrors #Config for decoding.
type fileConfig struct {
	Listen          string `json:"listen"`
	Database        string `json:"database"`
	NewsURL         string `json:"newsURL"`
	WWWHost         string `json:"wwwHost"`
	LocalesDir      string `json:"localesDir"`
	DefaultLanguage string `json:"defaultLanguage"`
	SearchDelay     string `json:"searchDelay"`
	FetchTimeout    string `json:"fetchTimeout"`
	LogLevel        string `json:"logLevel"`
	Seed            string `json:"seed"`
}

// Options controls Load.
type Options struct {
	// Path is the CUE config file. Empty means defaults only.
	Path string

	// Optional skips a missing Path instead of failing with E201.
	Optional bool

	// Getenv reads overrides. Defaults to os.Getenv.
	Getenv func(string) string
}

// Default returns the schema defaults.
func Default() Config {
	c, err := Load(Options{Getenv: func(string) string { return "" }})
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema: %v", err))
	}
	return c
}

// Load resolves configuration from the schema, the optional config file and
// the environment. Every failure is a *LoadError.
func Load(opts Options) (Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, &LoadError{Code: ErrCodeCompile, Message: fmt.Sprintf("schema: %v", err)}
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	value := def
	if opts.Path != "" {
		data, err := os.ReadFile(opts.Path)
		switch {
		case err != nil && opts.Optional && os.IsNotExist(err):
			// defaults only
		case err != nil:
			return Config{}, &LoadError{Code: ErrCodeRead, Path: opts.Path, Message: err.Error()}
		default:
			user := ctx.CompileBytes(data, cue.Filename(opts.Path))
			if err := user.Err(); err != nil {
				return Config{}, &LoadError{Code: ErrCodeCompile, Path: opts.Path, Message: err.Error()}
			}
			value = def.Unify(user)
		}
	}

	if err := value.Validate(cue.Concrete(true)); err != nil {
		return Config{}, &LoadError{Code: ErrCodeValidate, Path: opts.Path, Message: err.Error()}
	}

	var raw fileConfig
	if err := value.Decode(&raw); err != nil {
		return Config{}, &LoadError{Code: ErrCodeDecode, Path: opts.Path, Message: err.Error()}
	}

	applyEnv(&raw, getenv)
	return resolve(raw, opts.Path)
}

// resolve converts decoded strings into typed fields.
func resolve(raw fileConfig, path string) (Config, error) {
	searchDelay, err := parseDuration("searchDelay", raw.SearchDelay, path)
	if err != nil {
		return Config{}, err
	}
	fetchTimeout, err := parseDuration("fetchTimeout", raw.FetchTimeout, path)
	if err != nil {
		return Config{}, err
	}
	level, err := ParseLevel(raw.LogLevel)
	if err != nil {
		return Config{}, &LoadError{Code: ErrCodeEnvOverlay, Path: path, Message: err.Error()}
	}

	return Config{
		Listen:          raw.Listen,
		Database:        raw.Database,
		NewsURL:         raw.NewsURL,
		WWWHost:         raw.WWWHost,
		LocalesDir:      raw.LocalesDir,
		DefaultLanguage: raw.DefaultLanguage,
		SearchDelay:     searchDelay,
		FetchTimeout:    fetchTimeout,
		LogLevel:        level,
		Seed:            raw.Seed,
	}, nil
}

func parseDuration(field, value, path string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, &LoadError{Code: ErrCodeDuration, Path: path, Message: fmt.Sprintf("%s: %v", field, err)}
	}
	if d < 0 {
		return 0, &LoadError{Code: ErrCodeDuration, Path: path, Message: fmt.Sprintf("%s: must not be negative", field)}
	}
	return d, nil
}

// ParseLevel maps a logLevel string to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
