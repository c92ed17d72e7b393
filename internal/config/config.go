// Package config loads CLI defaults from the environment.
//
// Values come from process environment variables, falling back to a dotenv
// file. Process variables always win over the file. Command-line flags are
// applied on top by the cli package.
//
//	CINEGRAPH_OUTPUT_DIR   directory artifacts are written to (default ".")
//	CINEGRAPH_FORMATS      comma-separated formats (default "json,xml")
//	CINEGRAPH_STRICT       require registered comment authors (default false)
//	CINEGRAPH_LOG_LEVEL    debug, info, warn or error (default "info")
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	cerrors "github.com/matzehuels/cinegraph/pkg/errors"
	"github.com/matzehuels/cinegraph/pkg/pipeline"
)

// Environment variable names.
const (
	EnvOutputDir = "CINEGRAPH_OUTPUT_DIR"
	EnvFormats   = "CINEGRAPH_FORMATS"
	EnvStrict    = "CINEGRAPH_STRICT"
	EnvLogLevel  = "CINEGRAPH_LOG_LEVEL"
)

// DefaultEnvFile is read when no env file is named explicitly. A missing
// default file is not an error.
const DefaultEnvFile = ".env"

// Config holds the CLI defaults.
type Config struct {
	OutputDir string
	Formats   []string
	Strict    bool
	LogLevel  log.Level
}

// Load reads configuration from the environment and envFile. When envFile is
// empty, DefaultEnvFile is used if it exists.
func Load(envFile string) (*Config, error) {
	fileEnv, err := readEnvFile(envFile)
	if err != nil {
		return nil, err
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(fileEnv[key])
	}

	cfg := &Config{
		OutputDir: getenv(lookup, EnvOutputDir, "."),
		Formats:   pipeline.ParseFormats(getenv(lookup, EnvFormats, strings.Join(pipeline.DefaultFormats, ","))),
		LogLevel:  log.InfoLevel,
	}
	if err := pipeline.ValidateFormats(cfg.Formats); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "%s", EnvFormats)
	}

	if v := lookup(EnvStrict); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "%s: %q is not a boolean", EnvStrict, v)
		}
		cfg.Strict = strict
	}

	if v := lookup(EnvLogLevel); v != "" {
		level, err := log.ParseLevel(v)
		if err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "%s", EnvLogLevel)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

func readEnvFile(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}
	env, err := godotenv.Read(path)
	if err == nil {
		return env, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cerrors.Wrap(cerrors.ErrCodeFileNotFound, err, "env file %s", path)
	}
	return nil, cerrors.Wrap(cerrors.ErrCodeInvalidFormat, err, "env file %s", path)
}

func getenv(lookup func(string) string, key, defaultValue string) string {
	if v := lookup(key); v != "" {
		return v
	}
	return defaultValue
}
