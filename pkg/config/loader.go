package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// defaultEnvFile is read when no env files are given. A missing default file
// is not an error.
const defaultEnvFile = ".env"

// Option configures Load.
type Option func(*options)

type options struct {
	prefix      string
	files       []string
	environment map[string]string
}

// WithPrefix only reads variables starting with prefix, e.g. "REFLECTKIT_".
// Field tags are written without it.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvFiles reads variables from the given dotenv files instead of the
// default .env. Files listed later take precedence over earlier ones; the
// process environment takes precedence over all files.
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.files = append(o.files, files...)
	}
}

// WithEnvironment replaces the process environment as the source of
// variables. Env files are still layered underneath it.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) {
		o.environment = vars
	}
}

// Load parses environment variables into a new T using its `env` field tags:
//
//	type Config struct {
//		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//		Plugins  string `env:"PLUGIN_DIR,required"`
//	}
//
//	cfg, err := config.Load[Config](config.WithPrefix("REFLECTKIT_"))
func Load[T any](opts ...Option) (T, error) {
	var cfg T

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	vars, err := environment(o)
	if err != nil {
		return cfg, err
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      o.prefix,
		Environment: vars,
	}); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

// environment merges the env files with the process environment.
func environment(o *options) (map[string]string, error) {
	vars := make(map[string]string)

	files := o.files
	if len(files) == 0 {
		if _, err := os.Stat(defaultEnvFile); err == nil {
			files = []string{defaultEnvFile}
		}
	}
	for _, file := range files {
		fileVars, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadingEnvFile, file, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}

	if o.environment != nil {
		for k, v := range o.environment {
			vars[k] = v
		}
		return vars, nil
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars, nil
}
