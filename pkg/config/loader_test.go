package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reflectkit/pkg/config"
)

type appConfig struct {
	Name  string   `env:"NAME" envDefault:"reflectkit"`
	Port  int      `env:"PORT" envDefault:"80"`
	Debug bool     `env:"DEBUG"`
	Tags  []string `env:"TAGS" envSeparator:","`
}

type requiredConfig struct {
	Token string `env:"TOKEN,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load[appConfig](
			config.WithPrefix("APP_"),
			config.WithEnvironment(map[string]string{}),
		)
		require.NoError(t, err)
		assert.Equal(t, appConfig{Name: "reflectkit", Port: 80}, cfg)
	})

	t.Run("environment with prefix", func(t *testing.T) {
		cfg, err := config.Load[appConfig](
			config.WithPrefix("APP_"),
			config.WithEnvironment(map[string]string{"APP_PORT": "1234", "PORT": "1", "APP_DEBUG": "true"}),
		)
		require.NoError(t, err)
		assert.Equal(t, 1234, cfg.Port)
		assert.True(t, cfg.Debug)
	})

	t.Run("process environment", func(t *testing.T) {
		t.Setenv("CFGTEST_NAME", "from_process")

		cfg, err := config.Load[appConfig](config.WithPrefix("CFGTEST_"))
		require.NoError(t, err)
		assert.Equal(t, "from_process", cfg.Name)
	})

	t.Run("env files in order", func(t *testing.T) {
		cfg, err := config.Load[appConfig](
			config.WithPrefix("APP_"),
			config.WithEnvFiles("testdata/.env.base", "testdata/.env.override"),
			config.WithEnvironment(map[string]string{}),
		)
		require.NoError(t, err)
		assert.Equal(t, "from_file", cfg.Name)
		assert.Equal(t, 9090, cfg.Port)
		assert.True(t, cfg.Debug)
		assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)
	})

	t.Run("environment overrides files", func(t *testing.T) {
		cfg, err := config.Load[appConfig](
			config.WithPrefix("APP_"),
			config.WithEnvFiles("testdata/.env.base"),
			config.WithEnvironment(map[string]string{"APP_NAME": "from_env"}),
		)
		require.NoError(t, err)
		assert.Equal(t, "from_env", cfg.Name)
		assert.Equal(t, 8080, cfg.Port)
	})

	t.Run("missing env file", func(t *testing.T) {
		_, err := config.Load[appConfig](config.WithEnvFiles("testdata/missing.env"))
		assert.ErrorIs(t, err, config.ErrReadingEnvFile)
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := config.Load[appConfig](
			config.WithPrefix("APP_"),
			config.WithEnvironment(map[string]string{"APP_PORT": "eighty"}),
		)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("required variable", func(t *testing.T) {
		_, err := config.Load[requiredConfig](config.WithEnvironment(map[string]string{}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)

		cfg, err := config.Load[requiredConfig](config.WithEnvironment(map[string]string{"TOKEN": "t"}))
		require.NoError(t, err)
		assert.Equal(t, "t", cfg.Token)
	})
}

func TestMustLoad(t *testing.T) {
	assert.NotPanics(t, func() {
		config.MustLoad[appConfig](config.WithEnvironment(map[string]string{}))
	})
	assert.Panics(t, func() {
		config.MustLoad[requiredConfig](config.WithEnvironment(map[string]string{}))
	})
}
