// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for dotenv files and
// github.com/caarlos0/env/v11 for parsing, so a config struct is described
// entirely by field tags:
//
//	type Config struct {
//	    LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
//	    PluginDir string `env:"PLUGIN_DIR" envDefault:"./plugins"`
//	}
//
//	cfg, err := config.Load[Config](config.WithPrefix("REFLECTKIT_"))
//
// Variables are looked up in the process environment first and in the env
// files second. Without WithEnvFiles the .env file in the working directory
// is used when it exists. Load never modifies the process environment.
//
// Parsing failures wrap ErrParsingConfig and unreadable env files wrap
// ErrReadingEnvFile.
package config
