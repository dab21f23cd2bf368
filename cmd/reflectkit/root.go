package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/reflectkit/pkg/config"
	"github.com/dmitrymomot/reflectkit/pkg/logger"
	"github.com/dmitrymomot/reflectkit/pkg/reflection"
)

const (
	version   = "0.1.0"
	envPrefix = "REFLECTKIT_"
)

// Config is read from REFLECTKIT_* variables and overridden by flags.
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	PluginDir string `env:"PLUGIN_DIR" envDefault:"."`
	Symbol    string `env:"PLUGIN_SYMBOL"`
	Recursive bool   `env:"RECURSIVE"`
}

type commandKey struct{}

// app carries the state shared by all subcommands once the root command has
// loaded the configuration.
type app struct {
	cfg Config
	log *slog.Logger
}

func newRootCmd(configOpts ...config.Option) *cobra.Command {
	a := &app{log: logger.Discard()}

	var (
		logLevel  string
		logFormat string
		symbol    string
		recursive bool
	)

	root := &cobra.Command{
		Use:   "reflectkit",
		Short: "Inspect and validate Go types exported by plugins",
		Long: `reflectkit loads Go plugins exporting a reflection.Assembly, lists and
renders the types they carry, and validates YAML documents against rule sets.

Settings are read from REFLECTKIT_* environment variables (and a .env file),
and flags take precedence over them.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load[Config](append([]config.Option{config.WithPrefix(envPrefix)}, configOpts...)...)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			if flags.Changed("symbol") {
				cfg.Symbol = symbol
			}
			if flags.Changed("recursive") {
				cfg.Recursive = recursive
			}
			if cfg.Symbol == "" {
				cfg.Symbol = reflection.DefaultAssemblySymbol
			}

			format := logger.Format(cfg.LogFormat)
			if format != logger.FormatText && format != logger.FormatJSON {
				return fmt.Errorf("invalid log format %q: must be %q or %q", cfg.LogFormat, logger.FormatText, logger.FormatJSON)
			}

			a.cfg = cfg
			a.log = logger.New(
				logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
				logger.WithFormat(format),
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithAttr(logger.Component("reflectkit")),
				logger.WithContextValue("command", commandKey{}),
			)
			cmd.SetContext(context.WithValue(cmd.Context(), commandKey{}, cmd.Name()))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&logFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&symbol, "symbol", "", "Plugin symbol holding the assembly")
	pf.BoolVarP(&recursive, "recursive", "r", false, "Search plugin directories recursively")

	root.AddCommand(
		newDumpCmd(a),
		newTypesCmd(a),
		newValidateCmd(a),
	)
	return root
}

// pluginDir returns the directory argument, falling back to the configured one.
func (a *app) pluginDir(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return a.cfg.PluginDir
}
