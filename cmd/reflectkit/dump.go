package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/reflectkit/pkg/logger"
	"github.com/dmitrymomot/reflectkit/pkg/reflection"
)

func newDumpCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dump [plugin-dir]",
		Short: "Render the types of every plugin assembly as HTML",
		Long: `The dump command loads every plugin in the directory and renders each
assembly with its types and their fields as HTML tables.

Plugins that fail to load are logged and skipped.

Example:
  reflectkit dump ./plugins
  reflectkit dump ./plugins --recursive -o types.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDump(cmd, a.pluginDir(args), output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the HTML to a file instead of stdout")
	return cmd
}

func (a *app) runDump(cmd *cobra.Command, dir, output string) error {
	ctx := cmd.Context()

	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("plugin directory: %w", err)
	}

	assemblies, err := reflection.AssembliesFromDirectory(dir, a.cfg.Recursive, a.cfg.Symbol)
	if err != nil {
		a.log.WarnContext(ctx, "some plugins failed to load", logger.Path(dir), logger.Error(err))
	}

	domain := reflection.NewDomain()
	domain.Register(assemblies...)
	for _, asm := range assemblies {
		a.log.DebugContext(ctx, "assembly loaded", logger.Assembly(asm.Name()), slog.Int("types", len(asm.Types())))
	}

	html, err := reflection.DumpAssemblies(domain)
	if err != nil {
		return fmt.Errorf("render assemblies: %w", err)
	}

	if output == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), html)
		return err
	}
	if err := os.WriteFile(output, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	a.log.InfoContext(ctx, "dump written", logger.Path(output), slog.Int("assemblies", len(assemblies)))
	return nil
}
