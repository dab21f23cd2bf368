package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/reflectkit/pkg/logger"
	"github.com/dmitrymomot/reflectkit/pkg/reflection"
)

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types <interface> [plugin-dir]",
		Short: "List plugin types matching an interface name",
		Long: `The types command loads every plugin in the directory and prints the
types whose own name, ancestor or implemented interface matches the given
interface name, one per line as "assembly: package.Type".

Example:
  reflectkit types Repository ./plugins`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTypes(cmd, args[0], a.pluginDir(args[1:]))
		},
	}
}

func (a *app) runTypes(cmd *cobra.Command, iface, dir string) error {
	ctx := cmd.Context()

	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("plugin directory: %w", err)
	}

	found, err := reflection.TypesFromDirectory(dir, iface, a.cfg.Recursive, a.cfg.Symbol)
	if err != nil {
		a.log.WarnContext(ctx, "some plugins failed to load", logger.Path(dir), logger.Error(err))
	}

	w := cmd.OutOrStdout()
	for _, at := range found {
		for _, t := range at.Types {
			if _, err := fmt.Fprintf(w, "%s: %s\n", at.Assembly.Name(), reflection.FullName(t)); err != nil {
				return err
			}
		}
	}
	if len(found) == 0 {
		a.log.InfoContext(ctx, "no matching types", logger.Path(dir), slog.String("interface", iface))
	}
	return nil
}
