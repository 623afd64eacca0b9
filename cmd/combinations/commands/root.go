// Package commands implements the combinations command line.
package commands

import (
	"github.com/guttosm/combination-service/config"
	"github.com/guttosm/combination-service/internal/app"
	"github.com/spf13/cobra"
)

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	configPath string
	cfg        config.Config
}

// NewRootCommand builds the command tree. Running the root command without
// a subcommand enumerates, like "combinations enumerate".
func NewRootCommand() *cobra.Command {
	global := &globalOptions{}
	opts := &enumerateOptions{}

	root := &cobra.Command{
		Use:   "combinations",
		Short: "List every combination of denominations that sums to a target",
		Long: `combinations prints, one per line, every combination (with repetition) of
the denominations that sums exactly to the target. A denomination is
repeated before the search advances to the next one.

Defaults are denominations [2] and target 3. The DENOMINATIONS and TARGET
environment variables override them, and flags override the environment.`,
		Example: `  combinations --denominations 1,2 --target 3
  combinations serve --config config.yaml`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: global.load,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEnumerate(cmd, global.cfg, opts)
		},
	}

	root.PersistentFlags().StringVar(&global.configPath, "config", "", "YAML configuration file (environment variables override it)")
	addEnumerateFlags(root, opts)

	root.AddCommand(newEnumerateCommand(global), newServeCommand(global))
	return root
}

func (g *globalOptions) load(*cobra.Command, []string) error {
	if g.configPath == "" {
		g.cfg = config.Load()
	} else {
		cfg, err := config.LoadFile(g.configPath)
		if err != nil {
			return err
		}
		g.cfg = cfg
	}
	app.InitializeLogger(g.cfg.Log)
	return nil
}
