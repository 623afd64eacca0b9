package commands

import (
	"errors"
	"fmt"

	"github.com/guttosm/combination-service/config"
	"github.com/guttosm/combination-service/internal/combination"
	"github.com/guttosm/combination-service/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errNoDenominations = errors.New("at least one denomination is required")

type enumerateOptions struct {
	denominations string
	target        int
	limit         int
}

func addEnumerateFlags(cmd *cobra.Command, opts *enumerateOptions) {
	flags := cmd.Flags()
	flags.StringVar(&opts.denominations, "denominations", "", "comma-separated denominations in search order (default $DENOMINATIONS or 2)")
	flags.IntVar(&opts.target, "target", 0, "sum every combination must reach (default $TARGET or 3)")
	flags.IntVar(&opts.limit, "limit", 0, "stop after this many combinations, 0 for all")
}

func newEnumerateCommand(global *globalOptions) *cobra.Command {
	opts := &enumerateOptions{}
	cmd := &cobra.Command{
		Use:     "enumerate",
		Aliases: []string{"enum"},
		Short:   "Print every combination, one per line",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEnumerate(cmd, global.cfg, opts)
		},
	}
	addEnumerateFlags(cmd, opts)
	return cmd
}

// runEnumerate streams combinations to the command's output as they are found.
func runEnumerate(cmd *cobra.Command, cfg config.Config, opts *enumerateOptions) error {
	denominations := cfg.Enumeration.Denominations
	if cmd.Flags().Changed("denominations") {
		parsed, err := config.ParseDenominations(opts.denominations)
		if err != nil {
			return err
		}
		denominations = parsed
	}
	if len(denominations) == 0 {
		return errNoDenominations
	}

	target := cfg.Enumeration.Target
	if cmd.Flags().Changed("target") {
		target = opts.target
	}
	if opts.limit < 0 {
		return fmt.Errorf("invalid limit %d: must not be negative", opts.limit)
	}

	enumerator := service.NewEnumeratorService(service.WithLimits(0, 0))
	out := combination.NewLineWriter(cmd.OutOrStdout())

	summary, err := enumerator.Stream(cmd.Context(), denominations, target, opts.limit, out)
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		return err
	}

	log.Debug().
		Ints("denominations", denominations).
		Int("target", target).
		Int("count", summary.Count).
		Bool("truncated", summary.Truncated).
		Msg("Enumeration finished")
	return nil
}
