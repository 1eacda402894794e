package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/fsm/pkg/logger"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the definition for consistency",
		Long:  `Reports an undeclared initial state, duplicate states and transitions into undeclared states.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				a.log.Warn("definition is invalid", logger.Path(a.settings.Definition), logger.Error(err))
				return err
			}
			fmt.Fprintf(a.out, "%s: %d states, initial %q\n", a.settings.Definition, len(cfg.States), cfg.Initial)
			return nil
		},
	}
}
