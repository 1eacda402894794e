package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/fsm/pkg/statemachine"
)

func newStatesCmd(a *app) *cobra.Command {
	var event string

	cmd := &cobra.Command{
		Use:   "states",
		Short: "List declared states",
		Long:  `Lists every declared state in declaration order, or only the states that handle --event.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			m := statemachine.New(cfg, statemachine.WithLogger(a.log))
			names := m.ListStates()
			if cmd.Flags().Changed("event") {
				names = m.ListStatesFor(event)
			}
			for _, name := range names {
				fmt.Fprintln(a.out, name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&event, "event", "e", "", "only list states with a transition for this event")
	return cmd
}
