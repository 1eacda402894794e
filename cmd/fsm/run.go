package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/fsm/internal/repl"
	"github.com/dmitrymomot/fsm/pkg/logger"
	"github.com/dmitrymomot/fsm/pkg/metrics"
	"github.com/dmitrymomot/fsm/pkg/statemachine"
)

type sessionKey struct{}

func newRunCmd(a *app) *cobra.Command {
	var (
		metricsAddr string
		prompt      string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Step through the state machine interactively",
		Long:  `Reads commands (trigger, change, undo, redo, reset, clear, list, state) from stdin, one per line. Type help for the full list.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			collector := metrics.NewCollector("fsm")
			m := statemachine.New(cfg,
				statemachine.WithLogger(a.log),
				statemachine.WithHooks(collector.Hooks()),
			)
			collector.Track(m)

			ctx := context.WithValue(cmd.Context(), sessionKey{}, m.ID())

			if metricsAddr != "" {
				reg := prometheus.NewRegistry()
				if err := collector.Register(reg); err != nil {
					return err
				}
				srv := metrics.NewServer(reg, metrics.WithServerLogger(a.log))
				if _, err := srv.Start(metricsAddr); err != nil {
					return err
				}
				defer func() {
					if err := srv.Shutdown(context.WithoutCancel(ctx)); err != nil {
						a.log.ErrorContext(ctx, "metrics shutdown", logger.Error(err))
					}
				}()
			}

			a.log.InfoContext(ctx, "session started", logger.State(m.State()))
			err = repl.New(m, a.out, repl.WithLogger(a.log), repl.WithPrompt(prompt)).Run(ctx, a.in)
			a.log.InfoContext(ctx, "session finished", logger.State(m.State()), logger.Error(err))
			return err
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :2112")
	cmd.Flags().StringVar(&prompt, "prompt", "", "prompt printed before each command")
	return cmd
}
