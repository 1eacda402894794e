package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/fsm/pkg/config"
	"github.com/dmitrymomot/fsm/pkg/logger"
	"github.com/dmitrymomot/fsm/pkg/statemachine"
)

// settings are read from the environment (and an optional .env file);
// command line flags take precedence. An empty log level or format falls back
// to the preset selected by Env.
type settings struct {
	Definition string `env:"FSM_DEFINITION" envDefault:"fsm.yaml"`
	LogLevel   string `env:"FSM_LOG_LEVEL"`
	LogFormat  string `env:"FSM_LOG_FORMAT"`
	Env        string `env:"FSM_ENV" envDefault:"development"`
}

type app struct {
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	settings settings
	log      *slog.Logger
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:           "fsm",
		Short:         "fsm drives a finite state machine described in a YAML file",
		Long:          `fsm loads a state machine definition (states and event transitions) and lets you inspect it or step through it interactively with undo and redo.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentFlags().StringP("file", "f", "", "state machine definition file (env FSM_DEFINITION)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env FSM_LOG_LEVEL, default from FSM_ENV)")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json (env FSM_LOG_FORMAT, default from FSM_ENV)")

	rootCmd.AddCommand(
		newStatesCmd(a),
		newValidateCmd(a),
		newRunCmd(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := config.Load(&a.settings); err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	flags := cmd.Flags()
	overrides := map[string]*string{
		"file":       &a.settings.Definition,
		"log-level":  &a.settings.LogLevel,
		"log-format": &a.settings.LogFormat,
	}
	for name, dst := range overrides {
		if flags.Changed(name) {
			v, err := flags.GetString(name)
			if err != nil {
				return err
			}
			*dst = v
		}
	}

	opts := []logger.Option{
		logger.WithEnvironment(a.settings.Env, "fsm"),
		logger.WithOutput(a.errOut),
		logger.WithContextValue("session_id", sessionKey{}),
	}
	if a.settings.LogLevel != "" {
		level, err := logger.ParseLevel(a.settings.LogLevel)
		if err != nil {
			return err
		}
		opts = append(opts, logger.WithLevel(level))
	}
	if a.settings.LogFormat != "" {
		format := logger.Format(a.settings.LogFormat)
		if format != logger.FormatText && format != logger.FormatJSON {
			return fmt.Errorf("invalid log format %q: must be %q or %q", format, logger.FormatText, logger.FormatJSON)
		}
		opts = append(opts, logger.WithFormat(format))
	}

	a.log = logger.New(opts...)
	return nil
}

func (a *app) loadConfig() (statemachine.Config, error) {
	cfg, err := statemachine.LoadConfig(a.settings.Definition)
	if err != nil {
		return statemachine.Config{}, err
	}
	a.log.Debug("definition loaded", logger.Path(a.settings.Definition), slog.Any("config", cfg))
	return cfg, nil
}
