package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"quotedesk/internal/config"
	"quotedesk/internal/logging"
	"quotedesk/internal/uistate"
)

func newRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		pretty     bool
		a          *app
	)

	cmd := &cobra.Command{
		Use:           "quotes",
		Short:         "Market quotes from Alpha Vantage",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if cmd.Flags().Changed("pretty") {
				cfg.Log.Pretty = pretty
			}
			log := logging.New(logging.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, Output: cmd.ErrOrStderr()})

			a, err = newApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			log.Debug().Str("command", cmd.Name()).Msg("command started")
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a == nil {
				return nil
			}
			return a.close()
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json or config.yaml")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "human-readable logs")

	current := func() *app { return a }
	cmd.AddCommand(
		newMoversCmd(current),
		newOverviewCmd(current),
		newHistoryCmd(current),
		newSearchCmd(current),
		newRecentCmd(current),
	)
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// result unwraps a terminal state into its data or its error message.
func result[T any](state uistate.State[T]) (T, error) {
	var (
		data T
		err  error
	)
	state.Match(
		func() { err = errors.New("no request was made") },
		func() { err = errors.New("request did not finish") },
		func(d T, _ bool) { data = d },
		func(msg string) { err = errors.New(msg) },
	)
	return data, err
}

func exactArg(name string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("expected one %s argument", name)
		}
		return nil
	}
}
