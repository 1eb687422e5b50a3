package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"quotedesk/internal/market"
	"quotedesk/internal/recent"
	"quotedesk/internal/uistate"
)

func newMoversCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "movers",
		Short: "Top gainers, losers and most actively traded tickers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			explore := get().explore(cmd.Context())
			defer explore.Close()

			explore.LoadMovers()
			state, err := uistate.Await(cmd.Context(), explore.Movers)
			if err != nil {
				return err
			}
			movers, err := result(state)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), movers)
		},
	}
}

func newOverviewCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overview SYMBOL",
		Short: "Company overview",
		Args:  exactArg("SYMBOL"),
		RunE: func(cmd *cobra.Command, args []string) error {
			details := get().details(cmd.Context())
			defer details.Close()

			details.Fetch(args[0], true)
			details.Wait()

			overview, err := result(details.Overview.Current())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), overview)
		},
	}
}

type historyOutput struct {
	Symbol  string              `json:"symbol"`
	Range   market.Range        `json:"range"`
	Summary market.Summary      `json:"summary"`
	Points  []market.PricePoint `json:"points"`
}

func newHistoryCmd(get func() *app) *cobra.Command {
	var rangeName string

	cmd := &cobra.Command{
		Use:   "history SYMBOL",
		Short: "Daily price history, newest first",
		Args:  exactArg("SYMBOL"),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := market.ParseRange(rangeName)
			if err != nil {
				return err
			}
			details := get().details(cmd.Context())
			defer details.Close()

			details.Fetch(args[0], true)
			details.Wait()

			points, err := result(details.Prices.Current())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), historyOutput{
				Symbol:  strings.ToUpper(args[0]),
				Range:   r,
				Summary: market.Summarize(points),
				Points:  r.Window(points),
			})
		},
	}
	cmd.Flags().StringVar(&rangeName, "range", string(market.Range1M), "window: 1D, 1W, 1M, 3M or 1Y")
	return cmd
}

func newSearchCmd(get func() *app) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search symbols by keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explore := get().explore(cmd.Context())
			defer explore.Close()

			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.New("empty query")
			}
			explore.Search.SetQuery(query)
			state, err := uistate.Await(cmd.Context(), explore.Results)
			if err != nil {
				return err
			}
			matches, err := result(state)
			if err != nil {
				return err
			}
			if save && len(matches) > 0 {
				explore.AddToRecent(matches[0])
				explore.Wait()
			}
			return writeJSON(cmd.OutOrStdout(), matches)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "add the best match to recent searches")
	return cmd
}

func newRecentCmd(get func() *app) *cobra.Command {
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Recently searched symbols",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			if clearAll {
				if err := a.recent.Clear(cmd.Context()); err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), []recent.Entry{})
			}
			list, err := a.recent.List(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "remove every entry")
	return cmd
}
