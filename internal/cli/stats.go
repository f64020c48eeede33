package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/launchdeck/pkg/errors"
	"github.com/matzehuels/launchdeck/pkg/launch"
	"github.com/matzehuels/launchdeck/pkg/launchapi"
	"github.com/matzehuels/launchdeck/pkg/metrics"
)

// =============================================================================
// stats
// =============================================================================

func (c *CLI) statsCommand() *cobra.Command {
	var (
		refresh bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate launch statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := fetch(c, cmd, "Fetching statistics", func(ctx context.Context, svc *launchapi.Service) (launch.Stats, error) {
				if refresh {
					return svc.RefreshStats(ctx)
				}
				return svc.Stats(ctx)
			})
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), s)
			}
			printStatsCard(cmd.OutOrStdout(), s)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a card")
	return cmd
}

// =============================================================================
// series
// =============================================================================

func (c *CLI) seriesCommand() *cobra.Command {
	var (
		year   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "series [name...]",
		Short: "Show chart series (all of them by default)",
		Long: `Show aggregate chart series as bar tables.

Series are fetched concurrently; one failing series does not hide the others.
With --fallback (or use_fallback in the config) an unavailable series is
replaced by sample data and marked as such.`,
		Example: `  launchdeck series
  launchdeck series rocket-usage success-rate
  launchdeck series monthly-launches --year 2022`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			names := make([]string, 0, len(launchapi.SeriesIDs()))
			for _, id := range launchapi.SeriesIDs() {
				names = append(names, string(id))
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseSeriesIDs(args)
			if err != nil {
				return err
			}
			if year != 0 {
				return c.runMonthly(cmd, year, asJSON)
			}

			results, err := fetch(c, cmd, "Fetching series", func(ctx context.Context, svc *launchapi.Service) ([]launchapi.SeriesResult, error) {
				return svc.SeriesResults(ctx, ids...), nil
			})
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), seriesJSON(results))
			}
			return printSeriesResults(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().BoolVar(&c.fallback, "fallback", false, "substitute sample data for unavailable series")
	cmd.Flags().IntVar(&year, "year", 0, "monthly launches of a single year")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of tables")
	return cmd
}

func parseSeriesIDs(names []string) ([]launchapi.SeriesID, error) {
	if len(names) == 0 {
		return launchapi.SeriesIDs(), nil
	}
	ids := make([]launchapi.SeriesID, 0, len(names))
	for _, name := range names {
		id, err := launchapi.ParseSeriesID(name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (c *CLI) runMonthly(cmd *cobra.Command, year int, asJSON bool) error {
	s, err := fetch(c, cmd, "Fetching monthly launches", func(ctx context.Context, svc *launchapi.Service) (launch.Series, error) {
		return svc.MonthlyLaunchesFor(ctx, year)
	})
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if asJSON {
		return printJSON(w, s)
	}
	printTitle(w, fmt.Sprintf("%s %d", launchapi.MonthlyLaunches.Title(), year))
	fmt.Fprintln(w, renderSeries(launchapi.SeriesResult{ID: launchapi.MonthlyLaunches, Series: s}))
	return nil
}

// printSeriesResults prints every available series and reports the rest.
// It fails when any series is missing without a substitute.
func printSeriesResults(w io.Writer, results []launchapi.SeriesResult) error {
	failed := 0
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if !r.OK() {
			failed++
			printError(w, "%s: %s", r.ID.Title(), errors.UserMessage(r.Err))
			continue
		}
		printTitle(w, r.ID.Title())
		if r.Substitute {
			printWarning(w, "sample data, the API did not answer")
		}
		fmt.Fprintln(w, renderSeries(r))
	}
	if failed > 0 {
		return errors.New(errors.ErrCodeUnavailable, "%d of %d series unavailable", failed, len(results))
	}
	return nil
}

type seriesOutput struct {
	ID         launchapi.SeriesID `json:"id"`
	Labels     []string           `json:"labels,omitempty"`
	Statistics []float64          `json:"statistics,omitempty"`
	Sample     bool               `json:"sample,omitempty"`
	Error      string             `json:"error,omitempty"`
}

func seriesJSON(results []launchapi.SeriesResult) []seriesOutput {
	out := make([]seriesOutput, 0, len(results))
	for _, r := range results {
		o := seriesOutput{ID: r.ID, Sample: r.Substitute}
		if r.OK() {
			o.Labels, o.Statistics = r.Series.Labels, r.Series.Statistics
		}
		if r.Err != nil {
			o.Error = errors.UserMessage(r.Err)
		}
		out = append(out, o)
	}
	return out
}

// printMetrics prints the counters gathered during the command.
func printMetrics(w io.Writer, samples []metrics.Sample) {
	fmt.Fprintln(w)
	t := newTable("Metric", "Labels", "Value")
	for _, s := range samples {
		t.Row(s.Name, s.Labels, formatValue(s.Value))
	}
	fmt.Fprintln(w, t.Render())
}
