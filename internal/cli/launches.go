package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/launchdeck/pkg/launch"
	"github.com/matzehuels/launchdeck/pkg/launchapi"
	"github.com/matzehuels/launchdeck/pkg/query"
)

// filterFlags collects the query flags shared by launches and browse.
type filterFlags struct {
	search    string
	outcome   string
	from      string
	to        string
	rocket    string
	launchpad string
	sortBy    string
	order     string
	upcoming  bool
	past      bool
	page      int
	limit     int
}

func (f *filterFlags) register(cmd *cobra.Command, defaultLimit int) {
	flags := cmd.Flags()
	flags.StringVarP(&f.search, "search", "s", "", "case-insensitive text search over name, rocket, launchpad and details")
	flags.StringVar(&f.outcome, "outcome", "", "filter by outcome: success, failure or pending")
	flags.BoolVar(&f.upcoming, "upcoming", false, "only upcoming launches")
	flags.BoolVar(&f.past, "past", false, "only past launches")
	flags.StringVar(&f.from, "from", "", "earliest launch date (YYYY-MM-DD or RFC 3339)")
	flags.StringVar(&f.to, "to", "", "latest launch date, inclusive (YYYY-MM-DD or RFC 3339)")
	flags.StringVar(&f.rocket, "rocket", "", "filter by rocket id")
	flags.StringVar(&f.launchpad, "launchpad", "", "filter by launchpad id")
	flags.StringVar(&f.sortBy, "sort", string(query.DefaultSortBy), "sort by date, name or flight_number")
	flags.StringVar(&f.order, "order", string(query.DefaultSortOrder), "sort order: asc or desc")
	flags.IntVar(&f.page, "page", query.DefaultPage, "page number, starting at 1")
	flags.IntVar(&f.limit, "limit", defaultLimit, "launches per page, 0 for all")
	cmd.MarkFlagsMutuallyExclusive("upcoming", "past")
}

// spec converts the flags into a validated query.
func (f *filterFlags) spec() (query.FilterSpec, error) {
	spec := query.Default()
	spec.Search = strings.TrimSpace(f.search)
	spec.Rocket = f.rocket
	spec.Launchpad = f.launchpad
	spec.SortBy = query.ParseSortBy(f.sortBy)
	spec.SortOrder = query.ParseSortOrder(f.order)
	spec.Page = f.page
	spec.Limit = f.limit

	if f.outcome != "" {
		o, err := query.ParseOutcome(f.outcome)
		if err != nil {
			return spec, err
		}
		spec.Outcome = &o
	}
	switch {
	case f.upcoming:
		spec.Upcoming = query.Ptr(true)
	case f.past:
		spec.Upcoming = query.Ptr(false)
	}

	if f.from != "" {
		t, err := query.ParseDate(f.from)
		if err != nil {
			return spec, err
		}
		spec.DateFrom = &t
	}
	if f.to != "" {
		t, err := query.ParseDate(f.to)
		if err != nil {
			return spec, err
		}
		// A bare date covers the whole day.
		if len(f.to) == len(time.DateOnly) {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		spec.DateTo = &t
	}

	return spec, spec.Validate()
}

// =============================================================================
// launches
// =============================================================================

func (c *CLI) launchesCommand() *cobra.Command {
	var (
		filters      filterFlags
		serverFilter bool
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "launches",
		Short: "List, filter and sort launches",
		Long: `List launches from the API.

By default the full collection is fetched once (and cached) and filtering,
sorting and paging happen locally. With --server-filter the query is sent to
the API as parameters instead.`,
		Example: `  launchdeck launches --search starlink --sort flight_number --order asc
  launchdeck launches --outcome failure --from 2006-01-01 --to 2010-12-31
  launchdeck launches --upcoming --limit 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := filters.spec()
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			res, err := fetch(c, cmd, "Fetching launches", func(ctx context.Context, svc *launchapi.Service) (listing, error) {
				if serverFilter {
					return serverListing(ctx, svc, spec)
				}
				return localListing(ctx, svc, spec)
			})
			if err != nil {
				return err
			}
			view, total := res.page, res.total
			prog.done(fmt.Sprintf("Fetched %d launches", total))

			w := cmd.OutOrStdout()
			if asJSON {
				return printJSON(w, view)
			}
			if len(view) == 0 {
				printInfo(w, "No launches match")
				return nil
			}
			fmt.Fprintln(w, renderLaunchTable(view))
			if spec.Limit > 0 {
				printDetail(w, "page %d of %d, %d matching launches", max(spec.Page, 1), query.PageCount(total, spec.Limit), total)
			}
			return nil
		},
	}

	filters.register(cmd, query.DefaultLimit)
	cmd.Flags().BoolVar(&serverFilter, "server-filter", false, "let the API filter, sort and page")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// listing is one page of launches plus the number of matches before paging.
type listing struct {
	page  []launch.Launch
	total int
}

// localListing fetches the whole collection and queries it in memory.
func localListing(ctx context.Context, svc *launchapi.Service, spec query.FilterSpec) (listing, error) {
	all, err := svc.Launches(ctx, query.FilterSpec{})
	if err != nil {
		return listing{}, err
	}
	matched := query.Apply(all, spec)
	return listing{page: query.Page(matched, spec.Page, spec.Limit), total: len(matched)}, nil
}

// serverListing sends spec to the API. The total is only known for the
// returned page.
func serverListing(ctx context.Context, svc *launchapi.Service, spec query.FilterSpec) (listing, error) {
	ls, err := svc.Launches(ctx, spec)
	if err != nil {
		return listing{}, err
	}
	return listing{page: ls, total: len(ls)}, nil
}

// =============================================================================
// launch
// =============================================================================

func (c *CLI) launchCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "launch <id>",
		Short:   "Show a single launch",
		Example: `  launchdeck launch 5eb87d46ffd86e000604b388`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := fetch(c, cmd, "Fetching launch", func(ctx context.Context, svc *launchapi.Service) (launch.Launch, error) {
				return svc.Launch(ctx, args[0])
			})
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), l)
			}
			printLaunchCard(cmd.OutOrStdout(), l)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a card")
	return cmd
}

// =============================================================================
// upcoming / past
// =============================================================================

func (c *CLI) upcomingCommand() *cobra.Command {
	return c.subsetCommand("upcoming", "Show the next launches, soonest first", launchapi.DefaultUpcomingLimit,
		(*launchapi.Service).Upcoming)
}

func (c *CLI) pastCommand() *cobra.Command {
	return c.subsetCommand("past", "Show the most recent launches", launchapi.DefaultPastLimit,
		(*launchapi.Service).Past)
}

func (c *CLI) subsetCommand(name, short string, defaultLimit int,
	get func(*launchapi.Service, context.Context, int) ([]launch.Launch, error)) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ls, err := fetch(c, cmd, "Fetching "+name+" launches", func(ctx context.Context, svc *launchapi.Service) ([]launch.Launch, error) {
				return get(svc, ctx, limit)
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				return printJSON(w, ls)
			}
			if len(ls) == 0 {
				printInfo(w, "No %s launches", name)
				return nil
			}
			fmt.Fprintln(w, renderLaunchTable(ls))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultLimit, "number of launches")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
