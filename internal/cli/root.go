package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/launchdeck/pkg/buildinfo"
	"github.com/matzehuels/launchdeck/pkg/errors"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Launchdeck browses launch history and statistics from the terminal",
		Long: `Launchdeck is a terminal dashboard for a launch-vehicle API. It lists, filters
and sorts launches, shows aggregate statistics and charts, and caches every
response for a short time so repeated views stay fast.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.metrics == nil {
				return nil
			}
			samples, err := c.metrics.Summary()
			if err != nil {
				return err
			}
			printMetrics(cmd.ErrOrStderr(), samples)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/launchdeck/config.toml)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.BoolVar(&c.showMetrics, "metrics", false, "print cache and request counters after the command")

	root.AddCommand(c.launchesCommand())
	root.AddCommand(c.launchCommand())
	root.AddCommand(c.upcomingCommand())
	root.AddCommand(c.pastCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.seriesCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.healthCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// FormatError renders err for the terminal. API failures are mapped to a
// short message followed by the raw error.
func FormatError(err error) string {
	line := StyleError.Render(iconError) + " " + errors.UserMessage(err)
	if isAPIFailure(err) {
		line += "\n  " + StyleDim.Render(err.Error())
	}
	return line
}

func isAPIFailure(err error) bool {
	if _, ok := errors.StatusCode(err); ok {
		return true
	}
	return errors.IsConnection(err) || errors.Is(err, errors.ErrCodeValidation)
}
