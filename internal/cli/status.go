package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/launchdeck/pkg/errors"
	"github.com/matzehuels/launchdeck/pkg/launch"
	"github.com/matzehuels/launchdeck/pkg/launchapi"
)

func (c *CLI) healthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := fetch(c, cmd, "Checking API health", func(ctx context.Context, svc *launchapi.Service) (launch.Health, error) {
				return svc.Health(ctx)
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !h.OK() {
				return errors.New(errors.ErrCodeUnavailable, "API reports status %q", h.Status)
			}
			printSuccess(w, "API is %s at %s", h.Status, c.cfg.APIURL)
			if !h.Timestamp.IsZero() {
				printDetail(w, "server time %s", formatDate(h.Timestamp))
			}
			return nil
		},
	}
}

func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Describe the API service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := fetch(c, cmd, "Fetching API info", func(ctx context.Context, svc *launchapi.Service) (launch.Info, error) {
				return svc.Info(ctx)
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printTitle(w, info.Name)
			printKeyValue(w, "Version", info.Version)
			if info.Description != "" {
				printKeyValue(w, "Description", info.Description)
			}
			if len(info.Endpoints) > 0 {
				printKeyValue(w, "Endpoints", strings.Join(info.Endpoints, ", "))
			}
			printKeyValue(w, "URL", StyleLink.Render(c.cfg.APIURL))
			return nil
		},
	}
}
