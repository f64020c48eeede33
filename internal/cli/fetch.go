package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/launchdeck/pkg/launchapi"
)

// fetch resolves the service and runs fn, drawing a spinner on stderr while
// it waits when the CLI is interactive.
func fetch[T any](c *CLI, cmd *cobra.Command, msg string, fn func(context.Context, *launchapi.Service) (T, error)) (T, error) {
	var zero T
	svc, err := c.service()
	if err != nil {
		return zero, err
	}

	ctx := cmd.Context()
	if !c.Interactive {
		return fn(ctx, svc)
	}

	s := newSpinner(ctx, cmd.ErrOrStderr(), msg)
	s.Start()
	defer s.Stop()
	return fn(ctx, svc)
}
