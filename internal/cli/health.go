package cli

import (
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Long: `Check that the hunt server answers its health endpoint.

With --wait the check is retried with exponential backoff until it passes
or the wait elapses, which suits scripts that start the server first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := HealthResult{Server: cfg.ServerURL}

			check := func() error {
				result.Attempts++
				return client.Get("/api/v1/health", &result)
			}

			var err error
			if wait > 0 {
				b := backoff.NewExponentialBackOff()
				b.InitialInterval = 100 * time.Millisecond
				b.MaxElapsedTime = wait
				err = backoff.Retry(check, b)
			} else {
				err = check()
			}
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 0, "Keep retrying until healthy or this long has passed")

	return cmd
}
