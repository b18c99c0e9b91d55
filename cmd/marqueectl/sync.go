package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/marquee/internal/application"
)

func newSyncCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Copy every published document from the CMS into the local mirror",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := flags.withTimeout(cmd)
			defer cancel()

			client, err := openCMS()
			if err != nil {
				return err
			}
			mirror, closeFn, err := openMirror(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			// The interval is unused for a one-shot sync.
			svc := application.NewSyncService(client, mirror, time.Hour)
			result, err := svc.SyncAll(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "synced %d documents across %d types in %s\n",
				result.Documents, result.Types, result.Duration)
			return err
		},
	}
}
