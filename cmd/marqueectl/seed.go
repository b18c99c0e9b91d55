package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/marquee/internal/application"
	"github.com/ericfisherdev/marquee/internal/domain/port/driven"
)

func newSeedCmd(flags *globalFlags) *cobra.Command {
	var (
		target   string
		fixtures string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create or replace the sample content",
		Long: `Validate the seed fixtures and create-or-replace every document by its fixed
ID. Running seed again leaves exactly one record per ID.

The embedded sample content is used unless --fixtures names a YAML file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validTarget(target); err != nil {
				return err
			}
			data, err := readOptionalFile(fixtures)
			if err != nil {
				return err
			}

			if dryRun {
				docs, err := application.NewSeedService(nil, data).Documents()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d documents valid\n", len(docs))
				return nil
			}

			ctx, cancel := flags.withTimeout(cmd)
			defer cancel()

			var writer driven.ContentWriter
			switch target {
			case targetCMS:
				client, err := openCMS()
				if err != nil {
					return err
				}
				writer = client
			case targetSQLite:
				mirror, closeFn, err := openMirror(ctx)
				if err != nil {
					return err
				}
				defer closeFn()
				writer = mirror
			}

			n, err := application.NewSeedService(writer, data).Seed(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d documents into %s\n", n, target)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", targetCMS, "Where to write: cms or sqlite")
	cmd.Flags().StringVar(&fixtures, "fixtures", "", "YAML fixtures file (default: embedded sample content)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the fixtures without writing")

	return cmd
}
