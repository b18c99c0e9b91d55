package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/marquee/internal/application"
)

func newCheckSlugsCmd(flags *globalFlags) *cobra.Command {
	var (
		source string
		fix    bool
	)

	cmd := &cobra.Command{
		Use:   "check-slugs",
		Short: "Report missing, malformed and duplicate slugs",
		Long: `Audit the slug of every document whose type has one. Each issue is printed
with a suggested replacement. Exits non-zero when issues remain, so the
command can gate a CI step.

With --fix the suggestions are written back through the same source.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validTarget(source); err != nil {
				return err
			}

			ctx, cancel := flags.withTimeout(cmd)
			defer cancel()

			var checker *application.SlugChecker
			switch source {
			case targetCMS:
				client, err := openCMS()
				if err != nil {
					return err
				}
				checker = application.NewSlugChecker(client, client)
			case targetSQLite:
				mirror, closeFn, err := openMirror(ctx)
				if err != nil {
					return err
				}
				defer closeFn()
				checker = application.NewSlugChecker(mirror, mirror)
			}

			issues, err := checker.Check(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(issues) == 0 {
				fmt.Fprintln(out, "all slugs ok")
				return nil
			}
			for _, issue := range issues {
				fmt.Fprintln(out, issue.String())
			}

			if !fix {
				return fmt.Errorf("found %d slug issues", len(issues))
			}

			n, err := checker.Fix(ctx, issues)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "fixed %d slugs\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", targetCMS, "Where to read: cms or sqlite")
	cmd.Flags().BoolVar(&fix, "fix", false, "Write the suggested slugs")

	return cmd
}
