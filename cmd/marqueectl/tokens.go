package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/marquee/internal/application"
)

func newExportTokensCmd() *cobra.Command {
	var (
		format string
		output string
		input  string
	)

	cmd := &cobra.Command{
		Use:   "export-tokens",
		Short: "Export the design tokens as CSS custom properties or JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readOptionalFile(input)
			if err != nil {
				return err
			}

			var tokens *application.TokenSet
			if data == nil {
				tokens, err = application.DefaultTokens()
			} else {
				tokens, err = application.ParseTokens(data)
			}
			if err != nil {
				return err
			}

			var out []byte
			switch format {
			case "css":
				out = tokens.CSS()
			case "json":
				out, err = tokens.JSON()
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want css or json)", format)
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d tokens to %s\n", len(tokens.Tokens()), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "css", "Output format: css or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&input, "tokens", "", "YAML token file (default: embedded tokens)")

	return cmd
}
