// Command marqueectl runs maintenance tasks against the CMS dataset and the
// local mirror: seeding sample content, auditing slugs, exporting design
// tokens, dumping the content schema and one-shot mirror syncs.
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
