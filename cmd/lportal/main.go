// Command lportal is the CLI front end for the lportal conversion core: a
// one-shot `convert`, a `watch` mode for an artist iterating on room
// layout, and optional Prometheus metrics for a long-running watch
// session. The core package itself has no CLI, no config file, and no
// file-format knowledge; all of that lives here, layered on top.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "lportal",
	Short:         "Portal visibility and shadow-caster conversion core",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render("error: ")+err.Error())
		os.Exit(1)
	}
}
