package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vango-dev/svgmirror/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "svgmirror",
		Short: "Mirror HTML authoring markup into SVG",
		Long: `svgmirror turns HTML-authored drawings into SVG.

Markup inside a host element (svg-html by default) is replicated into
namespaced SVG elements with the correct tag casing, and kept in sync
as the markup changes:

  • Mixed-case SVG tags (linearGradient, feGaussianBlur, ...)
  • Only attributes written in the markup are copied
  • Attribute, child and text changes are propagated
  • A binary patch log of every change`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		renderCmd(),
		replayCmd(),
		tagsCmd(),
		versionCmd(),
	)
	return rootCmd
}

// info prints an informational line to w.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
