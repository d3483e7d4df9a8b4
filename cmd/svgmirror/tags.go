package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vango-dev/svgmirror/pkg/mirror"
)

func tagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List the mixed-case SVG tag names",
		Long: `List the SVG element names whose casing cannot be recovered from
HTML markup. Every other tag is written in lower case.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "HTML\tSVG")
			for _, m := range mirror.TagTable() {
				fmt.Fprintf(tw, "%s\t%s\n", m.HTML, m.SVG)
			}
			tw.Flush()
		},
	}
}
