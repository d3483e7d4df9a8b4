package main

import (
	"github.com/spf13/cobra"
)

func renderCmd() *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Convert HTML-authored markup to SVG",
		Long: `Read an HTML document, mirror the children of its host element and
print the resulting SVG. Reads stdin when no file is given.

Examples:
  svgmirror render chart.html
  svgmirror render --pretty --view-box "0 0 100 100" chart.html
  cat chart.html | svgmirror render --host my-drawing`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolveConfig(cmd)
			if err != nil {
				return err
			}

			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			s, err := openSession(cfg, in, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.engine.Close()

			if err := s.render(cmd.OutOrStdout()); err != nil {
				return err
			}
			if flags.metrics {
				return s.writeMetrics(cmd.ErrOrStderr())
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
