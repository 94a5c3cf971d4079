package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/citeforest/pkg/errors"
	"github.com/matzehuels/citeforest/pkg/render/nodelink"
)

// graphCommand renders the citation forest.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output string
		format string
		opts   nodelink.Options
	)
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the citation forest as DOT or SVG",
		Long: `Render the citation forest as a node-link diagram.

Each publication is a box with an arrow to every publication that cites it.
Roots are drawn with a bold outline. With --affiliations the contributing
affiliations are drawn as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := nodelink.Format(format)
			if f != nodelink.FormatDOT && f != nodelink.FormatSVG {
				return errors.New(errors.ErrCodeInvalidFormat, "unknown graph format %q (want dot or svg)", format)
			}
			if output != "" {
				if err := errors.ValidatePath(output); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			s, err := c.loadStore(ctx)
			if err != nil {
				return err
			}
			prog := newProgress(loggerFromContext(ctx))
			data, err := nodelink.Render(ctx, s, f, opts)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			prog.donef("Rendered %d publications as %s", s.PublicationCount(), f)

			if output == "" {
				_, err := stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Rendered citation forest")
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", string(nodelink.FormatDOT), "output format: dot, svg")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include year and contributors in labels")
	cmd.Flags().BoolVar(&opts.Affiliations, "affiliations", false, "draw affiliation nodes")
	return cmd
}
