package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/citeforest/pkg/dataset"
	"github.com/matzehuels/citeforest/pkg/errors"
)

// exportCommand writes the loaded data back out as a single dataset.
func (c *CLI) exportCommand() *cobra.Command {
	var output, format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the loaded data as one dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := dataset.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := c.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			ds := dataset.Export(s)

			if output == "" {
				return dataset.Write(stdout, ds, f)
			}
			if err := errors.ValidatePath(output); err != nil {
				return err
			}
			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer file.Close()
			if err := dataset.Write(file, ds, f); err != nil {
				return err
			}
			printSuccess("Exported %d affiliations, %d publications", len(ds.Affiliations), len(ds.Publications))
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", string(dataset.FormatJSON), "output format: json, toml")
	return cmd
}
