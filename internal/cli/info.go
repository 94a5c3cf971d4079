package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/citeforest/pkg/store"
)

// summary holds the counts printed by info.
type summary struct {
	affiliations int
	publications int
	links        int
	references   int
	roots        int
	firstYear    store.Year
	lastYear     store.Year
}

func summarize(s *store.Store) summary {
	sum := summary{
		affiliations: s.AffiliationCount(),
		publications: s.PublicationCount(),
		firstYear:    store.NoYear,
	}
	for _, id := range s.AllPublications() {
		sum.links += len(s.PublicationAffiliations(id))
		if s.Parent(id) == store.NoPublication {
			sum.roots++
		} else {
			sum.references++
		}
		y := s.PublicationYear(id)
		sum.firstYear = min(sum.firstYear, y)
		sum.lastYear = max(sum.lastYear, y)
	}
	return sum
}

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Summarize the loaded datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			if len(c.dataPaths) == 0 {
				printWarning("No datasets loaded; pass --data or set %s", envData)
			}
			sum := summarize(s)

			printTitle("Citeforest")
			printKeyValue("affiliations", strconv.Itoa(sum.affiliations))
			printKeyValue("publications", strconv.Itoa(sum.publications))
			printKeyValue("links", strconv.Itoa(sum.links))
			printKeyValue("references", strconv.Itoa(sum.references))
			printKeyValue("trees", strconv.Itoa(sum.roots))
			if sum.publications > 0 {
				printKeyValue("years", strconv.Itoa(int(sum.firstYear))+"-"+strconv.Itoa(int(sum.lastYear)))
			}
			for _, p := range c.dataPaths {
				printDetail("source: %s", p)
			}
			return nil
		},
	}
}
