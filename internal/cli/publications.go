package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/citeforest/pkg/store"
)

func pubString(id store.PublicationID) string {
	return strconv.FormatUint(uint64(id), 10)
}

// publicationsCommand lists every publication.
func (c *CLI) publicationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "publications",
		Short: "List publications in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			ids := s.AllPublications()
			if len(ids) == 0 {
				printInfo("No publications")
				return nil
			}
			for _, id := range ids {
				printRow(pubString(id), strconv.Itoa(int(s.PublicationYear(id))), string(s.PublicationName(id)))
			}
			return nil
		},
	}
}

// publicationCommand shows one publication with its position in the forest.
func (c *CLI) publicationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "publication <id>",
		Short: "Show a publication, its references and its ancestry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePublicationID(args[0])
			if err != nil {
				return err
			}
			s, err := c.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := requirePublication(s, id); err != nil {
				return err
			}

			printTitle(string(s.PublicationName(id)))
			printKeyValue("id", pubString(id))
			printKeyValue("year", strconv.Itoa(int(s.PublicationYear(id))))
			printKeyValue("affiliations", joinIDs(s.PublicationAffiliations(id)))
			parent := "-"
			if p := s.Parent(id); p != store.NoPublication {
				parent = pubString(p)
			}
			printKeyValue("cites", parent)
			printKeyValue("cited by", joinIDs(s.DirectReferences(id)))
			printKeyValue("chain", joinIDs(s.ReferencedByChain(id)))
			printKeyValue("descendants", joinIDs(s.AllReferences(id)))
			return nil
		},
	}
}

// afterCommand lists an affiliation's publications from a year on.
func (c *CLI) afterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "after <affiliation> <year>",
		Short: "List an affiliation's publications from a year on",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[1])
			if err != nil {
				return err
			}
			s, err := c.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			id := store.AffiliationID(args[0])
			if err := requireAffiliation(s, id); err != nil {
				return err
			}
			pubs := s.PublicationsAfter(id, year)
			if len(pubs) == 0 {
				printInfo("No publications since %d", year)
				return nil
			}
			for _, yp := range pubs {
				printRow(pubString(yp.Publication), strconv.Itoa(int(yp.Year)), string(s.PublicationName(yp.Publication)))
			}
			return nil
		},
	}
}

// commonCommand finds the closest common ancestor of two publications.
func (c *CLI) commonCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "common <id1> <id2>",
		Short: "Find the closest publication both publications descend from",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parsePublicationID(args[0])
			if err != nil {
				return err
			}
			b, err := parsePublicationID(args[1])
			if err != nil {
				return err
			}
			s, err := c.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range []store.PublicationID{a, b} {
				if err := requirePublication(s, id); err != nil {
					return err
				}
			}
			p := s.ClosestCommonParent(a, b)
			if p == store.NoPublication {
				printInfo("Publications %d and %d have no common parent", a, b)
				return nil
			}
			printRow(pubString(p), strconv.Itoa(int(s.PublicationYear(p))), string(s.PublicationName(p)))
			return nil
		},
	}
}
