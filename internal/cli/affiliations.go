package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/citeforest/pkg/errors"
	"github.com/matzehuels/citeforest/pkg/store"
)

const (
	orderInsertion = "insertion"
	orderName      = "name"
	orderDistance  = "distance"
)

// orderedAffiliations returns the affiliation ids in the named order.
func orderedAffiliations(s *store.Store, order string) ([]store.AffiliationID, error) {
	switch order {
	case orderInsertion, "":
		return s.AllAffiliations(), nil
	case orderName:
		return s.AffiliationsAlphabetically(), nil
	case orderDistance:
		return s.AffiliationsDistanceIncreasing(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown order %q (want %s, %s or %s)", order, orderInsertion, orderName, orderDistance)
	}
}

func printAffiliationRows(s *store.Store, ids []store.AffiliationID) {
	for _, id := range ids {
		printRow(string(id), string(s.AffiliationName(id)), s.AffiliationCoord(id).String())
	}
}

// affiliationsCommand lists every affiliation.
func (c *CLI) affiliationsCommand() *cobra.Command {
	var order string
	cmd := &cobra.Command{
		Use:   "affiliations",
		Short: "List affiliations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			ids, err := orderedAffiliations(s, order)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				printInfo("No affiliations")
				return nil
			}
			printAffiliationRows(s, ids)
			return nil
		},
	}
	cmd.Flags().StringVar(&order, "order", orderInsertion, "ordering: insertion, name, distance (from origin)")
	return cmd
}

// affiliationCommand shows one affiliation and its publications.
func (c *CLI) affiliationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "affiliation <id>",
		Short: "Show an affiliation and its publications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			id := store.AffiliationID(args[0])
			if err := requireAffiliation(s, id); err != nil {
				return err
			}

			printTitle(string(s.AffiliationName(id)))
			printKeyValue("id", string(id))
			printKeyValue("coord", s.AffiliationCoord(id).String())
			contribs := s.Contributions(id)
			printKeyValue("publications", strconv.Itoa(len(contribs)))
			for _, ct := range contribs {
				printRow(strconv.FormatUint(uint64(ct.Publication), 10), strconv.Itoa(int(ct.Year)), string(s.PublicationName(ct.Publication)))
			}
			return nil
		},
	}
}

// closestCommand lists the affiliations nearest to a point.
func (c *CLI) closestCommand() *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "closest [flags] [--] <x> <y>",
		Short: "List the affiliations closest to a point",
		Long: `List the affiliations closest to a point, nearest first.

Negative coordinates look like flags; put them after "--":

  citeforest closest -k 5 -- -3 4`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			xy, err := parseCoord(args[0], args[1])
			if err != nil {
				return err
			}
			s, err := c.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			ids := s.ClosestTo(xy, k)
			if len(ids) == 0 {
				printInfo("No affiliations")
				return nil
			}
			printAffiliationRows(s, ids)
			return nil
		},
	}
	cmd.Flags().IntVarP(&k, "count", "k", store.DefaultClosest, "number of affiliations to list (negative lists all)")
	return cmd
}

// atCommand finds the affiliation at exact coordinates.
func (c *CLI) atCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "at [flags] [--] <x> <y>",
		Short: "Find the affiliation at a point",
		Long: `Find the affiliation at exact coordinates.

Negative coordinates look like flags; put them after "--":

  citeforest at -- -3 4`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			xy, err := parseCoord(args[0], args[1])
			if err != nil {
				return err
			}
			s, err := c.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			id := s.FindAffiliationWithCoord(xy)
			if id == store.NoAffiliation {
				return errors.New(errors.ErrCodeNotFound, "no affiliation at %s", xy)
			}
			printAffiliationRows(s, []store.AffiliationID{id})
			return nil
		},
	}
}
