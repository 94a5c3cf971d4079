package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/citeforest/pkg/dataset"
	"github.com/matzehuels/citeforest/pkg/errors"
	"github.com/matzehuels/citeforest/pkg/geo"
	"github.com/matzehuels/citeforest/pkg/idgen"
	"github.com/matzehuels/citeforest/pkg/store"
)

// timing is the measured cost of one operation class.
type timing struct {
	name  string
	calls int
	total time.Duration
}

func (t timing) perCall() time.Duration {
	if t.calls == 0 {
		return 0
	}
	return t.total / time.Duration(t.calls)
}

type perfRun struct {
	s       *store.Store
	g       *idgen.Generator
	opts    idgen.Options
	timings []timing
}

func (r *perfRun) measure(name string, calls int, fn func()) {
	start := time.Now()
	fn()
	r.timings = append(r.timings, timing{name: name, calls: calls, total: time.Since(start)})
}

func (r *perfRun) point() geo.Coord {
	x, y := r.g.Coord(r.opts.CoordRange)
	return geo.Coord{X: x, Y: y}
}

// runPerftest generates a dataset of n publications and times every store
// operation against it. The store is cleared at the end.
func runPerftest(ctx context.Context, n int, seed uint64, opts idgen.Options) ([]timing, error) {
	logger := loggerFromContext(ctx)
	r := &perfRun{s: store.New(), g: idgen.New(seed), opts: opts}

	prog := newProgress(logger)
	ds := r.g.Synthetic(n, opts)
	prog.donef("Generated %d affiliations, %d publications", len(ds.Affiliations), len(ds.Publications))

	var applyErr error
	r.measure("load dataset", len(ds.Affiliations)+len(ds.Publications), func() {
		_, applyErr = dataset.Apply(r.s, ds)
	})
	if applyErr != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, applyErr, "apply synthetic dataset")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.s
	affs := s.AllAffiliations()
	pubs := s.AllPublications()

	r.measure("alphabetical (cold)", 1, func() { s.AffiliationsAlphabetically() })
	r.measure("alphabetical (warm)", 1, func() { s.AffiliationsAlphabetically() })
	r.measure("distance (cold)", 1, func() { s.AffiliationsDistanceIncreasing() })
	r.measure("distance (warm)", 1, func() { s.AffiliationsDistanceIncreasing() })

	r.measure("find by coord", len(affs), func() {
		for _, id := range affs {
			s.FindAffiliationWithCoord(s.AffiliationCoord(id))
		}
	})

	points := make([]geo.Coord, 100)
	for i := range points {
		points[i] = r.point()
	}
	r.measure("closest to", len(points), func() {
		for _, xy := range points {
			s.AffiliationsClosestTo(xy)
		}
	})

	r.measure("publications after", len(affs), func() {
		for _, id := range affs {
			s.PublicationsAfter(id, store.Year(opts.YearLo+(opts.YearHi-opts.YearLo)/2))
		}
	})

	r.measure("referenced-by chain", len(pubs), func() {
		for _, id := range pubs {
			s.ReferencedByChain(id)
		}
	})

	var roots []store.PublicationID
	for _, id := range pubs {
		if s.Parent(id) == store.NoPublication {
			roots = append(roots, id)
		}
	}
	r.measure("all references", len(roots), func() {
		for _, id := range roots {
			s.AllReferences(id)
		}
	})

	if len(pubs) > 0 {
		pairs := make([][2]store.PublicationID, len(pubs))
		for i := range pairs {
			pairs[i] = [2]store.PublicationID{pubs[r.g.IntIn(0, len(pubs)-1)], pubs[r.g.IntIn(0, len(pubs)-1)]}
		}
		r.measure("common parent", len(pairs), func() {
			for _, p := range pairs {
				s.ClosestCommonParent(p[0], p[1])
			}
		})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tenth := func(ids int) int { return max(1, ids/10) }
	if len(affs) > 0 {
		moved := affs[:min(len(affs), tenth(len(affs)))]
		r.measure("change coord", len(moved), func() {
			for _, id := range moved {
				s.ChangeAffiliationCoord(id, r.point())
			}
		})
		r.measure("distance (after move)", 1, func() { s.AffiliationsDistanceIncreasing() })
	}
	if len(pubs) > 0 {
		removed := pubs[:min(len(pubs), tenth(len(pubs)))]
		r.measure("remove publication", len(removed), func() {
			for _, id := range removed {
				s.RemovePublication(id)
			}
		})
	}
	if len(affs) > 0 {
		removed := affs[len(affs)-min(len(affs), tenth(len(affs))):]
		r.measure("remove affiliation", len(removed), func() {
			for _, id := range removed {
				s.RemoveAffiliation(id)
			}
		})
	}
	r.measure("clear all", 1, s.ClearAll)

	return r.timings, nil
}

// perftestCommand times every operation on a synthetic dataset.
func (c *CLI) perftestCommand() *cobra.Command {
	var (
		n    int
		seed uint64
	)
	opts := idgen.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "perftest",
		Short: "Time every operation on a synthetic dataset",
		Long: `Generate a reproducible synthetic dataset and time every store operation
against it. The same --seed always produces the same dataset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--n must not be negative")
			}
			timings, err := runPerftest(cmd.Context(), n, seed, opts)
			if err != nil {
				return err
			}
			printTitle("perftest n=" + strconv.Itoa(n) + " seed=" + strconv.FormatUint(seed, 10))
			for _, t := range timings {
				printRow(t.name, strconv.Itoa(t.calls)+" calls", t.total.String(), t.perCall().String()+"/call")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "n", 1000, "number of publications")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().IntVar(&opts.Affiliations, "affiliations", 0, "number of affiliations (default: same as --n)")
	cmd.Flags().IntVar(&opts.CoordRange, "range", opts.CoordRange, "coordinates fall in [-range, range]")
	return cmd
}
