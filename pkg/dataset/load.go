package dataset

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// maxParallelLoads caps how many files are decoded at once.
const maxParallelLoads = 8

// LoadFiles reads every path concurrently and returns the datasets in the
// order the paths were given. The first failure cancels the remaining reads
// and is returned.
func LoadFiles(ctx context.Context, paths ...string) ([]*Dataset, error) {
	out := make([]*Dataset, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ds, err := ReadFile(path)
			if err != nil {
				return err
			}
			out[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
