package buildpipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BuildAll translates several serialized modules concurrently. Each
// request gets its own translator instance and independently named
// temporary resources, so the calls do not share mutable state.
// Results are returned in request order; the first failure cancels the
// remaining work.
func BuildAll(ctx context.Context, reqs []*Request) ([]Result, error) {
	results := make([]Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			res, err := Build(gctx, req)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
