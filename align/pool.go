package align

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Job is one utterance queued for alignment.
type Job struct {
	UID       string
	RefTokens []string
	HypTokens []string
}

// AlignAll runs jobs across up to workers goroutines, per spec.md §5:
// the shared Aligner is read-only, each worker writes only its own
// result slot, and the returned slice preserves the caller's job order
// (expected to already be sorted by uid) regardless of completion order.
// The first alignment error cancels the remaining work and is returned;
// spec.md §7 treats an empty lattice as fatal to the whole run.
func AlignAll(ctx context.Context, aligner *Aligner, jobs []Job, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = 1
	}

	results := make([]Result, len(jobs))
	sem := semaphore.NewWeighted(int64(workers))
	g, ctx := errgroup.WithContext(ctx)

	for i, job := range jobs {
		i, job := i, job
		if err := sem.Acquire(ctx, 1); err != nil {
			if werr := g.Wait(); werr != nil {
				return nil, werr
			}
			return nil, err
		}
		g.Go(func() error {
			defer sem.Release(1)
			res, err := aligner.Align(job.UID, job.RefTokens, job.HypTokens)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
