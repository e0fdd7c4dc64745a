// Package bootstrap resamples paired data with replacement and scores
// each resample, producing a distribution of scores.
package bootstrap

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vpchung/challengescoring/internal/domain/pair"
	"github.com/vpchung/challengescoring/internal/domain/score"
	"github.com/vpchung/challengescoring/pkg/metrics"
)

// Sampler draws bootstrap score distributions from paired samples.
//
// Each draw uses its own generator seeded from the sampler's base seed
// plus the draw index, so distributions are reproducible for a given
// seed regardless of how draws are scheduled across workers.
type Sampler struct {
	baseSeed    int64
	parallelism int
}

// Option applies a configuration option to the Sampler.
type Option func(*Sampler)

// WithSeed fixes the base seed for reproducible draws.
func WithSeed(seed int64) Option {
	return func(s *Sampler) {
		s.baseSeed = seed
	}
}

// WithParallelism bounds the number of draws evaluated concurrently.
func WithParallelism(n int) Option {
	return func(s *Sampler) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// New creates a Sampler. Without WithSeed the base seed is drawn from
// process-wide randomness and distributions are not reproducible.
func New(opts ...Option) *Sampler {
	s := &Sampler{
		baseSeed:    rand.Int63(), //nolint:gosec // statistical sampling, not crypto
		parallelism: runtime.NumCPU(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Distribution draws n bootstrap resamples of sample, scores each with
// fn, and returns the n scores in draw order. A score function failure
// or a non-finite score aborts the whole distribution: draws are never
// silently discarded since that would bias the mean.
func (s *Sampler) Distribution(ctx context.Context, sample *pair.Sample, fn score.Func, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d draws", ErrInvalidDrawCount, n)
	}
	if sample == nil || sample.Len() == 0 {
		return nil, ErrEmptySample
	}

	start := time.Now()
	length := sample.Len()
	out := make([]float64, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			// Cooperative cancellation between draws.
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			rng := rand.New(rand.NewSource(s.baseSeed + int64(i))) //nolint:gosec // deterministic per-draw generator
			indices := make([]int, length)
			for j := range indices {
				indices[j] = rng.Intn(length)
			}

			v, err := fn(sample.Take(indices))
			if err != nil {
				return fmt.Errorf("%w: draw %d: %w", ErrScoreComputation, i, err)
			}
			if !score.IsFinite(v) {
				return fmt.Errorf("%w: draw %d produced %v", ErrScoreComputation, i, v)
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics.RecordBootstrapDraws(n)
	metrics.RecordBootstrapLatency(float64(time.Since(start).Milliseconds()))

	return out, nil
}

// Mean returns the arithmetic mean of a score distribution.
func Mean(dist []float64) float64 {
	if len(dist) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range dist {
		sum += v
	}
	return sum / float64(len(dist))
}
