package bootstrap_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vpchung/challengescoring/internal/domain/bootstrap"
	"github.com/vpchung/challengescoring/internal/domain/pair"
	"github.com/vpchung/challengescoring/internal/domain/score"
)

func TestDistribution(t *testing.T) {
	Convey("Given a sampler over an aligned sample", t, func() {
		ctx := context.Background()
		sample := &pair.Sample{
			Gold: []float64{1, 2, 3, 4, 5},
			Pred: []float64{1, 2, 3, 4, 5},
		}

		Convey("When drawing a distribution", func() {
			sampler := bootstrap.New(bootstrap.WithSeed(42))
			dist, err := sampler.Distribution(ctx, sample, score.Scalar(score.Pearson), 100)

			Convey("Then it returns exactly n finite scores", func() {
				So(err, ShouldBeNil)
				So(len(dist), ShouldEqual, 100)
				for _, v := range dist {
					So(score.IsFinite(v), ShouldBeTrue)
				}
			})
		})

		Convey("When the prediction is perfect and the metric is linear correlation", func() {
			sampler := bootstrap.New(bootstrap.WithSeed(7))
			dist, err := sampler.Distribution(ctx, sample, score.Scalar(score.Pearson), 5)

			Convey("Then every draw scores 1", func() {
				So(err, ShouldBeNil)
				So(len(dist), ShouldEqual, 5)
				for _, v := range dist {
					So(v, ShouldAlmostEqual, 1.0, 1e-12)
				}
			})
		})

		Convey("When the score function is constant", func() {
			constant := func(s *pair.Sample) (float64, error) { return 2.5, nil }
			sampler := bootstrap.New()
			dist, err := sampler.Distribution(ctx, sample, constant, 50)

			Convey("Then every element equals the constant", func() {
				So(err, ShouldBeNil)
				for _, v := range dist {
					So(v, ShouldEqual, 2.5)
				}
			})
		})

		Convey("When the same seed is used twice", func() {
			fn := score.Scalar(score.RMSE)
			noisy := &pair.Sample{
				Gold: []float64{1, 2, 3, 4, 5},
				Pred: []float64{1.1, 2.3, 2.8, 4.2, 4.9},
			}
			first, err1 := bootstrap.New(bootstrap.WithSeed(99)).Distribution(ctx, noisy, fn, 200)
			second, err2 := bootstrap.New(bootstrap.WithSeed(99), bootstrap.WithParallelism(1)).Distribution(ctx, noisy, fn, 200)

			Convey("Then the distributions are identical regardless of parallelism", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first, ShouldResemble, second)
			})
		})

		Convey("When different seeds are used", func() {
			fn := score.Scalar(score.RMSE)
			noisy := &pair.Sample{
				Gold: []float64{1, 2, 3, 4, 5},
				Pred: []float64{1.1, 2.3, 2.8, 4.2, 4.9},
			}
			first, _ := bootstrap.New(bootstrap.WithSeed(1)).Distribution(ctx, noisy, fn, 200)
			second, _ := bootstrap.New(bootstrap.WithSeed(2)).Distribution(ctx, noisy, fn, 200)

			Convey("Then the distributions differ", func() {
				So(first, ShouldNotResemble, second)
			})
		})

		Convey("When the sample has a single pair", func() {
			single := &pair.Sample{Gold: []float64{3}, Pred: []float64{2}}
			sampler := bootstrap.New(bootstrap.WithSeed(5))
			dist, err := sampler.Distribution(ctx, single, score.Scalar(score.RMSE), 20)

			Convey("Then every draw reproduces the single pair", func() {
				So(err, ShouldBeNil)
				for _, v := range dist {
					So(v, ShouldAlmostEqual, 1.0, 1e-12)
				}
			})
		})

		Convey("When the draw count is invalid", func() {
			sampler := bootstrap.New()
			_, err := sampler.Distribution(ctx, sample, score.Scalar(score.Pearson), 0)

			Convey("Then it fails before any work", func() {
				So(errors.Is(err, bootstrap.ErrInvalidDrawCount), ShouldBeTrue)
			})
		})

		Convey("When the sample is empty", func() {
			sampler := bootstrap.New()
			_, err := sampler.Distribution(ctx, &pair.Sample{}, score.Scalar(score.Pearson), 10)

			Convey("Then it fails with the empty-sample sentinel", func() {
				So(errors.Is(err, bootstrap.ErrEmptySample), ShouldBeTrue)
			})
		})

		Convey("When the score function fails", func() {
			failing := func(s *pair.Sample) (float64, error) { return 0, fmt.Errorf("broken") }
			sampler := bootstrap.New(bootstrap.WithSeed(3))
			_, err := sampler.Distribution(ctx, sample, failing, 10)

			Convey("Then the whole distribution aborts", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, bootstrap.ErrScoreComputation), ShouldBeTrue)
			})
		})

		Convey("When the score function returns a non-finite value", func() {
			nonFinite := func(s *pair.Sample) (float64, error) { return math.NaN(), nil }
			sampler := bootstrap.New(bootstrap.WithSeed(3))
			_, err := sampler.Distribution(ctx, sample, nonFinite, 10)

			Convey("Then the whole distribution aborts", func() {
				So(errors.Is(err, bootstrap.ErrScoreComputation), ShouldBeTrue)
			})
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			sampler := bootstrap.New(bootstrap.WithSeed(3), bootstrap.WithParallelism(1))
			_, err := sampler.Distribution(cancelled, sample, score.Scalar(score.Pearson), 1000)

			Convey("Then it returns the context error", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestMean(t *testing.T) {
	Convey("Given score distributions", t, func() {
		Convey("Then Mean averages them", func() {
			So(bootstrap.Mean([]float64{1, 2, 3}), ShouldAlmostEqual, 2.0, 1e-12)
			So(bootstrap.Mean(nil), ShouldEqual, 0)
		})
	})
}
