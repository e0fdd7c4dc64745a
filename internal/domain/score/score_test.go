package score_test

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vpchung/challengescoring/internal/domain/pair"
	"github.com/vpchung/challengescoring/internal/domain/score"
)

func TestPearson(t *testing.T) {
	Convey("Given paired numeric sequences", t, func() {
		Convey("When the prediction is perfect", func() {
			r := score.Pearson([]float64{1, 2, 3, 4, 5}, []float64{1, 2, 3, 4, 5})

			Convey("Then the correlation is 1", func() {
				So(r, ShouldAlmostEqual, 1.0, 1e-12)
			})
		})

		Convey("When the prediction is linearly scaled", func() {
			r := score.Pearson([]float64{1, 2, 3}, []float64{10, 20, 30})

			Convey("Then the correlation is still 1", func() {
				So(r, ShouldAlmostEqual, 1.0, 1e-12)
			})
		})

		Convey("When the prediction is perfectly inverted", func() {
			r := score.Pearson([]float64{1, 2, 3, 4}, []float64{4, 3, 2, 1})

			Convey("Then the correlation is -1", func() {
				So(r, ShouldAlmostEqual, -1.0, 1e-12)
			})
		})

		Convey("When one side has zero variance", func() {
			r := score.Pearson([]float64{1, 2, 3}, []float64{5, 5, 5})

			Convey("Then the result is NaN", func() {
				So(math.IsNaN(r), ShouldBeTrue)
			})
		})

		Convey("When there are fewer than two pairs", func() {
			r := score.Pearson([]float64{1}, []float64{2})

			Convey("Then the result is NaN", func() {
				So(math.IsNaN(r), ShouldBeTrue)
			})
		})
	})
}

func TestSpearman(t *testing.T) {
	Convey("Given paired numeric sequences", t, func() {
		Convey("When the prediction is monotone but nonlinear", func() {
			r := score.Spearman([]float64{1, 2, 3, 4}, []float64{1, 10, 100, 1000})

			Convey("Then the rank correlation is 1", func() {
				So(r, ShouldAlmostEqual, 1.0, 1e-12)
			})
		})

		Convey("When the prediction reverses the order", func() {
			r := score.Spearman([]float64{1, 2, 3, 4}, []float64{1000, 100, 10, 1})

			Convey("Then the rank correlation is -1", func() {
				So(r, ShouldAlmostEqual, -1.0, 1e-12)
			})
		})

		Convey("When the gold values contain ties", func() {
			r := score.Spearman([]float64{1, 2, 2, 3}, []float64{1, 2, 3, 4})

			Convey("Then ties take their average rank", func() {
				// ranks(gold) = [1, 2.5, 2.5, 4]; Pearson against [1,2,3,4].
				So(r, ShouldAlmostEqual, 4.5/math.Sqrt(4.5625*5), 1e-12)
			})
		})
	})
}

func TestRMSE(t *testing.T) {
	Convey("Given paired numeric sequences", t, func() {
		Convey("When the prediction is exact", func() {
			So(score.RMSE([]float64{1, 2, 3}, []float64{1, 2, 3}), ShouldEqual, 0)
		})

		Convey("When the prediction is off by one everywhere", func() {
			So(score.RMSE([]float64{1, 2, 3}, []float64{2, 3, 4}), ShouldAlmostEqual, 1.0, 1e-12)
		})

		Convey("When normalizing by the gold range", func() {
			// RMSE = 1, gold range = 2.
			So(score.NormalizedRMSE([]float64{1, 2, 3}, []float64{2, 3, 4}), ShouldAlmostEqual, 0.5, 1e-12)
		})

		Convey("When the gold values have zero range", func() {
			So(math.IsNaN(score.NormalizedRMSE([]float64{2, 2, 2}, []float64{1, 2, 3})), ShouldBeTrue)
		})
	})
}

func TestConcordance(t *testing.T) {
	Convey("Given survival outcomes and predicted risks", t, func() {
		Convey("When higher risk always means earlier event", func() {
			outcomes := []pair.Outcome{
				{Time: 1, Event: true},
				{Time: 2, Event: true},
				{Time: 3, Event: true},
			}
			c := score.Concordance(outcomes, []float64{3, 2, 1})

			Convey("Then the C-statistic is 1", func() {
				So(c, ShouldAlmostEqual, 1.0, 1e-12)
			})
		})

		Convey("When the risk ordering is fully reversed", func() {
			outcomes := []pair.Outcome{
				{Time: 1, Event: true},
				{Time: 2, Event: true},
				{Time: 3, Event: true},
			}
			c := score.Concordance(outcomes, []float64{1, 2, 3})

			Convey("Then the C-statistic is 0", func() {
				So(c, ShouldEqual, 0)
			})
		})

		Convey("When risks are tied everywhere", func() {
			outcomes := []pair.Outcome{
				{Time: 1, Event: true},
				{Time: 2, Event: true},
			}
			c := score.Concordance(outcomes, []float64{5, 5})

			Convey("Then tied pairs count half", func() {
				So(c, ShouldAlmostEqual, 0.5, 1e-12)
			})
		})

		Convey("When the earlier subject is censored", func() {
			outcomes := []pair.Outcome{
				{Time: 2, Event: false},
				{Time: 4, Event: true},
			}
			c := score.Concordance(outcomes, []float64{1, 2})

			Convey("Then no pair is usable and the result is NaN", func() {
				So(math.IsNaN(c), ShouldBeTrue)
			})
		})

		Convey("When the later subject is censored", func() {
			outcomes := []pair.Outcome{
				{Time: 2, Event: true},
				{Time: 4, Event: false},
			}
			c := score.Concordance(outcomes, []float64{5, 1})

			Convey("Then the pair is usable and concordant", func() {
				So(c, ShouldAlmostEqual, 1.0, 1e-12)
			})
		})
	})
}

func TestAdapters(t *testing.T) {
	Convey("Given the scalar and survival adapters", t, func() {
		scalarSample := &pair.Sample{Gold: []float64{1, 2}, Pred: []float64{1, 2}}
		survSample := &pair.Sample{
			Surv: []pair.Outcome{{Time: 1, Event: true}, {Time: 2, Event: true}},
			Pred: []float64{2, 1},
		}

		Convey("When a scalar metric sees a survival sample", func() {
			_, err := score.Scalar(score.Pearson)(survSample)

			Convey("Then it rejects the variant", func() {
				So(errors.Is(err, score.ErrSampleVariant), ShouldBeTrue)
			})
		})

		Convey("When a survival metric sees a scalar sample", func() {
			_, err := score.Survival(score.Concordance)(scalarSample)

			Convey("Then it rejects the variant", func() {
				So(errors.Is(err, score.ErrSampleVariant), ShouldBeTrue)
			})
		})

		Convey("When variants match", func() {
			v, err := score.Scalar(score.Pearson)(scalarSample)
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, 1.0, 1e-12)

			c, err := score.Survival(score.Concordance)(survSample)
			So(err, ShouldBeNil)
			So(c, ShouldAlmostEqual, 1.0, 1e-12)
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Given the metric registry", t, func() {
		Convey("When looking up built-ins", func() {
			for _, name := range []string{"spearman", "pearson", "rmse", "nrmse", "concordance"} {
				m, err := score.Lookup(name)
				So(err, ShouldBeNil)
				So(m.Name, ShouldEqual, name)
				So(m.Score, ShouldNotBeNil)
			}
		})

		Convey("When checking orientations", func() {
			pearson, _ := score.Lookup(score.MetricPearson)
			rmse, _ := score.Lookup(score.MetricRMSE)
			So(pearson.LargerIsBetter, ShouldBeTrue)
			So(rmse.LargerIsBetter, ShouldBeFalse)
		})

		Convey("When looking up an unknown metric", func() {
			_, err := score.Lookup("mae")

			Convey("Then it fails with the unknown-metric sentinel", func() {
				So(errors.Is(err, score.ErrUnknownMetric), ShouldBeTrue)
			})
		})

		Convey("When registering a custom metric", func() {
			custom := score.Metric{
				Name:           "always-zero",
				LargerIsBetter: true,
				Score:          score.Scalar(func(gold, pred []float64) float64 { return 0 }),
			}

			So(score.Register(custom), ShouldBeNil)

			m, err := score.Lookup("always-zero")
			So(err, ShouldBeNil)
			So(m.LargerIsBetter, ShouldBeTrue)
			So(score.Names(), ShouldContain, "always-zero")

			Convey("And registering the same name again fails", func() {
				So(errors.Is(score.Register(custom), score.ErrDuplicateName), ShouldBeTrue)
			})
		})
	})
}
