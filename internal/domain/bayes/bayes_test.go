package bayes_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vpchung/challengescoring/internal/domain/bayes"
)

func TestCompare(t *testing.T) {
	Convey("Given two score distributions", t, func() {
		Convey("When current wins every paired draw", func() {
			current := []float64{2, 2, 2, 2}
			prev := []float64{1, 1, 1, 1}

			est, err := bayes.Compare(current, prev, true)

			Convey("Then the win rate is clamped below 1 and the odds are large", func() {
				So(err, ShouldBeNil)
				So(est.WinRate, ShouldAlmostEqual, 0.8, 1e-12) // clamped to 1 - 1/5
				So(est.Factor, ShouldAlmostEqual, 4.0, 1e-12)
				So(est.MeetsCutoff(3), ShouldBeTrue)
			})
		})

		Convey("When current loses every paired draw", func() {
			current := []float64{1, 1, 1, 1}
			prev := []float64{2, 2, 2, 2}

			est, err := bayes.Compare(current, prev, true)

			Convey("Then the win rate is clamped above 0 and the odds are small", func() {
				So(err, ShouldBeNil)
				So(est.WinRate, ShouldAlmostEqual, 0.2, 1e-12) // clamped to 1/5
				So(est.Factor, ShouldAlmostEqual, 0.25, 1e-12)
				So(est.MeetsCutoff(3), ShouldBeFalse)
			})
		})

		Convey("When wins split evenly", func() {
			current := []float64{2, 1, 2, 1}
			prev := []float64{1, 2, 1, 2}

			est, err := bayes.Compare(current, prev, true)

			Convey("Then the odds are 1", func() {
				So(err, ShouldBeNil)
				So(est.Factor, ShouldAlmostEqual, 1.0, 1e-12)
			})
		})

		Convey("When ties occur", func() {
			current := []float64{1, 1}
			prev := []float64{1, 1}

			est, err := bayes.Compare(current, prev, true)

			Convey("Then a tie is not a win", func() {
				So(err, ShouldBeNil)
				So(est.WinRate, ShouldAlmostEqual, 1.0/3.0, 1e-12) // 0 wins clamped to 1/(n+1)
			})
		})

		Convey("When the orientation is lower-is-better", func() {
			current := []float64{1, 1, 1, 1}
			prev := []float64{2, 2, 2, 2}

			est, err := bayes.Compare(current, prev, false)

			Convey("Then smaller values win", func() {
				So(err, ShouldBeNil)
				So(est.Factor, ShouldAlmostEqual, 4.0, 1e-12)
			})
		})

		Convey("When negating scores and flipping the orientation", func() {
			current := []float64{0.9, 0.7, 0.8, 0.6}
			prev := []float64{0.5, 0.8, 0.6, 0.7}
			negate := func(in []float64) []float64 {
				out := make([]float64, len(in))
				for i, v := range in {
					out[i] = -v
				}
				return out
			}

			a, errA := bayes.Compare(current, prev, true)
			b, errB := bayes.Compare(negate(current), negate(prev), false)

			Convey("Then the estimates are identical", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(a, ShouldResemble, b)
			})
		})

		Convey("When win counts increase", func() {
			prev := []float64{5, 5, 5, 5, 5}

			flat, _ := bayes.Compare([]float64{6, 4, 4, 4, 4}, prev, true)
			better, _ := bayes.Compare([]float64{6, 6, 6, 4, 4}, prev, true)
			best, _ := bayes.Compare([]float64{6, 6, 6, 6, 6}, prev, true)

			Convey("Then the factor is non-decreasing in the win fraction", func() {
				So(flat.Factor, ShouldBeLessThanOrEqualTo, better.Factor)
				So(better.Factor, ShouldBeLessThanOrEqualTo, best.Factor)
			})
		})

		Convey("When increasing the threshold", func() {
			current := []float64{2, 2, 2, 1}
			prev := []float64{1, 1, 1, 2}

			est, err := bayes.Compare(current, prev, true)
			So(err, ShouldBeNil)

			Convey("Then a met cutoff can only turn unmet, never the reverse", func() {
				met := est.MeetsCutoff(1)
				for _, threshold := range []float64{1, 2, 3, 5, 10, 100} {
					next := est.MeetsCutoff(threshold)
					So(next == true && met == false, ShouldBeFalse)
					met = next
				}
			})
		})

		Convey("When lengths differ", func() {
			_, err := bayes.Compare([]float64{1, 2}, []float64{1}, true)

			Convey("Then it fails with the length-mismatch sentinel", func() {
				So(errors.Is(err, bayes.ErrLengthMismatch), ShouldBeTrue)
			})
		})

		Convey("When distributions are empty", func() {
			_, err := bayes.Compare(nil, nil, true)

			Convey("Then it fails", func() {
				So(errors.Is(err, bayes.ErrLengthMismatch), ShouldBeTrue)
			})
		})
	})
}
