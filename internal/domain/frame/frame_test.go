package frame_test

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vpchung/challengescoring/internal/domain/frame"
)

func TestFrameConstruction(t *testing.T) {
	Convey("Given frame columns", t, func() {
		Convey("When building a well-formed frame", func() {
			f, err := frame.New(
				frame.StringColumn("id", "a", "b", "c"),
				frame.FloatColumn("prediction", 1.0, 2.0, 3.0),
			)

			Convey("Then it should expose rows and columns", func() {
				So(err, ShouldBeNil)
				So(f.Len(), ShouldEqual, 3)
				So(f.Names(), ShouldResemble, []string{"id", "prediction"})
				So(f.Has("prediction"), ShouldBeTrue)
				So(f.Has("confidence"), ShouldBeFalse)
			})

			Convey("Then column accessors should distinguish types", func() {
				So(err, ShouldBeNil)
				ids, ok := f.Strings("id")
				So(ok, ShouldBeTrue)
				So(ids, ShouldResemble, []string{"a", "b", "c"})

				preds, ok := f.Floats("prediction")
				So(ok, ShouldBeTrue)
				So(preds, ShouldResemble, []float64{1.0, 2.0, 3.0})

				_, ok = f.Floats("id")
				So(ok, ShouldBeFalse)
				_, ok = f.Strings("prediction")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When building with no columns", func() {
			_, err := frame.New()

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "at least one column")
			})
		})

		Convey("When building with ragged columns", func() {
			_, err := frame.New(
				frame.StringColumn("id", "a", "b"),
				frame.FloatColumn("prediction", 1.0),
			)

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestFrameKeys(t *testing.T) {
	Convey("Given a frame with identifier columns", t, func() {
		f := frame.MustNew(
			frame.StringColumn("patient", "p1", "p1", "p2"),
			frame.StringColumn("visit", "v1", "v2", "v1"),
			frame.FloatColumn("prediction", 0.1, 0.2, 0.3),
		)

		Convey("When keying on a single column", func() {
			keys, ok := f.Keys([]string{"patient"})

			Convey("Then keys are the column values", func() {
				So(ok, ShouldBeTrue)
				So(keys, ShouldResemble, []string{"p1", "p1", "p2"})
			})
		})

		Convey("When keying on composite columns", func() {
			keys, ok := f.Keys([]string{"patient", "visit"})

			Convey("Then distinct tuples get distinct keys", func() {
				So(ok, ShouldBeTrue)
				So(len(keys), ShouldEqual, 3)
				So(keys[0], ShouldNotEqual, keys[1])
				So(keys[0], ShouldNotEqual, keys[2])
			})
		})

		Convey("When keying on a missing column", func() {
			_, ok := f.Keys([]string{"sample"})

			Convey("Then it should report failure", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestIsMissing(t *testing.T) {
	Convey("Given float values", t, func() {
		Convey("Then NaN and infinities count as missing", func() {
			So(frame.IsMissing(math.NaN()), ShouldBeTrue)
			So(frame.IsMissing(math.Inf(1)), ShouldBeTrue)
			So(frame.IsMissing(math.Inf(-1)), ShouldBeTrue)
			So(frame.IsMissing(0.0), ShouldBeFalse)
			So(frame.IsMissing(-3.5), ShouldBeFalse)
		})
	})
}
