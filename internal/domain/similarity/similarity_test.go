package similarity_test

import (
	"testing"

	"github.com/okian/goalguessr/internal/domain/similarity"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDistance(t *testing.T) {
	Convey("Given pairs of strings", t, func() {
		So(similarity.Distance("kitten", "sitting"), ShouldEqual, 3)
		So(similarity.Distance("", "abc"), ShouldEqual, 3)
		So(similarity.Distance("abc", ""), ShouldEqual, 3)
		So(similarity.Distance("flaw", "lawn"), ShouldEqual, 2)
		So(similarity.Distance("same", "same"), ShouldEqual, 0)
	})
}

func TestScore(t *testing.T) {
	Convey("Given identical strings", t, func() {
		So(similarity.Score("arsenal", "arsenal"), ShouldEqual, 1.0)
		So(similarity.Score("", ""), ShouldEqual, 1.0)
	})

	Convey("Given one empty string", t, func() {
		So(similarity.Score("", "chelsea"), ShouldEqual, 0.0)
		So(similarity.Score("chelsea", ""), ShouldEqual, 0.0)
	})

	Convey("Given a single typo in a long name", t, func() {
		score := similarity.Score("liverpol", "liverpool")
		So(score, ShouldAlmostEqual, 8.0/9.0, 1e-9)
	})

	Convey("Given the arguments in either order", t, func() {
		So(similarity.Score("barcelona", "barca"), ShouldEqual, similarity.Score("barca", "barcelona"))
	})

	Convey("Given multi-byte runes", t, func() {
		// one substitution over six runes
		So(similarity.Score("müller", "muller"), ShouldAlmostEqual, 5.0/6.0, 1e-9)
	})

	Convey("Given unrelated strings", t, func() {
		score := similarity.Score("arsenal", "chelsea")
		So(score, ShouldBeLessThan, 0.5)
		So(score, ShouldBeGreaterThanOrEqualTo, 0.0)
	})
}
