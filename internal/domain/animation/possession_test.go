package animation_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/goalguessr/internal/domain/animation"
)

func TestHolderAt(t *testing.T) {
	Convey("Given a pass at time 0 from p1 to p2", t, func() {
		events := []animation.Event{{Time: 0, From: "p1", Action: animation.Pass{To: "p2"}}}

		Convey("Then the pass is not visible at its own time", func() {
			So(animation.HolderAt(events, "p1", 0), ShouldEqual, "p1")
		})

		Convey("Then the pass is visible right after", func() {
			So(animation.HolderAt(events, "p1", 1), ShouldEqual, "p2")
		})
	})

	Convey("Given a timeline with every event kind", t, func() {
		events := []animation.Event{
			{Time: 1000, From: "p1", Action: animation.Pass{To: "p2"}},
			{Time: 1500, From: "p2", Action: animation.Dribble{}},
			{Time: 2000, From: "p2", Action: animation.Pass{}},
			{Time: 2500, From: "p2", Action: animation.Shot{Result: animation.ResultGoal}},
		}

		Convey("Dribbles and passes into space keep the holder", func() {
			So(animation.HolderAt(events, "p1", 1800), ShouldEqual, "p2")
			So(animation.HolderAt(events, "p1", 2200), ShouldEqual, "p2")
		})

		Convey("A shot leaves the ball loose", func() {
			So(animation.HolderAt(events, "p1", 2501), ShouldEqual, "")
		})

		Convey("Unsorted input is resolved in time order", func() {
			shuffled := []animation.Event{events[3], events[0], events[2], events[1]}
			So(animation.HolderAt(shuffled, "p1", 2000), ShouldEqual, "p2")
			So(animation.HolderAt(shuffled, "p1", 3000), ShouldEqual, "")
			So(shuffled[0].Time, ShouldEqual, 2500)
		})
	})

	Convey("Given no players and no events", t, func() {
		So(animation.HolderAt(nil, "", 1000), ShouldEqual, "")
	})
}

func TestRecalculateHolders(t *testing.T) {
	Convey("Given an animation whose stored holders are stale", t, func() {
		a := sample(t)
		for i := range a.Keyframes {
			ball := a.Keyframes[i].Positions[animation.Ball]
			ball.Holder = "p3"
			a.Keyframes[i].Positions[animation.Ball] = ball
		}

		Convey("When holders are recalculated", func() {
			a.RecalculateHolders()

			Convey("Then they follow the event timeline", func() {
				got := make([]string, 0, len(a.Keyframes))
				for _, kf := range a.Keyframes {
					got = append(got, kf.Positions[animation.Ball].Holder)
				}
				So(got, ShouldResemble, []string{"p1", "p2", "p3", "", ""})
			})

			Convey("Then a held ball sits on its holder", func() {
				kf := a.Keyframes[1]
				So(kf.Positions[animation.Ball].X, ShouldEqual, kf.Positions["p2"].X)
				So(kf.Positions[animation.Ball].Y, ShouldEqual, kf.Positions["p2"].Y)
			})

			Convey("Then a loose ball keeps its position", func() {
				So(a.Keyframes[4].Positions[animation.Ball].X, ShouldEqual, 99)
			})
		})
	})
}
