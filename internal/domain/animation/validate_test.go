package animation_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/goalguessr/internal/domain/animation"
)

var meta = animation.Metadata{
	Team:        "Manchester United",
	Year:        1999,
	Scorer:      "Ole Gunnar Solskjaer",
	Competition: "Champions League Final",
	Opponent:    "Bayern Munich",
}

func TestValidate(t *testing.T) {
	Convey("Given an empty animation and empty metadata", t, func() {
		v := animation.Validate(animation.New(), animation.Metadata{}, 2026)

		Convey("Then every missing piece is reported", func() {
			So(v.Valid, ShouldBeFalse)
			So(v.Errors, ShouldContain, "Add at least one player")
			So(v.Errors, ShouldContain, "Add at least 2 keyframes")
			So(v.Errors, ShouldContain, "Add a shot event")
			So(v.Errors, ShouldContain, "Enter the team name")
			So(v.Errors, ShouldContain, "Enter the goalscorer name")
			So(v.Errors, ShouldContain, "Enter a valid year")
			So(v.Errors, ShouldContain, "Enter the competition")
			So(v.Errors, ShouldContain, "Enter the opponent")
		})
	})

	Convey("Given a complete animation", t, func() {
		a := sample(t)

		Convey("Then it is valid", func() {
			v := animation.Validate(a, meta, 2026)
			So(v.Errors, ShouldBeEmpty)
			So(v.Valid, ShouldBeTrue)
		})

		Convey("When the shot is removed", func() {
			a.RemoveEvent(4000, "p3")

			Convey("Then the missing shot is reported", func() {
				v := animation.Validate(a, meta, 2026)
				So(v.Valid, ShouldBeFalse)
				So(v.Errors, ShouldContain, "Add a shot event")
			})
		})

		Convey("When the year is in the future", func() {
			m := meta
			m.Year = 2028

			Convey("Then only next year is allowed", func() {
				So(animation.Validate(a, m, 2026).Errors, ShouldResemble, []string{"Enter a valid year"})
				m.Year = 2027
				So(animation.Validate(a, m, 2026).Valid, ShouldBeTrue)
			})
		})

		Convey("When metadata is blank space", func() {
			m := meta
			m.Opponent = "   "
			So(animation.Validate(a, m, 2026).Errors, ShouldResemble, []string{"Enter the opponent"})
		})

		Convey("When the document was edited by hand", func() {
			a.Keyframes[2].Time = 1000
			delete(a.Keyframes[3].Positions, "p2")
			a.Events[2].Action = animation.Shot{Target: "middle:top", Result: "woodwork"}
			a.Events = append(a.Events, animation.Event{Time: 100, From: "p9", Action: animation.Dribble{}})

			Convey("Then each problem is listed", func() {
				errs := a.Problems()
				So(errs, ShouldContain, "Keyframe at 1000 ms is not after the previous keyframe")
				So(errs, ShouldContain, "Keyframe at 4500 ms has no position for p2")
				So(errs, ShouldContain, `Shot at 4000 ms has invalid target "middle:top"`)
				So(errs, ShouldContain, `Shot at 4000 ms has unknown result "woodwork"`)
				So(errs, ShouldContain, `Event at 100 ms is by unknown player "p9"`)
			})
		})

		Convey("When the first keyframe does not start at 0", func() {
			a.Keyframes[0].Time = 10
			So(a.Problems(), ShouldContain, "First keyframe must be at 0 ms")
		})
	})
}

func TestParseShotTarget(t *testing.T) {
	Convey("Given shot target strings", t, func() {
		Convey("A side and a grid cell parse", func() {
			tgt, err := animation.ParseShotTarget("left:top-right")
			So(err, ShouldBeNil)
			So(tgt, ShouldResemble, animation.ShotTarget{Side: "left", Zone: "top-right"})
			So(tgt.String(), ShouldEqual, "left:top-right")
		})

		Convey("Malformed targets are rejected", func() {
			for _, s := range []string{"", "left", "up:center", "right:middle", "right:center:x"} {
				_, err := animation.ParseShotTarget(s)
				So(errors.Is(err, animation.ErrInvalidShotTarget), ShouldBeTrue)
			}
		})
	})
}
