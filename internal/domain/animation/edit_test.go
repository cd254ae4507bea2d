package animation_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/goalguessr/internal/domain/animation"
)

func holders(a *animation.Animation) []string {
	out := make([]string, 0, len(a.Keyframes))
	for _, kf := range a.Keyframes {
		out = append(out, kf.Positions[animation.Ball].Holder)
	}
	return out
}

func times(a *animation.Animation) []int {
	out := make([]int, 0, len(a.Keyframes))
	for _, kf := range a.Keyframes {
		out = append(out, kf.Time)
	}
	return out
}

func TestNew(t *testing.T) {
	Convey("Given a new animation", t, func() {
		a := animation.New()

		Convey("Then it is the empty template", func() {
			So(a.Duration, ShouldEqual, animation.DefaultDuration)
			So(a.Pitch, ShouldResemble, animation.Pitch{Width: 100, Height: 65})
			So(a.Players, ShouldBeEmpty)
			So(a.Events, ShouldBeEmpty)
			So(a.Keyframes, ShouldHaveLength, 1)
			So(a.Keyframes[0].Time, ShouldEqual, 0)
			So(a.Keyframes[0].Positions[animation.Ball], ShouldResemble, animation.Position{X: 50, Y: 32.5})
		})
	})
}

func TestPlayers(t *testing.T) {
	Convey("Given an animation with two keyframes", t, func() {
		a := animation.New()
		a.AddKeyframe(2000)

		Convey("When the first player is added", func() {
			p1 := a.AddPlayer("https://flagcdn.com/w80/no.png")

			Convey("Then it sits at the first formation slot everywhere and holds the ball", func() {
				So(p1, ShouldEqual, "p1")
				for _, kf := range a.Keyframes {
					So(kf.Positions[p1], ShouldResemble, animation.Position{X: 70, Y: 32.5})
					So(kf.Positions[animation.Ball], ShouldResemble, animation.Position{X: 70, Y: 32.5, Holder: p1})
				}
			})

			Convey("And more players follow the formation", func() {
				p2 := a.AddPlayer("")
				p3 := a.AddPlayer("")
				So(p2, ShouldEqual, "p2")
				So(p3, ShouldEqual, "p3")
				So(a.Keyframes[1].Positions[p2], ShouldResemble, animation.Position{X: 60, Y: 20})
				So(a.Keyframes[1].Positions[p3], ShouldResemble, animation.Position{X: 60, Y: 45})
				So(holders(a), ShouldResemble, []string{p1, p1})
			})
		})

		Convey("When a player is removed and another added", func() {
			a.AddPlayer("")
			a.AddPlayer("")
			So(a.RemovePlayer("p1"), ShouldBeTrue)
			id := a.AddPlayer("")

			Convey("Then ids stay unique", func() {
				So(id, ShouldEqual, "p3")
				So(a.Players, ShouldResemble, []animation.Player{{ID: "p2"}, {ID: "p3"}})
			})

			Convey("Then the next player inherits the ball", func() {
				So(holders(a), ShouldResemble, []string{"p2", "p2"})
			})
		})

		Convey("When the seventh player is added", func() {
			var id string
			for range 7 {
				id = a.AddPlayer("")
			}

			Convey("Then the formation wraps around", func() {
				So(a.Keyframes[0].Positions[id], ShouldResemble, animation.DefaultPosition(0))
			})
		})

		Convey("Then images can be set on known players only", func() {
			id := a.AddPlayer("")
			So(a.SetPlayerImage(id, "https://flagcdn.com/w80/ar.png"), ShouldBeTrue)
			So(a.Players[0].ImageURL, ShouldEqual, "https://flagcdn.com/w80/ar.png")
			So(a.SetPlayerImage("nobody", "x"), ShouldBeFalse)
			So(a.RemovePlayer("nobody"), ShouldBeFalse)
		})
	})
}

func TestRemovePlayerDropsEvents(t *testing.T) {
	Convey("Given a pass from p1 to p2 and a shot by p2", t, func() {
		a := animation.New()
		p1, p2, p3 := a.AddPlayer(""), a.AddPlayer(""), a.AddPlayer("")
		a.AddKeyframe(1000)
		a.AddKeyframe(2000)
		a.AddKeyframe(3000)
		So(a.AddEvent(animation.Event{Time: 1000, From: p1, Action: animation.Pass{To: p2}}), ShouldBeTrue)
		So(a.AddEvent(animation.Event{Time: 2000, From: p2, Action: animation.Shot{}}), ShouldBeTrue)
		So(a.AddEvent(animation.Event{Time: 3000, From: p3, Action: animation.Dribble{}}), ShouldBeTrue)
		So(holders(a), ShouldResemble, []string{p1, p1, p2, ""})

		Convey("When p2 is removed", func() {
			a.RemovePlayer(p2)

			Convey("Then every event involving p2 is gone", func() {
				So(a.Events, ShouldHaveLength, 1)
				So(a.Events[0].From, ShouldEqual, p3)
			})

			Convey("Then no keyframe keeps a position for p2", func() {
				for _, kf := range a.Keyframes {
					_, ok := kf.Positions[p2]
					So(ok, ShouldBeFalse)
				}
			})

			Convey("Then possession is recomputed", func() {
				So(holders(a), ShouldResemble, []string{p1, p1, p1, p1})
			})
		})

		Convey("When every player is removed", func() {
			a.RemovePlayer(p1)
			a.RemovePlayer(p2)
			a.RemovePlayer(p3)

			Convey("Then nobody holds the ball", func() {
				So(holders(a), ShouldResemble, []string{"", "", "", ""})
				So(a.Events, ShouldBeEmpty)
			})
		})
	})
}

func TestPositions(t *testing.T) {
	Convey("Given a player holding the ball", t, func() {
		a := animation.New()
		p1 := a.AddPlayer("")
		p2 := a.AddPlayer("")

		Convey("When the holder moves off the pitch", func() {
			So(a.UpdatePlayerPosition(0, p1, 120, -5), ShouldBeTrue)

			Convey("Then the position is clamped and the ball follows", func() {
				So(a.Keyframes[0].Positions[p1], ShouldResemble, animation.Position{X: 100, Y: 0})
				So(a.Keyframes[0].Positions[animation.Ball], ShouldResemble, animation.Position{X: 100, Y: 0, Holder: p1})
			})
		})

		Convey("When another player moves", func() {
			a.UpdatePlayerPosition(0, p2, 10, 10)

			Convey("Then the ball stays", func() {
				So(a.Keyframes[0].Positions[animation.Ball], ShouldResemble, animation.Position{X: 70, Y: 32.5, Holder: p1})
			})
		})

		Convey("Then the held ball cannot be moved directly", func() {
			So(a.UpdateBallPosition(0, 1, 1), ShouldBeFalse)
		})

		Convey("Then out of range edits are ignored", func() {
			So(a.UpdatePlayerPosition(5, p1, 1, 1), ShouldBeFalse)
			So(a.UpdatePlayerPosition(0, "ghost", 1, 1), ShouldBeFalse)
			So(a.UpdateBallPosition(-1, 1, 1), ShouldBeFalse)
		})

		Convey("When the ball is loose after a shot", func() {
			a.AddKeyframe(2000)
			a.AddEvent(animation.Event{Time: 0, From: p1, Action: animation.Shot{}})
			So(a.UpdateBallPosition(1, 99, 70), ShouldBeTrue)

			Convey("Then it can be placed, clamped to the pitch", func() {
				So(a.Keyframes[1].Positions[animation.Ball], ShouldResemble, animation.Position{X: 99, Y: 65})
			})
		})
	})
}

func TestKeyframes(t *testing.T) {
	Convey("Given an animation with one player", t, func() {
		a := animation.New()
		p1 := a.AddPlayer("")
		p2 := a.AddPlayer("")

		Convey("When a keyframe is added at the midpoint", func() {
			a.UpdatePlayerPosition(0, p1, 40, 30)
			idx := a.AddKeyframe(a.Midpoint())

			Convey("Then it is inserted in order with copied positions", func() {
				So(idx, ShouldEqual, 1)
				So(a.Keyframes[1].Time, ShouldEqual, 2500)
				So(a.Keyframes[1].Positions[p1], ShouldResemble, animation.Position{X: 40, Y: 30})
				So(holders(a), ShouldResemble, []string{p1, p1})
			})

			Convey("And edits to the copy do not leak back", func() {
				a.UpdatePlayerPosition(1, p1, 1, 1)
				So(a.Keyframes[0].Positions[p1], ShouldResemble, animation.Position{X: 40, Y: 30})
			})
		})

		Convey("When keyframes are added out of order", func() {
			a.AddKeyframe(3000)
			idx := a.AddKeyframe(1000)
			a.AddKeyframe(99_999)

			Convey("Then they are kept sorted and clamped", func() {
				So(idx, ShouldEqual, 1)
				So(times(a), ShouldResemble, []int{0, 1000, 3000, 5000})
			})
		})

		Convey("Given events anchored to keyframes", func() {
			a.AddKeyframe(1000)
			a.AddKeyframe(2000)
			a.AddKeyframe(3000)
			a.AddEvent(animation.Event{Time: 1000, From: p1, Action: animation.Pass{To: p2}})

			Convey("When a keyframe is removed", func() {
				So(a.RemoveKeyframe(1), ShouldBeTrue)

				Convey("Then its events go with it and possession is recomputed", func() {
					So(times(a), ShouldResemble, []int{0, 2000, 3000})
					So(a.Events, ShouldBeEmpty)
					So(holders(a), ShouldResemble, []string{p1, p1, p1})
				})
			})

			Convey("Then keyframe 0 cannot be removed", func() {
				So(a.RemoveKeyframe(0), ShouldBeFalse)
				So(a.RemoveKeyframe(9), ShouldBeFalse)
				So(a.Keyframes, ShouldHaveLength, 4)
			})

			Convey("When a keyframe is moved later", func() {
				idx := a.UpdateKeyframeTime(1, 2500)

				Convey("Then keyframes and events are re-sorted", func() {
					So(idx, ShouldEqual, 2)
					So(times(a), ShouldResemble, []int{0, 2000, 2500, 3000})
					So(a.Events[0].Time, ShouldEqual, 2500)
					So(holders(a), ShouldResemble, []string{p1, p1, p1, p2})
				})
			})

			Convey("When a keyframe is moved past the end", func() {
				idx := a.UpdateKeyframeTime(1, 60_000)

				Convey("Then it is clamped to the duration", func() {
					So(idx, ShouldEqual, 3)
					So(times(a), ShouldResemble, []int{0, 2000, 3000, 5000})
				})
			})

			Convey("Then keyframe 0 keeps its time", func() {
				So(a.UpdateKeyframeTime(0, 500), ShouldEqual, -1)
				So(a.UpdateKeyframeTime(4, 500), ShouldEqual, -1)
				So(a.Keyframes[0].Time, ShouldEqual, 0)
			})
		})

		Convey("When a single keyframe remains", func() {
			So(a.RemoveKeyframe(0), ShouldBeFalse)
			So(a.Keyframes, ShouldHaveLength, 1)
		})
	})
}

func TestEvents(t *testing.T) {
	Convey("Given three players over four keyframes", t, func() {
		a := animation.New()
		p1, p2, p3 := a.AddPlayer(""), a.AddPlayer(""), a.AddPlayer("")
		a.AddKeyframe(1000)
		a.AddKeyframe(2000)
		a.AddKeyframe(3000)

		Convey("When a pass and a shot are added", func() {
			a.AddEvent(animation.Event{Time: 2000, From: p2, Action: animation.Shot{Target: "left:center"}})
			a.AddEvent(animation.Event{Time: 1000, From: p1, Action: animation.Pass{To: p2}})

			Convey("Then events are sorted and the shot is a goal", func() {
				So(a.Events, ShouldHaveLength, 2)
				So(a.Events[0].Type(), ShouldEqual, animation.EventPass)
				So(a.Events[1].Action, ShouldResemble, animation.Shot{Target: "left:center", Result: animation.ResultGoal})
			})

			Convey("Then the ball follows the pass and is loose after the shot", func() {
				So(holders(a), ShouldResemble, []string{p1, p1, p2, ""})
				ball := a.Keyframes[2].Positions[animation.Ball]
				So(ball.X, ShouldEqual, a.Keyframes[2].Positions[p2].X)
			})

			Convey("When the same actor acts again at the same time", func() {
				a.AddEvent(animation.Event{Time: 1000, From: p1, Action: animation.Pass{To: p3}})

				Convey("Then the earlier action is replaced", func() {
					So(a.Events, ShouldHaveLength, 2)
					So(a.Events[0].Action, ShouldResemble, animation.Pass{To: p3})
					So(holders(a)[2], ShouldEqual, p3)
				})
			})

			Convey("When the pass is removed", func() {
				So(a.RemoveEvent(1000, p1), ShouldBeTrue)
				So(a.RemoveEvent(1000, p1), ShouldBeFalse)

				Convey("Then possession is recomputed", func() {
					So(holders(a), ShouldResemble, []string{p1, p1, p1, ""})
				})
			})

			Convey("When a curve is applied", func() {
				So(a.UpdateEventCurve(1000, p1, 3), ShouldBeTrue)
				So(a.UpdateEventCurve(1000, p3, 0.5), ShouldBeFalse)

				Convey("Then it is clamped", func() {
					So(a.Events[0].Curve, ShouldEqual, 1)
				})
			})
		})

		Convey("Then events by or to unknown players are rejected", func() {
			So(a.AddEvent(animation.Event{Time: 0, From: "ghost", Action: animation.Dribble{}}), ShouldBeFalse)
			So(a.AddEvent(animation.Event{Time: 0, From: p1, Action: animation.Pass{To: "ghost"}}), ShouldBeFalse)
			So(a.AddEvent(animation.Event{Time: 0, From: p1}), ShouldBeFalse)
			So(a.Events, ShouldBeEmpty)
		})

		Convey("When the duration shrinks", func() {
			a.AddEvent(animation.Event{Time: 3000, From: p1, Action: animation.Pass{To: p3}})
			d := a.SetDuration(2500)

			Convey("Then later keyframes and events are pulled back", func() {
				So(d, ShouldEqual, 2500)
				So(times(a), ShouldResemble, []int{0, 1000, 2000, 2500})
				So(a.Events[0].Time, ShouldEqual, 2500)
			})
		})

		Convey("Then the duration is clamped", func() {
			So(a.SetDuration(10), ShouldEqual, animation.MinDuration)
			So(a.SetDuration(90_000), ShouldEqual, animation.MaxDuration)
		})
	})
}
