package animation

import (
	"slices"
	"sort"
)

// HolderAt returns who holds the ball at time t. It starts from initial and
// applies every event strictly before t in time order: a pass with a target
// hands the ball over, a shot leaves it loose, a dribble changes nothing.
// An event at exactly t is not yet visible. "" means nobody holds the ball.
func HolderAt(events []Event, initial string, t int) string {
	if !sort.SliceIsSorted(events, func(i, j int) bool { return events[i].Time < events[j].Time }) {
		events = slices.Clone(events)
		sortEvents(events)
	}
	holder := initial
	for _, ev := range events {
		if ev.Time >= t {
			break
		}
		switch act := ev.Action.(type) {
		case Pass:
			if act.To != "" {
				holder = act.To
			}
		case Shot:
			holder = ""
		}
	}
	return holder
}

// HolderAt resolves possession at t from a's own events and roster.
func (a *Animation) HolderAt(t int) string {
	return HolderAt(a.Events, a.InitialHolder(), t)
}

// RecalculateHolders rewrites the ball entry of every keyframe from the
// event timeline. A held ball sits on its holder; a loose ball keeps its
// last position.
func (a *Animation) RecalculateHolders() {
	initial := a.InitialHolder()
	for i := range a.Keyframes {
		kf := &a.Keyframes[i]
		if kf.Positions == nil {
			kf.Positions = make(map[string]Position)
		}
		ball, ok := kf.Positions[Ball]
		if !ok {
			ball = Position{X: defaultBallX, Y: defaultBallY}
		}
		holder := HolderAt(a.Events, initial, kf.Time)
		if pos, ok := kf.Positions[holder]; ok && holder != "" {
			ball.X, ball.Y = pos.X, pos.Y
		}
		ball.Holder = holder
		kf.Positions[Ball] = ball
	}
}

func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool { return events[i].Time < events[j].Time })
}
