package animation

import (
	"sort"
	"strconv"
)

// formation spreads new players over the attacking half, cycling when the
// roster outgrows it.
var formation = []Position{
	{X: 70, Y: 32.5},
	{X: 60, Y: 20},
	{X: 60, Y: 45},
	{X: 75, Y: 15},
	{X: 75, Y: 50},
	{X: 55, Y: 32.5},
}

// DefaultPosition returns the formation slot for the i-th player.
func DefaultPosition(i int) Position {
	if i < 0 {
		i = 0
	}
	return formation[i%len(formation)]
}

// AddPlayer appends a player with a fresh "p<n>" id and places it at its
// formation slot in every keyframe. The first player receives the ball.
func (a *Animation) AddPlayer(imageURL string) string {
	id := a.nextPlayerID()
	first := len(a.Players) == 0
	a.Players = append(a.Players, Player{ID: id, ImageURL: imageURL})

	pos := DefaultPosition(len(a.Players) - 1)
	for i := range a.Keyframes {
		if a.Keyframes[i].Positions == nil {
			a.Keyframes[i].Positions = make(map[string]Position)
		}
		a.Keyframes[i].Positions[id] = pos
	}
	if first {
		a.RecalculateHolders()
	}
	return id
}

func (a *Animation) nextPlayerID() string {
	for n := len(a.Players) + 1; ; n++ {
		id := "p" + strconv.Itoa(n)
		if !a.HasPlayer(id) {
			return id
		}
	}
}

// RemovePlayer drops the player, its positions and every event that
// references it, then recomputes possession.
func (a *Animation) RemovePlayer(id string) bool {
	idx := a.playerIndex(id)
	if idx < 0 {
		return false
	}
	a.Players = append(a.Players[:idx:idx], a.Players[idx+1:]...)
	for i := range a.Keyframes {
		delete(a.Keyframes[i].Positions, id)
	}
	kept := a.Events[:0]
	for _, ev := range a.Events {
		if !ev.references(id) {
			kept = append(kept, ev)
		}
	}
	a.Events = kept
	a.RecalculateHolders()
	return true
}

// SetPlayerImage sets or clears a player's badge or flag URL.
func (a *Animation) SetPlayerImage(id, imageURL string) bool {
	idx := a.playerIndex(id)
	if idx < 0 {
		return false
	}
	a.Players[idx].ImageURL = imageURL
	return true
}

// UpdatePlayerPosition moves a player within keyframe kf, clamped to the
// pitch. The ball follows if that player holds it there.
func (a *Animation) UpdatePlayerPosition(kf int, id string, x, y float64) bool {
	if kf < 0 || kf >= len(a.Keyframes) || !a.HasPlayer(id) {
		return false
	}
	w, h := a.bounds()
	x, y = clamp(x, 0, w), clamp(y, 0, h)

	positions := a.Keyframes[kf].Positions
	if positions == nil {
		positions = make(map[string]Position)
		a.Keyframes[kf].Positions = positions
	}
	positions[id] = Position{X: x, Y: y}
	if ball, ok := positions[Ball]; ok && ball.Holder == id {
		ball.X, ball.Y = x, y
		positions[Ball] = ball
	}
	return true
}

// UpdateBallPosition places a loose ball within keyframe kf. A held ball
// follows its holder and cannot be moved directly.
func (a *Animation) UpdateBallPosition(kf int, x, y float64) bool {
	if kf < 0 || kf >= len(a.Keyframes) {
		return false
	}
	positions := a.Keyframes[kf].Positions
	if positions == nil {
		positions = make(map[string]Position)
		a.Keyframes[kf].Positions = positions
	}
	ball := positions[Ball]
	if ball.Holder != "" {
		return false
	}
	w, h := a.bounds()
	positions[Ball] = Position{X: clamp(x, 0, w), Y: clamp(y, 0, h)}
	return true
}

// Midpoint is the default time for a new keyframe.
func (a *Animation) Midpoint() int {
	return a.Duration / 2
}

// AddKeyframe inserts a keyframe at time t, clamped to the timeline, after
// any keyframes at or before t. Positions are copied from the preceding
// keyframe. It returns the new keyframe's index.
func (a *Animation) AddKeyframe(t int) int {
	t = clamp(t, 0, a.Duration)
	idx := sort.Search(len(a.Keyframes), func(i int) bool { return a.Keyframes[i].Time > t })

	kf := Keyframe{Time: t, Positions: map[string]Position{}}
	if len(a.Keyframes) > 0 {
		kf = a.Keyframes[max(0, idx-1)].clone()
		kf.Time = t
	}
	a.Keyframes = insertKeyframe(a.Keyframes, idx, kf)
	a.RecalculateHolders()
	return idx
}

// RemoveKeyframe deletes keyframe idx and the events anchored to its time.
// Keyframe 0 and the last remaining keyframe cannot be removed.
func (a *Animation) RemoveKeyframe(idx int) bool {
	if idx <= 0 || idx >= len(a.Keyframes) || len(a.Keyframes) <= 1 {
		return false
	}
	removed := a.Keyframes[idx].Time
	a.Keyframes = append(a.Keyframes[:idx:idx], a.Keyframes[idx+1:]...)

	kept := a.Events[:0]
	for _, ev := range a.Events {
		if ev.Time != removed {
			kept = append(kept, ev)
		}
	}
	a.Events = kept
	a.RecalculateHolders()
	return true
}

// UpdateKeyframeTime moves keyframe idx to time t, clamped to the timeline,
// carrying its anchored events along. It returns the keyframe's index after
// re-sorting, or -1 when idx is 0 or out of range.
func (a *Animation) UpdateKeyframeTime(idx, t int) int {
	if idx <= 0 || idx >= len(a.Keyframes) {
		return -1
	}
	t = clamp(t, 0, a.Duration)
	kf := a.Keyframes[idx]
	old := kf.Time
	kf.Time = t

	rest := append(a.Keyframes[:idx:idx], a.Keyframes[idx+1:]...)
	// Keyframe 0 stays first even when t is 0.
	at := sort.Search(len(rest), func(i int) bool { return i > 0 && rest[i].Time > t })
	a.Keyframes = insertKeyframe(rest, at, kf)

	for i := range a.Events {
		if a.Events[i].Time == old {
			a.Events[i].Time = t
		}
	}
	sortEvents(a.Events)
	a.RecalculateHolders()
	return at
}

// AddEvent records ev at its time, replacing any event by the same actor at
// that time. The actor and any pass target must be on the roster. A shot
// without a result counts as a goal.
func (a *Animation) AddEvent(ev Event) bool {
	if ev.Action == nil || !a.HasPlayer(ev.From) {
		return false
	}
	switch act := ev.Action.(type) {
	case Pass:
		if act.To != "" && !a.HasPlayer(act.To) {
			return false
		}
	case Shot:
		if act.Result == "" {
			act.Result = ResultGoal
			ev.Action = act
		}
	}
	ev.Time = clamp(ev.Time, 0, a.Duration)
	ev.Curve = clamp(ev.Curve, MinCurve, MaxCurve)

	a.dropEvent(ev.Time, ev.From)
	a.Events = append(a.Events, ev)
	sortEvents(a.Events)
	a.RecalculateHolders()
	return true
}

// RemoveEvent deletes the event by from at time t.
func (a *Animation) RemoveEvent(t int, from string) bool {
	if !a.dropEvent(t, from) {
		return false
	}
	a.RecalculateHolders()
	return true
}

func (a *Animation) dropEvent(t int, from string) bool {
	kept := a.Events[:0]
	for _, ev := range a.Events {
		if ev.Time != t || ev.From != from {
			kept = append(kept, ev)
		}
	}
	found := len(kept) != len(a.Events)
	a.Events = kept
	return found
}

// UpdateEventCurve bends the path of the event by from at time t. The curve
// is clamped to [-1, 1].
func (a *Animation) UpdateEventCurve(t int, from string, curve float64) bool {
	for i := range a.Events {
		if a.Events[i].Time == t && a.Events[i].From == from {
			a.Events[i].Curve = clamp(curve, MinCurve, MaxCurve)
			return true
		}
	}
	return false
}

// SetDuration clamps ms to [MinDuration, MaxDuration] and pulls keyframes
// and events beyond the new end back onto it. It returns the applied value.
func (a *Animation) SetDuration(ms int) int {
	a.Duration = clamp(ms, MinDuration, MaxDuration)
	for i := range a.Keyframes {
		a.Keyframes[i].Time = min(a.Keyframes[i].Time, a.Duration)
	}
	for i := range a.Events {
		a.Events[i].Time = min(a.Events[i].Time, a.Duration)
	}
	a.RecalculateHolders()
	return a.Duration
}

func insertKeyframe(kfs []Keyframe, idx int, kf Keyframe) []Keyframe {
	kfs = append(kfs, Keyframe{})
	copy(kfs[idx+1:], kfs[idx:])
	kfs[idx] = kf
	return kfs
}
