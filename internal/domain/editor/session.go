// Package editor holds the authoring state for one goal draft: the
// animation being built, its metadata, and the cursor fields an authoring
// surface drives. A Session is single-writer; callers serialize edits.
package editor

import (
	"time"

	"github.com/okian/goalguessr/internal/domain/animation"
)

// Session is one author's in-memory draft.
type Session struct {
	anim     *animation.Animation
	meta     animation.Metadata
	keyframe int
	player   string
	preview  bool
	at       int
	now      func() time.Time
}

// Option applies a configuration option to the Session.
type Option func(*Session)

// WithClock sets the clock used for the default and maximum metadata year.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSession creates a session holding an empty animation.
func NewSession(opts ...Option) *Session {
	s := &Session{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset discards the draft and starts from an empty animation.
func (s *Session) Reset() {
	s.anim = animation.New()
	s.meta = animation.Metadata{Year: s.now().Year()}
	s.resetCursor()
}

// Load replaces the draft animation with a copy of a. A missing keyframe
// at time 0 is restored from the empty template, and possession is
// recomputed so stored holders agree with the events.
func (s *Session) Load(a *animation.Animation) {
	if a == nil {
		s.anim = animation.New()
	} else {
		s.anim = a.Clone()
		repairKeyframes(s.anim)
	}
	s.anim.RecalculateHolders()
	s.resetCursor()
}

func repairKeyframes(a *animation.Animation) {
	if len(a.Keyframes) == 0 || a.Keyframes[0].Time != 0 {
		first := animation.New().Keyframes[0]
		a.Keyframes = append([]animation.Keyframe{first}, a.Keyframes...)
	}
	for i := range a.Keyframes {
		if a.Keyframes[i].Positions == nil {
			a.Keyframes[i].Positions = map[string]animation.Position{}
		}
	}
}

// LoadGoal loads an existing goal's metadata and animation for editing.
func (s *Session) LoadGoal(m animation.Metadata, a *animation.Animation) {
	s.Load(a)
	s.meta = m
}

func (s *Session) resetCursor() {
	s.keyframe = 0
	s.player = ""
	s.preview = false
	s.at = 0
}

// Snapshot returns a deep copy of the animation for saving.
func (s *Session) Snapshot() *animation.Animation {
	return s.anim.Clone()
}

// Metadata returns the goal metadata.
func (s *Session) Metadata() animation.Metadata { return s.meta }

// SetMetadata replaces the goal metadata.
func (s *Session) SetMetadata(m animation.Metadata) { s.meta = m }

// Validate reports everything that blocks submission for review.
func (s *Session) Validate() animation.Validation {
	return animation.Validate(s.anim, s.meta, s.now().Year())
}

// SelectedKeyframe is the index edits apply to.
func (s *Session) SelectedKeyframe() int { return s.keyframe }

// SelectKeyframe moves the cursor. Out of range indices are ignored.
func (s *Session) SelectKeyframe(i int) bool {
	if i < 0 || i >= len(s.anim.Keyframes) {
		return false
	}
	s.keyframe = i
	return true
}

// CurrentKeyframe returns a copy of the selected keyframe.
func (s *Session) CurrentKeyframe() animation.Keyframe {
	kf := s.anim.Keyframes[s.keyframe]
	positions := make(map[string]animation.Position, len(kf.Positions))
	for k, v := range kf.Positions {
		positions[k] = v
	}
	return animation.Keyframe{Time: kf.Time, Positions: positions}
}

// PlayerCount is the roster size.
func (s *Session) PlayerCount() int { return len(s.anim.Players) }

// SelectedPlayer returns the selected player id, or "".
func (s *Session) SelectedPlayer() string { return s.player }

// SelectPlayer selects a player; "" clears the selection.
func (s *Session) SelectPlayer(id string) bool {
	if id != "" && !s.anim.HasPlayer(id) {
		return false
	}
	s.player = id
	return true
}

// Previewing reports whether the session is in playback preview.
func (s *Session) Previewing() bool { return s.preview }

// SetPreview toggles playback preview.
func (s *Session) SetPreview(on bool) { s.preview = on }

// PreviewTime is the playback head in milliseconds.
func (s *Session) PreviewTime() int { return s.at }

// SetPreviewTime moves the playback head, clamped to the timeline.
func (s *Session) SetPreviewTime(ms int) int {
	s.at = min(max(ms, 0), s.anim.Duration)
	return s.at
}

// PreviewHolder is who holds the ball at the playback head.
func (s *Session) PreviewHolder() string {
	return s.anim.HolderAt(s.at)
}

// AddPlayer adds a player and returns its id.
func (s *Session) AddPlayer(imageURL string) string {
	return s.anim.AddPlayer(imageURL)
}

// RemovePlayer removes a player, its positions and its events.
func (s *Session) RemovePlayer(id string) bool {
	if !s.anim.RemovePlayer(id) {
		return false
	}
	if s.player == id {
		s.player = ""
	}
	return true
}

// SetPlayerImage sets a player's badge or flag URL.
func (s *Session) SetPlayerImage(id, imageURL string) bool {
	return s.anim.SetPlayerImage(id, imageURL)
}

// UpdatePlayerPosition moves a player in the selected keyframe.
func (s *Session) UpdatePlayerPosition(id string, x, y float64) bool {
	return s.anim.UpdatePlayerPosition(s.keyframe, id, x, y)
}

// UpdateBallPosition moves a loose ball in the selected keyframe.
func (s *Session) UpdateBallPosition(x, y float64) bool {
	return s.anim.UpdateBallPosition(s.keyframe, x, y)
}

// AddKeyframe inserts a keyframe at the timeline midpoint and selects it.
func (s *Session) AddKeyframe() int {
	return s.AddKeyframeAt(s.anim.Midpoint())
}

// AddKeyframeAt inserts a keyframe at ms and selects it.
func (s *Session) AddKeyframeAt(ms int) int {
	s.keyframe = s.anim.AddKeyframe(ms)
	return s.keyframe
}

// RemoveKeyframe removes keyframe i and the events at its time.
func (s *Session) RemoveKeyframe(i int) bool {
	if !s.anim.RemoveKeyframe(i) {
		return false
	}
	if s.keyframe >= len(s.anim.Keyframes) {
		s.keyframe = len(s.anim.Keyframes) - 1
	}
	return true
}

// UpdateKeyframeTime retimes keyframe i and selects it at its new index.
func (s *Session) UpdateKeyframeTime(i, ms int) int {
	idx := s.anim.UpdateKeyframeTime(i, ms)
	if idx >= 0 {
		s.keyframe = idx
	}
	return idx
}

// AddEvent records an action by from at the selected keyframe's time. For
// a pass, to is the receiver; for a shot, to is an optional "side:zone"
// target and the result is a goal; a dribble ignores to.
func (s *Session) AddEvent(kind animation.EventType, from, to string) bool {
	var act animation.Action
	switch kind {
	case animation.EventPass:
		act = animation.Pass{To: to}
	case animation.EventShot:
		act = animation.Shot{Target: to, Result: animation.ResultGoal}
	case animation.EventDribble:
		act = animation.Dribble{}
	default:
		return false
	}
	return s.anim.AddEvent(animation.Event{
		Time:   s.anim.Keyframes[s.keyframe].Time,
		From:   from,
		Action: act,
	})
}

// RemoveEvent deletes the event by from at ms.
func (s *Session) RemoveEvent(ms int, from string) bool {
	return s.anim.RemoveEvent(ms, from)
}

// UpdateEventCurve bends the path of the event by from at ms.
func (s *Session) UpdateEventCurve(ms int, from string, curve float64) bool {
	return s.anim.UpdateEventCurve(ms, from, curve)
}

// SetDuration resizes the timeline and keeps the playback head inside it.
func (s *Session) SetDuration(ms int) int {
	d := s.anim.SetDuration(ms)
	s.at = min(s.at, d)
	return d
}
