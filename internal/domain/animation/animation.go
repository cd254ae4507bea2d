// Package animation models the schematic reconstruction of one goal: a player
// roster, timed keyframes of positions, and the pass/shot/dribble events that
// decide who holds the ball. Ball holders stored in keyframes are derived from
// the events and recomputed by every mutation that could change them.
package animation

// Ball is the reserved position key of the ball in every keyframe.
const Ball = "ball"

// Timeline and pitch bounds.
const (
	DefaultDuration = 5000
	MinDuration     = 1000
	MaxDuration     = 30000

	PitchWidth  = 100.0
	PitchHeight = 65.0
)

// Ball rest position used when a keyframe has no ball entry yet.
const (
	defaultBallX = 50.0
	defaultBallY = 32.5
)

// Animation is the authoritative description of one goal's reconstruction.
// It is not safe for concurrent mutation; callers serialize edits.
type Animation struct {
	Duration  int        `json:"duration"`
	Pitch     Pitch      `json:"pitch"`
	Players   []Player   `json:"players"`
	Keyframes []Keyframe `json:"keyframes"`
	Events    []Event    `json:"events"`
}

// Pitch is the logical coordinate space positions live in.
type Pitch struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Player is a token on the pitch. ImageURL points at a badge or a flag.
type Player struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Keyframe is a timestamped snapshot of every entity's position.
type Keyframe struct {
	Time      int                 `json:"time"`
	Positions map[string]Position `json:"positions"`
}

// Position is a point on the pitch. Holder is only set on the ball entry.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Holder string  `json:"holder,omitempty"`
}

// New returns an empty animation with a single keyframe at time 0 holding
// the ball on the centre spot.
func New() *Animation {
	return &Animation{
		Duration: DefaultDuration,
		Pitch:    Pitch{Width: PitchWidth, Height: PitchHeight},
		Players:  []Player{},
		Keyframes: []Keyframe{{
			Time:      0,
			Positions: map[string]Position{Ball: {X: defaultBallX, Y: defaultBallY}},
		}},
		Events: []Event{},
	}
}

// Clone returns a deep copy of a.
func (a *Animation) Clone() *Animation {
	if a == nil {
		return nil
	}
	c := &Animation{Duration: a.Duration, Pitch: a.Pitch}
	if a.Players != nil {
		c.Players = append([]Player{}, a.Players...)
	}
	if a.Keyframes != nil {
		c.Keyframes = make([]Keyframe, len(a.Keyframes))
		for i, kf := range a.Keyframes {
			c.Keyframes[i] = kf.clone()
		}
	}
	if a.Events != nil {
		c.Events = append([]Event{}, a.Events...)
	}
	return c
}

func (kf Keyframe) clone() Keyframe {
	out := Keyframe{Time: kf.Time}
	if kf.Positions != nil {
		out.Positions = make(map[string]Position, len(kf.Positions))
		for k, v := range kf.Positions {
			out.Positions[k] = v
		}
	}
	return out
}

// HasPlayer reports whether id is in the roster.
func (a *Animation) HasPlayer(id string) bool {
	return a.playerIndex(id) >= 0
}

func (a *Animation) playerIndex(id string) int {
	for i, p := range a.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// InitialHolder is the first player in roster order, or "" without players.
func (a *Animation) InitialHolder() string {
	if len(a.Players) == 0 {
		return ""
	}
	return a.Players[0].ID
}

func (a *Animation) bounds() (w, h float64) {
	w, h = a.Pitch.Width, a.Pitch.Height
	if w <= 0 {
		w = PitchWidth
	}
	if h <= 0 {
		h = PitchHeight
	}
	return w, h
}

func clamp[T int | float64](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
