package animation

// EventType is the wire name of an event kind.
type EventType string

const (
	EventPass    EventType = "pass"
	EventShot    EventType = "shot"
	EventDribble EventType = "dribble"
)

// ShotResult is the outcome of a shot.
type ShotResult string

const (
	ResultGoal ShotResult = "goal"
	ResultSave ShotResult = "save"
	ResultMiss ShotResult = "miss"
)

// Valid reports whether r is a known result.
func (r ShotResult) Valid() bool {
	switch r {
	case ResultGoal, ResultSave, ResultMiss:
		return true
	}
	return false
}

// Curve bounds. 0 is a straight path.
const (
	MinCurve = -1.0
	MaxCurve = 1.0
)

// Event is a discrete action by one player at a keyframe time. Action holds
// the kind specific fields and is one of Pass, Shot or Dribble.
type Event struct {
	Time   int
	From   string
	Curve  float64
	Action Action
}

// Type returns the kind of the event, or "" when Action is unset.
func (e Event) Type() EventType {
	if e.Action == nil {
		return ""
	}
	return e.Action.Type()
}

// Action is implemented by Pass, Shot and Dribble only.
type Action interface {
	Type() EventType
	action()
}

// Pass moves the ball to another player. An empty To passes into space.
type Pass struct {
	To string
}

// Shot releases the ball towards goal. Target is an optional "side:zone"
// string, see ParseShotTarget.
type Shot struct {
	Target string
	Result ShotResult
}

// Dribble keeps the ball with the acting player.
type Dribble struct{}

func (Pass) Type() EventType    { return EventPass }
func (Shot) Type() EventType    { return EventShot }
func (Dribble) Type() EventType { return EventDribble }

func (Pass) action()    {}
func (Shot) action()    {}
func (Dribble) action() {}

// references reports whether the event involves player id as actor or
// pass target.
func (e Event) references(id string) bool {
	if e.From == id {
		return true
	}
	p, ok := e.Action.(Pass)
	return ok && p.To == id
}
