package animation

import (
	"encoding/json"
	"fmt"
)

// wireEvent is the flat JSON shape of an event. A shot target travels in "to".
type wireEvent struct {
	Time   int        `json:"time"`
	Type   EventType  `json:"type"`
	From   string     `json:"from"`
	To     string     `json:"to,omitempty"`
	Result ShotResult `json:"result,omitempty"`
	Curve  float64    `json:"curve,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (e Event) MarshalJSON() ([]byte, error) {
	w := wireEvent{Time: e.Time, From: e.From, Curve: e.Curve}
	switch act := e.Action.(type) {
	case Pass:
		w.Type, w.To = EventPass, act.To
	case Shot:
		w.Type, w.To, w.Result = EventShot, act.Target, act.Result
	case Dribble:
		w.Type = EventDribble
	default:
		return nil, fmt.Errorf("event at %dms from %q: %w", e.Time, e.From, ErrMissingEventAction)
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Event) UnmarshalJSON(data []byte) error {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	ev := Event{Time: w.Time, From: w.From, Curve: w.Curve}
	switch w.Type {
	case EventPass:
		ev.Action = Pass{To: w.To}
	case EventShot:
		ev.Action = Shot{Target: w.To, Result: w.Result}
	case EventDribble:
		ev.Action = Dribble{}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEventType, w.Type)
	}
	*e = ev
	return nil
}

// Decode parses an animation from its JSON form.
func Decode(data []byte) (*Animation, error) {
	var a Animation
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode animation: %w", err)
	}
	return &a, nil
}

// Encode renders a as JSON. Array order is preserved.
func Encode(a *Animation) ([]byte, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode animation: %w", err)
	}
	return b, nil
}
