package animation

import (
	"fmt"
	"strings"
)

// Goal sides a shot can be aimed at.
const (
	SideLeft  = "left"
	SideRight = "right"
)

var zones = map[string]struct{}{
	"top-left": {}, "top": {}, "top-right": {},
	"left": {}, "center": {}, "right": {},
	"bottom-left": {}, "bottom": {}, "bottom-right": {},
}

// ShotTarget is a goal side plus a cell of the 3x3 grid over the goal mouth.
type ShotTarget struct {
	Side string
	Zone string
}

// String renders the target as "side:zone".
func (t ShotTarget) String() string {
	return t.Side + ":" + t.Zone
}

// ParseShotTarget parses a "side:zone" string such as "left:center".
func ParseShotTarget(s string) (ShotTarget, error) {
	side, zone, ok := strings.Cut(s, ":")
	if !ok {
		return ShotTarget{}, fmt.Errorf("%w: %q", ErrInvalidShotTarget, s)
	}
	if side != SideLeft && side != SideRight {
		return ShotTarget{}, fmt.Errorf("%w: side %q", ErrInvalidShotTarget, side)
	}
	if _, ok := zones[zone]; !ok {
		return ShotTarget{}, fmt.Errorf("%w: zone %q", ErrInvalidShotTarget, zone)
	}
	return ShotTarget{Side: side, Zone: zone}, nil
}
