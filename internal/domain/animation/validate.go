package animation

import (
	"fmt"
	"strings"
)

// Year bounds for goal metadata. The upper bound is the current year plus one.
const MinYear = 1900

// Metadata describes the goal an animation reconstructs.
type Metadata struct {
	Team            string `json:"team"`
	Year            int    `json:"year"`
	Scorer          string `json:"scorer"`
	Competition     string `json:"competition"`
	Opponent        string `json:"opponent"`
	MatchContext    string `json:"matchContext,omitempty"`
	VideoURL        string `json:"videoUrl,omitempty"`
	IsInternational bool   `json:"isInternational"`
}

// Validation lists every problem found, so an authoring UI can show them
// all at once.
type Validation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks that a is complete enough to submit for review and that
// m is filled in.
func Validate(a *Animation, m Metadata, currentYear int) Validation {
	errs := a.Problems()
	errs = append(errs, m.Problems(currentYear)...)
	return Validation{Valid: len(errs) == 0, Errors: errs}
}

// Problems returns the structural problems of a, or nil.
func (a *Animation) Problems() []string {
	var errs []string
	if len(a.Players) == 0 {
		errs = append(errs, "Add at least one player")
	}
	if len(a.Keyframes) < 2 {
		errs = append(errs, "Add at least 2 keyframes")
	}
	if !a.hasShot() {
		errs = append(errs, "Add a shot event")
	}
	if a.Duration < MinDuration || a.Duration > MaxDuration {
		errs = append(errs, fmt.Sprintf("Duration must be between %d and %d ms", MinDuration, MaxDuration))
	}

	seen := make(map[string]struct{}, len(a.Players))
	for _, p := range a.Players {
		switch _, dup := seen[p.ID]; {
		case p.ID == "" || p.ID == Ball:
			errs = append(errs, fmt.Sprintf("Player id %q is not allowed", p.ID))
		case dup:
			errs = append(errs, fmt.Sprintf("Player id %q is used twice", p.ID))
		}
		seen[p.ID] = struct{}{}
	}

	errs = append(errs, a.keyframeProblems()...)
	errs = append(errs, a.eventProblems()...)
	return errs
}

func (a *Animation) hasShot() bool {
	for _, ev := range a.Events {
		if ev.Type() == EventShot {
			return true
		}
	}
	return false
}

func (a *Animation) keyframeProblems() []string {
	var errs []string
	if len(a.Keyframes) > 0 && a.Keyframes[0].Time != 0 {
		errs = append(errs, "First keyframe must be at 0 ms")
	}
	for i, kf := range a.Keyframes {
		if i > 0 && kf.Time <= a.Keyframes[i-1].Time {
			errs = append(errs, fmt.Sprintf("Keyframe at %d ms is not after the previous keyframe", kf.Time))
		}
		if kf.Time > a.Duration {
			errs = append(errs, fmt.Sprintf("Keyframe at %d ms is beyond the duration", kf.Time))
		}
		var missing []string
		if _, ok := kf.Positions[Ball]; !ok {
			missing = append(missing, Ball)
		}
		for _, p := range a.Players {
			if _, ok := kf.Positions[p.ID]; !ok {
				missing = append(missing, p.ID)
			}
		}
		if len(missing) > 0 {
			errs = append(errs, fmt.Sprintf("Keyframe at %d ms has no position for %s", kf.Time, strings.Join(missing, ", ")))
		}
	}
	return errs
}

func (a *Animation) eventProblems() []string {
	var errs []string
	for _, ev := range a.Events {
		if !a.HasPlayer(ev.From) {
			errs = append(errs, fmt.Sprintf("Event at %d ms is by unknown player %q", ev.Time, ev.From))
		}
		if ev.Time > a.Duration {
			errs = append(errs, fmt.Sprintf("Event at %d ms is beyond the duration", ev.Time))
		}
		if ev.Curve < MinCurve || ev.Curve > MaxCurve {
			errs = append(errs, fmt.Sprintf("Event at %d ms has curve %.2f outside [-1, 1]", ev.Time, ev.Curve))
		}
		switch act := ev.Action.(type) {
		case Pass:
			if act.To != "" && !a.HasPlayer(act.To) {
				errs = append(errs, fmt.Sprintf("Pass at %d ms is to unknown player %q", ev.Time, act.To))
			}
		case Shot:
			if act.Target != "" {
				if _, err := ParseShotTarget(act.Target); err != nil {
					errs = append(errs, fmt.Sprintf("Shot at %d ms has invalid target %q", ev.Time, act.Target))
				}
			}
			if act.Result != "" && !act.Result.Valid() {
				errs = append(errs, fmt.Sprintf("Shot at %d ms has unknown result %q", ev.Time, act.Result))
			}
		case nil:
			errs = append(errs, fmt.Sprintf("Event at %d ms has no type", ev.Time))
		}
	}
	return errs
}

// Problems returns the missing or invalid metadata fields, or nil.
func (m Metadata) Problems(currentYear int) []string {
	var errs []string
	if strings.TrimSpace(m.Team) == "" {
		errs = append(errs, "Enter the team name")
	}
	if strings.TrimSpace(m.Scorer) == "" {
		errs = append(errs, "Enter the goalscorer name")
	}
	if m.Year < MinYear || m.Year > currentYear+1 {
		errs = append(errs, "Enter a valid year")
	}
	if strings.TrimSpace(m.Competition) == "" {
		errs = append(errs, "Enter the competition")
	}
	if strings.TrimSpace(m.Opponent) == "" {
		errs = append(errs, "Enter the opponent")
	}
	return errs
}
