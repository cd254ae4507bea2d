package editor

import (
	"fmt"
	"strings"

	"github.com/okian/goalguessr/internal/domain/animation"
)

// Draft is a finished goal ready to be stored.
type Draft struct {
	Metadata  animation.Metadata
	Animation *animation.Animation
}

// Draft returns a copy of the session's metadata and animation.
func (s *Session) Draft() Draft {
	return Draft{Metadata: s.meta, Animation: s.Snapshot()}
}

type frame struct {
	at   int
	pos  [][2]float64
	ball *[2]float64
}

type action struct {
	frame int
	kind  animation.EventType
	from  int
	to    int
}

type script struct {
	meta     animation.Metadata
	duration int
	frames   []frame
	actions  []action
}

var goalMouth = &[2]float64{99, 32}

// classics are well known goals authored frame by frame. Player 0 starts
// with the ball; keyframe positions list players in roster order.
var classics = []script{
	{
		meta: animation.Metadata{
			Team: "Manchester United", Year: 1999, Scorer: "Ole Gunnar Solskjaer",
			Competition: "Champions League Final", Opponent: "Bayern Munich",
			MatchContext: "Injury time winner to complete the treble",
		},
		duration: 5000,
		frames: []frame{
			{at: 0, pos: [][2]float64{{65, 20}, {70, 45}, {85, 35}, {88, 30}, {88, 40}, {96, 32}}},
			{at: 2000, pos: [][2]float64{{70, 15}, {78, 40}, {90, 32}, {90, 28}, {90, 38}, {97, 32}}},
			{at: 3500, pos: [][2]float64{{72, 12}, {80, 38}, {92, 32}, {91, 26}, {91, 36}, {97, 30}}},
			{at: 5000, pos: [][2]float64{{75, 10}, {82, 36}, {94, 32}, {92, 28}, {92, 38}, {98, 28}}, ball: goalMouth},
		},
		actions: []action{
			{frame: 1, kind: animation.EventPass, from: 0, to: 2},
			{frame: 2, kind: animation.EventShot, from: 2, to: -1},
		},
	},
	{
		meta: animation.Metadata{
			Team: "Argentina", Year: 1986, Scorer: "Diego Maradona",
			Competition: "World Cup Quarter-final", Opponent: "England",
			MatchContext: "Goal of the Century, solo run from his own half", IsInternational: true,
		},
		duration: 6000,
		frames: []frame{
			{at: 0, pos: [][2]float64{{45, 32}, {55, 28}, {60, 38}, {75, 30}, {80, 35}, {95, 32}}},
			{at: 1500, pos: [][2]float64{{58, 30}, {56, 32}, {62, 35}, {75, 30}, {80, 35}, {95, 32}}},
			{at: 3000, pos: [][2]float64{{72, 28}, {65, 32}, {70, 35}, {78, 30}, {82, 33}, {95, 32}}},
			{at: 4500, pos: [][2]float64{{88, 32}, {80, 30}, {82, 35}, {86, 28}, {88, 36}, {96, 34}}},
			{at: 6000, pos: [][2]float64{{92, 32}, {85, 30}, {87, 35}, {90, 28}, {90, 36}, {97, 30}}, ball: goalMouth},
		},
		actions: []action{
			{frame: 0, kind: animation.EventDribble, from: 0, to: -1},
			{frame: 1, kind: animation.EventDribble, from: 0, to: -1},
			{frame: 2, kind: animation.EventDribble, from: 0, to: -1},
			{frame: 3, kind: animation.EventShot, from: 0, to: -1},
		},
	},
	{
		meta: animation.Metadata{
			Team: "Liverpool", Year: 2005, Scorer: "Steven Gerrard",
			Competition: "Champions League Final", Opponent: "AC Milan",
			MatchContext: "Header to start the comeback from 3-0 down",
		},
		duration: 4000,
		frames: []frame{
			{at: 0, pos: [][2]float64{{70, 10}, {85, 35}, {88, 28}, {88, 40}, {96, 32}}},
			{at: 2000, pos: [][2]float64{{75, 8}, {90, 32}, {90, 30}, {90, 38}, {96, 32}}},
			{at: 4000, pos: [][2]float64{{78, 8}, {92, 32}, {91, 30}, {91, 38}, {97, 35}}, ball: goalMouth},
		},
		actions: []action{
			{frame: 0, kind: animation.EventPass, from: 0, to: 1},
			{frame: 1, kind: animation.EventShot, from: 1, to: -1},
		},
	},
}

// Classics builds the built-in goals through editor sessions and returns
// them validated.
func Classics(opts ...Option) ([]Draft, error) {
	out := make([]Draft, 0, len(classics))
	for _, sc := range classics {
		d, err := sc.build(opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (sc script) build(opts ...Option) (Draft, error) {
	s := NewSession(opts...)
	s.SetMetadata(sc.meta)
	s.SetDuration(sc.duration)

	ids := make([]string, len(sc.frames[0].pos))
	for i := range ids {
		ids[i] = s.AddPlayer("")
	}
	for i, f := range sc.frames {
		if i == 0 {
			s.SelectKeyframe(0)
		} else {
			s.AddKeyframeAt(f.at)
		}
		for p, xy := range f.pos {
			s.UpdatePlayerPosition(ids[p], xy[0], xy[1])
		}
	}
	for _, a := range sc.actions {
		s.SelectKeyframe(a.frame)
		to := ""
		if a.to >= 0 {
			to = ids[a.to]
		}
		s.AddEvent(a.kind, ids[a.from], to)
	}
	for i, f := range sc.frames {
		if f.ball != nil {
			s.SelectKeyframe(i)
			s.UpdateBallPosition(f.ball[0], f.ball[1])
		}
	}

	if v := s.Validate(); !v.Valid {
		return Draft{}, fmt.Errorf("%w: %s %d: %s", ErrInvalidDraft, sc.meta.Scorer, sc.meta.Year, strings.Join(v.Errors, "; "))
	}
	return s.Draft(), nil
}
