package types

import "fmt"

// Phase is the stage of a gesture session a sample belongs to.
type Phase string

const (
	PhaseBegin  Phase = "begin"
	PhaseUpdate Phase = "update"
	PhaseEnd    Phase = "end"
)

// ParsePhase accepts the lower-case phase names used on the wire.
func ParsePhase(s string) (Phase, bool) {
	switch Phase(s) {
	case PhaseBegin, PhaseUpdate, PhaseEnd:
		return Phase(s), true
	}
	return "", false
}

// Origin tells which kind of gesture source produced a sample.
// Samples from a tracked source carry Progress instead of DX/DY.
type Origin string

const (
	OriginDirect  Origin = "direct"
	OriginTracked Origin = "tracked"
)

// GestureSample is one normalized touchpad sample.
type GestureSample struct {
	Session  string  `json:"session,omitempty"`
	Origin   Origin  `json:"origin"`
	Phase    Phase   `json:"phase"`
	Fingers  int     `json:"fingers"`
	DX       float64 `json:"dx"`
	DY       float64 `json:"dy"`
	Progress float64 `json:"progress,omitempty"`
	Time     float64 `json:"time,omitempty"`
}

// IsTerminal reports whether the sample closes its session.
func (s GestureSample) IsTerminal() bool {
	return s.Phase == PhaseEnd
}

func (s GestureSample) String() string {
	if s.Origin == OriginTracked {
		return fmt.Sprintf("%s/%s fingers=%d progress=%.3f", s.Origin, s.Phase, s.Fingers, s.Progress)
	}
	return fmt.Sprintf("%s/%s fingers=%d dx=%.2f dy=%.2f", s.Origin, s.Phase, s.Fingers, s.DX, s.DY)
}

type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Directions lists the four swipe directions in binding order.
var Directions = []Direction{DirectionLeft, DirectionRight, DirectionUp, DirectionDown}

type EventKind string

const (
	EventNone  EventKind = "none"
	EventSwipe EventKind = "swipe"
	EventTap   EventKind = "tap"
)

// ClassifiedEvent is the outcome of one gesture session. Direction is only
// set for swipes.
type ClassifiedEvent struct {
	Kind      EventKind `json:"kind"`
	Fingers   int       `json:"fingers,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

func NoEvent() ClassifiedEvent {
	return ClassifiedEvent{Kind: EventNone}
}

func Swipe(fingers int, direction Direction) ClassifiedEvent {
	return ClassifiedEvent{Kind: EventSwipe, Fingers: fingers, Direction: direction}
}

func Tap(fingers int) ClassifiedEvent {
	return ClassifiedEvent{Kind: EventTap, Fingers: fingers}
}

func (e ClassifiedEvent) IsNone() bool {
	return e.Kind == EventNone || e.Kind == ""
}

func (e ClassifiedEvent) String() string {
	switch e.Kind {
	case EventSwipe:
		return fmt.Sprintf("%d-finger swipe %s", e.Fingers, e.Direction)
	case EventTap:
		return fmt.Sprintf("%d-finger tap", e.Fingers)
	default:
		return "none"
	}
}
