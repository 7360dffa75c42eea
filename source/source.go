// Package source normalizes host gesture signals into GestureSample values.
//
// Two kinds of host signal exist. A direct-phase signal reports begin, update
// and end events carrying finger count and displacement. A tracked-progress
// signal reports a session as begin, progress updates and a final progress
// value. One of them is selected at startup and wrapped in an Adapter.
package source

import (
	"errors"
	"fmt"

	"github.com/touchpad-gestures/gesturecli/types"
)

// Sink receives every sample an adapter produces, in order.
type Sink func(types.GestureSample)

type Kind string

const (
	KindDirectPhase     Kind = "direct"
	KindTrackedProgress Kind = "tracked"
)

// ParseKind accepts "direct" and "tracked".
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDirectPhase, KindTrackedProgress:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown source kind '%s', expected direct or tracked", s)
}

var (
	// ErrNoSource means neither host signal is available.
	ErrNoSource = errors.New("no gesture source available")

	// ErrWrongSource is returned for messages meant for the other source kind.
	ErrWrongSource = errors.New("message does not match the active gesture source")
)

// Capabilities is the result of probing the host for gesture signals.
type Capabilities struct {
	GestureSignal bool
	SwipeTracker  bool
}

// Adapter holds exactly one of the two source variants.
type Adapter struct {
	kind    Kind
	direct  *DirectPhaseSource
	tracked *TrackedProgressSource
}

// Select picks the direct-phase source when the host offers it and falls back
// to the tracked-progress source.
func Select(caps Capabilities, sink Sink) (*Adapter, error) {
	switch {
	case caps.GestureSignal:
		return &Adapter{kind: KindDirectPhase, direct: NewDirectPhaseSource(sink)}, nil
	case caps.SwipeTracker:
		return &Adapter{kind: KindTrackedProgress, tracked: NewTrackedProgressSource(sink)}, nil
	}
	return nil, ErrNoSource
}

// ForKind builds an adapter of an explicitly chosen kind.
func ForKind(kind Kind, sink Sink) (*Adapter, error) {
	switch kind {
	case KindDirectPhase:
		return Select(Capabilities{GestureSignal: true}, sink)
	case KindTrackedProgress:
		return Select(Capabilities{SwipeTracker: true}, sink)
	}
	return nil, ErrNoSource
}

func (a *Adapter) Kind() Kind {
	return a.kind
}

func (a *Adapter) Direct() (*DirectPhaseSource, bool) {
	return a.direct, a.direct != nil
}

func (a *Adapter) Tracked() (*TrackedProgressSource, bool) {
	return a.tracked, a.tracked != nil
}
