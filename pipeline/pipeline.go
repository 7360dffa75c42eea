// Package pipeline runs one gesture session through intercept check,
// classification, binding resolution and dispatch.
package pipeline

import (
	"sync"

	"github.com/touchpad-gestures/gesturecli/bindings"
	"github.com/touchpad-gestures/gesturecli/gesture"
	"github.com/touchpad-gestures/gesturecli/settings"
	"github.com/touchpad-gestures/gesturecli/source"
	"github.com/touchpad-gestures/gesturecli/types"
	"github.com/touchpad-gestures/gesturecli/utils"
)

// Dispatcher performs a resolved action. *actions.Dispatcher satisfies it.
type Dispatcher interface {
	Dispatch(id types.ActionID)
}

// Reasons a terminal sample produced no dispatch.
const (
	SkipIntercept   = "intercept-disabled"
	SkipUnavailable = "settings-unavailable"
	SkipNoEvent     = "no-event"
	SkipNoAction    = "no-action"
)

// Outcome describes what one sample led to.
type Outcome struct {
	Session    string                `json:"session,omitempty"`
	Event      types.ClassifiedEvent `json:"event"`
	Action     types.ActionID        `json:"action"`
	Dispatched bool                  `json:"dispatched"`
	Skipped    string                `json:"skipped,omitempty"`
}

// Pipeline holds everything a session needs. Handle serializes sessions so
// concurrent callers never interleave.
type Pipeline struct {
	mu         sync.Mutex
	store      settings.Store
	classifier *gesture.Classifier
	resolver   *bindings.Resolver
	dispatcher Dispatcher

	unavailableOnce sync.Once
}

func New(store settings.Store, classifier *gesture.Classifier, dispatcher Dispatcher) *Pipeline {
	return &Pipeline{
		store:      store,
		classifier: classifier,
		resolver:   bindings.NewResolver(store),
		dispatcher: dispatcher,
	}
}

// Sink adapts the pipeline to a gesture source.
func (p *Pipeline) Sink() source.Sink {
	return func(sample types.GestureSample) {
		p.Handle(sample)
	}
}

// Handle processes a sample. Only terminal samples do anything; the others
// return a zero Outcome.
func (p *Pipeline) Handle(sample types.GestureSample) Outcome {
	if !sample.IsTerminal() {
		return Outcome{Session: sample.Session, Event: types.NoEvent(), Action: types.ActionNone}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	out, ok := p.evaluate(sample)
	if !ok {
		return out
	}

	p.dispatcher.Dispatch(out.Action)
	out.Dispatched = true
	return out
}

// Preview classifies and resolves a sample without dispatching. The
// intercept flag is ignored.
func (p *Pipeline) Preview(sample types.GestureSample) Outcome {
	event := p.classifier.Classify(sample)
	out := Outcome{Session: sample.Session, Event: event, Action: types.ActionNone}
	if event.IsNone() {
		out.Skipped = SkipNoEvent
		return out
	}
	out.Action = p.resolver.Resolve(event)
	if out.Action == types.ActionNone {
		out.Skipped = SkipNoAction
	}
	return out
}

// evaluate runs everything up to dispatch and reports whether an action
// should be dispatched.
func (p *Pipeline) evaluate(sample types.GestureSample) (Outcome, bool) {
	out := Outcome{Session: sample.Session, Event: types.NoEvent(), Action: types.ActionNone}

	intercept, err := p.store.GetBoolean(settings.KeyInterceptGestures)
	if err != nil {
		p.unavailableOnce.Do(func() {
			utils.Warn("Settings unavailable, gestures are ignored until it can be read: %v", err)
		})
		out.Skipped = SkipUnavailable
		return out, false
	}
	if !intercept {
		out.Skipped = SkipIntercept
		return out, false
	}

	out.Event = p.classifier.Classify(sample)
	if out.Event.IsNone() {
		utils.Verbose("Session %s: %s produced no gesture", sample.Session, sample)
		out.Skipped = SkipNoEvent
		return out, false
	}

	out.Action = p.resolver.Resolve(out.Event)
	if out.Action == types.ActionNone {
		out.Skipped = SkipNoAction
		return out, false
	}

	utils.Verbose("Session %s: %s -> %s", sample.Session, out.Event, out.Action)
	return out, true
}
