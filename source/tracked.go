package source

import (
	"sync"

	"github.com/google/uuid"

	"github.com/touchpad-gestures/gesturecli/types"
	"github.com/touchpad-gestures/gesturecli/utils"
)

// DefaultFingers is assumed when the host cannot report the touch point count.
const DefaultFingers = 3

type trackedSession struct {
	id       string
	fingers  int
	progress float64
}

// TrackedProgressSource turns begin/update/end progress callbacks into
// samples. The end sample carries the final progress; finger count comes
// from the begin callback.
type TrackedProgressSource struct {
	mu      sync.Mutex
	sink    Sink
	session *trackedSession
}

func NewTrackedProgressSource(sink Sink) *TrackedProgressSource {
	return &TrackedProgressSource{sink: sink}
}

func newTrackedSession(points int) *trackedSession {
	fingers := points
	if points <= 0 {
		utils.Verbose("Touch point count unavailable, assuming %d fingers", DefaultFingers)
		fingers = DefaultFingers
	}
	return &trackedSession{id: uuid.NewString(), fingers: fingers}
}

// Begin opens a session. points <= 0 means the count is unknown.
func (s *TrackedProgressSource) Begin(points int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		utils.Verbose("Session %s abandoned by a new begin", s.session.id)
	}
	s.session = newTrackedSession(points)
	s.sink(s.sample(types.PhaseBegin, 0, 0))
}

// Update records progress in [-1, 1]. Updates outside a session are ignored.
func (s *TrackedProgressSource) Update(progress float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		utils.Verbose("Ignoring progress update outside a session")
		return
	}
	s.session.progress = clampProgress(progress)
	s.sink(s.sample(types.PhaseUpdate, s.session.progress, 0))
}

// End closes the session and emits the terminal sample. An end without a
// begin is treated as a session whose touch point count was unavailable.
func (s *TrackedProgressSource) End(duration, finalProgress float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		s.session = newTrackedSession(0)
	}
	sample := s.sample(types.PhaseEnd, clampProgress(finalProgress), duration)
	s.session = nil
	s.sink(sample)
}

// Cancel abandons the current session without a terminal sample.
func (s *TrackedProgressSource) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

func (s *TrackedProgressSource) sample(phase types.Phase, progress, t float64) types.GestureSample {
	return types.GestureSample{
		Session:  s.session.id,
		Origin:   types.OriginTracked,
		Phase:    phase,
		Fingers:  s.session.fingers,
		Progress: progress,
		Time:     t,
	}
}

func clampProgress(p float64) float64 {
	switch {
	case p > 1:
		return 1
	case p < -1:
		return -1
	}
	return p
}
