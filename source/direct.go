package source

import (
	"sync"

	"github.com/google/uuid"

	"github.com/touchpad-gestures/gesturecli/types"
)

// DirectPhaseSource forwards host gesture events as samples. The end event
// must carry the total displacement of the session.
type DirectPhaseSource struct {
	mu      sync.Mutex
	sink    Sink
	session string
}

func NewDirectPhaseSource(sink Sink) *DirectPhaseSource {
	return &DirectPhaseSource{sink: sink}
}

func (s *DirectPhaseSource) Deliver(phase types.Phase, fingers int, dx, dy, t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if phase == types.PhaseBegin || s.session == "" {
		s.session = uuid.NewString()
	}

	sample := types.GestureSample{
		Session: s.session,
		Origin:  types.OriginDirect,
		Phase:   phase,
		Fingers: fingers,
		DX:      dx,
		DY:      dy,
		Time:    t,
	}

	if phase == types.PhaseEnd {
		s.session = ""
	}

	s.sink(sample)
}

// Cancel abandons the current session without a terminal sample.
func (s *DirectPhaseSource) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = ""
}
