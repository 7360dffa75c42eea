package commands

import (
	"fmt"

	"github.com/touchpad-gestures/gesturecli/actions"
	"github.com/touchpad-gestures/gesturecli/bindings"
	"github.com/touchpad-gestures/gesturecli/pipeline"
	"github.com/touchpad-gestures/gesturecli/types"
)

// ClassifyRequest describes a finished gesture. Setting Progress makes it a
// tracked-progress sample; otherwise DX and DY are used.
type ClassifyRequest struct {
	Fingers  int      `json:"fingers"`
	DX       float64  `json:"dx"`
	DY       float64  `json:"dy"`
	Progress *float64 `json:"progress,omitempty"`
}

type ClassifyResult struct {
	pipeline.Outcome
	Key   string `json:"key,omitempty"`
	Title string `json:"title,omitempty"`
}

func (r ClassifyRequest) Sample() types.GestureSample {
	sample := types.GestureSample{
		Origin:  types.OriginDirect,
		Phase:   types.PhaseEnd,
		Fingers: r.Fingers,
		DX:      r.DX,
		DY:      r.DY,
	}
	if r.Progress != nil {
		sample.Origin = types.OriginTracked
		sample.DX, sample.DY = 0, 0
		sample.Progress = *r.Progress
	}
	return sample
}

// ClassifyCommand shows the event and action a gesture would produce,
// without dispatching it.
func ClassifyCommand(env *Env, req ClassifyRequest) *CommandResponse {
	if req.Fingers <= 0 {
		return NewErrorResponse(fmt.Errorf("fingers must be positive, got %d", req.Fingers))
	}

	result := ClassifyResult{Outcome: env.Pipeline.Preview(req.Sample())}
	if key, ok := bindings.Key(result.Event); ok {
		result.Key = key
	}
	if action, ok := actions.Lookup(result.Action); ok {
		result.Title = action.Title
	}

	return NewSuccessResponse(result)
}
