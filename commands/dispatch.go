package commands

import (
	"fmt"

	"github.com/touchpad-gestures/gesturecli/actions"
	"github.com/touchpad-gestures/gesturecli/types"
)

type DispatchRequest struct {
	Action string `json:"action"`
	DryRun bool   `json:"dryRun,omitempty"`
}

type DispatchResult struct {
	Action     actions.Action `json:"action"`
	Steps      []actions.Step `json:"steps,omitempty"`
	Dispatched bool           `json:"dispatched"`
}

// DispatchCommand performs an action by identifier. With DryRun it only
// lists the backends that would be tried.
func DispatchCommand(env *Env, req DispatchRequest) *CommandResponse {
	if req.Action == "" {
		return NewErrorResponse(fmt.Errorf("action is required"))
	}

	id := types.ActionID(req.Action)
	action, ok := actions.Lookup(id)
	if !ok {
		return NewErrorResponse(fmt.Errorf("unknown action: %s", req.Action))
	}

	steps, err := env.Dispatcher.Plan(id)
	if err != nil {
		return NewErrorResponse(err)
	}

	result := DispatchResult{Action: action, Steps: steps}
	if !req.DryRun {
		env.Dispatcher.Dispatch(id)
		result.Dispatched = true
	}

	return NewSuccessResponse(result)
}
