package commands

import (
	"github.com/touchpad-gestures/gesturecli/actions"
	"github.com/touchpad-gestures/gesturecli/gesture"
	"github.com/touchpad-gestures/gesturecli/pipeline"
	"github.com/touchpad-gestures/gesturecli/settings"
)

// CommandResponse represents a standardized response format for all commands
type CommandResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) *CommandResponse {
	return &CommandResponse{
		Status: "ok",
		Data:   data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(err error) *CommandResponse {
	return &CommandResponse{
		Status: "error",
		Error:  err.Error(),
	}
}

// Env is the state shared by every command: the settings store and the
// pipeline built on it. It is created once at startup by the cli or server.
type Env struct {
	Store      settings.Store
	Dispatcher *actions.Dispatcher
	Pipeline   *pipeline.Pipeline
}

// NewEnv wires a dispatcher and pipeline around store and desktop.
func NewEnv(store settings.Store, desktop actions.Desktop, spawner actions.Spawner) *Env {
	dispatcher := actions.NewDispatcher(desktop, spawner)
	classifier := gesture.NewClassifier(gesture.DefaultThresholds())

	return &Env{
		Store:      store,
		Dispatcher: dispatcher,
		Pipeline:   pipeline.New(store, classifier, dispatcher),
	}
}
