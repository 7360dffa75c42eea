package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/touchpad-gestures/gesturecli/commands"
	"github.com/touchpad-gestures/gesturecli/pipeline"
	"github.com/touchpad-gestures/gesturecli/source"
)

// HandlerFunc is the signature for JSON-RPC method handlers
type HandlerFunc func(params json.RawMessage) (interface{}, error)

var errInvalidParams = errors.New("invalid parameters")

// MethodRegistry returns a map of method names to handler functions.
// It is shared by the HTTP and WebSocket endpoints.
func (s *Server) MethodRegistry() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"gesture":        s.handleGesture,
		"gesture_begin":  s.feedHandler(source.MessageBegin),
		"gesture_update": s.feedHandler(source.MessageUpdate),
		"gesture_end":    s.feedHandler(source.MessageEnd),
		"gesture_cancel": s.feedHandler(source.MessageCancel),
		"classify":       s.handleClassify,
		"dispatch":       s.handleDispatch,
		"actions":        s.handleActions,
		"bindings":       s.handleBindings,
		shutdownMethod:   s.handleShutdown,
	}
}

// Execute dispatches a method call using the registry
func (s *Server) Execute(method string, params json.RawMessage) (interface{}, error) {
	handler, exists := s.MethodRegistry()[method]
	if !exists {
		return nil, fmt.Errorf("method not found: %s", method)
	}

	return handler(params)
}

// GestureResult is returned for every host message. Outcome is set when the
// message closed a session.
type GestureResult struct {
	Source  source.Kind       `json:"source"`
	Outcome *pipeline.Outcome `json:"outcome,omitempty"`
}

func decodeParams(params json.RawMessage, v interface{}, expected string) error {
	if len(params) == 0 {
		if expected == "" {
			return nil
		}
		return fmt.Errorf("%w: 'params' is required with fields: %s", errInvalidParams, expected)
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("%w: %v. Expected fields: %s", errInvalidParams, err, expected)
	}
	return nil
}

// apply feeds one message to the adapter and reports the outcome of the
// session it closed, if any.
func (s *Server) apply(m source.Message) (interface{}, error) {
	s.feedMu.Lock()
	defer s.feedMu.Unlock()

	s.outcome = nil
	if err := s.adapter.Apply(m); err != nil {
		return nil, err
	}
	return GestureResult{Source: s.adapter.Kind(), Outcome: s.outcome}, nil
}

func (s *Server) handleGesture(params json.RawMessage) (interface{}, error) {
	var m source.Message
	if err := decodeParams(params, &m, "phase, fingers, dx, dy"); err != nil {
		return nil, err
	}
	m.Type = source.MessageGesture
	return s.apply(m)
}

func (s *Server) feedHandler(messageType string) HandlerFunc {
	return func(params json.RawMessage) (interface{}, error) {
		var m source.Message
		if err := decodeParams(params, &m, ""); err != nil {
			return nil, err
		}
		m.Type = messageType
		return s.apply(m)
	}
}

func responseData(response *commands.CommandResponse) (interface{}, error) {
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func (s *Server) handleClassify(params json.RawMessage) (interface{}, error) {
	var req commands.ClassifyRequest
	if err := decodeParams(params, &req, "fingers, dx, dy or progress"); err != nil {
		return nil, err
	}
	return responseData(commands.ClassifyCommand(s.env, req))
}

func (s *Server) handleDispatch(params json.RawMessage) (interface{}, error) {
	var req commands.DispatchRequest
	if err := decodeParams(params, &req, "action, dryRun"); err != nil {
		return nil, err
	}
	return responseData(commands.DispatchCommand(s.env, req))
}

func (s *Server) handleActions(params json.RawMessage) (interface{}, error) {
	return responseData(commands.ActionsCommand(s.env))
}

func (s *Server) handleBindings(params json.RawMessage) (interface{}, error) {
	return responseData(commands.BindingsListCommand(s.env))
}

func (s *Server) handleShutdown(params json.RawMessage) (interface{}, error) {
	s.Shutdown()
	return okResponse, nil
}
