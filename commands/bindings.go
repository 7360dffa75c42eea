package commands

import (
	"fmt"
	"strings"

	"github.com/touchpad-gestures/gesturecli/actions"
	"github.com/touchpad-gestures/gesturecli/bindings"
	"github.com/touchpad-gestures/gesturecli/settings"
	"github.com/touchpad-gestures/gesturecli/types"
)

type Binding struct {
	Key    string         `json:"key"`
	Action types.ActionID `json:"action"`
	Title  string         `json:"title,omitempty"`
}

// BindingsListCommand returns the intercept flag and all ten bindings.
func BindingsListCommand(env *Env) *CommandResponse {
	intercept, err := env.Store.GetBoolean(settings.KeyInterceptGestures)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to read %s: %w", settings.KeyInterceptGestures, err))
	}

	list := make([]Binding, 0, len(bindings.AllKeys()))
	for _, key := range bindings.AllKeys() {
		b, err := readBinding(env.Store, key)
		if err != nil {
			return NewErrorResponse(err)
		}
		list = append(list, b)
	}

	return NewSuccessResponse(map[string]interface{}{
		"intercept": intercept,
		"bindings":  list,
	})
}

func BindingGetCommand(env *Env, key string) *CommandResponse {
	if !bindings.IsBindingKey(key) {
		return NewErrorResponse(unknownKeyError(key))
	}

	b, err := readBinding(env.Store, key)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(b)
}

type BindingSetRequest struct {
	Key    string `json:"key"`
	Action string `json:"action,omitempty"`
	// CustomIndex selects an entry of the custom command list instead of
	// Action.
	CustomIndex *int `json:"customIndex,omitempty"`
}

// BindingSetCommand binds key to a catalogue action or to a saved custom
// command.
func BindingSetCommand(env *Env, req BindingSetRequest) *CommandResponse {
	if !bindings.IsBindingKey(req.Key) {
		return NewErrorResponse(unknownKeyError(req.Key))
	}

	var id types.ActionID
	switch {
	case req.CustomIndex != nil:
		custom, err := env.Store.GetStringList(settings.KeyCustomCommands)
		if err != nil {
			return NewErrorResponse(fmt.Errorf("failed to read custom commands: %w", err))
		}
		index := *req.CustomIndex
		if index < 0 || index >= len(custom) {
			return NewErrorResponse(fmt.Errorf("custom command index %d out of range, %d saved", index, len(custom)))
		}
		id = actions.Custom(custom[index])
	case req.Action != "":
		id = types.ActionID(req.Action)
	default:
		return NewErrorResponse(fmt.Errorf("an action or a custom command index is required"))
	}

	if _, ok := actions.Lookup(id); !ok {
		return NewErrorResponse(fmt.Errorf("unknown action: %s", id))
	}

	if err := env.Store.SetString(req.Key, string(id)); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to save binding %s: %w", req.Key, err))
	}

	b, err := readBinding(env.Store, req.Key)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(b)
}

// InterceptCommand reads the intercept flag, or sets it when enabled is
// non-nil.
func InterceptCommand(env *Env, enabled *bool) *CommandResponse {
	if enabled != nil {
		if err := env.Store.SetBoolean(settings.KeyInterceptGestures, *enabled); err != nil {
			return NewErrorResponse(fmt.Errorf("failed to save %s: %w", settings.KeyInterceptGestures, err))
		}
	}

	value, err := env.Store.GetBoolean(settings.KeyInterceptGestures)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to read %s: %w", settings.KeyInterceptGestures, err))
	}
	return NewSuccessResponse(map[string]interface{}{
		"intercept": value,
	})
}

func readBinding(store settings.Store, key string) (Binding, error) {
	value, err := store.GetString(key)
	if err != nil {
		return Binding{}, fmt.Errorf("failed to read binding %s: %w", key, err)
	}

	b := Binding{Key: key, Action: types.ActionID(value)}
	if action, ok := actions.Lookup(b.Action); ok {
		b.Title = action.Title
	}
	return b, nil
}

func unknownKeyError(key string) error {
	return fmt.Errorf("unknown binding key '%s', expected one of: %s", key, strings.Join(bindings.AllKeys(), ", "))
}
