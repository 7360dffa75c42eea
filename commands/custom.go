package commands

import (
	"fmt"
	"strings"

	"github.com/touchpad-gestures/gesturecli/settings"
)

type CustomCommand struct {
	Index   int    `json:"index"`
	Command string `json:"command"`
}

func CustomListCommand(env *Env) *CommandResponse {
	list, err := env.Store.GetStringList(settings.KeyCustomCommands)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to read custom commands: %w", err))
	}
	return NewSuccessResponse(map[string]interface{}{
		"commands": indexed(list),
	})
}

// CustomAddCommand appends a trimmed command to the saved list.
func CustomAddCommand(env *Env, command string) *CommandResponse {
	command = strings.TrimSpace(command)
	if command == "" {
		return NewErrorResponse(fmt.Errorf("command is required"))
	}

	list, err := env.Store.GetStringList(settings.KeyCustomCommands)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to read custom commands: %w", err))
	}

	list = append(list, command)
	if err := env.Store.SetStringList(settings.KeyCustomCommands, list); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to save custom commands: %w", err))
	}

	return NewSuccessResponse(CustomCommand{Index: len(list) - 1, Command: command})
}

// CustomRemoveCommand deletes the entry at index. Bindings that use the
// command are left untouched.
func CustomRemoveCommand(env *Env, index int) *CommandResponse {
	list, err := env.Store.GetStringList(settings.KeyCustomCommands)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to read custom commands: %w", err))
	}
	if index < 0 || index >= len(list) {
		return NewErrorResponse(fmt.Errorf("custom command index %d out of range, %d saved", index, len(list)))
	}

	removed := list[index]
	list = append(list[:index], list[index+1:]...)
	if err := env.Store.SetStringList(settings.KeyCustomCommands, list); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to save custom commands: %w", err))
	}

	return NewSuccessResponse(map[string]interface{}{
		"removed":  removed,
		"commands": indexed(list),
	})
}

func indexed(list []string) []CustomCommand {
	out := make([]CustomCommand, 0, len(list))
	for i, c := range list {
		out = append(out, CustomCommand{Index: i, Command: c})
	}
	return out
}
