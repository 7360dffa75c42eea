package commands

import (
	"fmt"

	"github.com/touchpad-gestures/gesturecli/actions"
	"github.com/touchpad-gestures/gesturecli/settings"
)

// ActionsCommand lists the built-in actions followed by one entry per
// saved custom command.
func ActionsCommand(env *Env) *CommandResponse {
	list := actions.Builtins()

	custom, err := env.Store.GetStringList(settings.KeyCustomCommands)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to read custom commands: %w", err))
	}

	for _, command := range custom {
		if action, ok := actions.Lookup(actions.Custom(command)); ok {
			list = append(list, action)
		}
	}

	return NewSuccessResponse(map[string]interface{}{
		"actions": list,
	})
}
