package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/touchpad-gestures/gesturecli/commands"
)

var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Custom command list management",
	Long:  `Commands for managing the saved shell commands gestures can be bound to.`,
}

var customListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved custom commands",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(env *commands.Env, cmd *cobra.Command, args []string) error {
		return respond(commands.CustomListCommand(env))
	}),
}

var customAddCmd = &cobra.Command{
	Use:   "add [command...]",
	Short: "Save a custom command",
	Long:  `Appends a shell command to the saved list. Multiple arguments are joined with spaces.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: withEnv(func(env *commands.Env, cmd *cobra.Command, args []string) error {
		return respond(commands.CustomAddCommand(env, strings.Join(args, " ")))
	}),
}

var customRemoveCmd = &cobra.Command{
	Use:   "remove [index]",
	Short: "Remove a saved custom command",
	Args:  cobra.ExactArgs(1),
	RunE: withEnv(func(env *commands.Env, cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return respond(commands.NewErrorResponse(fmt.Errorf("invalid index '%s'", args[0])))
		}
		return respond(commands.CustomRemoveCommand(env, index))
	}),
}

func init() {
	rootCmd.AddCommand(customCmd)

	customCmd.AddCommand(customListCmd)
	customCmd.AddCommand(customAddCmd)
	customCmd.AddCommand(customRemoveCmd)
}
