package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/touchpad-gestures/gesturecli/commands"
)

var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "Gesture binding commands",
	Long:  `Commands for reading and changing which action each gesture runs.`,
}

var bindingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all gesture bindings",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(env *commands.Env, cmd *cobra.Command, args []string) error {
		return respond(commands.BindingsListCommand(env))
	}),
}

var bindingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show the action bound to a gesture",
	Long:  `Shows the action bound to a gesture key such as 'three-finger-swipe-up' or 'four-finger-tap'.`,
	Args:  cobra.ExactArgs(1),
	RunE: withEnv(func(env *commands.Env, cmd *cobra.Command, args []string) error {
		return respond(commands.BindingGetCommand(env, args[0]))
	}),
}

var bindingsSetCmd = &cobra.Command{
	Use:   "set [key] [action]",
	Short: "Bind a gesture to an action",
	Long:  `Binds a gesture key to an action identifier, or with --custom to a saved custom command by index.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: withEnv(func(env *commands.Env, cmd *cobra.Command, args []string) error {
		req := commands.BindingSetRequest{Key: args[0]}
		if len(args) == 2 {
			req.Action = args[1]
		}
		if cmd.Flags().Changed("custom") {
			index := bindingCustomIndex
			req.CustomIndex = &index
		}

		return respond(commands.BindingSetCommand(env, req))
	}),
}

var bindingsInterceptCmd = &cobra.Command{
	Use:       "intercept [on|off]",
	Short:     "Show or change whether gestures are handled",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: withEnv(func(env *commands.Env, cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return respond(commands.InterceptCommand(env, nil))
		}

		enabled, err := parseOnOff(args[0])
		if err != nil {
			return respond(commands.NewErrorResponse(err))
		}
		return respond(commands.InterceptCommand(env, &enabled))
	}),
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b, nil
	}
	return false, fmt.Errorf("expected on or off, got '%s'", s)
}

func init() {
	rootCmd.AddCommand(bindingsCmd)

	bindingsCmd.AddCommand(bindingsListCmd)
	bindingsCmd.AddCommand(bindingsGetCmd)
	bindingsCmd.AddCommand(bindingsSetCmd)
	bindingsCmd.AddCommand(bindingsInterceptCmd)

	bindingsSetCmd.Flags().IntVar(&bindingCustomIndex, "custom", 0, "index of a saved custom command (see 'custom list')")
}
