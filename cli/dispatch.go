package cli

import (
	"github.com/spf13/cobra"

	"github.com/touchpad-gestures/gesturecli/commands"
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch [action]",
	Short: "Run an action",
	Long:  `Runs an action by identifier, e.g. 'toggle-overview' or 'custom:notify-send hi'. With --dry-run only the backends that would be tried are listed.`,
	Args:  cobra.ExactArgs(1),
	RunE: withEnv(func(env *commands.Env, cmd *cobra.Command, args []string) error {
		req := commands.DispatchRequest{
			Action: args[0],
			DryRun: dispatchDryRun,
		}

		return respond(commands.DispatchCommand(env, req))
	}),
}

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List available actions",
	Long:  `Lists the built-in actions and the saved custom commands.`,
	Args:  cobra.NoArgs,
	RunE: withEnv(func(env *commands.Env, cmd *cobra.Command, args []string) error {
		return respond(commands.ActionsCommand(env))
	}),
}

func init() {
	rootCmd.AddCommand(dispatchCmd)
	rootCmd.AddCommand(actionsCmd)

	dispatchCmd.Flags().BoolVar(&dispatchDryRun, "dry-run", false, "list backends without running them")
}
