package cli

import (
	"github.com/spf13/cobra"

	"github.com/touchpad-gestures/gesturecli/commands"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run system diagnostics",
	Long:  `Reports which action backends are installed and whether the settings store can be read`,
	RunE: withEnv(func(env *commands.Env, cmd *cobra.Command, args []string) error {
		return respond(commands.DoctorCommand(env, GetVersion()))
	}),
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
