package cli

import (
	"github.com/spf13/cobra"

	"github.com/touchpad-gestures/gesturecli/commands"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Show what a gesture would do",
	Long:  `Classifies a finished gesture and resolves its binding without running the action. Pass --progress for a tracked-progress gesture, or --dx/--dy for a displacement gesture.`,
	Args:  cobra.NoArgs,
	RunE: withEnv(func(env *commands.Env, cmd *cobra.Command, args []string) error {
		req := commands.ClassifyRequest{
			Fingers: classifyFingers,
			DX:      classifyDX,
			DY:      classifyDY,
		}
		if cmd.Flags().Changed("progress") {
			progress := classifyProgress
			req.Progress = &progress
		}

		return respond(commands.ClassifyCommand(env, req))
	}),
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().IntVar(&classifyFingers, "fingers", 3, "number of fingers")
	classifyCmd.Flags().Float64Var(&classifyDX, "dx", 0, "total horizontal displacement")
	classifyCmd.Flags().Float64Var(&classifyDY, "dy", 0, "total vertical displacement (positive is down)")
	classifyCmd.Flags().Float64Var(&classifyProgress, "progress", 0, "final swipe progress in [-1, 1]")
}
