package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/touchpad-gestures/gesturecli/actions"
	"github.com/touchpad-gestures/gesturecli/commands"
	"github.com/touchpad-gestures/gesturecli/desktop"
	"github.com/touchpad-gestures/gesturecli/settings"
	"github.com/touchpad-gestures/gesturecli/utils"
)

const version = "dev"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gesturecli",
	Short: "Touchpad gesture classifier and action dispatcher",
	Long:  `Classifies three- and four-finger touchpad gestures and runs the desktop action bound to each one.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var shutdownHook = utils.NewShutdownHook()

func initConfig() {
	utils.SetVerbose(verbose)
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "settings file (.ini or .toml, default $XDG_CONFIG_HOME/gesturecli/settings.ini)")
	rootCmd.PersistentFlags().StringVar(&mediaPlayer, "media-player", actions.DefaultMediaPlayer, "MPRIS bus name used when playerctl is unavailable")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetShutdownHook replaces the hook long-running commands register their
// cleanup with. main runs it on SIGINT/SIGTERM.
func SetShutdownHook(hook *utils.ShutdownHook) {
	shutdownHook = hook
}

func GetVersion() string {
	return version
}

// newEnv opens the settings store named by --config and wires it to the
// host desktop.
func newEnv() (*commands.Env, error) {
	store, err := settings.Open(configPath)
	if err != nil {
		return nil, err
	}

	host, err := desktop.New()
	if err != nil {
		return nil, fmt.Errorf("failed to set up desktop: %w", err)
	}

	env := commands.NewEnv(store, host, actions.CommandSpawner{})
	env.Dispatcher.SetMediaPlayer(mediaPlayer)
	return env, nil
}

// printJson is a helper function to print JSON responses
func printJson(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		utils.Error("failed to encode response: %v", err)
		os.Exit(1)
	}
	fmt.Println(string(jsonData))
}

// respond prints a command response and turns an error status into an error.
func respond(response *commands.CommandResponse) error {
	printJson(response)
	if response.Status == "error" {
		return fmt.Errorf("%s", response.Error)
	}
	return nil
}

// withEnv adapts a command body that needs an Env to cobra's RunE.
func withEnv(fn func(env *commands.Env, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return respond(commands.NewErrorResponse(err))
		}
		return fn(env, cmd, args)
	}
}
