package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/touchpad-gestures/gesturecli/commands"
	"github.com/touchpad-gestures/gesturecli/daemon"
	"github.com/touchpad-gestures/gesturecli/server"
	"github.com/touchpad-gestures/gesturecli/source"
	"github.com/touchpad-gestures/gesturecli/utils"
)

const defaultServerAddress = "localhost:12100"

// daemonArgs appends an absolute --config to args so the daemon child, which
// runs in "/", opens the same settings file. The last --config wins.
func daemonArgs(args []string, configPath string) ([]string, error) {
	out := append([]string(nil), args...)
	if configPath == "" {
		return out, nil
	}

	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve settings path %s: %w", configPath, err)
	}
	return append(out, "--config="+abs), nil
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Server management commands",
	Long:  `Commands for managing the gesturecli server, which accepts host gesture messages over JSON-RPC.`,
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the gesturecli server",
	Long:  `Starts the gesturecli server. The gesture source kind is chosen once with --source.`,
	Args:  cobra.NoArgs,
	RunE: withEnv(func(env *commands.Env, cmd *cobra.Command, args []string) error {
		listenAddr := cmd.Flag("listen").Value.String()
		if listenAddr == "" {
			listenAddr = defaultServerAddress
		}

		// GetBool/GetString cannot fail for defined flags
		enableCORS, _ := cmd.Flags().GetBool("cors")
		isDaemon, _ := cmd.Flags().GetBool("daemon")
		sourceFlag, _ := cmd.Flags().GetString("source")

		kind, err := source.ParseKind(sourceFlag)
		if err != nil {
			return err
		}

		if isDaemon && !daemon.IsChild() {
			addr, err := server.NormalizeAddr(listenAddr)
			if err != nil {
				return err
			}
			if err := utils.CheckListenAddr(addr); err != nil {
				return err
			}

			childArgs, err := daemonArgs(os.Args, configPath)
			if err != nil {
				return err
			}

			_, err = daemon.Daemonize(childArgs)
			if err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}

			fmt.Printf("Server daemon spawned, attempting to listen on %s\n", listenAddr)
			if logPath, err := daemon.LogPath(); err == nil {
				fmt.Printf("Logs are written to %s\n", logPath)
			}
			return nil
		}

		token, err := server.LoadToken()
		if err != nil {
			utils.Warn("Starting without authentication: %v", err)
		}

		s, err := server.New(env, server.Config{
			Addr:       listenAddr,
			EnableCORS: enableCORS,
			Source:     kind,
			Token:      token,
		})
		if err != nil {
			return err
		}

		shutdownHook.Register("server", func() error {
			s.Shutdown()
			return nil
		})
		return s.ListenAndServe()
	}),
}

var serverKillCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop the daemonized gesturecli server",
	Long:  `Connects to the server and sends a shutdown command via JSON-RPC.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// GetString cannot fail for defined flags
		addr, _ := cmd.Flags().GetString("listen")
		if addr == "" {
			addr = defaultServerAddress
		}

		token, err := server.LoadToken()
		if err != nil {
			return err
		}

		if err := daemon.KillServer(addr, token); err != nil {
			return err
		}

		fmt.Printf("Server shutdown command sent successfully\n")
		return nil
	},
}

var serverTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Generate the server bearer token",
	Long:  `Generates a bearer token, stores it in the OS keyring and prints it. Once a token exists the server requires 'Authorization: Bearer <token>'. Use --clear to remove it.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// GetBool cannot fail for defined flags
		clearToken, _ := cmd.Flags().GetBool("clear")

		if clearToken {
			if err := server.ClearToken(); err != nil {
				return err
			}
			fmt.Println("Server token removed")
			return nil
		}

		token, err := server.GenerateToken()
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// add server subcommands
	serverCmd.AddCommand(serverStartCmd)
	serverCmd.AddCommand(serverKillCmd)
	serverCmd.AddCommand(serverTokenCmd)

	// server start flags
	serverStartCmd.Flags().String("listen", "", fmt.Sprintf("Address to listen on (default: %s)", defaultServerAddress))
	serverStartCmd.Flags().Bool("cors", false, "Enable CORS support")
	serverStartCmd.Flags().BoolP("daemon", "d", false, "Run server in daemon mode (background)")
	serverStartCmd.Flags().String("source", string(source.KindDirectPhase), "Gesture source kind of host messages: direct or tracked")

	// server kill flags
	serverKillCmd.Flags().String("listen", "", fmt.Sprintf("Address of server to kill (default: %s)", defaultServerAddress))

	// server token flags
	serverTokenCmd.Flags().Bool("clear", false, "Remove the stored token")
}
