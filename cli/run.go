package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/touchpad-gestures/gesturecli/commands"
	"github.com/touchpad-gestures/gesturecli/source"
	"github.com/touchpad-gestures/gesturecli/utils"
)

const (
	sourceAuto     = "auto"
	sourceLibinput = "libinput"
	sourceStdin    = "stdin"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Classify gestures and dispatch their actions",
	Long: `Reads touchpad gestures and runs the action bound to each one until interrupted.

Gestures come from 'libinput debug-events' when libinput is installed, or from
newline-delimited JSON host messages on stdin:

  {"type":"gesture","phase":"end","fingers":3,"dx":50,"dy":0}
  {"type":"begin","points":4}
  {"type":"update","progress":0.2}
  {"type":"end","duration":250,"progress":0.6}
  {"type":"cancel"}`,
	Args: cobra.NoArgs,
	RunE: withEnv(func(env *commands.Env, cmd *cobra.Command, args []string) error {
		feedKind, err := source.ParseKind(runFeedKind)
		if err != nil {
			return err
		}

		caps := source.Capabilities{
			GestureSignal: source.LibinputAvailable(),
			SwipeTracker:  stdinIsFeed(os.Stdin),
		}
		return runGestures(caps, feedKind, env.Pipeline.Sink())
	}),
}

// runGestures feeds the selected source into sink until the input ends or the
// shutdown hook fires. A setup failure is returned without being logged.
func runGestures(caps source.Capabilities, feedKind source.Kind, sink source.Sink) error {
	adapter, input, err := selectSource(runSource, caps, feedKind, sink)
	if err != nil {
		return fmt.Errorf("gesture handling disabled: %w", err)
	}
	utils.Info("Using %s gesture source from %s", adapter.Kind(), input)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	shutdownHook.Register("gesture source", func() error {
		cancel()
		return nil
	})

	err = runSourceInput(ctx, adapter, input)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// stdinIsFeed reports whether stdin can carry host messages: a pipe, socket
// or file. Terminals and other character devices such as /dev/null cannot.
func stdinIsFeed(stdin *os.File) bool {
	if term.IsTerminal(int(stdin.Fd())) {
		return false
	}
	fi, err := stdin.Stat()
	if err != nil {
		return false
	}
	return isFeedMode(fi.Mode())
}

func isFeedMode(mode os.FileMode) bool {
	if mode&os.ModeCharDevice != 0 || mode&os.ModeDevice != 0 {
		return false
	}
	return mode&(os.ModeNamedPipe|os.ModeSocket) != 0 || mode.IsRegular()
}

// selectSource picks the adapter and the input that feeds it. In auto mode
// libinput wins over a piped stdin.
func selectSource(mode string, caps source.Capabilities, feedKind source.Kind, sink source.Sink) (*source.Adapter, string, error) {
	switch mode {
	case sourceAuto:
		adapter, err := source.Select(caps, sink)
		if err != nil {
			return nil, "", err
		}
		if adapter.Kind() == source.KindDirectPhase {
			return adapter, sourceLibinput, nil
		}
		adapter, err = source.ForKind(feedKind, sink)
		return adapter, sourceStdin, err

	case sourceLibinput:
		if !caps.GestureSignal {
			return nil, "", fmt.Errorf("%w: %s not found on PATH", source.ErrNoSource, source.LibinputCommand[0])
		}
		adapter, err := source.ForKind(source.KindDirectPhase, sink)
		return adapter, sourceLibinput, err

	case sourceStdin:
		adapter, err := source.ForKind(feedKind, sink)
		return adapter, sourceStdin, err
	}

	return nil, "", fmt.Errorf("unknown source '%s', expected auto, libinput or stdin", mode)
}

func runSourceInput(ctx context.Context, adapter *source.Adapter, input string) error {
	if input == sourceLibinput {
		direct, ok := adapter.Direct()
		if !ok {
			return source.ErrWrongSource
		}
		return source.NewLibinputReader(direct).Run(ctx)
	}

	return adapter.Feed(ctx, os.Stdin)
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runSource, "source", sourceAuto, "gesture input: auto, libinput or stdin")
	runCmd.Flags().StringVar(&runFeedKind, "kind", string(source.KindTrackedProgress), "source kind of stdin messages: direct or tracked")
}
