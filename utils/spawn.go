package utils

import (
	"errors"
	"fmt"
	"os/exec"

	"al.essio.dev/pkg/shellescape"
	"github.com/mattn/go-shellwords"
)

var errEmptyCommandLine = errors.New("empty command line")

// LaunchError reports a command that could not be parsed, found or started.
// Failures after a successful start are never observed.
type LaunchError struct {
	CommandLine string
	Err         error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch '%s': %v", e.CommandLine, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// SplitCommandLine splits a command line into argv using shell quoting rules.
// Lines containing unquoted shell operators are handed to /bin/sh as a whole.
func SplitCommandLine(commandLine string) ([]string, error) {
	parser := shellwords.NewParser()
	argv, err := parser.Parse(commandLine)
	if err != nil {
		return nil, &LaunchError{CommandLine: commandLine, Err: err}
	}
	if parser.Position >= 0 {
		return []string{"/bin/sh", "-c", commandLine}, nil
	}
	if len(argv) == 0 {
		return nil, &LaunchError{CommandLine: commandLine, Err: errEmptyCommandLine}
	}
	return argv, nil
}

// SpawnCommandLine parses commandLine and starts it detached from this process.
func SpawnCommandLine(commandLine string) error {
	argv, err := SplitCommandLine(commandLine)
	if err != nil {
		return err
	}
	return SpawnArgv(argv)
}

// SpawnArgv starts argv in its own process group and returns without waiting.
// The child is reaped in the background.
func SpawnArgv(argv []string) error {
	if len(argv) == 0 {
		return &LaunchError{Err: errEmptyCommandLine}
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	ConfigureDetachedProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return &LaunchError{CommandLine: QuoteCommand(argv), Err: err}
	}

	Verbose("Spawned %s (pid %d)", QuoteCommand(argv), cmd.Process.Pid)
	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

// QuoteCommand renders argv as a single shell-safe line for logs and dry runs.
func QuoteCommand(argv []string) string {
	return shellescape.QuoteCommand(argv)
}
