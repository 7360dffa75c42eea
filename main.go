package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/touchpad-gestures/gesturecli/cli"
	"github.com/touchpad-gestures/gesturecli/utils"
)

func main() {
	hook := utils.NewShutdownHook()
	cli.SetShutdownHook(hook)

	// setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// run command in goroutine
	done := make(chan error, 1)
	go func() {
		done <- cli.Execute()
	}()

	// wait for command completion or signal
	select {
	case <-sigChan:
		if err := hook.Shutdown(); err != nil {
			utils.Warn("Shutdown: %v", err)
		}
		// let the command return after its hooks ran; a second signal forces exit
		select {
		case err := <-done:
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		case <-sigChan:
			os.Exit(1)
		}
	case err := <-done:
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
