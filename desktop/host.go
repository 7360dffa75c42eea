// Package desktop talks to the Linux desktop session: workspaces through
// wmctrl, the GNOME Shell overview and MPRIS players over D-Bus, and
// applications through XDG desktop entries.
package desktop

import (
	"context"
	"os/exec"
	"time"

	"github.com/touchpad-gestures/gesturecli/utils"
)

const commandTimeout = 2 * time.Second

type runFunc func(name string, args ...string) ([]byte, error)

// Host implements actions.Desktop for a Linux session.
type Host struct {
	apps *AppIndex
	run  runFunc
}

func New() (*Host, error) {
	apps, err := NewAppIndex(DefaultAppDirs())
	if err != nil {
		return nil, err
	}
	return &Host{apps: apps, run: runOutput}, nil
}

func runOutput(name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	return exec.CommandContext(ctx, name, args...).Output()
}

func (h *Host) LaunchApp(appID string) bool {
	entry, ok := h.apps.Lookup(appID)
	if !ok {
		return false
	}

	if err := utils.SpawnCommandLine(entry.CommandLine()); err != nil {
		utils.Verbose("Failed to start %s: %v", entry.Path, err)
		return false
	}
	return true
}

func (h *Host) LaunchURI(uri string) bool {
	if err := utils.SpawnArgv([]string{"xdg-open", uri}); err != nil {
		utils.Verbose("Failed to open %s: %v", uri, err)
		return false
	}
	return true
}
