package actions

import (
	"fmt"
	"strings"

	"github.com/touchpad-gestures/gesturecli/types"
	"github.com/touchpad-gestures/gesturecli/utils"
)

// VolumeStep is the percentage each volume action changes the output by.
const VolumeStep = 5

// DefaultMediaPlayer is the MPRIS bus name used when playerctl is missing.
const DefaultMediaPlayer = "org.mpris.MediaPlayer2.spotify"

// Desktop is the host environment. Every call is synchronous and reports
// failure by returning false instead of an error.
type Desktop interface {
	ActiveWorkspace() (int, bool)
	NeighborWorkspace(from int, dir types.Direction) (int, bool)
	ActivateWorkspace(index int) bool
	ToggleOverview() bool
	LaunchApp(appID string) bool
	LaunchURI(uri string) bool
	MediaPlayPause(player string) error
}

// Spawner starts a command line without waiting for it to finish.
type Spawner interface {
	SpawnCommandLine(commandLine string) error
}

// CommandSpawner spawns real processes.
type CommandSpawner struct{}

func (CommandSpawner) SpawnCommandLine(commandLine string) error {
	return utils.SpawnCommandLine(commandLine)
}

// Step is one backend attempt of an action, in the order it would be tried.
type Step struct {
	Backend string `json:"backend"`
	Command string `json:"command,omitempty"`
}

type backend struct {
	Step
	run func() error
}

// Dispatcher performs actions. Dispatch never returns an error and never
// panics; failures are logged.
type Dispatcher struct {
	desktop     Desktop
	spawner     Spawner
	mediaPlayer string
}

func NewDispatcher(desktop Desktop, spawner Spawner) *Dispatcher {
	return &Dispatcher{
		desktop:     desktop,
		spawner:     spawner,
		mediaPlayer: DefaultMediaPlayer,
	}
}

// SetMediaPlayer changes the MPRIS bus name used by the media fallback.
func (d *Dispatcher) SetMediaPlayer(busName string) {
	if busName != "" {
		d.mediaPlayer = busName
	}
}

// Dispatch performs the action named by id. "none", unknown and malformed
// identifiers do nothing.
func (d *Dispatcher) Dispatch(id types.ActionID) {
	defer func() {
		if r := recover(); r != nil {
			utils.Error("Action %s panicked: %v", id, r)
		}
	}()

	action, ok := Lookup(id)
	if !ok {
		if id != "" {
			utils.Verbose("Ignoring unknown action '%s'", id)
		}
		return
	}

	utils.Verbose("Dispatching %s", action.ID)

	switch action.Kind {
	case KindNone:
		return
	case KindWorkspace:
		d.switchWorkspace(action.Direction)
	case KindOverview:
		if !d.desktop.ToggleOverview() {
			utils.Warn("Failed to toggle overview")
		}
	case KindLaunchApp:
		d.launchApp(action.Target)
	case KindLaunchURI:
		if !d.desktop.LaunchURI(action.Target) {
			utils.Warn("Failed to open %s", action.Target)
		}
	case KindMedia, KindVolume:
		runChain(action.Title, d.backends(action))
	case KindCustom:
		if err := d.spawner.SpawnCommandLine(action.Command); err != nil {
			utils.Warn("Failed to run custom command '%s': %v", action.Command, err)
		}
	}
}

// Plan lists the backends Dispatch would try for id, without running any.
func (d *Dispatcher) Plan(id types.ActionID) ([]Step, error) {
	action, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("unknown action: %s", id)
	}

	switch action.Kind {
	case KindNone:
		return []Step{}, nil
	case KindWorkspace:
		return []Step{{Backend: "workspace", Command: string(action.Direction)}}, nil
	case KindOverview:
		return []Step{{Backend: "overview"}}, nil
	case KindLaunchApp:
		return []Step{
			{Backend: "app", Command: action.Target},
			{Backend: "command", Command: DeriveAppCommand(action.Target)},
		}, nil
	case KindLaunchURI:
		return []Step{{Backend: "uri", Command: action.Target}}, nil
	case KindCustom:
		return []Step{{Backend: "command", Command: action.Command}}, nil
	}

	steps := []Step{}
	for _, b := range d.backends(action) {
		steps = append(steps, b.Step)
	}
	return steps, nil
}

func (d *Dispatcher) backends(action Action) []backend {
	switch action.Kind {
	case KindMedia:
		player := d.mediaPlayer
		return []backend{
			d.command("playerctl", "playerctl "+action.Target),
			{
				Step: Step{Backend: "mpris", Command: player},
				run:  func() error { return d.desktop.MediaPlayPause(player) },
			},
		}
	case KindVolume:
		sign := "+"
		if action.Direction == types.DirectionDown {
			sign = "-"
		}
		return []backend{
			d.command("pactl", fmt.Sprintf("pactl set-sink-volume @DEFAULT_SINK@ %s%d%%", sign, VolumeStep)),
			d.command("amixer", fmt.Sprintf("amixer set Master %d%%%s", VolumeStep, sign)),
		}
	}
	return nil
}

func (d *Dispatcher) command(name, commandLine string) backend {
	return backend{
		Step: Step{Backend: name, Command: commandLine},
		run:  func() error { return d.spawner.SpawnCommandLine(commandLine) },
	}
}

// runChain tries each backend in order until one succeeds.
func runChain(label string, chain []backend) bool {
	var lastErr error
	for _, b := range chain {
		err := b.run()
		if err == nil {
			utils.Verbose("%s handled by %s", label, b.Backend)
			return true
		}
		utils.Verbose("%s backend %s failed: %v", label, b.Backend, err)
		lastErr = err
	}

	if lastErr != nil {
		utils.Warn("Failed to run %s: %v", label, lastErr)
	}
	return false
}

func (d *Dispatcher) switchWorkspace(dir types.Direction) {
	current, ok := d.desktop.ActiveWorkspace()
	if !ok {
		utils.Verbose("No active workspace")
		return
	}

	next, ok := d.desktop.NeighborWorkspace(current, dir)
	if !ok || next == current {
		utils.Verbose("No workspace %s of %d", dir, current)
		return
	}

	if !d.desktop.ActivateWorkspace(next) {
		utils.Warn("Failed to activate workspace %d", next)
	}
}

func (d *Dispatcher) launchApp(appID string) {
	if d.desktop.LaunchApp(appID) {
		return
	}

	commandLine := DeriveAppCommand(appID)
	utils.Verbose("App %s not found, trying '%s'", appID, commandLine)
	if err := d.spawner.SpawnCommandLine(commandLine); err != nil {
		utils.Warn("Failed to launch app '%s': %v", appID, err)
	}
}

// DeriveAppCommand guesses a command name from a desktop file id, e.g.
// "org.gnome.Terminal.desktop" becomes "org.gnome.terminal".
func DeriveAppCommand(appID string) string {
	return strings.ToLower(strings.TrimSuffix(appID, ".desktop"))
}
