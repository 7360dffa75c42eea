// Package actions holds the catalogue of gesture actions and the dispatcher
// that performs them.
package actions

import (
	"strings"

	"github.com/touchpad-gestures/gesturecli/types"
)

type Kind string

const (
	KindNone      Kind = "none"
	KindWorkspace Kind = "workspace"
	KindOverview  Kind = "overview"
	KindLaunchApp Kind = "launch-app"
	KindLaunchURI Kind = "launch-uri"
	KindMedia     Kind = "media"
	KindVolume    Kind = "volume"
	KindCustom    Kind = "custom"
)

// CustomPrefix tags an action identifier carrying a shell command.
const CustomPrefix = "custom:"

const (
	TerminalAppID = "org.gnome.Terminal.desktop"
	BrowserURI    = "https://www.google.com"
)

// Action describes one entry of the catalogue. Direction is used by
// workspace and volume actions, Target by app, URI and media actions.
type Action struct {
	ID        types.ActionID  `json:"id"`
	Title     string          `json:"title"`
	Kind      Kind            `json:"kind"`
	Direction types.Direction `json:"direction,omitempty"`
	Target    string          `json:"target,omitempty"`
	Command   string          `json:"command,omitempty"`
}

var builtins = []Action{
	{ID: "none", Title: "None", Kind: KindNone},
	{ID: "workspace-left", Title: "Switch to left workspace", Kind: KindWorkspace, Direction: types.DirectionLeft},
	{ID: "workspace-right", Title: "Switch to right workspace", Kind: KindWorkspace, Direction: types.DirectionRight},
	{ID: "toggle-overview", Title: "Toggle Activities Overview", Kind: KindOverview},
	{ID: "launch-terminal", Title: "Launch Terminal", Kind: KindLaunchApp, Target: TerminalAppID},
	{ID: "launch-browser", Title: "Launch Browser", Kind: KindLaunchURI, Target: BrowserURI},
	{ID: "media-play-pause", Title: "Play/Pause Media", Kind: KindMedia, Target: "play-pause"},
	{ID: "volume-up", Title: "Volume Up", Kind: KindVolume, Direction: types.DirectionUp},
	{ID: "volume-down", Title: "Volume Down", Kind: KindVolume, Direction: types.DirectionDown},
}

// Builtins returns a copy of the built-in catalogue in display order.
func Builtins() []Action {
	out := make([]Action, len(builtins))
	copy(out, builtins)
	return out
}

// Custom builds the identifier that runs command.
func Custom(command string) types.ActionID {
	return types.ActionID(CustomPrefix + command)
}

// Lookup resolves an identifier to its action. Unknown identifiers and
// custom identifiers with an empty command report false.
func Lookup(id types.ActionID) (Action, bool) {
	s := string(id)

	if strings.HasPrefix(s, CustomPrefix) {
		command := s[len(CustomPrefix):]
		if strings.TrimSpace(command) == "" {
			return Action{}, false
		}
		return Action{
			ID:      id,
			Title:   "Custom: " + command,
			Kind:    KindCustom,
			Command: command,
		}, true
	}

	for _, a := range builtins {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}
