package desktop

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/touchpad-gestures/gesturecli/utils"
)

const (
	shellBusName     = "org.gnome.Shell"
	shellObjectPath  = "/org/gnome/Shell"
	overviewProperty = "org.gnome.Shell.OverviewActive"
	mprisObjectPath  = "/org/mpris/MediaPlayer2"
	mprisPlayPause   = "org.mpris.MediaPlayer2.Player.PlayPause"
)

// ToggleOverview flips the GNOME Shell OverviewActive property.
func (h *Host) ToggleOverview() bool {
	conn, err := dbus.SessionBus()
	if err != nil {
		utils.Verbose("No session bus: %v", err)
		return false
	}

	shell := conn.Object(shellBusName, dbus.ObjectPath(shellObjectPath))
	v, err := shell.GetProperty(overviewProperty)
	if err != nil {
		utils.Verbose("Failed to read %s: %v", overviewProperty, err)
		return false
	}

	active, ok := v.Value().(bool)
	if !ok {
		return false
	}

	if err := shell.SetProperty(overviewProperty, dbus.MakeVariant(!active)); err != nil {
		utils.Verbose("Failed to set %s: %v", overviewProperty, err)
		return false
	}
	return true
}

// MediaPlayPause calls PlayPause on the MPRIS player owning busName.
func (h *Host) MediaPlayPause(busName string) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	call := conn.Object(busName, dbus.ObjectPath(mprisObjectPath)).Call(mprisPlayPause, 0)
	if call.Err != nil {
		return fmt.Errorf("%s on %s failed: %w", mprisPlayPause, busName, call.Err)
	}
	return nil
}
