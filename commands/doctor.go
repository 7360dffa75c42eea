package commands

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/touchpad-gestures/gesturecli/settings"
)

// DoctorTools are the external programs actions and sources fall back on.
var DoctorTools = []string{"playerctl", "pactl", "amixer", "wmctrl", "xdg-open", "libinput"}

type DoctorInfo struct {
	GestureCLIVersion string            `json:"gesturecli_version"`
	OS                string            `json:"os"`
	OSVersion         string            `json:"os_version"`
	SettingsPath      string            `json:"settings_path,omitempty"`
	SettingsReadable  bool              `json:"settings_readable"`
	SettingsError     string            `json:"settings_error,omitempty"`
	Intercept         bool              `json:"intercept"`
	SessionBus        bool              `json:"session_bus"`
	Tools             map[string]string `json:"tools"`
}

type pathed interface {
	Path() string
}

func getToolPaths() map[string]string {
	tools := make(map[string]string, len(DoctorTools))
	for _, name := range DoctorTools {
		path, err := exec.LookPath(name)
		if err != nil {
			path = ""
		}
		tools[name] = path
	}
	return tools
}

func getOSVersion() string {
	switch runtime.GOOS {
	case "darwin":
		cmd := exec.Command("sw_vers", "-productVersion")
		output, err := cmd.CombinedOutput()
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(output))
	case "linux":
		// try reading /etc/os-release
		data, err := os.ReadFile("/etc/os-release")
		if err != nil {
			return ""
		}
		lines := strings.Split(string(data), "\n")
		for _, line := range lines {
			if strings.HasPrefix(line, "PRETTY_NAME=") {
				return strings.Trim(strings.TrimPrefix(line, "PRETTY_NAME="), "\"")
			}
		}
		return ""
	default:
		return ""
	}
}

// DoctorCommand reports which backends are installed and whether the
// settings store can be read.
func DoctorCommand(env *Env, version string) *CommandResponse {
	info := DoctorInfo{
		GestureCLIVersion: version,
		OS:                runtime.GOOS,
		OSVersion:         getOSVersion(),
		SessionBus:        os.Getenv("DBUS_SESSION_BUS_ADDRESS") != "",
		Tools:             getToolPaths(),
	}

	if p, ok := env.Store.(pathed); ok {
		info.SettingsPath = p.Path()
	}

	intercept, err := env.Store.GetBoolean(settings.KeyInterceptGestures)
	if err != nil {
		info.SettingsError = err.Error()
	} else {
		info.SettingsReadable = true
		info.Intercept = intercept
	}

	return NewSuccessResponse(info)
}
