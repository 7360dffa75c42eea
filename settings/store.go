// Package settings is the flat key-value configuration store gesture
// bindings are read from. Stores are re-read on every access so edits made
// while the daemon runs take effect on the next gesture.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	KeyInterceptGestures = "intercept-gestures"
	KeyCustomCommands    = "custom-commands"

	appDir          = "gesturecli"
	defaultFileName = "settings.ini"
)

// ErrUnavailable is returned when the backing store cannot be read or parsed.
var ErrUnavailable = errors.New("settings store unavailable")

// Store is the typed accessor set the rest of the program uses.
type Store interface {
	GetBoolean(key string) (bool, error)
	GetString(key string) (string, error)
	GetStringList(key string) ([]string, error)
	SetBoolean(key string, value bool) error
	SetString(key, value string) error
	SetStringList(key string, values []string) error
}

// DefaultIntercept is the value of intercept-gestures when it is unset.
const DefaultIntercept = true

// defaultBindings are the schema defaults for the ten binding keys.
var defaultBindings = map[string]string{
	"three-finger-swipe-left":  "workspace-right",
	"three-finger-swipe-right": "workspace-left",
	"three-finger-swipe-up":    "toggle-overview",
	"three-finger-swipe-down":  "toggle-overview",
	"three-finger-tap":         "media-play-pause",
	"four-finger-swipe-left":   "none",
	"four-finger-swipe-right":  "none",
	"four-finger-swipe-up":     "volume-up",
	"four-finger-swipe-down":   "volume-down",
	"four-finger-tap":          "launch-terminal",
}

// DefaultString returns the schema default for a string key.
func DefaultString(key string) string {
	return defaultBindings[key]
}

func defaultBoolean(key string) bool {
	if key == KeyInterceptGestures {
		return DefaultIntercept
	}
	return false
}

// DefaultPath returns $XDG_CONFIG_HOME/gesturecli/settings.ini or the
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, appDir, defaultFileName), nil
}

// Open returns a file-backed store for path, picking the format from the
// file extension. An empty path means DefaultPath.
func Open(path string) (Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return NewTOMLStore(path), nil
	case ".ini", ".conf", "":
		return NewIniStore(path), nil
	default:
		return nil, fmt.Errorf("unsupported settings format: %s", path)
	}
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	return nil
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
