package desktop

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"gopkg.in/ini.v1"

	"github.com/touchpad-gestures/gesturecli/utils"
)

const (
	desktopEntrySection = "Desktop Entry"
	appCacheSize        = 64
)

// DesktopEntry is the part of a .desktop file needed to start an application.
type DesktopEntry struct {
	ID   string
	Path string
	Name string
	Exec string
}

// CommandLine returns Exec with the field codes removed. Launching without
// files or URLs leaves nothing to substitute.
func (e DesktopEntry) CommandLine() string {
	var b strings.Builder
	for i := 0; i < len(e.Exec); i++ {
		c := e.Exec[i]
		if c != '%' || i+1 >= len(e.Exec) {
			b.WriteByte(c)
			continue
		}
		i++
		if e.Exec[i] == '%' {
			b.WriteByte('%')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ParseDesktopEntry reads the [Desktop Entry] group of a .desktop file.
func ParseDesktopEntry(path string) (DesktopEntry, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		IgnoreContinuation:      true,
		PreserveSurroundedQuote: true,
		KeyValueDelimiters:      "=",
	}, path)
	if err != nil {
		return DesktopEntry{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	sec, err := f.GetSection(desktopEntrySection)
	if err != nil {
		return DesktopEntry{}, fmt.Errorf("%s has no [%s] group", path, desktopEntrySection)
	}

	if t := sec.Key("Type").String(); t != "" && t != "Application" {
		return DesktopEntry{}, fmt.Errorf("%s is of type %s", path, t)
	}
	if hidden, _ := sec.Key("Hidden").Bool(); hidden {
		return DesktopEntry{}, fmt.Errorf("%s is hidden", path)
	}

	entry := DesktopEntry{
		ID:   filepath.Base(path),
		Path: path,
		Name: sec.Key("Name").String(),
		Exec: sec.Key("Exec").String(),
	}
	if entry.Exec == "" {
		return DesktopEntry{}, fmt.Errorf("%s has no Exec key", path)
	}
	return entry, nil
}

// DefaultAppDirs returns the XDG applications directories, most important first.
func DefaultAppDirs() []string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}

	var dirs []string
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "applications"))
	}
	for _, d := range filepath.SplitList(dataDirs) {
		if d != "" {
			dirs = append(dirs, filepath.Join(d, "applications"))
		}
	}
	return dirs
}

// AppIndex finds desktop entries by desktop file id. Found entries are
// cached; misses are looked up again each time.
type AppIndex struct {
	dirs  []string
	cache *lru.Cache[string, DesktopEntry]
}

func NewAppIndex(dirs []string) (*AppIndex, error) {
	cache, err := lru.New[string, DesktopEntry](appCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create app cache: %w", err)
	}
	return &AppIndex{dirs: dirs, cache: cache}, nil
}

func (a *AppIndex) Lookup(appID string) (DesktopEntry, bool) {
	if entry, ok := a.cache.Get(appID); ok {
		if _, err := os.Stat(entry.Path); err == nil {
			return entry, true
		}
		a.cache.Remove(appID)
	}

	for _, dir := range a.dirs {
		for _, candidate := range candidatePaths(dir, appID) {
			entry, err := ParseDesktopEntry(candidate)
			if err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					utils.Verbose("Skipping %s: %v", candidate, err)
				}
				continue
			}
			entry.ID = appID
			a.cache.Add(appID, entry)
			return entry, true
		}
	}
	return DesktopEntry{}, false
}

// candidatePaths covers both the flat layout and the legacy layout where
// dashes in the id map to subdirectories (e.g. kde-konsole.desktop).
func candidatePaths(dir, appID string) []string {
	paths := []string{filepath.Join(dir, appID)}
	if strings.Contains(appID, "-") {
		paths = append(paths, filepath.Join(dir, filepath.FromSlash(strings.Replace(appID, "-", "/", 1))))
	}
	return paths
}
