package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileStores(t *testing.T) map[string]Store {
	dir := t.TempDir()
	return map[string]Store{
		"ini":  NewIniStore(filepath.Join(dir, "settings.ini")),
		"toml": NewTOMLStore(filepath.Join(dir, "settings.toml")),
		"mem":  NewMemoryStore(),
	}
}

func TestStore_DefaultsWhenEmpty(t *testing.T) {
	for name, store := range fileStores(t) {
		t.Run(name, func(t *testing.T) {
			intercept, err := store.GetBoolean(KeyInterceptGestures)
			require.NoError(t, err)
			assert.Equal(t, DefaultIntercept, intercept)

			action, err := store.GetString("three-finger-swipe-up")
			require.NoError(t, err)
			assert.Equal(t, "toggle-overview", action)

			unknown, err := store.GetString("no-such-key")
			require.NoError(t, err)
			assert.Equal(t, "", unknown)

			list, err := store.GetStringList(KeyCustomCommands)
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for name, store := range fileStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.SetString("four-finger-swipe-down", "custom:notify-send hi"))
			require.NoError(t, store.SetBoolean(KeyInterceptGestures, false))
			require.NoError(t, store.SetStringList(KeyCustomCommands, []string{"gnome-calculator", "", "notify-send \"a b\""}))

			action, err := store.GetString("four-finger-swipe-down")
			require.NoError(t, err)
			assert.Equal(t, "custom:notify-send hi", action)

			intercept, err := store.GetBoolean(KeyInterceptGestures)
			require.NoError(t, err)
			assert.False(t, intercept)

			list, err := store.GetStringList(KeyCustomCommands)
			require.NoError(t, err)
			assert.Equal(t, []string{"gnome-calculator", "notify-send \"a b\""}, list)

			// overwrite keeps a single value
			require.NoError(t, store.SetString("four-finger-swipe-down", "volume-down"))
			action, err = store.GetString("four-finger-swipe-down")
			require.NoError(t, err)
			assert.Equal(t, "volume-down", action)
		})
	}
}

func TestStore_QuotedValuesRoundTrip(t *testing.T) {
	commands := []string{`"/opt/my app/run"`, `"/opt/my app/run" "two words"`, `'single quoted'`}

	for name, store := range fileStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.SetStringList(KeyCustomCommands, commands))
			require.NoError(t, store.SetString("three-finger-tap", commands[0]))

			list, err := store.GetStringList(KeyCustomCommands)
			require.NoError(t, err)
			assert.Equal(t, commands, list)

			action, err := store.GetString("three-finger-tap")
			require.NoError(t, err)
			assert.Equal(t, commands[0], action)
		})
	}
}

func TestStore_RepeatedReadsAreStable(t *testing.T) {
	for name, store := range fileStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.SetString("three-finger-tap", "volume-up"))

			first, err := store.GetString("three-finger-tap")
			require.NoError(t, err)
			second, err := store.GetString("three-finger-tap")
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestIniStore_SeesExternalEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	store := NewIniStore(path)

	require.NoError(t, os.WriteFile(path, []byte("three-finger-tap = volume-up\n"), 0o644))
	v, err := store.GetString("three-finger-tap")
	require.NoError(t, err)
	assert.Equal(t, "volume-up", v)

	require.NoError(t, os.WriteFile(path, []byte("three-finger-tap = custom:xdg-open https://example.com/a#b\n"), 0o644))
	v, err = store.GetString("three-finger-tap")
	require.NoError(t, err)
	assert.Equal(t, "custom:xdg-open https://example.com/a#b", v)
}

func TestIniStore_RepeatedKeysFormList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	content := "custom-commands = gnome-calculator\ncustom-commands = notify-send hi\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	list, err := NewIniStore(path).GetStringList(KeyCustomCommands)
	require.NoError(t, err)
	assert.Equal(t, []string{"gnome-calculator", "notify-send hi"}, list)
}

func TestStore_Unavailable(t *testing.T) {
	dir := t.TempDir()

	// a directory cannot be read as a settings file
	stores := map[string]Store{
		"ini":  NewIniStore(dir),
		"toml": NewTOMLStore(dir),
		"mem":  &MemoryStore{values: map[string]any{}, Unavailable: true},
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			_, err := store.GetBoolean(KeyInterceptGestures)
			assert.ErrorIs(t, err, ErrUnavailable)

			_, err = store.GetString("three-finger-tap")
			assert.ErrorIs(t, err, ErrUnavailable)

			_, err = store.GetStringList(KeyCustomCommands)
			assert.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestTOMLStore_InvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is = = not toml"), 0o644))

	_, err := NewTOMLStore(path).GetString("three-finger-tap")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestTOMLStore_WrongType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("intercept-gestures = \"yes\"\n"), 0o644))

	_, err := NewTOMLStore(path).GetBoolean(KeyInterceptGestures)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOpen_PicksBackendByExtension(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(filepath.Join(dir, "a.toml"))
	require.NoError(t, err)
	assert.IsType(t, &TOMLStore{}, s)

	s, err = Open(filepath.Join(dir, "a.ini"))
	require.NoError(t, err)
	assert.IsType(t, &IniStore{}, s)

	_, err = Open(filepath.Join(dir, "a.json"))
	assert.Error(t, err)
}

func TestMemoryStore_CountsReads(t *testing.T) {
	s := NewMemoryStore()
	_, _ = s.GetString("three-finger-tap")
	_, _ = s.GetBoolean(KeyInterceptGestures)
	assert.Equal(t, 2, s.Reads())
}
