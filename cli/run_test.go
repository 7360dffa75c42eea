package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/touchpad-gestures/gesturecli/source"
	"github.com/touchpad-gestures/gesturecli/types"
	"github.com/touchpad-gestures/gesturecli/utils"
)

func discard(types.GestureSample) {}

func TestSelectSource(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		caps      source.Capabilities
		feedKind  source.Kind
		wantKind  source.Kind
		wantInput string
	}{
		{"auto prefers libinput", sourceAuto, source.Capabilities{GestureSignal: true, SwipeTracker: true}, source.KindTrackedProgress, source.KindDirectPhase, sourceLibinput},
		{"auto falls back to stdin", sourceAuto, source.Capabilities{SwipeTracker: true}, source.KindTrackedProgress, source.KindTrackedProgress, sourceStdin},
		{"auto stdin with direct messages", sourceAuto, source.Capabilities{SwipeTracker: true}, source.KindDirectPhase, source.KindDirectPhase, sourceStdin},
		{"explicit libinput", sourceLibinput, source.Capabilities{GestureSignal: true}, source.KindTrackedProgress, source.KindDirectPhase, sourceLibinput},
		{"explicit stdin", sourceStdin, source.Capabilities{}, source.KindTrackedProgress, source.KindTrackedProgress, sourceStdin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, input, err := selectSource(tt.mode, tt.caps, tt.feedKind, discard)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, adapter.Kind())
			assert.Equal(t, tt.wantInput, input)
		})
	}
}

func TestSelectSource_SetupFailure(t *testing.T) {
	_, _, err := selectSource(sourceAuto, source.Capabilities{}, source.KindTrackedProgress, discard)
	assert.ErrorIs(t, err, source.ErrNoSource)

	_, _, err = selectSource(sourceLibinput, source.Capabilities{SwipeTracker: true}, source.KindTrackedProgress, discard)
	assert.ErrorIs(t, err, source.ErrNoSource)

	_, _, err = selectSource("evdev", source.Capabilities{GestureSignal: true}, source.KindTrackedProgress, discard)
	assert.Error(t, err)
}

func TestIsFeedMode(t *testing.T) {
	tests := []struct {
		name string
		mode os.FileMode
		want bool
	}{
		{"pipe", os.ModeNamedPipe | 0o600, true},
		{"socket", os.ModeSocket | 0o600, true},
		{"regular file", 0o644, true},
		{"dev null", os.ModeDevice | os.ModeCharDevice | 0o666, false},
		{"directory", os.ModeDir | 0o755, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isFeedMode(tt.mode))
		})
	}
}

func TestStdinIsFeed(t *testing.T) {
	devNull, err := os.Open(os.DevNull)
	require.NoError(t, err)
	defer devNull.Close()
	assert.False(t, stdinIsFeed(devNull))

	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	defer pr.Close()
	defer pw.Close()
	assert.True(t, stdinIsFeed(pr))

	path := filepath.Join(t.TempDir(), "messages.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"cancel"}`+"\n"), 0o600))
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	assert.True(t, stdinIsFeed(file))
}

func TestSelectSource_DevNullStdinIsSetupFailure(t *testing.T) {
	devNull, err := os.Open(os.DevNull)
	require.NoError(t, err)
	defer devNull.Close()

	caps := source.Capabilities{SwipeTracker: stdinIsFeed(devNull)}
	_, _, err = selectSource(sourceAuto, caps, source.KindTrackedProgress, discard)
	assert.ErrorIs(t, err, source.ErrNoSource)
}

func TestRunGestures_SetupFailureIsNotLogged(t *testing.T) {
	var buf bytes.Buffer
	utils.SetOutput(&buf)
	defer utils.SetOutput(nil)

	saved := runSource
	runSource = sourceAuto
	defer func() { runSource = saved }()

	err := runGestures(source.Capabilities{}, source.KindTrackedProgress, discard)
	assert.ErrorIs(t, err, source.ErrNoSource)
	assert.Contains(t, err.Error(), "gesture handling disabled")
	assert.Empty(t, buf.String())
}
