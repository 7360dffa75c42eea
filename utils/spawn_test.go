package utils

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCommandLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{"simple", "notify-send hi", []string{"notify-send", "hi"}},
		{"double quotes", `notify-send "hello world"`, []string{"notify-send", "hello world"}},
		{"single quotes", `sh -c 'echo a | wc -c'`, []string{"sh", "-c", "echo a | wc -c"}},
		{"extra spaces", "  gnome-calculator   ", []string{"gnome-calculator"}},
		{"pipeline", "echo a | wc -c", []string{"/bin/sh", "-c", "echo a | wc -c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv, err := SplitCommandLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, argv)
		})
	}
}

func TestSplitCommandLine_Errors(t *testing.T) {
	for _, line := range []string{"", "   ", `echo "unterminated`} {
		_, err := SplitCommandLine(line)
		require.Error(t, err, "line %q", line)

		var launchErr *LaunchError
		assert.True(t, errors.As(err, &launchErr))
		assert.Equal(t, line, launchErr.CommandLine)
	}
}

func TestSpawnCommandLine_MissingBinary(t *testing.T) {
	err := SpawnCommandLine("gesturecli-test-no-such-binary --flag")
	require.Error(t, err)

	var launchErr *LaunchError
	require.True(t, errors.As(err, &launchErr))
	assert.Contains(t, launchErr.Error(), "gesturecli-test-no-such-binary")
}

func TestSpawnCommandLine_Starts(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no 'true' binary on windows")
	}
	assert.NoError(t, SpawnCommandLine("true"))
}

func TestSpawnArgv_Empty(t *testing.T) {
	assert.Error(t, SpawnArgv(nil))
}

func TestQuoteCommand(t *testing.T) {
	assert.Equal(t, "notify-send 'hello world'", QuoteCommand([]string{"notify-send", "hello world"}))
	assert.Equal(t, "pactl set-sink-volume @DEFAULT_SINK@ +5%", QuoteCommand([]string{"pactl", "set-sink-volume", "@DEFAULT_SINK@", "+5%"}))
}
