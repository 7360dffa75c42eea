package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownHook_RunsInReverseOrder(t *testing.T) {
	hook := NewShutdownHook()

	var order []string
	hook.Register("source", func() error {
		order = append(order, "source")
		return nil
	})
	hook.Register("server", func() error {
		order = append(order, "server")
		return nil
	})
	require.Equal(t, 2, hook.Count())

	require.NoError(t, hook.Shutdown())
	assert.Equal(t, []string{"server", "source"}, order)
	assert.Zero(t, hook.Count())
}

func TestShutdownHook_ContinuesAfterErrors(t *testing.T) {
	hook := NewShutdownHook()
	failure := errors.New("cleanup failed")

	calls := 0
	hook.Register("first", func() error {
		calls++
		return nil
	})
	hook.Register("broken", func() error {
		calls++
		return failure
	})

	err := hook.Shutdown()
	assert.ErrorIs(t, err, failure)
	assert.ErrorContains(t, err, "broken")
	assert.Equal(t, 2, calls)
	assert.Zero(t, hook.Count())

	// hooks only run once
	assert.NoError(t, hook.Shutdown())
	assert.Equal(t, 2, calls)
}
