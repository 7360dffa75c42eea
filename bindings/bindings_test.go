package bindings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/touchpad-gestures/gesturecli/settings"
	"github.com/touchpad-gestures/gesturecli/types"
)

func TestFingerWord(t *testing.T) {
	word, ok := FingerWord(3)
	assert.True(t, ok)
	assert.Equal(t, "three", word)

	word, ok = FingerWord(4)
	assert.True(t, ok)
	assert.Equal(t, "four", word)

	for _, n := range []int{-1, 0, 1, 2, 5, 10} {
		_, ok := FingerWord(n)
		assert.False(t, ok, "fingers=%d", n)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		event    types.ClassifiedEvent
		expected string
		ok       bool
	}{
		{types.Swipe(3, types.DirectionRight), "three-finger-swipe-right", true},
		{types.Swipe(4, types.DirectionDown), "four-finger-swipe-down", true},
		{types.Tap(3), "three-finger-tap", true},
		{types.Tap(4), "four-finger-tap", true},
		{types.Swipe(2, types.DirectionLeft), "", false},
		{types.Tap(5), "", false},
		{types.NoEvent(), "", false},
		{types.ClassifiedEvent{Kind: types.EventSwipe, Fingers: 3}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.event.String(), func(t *testing.T) {
			key, ok := Key(tt.event)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, key)
		})
	}
}

func TestAllKeys(t *testing.T) {
	keys := AllKeys()
	assert.Equal(t, []string{
		"three-finger-swipe-left",
		"three-finger-swipe-right",
		"three-finger-swipe-up",
		"three-finger-swipe-down",
		"three-finger-tap",
		"four-finger-swipe-left",
		"four-finger-swipe-right",
		"four-finger-swipe-up",
		"four-finger-swipe-down",
		"four-finger-tap",
	}, keys)

	for _, k := range keys {
		assert.True(t, IsBindingKey(k))
		assert.NotEmpty(t, settings.DefaultString(k), "default for %s", k)
	}
	assert.False(t, IsBindingKey("five-finger-tap"))
}

func TestResolve(t *testing.T) {
	store := settings.NewMemoryStore()
	require.NoError(t, store.SetString("three-finger-swipe-right", "toggle-overview"))
	require.NoError(t, store.SetString("four-finger-swipe-down", "custom:notify-send hi"))
	require.NoError(t, store.SetString("three-finger-tap", ""))

	r := NewResolver(store)

	assert.Equal(t, types.ActionID("toggle-overview"), r.Resolve(types.Swipe(3, types.DirectionRight)))
	assert.Equal(t, types.ActionID("custom:notify-send hi"), r.Resolve(types.Swipe(4, types.DirectionDown)))
	assert.Equal(t, types.ActionNone, r.Resolve(types.Tap(3)))
}

func TestResolve_OneReadPerEvent(t *testing.T) {
	store := settings.NewMemoryStore()
	r := NewResolver(store)

	r.Resolve(types.Swipe(4, types.DirectionUp))
	assert.Equal(t, 1, store.Reads())
}

func TestResolve_Idempotent(t *testing.T) {
	store := settings.NewMemoryStore()
	require.NoError(t, store.SetString("four-finger-tap", "volume-down"))
	r := NewResolver(store)

	first := r.Resolve(types.Tap(4))
	second := r.Resolve(types.Tap(4))
	assert.Equal(t, first, second)
	assert.Equal(t, types.ActionID("volume-down"), first)
}

func TestResolve_UnsupportedFingersSkipStore(t *testing.T) {
	store := settings.NewMemoryStore()
	r := NewResolver(store)

	for _, fingers := range []int{0, 1, 2, 5} {
		assert.Equal(t, types.ActionNone, r.Resolve(types.Swipe(fingers, types.DirectionRight)))
		assert.Equal(t, types.ActionNone, r.Resolve(types.Tap(fingers)))
	}
	assert.Equal(t, types.ActionNone, r.Resolve(types.NoEvent()))
	assert.Equal(t, 0, store.Reads())
}

func TestResolve_StoreUnavailable(t *testing.T) {
	store := settings.NewMemoryStore()
	store.Unavailable = true
	r := NewResolver(store)

	assert.Equal(t, types.ActionNone, r.Resolve(types.Swipe(3, types.DirectionLeft)))
}
