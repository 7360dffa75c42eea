// Package bindings maps classified gestures to the action identifiers stored
// in the settings store.
package bindings

import (
	"fmt"

	"github.com/touchpad-gestures/gesturecli/settings"
	"github.com/touchpad-gestures/gesturecli/types"
	"github.com/touchpad-gestures/gesturecli/utils"
)

// SupportedFingers are the finger counts that have binding keys.
var SupportedFingers = []int{3, 4}

// FingerWord returns the word used in binding keys for a finger count.
func FingerWord(fingers int) (string, bool) {
	switch fingers {
	case 3:
		return "three", true
	case 4:
		return "four", true
	}
	return "", false
}

// Key composes the settings key for an event, e.g. "four-finger-swipe-down".
// It reports false for none events and unsupported finger counts.
func Key(event types.ClassifiedEvent) (string, bool) {
	word, ok := FingerWord(event.Fingers)
	if !ok {
		return "", false
	}

	switch event.Kind {
	case types.EventSwipe:
		if event.Direction == "" {
			return "", false
		}
		return fmt.Sprintf("%s-finger-swipe-%s", word, event.Direction), true
	case types.EventTap:
		return fmt.Sprintf("%s-finger-tap", word), true
	}
	return "", false
}

// AllKeys lists the ten binding keys: per finger count, four swipes then tap.
func AllKeys() []string {
	keys := make([]string, 0, 10)
	for _, fingers := range SupportedFingers {
		for _, dir := range types.Directions {
			key, _ := Key(types.Swipe(fingers, dir))
			keys = append(keys, key)
		}
		key, _ := Key(types.Tap(fingers))
		keys = append(keys, key)
	}
	return keys
}

// IsBindingKey reports whether key is one of the ten binding keys.
func IsBindingKey(key string) bool {
	for _, k := range AllKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// Resolver looks up the action bound to a classified event.
type Resolver struct {
	store settings.Store
}

func NewResolver(store settings.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve performs at most one store read. Events without a binding key and
// store failures resolve to "none".
func (r *Resolver) Resolve(event types.ClassifiedEvent) types.ActionID {
	key, ok := Key(event)
	if !ok {
		utils.Verbose("No binding for %s", event)
		return types.ActionNone
	}

	value, err := r.store.GetString(key)
	if err != nil {
		utils.Warn("Failed to read binding %s: %v", key, err)
		return types.ActionNone
	}
	if value == "" {
		return types.ActionNone
	}

	utils.Verbose("Binding %s = %s", key, value)
	return types.ActionID(value)
}
