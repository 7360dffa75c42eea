// Package gesture turns the terminal sample of a gesture session into a
// ClassifiedEvent.
//
// Displacement samples (direct-phase sources) support four swipe directions
// and taps. Progress samples (tracked sources) only yield horizontal swipes.
package gesture

import (
	"math"

	"github.com/touchpad-gestures/gesturecli/types"
)

// Thresholds holds the classification limits. Displacement limits are in
// pixel-equivalent units, ProgressMin is in normalized progress.
type Thresholds struct {
	VerticalMin float64 `json:"verticalMin"`
	TapMax      float64 `json:"tapMax"`
	ProgressMin float64 `json:"progressMin"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		VerticalMin: 20,
		TapMax:      10,
		ProgressMin: 0.3,
	}
}

type Classifier struct {
	thresholds Thresholds
}

func NewClassifier(thresholds Thresholds) *Classifier {
	return &Classifier{thresholds: thresholds}
}

func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// Classify returns the event for a terminal sample, or a none event for
// anything else. Finger counts are passed through untouched.
func (c *Classifier) Classify(sample types.GestureSample) types.ClassifiedEvent {
	if !sample.IsTerminal() {
		return types.NoEvent()
	}

	if sample.Origin == types.OriginTracked {
		return c.classifyProgress(sample.Fingers, sample.Progress)
	}
	return c.classifyDisplacement(sample.Fingers, sample.DX, sample.DY)
}

func (c *Classifier) classifyDisplacement(fingers int, dx, dy float64) types.ClassifiedEvent {
	adx, ady := math.Abs(dx), math.Abs(dy)

	switch {
	case adx > ady:
		if dx > 0 {
			return types.Swipe(fingers, types.DirectionRight)
		}
		return types.Swipe(fingers, types.DirectionLeft)
	case ady > c.thresholds.VerticalMin:
		if dy > 0 {
			return types.Swipe(fingers, types.DirectionDown)
		}
		return types.Swipe(fingers, types.DirectionUp)
	case adx < c.thresholds.TapMax && ady < c.thresholds.TapMax:
		return types.Tap(fingers)
	default:
		// too much motion for a tap, too little for a vertical swipe
		return types.NoEvent()
	}
}

func (c *Classifier) classifyProgress(fingers int, progress float64) types.ClassifiedEvent {
	if math.Abs(progress) <= c.thresholds.ProgressMin {
		return types.NoEvent()
	}
	if progress > 0 {
		return types.Swipe(fingers, types.DirectionRight)
	}
	return types.Swipe(fingers, types.DirectionLeft)
}
