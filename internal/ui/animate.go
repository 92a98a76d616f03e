package ui

import (
	"time"

	"fyne.io/fyne/v2"
)

// animator runs tick with linear progress from 0 to 1 over d and returns a
// func that stops it early. The last tick always receives 1.
type animator func(d time.Duration, tick func(t float32)) (stop func())

// fyneAnimator plays the animation on the Fyne animation loop
func fyneAnimator(d time.Duration, tick func(t float32)) func() {
	a := fyne.NewAnimation(d, tick)
	a.Curve = fyne.AnimationLinear
	a.Start()
	return a.Stop
}

// immediateAnimator jumps straight to the end. Used where no frames are drawn.
func immediateAnimator(_ time.Duration, tick func(t float32)) func() {
	tick(1)
	return func() {}
}
