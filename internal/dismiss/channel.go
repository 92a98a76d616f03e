// Package dismiss shares the drag-to-dismiss progress of the player sheet with
// the screen underneath it.
//
// A nil *Channel is valid: it reads as fully settled, so a screen that is not
// stacked under a player never has to check for a publisher.
package dismiss

import (
	"log"

	"fyne.io/fyne/v2/data/binding"
)

// Settled is the progress value of a screen with no sheet over it
const Settled float32 = 1

// Underlay scale bounds for the screen beneath the sheet
const (
	UnderlayMinScale float32 = 0.9
	UnderlayMaxScale float32 = 1.0
)

// Channel broadcasts dismiss progress in [0,1]
type Channel struct {
	value binding.Float
}

// NewChannel creates a channel at the settled value
func NewChannel() *Channel {
	c := &Channel{value: binding.NewFloat()}
	c.Set(Settled)
	return c
}

// Set publishes progress, clamped to [0,1]
func (c *Channel) Set(progress float32) {
	if c == nil {
		return
	}
	if err := c.value.Set(float64(clamp(progress))); err != nil {
		log.Printf("dismiss: failed to publish progress %.3f: %v", progress, err)
	}
}

// Progress returns the current progress. Nil channels read as Settled.
func (c *Channel) Progress() float32 {
	if c == nil {
		return Settled
	}
	v, err := c.value.Get()
	if err != nil {
		return Settled
	}
	return float32(v)
}

// Subscribe calls fn with every published value until the returned cancel
// func runs. On a nil channel fn receives Settled once.
func (c *Channel) Subscribe(fn func(progress float32)) (cancel func()) {
	if c == nil {
		fn(Settled)
		return func() {}
	}
	listener := binding.NewDataListener(func() {
		fn(c.Progress())
	})
	c.value.AddListener(listener)
	return func() {
		c.value.RemoveListener(listener)
	}
}

// Binding exposes the underlying value for widgets that bind directly
func (c *Channel) Binding() binding.Float {
	if c == nil {
		return nil
	}
	return c.value
}

// UnderlayScale maps progress to the visual scale of the screen underneath:
// 0.9 while the sheet is fully open, 1.0 once it is gone.
func UnderlayScale(progress float32) float32 {
	return UnderlayMinScale + (UnderlayMaxScale-UnderlayMinScale)*clamp(progress)
}

// Scale is UnderlayScale of the channel's current progress
func (c *Channel) Scale() float32 {
	return UnderlayScale(c.Progress())
}

func clamp(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
