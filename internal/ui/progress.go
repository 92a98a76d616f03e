package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// ProgressTrack is a progress bar that eases toward each new value over
// ProgressAnimation instead of jumping
type ProgressTrack struct {
	bar     *widget.ProgressBar
	animate animator
	stop    func()
	target  float64
}

// NewProgressTrack creates a track at 0
func NewProgressTrack() *ProgressTrack {
	bar := widget.NewProgressBar()
	bar.TextFormatter = func() string { return "" }
	return &ProgressTrack{bar: bar, animate: fyneAnimator}
}

// Object returns the canvas object to place in a layout
func (p *ProgressTrack) Object() fyne.CanvasObject {
	return p.bar
}

// Value returns the currently drawn fraction
func (p *ProgressTrack) Value() float64 {
	return p.bar.Value
}

// Target returns the fraction the bar is moving toward
func (p *ProgressTrack) Target() float64 {
	return p.target
}

// SetTarget animates the bar from its drawn value to v, clamped to [0,1]
func (p *ProgressTrack) SetTarget(v float64) {
	v = clampFraction(v)
	if v == p.target && p.bar.Value == v {
		return
	}
	p.Stop()
	p.target = v
	from := p.bar.Value
	p.stop = p.animate(ProgressAnimation, func(t float32) {
		p.bar.SetValue(interpolate(from, v, t))
	})
}

// Stop halts a running animation where it is
func (p *ProgressTrack) Stop() {
	if p.stop != nil {
		p.stop()
		p.stop = nil
	}
}

func interpolate(from, to float64, t float32) float64 {
	if t >= 1 {
		return to
	}
	return from + (to-from)*float64(t)
}

func clampFraction(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
