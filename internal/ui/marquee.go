package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MarqueeOffset returns how far text that overflows its box by overflow
// points is scrolled at elapsed time into the cycle. The text rests at the
// start for MarqueePause, scrolls at MarqueeSpeed, rests at the end for
// MarqueePause and then starts over.
func MarqueeOffset(overflow float32, elapsed time.Duration) float32 {
	if overflow <= 0 {
		return 0
	}
	cycle := marqueeCycle(overflow)
	elapsed %= cycle
	if elapsed < 0 {
		elapsed += cycle
	}
	if elapsed < MarqueePause {
		return 0
	}
	elapsed -= MarqueePause

	travel := marqueeTravel(overflow)
	if elapsed >= travel {
		return overflow
	}
	return overflow * float32(elapsed) / float32(travel)
}

func marqueeTravel(overflow float32) time.Duration {
	return time.Duration(float64(overflow) / MarqueeSpeed * float64(time.Second))
}

func marqueeCycle(overflow float32) time.Duration {
	return 2*MarqueePause + marqueeTravel(overflow)
}

// Marquee is a single line of text that scrolls back and forth when it is
// wider than the space it is given
type Marquee struct {
	widget.BaseWidget

	text     *canvas.Text
	scroll   *container.Scroll
	anim     *fyne.Animation
	overflow float32
}

// NewMarquee creates a marquee showing text at the given size
func NewMarquee(text string, size float32) *Marquee {
	t := canvas.NewText(text, ColorTextPrimary)
	t.TextSize = size
	t.TextStyle = fyne.TextStyle{Bold: true}

	m := &Marquee{text: t}
	m.scroll = container.NewHScroll(t)
	m.ExtendBaseWidget(m)
	return m
}

// Text returns the displayed text
func (m *Marquee) Text() string {
	return m.text.Text
}

// SetText replaces the text and restarts scrolling
func (m *Marquee) SetText(text string) {
	if m.text.Text == text {
		return
	}
	m.text.Text = text
	m.overflow = 0
	m.Stop()
	m.scroll.Offset = fyne.NewPos(0, 0)
	m.Refresh()
}

// Stop halts scrolling and rewinds
func (m *Marquee) Stop() {
	if m.anim != nil {
		m.anim.Stop()
		m.anim = nil
	}
}

// CreateRenderer implements fyne.Widget
func (m *Marquee) CreateRenderer() fyne.WidgetRenderer {
	return &marqueeRenderer{m: m}
}

func (m *Marquee) setOverflow(overflow float32) {
	if overflow < 0 {
		overflow = 0
	}
	if overflow == m.overflow && (m.anim != nil || overflow == 0) {
		return
	}
	m.Stop()
	m.overflow = overflow
	m.scroll.Offset = fyne.NewPos(0, 0)
	if overflow == 0 {
		return
	}

	cycle := marqueeCycle(overflow)
	m.anim = fyne.NewAnimation(cycle, func(t float32) {
		m.scroll.Offset = fyne.NewPos(MarqueeOffset(overflow, time.Duration(float64(t)*float64(cycle))), 0)
		m.scroll.Refresh()
	})
	m.anim.Curve = fyne.AnimationLinear
	m.anim.RepeatCount = fyne.AnimationRepeatForever
	m.anim.Start()
}

type marqueeRenderer struct {
	m *Marquee
}

func (r *marqueeRenderer) Layout(size fyne.Size) {
	r.m.scroll.Resize(size)
	r.m.setOverflow(r.m.text.MinSize().Width - size.Width)
}

func (r *marqueeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(MinTouchTargetSize, r.m.text.MinSize().Height)
}

func (r *marqueeRenderer) Refresh() {
	r.m.text.Refresh()
	r.Layout(r.m.Size())
	r.m.scroll.Refresh()
}

func (r *marqueeRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.m.scroll}
}

func (r *marqueeRenderer) Destroy() {
	r.m.Stop()
}
