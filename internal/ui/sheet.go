package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/odii/audio-guide/internal/gesture"
)

// Sheet is the draggable "now playing" surface. Pointer drags feed a
// gesture.Machine; the machine's frame decides where the sheet is drawn and
// how small it is.
type Sheet struct {
	widget.BaseWidget

	content    fyne.CanvasObject
	background *canvas.Rectangle
	machine    *gesture.Machine

	animate  animator
	stopAnim func()
	now      func() time.Time
}

var _ fyne.Draggable = (*Sheet)(nil)

// NewSheet wraps content in a sheet driven by machine
func NewSheet(content fyne.CanvasObject, machine *gesture.Machine) *Sheet {
	bg := canvas.NewRectangle(ColorSurface)
	bg.CornerRadius = CardCornerRadius

	s := &Sheet{
		content:    content,
		background: bg,
		machine:    machine,
		animate:    fyneAnimator,
		now:        time.Now,
	}
	s.ExtendBaseWidget(s)
	return s
}

// Machine returns the state machine behind the sheet
func (s *Sheet) Machine() *gesture.Machine {
	return s.machine
}

// Dragged implements fyne.Draggable
func (s *Sheet) Dragged(ev *fyne.DragEvent) {
	if _, changed := s.machine.Move(ev.Dragged.DX, ev.Dragged.DY, s.now()); changed {
		s.Refresh()
	}
}

// DragEnd implements fyne.Draggable. A release from Dragging starts the
// closing or spring-back animation.
func (s *Sheet) DragEnd() {
	state := s.machine.Release(s.now())
	if !state.IsAnimating() {
		return
	}

	d := s.machine.AnimationDuration()
	shape := gesture.EaseOut
	if state == gesture.Returning {
		shape = gesture.SpringCurve(gesture.SpringTension, gesture.SpringFriction, d)
	}

	s.stopAnimation()
	s.stopAnim = s.animate(d, func(t float32) {
		if !s.machine.State().IsAnimating() {
			return
		}
		s.machine.Step(shape(t))
		if t >= 1 {
			s.machine.Complete()
		}
		s.Refresh()
	})
}

// Stop halts a running release animation without completing it
func (s *Sheet) Stop() {
	s.stopAnimation()
}

func (s *Sheet) stopAnimation() {
	if s.stopAnim != nil {
		s.stopAnim()
		s.stopAnim = nil
	}
}

// CreateRenderer implements fyne.Widget
func (s *Sheet) CreateRenderer() fyne.WidgetRenderer {
	return &sheetRenderer{s: s}
}

type sheetRenderer struct {
	s *Sheet
}

func (r *sheetRenderer) Layout(size fyne.Size) {
	r.s.machine.SetScreenHeight(size.Height)

	frame := r.s.machine.Frame()
	w := size.Width * frame.Scale
	h := size.Height * frame.Scale
	pos := fyne.NewPos((size.Width-w)/2, frame.TranslateY+(size.Height-h)/2)
	for _, o := range []fyne.CanvasObject{r.s.background, r.s.content} {
		o.Move(pos)
		o.Resize(fyne.NewSize(w, h))
	}
}

func (r *sheetRenderer) MinSize() fyne.Size {
	return r.s.content.MinSize()
}

func (r *sheetRenderer) Refresh() {
	r.Layout(r.s.Size())
	canvas.Refresh(r.s)
}

func (r *sheetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.s.background, r.s.content}
}

func (r *sheetRenderer) Destroy() {
	r.s.stopAnimation()
}
