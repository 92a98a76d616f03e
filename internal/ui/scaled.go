package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/odii/audio-guide/internal/dismiss"
)

// ScaledBox draws its content shrunk around the centre while a player sheet
// is open over it, following the dismiss channel
type ScaledBox struct {
	widget.BaseWidget

	content fyne.CanvasObject
	channel *dismiss.Channel
	scale   float32
	cancel  func()
}

// NewScaledBox follows channel. A nil channel keeps the content at full size.
func NewScaledBox(content fyne.CanvasObject, channel *dismiss.Channel) *ScaledBox {
	b := &ScaledBox{content: content, channel: channel, scale: channel.Scale()}
	b.ExtendBaseWidget(b)
	b.cancel = channel.Subscribe(func(progress float32) {
		scale := dismiss.UnderlayScale(progress)
		fyne.Do(func() { b.setScale(scale) })
	})
	return b
}

// Scale returns the factor currently applied
func (b *ScaledBox) Scale() float32 {
	return b.scale
}

// Close stops following the channel
func (b *ScaledBox) Close() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

func (b *ScaledBox) setScale(scale float32) {
	if scale == b.scale {
		return
	}
	b.scale = scale
	b.Refresh()
}

// CreateRenderer implements fyne.Widget
func (b *ScaledBox) CreateRenderer() fyne.WidgetRenderer {
	return &scaledRenderer{b: b}
}

type scaledRenderer struct {
	b *ScaledBox
}

func (r *scaledRenderer) Layout(size fyne.Size) {
	w := size.Width * r.b.scale
	h := size.Height * r.b.scale
	r.b.content.Move(fyne.NewPos((size.Width-w)/2, (size.Height-h)/2))
	r.b.content.Resize(fyne.NewSize(w, h))
}

func (r *scaledRenderer) MinSize() fyne.Size {
	return r.b.content.MinSize()
}

func (r *scaledRenderer) Refresh() {
	r.Layout(r.b.Size())
	r.b.content.Refresh()
}

func (r *scaledRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.b.content}
}

func (r *scaledRenderer) Destroy() {}
