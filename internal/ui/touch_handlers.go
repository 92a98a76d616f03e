package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// TapCard is a rounded card that runs onTap when tapped. It highlights while
// a finger rests on it or the mouse hovers over it.
type TapCard struct {
	widget.BaseWidget

	content    fyne.CanvasObject
	background *canvas.Rectangle
	border     *canvas.Rectangle
	onTap      func()
	pressed    bool
}

var (
	_ fyne.Tappable     = (*TapCard)(nil)
	_ mobile.Touchable  = (*TapCard)(nil)
	_ desktop.Hoverable = (*TapCard)(nil)
)

// NewTapCard creates a card around content
func NewTapCard(content fyne.CanvasObject, onTap func()) *TapCard {
	bg := canvas.NewRectangle(ColorSurface)
	bg.CornerRadius = CardCornerRadius
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = ColorBorder
	border.StrokeWidth = 1
	border.CornerRadius = CardCornerRadius

	c := &TapCard{
		content:    content,
		background: bg,
		border:     border,
		onTap:      onTap,
	}
	c.ExtendBaseWidget(c)
	return c
}

// Tapped implements fyne.Tappable
func (c *TapCard) Tapped(*fyne.PointEvent) {
	c.setPressed(false)
	if c.onTap != nil {
		c.onTap()
	}
}

// TouchDown implements mobile.Touchable
func (c *TapCard) TouchDown(*mobile.TouchEvent) {
	c.setPressed(true)
}

// TouchUp implements mobile.Touchable
func (c *TapCard) TouchUp(*mobile.TouchEvent) {
	c.setPressed(false)
}

// TouchCancel implements mobile.Touchable
func (c *TapCard) TouchCancel(*mobile.TouchEvent) {
	c.setPressed(false)
}

// MouseIn implements desktop.Hoverable
func (c *TapCard) MouseIn(*desktop.MouseEvent) {
	c.setPressed(true)
}

// MouseMoved implements desktop.Hoverable
func (c *TapCard) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable
func (c *TapCard) MouseOut() {
	c.setPressed(false)
}

func (c *TapCard) setPressed(pressed bool) {
	if c.pressed == pressed {
		return
	}
	c.pressed = pressed
	if pressed {
		c.background.FillColor = ColorSurfaceHover
	} else {
		c.background.FillColor = ColorSurface
	}
	c.background.Refresh()
}

// CreateRenderer implements fyne.Widget
func (c *TapCard) CreateRenderer() fyne.WidgetRenderer {
	padded := container.NewPadded(c.content)
	return widget.NewSimpleRenderer(container.NewStack(c.background, c.border, padded))
}
