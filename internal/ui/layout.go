package ui

import (
	"fyne.io/fyne/v2"

	"github.com/odii/audio-guide/internal/model"
	"github.com/odii/audio-guide/internal/responsive"
)

// responsiveGrid lays cards out in responsive.GridColumns columns of the
// available width. Rows are as tall as their tallest card.
type responsiveGrid struct {
	spacing float32 // at the design width
}

func newResponsiveGrid() *responsiveGrid {
	return &responsiveGrid{spacing: CardSpacing}
}

func (g *responsiveGrid) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	sc := responsive.New(size.Width, responsive.BaseHeight)
	cols := sc.GridColumns()
	gap := sc.Scale(g.spacing)
	cellW := (size.Width - gap*float32(cols-1)) / float32(cols)

	visible := visibleObjects(objects)
	y := float32(0)
	for row := 0; row*cols < len(visible); row++ {
		start := row * cols
		end := min(start+cols, len(visible))

		rowH := float32(0)
		for _, o := range visible[start:end] {
			rowH = max(rowH, o.MinSize().Height)
		}
		for i, o := range visible[start:end] {
			o.Move(fyne.NewPos(float32(i)*(cellW+gap), y))
			o.Resize(fyne.NewSize(cellW, rowH))
		}
		y += rowH + gap
	}
}

// MinSize assumes a single column; wider windows need less height
func (g *responsiveGrid) MinSize(objects []fyne.CanvasObject) fyne.Size {
	visible := visibleObjects(objects)
	var w, h float32
	for i, o := range visible {
		ms := o.MinSize()
		w = max(w, ms.Width)
		h += ms.Height
		if i > 0 {
			h += g.spacing
		}
	}
	return fyne.NewSize(w, h)
}

func visibleObjects(objects []fyne.CanvasObject) []fyne.CanvasObject {
	out := make([]fyne.CanvasObject, 0, len(objects))
	for _, o := range objects {
		if o.Visible() {
			out = append(out, o)
		}
	}
	return out
}

// playerLayout arranges the sheet: drag handle, artwork art, track info and
// controls. The art takes what the info and controls leave, capped by the
// display mode.
type playerLayout struct {
	mode model.DisplayMode
}

// objects: handle, art, info, controls
func (l *playerLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) != 4 {
		return
	}
	handle, art, info, controls := objects[0], objects[1], objects[2], objects[3]
	sc := responsive.New(size.Width, size.Height)
	pad := sc.Scale(ScreenPadding)

	handleSize := fyne.NewSize(DragHandleWidth, DragHandleHeight)
	y := pad / 2
	handle.Move(fyne.NewPos((size.Width-handleSize.Width)/2, y))
	handle.Resize(handleSize)
	y += handleSize.Height + pad/2

	innerW := size.Width - 2*pad
	controlsH := controls.MinSize().Height
	infoH := info.MinSize().Height
	controls.Move(fyne.NewPos(pad, size.Height-pad-controlsH))
	controls.Resize(fyne.NewSize(innerW, controlsH))

	artH := l.artHeight(sc)
	if room := size.Height - y - infoH - controlsH - 3*pad; artH > room {
		artH = max(room, 0)
	}
	artX, artW := pad, innerW
	if l.mode == model.DisplayModeFullscreen {
		artX, artW = 0, size.Width
	}
	art.Move(fyne.NewPos(artX, y))
	art.Resize(fyne.NewSize(artW, artH))
	y += artH + pad

	info.Move(fyne.NewPos(pad, y))
	info.Resize(fyne.NewSize(innerW, infoH))
}

func (l *playerLayout) artHeight(sc responsive.Scaler) float32 {
	if l.mode == model.DisplayModeFullscreen {
		return sc.VerticalScale(ArtMaxHeight)
	}
	return sc.Moderate(ArtMaxHeight * 2 / 3)
}

func (l *playerLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) != 4 {
		return fyne.NewSize(0, 0)
	}
	var w, h float32
	for _, o := range objects[2:] {
		ms := o.MinSize()
		w = max(w, ms.Width)
		h += ms.Height
	}
	return fyne.NewSize(w+2*ScreenPadding, h+DragHandleHeight+4*ScreenPadding)
}

// screenInset pads a screen by MobileUI.ScreenPadding of the current size
type screenInset struct {
	mobile *MobileUI
}

func (l *screenInset) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	pad := l.mobile.ScreenPadding(size)
	for _, o := range objects {
		o.Move(fyne.NewPos(pad, pad))
		o.Resize(fyne.NewSize(max(size.Width-2*pad, 0), max(size.Height-2*pad, 0)))
	}
}

func (l *screenInset) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var w, h float32
	for _, o := range objects {
		ms := o.MinSize()
		w = max(w, ms.Width)
		h = max(h, ms.Height)
	}
	return fyne.NewSize(w+2*ScreenPadding, h+2*ScreenPadding)
}
