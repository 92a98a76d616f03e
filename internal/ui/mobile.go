package ui

import (
	"fyne.io/fyne/v2"

	"github.com/odii/audio-guide/internal/responsive"
)

// MobileUI answers device questions the layouts need
type MobileUI struct {
	device fyne.Device
}

// NewMobileUI creates a helper for the current device
func NewMobileUI() *MobileUI {
	return &MobileUI{device: fyne.CurrentDevice()}
}

// IsMobileDevice checks if the app is running on a phone or tablet
func (m *MobileUI) IsMobileDevice() bool {
	return m.device != nil && m.device.IsMobile()
}

// IsLandscape returns true if device is in landscape orientation
func (m *MobileUI) IsLandscape() bool {
	if m.device == nil {
		return false
	}
	o := m.device.Orientation()
	return o == fyne.OrientationHorizontalLeft || o == fyne.OrientationHorizontalRight
}

// ScreenPadding returns the outer padding for a screen of the given width.
// Phones held in landscape get the padding of the shorter side.
func (m *MobileUI) ScreenPadding(size fyne.Size) float32 {
	width := size.Width
	if m.IsMobileDevice() && m.IsLandscape() && size.Height > 0 {
		width = size.Height
	}
	return responsive.New(width, size.Height).Moderate(ScreenPadding)
}
