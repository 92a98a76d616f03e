// Package responsive maps the current viewport to layout scale factors
// relative to a fixed design reference.
package responsive

import "math"

// Design reference dimensions
const (
	BaseWidth  float32 = 375
	BaseHeight float32 = 812

	DefaultModerateFactor float32 = 0.5
)

// Breakpoints for device classes
const (
	MobileMaxWidth float32 = 600
	TabletMaxWidth float32 = 900
)

// DeviceType classifies the viewport width
type DeviceType string

const (
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceDesktop DeviceType = "desktop"
)

// Scaler holds one viewport measurement. Build a new one on every resize.
type Scaler struct {
	Width  float32
	Height float32
}

// New returns a scaler for the given viewport
func New(width, height float32) Scaler {
	return Scaler{Width: width, Height: height}
}

// Scale sizes horizontally: round(x * width/BaseWidth)
func (s Scaler) Scale(size float32) float32 {
	return round(size * s.Width / BaseWidth)
}

// VerticalScale sizes vertically: round(x * height/BaseHeight)
func (s Scaler) VerticalScale(size float32) float32 {
	return round(size * s.Height / BaseHeight)
}

// ModerateScale moves size toward Scale(size) by factor. A factor of 0 leaves
// the size unscaled, 1 equals Scale.
func (s Scaler) ModerateScale(size, factor float32) float32 {
	return round(size + (s.Scale(size)-size)*factor)
}

// Moderate is ModerateScale with the default factor
func (s Scaler) Moderate(size float32) float32 {
	return s.ModerateScale(size, DefaultModerateFactor)
}

// DeviceType classifies the viewport width
func (s Scaler) DeviceType() DeviceType {
	switch {
	case s.Width <= MobileMaxWidth:
		return DeviceMobile
	case s.Width <= TabletMaxWidth:
		return DeviceTablet
	default:
		return DeviceDesktop
	}
}

// GridColumns is 1 on mobile and 2 otherwise
func (s Scaler) GridColumns() int {
	if s.Width <= MobileMaxWidth {
		return 1
	}
	return 2
}

func round(v float32) float32 {
	return float32(math.Round(float64(v)))
}
