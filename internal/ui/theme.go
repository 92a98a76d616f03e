package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Palette of the guide: black backgrounds, cold whites
var (
	ColorBackground    = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	ColorSurface       = color.NRGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}
	ColorSurfaceHover  = color.NRGBA{R: 0x15, G: 0x15, B: 0x15, A: 0xff}
	ColorBorder        = color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}
	ColorTextPrimary   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorTextSecondary = color.NRGBA{R: 0xb3, G: 0xb3, B: 0xb3, A: 0xff}
	ColorTextMuted     = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
	ColorAccent        = color.NRGBA{R: 0xe5, G: 0xe5, B: 0xe5, A: 0xff}
	ColorLive          = color.NRGBA{R: 0x2e, G: 0xa0, B: 0x43, A: 0xff}
	ColorError         = color.NRGBA{R: 0xb7, G: 0x1c, B: 0x1c, A: 0xff}
)

// GuideTheme is the dark theme of the guide. It ignores the system variant.
type GuideTheme struct{}

// NewGuideTheme creates the guide theme
func NewGuideTheme() fyne.Theme {
	return &GuideTheme{}
}

// Color returns theme colors
func (t *GuideTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return ColorBackground
	case theme.ColorNameForeground:
		return ColorTextPrimary
	case theme.ColorNamePlaceHolder, theme.ColorNameDisabled:
		return ColorTextMuted
	case theme.ColorNamePrimary:
		return ColorAccent
	case theme.ColorNameButton, theme.ColorNameInputBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return ColorSurface
	case theme.ColorNameHover, theme.ColorNamePressed:
		return ColorSurfaceHover
	case theme.ColorNameSeparator, theme.ColorNameInputBorder:
		return ColorBorder
	case theme.ColorNameSuccess:
		return ColorLive
	case theme.ColorNameError:
		return ColorError
	}

	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *GuideTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *GuideTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *GuideTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return BodyTextSize
	case theme.SizeNameHeadingText:
		return TitleTextSize
	case theme.SizeNameSubHeadingText:
		return 17
	case theme.SizeNameCaptionText:
		return CaptionTextSize
	case theme.SizeNameInputRadius:
		return 8
	case theme.SizeNameSelectionRadius:
		return 4
	}

	return theme.DefaultTheme().Size(name)
}
