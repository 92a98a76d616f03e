package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconPause    = "⏸"
	IconPrevious = "⏮"
	IconNext     = "⏭"
	IconShuffle  = "🔀"
	IconRepeat   = "🔁"
	IconBack     = "‹"
	IconClose    = "×"
	IconError    = "❌"
	IconVolume   = "🔊"
	IconMuted    = "🔇"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	TimePlaceholder    = "--:--"
	LiveBadge          = "●"
)

// Layout sizing at the 375pt design width; scaled per viewport
const (
	ScreenPadding      float32 = 20
	CardPadding        float32 = 16
	CardSpacing        float32 = 16
	LogoTextSize       float32 = 28
	TitleTextSize      float32 = 22
	ArtworkTitleSize   float32 = 20
	BodyTextSize       float32 = 15
	CaptionTextSize    float32 = 12
	DragHandleWidth    float32 = 40
	DragHandleHeight   float32 = 5
	ArtMaxHeight       float32 = 360
	PlayButtonSize     float32 = 64
	MinTouchTargetSize float32 = 44
	CardCornerRadius   float32 = 12
)

// Animation timings
const (
	ProgressAnimation = 100 * time.Millisecond
	MarqueeSpeed      = 30 // points per second
	MarqueePause      = 1500 * time.Millisecond
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)

// Toast behaviour
const (
	ToastAutoHide = 3 * time.Second
)

// Timeouts for background work started from the UI
const (
	ListingsFetchTimeout = 10 * time.Second
)
