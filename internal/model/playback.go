package model

import (
	"fmt"
	"time"
)

// PlaybackStatus is the engine-neutral view of a loaded sound
type PlaybackStatus struct {
	IsLoaded       bool    `json:"is_loaded"`
	IsPlaying      bool    `json:"is_playing"`
	PositionMillis int64   `json:"position_millis"`
	DurationMillis int64   `json:"duration_millis"`
	Volume         float64 `json:"volume"` // 0.0 - 1.0
}

// Progress returns position/duration in [0,1], or 0 when nothing is loaded
func (s PlaybackStatus) Progress() float64 {
	if !s.IsLoaded || s.DurationMillis <= 0 {
		return 0
	}
	p := float64(s.PositionMillis) / float64(s.DurationMillis)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// FormatMillis renders milliseconds as m:ss
func FormatMillis(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSeconds := ms / 1000
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

// DurationMillis converts a duration to whole milliseconds
func DurationMillis(d time.Duration) int64 {
	return d.Milliseconds()
}
