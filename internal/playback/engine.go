package playback

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/odii/audio-guide/internal/model"
)

// EngineKind selects a playback backend
type EngineKind string

const (
	// EngineNative plays through the beep speaker and pushes status updates
	EngineNative EngineKind = "native"

	// EngineStream plays through an ebiten audio context and is polled
	EngineStream EngineKind = "stream"
)

// Format is the container of a resolved audio source
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatWAV Format = "wav"
)

var (
	// ErrClosed is returned by a controller after teardown
	ErrClosed = errors.New("playback: controller closed")

	// ErrNoSource is returned when toggling without an audio reference
	ErrNoSource = errors.New("playback: no audio source")

	// ErrUnsupportedFormat is returned for containers no engine can decode
	ErrUnsupportedFormat = errors.New("playback: unsupported audio format")
)

// Source is an audio reference resolved to a local file
type Source struct {
	Ref    string // original artwork reference
	Path   string // local file to decode
	Format Format
}

// Engine loads sources into playable handles
type Engine interface {
	Kind() EngineKind
	Load(ctx context.Context, src Source, volume float64) (Handle, error)
}

// Handle is one loaded sound. Unload releases it; a handle is unusable after.
type Handle interface {
	ID() string
	Play() error
	Pause() error
	SetVolume(volume float64) error
	Status() (model.PlaybackStatus, error)
	Unload() error
}

// Notifier is implemented by handles that push status changes. Handles
// without it are polled by the controller.
type Notifier interface {
	OnStatus(fn func(model.PlaybackStatus)) (cancel func())
}

// ParseEngineKind validates an engine name from settings
func ParseEngineKind(s string) (EngineKind, error) {
	switch EngineKind(strings.ToLower(strings.TrimSpace(s))) {
	case EngineNative:
		return EngineNative, nil
	case EngineStream:
		return EngineStream, nil
	default:
		return "", fmt.Errorf("unknown playback engine %q", s)
	}
}

// NewEngine constructs the engine for kind
func NewEngine(kind EngineKind) (Engine, error) {
	switch kind {
	case EngineNative:
		return NewNativeEngine(), nil
	case EngineStream:
		return NewStreamEngine(), nil
	default:
		return nil, fmt.Errorf("unknown playback engine %q", kind)
	}
}

// FormatFromPath picks the format from a file or URL path extension
func FormatFromPath(p string) (Format, error) {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	dot := strings.LastIndex(p, ".")
	if dot < 0 {
		return "", fmt.Errorf("%q: %w", p, ErrUnsupportedFormat)
	}
	switch strings.ToLower(p[dot+1:]) {
	case "mp3":
		return FormatMP3, nil
	case "wav", "wave":
		return FormatWAV, nil
	default:
		return "", fmt.Errorf("%q: %w", p, ErrUnsupportedFormat)
	}
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
