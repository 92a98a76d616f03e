package playback

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/odii/audio-guide/internal/model"
)

const streamSampleRate = 44100

// bytes per second of decoded audio: 16-bit stereo
const streamBytesPerSample = 4

// StreamEngine plays through an ebiten audio context. Its handles have no
// push path and are polled by the controller.
type StreamEngine struct {
	once sync.Once
	ctx  *audio.Context
}

// NewStreamEngine creates an engine; the audio context is created lazily
func NewStreamEngine() *StreamEngine {
	return &StreamEngine{}
}

// Kind implements Engine
func (e *StreamEngine) Kind() EngineKind { return EngineStream }

// audioContext returns the process-wide ebiten context, creating it once
func (e *StreamEngine) audioContext() *audio.Context {
	e.once.Do(func() {
		if c := audio.CurrentContext(); c != nil {
			e.ctx = c
			return
		}
		e.ctx = audio.NewContext(streamSampleRate)
	})
	return e.ctx
}

type lengthReader interface {
	io.ReadSeeker
	Length() int64
}

// Load decodes src into a paused ebiten player
func (e *StreamEngine) Load(ctx context.Context, src Source, volume float64) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}

	actx := e.audioContext()
	var stream lengthReader
	switch src.Format {
	case FormatMP3:
		stream, err = mp3.DecodeWithSampleRate(actx.SampleRate(), f)
	case FormatWAV:
		stream, err = wav.DecodeWithSampleRate(actx.SampleRate(), f)
	default:
		err = fmt.Errorf("%q: %w", src.Format, ErrUnsupportedFormat)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", src.Path, err)
	}

	player, err := actx.NewPlayer(stream)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create player: %w", err)
	}
	player.SetVolume(clampVolume(volume))

	bytesPerSecond := int64(actx.SampleRate() * streamBytesPerSample)
	h := &streamHandle{
		id:       uuid.NewString(),
		file:     f,
		player:   player,
		duration: time.Duration(stream.Length()) * time.Second / time.Duration(bytesPerSecond),
	}
	log.Printf("playback: stream handle %s loaded %s (%s)", h.id, src.Path, h.duration)
	return h, nil
}

type streamHandle struct {
	id       string
	file     *os.File
	duration time.Duration

	mu       sync.Mutex
	player   *audio.Player
	unloaded bool
}

func (h *streamHandle) ID() string { return h.id }

func (h *streamHandle) Play() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.unloaded {
		return ErrClosed
	}
	if h.player.IsPlaying() {
		return nil
	}
	// a finished player stays at the end until rewound
	if h.duration > 0 && h.player.Position() >= h.duration {
		if err := h.player.Rewind(); err != nil {
			return fmt.Errorf("rewind: %w", err)
		}
	}
	h.player.Play()
	return nil
}

func (h *streamHandle) Pause() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.unloaded {
		return ErrClosed
	}
	h.player.Pause()
	return nil
}

func (h *streamHandle) SetVolume(v float64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.unloaded {
		return ErrClosed
	}
	h.player.SetVolume(clampVolume(v))
	return nil
}

func (h *streamHandle) Status() (model.PlaybackStatus, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.unloaded {
		return model.PlaybackStatus{}, ErrClosed
	}
	pos := h.player.Position()
	if h.duration > 0 && pos > h.duration {
		pos = h.duration
	}
	return model.PlaybackStatus{
		IsLoaded:       true,
		IsPlaying:      h.player.IsPlaying(),
		PositionMillis: model.DurationMillis(pos),
		DurationMillis: model.DurationMillis(h.duration),
		Volume:         h.player.Volume(),
	}, nil
}

func (h *streamHandle) Unload() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.unloaded {
		return nil
	}
	h.unloaded = true

	err := h.player.Close()
	if cerr := h.file.Close(); err == nil {
		err = cerr
	}
	return err
}
