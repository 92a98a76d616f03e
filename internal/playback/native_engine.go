package playback

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"

	"github.com/odii/audio-guide/internal/model"
)

const (
	nativeSampleRate  = beep.SampleRate(44100)
	nativeBufferSize  = time.Second / 10
	nativeReportEvery = 250 * time.Millisecond
)

// NativeEngine plays through the beep speaker. The speaker is shared by
// every handle and initialised on first load.
type NativeEngine struct {
	initOnce sync.Once
	initErr  error
}

// NewNativeEngine creates an engine; the audio device is opened lazily
func NewNativeEngine() *NativeEngine {
	return &NativeEngine{}
}

// Kind implements Engine
func (e *NativeEngine) Kind() EngineKind { return EngineNative }

func (e *NativeEngine) initSpeaker() error {
	e.initOnce.Do(func() {
		e.initErr = speaker.Init(nativeSampleRate, nativeSampleRate.N(nativeBufferSize))
	})
	return e.initErr
}

// Load decodes src and registers it with the speaker, paused
func (e *NativeEngine) Load(ctx context.Context, src Source, volume float64) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch src.Format {
	case FormatMP3:
		streamer, format, err = mp3.Decode(f)
	case FormatWAV:
		streamer, format, err = wav.Decode(f)
	default:
		err = fmt.Errorf("%q: %w", src.Format, ErrUnsupportedFormat)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", src.Path, err)
	}

	if err := e.initSpeaker(); err != nil {
		streamer.Close()
		f.Close()
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	h := &nativeHandle{
		id:        uuid.NewString(),
		file:      f,
		streamer:  streamer,
		format:    format,
		updates:   make(chan struct{}, 1),
		done:      make(chan struct{}),
		listeners: make(map[int]func(model.PlaybackStatus)),
	}

	var out beep.Streamer = &reportingStreamer{
		Streamer: streamer,
		every:    format.SampleRate.N(nativeReportEvery),
		ping:     h.ping,
	}
	if format.SampleRate != nativeSampleRate {
		out = beep.Resample(4, format.SampleRate, nativeSampleRate, out)
	}
	h.ctrl = &beep.Ctrl{Streamer: out, Paused: true}
	h.volume = &effects.Volume{Streamer: h.ctrl, Base: 2}
	h.applyVolume(clampVolume(volume))

	speaker.Play(beep.Seq(h.volume, beep.Callback(h.onEnd)))
	go h.dispatch()

	log.Printf("playback: native handle %s loaded %s (%s)", h.id, src.Path, format.SampleRate.D(streamer.Len()))
	return h, nil
}

type nativeHandle struct {
	id       string
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format

	// guarded by the speaker lock
	ctrl   *beep.Ctrl
	volume *effects.Volume
	level  float64

	ended atomic.Bool

	updates chan struct{}
	done    chan struct{}

	mu        sync.Mutex
	listeners map[int]func(model.PlaybackStatus)
	nextID    int

	unloadOnce sync.Once
	unloadErr  error
}

func (h *nativeHandle) ID() string { return h.id }

func (h *nativeHandle) Play() error {
	if h.isUnloaded() {
		return ErrClosed
	}

	if h.ended.Load() {
		// the finished sequence left the mixer; rewind and queue it again
		speaker.Lock()
		err := h.streamer.Seek(0)
		h.ctrl.Paused = false
		speaker.Unlock()
		if err != nil {
			return fmt.Errorf("rewind: %w", err)
		}
		h.ended.Store(false)
		speaker.Play(beep.Seq(h.volume, beep.Callback(h.onEnd)))
	} else {
		speaker.Lock()
		h.ctrl.Paused = false
		speaker.Unlock()
	}
	h.ping()
	return nil
}

func (h *nativeHandle) Pause() error {
	if h.isUnloaded() {
		return ErrClosed
	}
	speaker.Lock()
	h.ctrl.Paused = true
	speaker.Unlock()
	h.ping()
	return nil
}

func (h *nativeHandle) SetVolume(v float64) error {
	if h.isUnloaded() {
		return ErrClosed
	}
	speaker.Lock()
	h.applyVolume(clampVolume(v))
	speaker.Unlock()
	h.ping()
	return nil
}

// applyVolume maps a linear level onto the base-2 volume effect
func (h *nativeHandle) applyVolume(v float64) {
	h.level = v
	if v <= 0 {
		h.volume.Silent = true
		h.volume.Volume = 0
		return
	}
	h.volume.Silent = false
	h.volume.Volume = math.Log2(v)
}

func (h *nativeHandle) Status() (model.PlaybackStatus, error) {
	if h.isUnloaded() {
		return model.PlaybackStatus{}, ErrClosed
	}

	speaker.Lock()
	pos := h.format.SampleRate.D(h.streamer.Position())
	length := h.format.SampleRate.D(h.streamer.Len())
	paused := h.ctrl.Paused
	level := h.level
	speaker.Unlock()

	ended := h.ended.Load()
	if ended {
		pos = length
	}
	return model.PlaybackStatus{
		IsLoaded:       true,
		IsPlaying:      !paused && !ended,
		PositionMillis: model.DurationMillis(pos),
		DurationMillis: model.DurationMillis(length),
		Volume:         level,
	}, nil
}

// OnStatus implements Notifier
func (h *nativeHandle) OnStatus(fn func(model.PlaybackStatus)) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.listeners, id)
		h.mu.Unlock()
	}
}

func (h *nativeHandle) Unload() error {
	h.unloadOnce.Do(func() {
		close(h.done)

		speaker.Lock()
		h.ctrl.Paused = true
		// a nil streamer drains the sequence out of the mixer
		h.ctrl.Streamer = nil
		speaker.Unlock()

		h.unloadErr = h.streamer.Close()
		// decoders may already have closed the file
		_ = h.file.Close()
	})
	return h.unloadErr
}

func (h *nativeHandle) isUnloaded() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// onEnd runs on the speaker goroutine with the speaker lock held
func (h *nativeHandle) onEnd() {
	h.ended.Store(true)
	h.ctrl.Paused = true
	h.ping()
}

// ping schedules a status push without ever blocking the audio goroutine
func (h *nativeHandle) ping() {
	select {
	case h.updates <- struct{}{}:
	default:
	}
}

func (h *nativeHandle) dispatch() {
	for {
		select {
		case <-h.done:
			return
		case <-h.updates:
			st, err := h.Status()
			if err != nil {
				return
			}
			h.mu.Lock()
			fns := make([]func(model.PlaybackStatus), 0, len(h.listeners))
			for _, fn := range h.listeners {
				fns = append(fns, fn)
			}
			h.mu.Unlock()
			for _, fn := range fns {
				fn(st)
			}
		}
	}
}

// reportingStreamer pings every n samples so progress is pushed while playing
type reportingStreamer struct {
	beep.Streamer
	every int
	count int
	ping  func()
}

func (r *reportingStreamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := r.Streamer.Stream(samples)
	r.count += n
	if r.every > 0 && r.count >= r.every {
		r.count = 0
		r.ping()
	}
	return n, ok
}
