package ui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/odii/audio-guide/internal/catalog"
	"github.com/odii/audio-guide/internal/config"
	"github.com/odii/audio-guide/internal/dismiss"
	"github.com/odii/audio-guide/internal/model"
	"github.com/odii/audio-guide/internal/playback"
)

// stubHandle is an in-memory sound that is always loaded
type stubHandle struct {
	id string

	mu       sync.Mutex
	playing  bool
	volume   float64
	unloaded bool
}

func (h *stubHandle) ID() string { return h.id }

func (h *stubHandle) Play() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.playing = true
	return nil
}

func (h *stubHandle) Pause() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.playing = false
	return nil
}

func (h *stubHandle) SetVolume(v float64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.volume = v
	return nil
}

func (h *stubHandle) Status() (model.PlaybackStatus, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return model.PlaybackStatus{
		IsLoaded:       true,
		IsPlaying:      h.playing,
		PositionMillis: 12000,
		DurationMillis: 204000,
		Volume:         h.volume,
	}, nil
}

func (h *stubHandle) Unload() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unloaded = true
	return nil
}

func (h *stubHandle) isUnloaded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.unloaded
}

type stubEngine struct {
	mu      sync.Mutex
	handles []*stubHandle
	loadErr error
}

func (e *stubEngine) Kind() playback.EngineKind { return playback.EngineNative }

func (e *stubEngine) Load(_ context.Context, src playback.Source, volume float64) (playback.Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loadErr != nil {
		return nil, e.loadErr
	}
	h := &stubHandle{id: src.Ref, volume: volume}
	e.handles = append(e.handles, h)
	return h, nil
}

func (e *stubEngine) loaded() []*stubHandle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*stubHandle(nil), e.handles...)
}

type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, ref string) (playback.Source, error) {
	if ref == "" {
		return playback.Source{}, playback.ErrNoSource
	}
	return playback.Source{Ref: ref, Path: "/tmp/" + ref, Format: playback.FormatWAV}, nil
}

type stubListings struct {
	listings []model.Listing
	err      error
}

func (s stubListings) Exhibitions(context.Context) ([]model.Listing, error) {
	return s.listings, s.err
}

var errBackendDown = errors.New("backend unavailable")

// newTestEnv builds a screen environment over the bundled catalog with
// in-memory playback. Navigation calls are recorded.
func newTestEnv(t *testing.T) (*screenEnv, *navRecorder) {
	t.Helper()

	app := test.NewApp()

	nav := &navRecorder{}
	env := &screenEnv{
		services: Services{
			Catalog:  catalog.Default(),
			Engine:   &stubEngine{},
			Resolver: stubResolver{},
		},
		settings: config.NewSettings(app),
		loc:      NewLocalization(),
		mobile:   &MobileUI{},
		dismiss:  dismiss.NewChannel(),
		push:     nav.push,
		back:     nav.back,
		replace:  nav.replace,
	}
	return env, nav
}

type navRecorder struct {
	mu       sync.Mutex
	pushed   []string
	replaced []string
	backs    int
}

func (n *navRecorder) push(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushed = append(n.pushed, path)
}

func (n *navRecorder) back() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.backs++
}

func (n *navRecorder) replace(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.replaced = append(n.replaced, path)
}

func (n *navRecorder) backCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.backs
}

// waitFor polls cond until it holds or the timeout passes
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("Timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
