package playback

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/odii/audio-guide/internal/model"
)

// DefaultPollInterval is how often handles without push reporting are polled
const DefaultPollInterval = 250 * time.Millisecond

// Resolver turns an artwork audio reference into a playable local source
type Resolver interface {
	Resolve(ctx context.Context, ref string) (Source, error)
}

// Snapshot is the observable controller state handed to listeners
type Snapshot struct {
	Ref    string
	State  model.PlayerState
	Status model.PlaybackStatus
	Volume float64
	Err    error
}

// IsPlaying reports whether a loaded track is currently audible
func (s Snapshot) IsPlaying() bool {
	return s.State == model.PlayerStateReady && s.Status.IsPlaying
}

// Option configures a Controller
type Option func(*Controller)

// WithPollInterval overrides the status poll interval for polled engines
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithLoadTimeout bounds source resolution and decoding. Zero disables it.
func WithLoadTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.loadTimeout = d
		}
	}
}

// WithVolume sets the initial desired volume
func WithVolume(v float64) Option {
	return func(c *Controller) {
		c.volume = clampVolume(v)
	}
}

// Controller owns at most one loaded handle for a player screen
type Controller struct {
	engine       Engine
	resolver     Resolver
	pollInterval time.Duration
	loadTimeout  time.Duration

	// flipMu orders play/pause flips on a loaded handle
	flipMu sync.Mutex

	mu          sync.Mutex
	ref         string
	state       model.PlayerState
	handle      Handle
	status      model.PlaybackStatus
	volume      float64
	lastErr     error
	closed      bool
	stopReports func()
	listeners   []func(Snapshot)

	closeOnce sync.Once
}

// NewController creates a controller for the audio reference ref
func NewController(engine Engine, resolver Resolver, ref string, opts ...Option) *Controller {
	c := &Controller{
		engine:       engine,
		resolver:     resolver,
		pollInterval: DefaultPollInterval,
		ref:          ref,
		state:        model.PlayerStateNoTrack,
		volume:       1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange registers a listener called after every state change.
// Listeners run on the goroutine that caused the change.
func (c *Controller) OnChange(fn func(Snapshot)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Snapshot returns the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Ref:    c.ref,
		State:  c.state,
		Status: c.status,
		Volume: c.volume,
		Err:    c.lastErr,
	}
}

func (c *Controller) notify() {
	c.mu.Lock()
	snap := c.snapshotLocked()
	listeners := make([]func(Snapshot), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// Toggle loads and starts the track on first use, then flips between play
// and pause. It is a no-op while a load is in flight.
func (c *Controller) Toggle(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	if !c.state.AcceptsToggle() {
		c.mu.Unlock()
		return nil
	}
	if !c.state.HasHandle() {
		if c.ref == "" {
			c.mu.Unlock()
			return ErrNoSource
		}
		ref, volume := c.ref, c.volume
		c.state = model.PlayerStateLoading
		c.lastErr = nil
		c.mu.Unlock()
		c.notify()
		return c.load(ctx, ref, volume)
	}

	h := c.handle
	c.mu.Unlock()

	c.flipMu.Lock()
	defer c.flipMu.Unlock()

	c.mu.Lock()
	current := c.handle == h && !c.closed
	c.mu.Unlock()
	if !current {
		// switched or closed while waiting for the previous flip
		return nil
	}

	st, err := h.Status()
	if err != nil {
		return c.fail(h, fmt.Errorf("query status: %w", err))
	}
	if !st.IsLoaded {
		return nil
	}
	if st.IsPlaying {
		err = h.Pause()
	} else {
		err = h.Play()
	}
	if err != nil {
		return c.fail(h, fmt.Errorf("toggle playback: %w", err))
	}

	if st, err = h.Status(); err == nil {
		c.applyStatus(h.ID(), st)
	}
	return nil
}

func (c *Controller) load(ctx context.Context, ref string, volume float64) error {
	if c.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.loadTimeout)
		defer cancel()
	}

	src, err := c.resolver.Resolve(ctx, ref)
	if err != nil {
		return c.failLoad(ctx, ref, fmt.Errorf("resolve %s: %w", ref, err))
	}

	h, err := c.engine.Load(ctx, src, volume)
	if err != nil {
		return c.failLoad(ctx, ref, fmt.Errorf("load %s: %w", ref, err))
	}

	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		release(h)
		return ErrClosed
	case c.ref != ref:
		next := c.ref
		c.mu.Unlock()
		release(h)
		return c.loadSwitched(ctx, next)
	}
	// volume may have moved while decoding
	volume = c.volume
	c.mu.Unlock()

	if err := h.SetVolume(volume); err != nil {
		log.Printf("playback: set volume on %s: %v", h.ID(), err)
	}
	if err := h.Play(); err != nil {
		release(h)
		return c.failLoad(ctx, ref, fmt.Errorf("start %s: %w", ref, err))
	}
	st, err := h.Status()
	if err != nil {
		log.Printf("playback: initial status of %s: %v", h.ID(), err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		release(h)
		return ErrClosed
	}
	if c.ref != ref {
		next := c.ref
		c.mu.Unlock()
		release(h)
		return c.loadSwitched(ctx, next)
	}
	c.handle = h
	c.state = model.PlayerStateReady
	c.status = st
	c.stopReports = c.startReporting(h)
	c.mu.Unlock()

	c.notify()
	return nil
}

// loadSwitched continues a load whose reference was replaced by SwitchTrack.
// The newer reference inherits the play intent.
func (c *Controller) loadSwitched(ctx context.Context, next string) error {
	c.mu.Lock()
	if next == "" {
		c.state = model.PlayerStateNoTrack
		c.mu.Unlock()
		c.notify()
		return nil
	}
	vol := c.volume
	c.mu.Unlock()
	return c.load(ctx, next, vol)
}

// startReporting subscribes to pushed status or starts a poll loop.
// Called with c.mu held.
func (c *Controller) startReporting(h Handle) func() {
	id := h.ID()
	if n, ok := h.(Notifier); ok {
		return n.OnStatus(func(st model.PlaybackStatus) {
			c.applyStatus(id, st)
		})
	}

	stop := make(chan struct{})
	interval := c.pollInterval
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				st, err := h.Status()
				if err != nil {
					log.Printf("playback: poll %s: %v", id, err)
					continue
				}
				c.applyStatus(id, st)
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(stop) }) }
}

// applyStatus records a status update if it belongs to the active handle
func (c *Controller) applyStatus(id string, st model.PlaybackStatus) {
	c.mu.Lock()
	if c.closed || c.handle == nil || c.handle.ID() != id {
		c.mu.Unlock()
		return
	}
	if c.status == st {
		c.mu.Unlock()
		return
	}
	c.status = st
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) failLoad(ctx context.Context, ref string, err error) error {
	log.Printf("playback: %v", err)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return err
	}
	if c.ref != ref {
		// a newer track was chosen while this one failed
		next := c.ref
		c.mu.Unlock()
		return c.loadSwitched(ctx, next)
	}
	c.state = model.PlayerStateError
	c.lastErr = err
	c.handle = nil
	c.status = model.PlaybackStatus{}
	c.mu.Unlock()

	c.notify()
	return err
}

// fail drops a handle that errored during playback so the next toggle reloads
func (c *Controller) fail(h Handle, err error) error {
	log.Printf("playback: %s: %v", h.ID(), err)

	c.mu.Lock()
	if c.handle != h {
		c.mu.Unlock()
		return err
	}
	stop := c.stopReports
	c.stopReports = nil
	c.handle = nil
	c.state = model.PlayerStateError
	c.status = model.PlaybackStatus{}
	c.lastErr = err
	c.mu.Unlock()

	if stop != nil {
		stop()
	}
	release(h)
	c.notify()
	return err
}

// SetVolume clamps v to [0,1], applies it to the loaded handle if any and
// remembers it as the volume for the next load
func (c *Controller) SetVolume(v float64) {
	v = clampVolume(v)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.volume = v
	h := c.handle
	c.mu.Unlock()

	if h != nil {
		if err := h.SetVolume(v); err != nil {
			log.Printf("playback: set volume on %s: %v", h.ID(), err)
		}
	}
	c.notify()
}

// SwitchTrack unloads the current handle and points the controller at ref.
// If the previous track was playing (or loading) the new one starts playing.
func (c *Controller) SwitchTrack(ctx context.Context, ref string) error {
	resume, err := c.Cue(ref)
	if err != nil || !resume {
		return err
	}
	return c.Toggle(ctx)
}

// Cue points the controller at ref and unloads the current handle without
// loading anything. It reports whether the previous track was playing, in
// which case the caller should Toggle to resume with ref. Cue does not block
// on a load, so callers on one goroutine get their references applied in
// call order.
func (c *Controller) Cue(ref string) (bool, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false, ErrClosed
	}
	if ref == c.ref {
		c.mu.Unlock()
		return false, nil
	}

	c.ref = ref
	if c.state == model.PlayerStateLoading {
		// the in-flight load notices the new reference when it completes
		c.mu.Unlock()
		c.notify()
		return false, nil
	}

	wasPlaying := c.state == model.PlayerStateReady && c.status.IsPlaying
	h := c.handle
	stop := c.stopReports
	c.handle = nil
	c.stopReports = nil
	c.state = model.PlayerStateNoTrack
	c.status = model.PlaybackStatus{}
	c.lastErr = nil
	c.mu.Unlock()

	if stop != nil {
		stop()
	}
	if h != nil {
		release(h)
	}
	c.notify()

	return wasPlaying && ref != "", nil
}

// Close unloads the active handle exactly once and stops status reporting.
// Safe to call repeatedly and in any state.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		h := c.handle
		stop := c.stopReports
		c.handle = nil
		c.stopReports = nil
		c.state = model.PlayerStateNoTrack
		c.status = model.PlaybackStatus{}
		c.mu.Unlock()

		if stop != nil {
			stop()
		}
		if h != nil {
			release(h)
		}
	})
}

// release unloads h; failures are logged and the handle counts as gone
func release(h Handle) {
	if err := h.Unload(); err != nil {
		log.Printf("playback: unload %s: %v", h.ID(), err)
	}
}
