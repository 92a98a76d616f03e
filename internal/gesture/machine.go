package gesture

import (
	"time"
)

// State is the lifecycle of one drag-to-dismiss interaction
type State int

const (
	Idle State = iota
	Dragging
	Closing
	Returning
	Dismissed
)

// String returns a human readable state name
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Dragging:
		return "Dragging"
	case Closing:
		return "Closing"
	case Returning:
		return "Returning"
	case Dismissed:
		return "Dismissed"
	default:
		return "Unknown"
	}
}

// IsAnimating reports whether the sheet is running a release animation
func (s State) IsAnimating() bool {
	return s == Closing || s == Returning
}

// Config holds the thresholds of the dismiss gesture
type Config struct {
	ActivationDistance float32       // downward pull needed before dragging starts
	CloseFraction      float32       // share of screen height that closes on release
	VelocityThreshold  float32       // release speed in units/ms that closes
	MaxShrink          float32       // sheet scale lost at full drag
	ClosedScale        float32       // sheet scale at the end of closing
	CloseDuration      time.Duration // closing animation
	ReturnDuration     time.Duration // spring back animation
	VelocityWindow     time.Duration // a release later than this after the last move has no velocity
}

// DefaultConfig returns the thresholds used by the player sheet
func DefaultConfig() Config {
	return Config{
		ActivationDistance: 10,
		CloseFraction:      0.5,
		VelocityThreshold:  0.8,
		MaxShrink:          0.08,
		ClosedScale:        0.9,
		CloseDuration:      250 * time.Millisecond,
		ReturnDuration:     600 * time.Millisecond,
		VelocityWindow:     100 * time.Millisecond,
	}
}

// Frame is the visual state of the sheet plus the shared dismiss progress
type Frame struct {
	TranslateY float32
	Scale      float32
	Progress   float32
}

// Rest is the frame of a fully open sheet
var Rest = Frame{TranslateY: 0, Scale: 1, Progress: 0}

// ProgressSink receives dismiss progress. *dismiss.Channel satisfies it.
type ProgressSink interface {
	Set(progress float32)
}

// Machine is the drag-to-dismiss state machine of one player sheet
type Machine struct {
	cfg       Config
	height    float32
	sink      ProgressSink
	onDismiss func()

	state State
	dx    float32
	dy    float32
	vy    float32

	lastMove time.Time
	locked   bool // gesture judged horizontal or upward; ignored until release

	current Frame
	from    Frame
	to      Frame
}

// NewMachine creates a machine with DefaultConfig
func NewMachine(screenHeight float32, sink ProgressSink, onDismiss func()) *Machine {
	return NewMachineWithConfig(DefaultConfig(), screenHeight, sink, onDismiss)
}

// NewMachineWithConfig creates a machine with custom thresholds
func NewMachineWithConfig(cfg Config, screenHeight float32, sink ProgressSink, onDismiss func()) *Machine {
	return &Machine{
		cfg:       cfg,
		height:    screenHeight,
		sink:      sink,
		onDismiss: onDismiss,
		state:     Idle,
		current:   Rest,
	}
}

// Config returns the thresholds in use
func (m *Machine) Config() Config {
	return m.cfg
}

// State returns the current state
func (m *Machine) State() State {
	return m.state
}

// Frame returns the current sheet frame
func (m *Machine) Frame() Frame {
	return m.current
}

// Offset returns the cumulative drag delta of the current gesture
func (m *Machine) Offset() (dx, dy float32) {
	return m.dx, m.dy
}

// Velocity returns the estimated vertical velocity in units/ms
func (m *Machine) Velocity() float32 {
	return m.vy
}

// SetScreenHeight updates the height used for progress and the close threshold
func (m *Machine) SetScreenHeight(h float32) {
	if h > 0 {
		m.height = h
	}
}

// Mount resets the sheet to rest and shrinks the screen underneath
func (m *Machine) Mount() {
	m.resetGesture()
	m.state = Idle
	m.current = Rest
	m.publish(0)
}

// Unmount leaves the screen underneath at full size. Terminal.
func (m *Machine) Unmount() {
	m.state = Dismissed
	m.publish(1)
}

// Move feeds an incremental pointer delta observed at time at. It returns the
// frame to apply and whether the frame changed.
func (m *Machine) Move(deltaX, deltaY float32, at time.Time) (Frame, bool) {
	switch m.state {
	case Idle:
		m.dx += deltaX
		m.dy += deltaY
		m.track(deltaY, at)
		if m.locked {
			return m.current, false
		}
		if m.shouldActivate() {
			m.state = Dragging
			return m.drag(), true
		}
		if m.shouldLock() {
			m.locked = true
		}
		return m.current, false
	case Dragging:
		m.dx += deltaX
		m.dy += deltaY
		m.track(deltaY, at)
		return m.drag(), true
	default:
		return m.current, false
	}
}

// Release ends the pointer gesture at time at and returns the resulting state.
// From Dragging it is Closing when the sheet travelled past CloseFraction of
// the screen or was flung faster than VelocityThreshold, Returning otherwise.
func (m *Machine) Release(at time.Time) State {
	if m.state != Dragging {
		if m.state == Idle {
			m.resetGesture()
		}
		return m.state
	}

	vy := m.vy
	if !m.lastMove.IsZero() && at.Sub(m.lastMove) > m.cfg.VelocityWindow {
		vy = 0
	}
	m.vy = vy

	m.from = m.current
	if m.dy > m.height*m.cfg.CloseFraction || vy > m.cfg.VelocityThreshold {
		m.state = Closing
		m.to = Frame{TranslateY: m.height, Scale: m.cfg.ClosedScale, Progress: 1}
	} else {
		m.state = Returning
		m.to = Rest
	}
	return m.state
}

// Step interpolates the release animation at fraction t. t is the curved
// animation value and may overshoot 1 for spring curves.
func (m *Machine) Step(t float32) Frame {
	if !m.state.IsAnimating() {
		return m.current
	}
	m.current = Frame{
		TranslateY: lerp(m.from.TranslateY, m.to.TranslateY, t),
		Scale:      lerp(m.from.Scale, m.to.Scale, t),
		Progress:   lerp(m.from.Progress, m.to.Progress, t),
	}
	m.publish(m.current.Progress)
	return m.current
}

// Complete finishes the release animation. Closing ends in Dismissed with the
// dismiss callback invoked and progress left at 1. Returning ends in Idle at
// rest with progress 0.
func (m *Machine) Complete() State {
	switch m.state {
	case Closing:
		m.current = m.to
		m.state = Dismissed
		m.publish(1)
		if m.onDismiss != nil {
			m.onDismiss()
		}
	case Returning:
		m.current = Rest
		m.state = Idle
		m.resetGesture()
		m.publish(0)
	}
	return m.state
}

// AnimationDuration returns how long the current release animation should run
func (m *Machine) AnimationDuration() time.Duration {
	if m.state == Closing {
		return m.cfg.CloseDuration
	}
	return m.cfg.ReturnDuration
}

func (m *Machine) drag() Frame {
	translate := m.dy
	if translate < 0 {
		translate = 0
	}
	progress := clamp01(m.dy / m.height)
	m.current = Frame{
		TranslateY: translate,
		Scale:      1 - progress*m.cfg.MaxShrink,
		Progress:   progress,
	}
	m.publish(progress)
	return m.current
}

func (m *Machine) shouldActivate() bool {
	return m.dy > m.cfg.ActivationDistance && abs(m.dy) > abs(m.dx)
}

func (m *Machine) shouldLock() bool {
	if m.dy < -m.cfg.ActivationDistance {
		return true
	}
	return abs(m.dx) > m.cfg.ActivationDistance && abs(m.dx) >= abs(m.dy)
}

// track keeps a smoothed velocity estimate in units/ms
func (m *Machine) track(deltaY float32, at time.Time) {
	if !m.lastMove.IsZero() {
		dt := float32(at.Sub(m.lastMove).Microseconds()) / 1000
		if dt > 0 {
			instant := deltaY / dt
			m.vy = 0.8*instant + 0.2*m.vy
		}
	}
	m.lastMove = at
}

func (m *Machine) resetGesture() {
	m.dx, m.dy, m.vy = 0, 0, 0
	m.lastMove = time.Time{}
	m.locked = false
}

func (m *Machine) publish(progress float32) {
	if m.sink != nil {
		m.sink.Set(progress)
	}
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
