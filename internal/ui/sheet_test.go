package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/odii/audio-guide/internal/dismiss"
	"github.com/odii/audio-guide/internal/gesture"
)

func dragBy(dx, dy float32) *fyne.DragEvent {
	return &fyne.DragEvent{Dragged: fyne.NewDelta(dx, dy)}
}

// testSheet returns a mounted sheet on an 800 high screen with a clock the
// test advances by hand
type testSheet struct {
	sheet     *Sheet
	channel   *dismiss.Channel
	clock     time.Time
	dismissed int
}

func newTestSheet(t *testing.T) *testSheet {
	t.Helper()

	ts := &testSheet{channel: dismiss.NewChannel(), clock: time.Unix(1700000000, 0)}
	m := gesture.NewMachine(800, ts.channel, func() { ts.dismissed++ })
	m.Mount()

	ts.sheet = NewSheet(widget.NewLabel("now playing"), m)
	ts.sheet.animate = immediateAnimator
	ts.sheet.now = func() time.Time { return ts.clock }
	return ts
}

func (ts *testSheet) advance(d time.Duration) {
	ts.clock = ts.clock.Add(d)
}

func TestSheet_DragPastHalfDismisses(t *testing.T) {
	ts := newTestSheet(t)
	m := ts.sheet.Machine()

	ts.sheet.Dragged(dragBy(0, 500))
	if m.State() != gesture.Dragging {
		t.Fatalf("Expected Dragging, got %s", m.State())
	}
	if got := ts.channel.Progress(); got != 0.625 {
		t.Errorf("Expected progress 0.625 while dragging, got %v", got)
	}

	ts.advance(200 * time.Millisecond)
	ts.sheet.DragEnd()

	if m.State() != gesture.Dismissed {
		t.Fatalf("Expected Dismissed, got %s", m.State())
	}
	if ts.dismissed != 1 {
		t.Errorf("Expected dismiss callback once, got %d", ts.dismissed)
	}
	if got := ts.channel.Progress(); got != 1 {
		t.Errorf("Expected progress 1 after closing, got %v", got)
	}
}

func TestSheet_SmallDragReturns(t *testing.T) {
	ts := newTestSheet(t)
	m := ts.sheet.Machine()

	ts.sheet.Dragged(dragBy(0, 100))
	ts.advance(200 * time.Millisecond)
	ts.sheet.DragEnd()

	if m.State() != gesture.Idle {
		t.Fatalf("Expected Idle after spring back, got %s", m.State())
	}
	if m.Frame() != gesture.Rest {
		t.Errorf("Expected rest frame, got %+v", m.Frame())
	}
	if ts.dismissed != 0 {
		t.Errorf("Expected no dismiss, got %d", ts.dismissed)
	}
	if got := ts.channel.Progress(); got != 0 {
		t.Errorf("Expected progress 0, got %v", got)
	}
}

func TestSheet_FlingDismisses(t *testing.T) {
	ts := newTestSheet(t)
	m := ts.sheet.Machine()

	ts.sheet.Dragged(dragBy(0, 20))
	ts.advance(10 * time.Millisecond)
	ts.sheet.Dragged(dragBy(0, 20))
	ts.advance(20 * time.Millisecond)
	ts.sheet.DragEnd()

	if m.State() != gesture.Dismissed {
		t.Errorf("Expected a fast short drag to dismiss, got %s", m.State())
	}
}

func TestSheet_HorizontalDragIgnored(t *testing.T) {
	ts := newTestSheet(t)
	m := ts.sheet.Machine()

	ts.sheet.Dragged(dragBy(60, 5))
	ts.sheet.Dragged(dragBy(0, 40))
	if m.State() != gesture.Idle {
		t.Errorf("Expected a horizontal gesture to stay Idle, got %s", m.State())
	}

	ts.sheet.DragEnd()
	if m.State() != gesture.Idle {
		t.Errorf("Expected Idle after release, got %s", m.State())
	}
	if got := ts.channel.Progress(); got != 0 {
		t.Errorf("Expected progress untouched, got %v", got)
	}
}

func TestSheet_LayoutFollowsFrame(t *testing.T) {
	ts := newTestSheet(t)
	ts.sheet.Resize(fyne.NewSize(400, 800))

	ts.sheet.Dragged(dragBy(0, 400))
	frame := ts.sheet.Machine().Frame()

	content := ts.sheet.content
	expectedW := 400 * frame.Scale
	if content.Size().Width != expectedW {
		t.Errorf("Expected content width %v, got %v", expectedW, content.Size().Width)
	}
	if content.Position().Y <= 0 {
		t.Errorf("Expected content moved down, got y=%v", content.Position().Y)
	}
}
