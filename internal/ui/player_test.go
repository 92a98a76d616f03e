package ui

import (
	"context"
	"image/color"
	"testing"

	"github.com/odii/audio-guide/internal/dismiss"
	"github.com/odii/audio-guide/internal/gesture"
	"github.com/odii/audio-guide/internal/model"
)

func TestPlayerScreen_ShowsArtwork(t *testing.T) {
	env, _ := newTestEnv(t)

	p := newPlayerScreen(env, "1", "1-1")
	defer p.Close()

	if !p.Found() {
		t.Fatal("Expected artwork 1-1 to be found")
	}
	if p.title.Text() != "겨울 아침의 몽마르트르 대로" {
		t.Errorf("Expected title of 1-1, got %q", p.title.Text())
	}
	if p.artistLabel.Text != "카미유 피사로" {
		t.Errorf("Expected artist 카미유 피사로, got %q", p.artistLabel.Text)
	}
	if p.totalLabel.Text != "3:24" {
		t.Errorf("Expected catalog duration before load, got %q", p.totalLabel.Text)
	}
	if p.playBtn.Text != IconPlay {
		t.Errorf("Expected play icon before playback, got %q", p.playBtn.Text)
	}
	if p.layout.mode != model.DisplayModeFullscreen {
		t.Errorf("Expected fullscreen layout, got %s", p.layout.mode)
	}
	if p.Content() != p.sheet {
		t.Error("Expected the sheet as content")
	}
}

func TestPlayerScreen_MountShrinksUnderlay(t *testing.T) {
	env, _ := newTestEnv(t)

	p := newPlayerScreen(env, "1", "1-1")
	if got := env.dismiss.Progress(); got != 0 {
		t.Errorf("Expected progress 0 with the sheet open, got %v", got)
	}
	if got := env.dismiss.Scale(); got != dismiss.UnderlayMinScale {
		t.Errorf("Expected underlay scale %v, got %v", dismiss.UnderlayMinScale, got)
	}

	p.Close()
	if got := env.dismiss.Progress(); got != dismiss.Settled {
		t.Errorf("Expected settled progress after close, got %v", got)
	}
	if p.machine.State() != gesture.Dismissed {
		t.Errorf("Expected machine Dismissed after close, got %s", p.machine.State())
	}
}

func TestPlayerScreen_PlayAndClose(t *testing.T) {
	env, _ := newTestEnv(t)
	engine := env.services.Engine.(*stubEngine)

	p := newPlayerScreen(env, "1", "1-1")

	if err := p.ctrl.Toggle(context.Background()); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	snap := p.ctrl.Snapshot()
	if !snap.IsPlaying() {
		t.Fatalf("Expected playing after toggle, got state %s", snap.State)
	}

	p.render(snap)
	if p.playBtn.Text != IconPause {
		t.Errorf("Expected pause icon while playing, got %q", p.playBtn.Text)
	}
	if p.spinner.Visible() {
		t.Error("Expected spinner hidden once ready")
	}
	if p.totalLabel.Text != "3:24" {
		t.Errorf("Expected loaded duration 3:24, got %q", p.totalLabel.Text)
	}
	if p.elapsedLabel.Text != "0:12" {
		t.Errorf("Expected elapsed 0:12, got %q", p.elapsedLabel.Text)
	}
	if p.progress.Target() == 0 {
		t.Error("Expected progress target to follow the position")
	}

	handles := engine.loaded()
	if len(handles) != 1 {
		t.Fatalf("Expected one loaded handle, got %d", len(handles))
	}

	p.Close()
	p.Close()
	if !handles[0].isUnloaded() {
		t.Error("Expected the handle to be unloaded on close")
	}
}

func TestPlayerScreen_ErrorState(t *testing.T) {
	env, _ := newTestEnv(t)
	env.services.Engine.(*stubEngine).loadErr = errBackendDown

	p := newPlayerScreen(env, "1", "1-1")
	defer p.Close()

	if err := p.ctrl.Toggle(context.Background()); err == nil {
		t.Fatal("Expected toggle to fail")
	}
	snap := p.ctrl.Snapshot()
	if snap.State != model.PlayerStateError {
		t.Fatalf("Expected Error state, got %s", snap.State)
	}

	p.render(snap)
	if !p.errorLabel.Visible() {
		t.Error("Expected error label to be visible")
	}
	if p.playBtn.Text != IconPlay {
		t.Errorf("Expected play icon after failure, got %q", p.playBtn.Text)
	}
}

func TestPlayerScreen_NotFound(t *testing.T) {
	tests := []struct {
		name         string
		exhibitionID string
		artworkID    string
	}{
		{"unknown exhibition", "99", "99-1"},
		{"unknown artwork", "1", "1-99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := newTestEnv(t)
			p := newPlayerScreen(env, tt.exhibitionID, tt.artworkID)
			defer p.Close()

			if p.Found() {
				t.Error("Expected Found to be false")
			}
			if p.Content() == nil {
				t.Error("Expected a not-found view")
			}
			if got := env.dismiss.Progress(); got != dismiss.Settled {
				t.Errorf("Expected dismiss channel untouched, got %v", got)
			}
		})
	}
}

func TestPlayerScreen_Skip(t *testing.T) {
	env, nav := newTestEnv(t)
	exhibition := env.services.Catalog.ExhibitionByID("1")
	last := exhibition.Artworks[len(exhibition.Artworks)-1]

	p := newPlayerScreen(env, "1", "1-1")
	defer p.Close()

	p.skip(1)
	if p.artwork.ID != "1-2" {
		t.Errorf("Expected artwork 1-2 after next, got %s", p.artwork.ID)
	}
	if p.title.Text() != exhibition.Artworks[1].Title {
		t.Errorf("Expected title %q, got %q", exhibition.Artworks[1].Title, p.title.Text())
	}
	if got := p.ctrl.Snapshot().Ref; got != p.artwork.AudioURL {
		t.Errorf("Expected controller on %s, got %s", p.artwork.AudioURL, got)
	}

	p.skip(-1)
	p.skip(-1)
	if p.artwork.ID != last.ID {
		t.Errorf("Expected previous from the first artwork to wrap to %s, got %s", last.ID, p.artwork.ID)
	}
	if got := p.ctrl.Snapshot().Ref; got != p.artwork.AudioURL {
		t.Errorf("Expected controller on %s after repeated skips, got %s", p.artwork.AudioURL, got)
	}

	nav.mu.Lock()
	defer nav.mu.Unlock()
	expected := []string{PlayerPath("1", "1-2"), PlayerPath("1", "1-1"), PlayerPath("1", last.ID)}
	if len(nav.replaced) != len(expected) {
		t.Fatalf("Expected %d route replacements, got %v", len(expected), nav.replaced)
	}
	for i, path := range expected {
		if nav.replaced[i] != path {
			t.Errorf("Replacement %d: expected %s, got %s", i, path, nav.replaced[i])
		}
	}
}

func TestPlayerScreen_RapidSkipsWhilePlaying(t *testing.T) {
	env, _ := newTestEnv(t)
	engine := env.services.Engine.(*stubEngine)

	p := newPlayerScreen(env, "1", "1-1")
	defer p.Close()

	if err := p.ctrl.Toggle(context.Background()); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		p.skip(1)
	}
	want := p.artwork.AudioURL
	if got := p.ctrl.Snapshot().Ref; got != want {
		t.Fatalf("Expected controller on %s, got %s", want, got)
	}

	waitFor(t, "the last skipped track to play", func() bool {
		s := p.ctrl.Snapshot()
		return s.Ref == want && s.IsPlaying()
	})
	handles := engine.loaded()
	if h := handles[len(handles)-1]; h.id != want {
		t.Errorf("Expected the last load to be %s, got %s", want, h.id)
	}
}

func TestPlayerScreen_ShuffleAndRepeatToggle(t *testing.T) {
	env, _ := newTestEnv(t)
	p := newPlayerScreen(env, "1", "1-1")
	defer p.Close()

	p.onShuffle()
	if !p.shuffle {
		t.Error("Expected shuffle on")
	}
	p.onRepeat()
	p.onRepeat()
	if p.repeat {
		t.Error("Expected repeat off after two taps")
	}
}

func TestPlayerScreen_Volume(t *testing.T) {
	env, _ := newTestEnv(t)
	p := newPlayerScreen(env, "1", "1-1")
	defer p.Close()

	p.onVolumeChanged(0)
	if p.volumeIcon.Text != IconMuted {
		t.Errorf("Expected muted icon, got %q", p.volumeIcon.Text)
	}
	if v := p.ctrl.Snapshot().Volume; v != 0 {
		t.Errorf("Expected controller volume 0, got %v", v)
	}

	p.onVolumeChanged(0.5)
	if p.volumeIcon.Text != IconVolume {
		t.Errorf("Expected volume icon, got %q", p.volumeIcon.Text)
	}
}

func TestPlayerScreen_DismissGoesBack(t *testing.T) {
	env, nav := newTestEnv(t)
	p := newPlayerScreen(env, "1", "1-1")
	defer p.Close()

	p.sheet.animate = immediateAnimator
	m := p.machine
	m.SetScreenHeight(800)
	p.sheet.Dragged(dragBy(0, 600))
	p.sheet.DragEnd()

	if m.State() != gesture.Dismissed {
		t.Fatalf("Expected Dismissed, got %s", m.State())
	}
	if nav.backCount() != 1 {
		t.Errorf("Expected one back navigation, got %d", nav.backCount())
	}
}

func TestTotalText(t *testing.T) {
	tests := []struct {
		name     string
		status   model.PlaybackStatus
		fallback string
		expected string
	}{
		{"loaded duration wins", model.PlaybackStatus{IsLoaded: true, DurationMillis: 61000}, "3:24", "1:01"},
		{"catalog fallback", model.PlaybackStatus{}, "3:24", "3:24"},
		{"trimmed fallback", model.PlaybackStatus{}, "  2:45 ", "2:45"},
		{"placeholder", model.PlaybackStatus{}, "", TimePlaceholder},
		{"loaded without duration", model.PlaybackStatus{IsLoaded: true}, "", TimePlaceholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := totalText(tt.status, tt.fallback); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	fallback := color.NRGBA{A: 0xff}
	tests := []struct {
		in       string
		expected color.Color
	}{
		{"#2c3e50", color.NRGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff}},
		{"1a5490", color.NRGBA{R: 0x1a, G: 0x54, B: 0x90, A: 0xff}},
		{"#fa0", color.NRGBA{R: 0xff, G: 0xaa, B: 0x00, A: 0xff}},
		{"", fallback},
		{"#12345", fallback},
		{"#zzzzzz", fallback},
	}

	for _, tt := range tests {
		if got := parseHexColor(tt.in, fallback); got != tt.expected {
			t.Errorf("parseHexColor(%q) = %v, expected %v", tt.in, got, tt.expected)
		}
	}
}

func TestElapsedMillis(t *testing.T) {
	if got := elapsedMillis(model.PlaybackStatus{PositionMillis: 5000}); got != 0 {
		t.Errorf("Expected 0 for an unloaded status, got %d", got)
	}
	if got := elapsedMillis(model.PlaybackStatus{IsLoaded: true, PositionMillis: 5000}); got != 5000 {
		t.Errorf("Expected 5000, got %d", got)
	}
}
