package ui

import (
	"context"
	"errors"
	"image/color"
	"io"
	"log"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/odii/audio-guide/internal/gesture"
	"github.com/odii/audio-guide/internal/model"
	"github.com/odii/audio-guide/internal/playback"
	"github.com/odii/audio-guide/internal/responsive"
)

// PlayerScreen is the "now playing" sheet for one artwork. It owns a
// playback controller for its whole life and releases it in Close.
type PlayerScreen struct {
	env        *screenEnv
	exhibition *model.Exhibition
	artwork    *model.Artwork

	ctx     context.Context
	cancel  context.CancelFunc
	ctrl    *playback.Controller
	machine *gesture.Machine
	sheet   *Sheet
	layout  *playerLayout
	body    *fyne.Container
	content fyne.CanvasObject

	artBackground   *canvas.Rectangle
	artImage        *canvas.Image
	title           *Marquee
	artistLabel     *widget.Label
	exhibitionLabel *widget.Label
	errorLabel      *widget.Label
	progress        *ProgressTrack
	elapsedLabel    *widget.Label
	totalLabel      *widget.Label
	spinner         *widget.ProgressBarInfinite
	shuffleBtn      *widget.Button
	prevBtn         *widget.Button
	playBtn         *widget.Button
	nextBtn         *widget.Button
	repeatBtn       *widget.Button
	volumeIcon      *widget.Label
	volumeSlider    *widget.Slider

	shuffle bool
	repeat  bool

	closed    bool
	closeOnce sync.Once
}

func newPlayerScreen(env *screenEnv, exhibitionID, artworkID string) *PlayerScreen {
	p := &PlayerScreen{env: env}

	exhibition, artwork, err := env.services.Catalog.Lookup(exhibitionID, artworkID)
	if err != nil {
		log.Printf("player: %v", err)
		key := KeyArtworkNotFound
		if exhibition == nil {
			key = KeyExhibitionNotFnd
		}
		p.content = newNotFoundView(env, key)
		return p
	}
	p.exhibition = exhibition
	p.artwork = artwork

	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.ctrl = playback.NewController(env.services.Engine, env.services.Resolver, artwork.AudioURL,
		playback.WithVolume(env.settings.GetVolume()),
		playback.WithLoadTimeout(env.settings.GetLoadTimeout()),
	)

	p.buildUI()
	p.showArtwork(artwork)
	p.render(p.ctrl.Snapshot())
	p.ctrl.OnChange(func(s playback.Snapshot) {
		fyne.Do(func() { p.render(s) })
	})

	p.machine = gesture.NewMachine(responsive.BaseHeight, env.dismiss, p.onDismissed)
	p.sheet = NewSheet(p.body, p.machine)
	p.machine.Mount()
	p.content = p.sheet
	return p
}

// Content implements screen
func (p *PlayerScreen) Content() fyne.CanvasObject {
	return p.content
}

// Found reports whether the route named an existing artwork
func (p *PlayerScreen) Found() bool {
	return p.ctrl != nil
}

// Close unloads the track and hands the dismiss progress back to the screen
// underneath. Safe to call more than once.
func (p *PlayerScreen) Close() {
	p.closeOnce.Do(func() {
		if p.ctrl == nil {
			return
		}
		p.closed = true
		p.cancel()
		p.sheet.Stop()
		p.title.Stop()
		p.progress.Stop()
		p.ctrl.Close()
		p.machine.Unmount()
	})
}

func (p *PlayerScreen) buildUI() {
	handle := canvas.NewRectangle(ColorTextMuted)
	handle.CornerRadius = DragHandleHeight / 2

	p.artBackground = canvas.NewRectangle(ColorSurface)
	p.artBackground.CornerRadius = CardCornerRadius
	p.artImage = &canvas.Image{FillMode: canvas.ImageFillContain}
	p.artImage.Hide()
	art := container.NewStack(p.artBackground, p.artImage)

	p.title = NewMarquee("", ArtworkTitleSize)
	p.artistLabel = widget.NewLabel("")
	p.exhibitionLabel = widget.NewLabel("")
	p.exhibitionLabel.Importance = widget.LowImportance
	p.exhibitionLabel.Truncation = fyne.TextTruncateEllipsis
	p.errorLabel = widget.NewLabel(p.env.loc.GetText(KeyPlaybackFailed))
	p.errorLabel.Importance = widget.DangerImportance
	p.errorLabel.Hide()

	p.progress = NewProgressTrack()
	p.elapsedLabel = widget.NewLabel(model.FormatMillis(0))
	p.totalLabel = widget.NewLabel(TimePlaceholder)
	times := container.NewBorder(nil, nil, p.elapsedLabel, p.totalLabel)

	info := container.NewVBox(
		p.title,
		p.artistLabel,
		p.exhibitionLabel,
		p.errorLabel,
		p.progress.Object(),
		times,
	)

	p.shuffleBtn = widget.NewButton(IconShuffle, p.onShuffle)
	p.shuffleBtn.Importance = widget.LowImportance
	p.prevBtn = widget.NewButton(IconPrevious, func() { p.skip(-1) })
	p.playBtn = widget.NewButton(IconPlay, p.onPlayPause)
	p.playBtn.Importance = widget.HighImportance
	p.nextBtn = widget.NewButton(IconNext, func() { p.skip(1) })
	p.repeatBtn = widget.NewButton(IconRepeat, p.onRepeat)
	p.repeatBtn.Importance = widget.LowImportance
	transport := container.NewGridWithColumns(5, p.shuffleBtn, p.prevBtn, p.playBtn, p.nextBtn, p.repeatBtn)

	p.spinner = widget.NewProgressBarInfinite()
	p.spinner.Hide()

	volume := p.ctrl.Snapshot().Volume
	p.volumeIcon = widget.NewLabel(volumeIcon(volume))
	p.volumeSlider = widget.NewSlider(0, 1)
	p.volumeSlider.Step = 0.01
	p.volumeSlider.Value = volume
	p.volumeSlider.OnChanged = p.onVolumeChanged
	p.volumeSlider.OnChangeEnded = p.env.settings.SetVolume
	volumeRow := container.NewBorder(nil, nil, p.volumeIcon, nil, p.volumeSlider)

	controls := container.NewVBox(transport, p.spinner, volumeRow)

	p.layout = &playerLayout{mode: p.artwork.Mode()}
	p.body = container.New(p.layout, handle, art, info, controls)
}

// showArtwork puts a's details on screen. Playback is handled separately.
func (p *PlayerScreen) showArtwork(a *model.Artwork) {
	p.artwork = a
	p.title.SetText(a.Title)
	p.artistLabel.SetText(a.Artist)
	p.exhibitionLabel.SetText(p.exhibition.Title)
	p.totalLabel.SetText(totalText(model.PlaybackStatus{}, a.Duration))
	p.elapsedLabel.SetText(model.FormatMillis(0))
	p.progress.SetTarget(0)

	p.artBackground.FillColor = parseHexColor(a.BackgroundColor, ColorSurface)
	p.artBackground.Refresh()
	p.loadArt(a)

	if p.layout.mode != a.Mode() {
		p.layout.mode = a.Mode()
		p.body.Refresh()
	}
}

func (p *PlayerScreen) loadArt(a *model.Artwork) {
	p.artImage.Hide()
	if !a.HasImage() {
		return
	}

	if rel, ok := model.AssetPath(a.ImageURL); ok {
		if p.env.services.Assets == nil {
			return
		}
		path, err := p.env.services.Assets.AssetFile(rel)
		if err != nil {
			log.Printf("player: image for %s: %v", a.ID, err)
			return
		}
		p.artImage.Resource = nil
		p.artImage.File = path
		p.artImage.Show()
		p.artImage.Refresh()
		return
	}

	ref, id := a.ImageURL, a.ID
	go func() {
		res, err := fetchImage(ref)
		if err != nil {
			log.Printf("player: image for %s: %v", id, err)
			return
		}
		fyne.Do(func() {
			if p.closed || p.artwork.ID != id {
				return
			}
			p.artImage.File = ""
			p.artImage.Resource = res
			p.artImage.Show()
			p.artImage.Refresh()
		})
	}()
}

// fetchImage reads a remote image through Fyne's storage repositories
func fetchImage(ref string) (fyne.Resource, error) {
	uri, err := storage.ParseURI(ref)
	if err != nil {
		return nil, err
	}
	rc, err := storage.Reader(uri)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, 16<<20))
	if err != nil {
		return nil, err
	}
	name := uri.Name()
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		name = u.Path
	}
	return fyne.NewStaticResource(name, data), nil
}

// render reflects a controller snapshot. Runs on the UI goroutine.
func (p *PlayerScreen) render(s playback.Snapshot) {
	if p.closed {
		return
	}

	if s.State == model.PlayerStateLoading {
		p.spinner.Show()
	} else {
		p.spinner.Hide()
	}

	icon := IconPlay
	if s.IsPlaying() {
		icon = IconPause
	}
	if p.playBtn.Text != icon {
		p.playBtn.SetText(icon)
	}

	if s.State == model.PlayerStateError {
		p.errorLabel.Show()
	} else {
		p.errorLabel.Hide()
	}

	p.progress.SetTarget(s.Status.Progress())
	p.elapsedLabel.SetText(model.FormatMillis(elapsedMillis(s.Status)))
	p.totalLabel.SetText(totalText(s.Status, p.artwork.Duration))
}

func (p *PlayerScreen) onPlayPause() {
	ctrl, ctx, id := p.ctrl, p.ctx, p.artwork.ID
	go func() {
		if err := ctrl.Toggle(ctx); err != nil && !errors.Is(err, playback.ErrClosed) {
			log.Printf("player: toggle %s: %v", id, err)
		}
	}()
}

// skip moves step artworks through the exhibition, wrapping at either end
func (p *PlayerScreen) skip(step int) {
	next := p.exhibition.Neighbor(p.artwork.ID, step)
	if next == nil || next.ID == p.artwork.ID {
		return
	}
	p.showArtwork(next)
	if p.env.replace != nil {
		p.env.replace(PlayerPath(p.exhibition.ID, next.ID))
	}

	// cue on the UI goroutine so rapid skips land in tap order
	resume, err := p.ctrl.Cue(next.AudioURL)
	if err != nil {
		if !errors.Is(err, playback.ErrClosed) {
			log.Printf("player: switch to %s: %v", next.ID, err)
		}
		return
	}
	if !resume && !(p.env.settings.GetAutoplayOnSkip() && p.ctrl.Snapshot().State == model.PlayerStateNoTrack) {
		return
	}

	ctrl, ctx, id := p.ctrl, p.ctx, next.ID
	go func() {
		if err := ctrl.Toggle(ctx); err != nil && !errors.Is(err, playback.ErrClosed) {
			log.Printf("player: start %s: %v", id, err)
		}
	}()
}

func (p *PlayerScreen) onShuffle() {
	p.shuffle = !p.shuffle
	setHighlighted(p.shuffleBtn, p.shuffle)
}

func (p *PlayerScreen) onRepeat() {
	p.repeat = !p.repeat
	setHighlighted(p.repeatBtn, p.repeat)
}

func (p *PlayerScreen) onVolumeChanged(v float64) {
	p.ctrl.SetVolume(v)
	p.volumeIcon.SetText(volumeIcon(v))
}

func (p *PlayerScreen) onDismissed() {
	if p.env.back != nil {
		p.env.back()
	}
}

func setHighlighted(btn *widget.Button, on bool) {
	if on {
		btn.Importance = widget.HighImportance
	} else {
		btn.Importance = widget.LowImportance
	}
	btn.Refresh()
}

func volumeIcon(v float64) string {
	if v <= 0 {
		return IconMuted
	}
	return IconVolume
}

func elapsedMillis(s model.PlaybackStatus) int64 {
	if !s.IsLoaded {
		return 0
	}
	return s.PositionMillis
}

// totalText is the loaded duration, else the catalog's duration string,
// else a placeholder
func totalText(s model.PlaybackStatus, fallback string) string {
	if s.IsLoaded && s.DurationMillis > 0 {
		return model.FormatMillis(s.DurationMillis)
	}
	if fallback = strings.TrimSpace(fallback); fallback != "" {
		return fallback
	}
	return TimePlaceholder
}

// parseHexColor parses #rgb or #rrggbb
func parseHexColor(s string, fallback color.Color) color.Color {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

func newNotFoundView(env *screenEnv, key string) fyne.CanvasObject {
	msg := widget.NewLabel(env.loc.GetText(key))
	msg.Alignment = fyne.TextAlignCenter
	back := widget.NewButton(env.loc.GetText(KeyBack), func() {
		if env.back != nil {
			env.back()
		}
	})
	return container.NewCenter(container.NewVBox(msg, back))
}
