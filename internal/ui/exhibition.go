package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/odii/audio-guide/internal/model"
)

// ExhibitionScreen lists the artworks of one exhibition. It sits under the
// player sheet and shrinks with the dismiss progress.
type ExhibitionScreen struct {
	env        *screenEnv
	exhibition *model.Exhibition
	box        *ScaledBox
	content    fyne.CanvasObject
}

func newExhibitionScreen(env *screenEnv, exhibitionID string) *ExhibitionScreen {
	s := &ExhibitionScreen{env: env}

	s.exhibition = env.services.Catalog.ExhibitionByID(exhibitionID)
	if s.exhibition == nil {
		s.content = newNotFoundView(env, KeyExhibitionNotFnd)
		return s
	}

	header := s.buildHeader()
	grid := container.New(newResponsiveGrid())
	for _, a := range s.exhibition.Artworks {
		grid.Add(s.artworkCard(a))
	}

	page := container.NewVBox(header, widget.NewSeparator(), grid)
	inset := container.New(&screenInset{mobile: env.mobile}, page)
	s.box = NewScaledBox(container.NewVScroll(inset), env.dismiss)
	s.content = s.box
	return s
}

// Content implements screen
func (s *ExhibitionScreen) Content() fyne.CanvasObject {
	return s.content
}

// Close implements screen
func (s *ExhibitionScreen) Close() {
	if s.box != nil {
		s.box.Close()
	}
}

func (s *ExhibitionScreen) buildHeader() fyne.CanvasObject {
	title := widget.NewLabelWithStyle(s.exhibition.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	title.Wrapping = fyne.TextWrapWord

	meta := s.exhibition.Subtitle
	if s.exhibition.Location != "" {
		meta += MiddleDotSeparator + s.exhibition.Location
	}
	subtitle := widget.NewLabel(meta)
	subtitle.Importance = widget.LowImportance
	subtitle.Wrapping = fyne.TextWrapWord

	description := widget.NewLabel(s.exhibition.Description)
	description.Wrapping = fyne.TextWrapWord

	count := canvas.NewText(fmt.Sprintf("%s %d", s.env.loc.GetText(KeyArtworks), len(s.exhibition.Artworks)), ColorTextMuted)
	count.TextSize = CaptionTextSize

	return container.NewVBox(title, subtitle, description, count)
}

func (s *ExhibitionScreen) artworkCard(a *model.Artwork) fyne.CanvasObject {
	title := widget.NewLabelWithStyle(a.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	title.Wrapping = fyne.TextWrapWord

	detail := a.Artist
	if a.Duration != "" {
		detail += MiddleDotSeparator + a.Duration
	}
	artist := widget.NewLabel(detail)
	artist.Importance = widget.LowImportance

	play := canvas.NewText(IconPlay, ColorAccent)
	play.TextSize = TitleTextSize

	exhibitionID, artworkID := s.exhibition.ID, a.ID
	return NewTapCard(
		container.NewBorder(nil, nil, nil, container.NewCenter(play), container.NewVBox(title, artist)),
		func() { s.env.push(PlayerPath(exhibitionID, artworkID)) },
	)
}
