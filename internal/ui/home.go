package ui

import (
	"context"
	"fmt"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/odii/audio-guide/internal/model"
)

// ListingSource provides the backend's exhibition listings
type ListingSource interface {
	Exhibitions(ctx context.Context) ([]model.Listing, error)
}

// HomeScreen shows the bundled exhibitions and, when a backend is
// configured, the listings it serves
type HomeScreen struct {
	env     *screenEnv
	content fyne.CanvasObject

	listingsHeader *widget.Label
	listings       *fyne.Container
	errorBar       *fyne.Container
	errorLabel     *widget.Label

	cancel context.CancelFunc
	loaded chan struct{}
}

func newHomeScreen(env *screenEnv) *HomeScreen {
	h := &HomeScreen{env: env, loaded: make(chan struct{})}

	logo := canvas.NewText(env.loc.GetText(KeyAppTitle), ColorTextPrimary)
	logo.TextSize = LogoTextSize

	exhibitions := container.New(newResponsiveGrid())
	for _, e := range env.services.Catalog.Exhibitions() {
		exhibitions.Add(h.exhibitionCard(e))
	}

	h.errorLabel = widget.NewLabel("")
	h.errorLabel.Wrapping = fyne.TextWrapWord
	h.errorLabel.Importance = widget.DangerImportance
	dismissBtn := widget.NewButton(IconClose, h.dismissError)
	dismissBtn.Importance = widget.LowImportance
	h.errorBar = container.NewBorder(nil, nil, nil, dismissBtn, h.errorLabel)
	h.errorBar.Hide()

	h.listingsHeader = widget.NewLabelWithStyle(env.loc.GetText(KeyNowShowing), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	h.listingsHeader.Hide()
	h.listings = container.New(newResponsiveGrid())

	page := container.NewVBox(
		logo,
		h.errorBar,
		exhibitions,
		h.listingsHeader,
		h.listings,
	)
	h.content = container.NewVScroll(container.New(&screenInset{mobile: env.mobile}, page))

	if env.services.Listings == nil {
		close(h.loaded)
		return h
	}
	var ctx context.Context
	ctx, h.cancel = context.WithCancel(context.Background())
	go h.fetchListings(ctx)
	return h
}

// Content implements screen
func (h *HomeScreen) Content() fyne.CanvasObject {
	return h.content
}

// Close implements screen
func (h *HomeScreen) Close() {
	if h.cancel != nil {
		h.cancel()
	}
}

func (h *HomeScreen) fetchListings(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, ListingsFetchTimeout)
	defer cancel()

	listings, err := h.env.services.Listings.Exhibitions(fetchCtx)
	if err != nil {
		log.Printf("home: fetch listings: %v", err)
	}
	fyne.Do(func() {
		defer close(h.loaded)
		if ctx.Err() != nil {
			// screen closed while fetching
			return
		}
		h.showListings(listings, err)
	})
}

// showListings renders the listings, or the inline error and no listing
func (h *HomeScreen) showListings(listings []model.Listing, err error) {
	h.listings.RemoveAll()
	if err != nil {
		h.errorLabel.SetText(h.env.loc.GetText(KeyListingsFailed))
		h.errorBar.Show()
		h.listingsHeader.Hide()
		return
	}

	h.errorBar.Hide()
	for _, l := range listings {
		h.listings.Add(h.listingCard(l))
	}
	if len(listings) > 0 {
		h.listingsHeader.Show()
	} else {
		h.listingsHeader.Hide()
	}
	h.listings.Refresh()
}

func (h *HomeScreen) dismissError() {
	h.errorBar.Hide()
}

func (h *HomeScreen) exhibitionCard(e *model.Exhibition) fyne.CanvasObject {
	title := widget.NewLabelWithStyle(e.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	title.Wrapping = fyne.TextWrapWord

	meta := e.Subtitle
	if e.Location != "" {
		meta += MiddleDotSeparator + e.Location
	}
	subtitle := widget.NewLabel(meta)
	subtitle.Importance = widget.LowImportance

	count := canvas.NewText(h.env.loc.Format(KeyTrackCount, len(e.Artworks)), ColorTextMuted)
	count.TextSize = CaptionTextSize

	id := e.ID
	return NewTapCard(container.NewVBox(title, subtitle, count), func() {
		h.env.push(ExhibitionPath(id))
	})
}

func (h *HomeScreen) listingCard(l model.Listing) fyne.CanvasObject {
	title := widget.NewLabelWithStyle(l.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	title.Wrapping = fyne.TextWrapWord

	meta := strings.Join(nonEmpty(l.Venue, l.Period), MiddleDotSeparator)
	venue := widget.NewLabel(meta)
	venue.Importance = widget.LowImportance

	status := canvas.NewText(h.statusText(l.Status), ColorTextSecondary)
	if l.Status == model.ListingStatusLive {
		status.Color = ColorLive
	}
	status.TextSize = CaptionTextSize

	tracks := canvas.NewText(h.env.loc.Format(KeyTrackCount, l.Tracks), ColorTextMuted)
	tracks.TextSize = CaptionTextSize

	rows := []fyne.CanvasObject{container.NewHBox(status, tracks), title, venue}
	if len(l.Tags) > 0 {
		tags := make([]string, len(l.Tags))
		for i, t := range l.Tags {
			tags[i] = "#" + t
		}
		tagLabel := widget.NewLabel(strings.Join(tags, " "))
		tagLabel.Importance = widget.LowImportance
		tagLabel.Wrapping = fyne.TextWrapWord
		rows = append(rows, tagLabel)
	}
	if l.Description != "" {
		desc := widget.NewLabel(l.Description)
		desc.Wrapping = fyne.TextWrapWord
		rows = append(rows, desc)
	}

	// listings are announcements; only the bundled catalog is playable
	return NewTapCard(container.NewVBox(rows...), nil)
}

func (h *HomeScreen) statusText(s model.ListingStatus) string {
	if s == model.ListingStatusLive {
		return fmt.Sprintf("%s %s", LiveBadge, h.env.loc.GetText(KeyStatusLive))
	}
	return h.env.loc.GetText(KeyStatusUpcoming)
}

func nonEmpty(values ...string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
