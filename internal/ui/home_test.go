package ui

import (
	"testing"
	"time"

	"github.com/odii/audio-guide/internal/model"
)

func TestHomeScreen_CatalogCards(t *testing.T) {
	env, _ := newTestEnv(t)

	h := newHomeScreen(env)
	defer h.Close()

	select {
	case <-h.loaded:
	case <-time.After(time.Second):
		t.Fatal("Expected home to be loaded without a listings backend")
	}
	if h.Content() == nil {
		t.Fatal("Expected content")
	}
	if h.errorBar.Visible() {
		t.Error("Expected no error bar without a backend")
	}
	if len(h.listings.Objects) != 0 {
		t.Errorf("Expected no listings, got %d", len(h.listings.Objects))
	}
}

func TestHomeScreen_ExhibitionCardNavigates(t *testing.T) {
	env, nav := newTestEnv(t)

	h := newHomeScreen(env)
	defer h.Close()

	card := h.exhibitionCard(env.services.Catalog.ExhibitionByID("2")).(*TapCard)
	card.Tapped(nil)

	if len(nav.pushed) != 1 || nav.pushed[0] != ExhibitionPath("2") {
		t.Errorf("Expected push of %s, got %v", ExhibitionPath("2"), nav.pushed)
	}
}

func TestHomeScreen_ListingsError(t *testing.T) {
	env, _ := newTestEnv(t)

	h := newHomeScreen(env)
	defer h.Close()

	h.showListings(nil, errBackendDown)

	if !h.errorBar.Visible() {
		t.Fatal("Expected error bar to be visible")
	}
	if h.errorLabel.Text != env.loc.GetText(KeyListingsFailed) {
		t.Errorf("Expected listings error text, got %q", h.errorLabel.Text)
	}
	if len(h.listings.Objects) != 0 {
		t.Errorf("Expected no listing rendered on error, got %d", len(h.listings.Objects))
	}
	if h.listingsHeader.Visible() {
		t.Error("Expected listings header hidden on error")
	}

	h.dismissError()
	if h.errorBar.Visible() {
		t.Error("Expected error bar hidden after dismiss")
	}
}

func TestHomeScreen_ListingsRendered(t *testing.T) {
	env, _ := newTestEnv(t)

	h := newHomeScreen(env)
	defer h.Close()

	h.showListings(nil, errBackendDown)
	h.showListings([]model.Listing{
		{ID: "a", Title: "빛의 화가들", Venue: "서울시립미술관", Period: "2025.03 - 2025.06", Tags: []string{"인상주의"}, Tracks: 12, Status: model.ListingStatusLive},
		{ID: "b", Title: "한국의 미", Status: model.ListingStatusUpcoming},
	}, nil)

	if h.errorBar.Visible() {
		t.Error("Expected a successful fetch to clear the error bar")
	}
	if len(h.listings.Objects) != 2 {
		t.Errorf("Expected 2 listing cards, got %d", len(h.listings.Objects))
	}
	if !h.listingsHeader.Visible() {
		t.Error("Expected listings header visible")
	}
}

func TestHomeScreen_StatusText(t *testing.T) {
	env, _ := newTestEnv(t)
	h := &HomeScreen{env: env}

	if got := h.statusText(model.ListingStatusLive); got != LiveBadge+" 진행중" {
		t.Errorf("Expected live badge text, got %q", got)
	}
	if got := h.statusText(model.ListingStatusUpcoming); got != "예정" {
		t.Errorf("Expected upcoming text, got %q", got)
	}
}

func TestNonEmpty(t *testing.T) {
	got := nonEmpty("서울", " ", "", "2025")
	if len(got) != 2 || got[0] != "서울" || got[1] != "2025" {
		t.Errorf("Expected [서울 2025], got %v", got)
	}
}
