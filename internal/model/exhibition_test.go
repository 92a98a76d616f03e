package model

import "testing"

func newTestExhibition() *Exhibition {
	return &Exhibition{
		ID:    "1",
		Title: "Test",
		Artworks: []*Artwork{
			{ID: "1-1", Title: "First", AudioURL: "asset://audio/first.wav"},
			{ID: "1-2", Title: "Second", AudioURL: "https://example.com/audio/1-2.mp3", DisplayMode: DisplayModeFullscreen},
			{ID: "1-3", Title: "Third", AudioURL: "https://example.com/audio/1-3.mp3"},
		},
	}
}

func TestExhibition_ArtworkByID(t *testing.T) {
	ex := newTestExhibition()

	tests := []struct {
		id       string
		expected string
	}{
		{"1-1", "First"},
		{"1-3", "Third"},
		{"", ""},
		{"9-9", ""},
	}

	for _, test := range tests {
		artwork := ex.ArtworkByID(test.id)
		if test.expected == "" {
			if artwork != nil {
				t.Errorf("ArtworkByID(%q) = %v, expected nil", test.id, artwork)
			}
			continue
		}
		if artwork == nil || artwork.Title != test.expected {
			t.Errorf("ArtworkByID(%q) = %v, expected title %q", test.id, artwork, test.expected)
		}
	}
}

func TestExhibition_Neighbor(t *testing.T) {
	ex := newTestExhibition()

	tests := []struct {
		id       string
		step     int
		expected string
	}{
		{"1-1", 1, "1-2"},
		{"1-3", 1, "1-1"},
		{"1-1", -1, "1-3"},
		{"1-2", -1, "1-1"},
		{"1-2", 4, "1-3"},
	}

	for _, test := range tests {
		got := ex.Neighbor(test.id, test.step)
		if got == nil || got.ID != test.expected {
			t.Errorf("Neighbor(%q, %d) = %v, expected %s", test.id, test.step, got, test.expected)
		}
	}

	if got := ex.Neighbor("missing", 1); got != nil {
		t.Errorf("Neighbor on unknown ID should be nil, got %v", got)
	}
	if got := (&Exhibition{}).Neighbor("1-1", 1); got != nil {
		t.Errorf("Neighbor on empty exhibition should be nil, got %v", got)
	}
}

func TestArtwork_Mode(t *testing.T) {
	ex := newTestExhibition()

	if ex.Artworks[0].Mode() != DisplayModeStandard {
		t.Errorf("Expected default mode %s, got %s", DisplayModeStandard, ex.Artworks[0].Mode())
	}
	if ex.Artworks[1].Mode() != DisplayModeFullscreen {
		t.Errorf("Expected mode %s, got %s", DisplayModeFullscreen, ex.Artworks[1].Mode())
	}
}

func TestAssetPath(t *testing.T) {
	tests := []struct {
		ref      string
		path     string
		isBundle bool
	}{
		{"asset://audio/first.wav", "audio/first.wav", true},
		{"https://example.com/a.mp3", "", false},
		{"", "", false},
	}

	for _, test := range tests {
		path, ok := AssetPath(test.ref)
		if ok != test.isBundle || path != test.path {
			t.Errorf("AssetPath(%q) = (%q, %v), expected (%q, %v)", test.ref, path, ok, test.path, test.isBundle)
		}
	}
}
