package model

import "strings"

// AssetScheme prefixes audio and image references that ship with the app
const AssetScheme = "asset://"

// DisplayMode selects the player layout for an artwork
type DisplayMode string

const (
	DisplayModeStandard   DisplayMode = "standard"
	DisplayModeFullscreen DisplayMode = "fullscreen"
)

// Artwork represents a single playable audio-guide track
type Artwork struct {
	ID              string      `json:"id" yaml:"id"`
	Title           string      `json:"title" yaml:"title"`
	Artist          string      `json:"artist" yaml:"artist"`
	AudioURL        string      `json:"audio_url" yaml:"audio_url"`           // remote URL or asset:// reference
	Duration        string      `json:"duration" yaml:"duration"`             // display string, e.g. "3:24"
	ImageURL        string      `json:"image_url,omitempty" yaml:"image_url"` // optional
	DisplayMode     DisplayMode `json:"display_mode,omitempty" yaml:"display_mode"`
	BackgroundColor string      `json:"background_color,omitempty" yaml:"background_color"`
}

// Exhibition represents a named collection of artworks
type Exhibition struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Subtitle    string     `json:"subtitle" yaml:"subtitle"`
	Location    string     `json:"location" yaml:"location"`
	Description string     `json:"description" yaml:"description"`
	Artworks    []*Artwork `json:"artworks" yaml:"artworks"`
}

// Mode returns the display mode, defaulting to standard
func (a *Artwork) Mode() DisplayMode {
	if a.DisplayMode == "" {
		return DisplayModeStandard
	}
	return a.DisplayMode
}

// IsBundled reports whether the audio ships with the app
func (a *Artwork) IsBundled() bool {
	return IsAssetRef(a.AudioURL)
}

// HasImage reports whether artwork art is available
func (a *Artwork) HasImage() bool {
	return strings.TrimSpace(a.ImageURL) != ""
}

// IsAssetRef reports whether ref points at a bundled asset
func IsAssetRef(ref string) bool {
	return strings.HasPrefix(ref, AssetScheme)
}

// AssetPath strips the asset scheme from ref. The second return is false for
// anything that is not an asset reference.
func AssetPath(ref string) (string, bool) {
	if !IsAssetRef(ref) {
		return "", false
	}
	return strings.TrimPrefix(ref, AssetScheme), true
}

// ArtworkByID finds an artwork by ID
func (e *Exhibition) ArtworkByID(artworkID string) *Artwork {
	if artworkID == "" {
		return nil
	}
	for _, artwork := range e.Artworks {
		if artwork.ID == artworkID {
			return artwork
		}
	}
	return nil
}

// IndexOf returns the position of an artwork, or -1
func (e *Exhibition) IndexOf(artworkID string) int {
	for i, artwork := range e.Artworks {
		if artwork.ID == artworkID {
			return i
		}
	}
	return -1
}

// Neighbor returns the artwork step positions away from artworkID, wrapping
// around the list. Nil when the exhibition is empty or the ID is unknown.
func (e *Exhibition) Neighbor(artworkID string, step int) *Artwork {
	n := len(e.Artworks)
	idx := e.IndexOf(artworkID)
	if n == 0 || idx < 0 {
		return nil
	}
	next := ((idx+step)%n + n) % n
	return e.Artworks[next]
}
