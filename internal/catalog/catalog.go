package catalog

import (
	"errors"
	"fmt"

	"github.com/odii/audio-guide/internal/model"
)

// ErrNotFound is returned when an exhibition or artwork ID is unknown
var ErrNotFound = errors.New("not found")

// Store provides read-only access to exhibitions by ID
type Store struct {
	exhibitions []*model.Exhibition
	byID        map[string]*model.Exhibition
}

// NewStore indexes the given exhibitions. Later duplicates of an ID are ignored.
func NewStore(exhibitions []*model.Exhibition) *Store {
	s := &Store{
		exhibitions: exhibitions,
		byID:        make(map[string]*model.Exhibition, len(exhibitions)),
	}
	for _, ex := range exhibitions {
		if _, exists := s.byID[ex.ID]; exists {
			continue
		}
		s.byID[ex.ID] = ex
	}
	return s
}

// Exhibitions returns all exhibitions in display order
func (s *Store) Exhibitions() []*model.Exhibition {
	return s.exhibitions
}

// ExhibitionByID returns the exhibition with the given ID, or nil
func (s *Store) ExhibitionByID(id string) *model.Exhibition {
	if id == "" {
		return nil
	}
	return s.byID[id]
}

// ArtworkByID returns the exhibition and the artwork inside it. Either may be
// nil: an unknown exhibition yields (nil, nil), an unknown artwork yields
// (exhibition, nil).
func (s *Store) ArtworkByID(exhibitionID, artworkID string) (*model.Exhibition, *model.Artwork) {
	exhibition := s.ExhibitionByID(exhibitionID)
	if exhibition == nil || artworkID == "" {
		return exhibition, nil
	}
	return exhibition, exhibition.ArtworkByID(artworkID)
}

// Lookup is ArtworkByID with an error for callers that need one
func (s *Store) Lookup(exhibitionID, artworkID string) (*model.Exhibition, *model.Artwork, error) {
	exhibition, artwork := s.ArtworkByID(exhibitionID, artworkID)
	if exhibition == nil {
		return nil, nil, fmt.Errorf("exhibition %q: %w", exhibitionID, ErrNotFound)
	}
	if artwork == nil {
		return exhibition, nil, fmt.Errorf("artwork %q in exhibition %q: %w", artworkID, exhibitionID, ErrNotFound)
	}
	return exhibition, artwork, nil
}
