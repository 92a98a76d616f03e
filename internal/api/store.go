package api

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/odii/audio-guide/internal/model"
)

// ListingStore holds the listings currently served. Readers get copies.
type ListingStore struct {
	mu       sync.RWMutex
	listings []model.Listing
}

// NewListingStore creates a store seeded with listings
func NewListingStore(listings []model.Listing) *ListingStore {
	s := &ListingStore{}
	s.Replace(listings)
	return s
}

// Listings returns a copy of the current listings
func (s *ListingStore) Listings() []model.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneListings(s.listings)
}

// ByID returns the listing with id
func (s *ListingStore) ByID(id string) (model.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.listings {
		if l.ID == id {
			return cloneListing(l), true
		}
	}
	return model.Listing{}, false
}

// Replace swaps in a new set of listings
func (s *ListingStore) Replace(listings []model.Listing) {
	next := cloneListings(listings)
	s.mu.Lock()
	s.listings = next
	s.mu.Unlock()
}

// LoadFile parses path and replaces the listings. On any error the current
// listings are kept.
func (s *ListingStore) LoadFile(path string) error {
	listings, err := ReadListingsFile(path)
	if err != nil {
		return err
	}
	s.Replace(listings)
	return nil
}

// ReadListingsFile reads and validates a YAML listings file. The document is
// either a bare sequence or a mapping with an "exhibitions" key.
func ReadListingsFile(path string) ([]model.Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read listings: %w", err)
	}
	return ParseListings(data)
}

// ParseListings decodes and validates YAML listings
func ParseListings(data []byte) ([]model.Listing, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("listings file is empty")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse listings: %w", err)
	}

	var listings []model.Listing
	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&listings); err != nil {
			return nil, fmt.Errorf("decode listings: %w", err)
		}
	case yaml.MappingNode:
		var wrapped struct {
			Exhibitions []model.Listing `yaml:"exhibitions"`
		}
		if err := doc.Decode(&wrapped); err != nil {
			return nil, fmt.Errorf("decode listings: %w", err)
		}
		listings = wrapped.Exhibitions
	default:
		return nil, errors.New("listings must be a sequence or an exhibitions mapping")
	}

	if err := validateListings(listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func validateListings(listings []model.Listing) error {
	seen := make(map[string]bool, len(listings))
	for i := range listings {
		l := &listings[i]
		if l.ID == "" {
			return fmt.Errorf("listing %d: missing id", i)
		}
		if seen[l.ID] {
			return fmt.Errorf("listing %q: duplicate id", l.ID)
		}
		seen[l.ID] = true
		if l.Title == "" {
			return fmt.Errorf("listing %q: missing title", l.ID)
		}
		if l.Status == "" {
			l.Status = model.ListingStatusUpcoming
		}
		if !l.Status.IsValid() {
			return fmt.Errorf("listing %q: unknown status %q", l.ID, l.Status)
		}
		if l.Tracks < 0 {
			return fmt.Errorf("listing %q: negative track count", l.ID)
		}
		if l.Tags == nil {
			l.Tags = []string{}
		}
	}
	return nil
}

func cloneListings(in []model.Listing) []model.Listing {
	out := make([]model.Listing, len(in))
	for i, l := range in {
		out[i] = cloneListing(l)
	}
	return out
}

func cloneListing(l model.Listing) model.Listing {
	l.Tags = append([]string{}, l.Tags...)
	return l
}
