package model

// ListingStatus marks whether an exhibition is currently open
type ListingStatus string

const (
	ListingStatusLive     ListingStatus = "live"
	ListingStatusUpcoming ListingStatus = "upcoming"
)

// Listing is the exhibition summary served by the backend
type Listing struct {
	ID          string        `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title"`
	Venue       string        `json:"venue" yaml:"venue"`
	Period      string        `json:"period" yaml:"period"`
	Tags        []string      `json:"tags" yaml:"tags"`
	Tracks      int           `json:"tracks" yaml:"tracks"`
	Status      ListingStatus `json:"status" yaml:"status"`
	Description string        `json:"description" yaml:"description"`
}

// IsValid reports whether the status is one the clients understand
func (s ListingStatus) IsValid() bool {
	return s == ListingStatusLive || s == ListingStatusUpcoming
}

// ServiceStatus is the payload of the backend health endpoint
type ServiceStatus struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

// LiveListing returns the first live listing, if any
func LiveListing(listings []Listing) (Listing, bool) {
	for _, l := range listings {
		if l.Status == ListingStatusLive {
			return l, true
		}
	}
	return Listing{}, false
}

// TotalTracks sums the track counts of all listings
func TotalTracks(listings []Listing) int {
	total := 0
	for _, l := range listings {
		total += l.Tracks
	}
	return total
}
