package ui

import (
	"fmt"
	"net/url"
	"strings"
)

// RouteKind identifies a screen
type RouteKind int

const (
	RouteHome RouteKind = iota
	RouteExhibition
	RoutePlayer
)

// String returns the screen name
func (k RouteKind) String() string {
	switch k {
	case RouteHome:
		return "home"
	case RouteExhibition:
		return "exhibition"
	case RoutePlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Route is a parsed navigation path
type Route struct {
	Kind         RouteKind
	ExhibitionID string
	ArtworkID    string
}

// HomePath is the root path
const HomePath = "/"

// ExhibitionPath builds /exhibition/{id}
func ExhibitionPath(exhibitionID string) string {
	return "/exhibition/" + url.PathEscape(exhibitionID)
}

// PlayerPath builds /exhibition/{id}/audio/{artworkId}
func PlayerPath(exhibitionID, artworkID string) string {
	return ExhibitionPath(exhibitionID) + "/audio/" + url.PathEscape(artworkID)
}

// ParseRoute parses one of
//
//	/
//	/exhibition/{exhibitionId}
//	/exhibition/{exhibitionId}/audio/{artworkId}
//
// A trailing slash is accepted. Path segments are unescaped.
func ParseRoute(path string) (Route, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return Route{Kind: RouteHome}, nil
	}

	parts := strings.Split(trimmed, "/")
	for i, p := range parts {
		unescaped, err := url.PathUnescape(p)
		if err != nil {
			return Route{}, fmt.Errorf("route %q: %w", path, err)
		}
		if unescaped == "" {
			return Route{}, fmt.Errorf("route %q: empty segment", path)
		}
		parts[i] = unescaped
	}

	switch {
	case len(parts) == 2 && parts[0] == "exhibition":
		return Route{Kind: RouteExhibition, ExhibitionID: parts[1]}, nil
	case len(parts) == 4 && parts[0] == "exhibition" && parts[2] == "audio":
		return Route{Kind: RoutePlayer, ExhibitionID: parts[1], ArtworkID: parts[3]}, nil
	default:
		return Route{}, fmt.Errorf("route %q: unknown path", path)
	}
}

// Path renders the route back to its path
func (r Route) Path() string {
	switch r.Kind {
	case RouteExhibition:
		return ExhibitionPath(r.ExhibitionID)
	case RoutePlayer:
		return PlayerPath(r.ExhibitionID, r.ArtworkID)
	default:
		return HomePath
	}
}
