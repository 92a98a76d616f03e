package model

// Package model defines domain data structures used across the app: exhibitions,
// artworks, backend listings, playback status and the state enums that drive the
// player and the audio cache. Structures are plain values with explicit state
// transitions so the UI can render them directly.
