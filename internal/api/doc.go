package api

// Package api is the small read-only backend that serves exhibition listings
// and a health endpoint, plus the HTTP client the app uses to read them.
// Listings come from built-in defaults or a YAML file that is reloaded when it
// changes on disk.
