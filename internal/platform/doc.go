package platform

// Package platform contains OS integration: Android detection and the default
// locations of bundled assets and the remote audio cache.
