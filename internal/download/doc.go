package download

// Package download keeps a local cache of remote narration files. Each URL is
// fetched at most once at a time into a file named after its SHA-1 UUID, with
// one retry on failure. Task progress is propagated to the UI through an
// update callback.
