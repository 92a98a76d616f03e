package gesture

// Package gesture interprets raw drag deltas on the player sheet. The Machine
// decides when a pull becomes a dismiss drag, what the sheet transform is while
// dragging, and whether a release closes the sheet or springs it back. It has
// no UI dependency: callers feed deltas and animation fractions and apply the
// returned Frame.
