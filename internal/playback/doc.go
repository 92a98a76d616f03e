package playback

// Package playback plays artwork narration. An Engine turns a resolved Source
// into a Handle; two engines exist (a beep speaker engine that pushes status
// updates and an ebiten audio engine that is polled). The Controller owns at
// most one Handle per player screen and exposes a play/pause/volume surface
// with a single PlaybackStatus shape regardless of engine.
