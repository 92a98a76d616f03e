package config

import (
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"

	"github.com/odii/audio-guide/internal/platform"
	"github.com/odii/audio-guide/internal/playback"
)

// Settings keys for Fyne preferences
const (
	KeyVolume       = "playback_volume"
	KeyEngine       = "playback_engine"
	KeyLoadTimeout  = "playback_load_timeout_seconds"
	KeyAPIBaseURL   = "api_base_url"
	KeyLanguage     = "app_language"
	KeyAssetDir     = "asset_directory"
	KeyCacheDir     = "cache_directory"
	KeyMaxParallel  = "max_parallel_fetches"
	KeyAutoplayNext = "autoplay_on_skip"
)

// Default values
const (
	DefaultVolume      = 1.0
	DefaultEngine      = playback.EngineNative
	DefaultLoadTimeout = 0 // seconds, 0 disables the timeout
	MaxLoadTimeout     = 120
	DefaultAPIBaseURL  = "http://localhost:4000"
	DefaultLanguage    = "ko"
	DefaultMaxParallel = 2
)

// Settings manages application configuration
type Settings struct {
	app        fyne.App
	apiDefault string
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app, apiDefault: DefaultAPIBaseURL}
}

// SetAPIBaseURLDefault replaces the built-in API base URL used when none is
// stored, normally with the value injected at build time
func (s *Settings) SetAPIBaseURLDefault(url string) {
	if url = normalizeBaseURL(url); url != "" {
		s.apiDefault = url
	}
}

// GetVolume returns the initial playback volume in [0,1]
func (s *Settings) GetVolume() float64 {
	return clamp01(s.app.Preferences().FloatWithFallback(KeyVolume, DefaultVolume))
}

// SetVolume stores the playback volume, clamped to [0,1]
func (s *Settings) SetVolume(v float64) {
	s.app.Preferences().SetFloat(KeyVolume, clamp01(v))
}

// GetEngine returns the configured playback engine
func (s *Settings) GetEngine() playback.EngineKind {
	raw := s.app.Preferences().String(KeyEngine)
	if raw == "" {
		s.SetEngine(DefaultEngine)
		return DefaultEngine
	}
	kind, err := playback.ParseEngineKind(raw)
	if err != nil {
		log.Printf("settings: %v, using %s", err, DefaultEngine)
		s.SetEngine(DefaultEngine)
		return DefaultEngine
	}
	return kind
}

// SetEngine sets the playback engine
func (s *Settings) SetEngine(kind playback.EngineKind) {
	s.app.Preferences().SetString(KeyEngine, string(kind))
}

// GetEngineOptions returns available engine options
func (s *Settings) GetEngineOptions() []playback.EngineKind {
	return []playback.EngineKind{playback.EngineNative, playback.EngineStream}
}

// GetLoadTimeout returns the audio load timeout; zero means none
func (s *Settings) GetLoadTimeout() time.Duration {
	secs := s.app.Preferences().IntWithFallback(KeyLoadTimeout, DefaultLoadTimeout)
	return time.Duration(secs) * time.Second
}

// SetLoadTimeout sets the load timeout in whole seconds, clamped to [0,120]
func (s *Settings) SetLoadTimeout(secs int) {
	if secs < 0 {
		secs = 0
	}
	if secs > MaxLoadTimeout {
		secs = MaxLoadTimeout
	}
	s.app.Preferences().SetInt(KeyLoadTimeout, secs)
}

// GetAPIBaseURL returns the backend base URL without a trailing slash
func (s *Settings) GetAPIBaseURL() string {
	url := normalizeBaseURL(s.app.Preferences().String(KeyAPIBaseURL))
	if url == "" {
		s.SetAPIBaseURL(s.apiDefault)
		return s.apiDefault
	}
	return url
}

// SetAPIBaseURL sets the backend base URL; empty resets to the default
func (s *Settings) SetAPIBaseURL(url string) {
	url = normalizeBaseURL(url)
	if url == "" {
		url = s.apiDefault
	}
	s.app.Preferences().SetString(KeyAPIBaseURL, url)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if _, ok := s.GetLanguageOptions()[lang]; !ok {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"ko": "한국어",
		"en": "English",
	}
}

// GetAssetDirectory returns the directory bundled audio and images load from
func (s *Settings) GetAssetDirectory() string {
	dir := s.app.Preferences().String(KeyAssetDir)
	if dir == "" {
		dir = platform.DefaultAssetDir()
		s.SetAssetDirectory(dir)
	}
	return dir
}

// SetAssetDirectory sets the asset directory
func (s *Settings) SetAssetDirectory(dir string) {
	s.app.Preferences().SetString(KeyAssetDir, dir)
}

// GetCacheDirectory returns the remote audio cache directory
func (s *Settings) GetCacheDirectory() string {
	dir := s.app.Preferences().String(KeyCacheDir)
	if dir == "" {
		defaultDir, err := platform.DefaultCacheDir()
		if err != nil {
			log.Printf("settings: %v", err)
			defaultDir = "/tmp/odii-audio-cache"
		}
		s.SetCacheDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetCacheDirectory sets the cache directory
func (s *Settings) SetCacheDirectory(dir string) {
	s.app.Preferences().SetString(KeyCacheDir, dir)
}

// GetMaxParallelFetches returns the maximum number of parallel audio fetches
func (s *Settings) GetMaxParallelFetches() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelFetches(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelFetches sets the maximum number of parallel audio fetches
func (s *Settings) SetMaxParallelFetches(count int) {
	if count < 1 {
		count = 1
	}
	if count > 10 {
		count = 10
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetAutoplayOnSkip returns whether next/previous start playback even when
// the current track is paused
func (s *Settings) GetAutoplayOnSkip() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoplayNext, false)
}

// SetAutoplayOnSkip sets whether skipping always starts playback
func (s *Settings) SetAutoplayOnSkip(on bool) {
	s.app.Preferences().SetBool(KeyAutoplayNext, on)
}

func normalizeBaseURL(url string) string {
	return strings.TrimRight(strings.TrimSpace(url), "/")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
