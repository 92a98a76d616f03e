package ui

import "fmt"

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeySettings         = "settings"
	KeyMenu             = "menu"
	KeyLanguage         = "language"
	KeyBack             = "back"
	KeySave             = "save"
	KeyCancel           = "cancel"
	KeyBrowse           = "browse"
	KeyDismiss          = "dismiss"
	KeyExhibitions      = "exhibitions"
	KeyNowShowing       = "now_showing"
	KeyArtworks         = "artworks"
	KeyTrackCount       = "track_count"
	KeyStatusLive       = "status_live"
	KeyStatusUpcoming   = "status_upcoming"
	KeyListingsFailed   = "listings_failed"
	KeyExhibitionNotFnd = "exhibition_not_found"
	KeyArtworkNotFound  = "artwork_not_found"
	KeyPlaybackFailed   = "playback_failed"
	KeyFetchingAudio    = "fetching_audio"
	KeyFetchFailed      = "fetch_failed"
	KeyConvertingAudio  = "converting_audio"
	KeyConvertFailed    = "convert_failed"
	KeyClearCache       = "clear_cache"
	KeyCacheCleared     = "cache_cleared"
	KeyVolume           = "volume"
	KeyEngine           = "engine"
	KeyAPIBaseURL       = "api_base_url"
	KeyAssetDirectory   = "asset_directory"
	KeyCacheDirectory   = "cache_directory"
	KeyMaxParallel      = "max_parallel"
	KeyLoadTimeout      = "load_timeout"
	KeyAutoplayOnSkip   = "autoplay_on_skip"
	KeyPlaybackSection  = "playback_section"
	KeyStorageSection   = "storage_section"
	KeyInterfaceSection = "interface_section"
	KeySettingsSaved    = "settings_saved"
	KeyRestartRequired  = "restart_required"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "ko",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. Unknown codes are ignored.
func (l *Localization) SetLanguage(lang string) {
	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to Korean, the language the content is written in
	if texts, exists := l.texts["ko"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// Format is GetText used as a fmt format string
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"ko": "한국어",
		"en": "English",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["ko"] = map[string]string{
		KeyAppTitle:         "ODI",
		KeySettings:         "설정",
		KeyMenu:             "메뉴",
		KeyLanguage:         "언어",
		KeyBack:             "뒤로",
		KeySave:             "저장",
		KeyCancel:           "취소",
		KeyBrowse:           "찾아보기",
		KeyDismiss:          "닫기",
		KeyExhibitions:      "전시",
		KeyNowShowing:       "전시 소식",
		KeyArtworks:         "작품",
		KeyTrackCount:       "%d개 트랙",
		KeyStatusLive:       "진행중",
		KeyStatusUpcoming:   "예정",
		KeyListingsFailed:   "전시 소식을 불러오지 못했습니다",
		KeyExhibitionNotFnd: "전시를 찾을 수 없습니다",
		KeyArtworkNotFound:  "작품을 찾을 수 없습니다",
		KeyPlaybackFailed:   "오디오를 재생할 수 없습니다",
		KeyFetchingAudio:    "오디오 받는 중 %d%%",
		KeyFetchFailed:      "오디오를 받지 못했습니다",
		KeyConvertingAudio:  "오디오 변환 중 %d%%",
		KeyConvertFailed:    "오디오를 변환하지 못했습니다",
		KeyClearCache:       "캐시 비우기",
		KeyCacheCleared:     "오디오 캐시를 비웠습니다",
		KeyVolume:           "음량",
		KeyEngine:           "재생 엔진",
		KeyAPIBaseURL:       "API 주소",
		KeyAssetDirectory:   "에셋 폴더",
		KeyCacheDirectory:   "캐시 폴더",
		KeyMaxParallel:      "동시 다운로드 수",
		KeyLoadTimeout:      "로딩 제한 시간(초, 0은 무제한)",
		KeyAutoplayOnSkip:   "건너뛰면 바로 재생",
		KeyPlaybackSection:  "재생",
		KeyStorageSection:   "저장소",
		KeyInterfaceSection: "화면",
		KeySettingsSaved:    "설정을 저장했습니다",
		KeyRestartRequired:  "엔진과 폴더 변경은 다시 시작한 뒤 적용됩니다",
	}

	l.texts["en"] = map[string]string{
		KeyAppTitle:         "ODI",
		KeySettings:         "Settings",
		KeyMenu:             "Menu",
		KeyLanguage:         "Language",
		KeyBack:             "Back",
		KeySave:             "Save",
		KeyCancel:           "Cancel",
		KeyBrowse:           "Browse",
		KeyDismiss:          "Dismiss",
		KeyExhibitions:      "Exhibitions",
		KeyNowShowing:       "Now showing",
		KeyArtworks:         "Artworks",
		KeyTrackCount:       "%d tracks",
		KeyStatusLive:       "Live",
		KeyStatusUpcoming:   "Upcoming",
		KeyListingsFailed:   "Could not load exhibition listings",
		KeyExhibitionNotFnd: "Exhibition not found",
		KeyArtworkNotFound:  "Artwork not found",
		KeyPlaybackFailed:   "Audio could not be played",
		KeyFetchingAudio:    "Fetching audio %d%%",
		KeyFetchFailed:      "Audio download failed",
		KeyConvertingAudio:  "Converting audio %d%%",
		KeyConvertFailed:    "Audio conversion failed",
		KeyClearCache:       "Clear cache",
		KeyCacheCleared:     "Audio cache cleared",
		KeyVolume:           "Volume",
		KeyEngine:           "Playback engine",
		KeyAPIBaseURL:       "API address",
		KeyAssetDirectory:   "Asset folder",
		KeyCacheDirectory:   "Cache folder",
		KeyMaxParallel:      "Parallel downloads",
		KeyLoadTimeout:      "Load timeout (seconds, 0 for none)",
		KeyAutoplayOnSkip:   "Play immediately on skip",
		KeyPlaybackSection:  "Playback",
		KeyStorageSection:   "Storage",
		KeyInterfaceSection: "Interface",
		KeySettingsSaved:    "Settings saved",
		KeyRestartRequired:  "Engine and folder changes apply after a restart",
	}
}
