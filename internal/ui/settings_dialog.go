package ui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/odii/audio-guide/internal/config"
	"github.com/odii/audio-guide/internal/playback"
)

// SettingsChange reports which saved settings need action from the caller
type SettingsChange struct {
	Language        bool
	APIBaseURL      bool
	CacheDirectory  bool
	RestartRequired bool
}

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func(SettingsChange)
	clearCache   func() error

	// UI components
	engineSelect     *widget.Select
	volumeSlider     *widget.Slider
	timeoutEntry     *widget.Entry
	autoplayCheck    *widget.Check
	apiEntry         *widget.Entry
	assetDirEntry    *widget.Entry
	cacheDirEntry    *widget.Entry
	maxParallelEntry *widget.Entry
	clearCacheBtn    *widget.Button
	languageSelect   *widget.Select
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func(SettingsChange)) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// SetClearCache enables the clear cache button
func (sd *SettingsDialog) SetClearCache(fn func() error) {
	sd.clearCache = fn
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	if sd.clearCache == nil {
		sd.clearCacheBtn.Hide()
	} else {
		sd.clearCacheBtn.Show()
	}
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	engineOptions := []string{}
	for _, kind := range sd.settings.GetEngineOptions() {
		engineOptions = append(engineOptions, string(kind))
	}
	sd.engineSelect = widget.NewSelect(engineOptions, nil)

	sd.volumeSlider = widget.NewSlider(0, 1)
	sd.volumeSlider.Step = 0.05

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder("0-" + strconv.Itoa(config.MaxLoadTimeout))

	sd.autoplayCheck = widget.NewCheck(text(KeyAutoplayOnSkip), nil)

	sd.apiEntry = widget.NewEntry()
	sd.apiEntry.SetPlaceHolder(config.DefaultAPIBaseURL)

	sd.assetDirEntry = widget.NewEntry()
	assetRow := container.NewBorder(nil, nil, nil, widget.NewButton(text(KeyBrowse), func() {
		sd.browseInto(sd.assetDirEntry)
	}), sd.assetDirEntry)

	sd.cacheDirEntry = widget.NewEntry()
	cacheRow := container.NewBorder(nil, nil, nil, widget.NewButton(text(KeyBrowse), func() {
		sd.browseInto(sd.cacheDirEntry)
	}), sd.cacheDirEntry)

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder("1-10")

	sd.clearCacheBtn = widget.NewButton(text(KeyClearCache), sd.onClearCache)

	languageOptions := []string{}
	for code := range sd.localization.GetAvailableLanguages() {
		languageOptions = append(languageOptions, code)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle(text(KeyPlaybackSection), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		widget.NewLabel(text(KeyEngine)),
		sd.engineSelect,
		widget.NewLabel(text(KeyVolume)),
		sd.volumeSlider,
		widget.NewLabel(text(KeyLoadTimeout)),
		sd.timeoutEntry,
		sd.autoplayCheck,

		widget.NewLabelWithStyle(text(KeyStorageSection), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		widget.NewLabel(text(KeyAPIBaseURL)),
		sd.apiEntry,
		widget.NewLabel(text(KeyAssetDirectory)),
		assetRow,
		widget.NewLabel(text(KeyCacheDirectory)),
		cacheRow,
		widget.NewLabel(text(KeyMaxParallel)),
		sd.maxParallelEntry,
		sd.clearCacheBtn,

		widget.NewLabelWithStyle(text(KeyInterfaceSection), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		widget.NewLabel(text(KeyLanguage)),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(420, 560))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.engineSelect.SetSelected(string(sd.settings.GetEngine()))
	sd.volumeSlider.SetValue(sd.settings.GetVolume())
	sd.timeoutEntry.SetText(strconv.Itoa(int(sd.settings.GetLoadTimeout().Seconds())))
	sd.autoplayCheck.SetChecked(sd.settings.GetAutoplayOnSkip())
	sd.apiEntry.SetText(sd.settings.GetAPIBaseURL())
	sd.assetDirEntry.SetText(sd.settings.GetAssetDirectory())
	sd.cacheDirEntry.SetText(sd.settings.GetCacheDirectory())
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelFetches()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

func (sd *SettingsDialog) browseInto(entry *widget.Entry) {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		entry.SetText(uri.Path())
	}, sd.window)
}

// onClearCache empties the audio cache
func (sd *SettingsDialog) onClearCache() {
	if sd.clearCache == nil {
		return
	}
	if err := sd.clearCache(); err != nil {
		dialog.ShowError(err, sd.window)
		return
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeyCacheCleared), sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	change := sd.apply()
	if sd.onSaved != nil {
		sd.onSaved(change)
	}

	msg := sd.localization.GetText(KeySettingsSaved)
	if change.RestartRequired {
		msg += "\n" + sd.localization.GetText(KeyRestartRequired)
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), msg, sd.window)
}

// apply writes the form into settings and reports what changed
func (sd *SettingsDialog) apply() SettingsChange {
	var change SettingsChange

	if sd.engineSelect.Selected != "" {
		if kind, err := playback.ParseEngineKind(sd.engineSelect.Selected); err == nil && kind != sd.settings.GetEngine() {
			sd.settings.SetEngine(kind)
			change.RestartRequired = true
		}
	}

	sd.settings.SetVolume(sd.volumeSlider.Value)

	if secs, err := strconv.Atoi(strings.TrimSpace(sd.timeoutEntry.Text)); err == nil {
		sd.settings.SetLoadTimeout(secs)
	}

	sd.settings.SetAutoplayOnSkip(sd.autoplayCheck.Checked)

	if api := strings.TrimSpace(sd.apiEntry.Text); api != sd.settings.GetAPIBaseURL() {
		sd.settings.SetAPIBaseURL(api)
		change.APIBaseURL = true
	}

	if dir := strings.TrimSpace(sd.assetDirEntry.Text); dir != "" && dir != sd.settings.GetAssetDirectory() {
		sd.settings.SetAssetDirectory(dir)
		change.RestartRequired = true
	}

	if dir := strings.TrimSpace(sd.cacheDirEntry.Text); dir != "" && dir != sd.settings.GetCacheDirectory() {
		sd.settings.SetCacheDirectory(dir)
		change.CacheDirectory = true
	}

	if n, err := strconv.Atoi(strings.TrimSpace(sd.maxParallelEntry.Text)); err == nil && n != sd.settings.GetMaxParallelFetches() {
		sd.settings.SetMaxParallelFetches(n)
		change.RestartRequired = true
	}

	if lang := sd.languageSelect.Selected; lang != "" && lang != sd.settings.GetLanguage() {
		sd.settings.SetLanguage(lang)
		change.Language = true
	}

	return change
}
