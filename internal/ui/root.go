package ui

import (
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/odii/audio-guide/internal/catalog"
	"github.com/odii/audio-guide/internal/config"
	"github.com/odii/audio-guide/internal/dismiss"
	"github.com/odii/audio-guide/internal/download"
	"github.com/odii/audio-guide/internal/model"
	"github.com/odii/audio-guide/internal/playback"
)

// AssetLocator finds bundled files such as artwork images
type AssetLocator interface {
	AssetFile(rel string) (string, error)
}

// TranscodeNotifier reports conversions of audio no engine decodes
type TranscodeNotifier interface {
	SetUpdateCallback(func(*model.TranscodeTask))
}

// Services are the app-wide dependencies the screens use. Assets, Listings,
// Fetcher and Transcoder may be nil.
type Services struct {
	Catalog    *catalog.Store
	Engine     playback.Engine
	Resolver   playback.Resolver
	Assets     AssetLocator
	Listings   ListingSource
	Fetcher    download.Fetcher
	Transcoder TranscodeNotifier
}

// screen is one page of the navigator
type screen interface {
	Content() fyne.CanvasObject
	Close()
}

type page struct {
	route  Route
	screen screen
}

// screenEnv is what every screen gets from the root
type screenEnv struct {
	services Services
	settings *config.Settings
	loc      *Localization
	mobile   *MobileUI
	dismiss  *dismiss.Channel
	push     func(path string)
	back     func()
	replace  func(path string)
}

// RootUI represents the main UI structure: a stack of screens under a
// header bar
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	services     Services
	mobile       *MobileUI
	dismiss      *dismiss.Channel
	env          *screenEnv

	stack      []*page
	body       *fyne.Container
	backBtn    *widget.Button
	titleLabel *widget.Label

	// UI update debouncing
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
	notificationTimer     *time.Timer
}

// NewRootUI creates the main UI and shows the home screen
func NewRootUI(window fyne.Window, settings *config.Settings, services Services) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		services:     services,
		mobile:       NewMobileUI(),
		dismiss:      dismiss.NewChannel(),
	}
	ui.env = &screenEnv{
		services: services,
		settings: settings,
		loc:      localization,
		mobile:   ui.mobile,
		dismiss:  ui.dismiss,
		push: func(path string) {
			if err := ui.Push(path); err != nil {
				log.Printf("navigation: %v", err)
			}
		},
		back:    func() { ui.Back() },
		replace: ui.replaceTop,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	if services.Fetcher != nil {
		services.Fetcher.SetUpdateCallback(ui.onTaskUpdate)
	}
	if services.Transcoder != nil {
		services.Transcoder.SetUpdateCallback(ui.onTranscodeUpdate)
	}

	ui.setupUI()
	ui.pushPage(Route{Kind: RouteHome})
	ui.render()
	return ui
}

// setupUI creates and arranges the header, notification panel and body
func (ui *RootUI) setupUI() {
	if !ui.mobile.IsMobileDevice() {
		ui.createMenu()
	}

	ui.backBtn = widget.NewButton(IconBack, func() { ui.Back() })
	ui.backBtn.Importance = widget.LowImportance
	ui.backBtn.Hide()

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.titleLabel = widget.NewLabel("")
	ui.titleLabel.Truncation = fyne.TextTruncateEllipsis
	header := container.NewBorder(nil, nil, ui.backBtn, settingsBtn, ui.titleLabel)

	// Notification panel under the header (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	ui.body = container.NewStack()

	content := container.NewBorder(
		container.NewVBox(header, ui.notificationContainer), // top
		nil, // bottom
		nil, // left
		nil, // right
		ui.body,
	)
	ui.window.SetContent(content)
}

// Current returns the route on top of the stack
func (ui *RootUI) Current() Route {
	return ui.stack[len(ui.stack)-1].route
}

// Depth returns the number of stacked screens
func (ui *RootUI) Depth() int {
	return len(ui.stack)
}

// Dismiss returns the channel shared by the player sheet and the screen
// underneath it
func (ui *RootUI) Dismiss() *dismiss.Channel {
	return ui.dismiss
}

// Push navigates to path. A player route is always stacked over its
// exhibition, which is pushed first when it is not already on top. An open
// player is replaced rather than stacked.
func (ui *RootUI) Push(path string) error {
	route, err := ParseRoute(path)
	if err != nil {
		return err
	}

	if route.Kind == RoutePlayer {
		if ui.Current().Kind == RoutePlayer {
			ui.popPage()
		}
		top := ui.Current()
		if top.Kind != RouteExhibition || top.ExhibitionID != route.ExhibitionID {
			ui.pushPage(Route{Kind: RouteExhibition, ExhibitionID: route.ExhibitionID})
		}
	}

	ui.pushPage(route)
	ui.render()
	return nil
}

// Back closes the top screen. It returns false on the home screen.
func (ui *RootUI) Back() bool {
	if len(ui.stack) <= 1 {
		return false
	}
	ui.popPage()
	ui.render()
	return true
}

func (ui *RootUI) pushPage(route Route) {
	log.Printf("navigation: push %s", route.Path())
	ui.stack = append(ui.stack, &page{route: route, screen: ui.buildScreen(route)})
}

func (ui *RootUI) popPage() {
	top := ui.stack[len(ui.stack)-1]
	ui.stack = ui.stack[:len(ui.stack)-1]
	log.Printf("navigation: pop %s", top.route.Path())
	top.screen.Close()
}

// replaceTop records a new path for the top screen without rebuilding it
func (ui *RootUI) replaceTop(path string) {
	route, err := ParseRoute(path)
	if err != nil {
		log.Printf("navigation: %v", err)
		return
	}
	ui.stack[len(ui.stack)-1].route = route
	ui.updateHeader()
}

func (ui *RootUI) buildScreen(route Route) screen {
	switch route.Kind {
	case RouteExhibition:
		return newExhibitionScreen(ui.env, route.ExhibitionID)
	case RoutePlayer:
		return newPlayerScreen(ui.env, route.ExhibitionID, route.ArtworkID)
	default:
		return newHomeScreen(ui.env)
	}
}

// render shows the top screen, with the screen below it underneath when the
// top is a player sheet
func (ui *RootUI) render() {
	n := len(ui.stack)
	top := ui.stack[n-1]

	objects := []fyne.CanvasObject{top.screen.Content()}
	if top.route.Kind == RoutePlayer && n > 1 {
		objects = []fyne.CanvasObject{ui.stack[n-2].screen.Content(), top.screen.Content()}
	} else {
		// nothing is stacked over this screen
		ui.dismiss.Set(dismiss.Settled)
	}
	ui.body.Objects = objects
	ui.body.Refresh()
	ui.updateHeader()
}

func (ui *RootUI) updateHeader() {
	if len(ui.stack) > 1 {
		ui.backBtn.Show()
	} else {
		ui.backBtn.Hide()
	}

	title := ""
	route := ui.Current()
	if route.Kind != RouteHome {
		if e := ui.services.Catalog.ExhibitionByID(route.ExhibitionID); e != nil {
			title = e.Title
		}
	}
	ui.titleLabel.SetText(title)
}

// rebuildPages recreates every screen except open players, which would
// otherwise lose their track
func (ui *RootUI) rebuildPages() {
	for _, p := range ui.stack {
		if p.route.Kind == RoutePlayer {
			continue
		}
		p.screen.Close()
		p.screen = ui.buildScreen(p.route)
	}
	ui.render()
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyMenu), settingsItem),
		languageMenu,
	)
	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	if !ui.mobile.IsMobileDevice() {
		ui.createMenu()
	}
	ui.rebuildPages()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	sd := NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.applySettings)
	if ui.services.Fetcher != nil {
		sd.SetClearCache(ui.services.Fetcher.Purge)
	}
	sd.Show()
}

// applySettings reacts to saved settings that take effect immediately
func (ui *RootUI) applySettings(change SettingsChange) {
	if change.CacheDirectory && ui.services.Fetcher != nil {
		ui.services.Fetcher.SetCacheDirectory(ui.settings.GetCacheDirectory())
	}
	rebuild := false
	if change.APIBaseURL {
		if c, ok := ui.services.Listings.(interface{ SetBaseURL(string) }); ok {
			c.SetBaseURL(ui.settings.GetAPIBaseURL())
			rebuild = true
		}
	}
	if change.Language {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		return
	}
	if rebuild {
		ui.rebuildPages()
	}
}

// showNotification displays a message in the notification panel under the header.
// When spinning is true, a spinner is shown to indicate background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	fyne.Do(func() {
		ui.stopNotificationTimer()
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	fyne.Do(func() {
		ui.stopNotificationTimer()
		ui.notificationSpinner.Hide()
		ui.notificationContainer.Hide()
	})
}

// hideNotificationAfter hides the panel after d unless another message replaces it
func (ui *RootUI) hideNotificationAfter(d time.Duration) {
	fyne.Do(func() {
		ui.stopNotificationTimer()
		ui.notificationTimer = time.AfterFunc(d, ui.hideNotification)
	})
}

func (ui *RootUI) stopNotificationTimer() {
	if ui.notificationTimer != nil {
		ui.notificationTimer.Stop()
		ui.notificationTimer = nil
	}
}

// debouncedUIUpdate reports whether enough time passed since the last
// progress refresh
func (ui *RootUI) debouncedUIUpdate() bool {
	ui.uiUpdateMutex.Lock()
	defer ui.uiUpdateMutex.Unlock()

	now := time.Now()
	if now.Sub(ui.lastUIUpdate) < UIUpdateDebounce {
		return false
	}
	ui.lastUIUpdate = now
	return true
}

// onTaskUpdate handles task updates from the audio cache
func (ui *RootUI) onTaskUpdate(task *model.FetchTask) {
	switch task.Status {
	case model.TaskStatusPending, model.TaskStatusDownloading:
		if !ui.debouncedUIUpdate() {
			return
		}
		ui.showNotification(ui.localization.Format(KeyFetchingAudio, int(task.Progress*100)), true)
	case model.TaskStatusCompleted:
		log.Printf("Audio cached: url=%s path=%s size=%s", task.URL, task.OutputPath, task.SizeString())
		ui.hideNotification()
	case model.TaskStatusError:
		log.Printf("Audio fetch failed: url=%s attempts=%d error=%s", task.URL, task.Attempts, task.LastError)
		ui.showNotification(fmt.Sprintf("%s %s", IconError, ui.localization.GetText(KeyFetchFailed)), false)
		ui.hideNotificationAfter(ToastAutoHide)
	}
}

// onTranscodeUpdate handles progress of audio conversions
func (ui *RootUI) onTranscodeUpdate(task *model.TranscodeTask) {
	switch task.Status {
	case model.TaskStatusPending, model.TaskStatusConverting:
		if !ui.debouncedUIUpdate() {
			return
		}
		ui.showNotification(ui.localization.Format(KeyConvertingAudio, task.Percent), true)
	case model.TaskStatusCompleted:
		log.Printf("Audio converted: input=%s output=%s", task.InputPath, task.OutputPath)
		ui.hideNotification()
	case model.TaskStatusError:
		log.Printf("Audio conversion failed: input=%s error=%s", task.InputPath, task.LastError)
		ui.showNotification(fmt.Sprintf("%s %s", IconError, ui.localization.GetText(KeyConvertFailed)), false)
		ui.hideNotificationAfter(ToastAutoHide)
	}
}
