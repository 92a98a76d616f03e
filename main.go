package main

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/odii/audio-guide/internal/api"
	"github.com/odii/audio-guide/internal/catalog"
	"github.com/odii/audio-guide/internal/config"
	"github.com/odii/audio-guide/internal/download"
	"github.com/odii/audio-guide/internal/platform"
	"github.com/odii/audio-guide/internal/playback"
	"github.com/odii/audio-guide/internal/transcode"
	"github.com/odii/audio-guide/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

// apiBaseURL is the default listings backend, set via -ldflags "-X main.apiBaseURL=https://..."
var apiBaseURL = ""

const (
	AppID   = "app.odii"
	AppName = "ODI"

	WindowWidth  = 375
	WindowHeight = 812

	TranscodedDir = "transcoded"
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewGuideTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	settings.SetAPIBaseURLDefault(apiBaseURL)

	cacheDir := settings.GetCacheDirectory()
	if err := platform.CreateDirectoryIfNotExists(cacheDir); err != nil {
		fmt.Printf("failed to ensure cache dir: %v\n", err)
	}

	engine, err := playback.NewEngine(settings.GetEngine())
	if err != nil {
		fmt.Printf("falling back to %s engine: %v\n", config.DefaultEngine, err)
		engine, _ = playback.NewEngine(config.DefaultEngine)
	}

	fetcher := download.NewService(cacheDir, settings.GetMaxParallelFetches())
	resolver := playback.NewResolver(settings.GetAssetDirectory(), fetcher)

	transcoder := transcode.NewService(filepath.Join(cacheDir, TranscodedDir))
	if transcoder.Available() {
		resolver.SetTranscoder(transcoder)
	} else {
		fmt.Println("ffmpeg not found, only mp3 and wav audio will play")
	}

	ui.NewRootUI(myWindow, settings, ui.Services{
		Catalog:    catalog.Default(),
		Engine:     engine,
		Resolver:   resolver,
		Assets:     resolver,
		Listings:   api.NewClient(settings.GetAPIBaseURL(), nil),
		Fetcher:    fetcher,
		Transcoder: transcoder,
	})

	myWindow.ShowAndRun()
}
