// Package ui contains the Fyne user interface of the audio guide.
// It routes between the home, exhibition and player screens, drives the
// player sheet's drag-to-dismiss gesture and wires the play controls to the
// playback controller. All UI strings are localized via Localization.
package ui
