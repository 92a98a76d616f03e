package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"github.com/odii/audio-guide/internal/dismiss"
)

func TestScaledBox_InitialScale(t *testing.T) {
	test.NewApp()

	settled := NewScaledBox(sizedRect(10, 10), dismiss.NewChannel())
	defer settled.Close()
	if settled.Scale() != 1 {
		t.Errorf("Expected full size with nothing stacked, got %v", settled.Scale())
	}

	ch := dismiss.NewChannel()
	ch.Set(0)
	covered := NewScaledBox(sizedRect(10, 10), ch)
	defer covered.Close()
	if covered.Scale() != dismiss.UnderlayMinScale {
		t.Errorf("Expected %v under an open sheet, got %v", dismiss.UnderlayMinScale, covered.Scale())
	}

	orphan := NewScaledBox(sizedRect(10, 10), nil)
	defer orphan.Close()
	if orphan.Scale() != 1 {
		t.Errorf("Expected nil channel to keep full size, got %v", orphan.Scale())
	}
}

func TestScaledBox_LayoutShrinksAroundCentre(t *testing.T) {
	test.NewApp()

	content := sizedRect(10, 10)
	box := NewScaledBox(content, nil)
	defer box.Close()

	box.Resize(fyne.NewSize(200, 100))
	box.setScale(0.9)

	if content.Size() != fyne.NewSize(180, 90) {
		t.Errorf("Expected 180x90, got %v", content.Size())
	}
	if content.Position() != fyne.NewPos(10, 5) {
		t.Errorf("Expected content centred at (10,5), got %v", content.Position())
	}
}
