package dismiss

import (
	"math"
	"testing"

	"fyne.io/fyne/v2/test"
)

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestNewChannel_StartsSettled(t *testing.T) {
	test.NewApp()
	c := NewChannel()

	if c.Progress() != Settled {
		t.Errorf("Expected new channel at %v, got %v", Settled, c.Progress())
	}
}

func TestChannel_SetClamps(t *testing.T) {
	test.NewApp()
	c := NewChannel()

	tests := []struct {
		in       float32
		expected float32
	}{
		{0, 0},
		{0.25, 0.25},
		{-3, 0},
		{1.7, 1},
	}

	for _, tc := range tests {
		c.Set(tc.in)
		if got := c.Progress(); !approxEqual(got, tc.expected) {
			t.Errorf("Set(%v) then Progress() = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestNilChannel_ReadsSettled(t *testing.T) {
	var c *Channel

	if c.Progress() != Settled {
		t.Errorf("Nil channel Progress() = %v, expected %v", c.Progress(), Settled)
	}
	if c.Scale() != UnderlayMaxScale {
		t.Errorf("Nil channel Scale() = %v, expected %v", c.Scale(), UnderlayMaxScale)
	}

	// publishing on a nil channel is a no-op
	c.Set(0)

	var received []float32
	cancel := c.Subscribe(func(p float32) { received = append(received, p) })
	cancel()
	if len(received) != 1 || received[0] != Settled {
		t.Errorf("Nil channel subscription should deliver Settled once, got %v", received)
	}
	if c.Binding() != nil {
		t.Error("Nil channel should have no binding")
	}
}

func TestUnderlayScale(t *testing.T) {
	tests := []struct {
		progress float32
		expected float32
	}{
		{0, 0.9},
		{0.5, 0.95},
		{1, 1.0},
		{-1, 0.9},
		{2, 1.0},
	}

	for _, tc := range tests {
		if got := UnderlayScale(tc.progress); !approxEqual(got, tc.expected) {
			t.Errorf("UnderlayScale(%v) = %v, expected %v", tc.progress, got, tc.expected)
		}
	}
}
