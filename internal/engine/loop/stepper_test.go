package loop

import (
	"testing"
	"time"
)

func TestStepper_Advance(t *testing.T) {
	s := NewStepper(60)
	step := s.Step()

	tests := []struct {
		elapsed   time.Duration
		wantTicks int
	}{
		{step / 2, 0},
		{step / 2, 1},
		{3 * step, 3},
		{0, 0},
		{-time.Second, 0},
	}

	for i, tc := range tests {
		if got := s.Advance(tc.elapsed); got != tc.wantTicks {
			t.Errorf("step %d: Advance(%v) = %d, want %d", i, tc.elapsed, got, tc.wantTicks)
		}
	}

	if s.Ticks() != 4 {
		t.Errorf("expected 4 ticks total, got %d", s.Ticks())
	}
}

func TestStepper_Fraction(t *testing.T) {
	s := NewStepper(50) // 20ms ticks

	s.Advance(25 * time.Millisecond)
	if got := s.Fraction(); got < 0.249 || got > 0.251 {
		t.Errorf("Fraction() = %f, want 0.25", got)
	}

	s.Advance(15 * time.Millisecond)
	if got := s.Fraction(); got != 0 {
		t.Errorf("Fraction() = %f, want 0 after an exact tick boundary", got)
	}
}

func TestStepper_Frame(t *testing.T) {
	s := NewStepper(10)
	clock := time.Unix(0, 0)
	s.now = func() time.Time { return clock }
	s.Start()

	clock = clock.Add(250 * time.Millisecond)
	if got := s.Frame(); got != 2 {
		t.Errorf("Frame() = %d, want 2", got)
	}

	clock = clock.Add(50 * time.Millisecond)
	if got := s.Frame(); got != 1 {
		t.Errorf("Frame() = %d, want 1", got)
	}
	if s.Fraction() != 0 {
		t.Errorf("Fraction() = %f, want 0", s.Fraction())
	}
}

func TestNewStepper_DefaultRate(t *testing.T) {
	if got := NewStepper(0).Step(); got != time.Second/60 {
		t.Errorf("Step() = %v, want %v", got, time.Second/60)
	}
}
