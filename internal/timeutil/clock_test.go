package timeutil

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	c := RealClock{}
	before := time.Now()
	got := c.Now()
	if got.Before(before) {
		t.Errorf("Now() = %v, earlier than %v", got, before)
	}
	if c.Since(before) < 0 {
		t.Error("Since returned a negative duration")
	}
}

func TestMockClock_SetAndAdvance(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMockClock(start)

	if !c.Now().Equal(start) {
		t.Fatalf("Now() = %v, want %v", c.Now(), start)
	}

	c.Advance(90 * time.Second)
	if got := c.Since(start); got != 90*time.Second {
		t.Errorf("Since() = %v, want 90s", got)
	}

	later := start.Add(time.Hour)
	c.Set(later)
	if !c.Now().Equal(later) {
		t.Errorf("Now() = %v, want %v", c.Now(), later)
	}
}

func TestMockTicker_FiresOnAdvance(t *testing.T) {
	c := NewMockClock(time.Unix(0, 0))
	tk := c.NewTicker(10 * time.Second)

	c.Advance(5 * time.Second)
	select {
	case <-tk.C():
		t.Fatal("ticker fired before its period elapsed")
	default:
	}

	c.Advance(5 * time.Second)
	select {
	case got := <-tk.C():
		if !got.Equal(time.Unix(10, 0)) {
			t.Errorf("tick at %v, want %v", got, time.Unix(10, 0))
		}
	default:
		t.Fatal("ticker did not fire")
	}
}

func TestMockTicker_StopSuppressesTicks(t *testing.T) {
	c := NewMockClock(time.Unix(0, 0))
	tk := c.NewTicker(time.Second)
	tk.Stop()

	c.Advance(3 * time.Second)
	select {
	case <-tk.C():
		t.Fatal("stopped ticker fired")
	default:
	}
}
