package clock

import (
	"context"
	"testing"
	"time"
)

func TestManualSleepAdvances(t *testing.T) {
	c := NewManual(0)
	ctx := context.Background()

	if err := c.Sleep(ctx, 500*time.Millisecond); err != nil {
		t.Fatalf("Sleep failed: %v", err)
	}
	c.Sleep(ctx, -time.Second)
	c.Advance(250 * time.Millisecond)

	if got := c.Now(); got != 750*time.Millisecond {
		t.Errorf("Expected 750ms, got %v", got)
	}

	c.Set(10 * time.Millisecond)
	if got := c.Now(); got != 10*time.Millisecond {
		t.Errorf("Expected 10ms after Set, got %v", got)
	}
}

func TestManualSleepCancelled(t *testing.T) {
	c := NewManual(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Sleep(ctx, time.Second); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if c.Now() != 0 {
		t.Errorf("Cancelled sleep must not advance time, got %v", c.Now())
	}
}

func TestRealSleep(t *testing.T) {
	c := NewReal()
	start := c.Now()

	if err := c.Sleep(context.Background(), 20*time.Millisecond); err != nil {
		t.Fatalf("Sleep failed: %v", err)
	}
	if elapsed := c.Now() - start; elapsed < 20*time.Millisecond {
		t.Errorf("Sleep returned early after %v", elapsed)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := c.Sleep(ctx, time.Minute); err != context.DeadlineExceeded {
		t.Errorf("Expected DeadlineExceeded, got %v", err)
	}
}
