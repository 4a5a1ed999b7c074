package stream

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matt-g-everett/cakeshow/scene"
)

// recorder logs the order of frame steps and the subject's rotation as
// each step sees it.
type recorder struct {
	calls   *[]string
	sc      *scene.Scene
	subject *scene.Object
	locked  bool
	drawErr error

	tickRotation []float64
	drawRotation []float64
}

func (r *recorder) Tick(now time.Duration) {
	*r.calls = append(*r.calls, "tick")
	if r.subject != nil {
		r.tickRotation = append(r.tickRotation, r.subject.Rotation.Y)
	}
}

func (r *recorder) Draw(sc *scene.Scene, cam *scene.Camera) error {
	*r.calls = append(*r.calls, "draw")
	if r.subject != nil {
		r.drawRotation = append(r.drawRotation, r.subject.Rotation.Y)
	}
	// The frame holds the lock, so TryLock must fail here.
	r.locked = !sc.TryLock()
	if !r.locked {
		sc.Unlock()
	}
	return r.drawErr
}

type fixedClock time.Duration

func (c fixedClock) Now() time.Duration { return time.Duration(c) }

func newTestStreamer(subject *scene.Object, rec *recorder) *Streamer {
	sc := scene.NewScene()
	if subject != nil {
		sc.AddObject(subject)
	}
	rec.sc = sc
	rec.subject = subject
	config := DefaultConfig()
	return NewStreamer(sc, subject, scene.NewCamera(35, scene.Vec3{}), rec, fixedClock(0), rec, config)
}

func TestFrameOrder(t *testing.T) {
	var calls []string
	rec := &recorder{calls: &calls}
	s := newTestStreamer(scene.NewObject("cake"), rec)

	s.Frame(0)
	s.Frame(time.Millisecond)

	want := []string{"tick", "draw", "tick", "draw"}
	if len(calls) != len(want) {
		t.Fatalf("Expected %v, got %v", want, calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("Step %d: expected %s, got %s", i, want[i], calls[i])
		}
	}
	if !rec.locked {
		t.Error("Expected the scene lock to be held during Draw")
	}
}

func TestFrameRotatesVisibleSubject(t *testing.T) {
	var calls []string
	cake := scene.NewObject("cake")
	s := newTestStreamer(cake, &recorder{calls: &calls})

	cake.Visible = false
	s.Frame(0)
	if cake.Rotation.Y != 0 {
		t.Errorf("Expected hidden subject not to rotate, got %v", cake.Rotation.Y)
	}

	cake.Visible = true
	for i := 0; i < 10; i++ {
		s.Frame(0)
	}
	if want := 10 * 0.007; cake.Rotation.Y < want-1e-9 || cake.Rotation.Y > want+1e-9 {
		t.Errorf("Expected rotation %v, got %v", want, cake.Rotation.Y)
	}
}

func TestFrameRotatesBeforeTickAndDraw(t *testing.T) {
	var calls []string
	cake := scene.NewObject("cake")
	rec := &recorder{calls: &calls}
	s := newTestStreamer(cake, rec)
	step := s.config.RotationStep

	for i := 0; i < 3; i++ {
		s.Frame(0)
	}

	if len(rec.tickRotation) != 3 || len(rec.drawRotation) != 3 {
		t.Fatalf("Expected 3 ticks and draws, got %d and %d", len(rec.tickRotation), len(rec.drawRotation))
	}
	for i := 0; i < 3; i++ {
		want := float64(i+1) * step
		if got := rec.tickRotation[i]; got < want-1e-9 || got > want+1e-9 {
			t.Errorf("Frame %d: Tick saw rotation %v, expected the frame's step already applied (%v)", i, got, want)
		}
		if got := rec.drawRotation[i]; got < want-1e-9 || got > want+1e-9 {
			t.Errorf("Frame %d: Draw saw rotation %v, expected %v", i, got, want)
		}
	}

	// A hidden subject stays put, and tick and draw see the same value.
	cake.Visible = false
	s.Frame(0)
	if rec.tickRotation[3] != rec.drawRotation[3] || rec.drawRotation[3] != rec.drawRotation[2] {
		t.Errorf("Expected no rotation for a hidden subject, got tick %v draw %v", rec.tickRotation[3], rec.drawRotation[3])
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Mqtt.URL != "" {
		t.Errorf("Expected no broker by default, got %q", c.Mqtt.URL)
	}
	if c.Renderer != RendererTerminal || !c.Autostart || c.FrameRate != 60 || c.RotationStep != 0.007 {
		t.Errorf("Unexpected defaults %+v", c)
	}
	if c.Mqtt.Topics.Stream != "cakeshow/stream" || c.Mqtt.Topics.Control != "cakeshow/control" {
		t.Errorf("Unexpected topics %+v", c.Mqtt.Topics)
	}
}

func TestFrameWithoutSubject(t *testing.T) {
	var calls []string
	s := newTestStreamer(nil, &recorder{calls: &calls})
	s.Frame(0)
	if len(calls) != 2 {
		t.Errorf("Expected a full frame without a subject, got %v", calls)
	}
}

func TestDrawErrorIsNotFatal(t *testing.T) {
	var calls []string
	rec := &recorder{calls: &calls, drawErr: errors.New("screen gone")}
	s := newTestStreamer(nil, rec)

	s.Frame(0)
	s.Frame(0)
	if len(calls) != 4 {
		t.Errorf("Expected frames to continue after a draw error, got %v", calls)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	var calls []string
	s := newTestStreamer(nil, &recorder{calls: &calls})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected a clean stop, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestInterval(t *testing.T) {
	tests := []struct {
		rate float64
		want time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / 60},
		{-5, time.Second / 60},
	}
	for _, tt := range tests {
		c := Config{FrameRate: tt.rate}
		if got := c.Interval(); got != tt.want {
			t.Errorf("Interval(%v) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}
