package stream

import (
	"context"
	"log"
	"time"

	"github.com/matt-g-everett/cakeshow/scene"
)

// A Renderer draws the world once per frame. It is called with the scene
// lock held.
type Renderer interface {
	Draw(s *scene.Scene, c *scene.Camera) error
}

// Discard is a Renderer that draws nothing.
type Discard struct{}

// Draw does nothing.
func (Discard) Draw(*scene.Scene, *scene.Camera) error {
	return nil
}

// Ticker advances animations to a point in time.
type Ticker interface {
	Tick(now time.Duration)
}

// Clock reports runtime.
type Clock interface {
	Now() time.Duration
}

// Streamer is the frame clock. Every frame it spins the subject, advances
// the tweens and hands the world to the renderer.
type Streamer struct {
	config   Config
	scene    *scene.Scene
	subject  *scene.Object
	camera   *scene.Camera
	tweens   Ticker
	clock    Clock
	renderer Renderer
}

// NewStreamer creates an instance of a Streamer. subject may be nil.
func NewStreamer(sc *scene.Scene, subject *scene.Object, camera *scene.Camera,
	tweens Ticker, clock Clock, renderer Renderer, config Config) *Streamer {

	s := new(Streamer)
	s.config = config
	s.scene = sc
	s.subject = subject
	s.camera = camera
	s.tweens = tweens
	s.clock = clock
	s.renderer = renderer
	if s.renderer == nil {
		s.renderer = Discard{}
	}
	return s
}

// Frame produces one frame at now.
func (s *Streamer) Frame(now time.Duration) {
	s.scene.Lock()
	defer s.scene.Unlock()

	if s.subject != nil && s.subject.Visible {
		s.subject.Rotation.Y += s.config.RotationStep
	}
	s.tweens.Tick(now)

	if err := s.renderer.Draw(s.scene, s.camera); err != nil {
		log.Printf("[!] Draw failed: %v", err)
	}
}

// Run produces frames at the configured rate until ctx ends.
func (s *Streamer) Run(ctx context.Context) error {
	frameTimer := time.NewTicker(s.config.Interval())
	defer frameTimer.Stop()

	log.Printf("[*] Streaming frames every %v", s.config.Interval())
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-frameTimer.C:
			s.Frame(s.clock.Now())
		}
	}
}
