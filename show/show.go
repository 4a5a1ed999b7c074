package show

import (
	"context"
	"log"

	"github.com/matt-g-everett/cakeshow/asset"
	"github.com/matt-g-everett/cakeshow/clock"
	"github.com/matt-g-everett/cakeshow/scene"
	"github.com/matt-g-everett/cakeshow/timeline"
	"github.com/matt-g-everett/cakeshow/tween"
	"github.com/matt-g-everett/cakeshow/typing"
	"github.com/matt-g-everett/cakeshow/ui"
)

// Show is the presentation context: every piece of shared state the
// stages and the frame clock touch. It is built once and passed by
// reference.
type Show struct {
	config Config

	Scene  *scene.Scene
	Camera *scene.Camera
	Cake   *scene.Object

	TextArea *ui.Element
	Lines    [4]*ui.Element
	Caption  *ui.Element
	Card     *ui.Element

	Tweens *tween.Scheduler
	Clock  clock.Clock
	Typist *typing.Typist
	Loader asset.Loader
}

// New creates an instance of a Show. The cake is not loaded until Prepare.
func New(config Config, clk clock.Clock, loader asset.Loader) *Show {
	s := new(Show)
	s.config = config
	s.Clock = clk
	s.Loader = loader
	s.Tweens = tween.NewScheduler(clk)
	s.Typist = typing.NewTypist(clk)

	s.Scene = scene.NewScene()
	s.Camera = scene.NewCamera(35, toVec(config.Camera.Start, scene.Vec3{X: 0, Y: 2.2, Z: 7}))
	s.Scene.AddObject(ground())

	s.TextArea = ui.NewElement("text-area", "")
	for i := range s.Lines {
		s.Lines[i] = ui.NewElement(lineIDs[i], "")
	}
	s.Caption = ui.NewHiddenElement("caption", config.Lines.Caption)
	s.Card = ui.NewHiddenElement("card", config.Lines.Card)
	return s
}

var lineIDs = [4]string{"line1", "line2", "line3", "line4"}

// Elements returns the overlay elements in drawing order.
func (s *Show) Elements() []*ui.Element {
	return []*ui.Element{s.TextArea, s.Lines[0], s.Lines[1], s.Lines[2], s.Lines[3], s.Caption, s.Card}
}

// update runs fn while holding the world lock.
func (s *Show) update(fn func()) {
	s.Scene.Lock()
	defer s.Scene.Unlock()
	fn()
}

// Prepare loads the cake and adds it to the scene, hidden. A cake that
// cannot be loaded is replaced by the built-in fallback, so Prepare always
// leaves a non-nil Cake behind.
func (s *Show) Prepare(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cake, err := s.Loader.LoadObject(s.config.Assets.Cake)
	if err != nil {
		log.Printf("[!] %s not found or failed to load, using fallback: %v", s.config.Assets.Cake, err)
		cake = BuildCakeFallback()
	} else {
		cake.Scale.Set3(1.2, 1.2, 1.2)
		cake.Position.Y = 0.1
	}
	cake.Visible = false

	s.update(func() {
		s.Cake = cake
		s.Scene.AddObject(cake)
	})
	return nil
}

// Timeline builds the fire-once sequence of stages.
func (s *Show) Timeline() *timeline.Runner {
	t := s.config.Timing
	stages := []struct {
		name string
		run  timeline.Stage
	}{
		{"name", s.typeName},
		{"greeting", s.typeGreeting},
		{"message", s.typeMessage},
		{"hold", s.hold},
		{"decor", s.typeDecor},
		{"cake", s.showCake},
		{"reveal", s.revealScene},
		{"card", s.zoomCard},
	}

	entries := make([]timeline.Entry, len(stages))
	for i, st := range stages {
		entries[i] = timeline.Entry{Name: st.name, Run: st.run, Delay: t.settle(i)}
	}
	return timeline.NewRunner(s.Clock, entries...)
}
