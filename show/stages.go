package show

import (
	"context"
	"log"

	"github.com/matt-g-everett/cakeshow/scene"
	"github.com/matt-g-everett/cakeshow/tween"
	"github.com/matt-g-everett/cakeshow/ui"
	"golang.org/x/sync/errgroup"
)

func (s *Show) typeName(ctx context.Context) error {
	return s.Typist.Type(ctx, s.Lines[0], s.config.Lines.Name, ms(s.config.Timing.NameChar))
}

func (s *Show) typeGreeting(ctx context.Context) error {
	return s.Typist.Type(ctx, s.Lines[1], s.config.Lines.Greeting, ms(s.config.Timing.GreetingChar))
}

// typeMessage types the configured typo, pauses, wipes it and types the
// real message.
func (s *Show) typeMessage(ctx context.Context) error {
	t := s.config.Timing
	line := s.Lines[2]

	if err := s.Typist.Type(ctx, line, s.config.Lines.Typo, ms(t.TypoChar)); err != nil {
		return err
	}
	if err := s.Clock.Sleep(ctx, ms(t.TypoPause)); err != nil {
		return err
	}
	line.SetText("")
	return s.Typist.Type(ctx, line, s.config.Lines.Message, ms(t.MessageChar))
}

// hold is an empty beat; its settle delay is the pause.
func (s *Show) hold(ctx context.Context) error {
	return nil
}

func (s *Show) typeDecor(ctx context.Context) error {
	return s.Typist.Type(ctx, s.Lines[3], s.config.Lines.Decor, ms(s.config.Timing.DecorChar))
}

// transition animates UI element properties the way a CSS transition
// with the default timing function would.
func (s *Show) transition(el *ui.Element, to tween.Values, duration int) *tween.Task {
	return s.Tweens.Submit(el, to, ms(duration), tween.InOutQuad)
}

// showCake fades the text away and pops the cake in. The pop is left
// running into the next stage.
func (s *Show) showCake(ctx context.Context) error {
	t := s.config.Timing

	s.transition(s.TextArea, tween.Values{"opacity": 0}, t.TextFade)
	if err := s.Clock.Sleep(ctx, ms(t.TextFadeWait)); err != nil {
		return err
	}

	s.update(func() {
		s.Cake.Visible = true
		s.Cake.Position.Set3(0, -0.15, 0)
		s.Cake.Scale.Set3(0.6, 0.6, 0.6)
		s.Tweens.Submit(&s.Cake.Scale, tween.Values{"x": 1, "y": 1, "z": 1}, ms(t.CakePop), tween.BackOut)
	})
	return nil
}

// revealScene swaps the background, hangs the photos, shows the caption
// and pulls the camera back.
func (s *Show) revealScene(ctx context.Context) error {
	t := s.config.Timing

	s.setBackground()
	s.spawnPhotos()

	s.Caption.SetHidden(false)
	s.Caption.Set("opacity", 0)
	if err := s.Clock.Sleep(ctx, ms(t.CaptionDelay)); err != nil {
		return err
	}
	s.transition(s.Caption, tween.Values{"opacity": 1}, t.CaptionFade)

	to := toVec(s.config.Camera.Reveal, scene.Vec3{X: 0, Y: 3.2, Z: 10})
	s.update(func() {
		s.Tweens.Submit(&s.Camera.Position, tween.Values{"x": to.X, "y": to.Y, "z": to.Z}, ms(t.CameraPan), tween.CubicOut)
	})
	return s.Clock.Sleep(ctx, ms(t.CameraPan))
}

func (s *Show) setBackground() {
	tex, err := s.Loader.LoadTexture(s.config.Assets.Background)
	if err != nil {
		log.Printf("[!] Background missing: %v", err)
		return
	}
	s.update(func() {
		s.Scene.SetBackground(tex)
	})
}

// spawnPhotos loads every photo concurrently and adds a framed plane for
// each one that loaded. Missing photos are skipped.
func (s *Show) spawnPhotos() {
	photos := s.config.Assets.Photos
	planes := make([]*scene.Object, len(photos))

	var g errgroup.Group
	for i, p := range photos {
		g.Go(func() error {
			tex, err := s.Loader.LoadTexture(p)
			if err != nil {
				log.Printf("[!] Photo %s missing: %v", p, err)
				return nil
			}

			plane := scene.NewObject(p)
			plane.Texture = tex
			plane.Position.Set3(-2+float64(i)*2, 0.1, -1.8+float64(i%2)*0.2)
			plane.Rotation.Y = 0.05 * float64(i-1)
			plane.Add(scene.Part{
				Name:  "photo",
				Shape: scene.ShapePlane,
				Size:  scene.Vec3{X: 0.9, Y: 0.6},
				Color: tex.Average,
			})
			planes[i] = plane
			return nil
		})
	}
	// Loads never fail the group; missing photos are logged above.
	_ = g.Wait()

	s.update(func() {
		for _, p := range planes {
			if p != nil {
				s.Scene.AddObject(p)
			}
		}
	})
}

// zoomCard brings the card up with a slight overshoot in scale and lets
// the cake drift down underneath it.
func (s *Show) zoomCard(ctx context.Context) error {
	t := s.config.Timing

	s.Card.SetHidden(false)
	s.Card.Set("opacity", 0)
	s.Card.Set("scale", 0.7)
	if err := s.Clock.Sleep(ctx, ms(t.CardDelay)); err != nil {
		return err
	}

	s.transition(s.Card, tween.Values{"opacity": 1}, t.CardFade)
	s.transition(s.Card, tween.Values{"scale": 1.12}, t.CardZoom)
	s.update(func() {
		s.Tweens.Submit(&s.Cake.Position, tween.Values{"y": -0.6}, ms(t.CakeSink), tween.Linear)
	})

	return s.Clock.Sleep(ctx, ms(t.CardHold))
}
