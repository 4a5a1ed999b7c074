package show

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/cakeshow/asset"
	"github.com/matt-g-everett/cakeshow/clock"
	"github.com/matt-g-everett/cakeshow/scene"
	"github.com/matt-g-everett/cakeshow/timeline"
)

// fakeLoader serves whatever it was given and reports everything else as
// missing.
type fakeLoader struct {
	objects  map[string]*scene.Object
	textures map[string]*scene.Texture
}

func (l *fakeLoader) LoadObject(url string) (*scene.Object, error) {
	if o, ok := l.objects[url]; ok {
		return o, nil
	}
	return nil, fmt.Errorf("%s: %w", url, asset.ErrNotFound)
}

func (l *fakeLoader) LoadTexture(url string) (*scene.Texture, error) {
	if t, ok := l.textures[url]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%s: %w", url, asset.ErrNotFound)
}

func runShow(t *testing.T, loader asset.Loader) (*Show, *clock.Manual, *timeline.Runner) {
	t.Helper()
	clk := clock.NewManual(0)
	s := New(DefaultConfig(), clk, loader)

	if err := s.Prepare(context.Background()); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	r := s.Timeline()
	return s, clk, r
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestShowWithMissingAssets(t *testing.T) {
	s, clk, r := runShow(t, &fakeLoader{})

	if s.Cake == nil || s.Cake.Visible {
		t.Fatalf("Expected a hidden fallback cake after Prepare, got %+v", s.Cake)
	}

	var cakeSeen bool
	r.OnTransition(func(st timeline.State, now time.Duration) {
		if st.Phase == timeline.Settling && st.Name == "cake" {
			cakeSeen = s.Cake != nil && s.Cake.Visible
		}
	})

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !cakeSeen {
		t.Error("Expected the fallback cake to be visible once the cake stage completed")
	}
	if len(s.Cake.Parts) != 16 {
		t.Errorf("Expected 16 fallback parts, got %d", len(s.Cake.Parts))
	}

	// Flush every fire-and-forget tween.
	s.Tweens.Tick(clk.Now() + 10*time.Second)
	if s.Tweens.Len() != 0 {
		t.Errorf("Expected no tweens in flight, got %d", s.Tweens.Len())
	}

	if bg := s.Scene.Background(); bg != nil {
		t.Errorf("Expected no background, got %+v", bg)
	}
	if n := len(s.Scene.Objects()); n != 2 {
		t.Errorf("Expected ground and cake only, got %d objects", n)
	}
	if s.Cake.Scale != (scene.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Expected cake at full scale, got %+v", s.Cake.Scale)
	}
	if !near(s.Cake.Position.Y, -0.6) {
		t.Errorf("Expected cake lowered to -0.6, got %v", s.Cake.Position.Y)
	}
	if s.Camera.Position != (scene.Vec3{X: 0, Y: 3.2, Z: 10}) {
		t.Errorf("Expected camera at reveal position, got %+v", s.Camera.Position)
	}
}

func TestShowFinalState(t *testing.T) {
	tex := &scene.Texture{Source: "x", Average: colorful.Color{R: 1}}
	model := scene.NewObject("model")
	model.Add(scene.Part{Name: "blob", Shape: scene.ShapeSphere})

	loader := &fakeLoader{
		objects: map[string]*scene.Object{"cake.yaml": model},
		textures: map[string]*scene.Texture{
			"city.jpg":   tex,
			"photo1.jpg": tex,
			"photo3.jpg": tex,
		},
	}
	s, clk, r := runShow(t, loader)

	if s.Cake != model {
		t.Fatal("Expected the loaded model to be used")
	}
	if s.Cake.Scale.X != 1.2 || s.Cake.Position.Y != 0.1 {
		t.Errorf("Expected loaded-model transform, got scale %+v position %+v", s.Cake.Scale, s.Cake.Position)
	}

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	s.Tweens.Tick(clk.Now() + 10*time.Second)

	cfg := DefaultConfig()
	want := []string{cfg.Lines.Name, cfg.Lines.Greeting, cfg.Lines.Message, cfg.Lines.Decor}
	for i, w := range want {
		if got := s.Lines[i].Text(); got != w {
			t.Errorf("line%d: expected %q, got %q", i+1, w, got)
		}
	}

	if s.TextArea.Opacity() != 0 {
		t.Errorf("Expected text area faded out, got %v", s.TextArea.Opacity())
	}
	if c := s.Caption.Snapshot(); c.Hidden || c.Opacity != 1 {
		t.Errorf("Expected caption shown, got %+v", c)
	}
	if c := s.Card.Snapshot(); c.Hidden || c.Opacity != 1 || c.Scale != 1.12 {
		t.Errorf("Expected card shown at 1.12, got %+v", c)
	}

	if s.Scene.Background() != tex {
		t.Error("Expected the city background")
	}

	// ground, cake and the two photos that exist
	objects := s.Scene.Objects()
	if len(objects) != 4 {
		t.Fatalf("Expected 4 objects, got %d", len(objects))
	}
	photos := map[string]scene.Vec3{}
	for _, o := range objects[2:] {
		photos[o.Name] = o.Position
	}
	if p := photos["photo1.jpg"]; p != (scene.Vec3{X: -2, Y: 0.1, Z: -1.8}) {
		t.Errorf("Unexpected photo1 position %+v", p)
	}
	if p := photos["photo3.jpg"]; !near(p.X, 2) || !near(p.Z, -1.8) {
		t.Errorf("Unexpected photo3 position %+v", p)
	}
}

func TestShowStageSpacing(t *testing.T) {
	_, _, r := runShow(t, &fakeLoader{})
	cfg := DefaultConfig()

	starts := map[string]time.Duration{}
	ends := map[string]time.Duration{}
	var order []string
	r.OnTransition(func(st timeline.State, now time.Duration) {
		switch st.Phase {
		case timeline.Running:
			starts[st.Name] = now
			order = append(order, st.Name)
		case timeline.Settling:
			ends[st.Name] = now
		}
	})

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	wantOrder := []string{"name", "greeting", "message", "hold", "decor", "cake", "reveal", "card"}
	if strings.Join(order, ",") != strings.Join(wantOrder, ",") {
		t.Fatalf("Unexpected stage order %v", order)
	}

	for i := 1; i < len(order); i++ {
		prev, cur := order[i-1], order[i]
		if gap := starts[cur] - ends[prev]; gap != ms(cfg.Timing.Settle[i-1]) {
			t.Errorf("%s started %v after %s ended, expected %v", cur, gap, prev, ms(cfg.Timing.Settle[i-1]))
		}
	}

	// "tina" at 80ms per character.
	if d := ends["name"] - starts["name"]; d != 320*time.Millisecond {
		t.Errorf("Expected name stage to take 320ms, got %v", d)
	}
	if d := ends["card"] - starts["card"]; d != ms(cfg.Timing.CardDelay+cfg.Timing.CardHold) {
		t.Errorf("Unexpected card stage length %v", d)
	}
}

func TestTypoCorrection(t *testing.T) {
	s, _, _ := runShow(t, &fakeLoader{})
	cfg := DefaultConfig()

	var seen []string
	s.Typist.Keystroke = func(rune) {
		seen = append(seen, s.Lines[2].Text())
	}

	if err := s.typeMessage(context.Background()); err != nil {
		t.Fatalf("typeMessage failed: %v", err)
	}

	typoAt := -1
	for i, v := range seen {
		if v == cfg.Lines.Typo {
			typoAt = i
			break
		}
	}
	if typoAt < 0 {
		t.Fatalf("Typo %q never displayed", cfg.Lines.Typo)
	}
	if seen[typoAt+1] != "s" {
		t.Errorf("Expected retyping from scratch after the typo, got %q", seen[typoAt+1])
	}
	if last := seen[len(seen)-1]; last != cfg.Lines.Message {
		t.Errorf("Expected final %q, got %q", cfg.Lines.Message, last)
	}
	if len(seen) != len(cfg.Lines.Typo)+len(cfg.Lines.Message) {
		t.Errorf("Unexpected keystroke count %d", len(seen))
	}
}

func TestPopOvershoots(t *testing.T) {
	s, clk, _ := runShow(t, &fakeLoader{})
	cfg := DefaultConfig()

	if err := s.showCake(context.Background()); err != nil {
		t.Fatalf("showCake failed: %v", err)
	}
	start := clk.Now()

	peak := 0.0
	for at := time.Duration(0); at <= ms(cfg.Timing.CakePop); at += 10 * time.Millisecond {
		s.Tweens.Tick(start + at)
		if s.Cake.Scale.X > peak {
			peak = s.Cake.Scale.X
		}
	}
	if peak <= 1 {
		t.Errorf("Expected the pop to overshoot full scale, peak %v", peak)
	}
	if s.Cake.Scale.X != 1 {
		t.Errorf("Expected the pop to settle at 1, got %v", s.Cake.Scale.X)
	}
}
