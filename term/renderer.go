package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/cakeshow/scene"
	"github.com/matt-g-everett/cakeshow/ui"
	"github.com/matt-g-everett/cakeshow/util"
)

// Layout names the overlay elements the renderer knows how to place.
type Layout struct {
	Container *ui.Element
	Lines     []*ui.Element
	Caption   *ui.Element
	Card      *ui.Element
}

var (
	black = colorful.Color{}
	ink   = colorful.Color{R: 0.95, G: 0.95, B: 0.95}
	paper = colorful.Color{R: 1, G: 0.97, B: 0.9}
)

const (
	textLeft   = 2
	textTop    = 1
	trailSpeed = 0.5
)

// Renderer draws the scene and the overlay on a terminal screen.
type Renderer struct {
	screen tcell.Screen
	layout Layout

	// Gradient colours the caption.
	Gradient GradientTable
	offset   float64
}

// NewRenderer creates an instance of a Renderer. The screen must already
// be initialised.
func NewRenderer(screen tcell.Screen, layout Layout) *Renderer {
	r := new(Renderer)
	r.screen = screen
	r.layout = layout
	r.Gradient = Rainbow
	return r
}

func toColor(c colorful.Color) tcell.Color {
	cr, cg, cb := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(cr), int32(cg), int32(cb))
}

// fade blends fg into bg by opacity.
func fade(fg, bg colorful.Color, opacity float64) colorful.Color {
	return bg.BlendRgb(fg, util.Clamp01(opacity))
}

// Draw paints one frame. Callers hold the scene lock.
func (r *Renderer) Draw(sc *scene.Scene, cam *scene.Camera) error {
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("screen has no area (%dx%d)", w, h)
	}

	bg := black
	if t := sc.Background(); t != nil {
		bg = t.Average.BlendRgb(black, 0.7)
	}
	base := tcell.StyleDefault.Background(toColor(bg))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, base)
		}
	}

	for _, o := range sc.Objects() {
		if o.Visible {
			r.drawObject(o, cam, w, h, base)
		}
	}

	r.drawLines(bg, base)
	r.drawCaption(w, h, bg, base)
	r.drawCard(w, h, bg, base)
	r.drawStatus(sc, cam, w, h, base)

	r.offset += trailSpeed
	r.screen.Show()
	return nil
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for _, c := range s {
		r.screen.SetContent(x, y, c, nil, style)
		x++
	}
}

func (r *Renderer) drawLines(bg colorful.Color, base tcell.Style) {
	container := 1.0
	if r.layout.Container != nil {
		snap := r.layout.Container.Snapshot()
		if snap.Hidden {
			return
		}
		container = snap.Opacity
	}

	for i, el := range r.layout.Lines {
		snap := el.Snapshot()
		opacity := snap.Opacity * container
		if snap.Hidden || opacity <= 0.01 {
			continue
		}
		style := base.Foreground(toColor(fade(ink, bg, opacity)))
		r.text(textLeft, textTop+i, snap.Text, style)
	}
}

func (r *Renderer) drawCaption(w, h int, bg colorful.Color, base tcell.Style) {
	if r.layout.Caption == nil {
		return
	}
	snap := r.layout.Caption.Snapshot()
	if !snap.Visible() {
		return
	}

	runes := []rune(snap.Text)
	x := (w - len(runes)) / 2
	y := h - 4
	for i, c := range runes {
		fg := r.Gradient.Trail(i, len(runes), r.offset, 0.6, 0.8)
		r.screen.SetContent(x+i, y, c, nil, base.Foreground(toColor(fade(fg, bg, snap.Opacity))).Bold(true))
	}
}

func (r *Renderer) drawCard(w, h int, bg colorful.Color, base tcell.Style) {
	if r.layout.Card == nil {
		return
	}
	snap := r.layout.Card.Snapshot()
	if !snap.Visible() {
		return
	}

	runes := []rune(snap.Text)
	boxW := int(math.Round(float64(len(runes)+6) * snap.Scale))
	boxH := int(math.Round(3 * snap.Scale))
	if boxW < len(runes)+2 {
		boxW = len(runes) + 2
	}
	if boxH < 1 {
		boxH = 1
	}

	x0 := (w - boxW) / 2
	y0 := (h - boxH) / 2
	card := base.Background(toColor(fade(paper, bg, snap.Opacity))).
		Foreground(toColor(fade(black, bg, snap.Opacity)))
	for y := y0; y < y0+boxH; y++ {
		for x := x0; x < x0+boxW; x++ {
			r.screen.SetContent(x, y, ' ', nil, card)
		}
	}
	r.text((w-len(runes))/2, y0+boxH/2, snap.Text, card)
}

func (r *Renderer) drawStatus(sc *scene.Scene, cam *scene.Camera, w, h int, base tcell.Style) {
	bg := "-"
	if t := sc.Background(); t != nil {
		bg = t.Source
	}
	status := fmt.Sprintf("camera (%.1f, %.1f, %.1f)  objects %d  background %s",
		cam.Position.X, cam.Position.Y, cam.Position.Z, len(sc.Objects()), bg)
	if len(status) > w {
		status = status[:w]
	}
	r.text(0, h-1, status, base.Foreground(tcell.ColorGray))
}

// project maps a world point to a screen cell and returns the cells per
// world unit at that depth. Terminal cells are about twice as tall as
// they are wide.
func project(cam *scene.Camera, p scene.Vec3, w, h int) (int, int, float64) {
	depth := math.Max(cam.Position.Z-p.Z, 0.1)
	focal := float64(h) / (2 * math.Tan(cam.FOV*math.Pi/360))
	k := focal / depth
	x := float64(w)/2 + (p.X-cam.Position.X)*k*2
	y := float64(h)/2 - (p.Y-cam.Position.Y)*k
	return int(math.Round(x)), int(math.Round(y)), k
}

// worldPoint places a part offset in the object's frame.
func worldPoint(o *scene.Object, local scene.Vec3) scene.Vec3 {
	x := local.X * o.Scale.X
	y := local.Y * o.Scale.Y
	z := local.Z * o.Scale.Z
	sin, cos := math.Sincos(o.Rotation.Y)
	return scene.Vec3{
		X: o.Position.X + x*cos + z*sin,
		Y: o.Position.Y + y,
		Z: o.Position.Z - x*sin + z*cos,
	}
}

func (r *Renderer) drawObject(o *scene.Object, cam *scene.Camera, w, h int, base tcell.Style) {
	// Planes are only drawn when they carry a picture.
	if o.Texture != nil {
		cx, cy, k := project(cam, o.Position, w, h)
		style := base.Background(toColor(o.Texture.Average))
		halfW := int(math.Max(1, 0.45*o.Scale.X*k*2))
		halfH := int(math.Max(1, 0.3*o.Scale.Y*k))
		r.fill(cx-halfW, cy-halfH, cx+halfW, cy+halfH, ' ', style)
		return
	}

	for _, p := range o.Parts {
		at := worldPoint(o, p.Position)
		cx, cy, k := project(cam, at, w, h)
		style := base.Foreground(toColor(p.Color))

		switch p.Shape {
		case scene.ShapeCylinder:
			halfW := int(math.Round(p.Size.X * o.Scale.X * k * 2))
			rows := int(math.Max(1, math.Round(p.Size.Y*o.Scale.Y*k)))
			r.fill(cx-halfW, cy-rows/2, cx+halfW, cy-rows/2+rows-1, '█', style)
		case scene.ShapeSphere:
			glyph := '●'
			if p.Emissive {
				glyph = '*'
				style = style.Bold(true)
			}
			r.screen.SetContent(cx, cy, glyph, nil, style)
		}
	}
}

func (r *Renderer) fill(x0, y0, x1, y1 int, c rune, style tcell.Style) {
	w, h := r.screen.Size()
	for y := max(y0, 0); y <= min(y1, h-1); y++ {
		for x := max(x0, 0); x <= min(x1, w-1); x++ {
			r.screen.SetContent(x, y, c, nil, style)
		}
	}
}
