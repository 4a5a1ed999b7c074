package scene

import (
	"image"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Vec3 is a mutable 3-component vector. It implements tween.Target with
// the fields "x", "y" and "z".
type Vec3 struct {
	X, Y, Z float64
}

// Set3 assigns all three components.
func (v *Vec3) Set3(x, y, z float64) {
	v.X, v.Y, v.Z = x, y, z
}

// Get returns the named component.
func (v *Vec3) Get(field string) (float64, bool) {
	switch field {
	case "x":
		return v.X, true
	case "y":
		return v.Y, true
	case "z":
		return v.Z, true
	}
	return 0, false
}

// Set assigns the named component. Unknown names are ignored.
func (v *Vec3) Set(field string, value float64) {
	switch field {
	case "x":
		v.X = value
	case "y":
		v.Y = value
	case "z":
		v.Z = value
	}
}

// Shape names understood by renderers.
const (
	ShapeCylinder = "cylinder"
	ShapeSphere   = "sphere"
	ShapePlane    = "plane"
)

// A Part is one primitive of an Object, positioned relative to it.
type Part struct {
	Name     string
	Shape    string
	Size     Vec3 // radius/height/depth for cylinders, width/height for planes
	Position Vec3
	Color    colorful.Color
	Emissive bool
}

// An Object is a group of parts with a shared transform.
type Object struct {
	Name     string
	Visible  bool
	Position Vec3
	Scale    Vec3
	Rotation Vec3
	Parts    []Part
	Texture  *Texture
}

// NewObject creates an instance of an Object with unit scale.
func NewObject(name string) *Object {
	o := new(Object)
	o.Name = name
	o.Visible = true
	o.Scale = Vec3{1, 1, 1}
	return o
}

// Add appends a part to the object.
func (o *Object) Add(p Part) {
	o.Parts = append(o.Parts, p)
}

// A Texture is a decoded image reduced to what the renderers need.
type Texture struct {
	Source  string
	Width   int
	Height  int
	Average colorful.Color
	Thumb   image.Image
}

// Camera holds the eye position.
type Camera struct {
	Position Vec3
	FOV      float64
}

// NewCamera creates a perspective camera at position.
func NewCamera(fov float64, position Vec3) *Camera {
	return &Camera{FOV: fov, Position: position}
}

// Scene is the world graph. The embedded mutex is the world lock: the
// frame clock holds it for a whole frame and stage code holds it while
// mutating objects or submitting tweens against them.
type Scene struct {
	sync.Mutex

	objects    []*Object
	background *Texture
}

// NewScene creates an empty Scene.
func NewScene() *Scene {
	s := new(Scene)
	s.objects = make([]*Object, 0, 8)
	return s
}

// AddObject adds o to the scene. Callers hold the lock.
func (s *Scene) AddObject(o *Object) {
	s.objects = append(s.objects, o)
}

// Objects returns the scene's objects. Callers hold the lock.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// SetBackground replaces the background. Callers hold the lock.
func (s *Scene) SetBackground(t *Texture) {
	s.background = t
}

// Background returns the current background, or nil. Callers hold the lock.
func (s *Scene) Background() *Texture {
	return s.background
}
