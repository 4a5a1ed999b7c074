package asset

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/cakeshow/scene"
)

// Model is the on-disk description of an object.
//
//	name: cake
//	scale: [1.2, 1.2, 1.2]
//	parts:
//	  - {name: base, shape: cylinder, size: [1.4, 0.6, 0], position: [0, 0.2, 0], color: "#ffc0d6"}
type Model struct {
	Name     string      `yaml:"name"`
	Position []float64   `yaml:"position"`
	Scale    []float64   `yaml:"scale"`
	Parts    []ModelPart `yaml:"parts"`
}

// ModelPart describes one primitive.
type ModelPart struct {
	Name     string    `yaml:"name"`
	Shape    string    `yaml:"shape"`
	Size     []float64 `yaml:"size"`
	Position []float64 `yaml:"position"`
	Color    string    `yaml:"color"`
	Emissive bool      `yaml:"emissive"`
}

func vec(v []float64, def scene.Vec3) (scene.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return scene.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
	}
	return def, fmt.Errorf("expected 3 components, got %d", len(v))
}

// Build converts the model into a scene object.
func (m *Model) Build() (*scene.Object, error) {
	if len(m.Parts) == 0 {
		return nil, fmt.Errorf("model %q has no parts", m.Name)
	}

	o := scene.NewObject(m.Name)
	var err error
	if o.Position, err = vec(m.Position, scene.Vec3{}); err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}
	if o.Scale, err = vec(m.Scale, scene.Vec3{X: 1, Y: 1, Z: 1}); err != nil {
		return nil, fmt.Errorf("scale: %w", err)
	}

	for i, mp := range m.Parts {
		p := scene.Part{Name: mp.Name, Shape: mp.Shape, Emissive: mp.Emissive}
		switch p.Shape {
		case scene.ShapeCylinder, scene.ShapeSphere, scene.ShapePlane:
		default:
			return nil, fmt.Errorf("part %d: unknown shape %q", i, mp.Shape)
		}
		if p.Size, err = vec(mp.Size, scene.Vec3{X: 1, Y: 1, Z: 1}); err != nil {
			return nil, fmt.Errorf("part %d size: %w", i, err)
		}
		if p.Position, err = vec(mp.Position, scene.Vec3{}); err != nil {
			return nil, fmt.Errorf("part %d position: %w", i, err)
		}

		p.Color = colorful.Color{R: 1, G: 1, B: 1}
		if mp.Color != "" {
			if p.Color, err = colorful.Hex(mp.Color); err != nil {
				return nil, fmt.Errorf("part %d color: %w", i, err)
			}
		}
		o.Add(p)
	}

	return o, nil
}
