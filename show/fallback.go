package show

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/cakeshow/scene"
)

func hex(s string) colorful.Color {
	c, _ := colorful.Hex(s)
	return c
}

var (
	pink   = hex("#ffc0d6")
	yellow = hex("#ffe27a")
	plate  = hex("#f6f6f6")
	white  = hex("#ffffff")
	flame  = hex("#ffa600")
)

// BuildCakeFallback builds a three-layer cake on a plate with six lit
// candles, used when no cake model can be loaded.
func BuildCakeFallback() *scene.Object {
	g := scene.NewObject("cake")

	layers := []struct {
		radius, height, y float64
		color             colorful.Color
	}{
		{1.4, 0.6, 0.2, pink},
		{1.15, 0.45, 0.65, yellow},
		{0.9, 0.35, 1.0, pink},
	}
	for i, l := range layers {
		g.Add(scene.Part{
			Name:     "layer" + string(rune('1'+i)),
			Shape:    scene.ShapeCylinder,
			Size:     scene.Vec3{X: l.radius, Y: l.height},
			Position: scene.Vec3{Y: l.y},
			Color:    l.color,
		})
	}

	g.Add(scene.Part{
		Name:     "plate",
		Shape:    scene.ShapeCylinder,
		Size:     scene.Vec3{X: 2.2, Y: 0.12},
		Position: scene.Vec3{Y: -0.02},
		Color:    plate,
	})

	for i := 0; i < 6; i++ {
		ang := float64(i) / 6 * math.Pi * 2
		x := math.Cos(ang) * 0.7
		z := math.Sin(ang) * 0.7

		g.Add(scene.Part{
			Name:     "candle",
			Shape:    scene.ShapeCylinder,
			Size:     scene.Vec3{X: 0.03, Y: 0.45},
			Position: scene.Vec3{X: x, Y: 1.28, Z: z},
			Color:    white,
		})
		g.Add(scene.Part{
			Name:     "flame",
			Shape:    scene.ShapeSphere,
			Size:     scene.Vec3{X: 0.07, Y: 0.07, Z: 0.07},
			Position: scene.Vec3{X: x, Y: 1.52, Z: z},
			Color:    flame,
			Emissive: true,
		})
	}

	return g
}

// ground is the floor plane under the cake.
func ground() *scene.Object {
	o := scene.NewObject("ground")
	o.Position.Y = -0.9
	o.Rotation.X = -math.Pi / 2
	o.Add(scene.Part{
		Name:  "ground",
		Shape: scene.ShapePlane,
		Size:  scene.Vec3{X: 40, Y: 40},
		Color: white,
	})
	return o
}
