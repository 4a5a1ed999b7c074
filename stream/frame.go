package stream

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/cakeshow/scene"
)

const (
	headerSize = 2 + 4 + 3*4 + 1 + 3
	objectSize = 1 + 9*4 + 3
)

// ObjectState is the transform and colour of one object in a Frame.
type ObjectState struct {
	Visible  bool
	Position scene.Vec3
	Scale    scene.Vec3
	Rotation scene.Vec3
	Color    colorful.Color
}

// Frame is a snapshot of the world for a remote display.
type Frame struct {
	Runtime       time.Duration
	Camera        scene.Vec3
	HasBackground bool
	Background    colorful.Color
	Objects       []ObjectState
}

// NewFrame captures the scene. Callers hold the scene lock.
func NewFrame(sc *scene.Scene, cam *scene.Camera, now time.Duration) *Frame {
	f := new(Frame)
	f.Runtime = now
	f.Camera = cam.Position
	if bg := sc.Background(); bg != nil {
		f.HasBackground = true
		f.Background = bg.Average
	}

	objects := sc.Objects()
	f.Objects = make([]ObjectState, len(objects))
	for i, o := range objects {
		f.Objects[i] = ObjectState{
			Visible:  o.Visible,
			Position: o.Position,
			Scale:    o.Scale,
			Rotation: o.Rotation,
			Color:    objectColor(o),
		}
	}
	return f
}

// objectColor is the texture's average colour, or the mean of the parts.
func objectColor(o *scene.Object) colorful.Color {
	if o.Texture != nil {
		return o.Texture.Average
	}
	if len(o.Parts) == 0 {
		return colorful.Color{}
	}

	var c colorful.Color
	for _, p := range o.Parts {
		c.R += p.Color.R
		c.G += p.Color.G
		c.B += p.Color.B
	}
	n := float64(len(o.Parts))
	return colorful.Color{R: c.R / n, G: c.G / n, B: c.B / n}
}

func appendFloat(data []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint32(data, math.Float32bits(float32(v)))
}

func appendVec(data []byte, v scene.Vec3) []byte {
	data = appendFloat(data, v.X)
	data = appendFloat(data, v.Y)
	return appendFloat(data, v.Z)
}

func appendColor(data []byte, c colorful.Color) []byte {
	r, g, b := c.Clamped().RGB255()
	return append(data, r, g, b)
}

// MarshalBinary converts a Frame into little endian binary data: object
// count, runtime in milliseconds, camera position, background flag and
// colour, then per object a visibility flag, position, scale, rotation and
// colour.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 2, headerSize+len(f.Objects)*objectSize)
	binary.LittleEndian.PutUint16(data, uint16(len(f.Objects)))
	data = binary.LittleEndian.AppendUint32(data, uint32(f.Runtime.Milliseconds()))
	data = appendVec(data, f.Camera)

	var flag byte
	if f.HasBackground {
		flag = 1
	}
	data = append(data, flag)
	data = appendColor(data, f.Background)

	for _, o := range f.Objects {
		flag = 0
		if o.Visible {
			flag = 1
		}
		data = append(data, flag)
		data = appendVec(data, o.Position)
		data = appendVec(data, o.Scale)
		data = appendVec(data, o.Rotation)
		data = appendColor(data, o.Color)
	}

	return data, nil
}
