package asset

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/cakeshow/scene"
	"golang.org/x/image/draw"
	"gopkg.in/yaml.v2"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrNotFound is wrapped by every error caused by a missing asset.
var ErrNotFound = errors.New("asset not found")

// thumbSize bounds the longest side of texture thumbnails.
const thumbSize = 64

// A Loader resolves asset URLs to scene content.
type Loader interface {
	LoadObject(url string) (*scene.Object, error)
	LoadTexture(url string) (*scene.Texture, error)
}

// FileLoader loads assets from a directory. Objects are YAML model files,
// textures are jpeg, png, webp or bmp images.
type FileLoader struct {
	Root string
}

// NewFileLoader creates a FileLoader rooted at root.
func NewFileLoader(root string) *FileLoader {
	return &FileLoader{Root: root}
}

func (l *FileLoader) open(url string) (*os.File, error) {
	path := url
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.Root, url)
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", url, ErrNotFound)
	}
	return f, err
}

// LoadObject reads a model file.
func (l *FileLoader) LoadObject(url string) (*scene.Object, error) {
	f, err := l.open(url)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var m Model
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", url, err)
	}

	o, err := m.Build()
	if err != nil {
		return nil, fmt.Errorf("build model %s: %w", url, err)
	}
	return o, nil
}

// LoadTexture decodes an image into a thumbnailed Texture.
func (l *FileLoader) LoadTexture(url string) (*scene.Texture, error) {
	f, err := l.open(url)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", url, err)
	}

	return NewTexture(url, img), nil
}

// NewTexture reduces img to a thumbnail and its average colour.
func NewTexture(source string, img image.Image) *scene.Texture {
	b := img.Bounds()
	t := &scene.Texture{
		Source: source,
		Width:  b.Dx(),
		Height: b.Dy(),
	}

	tw, th := thumbBounds(b.Dx(), b.Dy())
	thumb := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(thumb, thumb.Bounds(), img, b, draw.Src, nil)
	t.Thumb = thumb
	t.Average = average(thumb)
	return t
}

func thumbBounds(w, h int) (int, int) {
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	if w <= thumbSize && h <= thumbSize {
		return w, h
	}
	if w >= h {
		return thumbSize, max(1, h*thumbSize/w)
	}
	return max(1, w*thumbSize/h), thumbSize
}

func average(img *image.RGBA) colorful.Color {
	var r, g, b float64
	n := 0
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, _ := colorful.MakeColor(img.RGBAAt(x, y))
			r += c.R
			g += c.G
			b += c.B
			n++
		}
	}
	if n == 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: r / float64(n), G: g / float64(n), B: b / float64(n)}
}
