package util

import (
	"github.com/fogleman/ease"
)

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Envelope builds a symmetric rise-and-fall lookup table of the given
// length, eased in and out, peaking at 1 in the middle.
func Envelope(length int) []float64 {
	if length <= 0 {
		return nil
	}

	lut := make([]float64, length)
	half := length / 2
	if half == 0 {
		lut[0] = 1
		return lut
	}

	increment := 1.0 / float64(half)
	for i, j := 0, length-1; i <= j; i, j = i+1, j-1 {
		value := ease.InOutQuad(Clamp01(float64(i) * increment))
		lut[i] = value
		lut[j] = value
	}
	return lut
}
