package tween

import (
	"github.com/fogleman/ease"
)

// An Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

var (
	// Linear applies no easing.
	Linear Easing = ease.Linear

	// CubicOut decelerates towards the target without overshoot: 1-(1-t)^3.
	CubicOut Easing = ease.OutCubic

	// BackOut overshoots past the target before settling, giving a pop.
	BackOut Easing = ease.OutBack

	// InOutQuad stands in for the CSS "ease" timing function on UI
	// transitions.
	InOutQuad Easing = ease.InOutQuad
)
