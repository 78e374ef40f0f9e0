package images

import "math"

// Scale normalizes the displayed surface of images with different
// aspect ratios. An image at or above maxAspect (landscape ISO paper,
// sqrt 2, by default) fills its column; narrower images shrink so that
// wide and tall pieces occupy visually comparable area.
func Scale(aspect, maxAspect float64) float64 {
	if aspect >= maxAspect {
		return 1.0
	}
	return math.Sqrt(aspect / maxAspect)
}

// SideMargin is the symmetric left/right margin percentage applied
// around a figure to realize Scale.
func SideMargin(aspect, maxAspect float64) float64 {
	return (1 - Scale(aspect, maxAspect)) / 2 * 100
}
