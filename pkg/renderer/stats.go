package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about a finished render
type RenderStats struct {
	Pixels    int           // Total number of pixels rendered
	Rays      int           // Primary rays cast
	Hits      int           // Rays that hit any shape
	Luminance float64       // Mean image luminance in [0, 1]
	Elapsed   time.Duration // Wall time spent in Render
}

// HitRatio returns the fraction of rays that hit geometry
func (s RenderStats) HitRatio() float64 {
	if s.Rays == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Rays)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	count := bounds.Dx() * bounds.Dy()
	if count == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
		}
	}
	return total / float64(count)
}
