package core

import "image/color"

// RGB is a color with each channel clamped to [0, 1]
type RGB struct {
	R, G, B float64
}

// NewRGB creates a color, clamping every channel to [0, 1]
func NewRGB(r, g, b float64) RGB {
	return RGB{R: clamp01(r), G: clamp01(g), B: clamp01(b)}
}

// RGBFromVec3 maps X, Y, Z to R, G, B with clamping
func RGBFromVec3(v Vec3) RGB {
	return NewRGB(v.X, v.Y, v.Z)
}

// Black returns RGB{0, 0, 0}
func Black() RGB { return RGB{0, 0, 0} }

// White returns RGB{1, 1, 1}
func White() RGB { return RGB{1, 1, 1} }

// Red returns the full-intensity red primary
func Red() RGB { return RGB{1, 0, 0} }

// Green returns the full-intensity green primary
func Green() RGB { return RGB{0, 1, 0} }

// Blue returns the full-intensity blue primary
func Blue() RGB { return RGB{0, 0, 1} }

// ToRGBA converts to an 8-bit opaque color
func (c RGB) ToRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: 255,
	}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

// Lerp blends linearly from c at t=0 to other at t=1
func (c RGB) Lerp(other RGB, t float64) RGB {
	return NewRGB(
		c.R+(other.R-c.R)*t,
		c.G+(other.G-c.G)*t,
		c.B+(other.B-c.B)*t,
	)
}
