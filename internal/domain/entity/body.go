package entity

import "math"

// PositionScale is the internal position scale factor.
// 1 pixel = 256 internal units (IU) for sub-pixel precision without floats.
const PositionScale = 256

// PositionShift is the bit shift amount for pixel conversion (log2(256) = 8)
const PositionShift = 8

// Body is a combatant's position in internal units. Y grows upwards.
type Body struct {
	X, Y int32
}

// PixelX returns the pixel X position
func (b Body) PixelX() int {
	return int(b.X >> PositionShift)
}

// PixelY returns the pixel Y position
func (b Body) PixelY() int {
	return int(b.Y >> PositionShift)
}

// SetPixelPos sets the position from pixel coordinates
func (b *Body) SetPixelPos(x, y float64) {
	b.X = ToIU(x)
	b.Y = ToIU(y)
}

// ToIU converts pixels to internal units, rounding to the nearest unit.
// Only used while loading data; the simulation itself never sees floats.
func ToIU(pixels float64) int32 {
	return int32(math.Round(pixels * PositionScale))
}

// ToPixels converts internal units to pixels for rendering
func ToPixels(iu int32) float64 {
	return float64(iu) / PositionScale
}
