package field

import "math"

// Point is a location on the base XY plane. Points are values: every
// evolution step produces a new Point rather than mutating one.
type Point struct {
	X float64
	Y float64
}

// Radius is the distance of the point from the origin.
func (p Point) Radius() float64 {
	return math.Hypot(p.X, p.Y)
}

// Vec2 is a planar vector, used for the drift direction of the field.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle is the vector's direction in radians.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

func (v Vec2) Normalized() Vec2 {
	mag := v.Magnitude()
	if mag == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / mag, Y: v.Y / mag}
}

// Rotate returns the vector rotated counterclockwise by the given radians.
func (v Vec2) Rotate(radians float64) Vec2 {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}
