package model

import "math"

// Point3D represents a 3D coordinate or direction vector in feet.
type Point3D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Add returns p + q.
func (p Point3D) Add(q Point3D) Point3D {
	return Point3D{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub returns p - q.
func (p Point3D) Sub(q Point3D) Point3D {
	return Point3D{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Scale multiplies every component by s.
func (p Point3D) Scale(s float64) Point3D {
	return Point3D{X: p.X * s, Y: p.Y * s, Z: p.Z * s}
}

// Dot returns the dot product of p and q.
func (p Point3D) Dot(q Point3D) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Length returns the Euclidean norm.
func (p Point3D) Length() float64 {
	return math.Sqrt(p.Dot(p))
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Point3D) DistanceTo(q Point3D) float64 {
	return p.Sub(q).Length()
}

// IsZero reports whether the vector has no meaningful magnitude.
func (p Point3D) IsZero() bool {
	return p.Length() < 1e-12
}

// Normalize returns the unit vector in the direction of p.
// A zero vector is returned unchanged.
func (p Point3D) Normalize() Point3D {
	l := p.Length()
	if l < 1e-12 {
		return p
	}
	return p.Scale(1 / l)
}

// LocalFrame is a wall's local coordinate system.
// U runs along the wall length, V points up, W runs through the thickness.
type LocalFrame struct {
	Origin Point3D `json:"origin" yaml:"origin"`
	UAxis  Point3D `json:"u_axis" yaml:"u_axis"`
	VAxis  Point3D `json:"v_axis" yaml:"v_axis"`
	WAxis  Point3D `json:"w_axis" yaml:"w_axis"`
}

// IsSet reports whether the frame carries a length direction.
func (f LocalFrame) IsSet() bool {
	return !f.UAxis.IsZero()
}
