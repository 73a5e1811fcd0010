// Package lighting holds the directional light and its on-screen marker.
package lighting

import "github.com/Faultbox/kv6view/pkg/math"

// DefaultMarkerDistance is how far from the origin the marker model is drawn.
const DefaultMarkerDistance = 128.0

// DefaultDirection is the initial light direction: from a point above and
// behind the model towards the origin.
func DefaultDirection() math.Vec3 {
	return math.Vec3{}.Sub(math.Vec3{X: -128, Y: -128, Z: 64}).Normalize()
}

// Light is a directional light with a marker model placed opposite to the
// direction the light travels.
type Light struct {
	Direction math.Vec3 // Direction the light travels, normalized
	Distance  float32   // Marker distance from the origin
	Visible   bool      // Whether the marker is drawn
}

// NewLight creates a light travelling along dir.
func NewLight(dir math.Vec3, distance float32, visible bool) *Light {
	if dir.IsZero() {
		dir = DefaultDirection()
	}
	return &Light{
		Direction: dir.Normalize(),
		Distance:  distance,
		Visible:   visible,
	}
}

// PointFrom makes the light shine from where the camera looks at, so it hits
// what the camera faces.
func (l *Light) PointFrom(forward math.Vec3) {
	if forward.IsZero() {
		return
	}
	l.Direction = forward.Negate().Normalize()
}

// Toggle flips marker visibility.
func (l *Light) Toggle() {
	l.Visible = !l.Visible
}

// MarkerModel returns the model matrix of the marker.
func (l *Light) MarkerModel() math.Mat4 {
	return math.TranslateVec(l.Direction.Scale(-l.Distance))
}

// MarkerLightDir returns the light direction used when shading the marker,
// reversed so its side facing the model is lit.
func (l *Light) MarkerLightDir() math.Vec3 {
	return l.Direction.Negate()
}
