// Package camera provides the free-flying camera used to inspect models.
package camera

import (
	gomath "math"

	"github.com/Faultbox/kv6view/pkg/math"
)

// Movement is a set of movement intents, one bit per intent.
type Movement uint8

// Movement intents.
const (
	MoveForward Movement = 1 << iota
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	MoveBoost
)

// Has reports whether all intents in other are set.
func (m Movement) Has(other Movement) bool {
	return m&other == other
}

// WorldUp is the up axis of render space.
var WorldUp = math.Vec3{X: 0, Y: 0, Z: 1}

// Settings holds the tunable constants of the camera model.
type Settings struct {
	TickStep         float32 // Simulation step in seconds
	Speed            float32 // Velocity to position scale
	MouseSensitivity float32 // Scaled by 1/100 and converted from degrees per mouse unit
	RollCorrection   float32 // Bank correction per tick, times right.Z
	BoostFactor      float32
	FovY             float32 // Degrees
	Near             float32
	Far              float32
}

// DefaultSettings returns the standard camera constants.
func DefaultSettings() Settings {
	return Settings{
		TickStep:         1.0 / 60.0,
		Speed:            32.0,
		MouseSensitivity: 5.0,
		RollCorrection:   0.1,
		BoostFactor:      2.0,
		FovY:             90.0,
		Near:             0.1,
		Far:              1024.0,
	}
}

// FreeCamera is a fly camera stepped at a fixed rate. Orientation is kept as
// three basis vectors that are rotated in place every tick.
type FreeCamera struct {
	settings Settings

	position math.Vec3
	velocity math.Vec3

	forward math.Vec3
	right   math.Vec3
	up      math.Vec3

	// Mouse motion accumulated since the last tick
	mouseDX float32
	mouseDY float32

	movement Movement
}

// NewFreeCamera creates a camera at position looking along forward.
// The remaining axes are derived from WorldUp.
func NewFreeCamera(position, forward math.Vec3, settings Settings) *FreeCamera {
	f := forward.Normalize()
	r := f.Cross(WorldUp)
	u := r.Cross(f)

	return &FreeCamera{
		settings: settings,
		position: position,
		forward:  f,
		right:    r,
		up:       u,
	}
}

// Position returns the committed position of the last tick.
func (c *FreeCamera) Position() math.Vec3 {
	return c.position
}

// Velocity returns the current velocity.
func (c *FreeCamera) Velocity() math.Vec3 {
	return c.velocity
}

// SetVelocity overrides the current velocity.
func (c *FreeCamera) SetVelocity(v math.Vec3) {
	c.velocity = v
}

// Forward returns the view direction.
func (c *FreeCamera) Forward() math.Vec3 {
	return c.forward
}

// Right returns the camera right axis.
func (c *FreeCamera) Right() math.Vec3 {
	return c.right
}

// Up returns the camera up axis.
func (c *FreeCamera) Up() math.Vec3 {
	return c.up
}

// Movement returns the active movement intents.
func (c *FreeCamera) Movement() Movement {
	return c.movement
}

// HandleMouse accumulates raw relative mouse motion until the next tick.
func (c *FreeCamera) HandleMouse(dx, dy float32) {
	c.mouseDX += dx
	c.mouseDY += dy
}

// HandleKey sets or clears movement intents.
func (c *FreeCamera) HandleKey(m Movement, pressed bool) {
	if pressed {
		c.movement |= m
	} else {
		c.movement &^= m
	}
}

// Release clears all movement intents and pending mouse motion.
func (c *FreeCamera) Release() {
	c.movement = 0
	c.mouseDX = 0
	c.mouseDY = 0
}

// Acceleration returns the acceleration the active intents produce for the
// next tick: a unit vector along the summed basis directions, scaled by the
// boost factor. With no (or cancelling) intents it is the raw sum.
func (c *FreeCamera) Acceleration() math.Vec3 {
	dt := c.settings.TickStep

	var a math.Vec3
	if c.movement.Has(MoveForward) {
		a = a.Add(c.forward.Scale(dt))
	}
	if c.movement.Has(MoveBackward) {
		a = a.Sub(c.forward.Scale(dt))
	}
	if c.movement.Has(MoveLeft) {
		a = a.Sub(c.right.Scale(dt))
	}
	if c.movement.Has(MoveRight) {
		a = a.Add(c.right.Scale(dt))
	}
	if c.movement.Has(MoveUp) {
		a = a.Add(c.up.Scale(dt))
	}
	if c.movement.Has(MoveDown) {
		a = a.Sub(c.up.Scale(dt))
	}

	// Normalizing a zero vector yields NaN; keep the raw value then.
	if n := a.Scale(1 / a.Length()); n.IsFinite() {
		a = n
	}

	if c.movement.Has(MoveBoost) {
		a = a.Scale(c.settings.BoostFactor)
	}
	return a
}

// Update advances the simulation by one tick.
func (c *FreeCamera) Update() {
	dt := c.settings.TickStep

	c.velocity = c.velocity.Add(c.Acceleration())
	c.velocity = c.velocity.Scale(1 / (1 + dt))
	c.position = c.position.Add(c.step(1))

	degToRad := float32(gomath.Pi / 180.0)
	sens := c.settings.MouseSensitivity / 100.0
	roll := c.right.Z * c.settings.RollCorrection
	yaw := -c.mouseDX * degToRad * sens
	pitch := c.mouseDY * degToRad * sens
	c.rotate(roll, yaw, pitch)

	c.mouseDX = 0
	c.mouseDY = 0
}

// step returns the displacement covered by the current velocity over the
// given fraction of a tick.
func (c *FreeCamera) step(fraction float32) math.Vec3 {
	dt := c.settings.TickStep
	return c.velocity.Scale(dt * dt * c.settings.Speed * fraction)
}

// rotate applies an incremental roll/yaw/pitch rotation to the basis in the
// camera's own frame (roll about forward, yaw about up, pitch about right).
// The basis is not re-orthonormalized.
func (c *FreeCamera) rotate(roll, yaw, pitch float32) {
	sx, cx := sincos(roll)
	sy, cy := sincos(yaw)
	sz, cz := sincos(pitch)

	up, right, forward := c.up, c.right, c.forward

	c.up = up.Scale(sx*sz*sy + cx*cz).
		Add(right.Scale(-cx*sz*sy + sx*cz)).
		Add(forward.Scale(sz * cy))
	c.right = up.Scale(-sx * cy).
		Add(right.Scale(cx * cy)).
		Add(forward.Scale(sy))
	c.forward = up.Scale(sx*cz*sy - cx*sz).
		Add(right.Scale(-cx*cz*sy - sx*sz)).
		Add(forward.Scale(cz * cy))
}

// ViewMatrix returns the view matrix for rendering. fraction is the part of
// a tick elapsed since the last Update; the position is extrapolated along
// the velocity by that amount.
func (c *FreeCamera) ViewMatrix(fraction float32) math.Mat4 {
	eye := c.position.Add(c.step(fraction))
	return math.ViewFromBasis(c.right, c.up, c.forward, eye)
}

// ProjectionMatrix returns the perspective projection for the given
// width/height aspect ratio.
func (c *FreeCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	fov := c.settings.FovY * float32(gomath.Pi/180.0)
	return math.Perspective(fov, aspect, c.settings.Near, c.settings.Far)
}

func sincos(a float32) (sin, cos float32) {
	s, co := gomath.Sincos(float64(a))
	return float32(s), float32(co)
}
