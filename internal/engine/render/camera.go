// Package render turns world meshes into draw output. The Broadcast
// renderer targets remote viewers: instead of issuing GPU calls it
// encodes chunk geometry and fans it out to per-viewer send queues.
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera derives view and projection matrices from an observer pose.
type Camera struct {
	Pos   mgl32.Vec3
	Yaw   float32 // radians, 0 looks toward +Z
	Pitch float32 // radians, clamped to just short of +-pi/2

	FovDeg float32
	Aspect float32
	Near   float32
	Far    float32
}

// NewCamera returns a camera with the default lens at the given pose.
func NewCamera(pos mgl32.Vec3) Camera {
	return Camera{
		Pos:    pos,
		FovDeg: 70,
		Aspect: 16.0 / 9.0,
		Near:   0.1,
		Far:    512,
	}
}

const maxPitch = float32(math.Pi/2) * 0.99

// Forward returns the unit view direction for the current yaw/pitch.
func (c Camera) Forward() mgl32.Vec3 {
	pitch := c.Pitch
	if pitch > maxPitch {
		pitch = maxPitch
	} else if pitch < -maxPitch {
		pitch = -maxPitch
	}
	cosP := float32(math.Cos(float64(pitch)))
	return mgl32.Vec3{
		float32(math.Sin(float64(c.Yaw))) * cosP,
		float32(math.Sin(float64(pitch))),
		float32(math.Cos(float64(c.Yaw))) * cosP,
	}
}

// View returns the world-to-camera transform.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Pos, c.Pos.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective transform.
func (c Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovDeg), c.Aspect, c.Near, c.Far)
}
