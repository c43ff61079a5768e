// Package mechanics builds the moving parts of a scene: droppers,
// throwers, placers, and turntables, together with the step schedules
// that drive them. Builders in the features package decide where these
// devices go; this package only knows how to assemble and time them.
package mechanics

import (
	"math"

	"github.com/evalhouse/scenegen/internal/geom"
	"github.com/evalhouse/scenegen/internal/scene"
)

const (
	// DeviceMaterial is the neutral grey used for every tube device.
	DeviceMaterial = "Custom/Materials/Grey"

	dropperShape = "tube_wide"
	throwerShape = "tube_narrow"
)

// wallRotations maps a room wall to the yaw that points a wall-mounted
// device into the room.
var wallRotations = map[scene.Side]float64{
	scene.SideLeft:  90,
	scene.SideRight: -90,
	scene.SideFront: 0,
	scene.SideBack:  180,
}

// NewDropper builds a ceiling tube sized to the projectile it will hold.
// The tube hangs flush with the ceiling over (x, z).
func NewDropper(x, z float64, room geom.Vec3, projectileDims geom.Vec3) *scene.Instance {
	radius := math.Max(projectileDims.X, projectileDims.Z) * 1.25
	height := math.Max(projectileDims.Y*2, 0.5)

	device := scene.NewInstance("droppers", dropperShape)
	device.Material = DeviceMaterial
	device.Scale = geom.Vec3{X: radius, Y: height, Z: radius}
	device.Position = geom.Vec3{X: x, Y: room.Y - height/2, Z: z}
	device.StandingY = height / 2
	device.Kinematic = true
	device.Structure = true
	device.RecomputeBounds()
	return device
}

// NewThrower builds a wall tube half embedded in the named wall, at the
// given height, pointing into the room with an extra yaw twist. The twist
// stays within the tilt limit enforced by the caller.
func NewThrower(wall scene.Side, wallPos, height, rotation float64, room geom.Vec3, projectileDims geom.Vec3) *scene.Instance {
	radius := math.Max(projectileDims.X, projectileDims.Z) * 1.25
	length := math.Max(projectileDims.Z*3, 1)

	device := scene.NewInstance("throwers", throwerShape)
	device.Material = DeviceMaterial
	device.Scale = geom.Vec3{X: radius, Y: length, Z: radius}
	device.RotationY = wallRotations[wall] + rotation
	device.StandingY = length / 2
	device.Kinematic = true
	device.Structure = true

	// Half the tube sits inside the wall, so the device footprint is
	// allowed to leave the room.
	switch wall {
	case scene.SideLeft:
		device.Position = geom.Vec3{X: -room.X / 2, Y: height, Z: wallPos}
	case scene.SideRight:
		device.Position = geom.Vec3{X: room.X / 2, Y: height, Z: wallPos}
	case scene.SideFront:
		device.Position = geom.Vec3{X: wallPos, Y: height, Z: -room.Z / 2}
	case scene.SideBack:
		device.Position = geom.Vec3{X: wallPos, Y: height, Z: room.Z / 2}
	}
	device.RecomputeBounds()
	return device
}

// HoldProjectile parks the projectile inside the device mouth, frozen
// until the release step enables physics.
func HoldProjectile(device, projectile *scene.Instance, releaseStep int) {
	projectile.Position = geom.Vec3{
		X: device.Position.X,
		Y: device.Position.Y - device.Scale.Y/2,
		Z: device.Position.Z,
	}
	projectile.Kinematic = true
	projectile.TogglePhysicsStep = releaseStep
	projectile.Debug.PositionedBy = "mechanism"
	projectile.Debug.IgnoreBounds = true
	device.Debug.HeldObjectID = projectile.ID
}

// LaunchForce schedules the throw impulse on the projectile, aimed along
// the device yaw and scaled by the object's mass.
func LaunchForce(projectile *scene.Instance, step int, forceX, forceY, rotationY float64) {
	mass := projectile.Mass
	if mass == 0 {
		mass = 1
	}
	radians := rotationY * math.Pi / 180
	projectile.Forces = append(projectile.Forces, scene.ForceSegment{
		StepBegin: step,
		StepEnd:   step,
		Impulse:   true,
		Vector: geom.Vec3{
			X: forceX * mass * math.Sin(radians),
			Y: forceY * mass,
			Z: forceX * mass * math.Cos(radians),
		},
	})
	projectile.TogglePhysicsStep = step
}

// NewTurntable builds a rotating cylinder cog resting on the floor (or
// at an explicit height) with its rotation schedule attached.
func NewTurntable(x, y, z, radius, height float64, material string, stepBegin, stepEnd int, rotationY float64) *scene.Instance {
	tt := scene.NewInstance("turntables", "rotating_cog")
	tt.Material = material
	tt.Scale = geom.Vec3{X: radius * 2, Y: height, Z: radius * 2}
	tt.Position = geom.Vec3{X: x, Y: y + height/2, Z: z}
	tt.StandingY = height / 2
	tt.Kinematic = true
	tt.Structure = true
	if rotationY != 0 && stepEnd >= stepBegin {
		tt.Rotates = append(tt.Rotates, scene.RotateSegment{
			StepBegin: stepBegin,
			StepEnd:   stepEnd,
			Vector:    geom.Vec3{Y: rotationY},
		})
	}
	tt.RecomputeBounds()
	return tt
}
