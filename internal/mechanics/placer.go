package mechanics

import (
	"math"

	"github.com/evalhouse/scenegen/internal/geom"
	"github.com/evalhouse/scenegen/internal/scene"
)

const (
	// PlacerMaterialIdle is the pole color while inactive.
	PlacerMaterialIdle = "Custom/Materials/Magenta"
	// PlacerMaterialActive is the pole color while moving.
	PlacerMaterialActive = "Custom/Materials/Cyan"

	// placerSpeed is the vertical travel per step of a pole and its
	// cargo.
	placerSpeed = 0.25
	// placerWaitSteps is the pause between releasing the cargo and
	// retracting the pole.
	placerWaitSteps = 5
)

// NewPlacerPole builds the ceiling pole above the given spot. The pole
// spans from the ceiling down to just above the held object's top.
func NewPlacerPole(x, z, objectTopY float64, room geom.Vec3) *scene.Instance {
	length := room.Y - objectTopY
	if length < 0.5 {
		length = 0.5
	}
	pole := scene.NewInstance("placers", "cylinder")
	pole.Material = PlacerMaterialIdle
	pole.Scale = geom.Vec3{X: 0.2, Y: length, Z: 0.2}
	pole.Position = geom.Vec3{X: x, Y: objectTopY + length/2, Z: z}
	pole.StandingY = length / 2
	pole.Kinematic = true
	pole.Structure = true
	pole.RecomputeBounds()
	return pole
}

// SchedulePlace lowers the pole and its cargo from the activation step,
// releases the cargo, waits, and retracts the pole. Returns the release
// step.
func SchedulePlace(pole, cargo *scene.Instance, activationStep int, descend float64) int {
	steps := descendSteps(descend)
	end := activationStep + steps - 1

	down := scene.MoveSegment{
		StepBegin: activationStep,
		StepEnd:   end,
		Vector:    geom.Vec3{Y: -placerSpeed},
	}
	pole.Moves = append(pole.Moves, down)
	cargo.Moves = append(cargo.Moves, down)
	cargo.Kinematic = true
	cargo.TogglePhysicsStep = end + 1
	cargo.Debug.PositionedBy = "mechanism"
	pole.Debug.HeldObjectID = cargo.ID

	riseBegin := end + 1 + placerWaitSteps
	pole.Moves = append(pole.Moves, scene.MoveSegment{
		StepBegin: riseBegin,
		StepEnd:   riseBegin + steps - 1,
		Vector:    geom.Vec3{Y: placerSpeed},
	})
	return end + 1
}

// SchedulePickup lowers an empty pole onto the object, then carries it
// up. Returns the step at which the object is captured.
func SchedulePickup(pole, cargo *scene.Instance, activationStep int, descend float64) int {
	steps := descendSteps(descend)
	end := activationStep + steps - 1

	pole.Moves = append(pole.Moves, scene.MoveSegment{
		StepBegin: activationStep,
		StepEnd:   end,
		Vector:    geom.Vec3{Y: -placerSpeed},
	})

	grab := end + 1 + placerWaitSteps
	up := scene.MoveSegment{
		StepBegin: grab,
		StepEnd:   grab + steps - 1,
		Vector:    geom.Vec3{Y: placerSpeed},
	}
	pole.Moves = append(pole.Moves, up)
	cargo.Moves = append(cargo.Moves, up)
	cargo.Kinematic = true
	pole.Debug.HeldObjectID = cargo.ID
	return grab
}

// ScheduleMove lowers the pole onto the object, carries it sideways to
// the end position, and releases it there. Returns the release step.
func ScheduleMove(pole, cargo *scene.Instance, activationStep int, descend float64, lateral geom.Vec3) int {
	SchedulePickup(pole, cargo, activationStep, descend)
	riseEnd := pole.Moves[len(pole.Moves)-1].StepEnd

	span := math.Max(math.Abs(lateral.X), math.Abs(lateral.Z))
	steps := descendSteps(span)
	slide := scene.MoveSegment{
		StepBegin: riseEnd + 1,
		StepEnd:   riseEnd + steps,
		Vector: geom.Vec3{
			X: lateral.X / float64(steps),
			Z: lateral.Z / float64(steps),
		},
	}
	pole.Moves = append(pole.Moves, slide)
	cargo.Moves = append(cargo.Moves, slide)

	// Lower back down and let go at the destination.
	downBegin := slide.StepEnd + 1
	downSteps := descendSteps(descend)
	down := scene.MoveSegment{
		StepBegin: downBegin,
		StepEnd:   downBegin + downSteps - 1,
		Vector:    geom.Vec3{Y: -placerSpeed},
	}
	pole.Moves = append(pole.Moves, down)
	cargo.Moves = append(cargo.Moves, down)

	release := down.StepEnd + 1
	cargo.TogglePhysicsStep = release
	pole.Moves = append(pole.Moves, scene.MoveSegment{
		StepBegin: release + placerWaitSteps,
		StepEnd:   release + placerWaitSteps + downSteps - 1,
		Vector:    geom.Vec3{Y: placerSpeed},
	})
	return release
}

func descendSteps(distance float64) int {
	steps := int(math.Ceil(math.Abs(distance) / placerSpeed))
	if steps < 1 {
		steps = 1
	}
	return steps
}
