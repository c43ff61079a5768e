package scene

import (
	"github.com/google/uuid"

	"github.com/evalhouse/scenegen/internal/geom"
)

// GridPoint addresses one unit cell of the room floor.
type GridPoint struct {
	X int `yaml:"x"`
	Z int `yaml:"z"`
}

// FloorTexture overrides the floor material on a set of cells.
type FloorTexture struct {
	Material  string      `yaml:"material"`
	Positions []GridPoint `yaml:"positions"`
}

// PartitionFloor splits the room floor with a partition line.
type PartitionFloor struct {
	LeftHalf  float64 `yaml:"left_half"`
	RightHalf float64 `yaml:"right_half"`
}

// PerformerStart is the agent's initial pose.
type PerformerStart struct {
	Position  geom.Vec3 `yaml:"position"`
	RotationY float64   `yaml:"rotation_y"`
}

// Scene is the evolving set of all placed objects plus the room itself.
// It is mutated incrementally by every successful placement and owned by
// exactly one generation request at a time.
type Scene struct {
	ID             string          `yaml:"id"`
	Name           string          `yaml:"name"`
	RoomDimensions geom.Vec3       `yaml:"room_dimensions"`
	RoomMaterial   string          `yaml:"room_material,omitempty"`
	PerformerStart PerformerStart  `yaml:"performer_start"`
	LastStep       int             `yaml:"last_step"`
	Objects        []*Instance     `yaml:"objects"`
	Holes          []GridPoint     `yaml:"holes,omitempty"`
	Lava           []GridPoint     `yaml:"lava,omitempty"`
	FloorTextures  []FloorTexture  `yaml:"floor_textures,omitempty"`
	Partition      *PartitionFloor `yaml:"partition_floor,omitempty"`

	Labels *Repository `yaml:"-"`
}

// New creates an empty scene with the given room dimensions. Zero
// dimensions fall back to the defaults.
func New(room geom.Vec3) *Scene {
	if room.X == 0 {
		room.X = geom.DefaultRoomDimensions.X
	}
	if room.Y == 0 {
		room.Y = geom.DefaultRoomDimensions.Y
	}
	if room.Z == 0 {
		room.Z = geom.DefaultRoomDimensions.Z
	}
	return &Scene{
		ID:             uuid.NewString(),
		RoomDimensions: room,
		LastStep:       1000,
		Labels:         NewRepository(),
	}
}

// AddObject appends an instance to the scene.
func (s *Scene) AddObject(inst *Instance) {
	s.Objects = append(s.Objects, inst)
}

// RemoveObject deletes the instance with the given ID, if present.
func (s *Scene) RemoveObject(id string) {
	for i, obj := range s.Objects {
		if obj.ID == id {
			s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
			return
		}
	}
}

// ObjectByID returns the instance with the given ID, or nil.
func (s *Scene) ObjectByID(id string) *Instance {
	if id == "" {
		return nil
	}
	for _, obj := range s.Objects {
		if obj.ID == id {
			return obj
		}
	}
	return nil
}

// FindBounds collects the footprints of every placed object plus all
// occupied floor areas. With ignoreGround set, holes and lava are left
// out (throwers ignore the ground directly beneath themselves).
func (s *Scene) FindBounds(ignoreGround bool) []geom.Bounds {
	var all []geom.Bounds
	if !ignoreGround {
		for _, hole := range s.Holes {
			all = append(all, geom.FloorAreaBounds(float64(hole.X), float64(hole.Z)))
		}
		for _, cell := range s.Lava {
			all = append(all, geom.FloorAreaBounds(float64(cell.X), float64(cell.Z)))
		}
	}
	for _, obj := range s.Objects {
		if obj.Debug.IgnoreBounds || len(obj.Bounds.BoxXZ) == 0 {
			continue
		}
		all = append(all, obj.Bounds)
	}
	return all
}
