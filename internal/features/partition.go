package features

import (
	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/geom"
	"github.com/evalhouse/scenegen/internal/scene"
)

func init() { Register(&partitionFloorBuilder{}) }

// partitionFloorHeight is the rise of a partitioned floor section.
const partitionFloorHeight = 0.5

// partitionFloorBuilder raises floor sections growing out of the left and
// right walls. Build returns marker instances whose footprints are the
// raised sections, so the default validation applies; Committed records
// the partition on the scene and keeps the footprints reserved.
type partitionFloorBuilder struct{}

func (b *partitionFloorBuilder) Type() string { return "partition_floor" }

func (b *partitionFloorBuilder) Reconcile(sess *Session, source any) (any, error) {
	cfg, ok := source.(*config.PartitionFloorConfig)
	if !ok {
		return nil, Configf("partition floor request has unexpected type %T", source)
	}
	return cfg, nil
}

func (b *partitionFloorBuilder) Build(sess *Session, source any) ([]*scene.Instance, error) {
	cfg := source.(*config.PartitionFloorConfig)
	room := sess.Scene.RoomDimensions

	if sess.Scene.Partition != nil {
		return nil, Configf("partition floor is already set for this scene")
	}

	leftHalf := geom.Clamp(cfg.LeftHalf.Resolve(sess.RNG), 0, 1)
	rightHalf := geom.Clamp(cfg.RightHalf.Resolve(sess.RNG), 0, 1)
	if leftHalf == 0 && rightHalf == 0 {
		return nil, Configf("partition floor needs a left_half or right_half fraction")
	}

	var markers []*scene.Instance
	if leftHalf > 0 {
		markers = append(markers, b.newSection(-room.X/2, leftHalf*room.X/2, room))
	}
	if rightHalf > 0 {
		markers = append(markers, b.newSection(room.X/2-rightHalf*room.X/2, rightHalf*room.X/2, room))
	}
	return markers, nil
}

// newSection builds one raised section marker starting at the given wall
// edge and extending width along X over the full room depth.
func (b *partitionFloorBuilder) newSection(startX, width float64, room geom.Vec3) *scene.Instance {
	marker := scene.NewInstance("partition_floor", "floor_section")
	marker.Scale = geom.Vec3{X: width, Y: partitionFloorHeight, Z: room.Z}
	marker.Position = geom.Vec3{X: startX + width/2, Y: partitionFloorHeight / 2}
	marker.StandingY = partitionFloorHeight / 2
	marker.RecomputeBounds()
	return marker
}

func (b *partitionFloorBuilder) Committed(sess *Session, source any, instances []*scene.Instance) error {
	room := sess.Scene.RoomDimensions
	partition := &scene.PartitionFloor{}

	// The markers leave the object list but their footprints stay
	// reserved so nothing is placed on a raised edge. Each marker's
	// width recovers the sampled fraction of its half-room.
	for _, marker := range instances {
		fraction := marker.Scale.X / (room.X / 2)
		if marker.Position.X < 0 {
			partition.LeftHalf = fraction
		} else {
			partition.RightHalf = fraction
		}
		sess.Scene.RemoveObject(marker.ID)
		sess.Bounds = append(sess.Bounds, marker.Bounds)
	}
	sess.Scene.Partition = partition
	return nil
}
