package geom

import "math"

// Bounds is the footprint of one object: its rotated 2-D bounding box on
// the floor plane plus its vertical extent. Corner coordinates are rounded
// so that repeated computations compare equal.
type Bounds struct {
	BoxXZ []Vec3
	MinY  float64
	MaxY  float64
}

const coordinateEpsilon = 1e-6

func roundCoordinate(v float64) float64 {
	return math.Round(v/coordinateEpsilon) * coordinateEpsilon
}

// CreateBounds builds the footprint for an object with the given
// dimensions, mesh offset, position and Y rotation. standingY is the
// distance from the object's origin to its bottom face.
//
// The rotation convention matches the simulation environment (clockwise
// positive Y); keep it in sync with RotatePointAround.
func CreateBounds(dimensions, offset, position Vec3, rotationY, standingY float64) Bounds {
	radians := math.Pi * (2 - rotationY/180.0)
	sin, cos := math.Sin(radians), math.Cos(radians)

	xPlus := dimensions.X/2.0 + offset.X
	xMinus := -dimensions.X/2.0 + offset.X
	zPlus := dimensions.Z/2.0 + offset.Z
	zMinus := -dimensions.Z/2.0 + offset.Z

	corner := func(x, z float64) Vec3 {
		return Vec3{
			X: roundCoordinate(position.X + x*cos - z*sin),
			Z: roundCoordinate(position.Z + x*sin + z*cos),
		}
	}

	minY := position.Y - standingY
	return Bounds{
		BoxXZ: []Vec3{
			corner(xPlus, zPlus),
			corner(xPlus, zMinus),
			corner(xMinus, zMinus),
			corner(xMinus, zPlus),
		},
		MinY: minY,
		MaxY: minY + dimensions.Y,
	}
}

// InRoom reports whether every corner of the footprint lies inside the
// room's horizontal extent. Rooms are centered on the origin.
func (b Bounds) InRoom(room Vec3) bool {
	maxX := room.X / 2.0
	maxZ := room.Z / 2.0
	for _, p := range b.BoxXZ {
		if p.X < -maxX || p.X > maxX || p.Z < -maxZ || p.Z > maxZ {
			return false
		}
	}
	return true
}

// ExpandBy grows a rectangular footprint by the given amount on both the X
// and Z axes, keeping the corners mitred.
func (b *Bounds) ExpandBy(amount float64) {
	n := len(b.BoxXZ)
	if n < 3 {
		return
	}
	expanded := make([]Vec3, n)
	for i, corner := range b.BoxXZ {
		prev := b.BoxXZ[(i-1+n)%n]
		next := b.BoxXZ[(i+1)%n]
		u := unitXZ(corner.X-prev.X, corner.Z-prev.Z)
		w := unitXZ(corner.X-next.X, corner.Z-next.Z)
		expanded[i] = Vec3{
			X: roundCoordinate(corner.X + amount*(u.X+w.X)),
			Z: roundCoordinate(corner.Z + amount*(u.Z+w.Z)),
		}
	}
	b.BoxXZ = expanded
}

func unitXZ(x, z float64) Vec3 {
	length := math.Hypot(x, z)
	if length == 0 {
		return Vec3{}
	}
	return Vec3{X: x / length, Z: z / length}
}

// ExtendBottomToGround drops the footprint's lower extent to the floor.
// Used for devices suspended above held objects so nothing can be placed
// beneath them.
func (b *Bounds) ExtendBottomToGround() {
	b.MinY = 0
}

// Intersects reports whether two footprints overlap horizontally,
// ignoring vertical extents. Uses the separating axis theorem on the two
// convex corner polygons.
func (b Bounds) Intersects(other Bounds) bool {
	return satIntersect(b.BoxXZ, other.BoxXZ)
}

// satIntersect tests two convex XZ polygons for overlap. If a separating
// axis exists along any edge normal of either polygon, they do not
// intersect. Touching edges do not count as overlap.
func satIntersect(a, c []Vec3) bool {
	for _, poly := range [][]Vec3{a, c} {
		for i := range poly {
			p1 := poly[i]
			p2 := poly[(i+1)%len(poly)]
			// Edge normal in the XZ plane.
			axisX := p2.Z - p1.Z
			axisZ := p1.X - p2.X
			minA, maxA := projectOntoAxis(a, axisX, axisZ)
			minC, maxC := projectOntoAxis(c, axisX, axisZ)
			if maxA <= minC+coordinateEpsilon || maxC <= minA+coordinateEpsilon {
				return false
			}
		}
	}
	return true
}

func projectOntoAxis(poly []Vec3, axisX, axisZ float64) (float64, float64) {
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, p := range poly {
		dot := p.X*axisX + p.Z*axisZ
		if dot < min {
			min = dot
		}
		if dot > max {
			max = dot
		}
	}
	return min, max
}

// PerformerBounds returns the footprint of the performer agent standing at
// the given position.
func PerformerBounds(position Vec3) Bounds {
	return Bounds{
		BoxXZ: []Vec3{
			{X: position.X - PerformerHalfWidth, Z: position.Z - PerformerHalfWidth},
			{X: position.X - PerformerHalfWidth, Z: position.Z + PerformerHalfWidth},
			{X: position.X + PerformerHalfWidth, Z: position.Z + PerformerHalfWidth},
			{X: position.X + PerformerHalfWidth, Z: position.Z - PerformerHalfWidth},
		},
		MinY: position.Y,
		MaxY: position.Y + PerformerHeight,
	}
}

// ValidateLocation reports whether the given footprint stays inside the
// room and avoids the performer start plus every existing footprint.
// Footprints stacked entirely above or below each other do not collide.
func ValidateLocation(candidate Bounds, performerStart Vec3, existing []Bounds, room Vec3) bool {
	if !candidate.InRoom(room) {
		return false
	}
	all := append([]Bounds{PerformerBounds(performerStart)}, existing...)
	for _, bounds := range all {
		if candidate.MinY >= bounds.MaxY || candidate.MaxY <= bounds.MinY {
			continue
		}
		if candidate.Intersects(bounds) {
			return false
		}
	}
	return true
}

// FloorAreaBounds returns the footprint of one unit floor cell (a hole or
// lava square) centered on integer grid coordinates.
func FloorAreaBounds(areaX, areaZ float64) Bounds {
	return Bounds{
		BoxXZ: []Vec3{
			{X: areaX - 0.5, Z: areaZ - 0.5},
			{X: areaX - 0.5, Z: areaZ + 0.5},
			{X: areaX + 0.5, Z: areaZ + 0.5},
			{X: areaX + 0.5, Z: areaZ - 0.5},
		},
		MinY: 0,
		MaxY: 100,
	}
}
