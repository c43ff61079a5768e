package features

import (
	"math"
	"math/rand"
	"strings"

	"github.com/evalhouse/scenegen/internal/catalog"
	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/geom"
	"github.com/evalhouse/scenegen/internal/scene"
)

const (
	attachedRampMinWidth  = 0.5
	attachedRampMaxWidth  = 1.5
	attachedRampMinLength = 0.5
	attachedRampMaxLength = 3.0
	attachedRampMaxAngle  = 45.0

	platformWithLipsScaleMin = 0.8

	bottomPlatformBufferMin = geom.PerformerWidth
	bottomPlatformBufferMax = 5.0

	// LabelConnectedToRamp marks platforms reachable via an attached
	// ramp, for configurations that want to place objects on top.
	LabelConnectedToRamp = "connected_to_ramp"
)

// rampRotations is the per-edge yaw added to the platform's own rotation
// so an attached ramp always descends outward. Edges are indexed
// 0=left(-x), 1=back(-z), 2=right(+x), 3=front(+z).
var rampRotations = [4]float64{90, 180, -90, 0}

var gapSides = [4]scene.Side{scene.SideLeft, scene.SideBack, scene.SideRight, scene.SideFront}

// defaultAvailableLengths is used when the platform rotation is not a
// multiple of 90 degrees, where the edge-to-wall distances cannot be
// computed in pre-rotation space. Ramp runs are then only limited by the
// attached-ramp maximum.
var defaultAvailableLengths = [4]float64{10, 10, 10, 10}

type platformBuilder struct{}

func init() { Register(&platformBuilder{}) }

func (*platformBuilder) Type() string { return "platforms" }

func (*platformBuilder) Reconcile(sess *Session, source any) (any, error) {
	cfg, ok := source.(*config.PlatformConfig)
	if !ok {
		return nil, Configf("platforms: unexpected source type %T", source)
	}
	return cfg, nil
}

func (b *platformBuilder) Build(sess *Session, source any) ([]*scene.Instance, error) {
	cfg := source.(*config.PlatformConfig)
	rng := sess.RNG
	room := sess.Scene.RoomDimensions

	scale := cfg.Scale.Resolve(rng)
	if !cfg.Scale.IsSet() {
		scale = geom.Vec3{X: 1, Y: 1, Z: 1}
	}
	scale.Y = math.Min(scale.Y, room.Y)
	lips := cfg.Lips
	if cfg.LongWithTwoRamps {
		lips = config.LipsConfig{Front: true, Back: true, Left: true, Right: true}
	}
	if lips.Left || lips.Right {
		scale.X = math.Max(scale.X, platformWithLipsScaleMin)
	}
	if lips.Front || lips.Back {
		scale.Z = math.Max(scale.Z, platformWithLipsScaleMin)
	}

	rotationY := 0.0
	if cfg.RotationY.IsSet() {
		rotationY = cfg.RotationY.Resolve(rng)
	} else if !cfg.LongWithTwoRamps {
		rotationY = geom.ValidRotations[rng.Intn(len(geom.ValidRotations))]
	}

	position := randomFloorPosition(rng, room)
	if cfg.Position.IsSet() {
		position = cfg.Position.Resolve(rng)
	}

	// An elongated platform spans the room wall to wall on one randomly
	// chosen axis and splits the floor in two.
	useLongX := rng.Intn(2) == 0
	if cfg.LongWithTwoRamps {
		rotationY = 0
		if useLongX {
			scale.X = room.X
			position.X = 0
		} else {
			scale.Z = room.Z
			position.Z = 0
		}
	}

	adjacent := ""
	if len(cfg.AdjacentToWall) > 0 {
		adjacent = cfg.AdjacentToWall[rng.Intn(len(cfg.AdjacentToWall))]
		position.X, position.Z = adjacentToWallPosition(
			room, adjacent, position.X, position.Z, scale.X, scale.Z)
		rotationY = adjacentToWallRotation(adjacent, rotationY)
	}

	if cfg.AutoAdjust && scale.Y > room.Y-geom.PerformerHeight {
		scale.Y = room.Y - geom.PerformerHeight
	}

	mat, err := catalog.ResolveMaterial(rng, cfg.Material.Choices(), catalog.RoomWallMaterials, "")
	if err != nil {
		return nil, Configf("platforms: %v", err)
	}

	platform := newPlatform(mat, scale, position, rotationY, lips)
	if adjacent != "" {
		platform.Debug.AdjacentToWall = adjacent
	}
	instances := []*scene.Instance{platform}

	// Everything below is positioned in the platform's pre-rotation
	// frame, then rotated about the platform center at the very end.
	rotationPoint := platform.Position
	topPos := platform.Position
	topScale := scale

	var below *scene.Instance
	var belowPreRotPos, belowScale geom.Vec3
	if cfg.PlatformUnderneath {
		var err error
		below, belowPreRotPos, belowScale, err = b.buildPlatformBelow(
			sess, cfg, platform, rotationPoint)
		if err != nil {
			return nil, err
		}
		instances = append(instances, below)
	}

	rampCount := cfg.AttachedRamps.Resolve(rng)
	var shortEdges []string
	if cfg.LongWithTwoRamps {
		rampCount = 2
		if scale.X < scale.Z {
			shortEdges = []string{"x-", "x+"}
		} else {
			shortEdges = []string{"z-", "z+"}
		}
	}

	var localBounds []geom.Bounds
	if rampCount > 0 {
		available := defaultAvailableLengths
		if below != nil {
			available = spaceAroundPlatform(topPos, topScale, belowPreRotPos, belowScale)
		} else if math.Mod(rotationY, 90) == 0 {
			available = spaceAroundPlatform(topPos, topScale, geom.Vec3{}, room)
		}

		var gaps []gapRecord
		var usedEdges [4]bool
		for i := 0; i < rampCount; i++ {
			forced := ""
			if shortEdges != nil {
				forced = shortEdges[i]
			}
			ramp, gap, err := attachRamp(sess, &localBounds, topPos, topScale,
				rotationY, rotationPoint, mat, available, forced, &usedEdges)
			if err != nil {
				return nil, err
			}
			instances = append(instances, ramp)
			gaps = append(gaps, gap)
		}
		recordGaps(platform, gaps)
	}

	belowRamps := cfg.PlatformUnderneathAttachedRamps.Resolve(rng)
	if cfg.LongWithTwoRamps && below != nil {
		belowRamps = 2
	}
	if belowRamps > 0 && below != nil {
		available := defaultAvailableLengths
		if math.Mod(rotationY, 90) == 0 {
			available = spaceAroundPlatform(belowPreRotPos, belowScale, geom.Vec3{}, room)
		}
		belowMat, _ := catalog.ByID(below.Material)

		var gaps []gapRecord
		var usedEdges [4]bool
		for i := 0; i < belowRamps; i++ {
			forced := ""
			if shortEdges != nil && i < len(shortEdges) {
				forced = shortEdges[i]
			}
			ramp, gap, err := attachRamp(sess, &localBounds, belowPreRotPos,
				belowScale, rotationY, rotationPoint, belowMat, available, forced, &usedEdges)
			if err != nil {
				return nil, err
			}
			instances = append(instances, ramp)
			gaps = append(gaps, gap)
		}
		recordGaps(below, gaps)
	}

	return instances, nil
}

// Committed marks ramp-connected platforms so later features can target
// them by label.
func (b *platformBuilder) Committed(sess *Session, source any, instances []*scene.Instance) error {
	if len(instances) > 1 {
		sess.Label(instances[:1], LabelConnectedToRamp)
	}
	return nil
}

func newPlatform(mat catalog.Material, scale, position geom.Vec3, rotationY float64, lips config.LipsConfig) *scene.Instance {
	platform := scene.NewInstance("platforms", "cube")
	platform.Material = mat.ID
	platform.ColorTags = mat.Colors
	platform.Scale = scale
	platform.RotationY = math.Mod(rotationY+360, 360)
	platform.Position = geom.Vec3{X: position.X, Y: scale.Y/2 + position.Y, Z: position.Z}
	platform.StandingY = scale.Y / 2
	platform.Kinematic = true
	platform.Structure = true
	if lips.Enabled() {
		platform.Lips = &scene.Lips{
			Front: lips.Front, Back: lips.Back, Left: lips.Left, Right: lips.Right,
		}
	}
	platform.RecomputeBounds()
	return platform
}

// buildPlatformBelow adds a second, larger platform beneath the given
// one, scaled so the top platform plus the run its ramps need fits
// entirely on top.
func (b *platformBuilder) buildPlatformBelow(
	sess *Session,
	cfg *config.PlatformConfig,
	top *scene.Instance,
	rotationPoint geom.Vec3,
) (*scene.Instance, geom.Vec3, geom.Vec3, error) {
	rng := sess.RNG
	room := sess.Scene.RoomDimensions
	topScale := top.Scale
	maxRoomDim := math.Max(room.X, room.Z)
	topMinY := top.Position.Y - topScale.Y/2

	// topScale.Y doubles as the ramp length at the steepest allowed
	// angle, which is why the buffer grows with platform height.
	minBuffer := math.Max(topScale.Y+bottomPlatformBufferMin, topScale.Y*2)
	maxBuffer := math.Min(
		maxRoomDim-geom.PerformerWidth-math.Min(topScale.X, topScale.Z),
		topScale.Y+bottomPlatformBufferMax)

	scaleX := uniformIn(rng, topScale.X+minBuffer, topScale.X+maxBuffer)
	scaleZ := uniformIn(rng, topScale.Z+minBuffer, topScale.Z+maxBuffer)
	if cfg.LongWithTwoRamps {
		if topScale.X > topScale.Z {
			scaleX = topScale.X
		} else {
			scaleZ = topScale.Z
		}
	}

	x0 := underPlatformPosition(rng, top.Position.X, topScale.X, scaleX)
	z0 := underPlatformPosition(rng, top.Position.Z, topScale.Z, scaleZ)
	if cfg.LongWithTwoRamps {
		x0 = top.Position.X
		z0 = top.Position.Z
	}
	if len(cfg.AdjacentToWall) > 0 {
		x0, z0 = adjacentToWallPosition(
			room, cfg.AdjacentToWall[0], x0, z0, scaleX, scaleZ)
	}

	x, z := geom.RotatePointAround(x0, z0, rotationPoint.X, rotationPoint.Z, top.RotationY)

	mat, err := catalog.ResolveMaterial(
		rng, nil, catalog.RoomWallMaterials, top.Material)
	if err != nil {
		return nil, geom.Vec3{}, geom.Vec3{}, Configf("platforms: underneath: %v", err)
	}

	lips := cfg.Lips
	if cfg.LongWithTwoRamps {
		lips = config.LipsConfig{Front: true, Back: true, Left: true, Right: true}
	}

	belowScale := geom.Vec3{X: scaleX, Y: topMinY, Z: scaleZ}
	below := newPlatform(mat, belowScale, geom.Vec3{X: x, Z: z}, top.RotationY, lips)
	below.Debug.RandomPosition = true
	if len(cfg.AdjacentToWall) > 0 {
		below.Debug.AdjacentToWall = cfg.AdjacentToWall[0]
	}

	preRot := geom.Vec3{X: x0, Y: topMinY * 0.5, Z: z0}
	return below, preRot, belowScale, nil
}

// underPlatformPosition samples a center for the bottom platform along
// one axis such that the top platform stays entirely on it.
func underPlatformPosition(rng *rand.Rand, topCenter, topScale, bottomScale float64) float64 {
	min := topCenter + topScale*0.5 - bottomScale*0.5
	max := topCenter - topScale*0.5 + bottomScale*0.5
	return uniformIn(rng, min, max)
}

// gapRecord is one lip interruption before it is attached to its owner.
type gapRecord struct {
	side scene.Side
	low  float64
	high float64
}

// attachRamp finds a platform edge with room for a ramp up to the
// platform top at no more than the maximum angle, places the ramp
// somewhere along that edge, and reports the lip gap it creates. All
// math happens in the platform's pre-rotation frame; the final position
// is rotated about the platform center.
func attachRamp(
	sess *Session,
	localBounds *[]geom.Bounds,
	preRotPos, scale geom.Vec3,
	rotationY float64,
	rotationPoint geom.Vec3,
	mat catalog.Material,
	available [4]float64,
	forcedEdge string,
	usedEdges *[4]bool,
) (*scene.Instance, gapRecord, error) {
	rng := sess.RNG
	psx, psy, psz := scale.X, scale.Y, scale.Z
	performerBuffer := geom.PerformerHalfWidth * 2

	edgeChoices := []int{0, 1, 2, 3}
	if forcedEdge != "" {
		switch forcedEdge {
		case "x-":
			edgeChoices = []int{0}
		case "x+":
			edgeChoices = []int{2}
		case "z-":
			edgeChoices = []int{3}
		default:
			edgeChoices = []int{1}
		}
	} else {
		rng.Shuffle(len(edgeChoices), func(i, j int) {
			edgeChoices[i], edgeChoices[j] = edgeChoices[j], edgeChoices[i]
		})
	}

	edge := -1
	var rampWidth, rampLength float64
	for _, candidate := range edgeChoices {
		// Each ramp takes a whole edge out of play for its siblings.
		if usedEdges[candidate] {
			continue
		}
		maxLength := math.Min(available[candidate]-performerBuffer, attachedRampMaxLength)
		if maxLength <= 0 {
			continue
		}
		minLength := round4(psy / math.Tan(attachedRampMaxAngle*math.Pi/180))
		minLength = math.Max(minLength, attachedRampMinLength)

		angleNeeded := math.Atan(psy/maxLength) * 180 / math.Pi
		widthMax := math.Min(attachedRampMaxWidth, psx)
		if candidate%2 == 0 {
			widthMax = math.Min(attachedRampMaxWidth, psz)
		}
		if angleNeeded >= 0 && angleNeeded <= attachedRampMaxAngle &&
			maxLength > minLength && widthMax >= attachedRampMinWidth {
			rampWidth = uniformIn(rng, attachedRampMinWidth, widthMax)
			rampLength = uniformIn(rng, minLength, maxLength)
			edge = candidate
			break
		}
	}
	if edge < 0 {
		return nil, gapRecord{}, Placementf("platforms",
			"unable to attach ramp with angle at most %.0f degrees", attachedRampMaxAngle)
	}

	angle := math.Atan(psy/rampLength) * 180 / math.Pi
	rampY := preRotPos.Y - 0.5*psy

	// Sampling limits for the ramp center along the chosen edge, in the
	// pre-rotation frame, indexed by edge.
	xLimitOut := psx*0.5 + 0.5*rampLength
	xLimitIn := psx*0.5 - 0.5*rampWidth
	zLimitOut := psz*0.5 + 0.5*rampLength
	zLimitIn := psz*0.5 - 0.5*rampWidth
	xMin := [4]float64{-xLimitOut, -xLimitIn, xLimitOut, -xLimitIn}
	xMax := [4]float64{-xLimitOut, xLimitIn, xLimitOut, xLimitIn}
	zMin := [4]float64{-zLimitIn, -zLimitOut, -zLimitIn, zLimitOut}
	zMax := [4]float64{zLimitIn, -zLimitOut, zLimitIn, zLimitOut}

	relX := uniformIn(rng, xMin[edge], xMax[edge])
	relZ := uniformIn(rng, zMin[edge], zMax[edge])

	var gap gapRecord
	if edge%2 == 0 {
		gap = lipGap(relZ, rampWidth, psz, edge)
	} else {
		gap = lipGap(relX, rampWidth, psx, edge)
	}

	x, z := geom.RotatePointAround(
		relX+preRotPos.X, relZ+preRotPos.Z,
		rotationPoint.X, rotationPoint.Z, rotationY)

	ramp := newRamp(mat, rampWidth, rampLength, angle,
		geom.Vec3{X: x, Y: rampY, Z: z},
		math.Mod(rotationY+rampRotations[edge]+360, 360))
	ramp.Debug.RandomPosition = true

	all := append(sess.allBounds(false), *localBounds...)
	if !geom.ValidateLocation(ramp.Bounds,
		sess.Scene.PerformerStart.Position, all, sess.Scene.RoomDimensions) {
		return nil, gapRecord{}, Placementf("platforms",
			"no valid location to attach ramp, usually too many ramps for the available space")
	}
	*localBounds = append(*localBounds, ramp.Bounds)
	usedEdges[edge] = true
	return ramp, gap, nil
}

// lipGap converts a ramp's span along a platform edge into fractions of
// that edge's length. The direction reversal on the left and right edges
// is empirically matched to reference scenes; do not re-derive it.
func lipGap(rampRel, rampWidth, platScale float64, edge int) gapRecord {
	gap := gapRecord{
		side: gapSides[edge],
		low:  (rampRel - rampWidth*0.5 + platScale*0.5) / platScale,
		high: (rampRel + rampWidth*0.5 + platScale*0.5) / platScale,
	}
	if edge%2 == 0 {
		gap.low, gap.high = 1-gap.high, 1-gap.low
	}
	return gap
}

// recordGaps attaches gaps to the platform. Every gap lands in the debug
// record; only gaps on edges that actually carry a lip land in the lip
// record.
func recordGaps(platform *scene.Instance, gaps []gapRecord) {
	if len(gaps) == 0 {
		return
	}
	for _, gap := range gaps {
		g := scene.Gap{Low: gap.low, High: gap.high}
		if platform.Debug.Gaps == nil {
			platform.Debug.Gaps = make(map[scene.Side][]scene.Gap)
		}
		platform.Debug.Gaps[gap.side] = insertGapSorted(platform.Debug.Gaps[gap.side], g)
		if platform.Lips == nil || !platform.Lips.HasSide(gap.side) {
			continue
		}
		if platform.Lips.Gaps == nil {
			platform.Lips.Gaps = make(map[scene.Side][]scene.Gap)
		}
		platform.Lips.Gaps[gap.side] = insertGapSorted(platform.Lips.Gaps[gap.side], g)
	}
}

func insertGapSorted(gaps []scene.Gap, gap scene.Gap) []scene.Gap {
	gaps = append(gaps, gap)
	for i := len(gaps) - 1; i > 0 && gaps[i].Low < gaps[i-1].Low; i-- {
		gaps[i], gaps[i-1] = gaps[i-1], gaps[i]
	}
	return gaps
}

// spaceAroundPlatform measures the clear straight-line run outward from
// each edge of the top platform to the boundary of the bottom one (or
// the room). Both inputs are pre-rotation values sharing one rotation.
// Result is indexed by edge: left, back, right, front.
func spaceAroundPlatform(topPos, topScale, bottomPos, bottomScale geom.Vec3) [4]float64 {
	dposX := bottomPos.X - topPos.X
	dposZ := bottomPos.Z - topPos.Z
	dscaleX := bottomScale.X - topScale.X
	dscaleZ := bottomScale.Z - topScale.Z

	return [4]float64{
		-dposX + dscaleX/2, // left
		-dposZ + dscaleZ/2, // back
		dposX + dscaleX/2,  // right
		dposZ + dscaleZ/2,  // front
	}
}

// adjacentToWallPosition snaps a footprint flush against the named room
// wall or corner.
func adjacentToWallPosition(room geom.Vec3, wall string, posX, posZ, scaleX, scaleZ float64) (float64, float64) {
	xSide := 0.0
	if strings.Contains(wall, "right") {
		xSide = 1
	} else if strings.Contains(wall, "left") {
		xSide = -1
	}
	zSide := 0.0
	if strings.Contains(wall, "front") {
		zSide = 1
	} else if strings.Contains(wall, "back") {
		zSide = -1
	}
	if xSide != 0 {
		posX = room.X/2*xSide - scaleX/2*xSide
	}
	if zSide != 0 {
		posZ = room.Z/2*zSide - scaleZ/2*zSide
	}
	return posX, posZ
}

// adjacentToWallRotation forces the rotations that keep ramp attachment
// feasible for wall-snapped stacked platforms. The specific values are
// empirically tuned; changing them makes many configurations fail late.
func adjacentToWallRotation(wall string, rotationY float64) float64 {
	switch wall {
	case "left", "right":
		return 0
	case "back_right_corner", "front_left_corner":
		return 90
	case "front", "back":
		return 180
	case "back_left_corner", "front_right_corner":
		return 270
	}
	return rotationY
}

func uniformIn(rng *rand.Rand, a, b float64) float64 {
	if a > b {
		a, b = b, a
	}
	if a == b {
		return a
	}
	return a + rng.Float64()*(b-a)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
