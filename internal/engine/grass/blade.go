package grass

import (
	gomath "math"

	"github.com/verdantfx/grassfield/pkg/math"
)

const (
	// MinBladeHeight is the cull threshold: blades shorter than this emit no
	// geometry at all. Degenerate zero-size quads would still rasterize and
	// produce lighting artifacts at shared edges, so the blade is discarded
	// outright.
	MinBladeHeight = 0.05

	// rootFraction is the portion of the blade height occupied by the
	// undeformed root quad that anchors it to the ground.
	rootFraction = 0.2

	// flattenLift raises a flattened tip slightly to avoid z-fighting with
	// the root it folds over.
	flattenLift = 0.01

	// normalUpBias blends the side-facing normal toward up at roughly 20:1
	// side to up, keeping lighting off the exact blade edge.
	normalUpBias = 0.05
)

// Synthesizer emits blade geometry for qualifying sub-triangles.
type Synthesizer struct {
	Material *Material
	Features Features
}

// Synthesize builds one grass blade for the sub-triangle and appends its
// vertices to out: either nothing (below the height cull) or 12 vertices
// forming two stacked quads. Attributes are taken from corner 0, which at
// tessellation-level fineness is representative of the whole sub-triangle.
func (s *Synthesizer) Synthesize(tri SubTriangle, frame *FrameParams, out *VertexBuffer) {
	rep := tri[0]

	flattenMod := math.Saturate(rep.Disruption.X)
	cutMod := math.Saturate(rep.Disruption.Y)
	burnMod := math.Saturate(rep.Disruption.Z)
	growthMod := math.Saturate(rep.Disruption.W)

	width := math.Lerp(0, s.Material.BladeWidth, growthMod)
	height := math.Lerp(0, rep.GrowthHeight, growthMod)
	if height < MinBladeHeight {
		return
	}

	origin := tri[0].Position.
		Add(tri[1].Position).
		Add(tri[2].Position).Scale(1.0 / 3.0)

	// Tangent space to local rotation, then a per-blade random twist about
	// the local up axis. The twist angle is a pure function of the blade
	// position, so orientation is stable across frames and camera movement.
	normal := rep.Normal.Normalize()
	tangent := rep.Tangent.Normalize()
	bitangent := normal.Cross(tangent).Normalize()
	basis := math.Mat3FromCols(tangent, bitangent, normal)
	rot := basis.Mul(math.RotateAxis3(math.Vec3{Z: 1}, bladeAngle(origin)))

	// Root quad: lower 20% of the blade, never deformed.
	hw := width / 2
	rootH := height * rootFraction
	rootBL := origin.Add(rot.MulVec3(math.Vec3{X: -hw}))
	rootBR := origin.Add(rot.MulVec3(math.Vec3{X: hw}))
	rootTL := origin.Add(rot.MulVec3(math.Vec3{X: -hw, Z: rootH}))
	rootTR := origin.Add(rot.MulVec3(math.Vec3{X: hw, Z: rootH}))

	// Deformation axes come from the emitted root corners, not the original
	// tangent frame: the random twist has already changed the effective axes.
	up := rootTL.Sub(rootBL).Normalize()
	right := rootBR.Sub(rootBL).Normalize()
	left := right.Neg()
	forward := right.Cross(up).Normalize()

	tipLen := height - rootH
	tipLL := rootTL
	tipLR := rootTR
	tipUL := rootTL.Add(up.Scale(tipLen))
	tipUR := rootTR.Add(up.Scale(tipLen))

	rootMid := rootBL.Add(rootBR).Scale(0.5)

	var bendAngle float32
	if flattenMod > 0 {
		// Trampled grass: fold the tip over and keep it rigid; wind and
		// perspective bend never apply on top of flattening.
		angle := math.Pi * flattenMod * 0.5
		tipLL = rootMid.Add(tipLL.Sub(rootMid).RotateAround(forward, angle))
		tipLR = rootMid.Add(tipLR.Sub(rootMid).RotateAround(forward, angle))

		flatUp := up.RotateAround(forward, angle)
		lift := up.Scale(flattenLift)
		tipUL = tipLL.Add(flatUp.Scale(tipLen)).Add(lift)
		tipUR = tipLR.Add(flatUp.Scale(tipLen)).Add(lift)
	} else {
		// The wind component in the blade plane is the bend axis; wind
		// blowing flat against the face (parallel to forward) has zero
		// effective length and bends nothing.
		proj := rep.WindDir.Sub(forward.Scale(rep.WindDir.Dot(forward)))
		if l := proj.Length(); l > 1e-5 {
			bendAngle = math.Pi * math.Saturate(frame.WindStrength*l)
			if bendAngle > 0 {
				axis := proj.Scale(1 / l)
				tipUL = rootMid.Add(tipUL.Sub(rootMid).RotateAround(axis, bendAngle))
				tipUR = rootMid.Add(tipUR.Sub(rootMid).RotateAround(axis, bendAngle))
			}
		}

		if s.Features.PerspectiveBend {
			tipLL, tipLR = s.perspectiveShear(origin, right, left, forward, tipLL, tipLR, frame)
		}
	}

	// The visible face gets a normal biased toward the camera; blades are
	// single-sided quads rendered without backface culling.
	side := right
	if right.Dot(frame.CameraPos.Sub(origin)) <= 0 {
		side = left
	}
	bladeNormal := side.Add(up.Scale(normalUpBias)).Normalize()

	emit := func(p math.Vec3, u, v float32) {
		out.Verts = append(out.Verts, Vertex{
			Position: p,
			Clip:     frame.ViewProj.MulVec4(math.Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1}),
			Normal:   bladeNormal,
			UV:       math.Vec2{X: u, Y: v},
			CutMod:   cutMod,
			BurnMod:  burnMod,
			WindBend: bendAngle,
		})
	}

	// Root quad.
	emit(rootBL, 0, 0)
	emit(rootBR, 1, 0)
	emit(rootTL, 0, rootFraction)
	emit(rootTL, 0, rootFraction)
	emit(rootBR, 1, 0)
	emit(rootTR, 1, rootFraction)

	// Tip quad.
	emit(tipLL, 0, rootFraction)
	emit(tipLR, 1, rootFraction)
	emit(tipUL, 0, 1)
	emit(tipUL, 0, 1)
	emit(tipLR, 1, rootFraction)
	emit(tipUR, 1, 1)
}

// perspectiveShear pushes the tip quad's lower corners sideways, toward the
// side most opposing the camera view, hiding the missing blade thickness at
// grazing view angles.
func (s *Synthesizer) perspectiveShear(origin, right, left, forward math.Vec3, tipLL, tipLR math.Vec3, frame *FrameParams) (math.Vec3, math.Vec3) {
	view := origin.Sub(frame.CameraPos)
	viewXZ := (math.Vec3{X: view.X, Z: view.Z}).Normalize()
	if viewXZ.Length() == 0 {
		return tipLL, tipLR
	}

	rightDot := right.X*viewXZ.X + right.Z*viewXZ.Z
	axis := right
	if rightDot > 0 {
		axis = left
	}

	// Grazing views (view parallel to the blade's right axis) get the full
	// shear; head-on views barely any.
	alignment := math.Abs(rightDot)
	amount := math.Lerp(frame.BendMin, frame.BendMax, alignment)

	return tipLL.Add(axis.Scale(amount)), tipLR.Add(axis.Scale(amount))
}

// bladeAngle hashes a blade position to a twist angle in [-1,1] radians.
// Equal positions produce bit-identical angles.
func bladeAngle(p math.Vec3) float32 {
	h := uint64(gomath.Float32bits(p.X))
	h |= uint64(gomath.Float32bits(p.Y)) << 32
	h = splitmix(h)
	h ^= uint64(gomath.Float32bits(p.Z))
	h = splitmix(h)
	return float32(h&0xFFFFFF)/float32(0xFFFFFF)*2 - 1
}

func splitmix(v uint64) uint64 {
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}
