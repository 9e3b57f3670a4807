package terrain

import (
	"github.com/verdantfx/grassfield/internal/engine/grass"
	"github.com/verdantfx/grassfield/pkg/math"
)

// Mesh holds the base terrain geometry consumed by the grass pipeline.
type Mesh struct {
	Vertices []grass.BaseVertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// PatchCount returns the number of base triangles.
func (m *Mesh) PatchCount() int {
	return len(m.Indices) / 3
}

// Patch returns base triangle i as three vertices.
func (m *Mesh) Patch(i int) [3]grass.BaseVertex {
	return [3]grass.BaseVertex{
		m.Vertices[m.Indices[i*3]],
		m.Vertices[m.Indices[i*3+1]],
		m.Vertices[m.Indices[i*3+2]],
	}
}

// BuildMesh creates a terrain grid mesh from the heightmap, with smooth
// normals and UV-aligned tangents.
func BuildMesh(h *Heightmap) *Mesh {
	vertsX := h.TilesX + 1
	vertsZ := h.TilesZ + 1

	m := &Mesh{
		Vertices: make([]grass.BaseVertex, 0, vertsX*vertsZ),
		Indices:  make([]uint32, 0, h.TilesX*h.TilesZ*6),
	}
	bounds := Bounds{
		Min: math.Vec3{X: 1e10, Y: 1e10, Z: 1e10},
		Max: math.Vec3{X: -1e10, Y: -1e10, Z: -1e10},
	}

	for z := 0; z < vertsZ; z++ {
		for x := 0; x < vertsX; x++ {
			wx := float32(x) * h.TileSize
			wz := float32(z) * h.TileSize
			pos := math.Vec3{X: wx, Y: h.HeightAt(wx, wz), Z: wz}

			m.Vertices = append(m.Vertices, grass.BaseVertex{
				Position: pos,
				Normal:   h.normalAt(wx, wz),
				Tangent:  h.tangentAt(wx, wz),
				UV: math.Vec2{
					X: float32(x) / float32(h.TilesX),
					Y: float32(z) / float32(h.TilesZ),
				},
			})
			bounds = updateBounds(bounds, pos)
		}
	}

	for z := 0; z < h.TilesZ; z++ {
		for x := 0; x < h.TilesX; x++ {
			i := uint32(z*vertsX + x)
			// Two triangles per tile, diagonal from lower-left.
			m.Indices = append(m.Indices,
				i, i+1, i+uint32(vertsX),
				i+uint32(vertsX), i+1, i+uint32(vertsX)+1,
			)
		}
	}

	m.Bounds = bounds
	return m
}

// normalAt computes the surface normal via central differences.
func (h *Heightmap) normalAt(wx, wz float32) math.Vec3 {
	e := h.TileSize * 0.5
	dx := h.HeightAt(wx+e, wz) - h.HeightAt(wx-e, wz)
	dz := h.HeightAt(wx, wz+e) - h.HeightAt(wx, wz-e)
	return (math.Vec3{X: -dx, Y: 2 * e, Z: -dz}).Normalize()
}

// tangentAt is the +U surface direction, orthogonalized against the normal.
func (h *Heightmap) tangentAt(wx, wz float32) math.Vec3 {
	n := h.normalAt(wx, wz)
	t := math.Vec3{X: 1}
	// Gram-Schmidt against the normal.
	t = t.Sub(n.Scale(n.Dot(t))).Normalize()
	if t.Length() == 0 {
		t = math.Vec3{Z: 1}
	}
	return t
}

func updateBounds(b Bounds, p math.Vec3) Bounds {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
	return b
}
