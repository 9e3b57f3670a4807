package texture

import (
	"github.com/verdantfx/grassfield/pkg/math"
)

// Procedural fallback textures, used when no control maps are configured.
// They are deterministic so renders are reproducible across runs.

// Solid returns a 1x1 texture of a constant color.
func Solid(c math.Vec4) *Texture {
	t := New(1, 1)
	t.Set(0, 0, c)
	return t
}

// RadialFalloff builds a disk-shaped density falloff map: full density at
// the center (distance 0), fading to zero at the disk edge (max range). The
// density controller addresses it with direction-on-unit-circle UVs, so a
// hand-authored map can encode irregular, direction-dependent falloff.
func RadialFalloff(size int) *Texture {
	t := New(size, size)
	t.Address = Clamp
	half := float32(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float32(x) - half) / half
			dy := (float32(y) - half) / half
			d := math.Saturate(math.Sqrt(dx*dx + dy*dy))
			// Smooth quintic ease-out keeps density flat near the camera.
			f := 1 - d*d*d*(d*(d*6-15)+10)
			t.Set(x, y, math.Vec4{X: f, Y: f, Z: f, W: 1})
		}
	}
	return t
}

// ValueNoise builds a tiling hash-lattice value noise texture. Channel R
// carries the primary octave sum; G and B carry phase-shifted variants so
// one map can drive growth, wind and disruption lookups independently.
func ValueNoise(size int, seed int64) *Texture {
	t := New(size, size)
	const cells = 8
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			u := float32(x) / float32(size) * cells
			v := float32(y) / float32(size) * cells
			r := noise2(u, v, seed, cells)
			g := noise2(u, v, seed+101, cells)
			b := noise2(u, v, seed+202, cells)
			t.Set(x, y, math.Vec4{X: r, Y: g, Z: b, W: noise2(u, v, seed+303, cells)})
		}
	}
	return t
}

// noise2 is single-octave lattice value noise, tiling with the given period.
func noise2(x, y float32, seed int64, period int64) float32 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := fade(x - x0)
	fy := fade(y - y0)

	ix := int64(x0)
	iy := int64(y0)
	v00 := lattice(ix%period, iy%period, seed)
	v10 := lattice((ix+1)%period, iy%period, seed)
	v01 := lattice(ix%period, (iy+1)%period, seed)
	v11 := lattice((ix+1)%period, (iy+1)%period, seed)

	return math.Lerp(math.Lerp(v00, v10, fx), math.Lerp(v01, v11, fx), fy)
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}

// lattice maps an integer lattice point to [0,1], stable across runs.
func lattice(x, y, seed int64) float32 {
	v := uint64(x) + uint64(y)<<32 + uint64(seed)*0x9E3779B97F4A7C15
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return float32(v&0xFFFFFFFF) / float32(0xFFFFFFFF)
}
