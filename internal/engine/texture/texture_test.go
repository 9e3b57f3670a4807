package texture

import (
	"testing"

	"github.com/verdantfx/grassfield/pkg/math"
)

func TestSampleTexelCenter(t *testing.T) {
	tex := New(2, 2)
	tex.Set(0, 0, math.Vec4{X: 1, W: 1})
	tex.Set(1, 0, math.Vec4{Y: 1, W: 1})
	tex.Set(0, 1, math.Vec4{Z: 1, W: 1})
	tex.Set(1, 1, math.Vec4{X: 1, Y: 1, W: 1})

	// UV at the center of texel (0,0) must return it exactly.
	got := tex.Sample(0.25, 0.25)
	want := math.Vec4{X: 1, W: 1}
	if got != want {
		t.Errorf("Sample(0.25, 0.25) = %v, want %v", got, want)
	}
}

func TestSampleBilinearMidpoint(t *testing.T) {
	tex := New(2, 1)
	tex.Set(0, 0, math.Vec4{X: 0, W: 1})
	tex.Set(1, 0, math.Vec4{X: 1, W: 1})
	tex.Address = Clamp

	got := tex.Sample(0.5, 0.5)
	if math.Abs(got.X-0.5) > 1e-5 {
		t.Errorf("midpoint sample X = %v, want 0.5", got.X)
	}
}

func TestAddressWrap(t *testing.T) {
	tex := New(2, 1)
	tex.Set(0, 0, math.Vec4{X: 0.2, W: 1})
	tex.Set(1, 0, math.Vec4{X: 0.8, W: 1})

	// Wrap: uv+1 samples the same texel.
	a := tex.Sample(0.25, 0.5)
	b := tex.Sample(1.25, 0.5)
	if a != b {
		t.Errorf("wrapped sample %v differs from base sample %v", b, a)
	}

	c := tex.Sample(-0.75, 0.5)
	if a != c {
		t.Errorf("negative wrapped sample %v differs from base sample %v", c, a)
	}
}

func TestAddressClamp(t *testing.T) {
	tex := New(2, 1)
	tex.Set(0, 0, math.Vec4{X: 0.2, W: 1})
	tex.Set(1, 0, math.Vec4{X: 0.8, W: 1})
	tex.Address = Clamp

	// Far out of range clamps to the edge texel.
	got := tex.Sample(5.0, 0.5)
	want := tex.At(1, 0)
	if got != want {
		t.Errorf("clamped sample = %v, want edge texel %v", got, want)
	}
}

func TestUVTransform(t *testing.T) {
	xf := UVTransform{TilingU: 2, TilingV: 3, OffsetU: 0.5, OffsetV: -1}
	u, v := xf.Apply(1, 1)
	if u != 2.5 || v != 2 {
		t.Errorf("Apply(1,1) = (%v, %v), want (2.5, 2)", u, v)
	}

	id := IdentityUV()
	u, v = id.Apply(0.3, 0.7)
	if u != 0.3 || v != 0.7 {
		t.Errorf("identity Apply(0.3, 0.7) = (%v, %v)", u, v)
	}
}

func TestValueNoiseDeterministic(t *testing.T) {
	a := ValueNoise(16, 42)
	b := ValueNoise(16, 42)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if a.At(x, y) != b.At(x, y) {
				t.Fatalf("noise not deterministic at (%d, %d)", x, y)
			}
		}
	}
}

func TestValueNoiseRange(t *testing.T) {
	n := ValueNoise(32, 7)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			c := n.At(x, y)
			for _, v := range []float32{c.X, c.Y, c.Z, c.W} {
				if v < 0 || v > 1 {
					t.Fatalf("noise value %v out of [0,1] at (%d, %d)", v, x, y)
				}
			}
		}
	}
}

func TestRadialFalloffEdges(t *testing.T) {
	f := RadialFalloff(65)
	center := f.At(32, 32)
	edge := f.At(64, 32)
	if center.X < 0.99 {
		t.Errorf("falloff at distance 0 = %v, want ~1", center.X)
	}
	if edge.X > 0.01 {
		t.Errorf("falloff at max distance = %v, want ~0", edge.X)
	}
	corner := f.At(0, 0)
	if corner.X > 0.01 {
		t.Errorf("falloff outside the disk = %v, want ~0", corner.X)
	}
}

func TestSolid(t *testing.T) {
	s := Solid(math.Vec4{X: 0.25, Y: 0.5, Z: 0.75, W: 1})
	got := s.Sample(10.3, -4.2)
	want := math.Vec4{X: 0.25, Y: 0.5, Z: 0.75, W: 1}
	if got != want {
		t.Errorf("solid sample = %v, want %v", got, want)
	}
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// Minimal 1x1 24-bit uncompressed TGA, top-to-bottom, pixel BGR = (10, 20, 30).
	data := []byte{
		0, 0, 2, // no ID, no color map, type 2
		0, 0, 0, 0, 0, // color map spec
		0, 0, 0, 0, // origin
		1, 0, 1, 0, // 1x1
		24, 0x20, // 24bpp, top-to-bottom
		10, 20, 30, // BGR
	}
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if r>>8 != 30 || g>>8 != 20 || b>>8 != 10 || a>>8 != 255 {
		t.Errorf("decoded pixel = (%d, %d, %d, %d), want (30, 20, 10, 255)", r>>8, g>>8, b>>8, a>>8)
	}
}
