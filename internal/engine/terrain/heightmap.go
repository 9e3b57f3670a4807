// Package terrain builds the base terrain mesh the grass pipeline tessellates.
package terrain

import (
	"github.com/verdantfx/grassfield/internal/engine/texture"
	"github.com/verdantfx/grassfield/pkg/math"
)

// Heightmap provides terrain height lookup over a tiled grid.
type Heightmap struct {
	noise    *texture.Texture
	TilesX   int
	TilesZ   int
	TileSize float32
	Amp      float32
	Freq     float32
}

// BuildHeightmap creates a deterministic value-noise heightmap.
func BuildHeightmap(tilesX, tilesZ int, tileSize, amp, freq float32, seed int64) *Heightmap {
	return &Heightmap{
		noise:    texture.ValueNoise(256, seed),
		TilesX:   tilesX,
		TilesZ:   tilesZ,
		TileSize: tileSize,
		Amp:      amp,
		Freq:     freq,
	}
}

// HeightAt returns the terrain height at a world position. The lookup is
// bilinear through the noise texture, so heights vary smoothly between grid
// points.
func (h *Heightmap) HeightAt(worldX, worldZ float32) float32 {
	u := worldX * h.Freq
	v := worldZ * h.Freq
	return h.noise.Sample(u, v).X * h.Amp
}

// Extent returns the world-space size of the terrain.
func (h *Heightmap) Extent() (width, depth float32) {
	return float32(h.TilesX) * h.TileSize, float32(h.TilesZ) * h.TileSize
}

// Center returns the world-space center of the terrain at ground level.
func (h *Heightmap) Center() math.Vec3 {
	w, d := h.Extent()
	return math.Vec3{X: w / 2, Y: h.HeightAt(w/2, d/2), Z: d / 2}
}
