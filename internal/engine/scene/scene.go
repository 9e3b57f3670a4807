// Package scene assembles a renderable scene from configuration: terrain,
// grass material, lighting and the frame renderer.
package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/verdantfx/grassfield/internal/config"
	"github.com/verdantfx/grassfield/internal/engine/deferred"
	"github.com/verdantfx/grassfield/internal/engine/grass"
	"github.com/verdantfx/grassfield/internal/engine/lighting"
	"github.com/verdantfx/grassfield/internal/engine/renderer"
	"github.com/verdantfx/grassfield/internal/engine/terrain"
	"github.com/verdantfx/grassfield/internal/engine/texture"
	"github.com/verdantfx/grassfield/internal/logger"
	"github.com/verdantfx/grassfield/pkg/math"
)

// Scene holds everything needed to render frames of one grass field.
type Scene struct {
	Heightmap *terrain.Heightmap
	Mesh      *terrain.Mesh
	Material  *grass.Material
	Renderer  *renderer.Renderer
}

// Build constructs the scene from configuration. Missing texture paths
// fall back to the procedural defaults.
func Build(cfg *config.Config) (*Scene, error) {
	hm := terrain.BuildHeightmap(
		cfg.Terrain.TilesX,
		cfg.Terrain.TilesZ,
		cfg.Terrain.TileSize,
		cfg.Terrain.HeightAmp,
		cfg.Terrain.NoiseFreq,
		cfg.Terrain.Seed,
	)
	mesh := terrain.BuildMesh(hm)

	mat, err := buildMaterial(&cfg.Grass)
	if err != nil {
		return nil, fmt.Errorf("building grass material: %w", err)
	}

	features := grass.Features{
		PerspectiveBend: cfg.Grass.PerspectiveBend,
		WindHighlight:   cfg.Grass.WindHighlight,
	}

	r := renderer.New(renderer.Config{
		Width:   cfg.Graphics.Width,
		Height:  cfg.Graphics.Height,
		Workers: cfg.Graphics.Workers,
		HDR:     cfg.Graphics.HDRAmbient,
	}, mat, mesh, features)

	r.Probe = grass.AmbientProbe{
		Sky:    vec3(cfg.Lighting.SkyColor),
		Ground: vec3(cfg.Lighting.GroundColor),
	}

	lights := lighting.NewSet()
	for _, pl := range cfg.Lighting.PointLights {
		if !lights.Add(lighting.PointLight{
			Position:  vec3(pl.Position),
			Color:     vec3(pl.Color),
			Range:     pl.Range,
			Intensity: pl.Intensity,
		}) {
			logger.Warn("point light limit reached, ignoring extra lights",
				zap.Int("max", lighting.MaxPointLights))
			break
		}
	}

	r.Resolver = deferred.Resolver{
		Sun: lighting.SunFromAngles(
			cfg.Lighting.SunLongitude,
			cfg.Lighting.SunLatitude,
			vec3(cfg.Lighting.SunColor),
		),
		Lights:     lights,
		Background: vec3(cfg.Lighting.SkyColor),
	}

	return &Scene{
		Heightmap: hm,
		Mesh:      mesh,
		Material:  mat,
		Renderer:  r,
	}, nil
}

// BaseFrame returns a frame parameter block seeded from the grass
// configuration. Camera fields and time are filled in per frame by the
// caller.
func (s *Scene) BaseFrame(cfg *config.GrassConfig) grass.FrameParams {
	return grass.FrameParams{
		WindDir:      math.Vec3{X: cfg.WindDirX, Z: cfg.WindDirZ}.Normalize(),
		WindSpeed:    cfg.WindSpeed,
		WindStrength: cfg.WindStrength,
		Density:      cfg.Density,
		BendMin:      cfg.BendMin,
		BendMax:      cfg.BendMax,
		BaseColor:    vec4(cfg.BaseColor),
		TipColor:     vec4(cfg.TipColor),
	}
}

// buildMaterial loads the configured control textures over the procedural
// defaults.
func buildMaterial(cfg *config.GrassConfig) (*grass.Material, error) {
	mat := grass.DefaultMaterial()
	mat.BladeWidth = cfg.BladeWidth
	mat.BladeHeight = cfg.BladeHeight
	mat.MaxRange = cfg.MaxRange
	mat.PlacementTiling = cfg.PlacementTiling

	load := func(path string, dst **texture.Texture) error {
		if path == "" {
			return nil
		}
		tex, err := texture.LoadFile(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		*dst = tex
		logger.Debug("control texture loaded",
			zap.String("path", path),
			zap.Int("width", tex.Width()),
			zap.Int("height", tex.Height()),
		)
		return nil
	}

	if err := load(cfg.AlbedoPath, &mat.Albedo); err != nil {
		return nil, err
	}
	if err := load(cfg.GrowthPath, &mat.Growth); err != nil {
		return nil, err
	}
	if err := load(cfg.WindPath, &mat.Wind); err != nil {
		return nil, err
	}
	if err := load(cfg.DisruptionPath, &mat.Disruption); err != nil {
		return nil, err
	}
	if err := load(cfg.FalloffPath, &mat.Falloff); err != nil {
		return nil, err
	}
	if err := load(cfg.PlacementPath, &mat.Placement); err != nil {
		return nil, err
	}
	return mat, nil
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func vec4(v [4]float32) math.Vec4 {
	return math.Vec4{X: v[0], Y: v[1], Z: v[2], W: v[3]}
}
