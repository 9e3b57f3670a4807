// Package renderer runs the full grass pipeline on the CPU: control map
// sampling, tessellation and blade synthesis in parallel over terrain
// patches, then rasterization into the G-buffer and the deferred lighting
// resolve. The output of a frame is a plain image, ready for display or
// encoding.
package renderer

import (
	"image"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/verdantfx/grassfield/internal/engine/deferred"
	"github.com/verdantfx/grassfield/internal/engine/gbuffer"
	"github.com/verdantfx/grassfield/internal/engine/grass"
	"github.com/verdantfx/grassfield/internal/engine/raster"
	"github.com/verdantfx/grassfield/internal/engine/terrain"
	"github.com/verdantfx/grassfield/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	// Workers is the geometry stage parallelism. Zero means GOMAXPROCS.
	Workers int

	// HDR selects linear ambient storage in the G-buffer.
	HDR bool
}

// FrameStats reports timing and volume for the last rendered frame.
type FrameStats struct {
	Triangles int
	Geometry  time.Duration
	Raster    time.Duration
	Resolve   time.Duration
}

// workerScratch is per-worker reusable storage, so steady-state frames
// allocate nothing in the geometry stage.
type workerScratch struct {
	subtris []grass.SubTriangle
	verts   grass.VertexBuffer
}

// Renderer owns the frame pipeline for one terrain and material.
type Renderer struct {
	config Config

	Material *grass.Material
	Mesh     *terrain.Mesh
	Features grass.Features
	Probe    grass.AmbientProbe
	Resolver deferred.Resolver

	sampler grass.AttributeSampler
	density grass.DensityController
	synth   grass.Synthesizer

	buf     *gbuffer.Buffer
	workers []workerScratch
	stats   FrameStats
}

// New creates a renderer for the given terrain and material.
func New(cfg Config, mat *grass.Material, mesh *terrain.Mesh, features grass.Features) *Renderer {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	r := &Renderer{
		config:   cfg,
		Material: mat,
		Mesh:     mesh,
		Features: features,
		sampler:  grass.AttributeSampler{Material: mat},
		density:  grass.DensityController{Material: mat},
		synth:    grass.Synthesizer{Material: mat, Features: features},
		buf:      gbuffer.New(cfg.Width, cfg.Height, cfg.HDR),
		workers:  make([]workerScratch, cfg.Workers),
	}

	logger.Info("renderer created",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("workers", cfg.Workers),
		zap.Int("patches", mesh.PatchCount()),
		zap.Bool("hdr", cfg.HDR),
	)
	return r
}

// RenderFrame runs the whole pipeline for one parameter snapshot and
// returns the lit frame.
func (r *Renderer) RenderFrame(frame *grass.FrameParams) *image.RGBA {
	start := time.Now()
	r.geometry(frame)
	r.stats.Geometry = time.Since(start)

	start = time.Now()
	r.buf.Clear()
	tris := 0
	for i := range r.workers {
		w := &r.workers[i]
		tris += w.verts.TriangleCount()
		raster.Draw(r.buf, w.verts.Verts, func(v grass.Vertex) gbuffer.Sample {
			return grass.ShadeFragment(v, r.Material, r.Probe, r.Features, frame)
		})
	}
	r.stats.Triangles = tris
	r.stats.Raster = time.Since(start)

	start = time.Now()
	img := r.Resolver.Resolve(r.buf, frame.ViewProj.Inverse())
	r.stats.Resolve = time.Since(start)

	logger.Debug("frame rendered",
		zap.Int("triangles", r.stats.Triangles),
		zap.Duration("geometry", r.stats.Geometry),
		zap.Duration("raster", r.stats.Raster),
		zap.Duration("resolve", r.stats.Resolve),
	)
	return img
}

// Stats returns timing and volume for the most recent frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// GBuffer exposes the filled G-buffer of the last frame, for inspection
// and offline output.
func (r *Renderer) GBuffer() *gbuffer.Buffer {
	return r.buf
}

// geometry fills the per-worker vertex buffers from the terrain patches.
// Patches are split into contiguous ranges, one per worker, so the
// concatenation of worker outputs is the same regardless of worker count.
func (r *Renderer) geometry(frame *grass.FrameParams) {
	count := r.Mesh.PatchCount()
	n := len(r.workers)
	chunk := (count + n - 1) / n

	var wg sync.WaitGroup
	for w := 0; w < n; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > count {
			hi = count
		}
		scratch := &r.workers[w]
		scratch.verts.Reset()
		if lo >= hi {
			continue
		}

		wg.Add(1)
		go func(lo, hi int, scratch *workerScratch) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				r.emitPatch(i, frame, scratch)
			}
		}(lo, hi, scratch)
	}
	wg.Wait()
}

// emitPatch runs sampling, tessellation and synthesis for one base triangle.
func (r *Renderer) emitPatch(i int, frame *grass.FrameParams, scratch *workerScratch) {
	base := r.Mesh.Patch(i)

	var patch [3]grass.ControlPoint
	for k := 0; k < 3; k++ {
		patch[k] = grass.ControlPoint{
			BaseVertex: base[k],
			Attributes: r.sampler.Sample(base[k].Position, frame),
			Density:    r.density.Factor(base[k].Position, frame),
		}
	}

	scratch.subtris = grass.Tessellate(patch, frame.Density, scratch.subtris[:0])
	for _, tri := range scratch.subtris {
		r.synth.Synthesize(tri, frame, &scratch.verts)
	}
}

// Vertices returns the merged geometry of the last frame in patch order.
// Primarily for tests and offline tooling; rendering consumes the worker
// buffers directly.
func (r *Renderer) Vertices() []grass.Vertex {
	var out []grass.Vertex
	for i := range r.workers {
		out = append(out, r.workers[i].verts.Verts...)
	}
	return out
}
