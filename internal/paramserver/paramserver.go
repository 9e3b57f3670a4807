// Package paramserver exposes the tunable frame parameters over a
// websocket endpoint so wind, density and color can be adjusted while the
// renderer is running. The renderer reads a consistent snapshot at the
// start of every frame; updates never tear mid-frame.
package paramserver

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/verdantfx/grassfield/internal/engine/grass"
	"github.com/verdantfx/grassfield/internal/logger"
	"github.com/verdantfx/grassfield/pkg/math"
)

// Tunables are the runtime-adjustable frame parameters. Camera and time
// are owned by the viewer loop and are not part of this set.
type Tunables struct {
	WindDirX     float32 `json:"windDirX"`
	WindDirZ     float32 `json:"windDirZ"`
	WindSpeed    float32 `json:"windSpeed"`
	WindStrength float32 `json:"windStrength"`

	Density float32 `json:"density"`

	BendMin float32 `json:"bendMin"`
	BendMax float32 `json:"bendMax"`

	BaseColor [4]float32 `json:"baseColor"`
	TipColor  [4]float32 `json:"tipColor"`
}

// update is a partial Tunables; absent fields leave current values alone.
type update struct {
	WindDirX     *float32    `json:"windDirX"`
	WindDirZ     *float32    `json:"windDirZ"`
	WindSpeed    *float32    `json:"windSpeed"`
	WindStrength *float32    `json:"windStrength"`
	Density      *float32    `json:"density"`
	BendMin      *float32    `json:"bendMin"`
	BendMax      *float32    `json:"bendMax"`
	BaseColor    *[4]float32 `json:"baseColor"`
	TipColor     *[4]float32 `json:"tipColor"`
}

// Server holds the current tunables and serves the websocket endpoint.
type Server struct {
	mu  sync.RWMutex
	tun Tunables

	upgrader websocket.Upgrader
}

// New creates a server seeded with the given tunables.
func New(initial Tunables) *Server {
	return &Server{
		tun: initial,
		upgrader: websocket.Upgrader{
			// Local tooling connects from file:// pages and odd origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Snapshot returns a copy of the current tunables.
func (s *Server) Snapshot() Tunables {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tun
}

// Set replaces the current tunables.
func (s *Server) Set(t Tunables) {
	s.mu.Lock()
	s.tun = t
	s.mu.Unlock()
}

// Apply copies the current tunables into a frame parameter block.
func (s *Server) Apply(frame *grass.FrameParams) {
	t := s.Snapshot()
	frame.WindDir = math.Vec3{X: t.WindDirX, Z: t.WindDirZ}.Normalize()
	frame.WindSpeed = t.WindSpeed
	frame.WindStrength = t.WindStrength
	frame.Density = t.Density
	frame.BendMin = t.BendMin
	frame.BendMax = t.BendMax
	frame.BaseColor = math.Vec4{X: t.BaseColor[0], Y: t.BaseColor[1], Z: t.BaseColor[2], W: t.BaseColor[3]}
	frame.TipColor = math.Vec4{X: t.TipColor[0], Y: t.TipColor[1], Z: t.TipColor[2], W: t.TipColor[3]}
}

// ListenAndServe runs the HTTP server until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("param server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// handleWS serves one client: send the current tunables, then apply
// partial updates as they arrive.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	logger.Info("param client connected", zap.String("remote", conn.RemoteAddr().String()))

	if err := conn.WriteJSON(s.Snapshot()); err != nil {
		logger.Warn("initial state send failed", zap.Error(err))
		return
	}

	for {
		var msg update
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("param client read ended", zap.Error(err))
			}
			return
		}
		s.apply(msg)
	}
}

func (s *Server) apply(msg update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.WindDirX != nil {
		s.tun.WindDirX = *msg.WindDirX
	}
	if msg.WindDirZ != nil {
		s.tun.WindDirZ = *msg.WindDirZ
	}
	if msg.WindSpeed != nil {
		s.tun.WindSpeed = *msg.WindSpeed
	}
	if msg.WindStrength != nil {
		s.tun.WindStrength = *msg.WindStrength
	}
	if msg.Density != nil {
		s.tun.Density = *msg.Density
	}
	if msg.BendMin != nil {
		s.tun.BendMin = *msg.BendMin
	}
	if msg.BendMax != nil {
		s.tun.BendMax = *msg.BendMax
	}
	if msg.BaseColor != nil {
		s.tun.BaseColor = *msg.BaseColor
	}
	if msg.TipColor != nil {
		s.tun.TipColor = *msg.TipColor
	}

	logger.Debug("tunables updated",
		zap.Float32("density", s.tun.Density),
		zap.Float32("windStrength", s.tun.WindStrength),
	)
}
