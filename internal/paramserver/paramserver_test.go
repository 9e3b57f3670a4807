package paramserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/verdantfx/grassfield/internal/engine/grass"
	"github.com/verdantfx/grassfield/pkg/math"
)

func testTunables() Tunables {
	return Tunables{
		WindDirX:     1,
		WindDirZ:     0,
		WindSpeed:    0.6,
		WindStrength: 0.15,
		Density:      6,
		BendMin:      0.05,
		BendMax:      0.4,
		BaseColor:    [4]float32{0.05, 0.22, 0.03, 1},
		TipColor:     [4]float32{0.45, 0.65, 0.15, 1},
	}
}

func TestSnapshotIsolated(t *testing.T) {
	s := New(testTunables())
	snap := s.Snapshot()
	snap.Density = 99

	if s.Snapshot().Density != 6 {
		t.Error("mutating a snapshot leaked into the server state")
	}
}

func TestApplyFillsFrame(t *testing.T) {
	s := New(testTunables())

	var frame grass.FrameParams
	s.Apply(&frame)

	if frame.WindDir != (math.Vec3{X: 1}) {
		t.Errorf("WindDir = %v, want +X", frame.WindDir)
	}
	if frame.Density != 6 || frame.WindStrength != 0.15 {
		t.Errorf("tunables not applied: density %v, strength %v", frame.Density, frame.WindStrength)
	}
	if frame.TipColor != (math.Vec4{X: 0.45, Y: 0.65, Z: 0.15, W: 1}) {
		t.Errorf("TipColor = %v", frame.TipColor)
	}
}

func TestApplyNormalizesWindDir(t *testing.T) {
	tun := testTunables()
	tun.WindDirX = 3
	tun.WindDirZ = 4
	s := New(tun)

	var frame grass.FrameParams
	s.Apply(&frame)
	if d := math.Abs(frame.WindDir.Length() - 1); d > 1e-5 {
		t.Errorf("WindDir not normalized, length off by %v", d)
	}
}

func TestWebSocketUpdateRoundTrip(t *testing.T) {
	s := New(testTunables())

	srv := httptest.NewServer(http.HandlerFunc(s.handleWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// The server sends the current state first.
	var initial Tunables
	if err := conn.ReadJSON(&initial); err != nil {
		t.Fatalf("reading initial state: %v", err)
	}
	if initial != testTunables() {
		t.Errorf("initial state = %+v", initial)
	}

	if err := conn.WriteJSON(map[string]float32{"density": 9, "windStrength": 0.5}); err != nil {
		t.Fatalf("sending update: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		snap := s.Snapshot()
		if snap.Density == 9 && snap.WindStrength == 0.5 {
			if snap.BendMax != 0.4 {
				t.Errorf("partial update clobbered BendMax: %v", snap.BendMax)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("update not applied, state: %+v", snap)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
