package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 960 {
		t.Errorf("expected width 960, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 540 {
		t.Errorf("expected height 540, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.HDRAmbient {
		t.Error("expected hdr_ambient to be false by default")
	}

	if cfg.Grass.Density <= 0 {
		t.Errorf("expected positive default density, got %f", cfg.Grass.Density)
	}
	if cfg.Grass.BladeHeight <= 0 {
		t.Errorf("expected positive default blade height, got %f", cfg.Grass.BladeHeight)
	}
	if !cfg.Grass.PerspectiveBend {
		t.Error("expected perspective_bend on by default")
	}
	if cfg.Grass.BendMin >= cfg.Grass.BendMax {
		t.Errorf("expected bend_min < bend_max, got %f >= %f", cfg.Grass.BendMin, cfg.Grass.BendMax)
	}

	if cfg.Terrain.TilesX <= 0 || cfg.Terrain.TilesZ <= 0 {
		t.Error("expected positive default terrain dimensions")
	}

	if cfg.ParamServer.Enabled {
		t.Error("expected param server disabled by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "grassfield.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  hdr_ambient: true
  workers: 4

grass:
  blade_width: 0.1
  blade_height: 1.2
  density: 9
  wind_strength: 0.5
  perspective_bend: false

lighting:
  sun_latitude: 30
  point_lights:
    - position: [5, 1, 5]
      color: [1, 0.5, 0.2]
      range: 8
      intensity: 2

logging:
  level: "debug"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.HDRAmbient {
		t.Error("expected hdr_ambient true")
	}
	if cfg.Graphics.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Graphics.Workers)
	}

	if cfg.Grass.BladeHeight != 1.2 {
		t.Errorf("expected blade height 1.2, got %f", cfg.Grass.BladeHeight)
	}
	if cfg.Grass.Density != 9 {
		t.Errorf("expected density 9, got %f", cfg.Grass.Density)
	}
	if cfg.Grass.PerspectiveBend {
		t.Error("expected perspective_bend false after load")
	}

	// Values absent from the file keep their defaults.
	if cfg.Grass.WindSpeed != Default().Grass.WindSpeed {
		t.Errorf("expected default wind speed, got %f", cfg.Grass.WindSpeed)
	}

	if cfg.Lighting.SunLatitude != 30 {
		t.Errorf("expected sun latitude 30, got %f", cfg.Lighting.SunLatitude)
	}
	if len(cfg.Lighting.PointLights) != 1 {
		t.Fatalf("expected 1 point light, got %d", len(cfg.Lighting.PointLights))
	}
	if cfg.Lighting.PointLights[0].Range != 8 {
		t.Errorf("expected point light range 8, got %f", cfg.Lighting.PointLights[0].Range)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "grassfield.yaml")

	cfg := Default()
	cfg.Grass.Density = 3.5
	cfg.Graphics.Width = 640

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if loaded.Grass.Density != 3.5 {
		t.Errorf("expected density 3.5 after round trip, got %f", loaded.Grass.Density)
	}
	if loaded.Graphics.Width != 640 {
		t.Errorf("expected width 640 after round trip, got %d", loaded.Graphics.Width)
	}
}
