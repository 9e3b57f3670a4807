// Package config handles renderer configuration loading and management.
package config

// Config holds all renderer settings.
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Terrain     TerrainConfig     `yaml:"terrain"`
	Grass       GrassConfig       `yaml:"grass"`
	Lighting    LightingConfig    `yaml:"lighting"`
	ParamServer ParamServerConfig `yaml:"param_server"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// GraphicsConfig holds display and render-target settings.
type GraphicsConfig struct {
	Width       int  `yaml:"width"`
	Height      int  `yaml:"height"`
	Fullscreen  bool `yaml:"fullscreen"`
	VSync       bool `yaml:"vsync"`
	Workers     int  `yaml:"workers"`      // 0 = GOMAXPROCS
	HDRAmbient  bool `yaml:"hdr_ambient"`  // linear vs log-encoded ambient target
	RenderScale int  `yaml:"render_scale"` // output upscale factor for grassgen
}

// TerrainConfig holds base mesh generation settings.
type TerrainConfig struct {
	TilesX     int     `yaml:"tiles_x"`
	TilesZ     int     `yaml:"tiles_z"`
	TileSize   float32 `yaml:"tile_size"`
	HeightAmp  float32 `yaml:"height_amp"`
	NoiseFreq  float32 `yaml:"noise_freq"`
	Seed       int64   `yaml:"seed"`
}

// GrassConfig holds the grass material and pipeline settings.
type GrassConfig struct {
	// Texture paths; empty paths fall back to procedural defaults.
	AlbedoPath     string `yaml:"albedo"`
	GrowthPath     string `yaml:"growth_map"`
	WindPath       string `yaml:"wind_map"`
	DisruptionPath string `yaml:"disruption_map"`
	FalloffPath    string `yaml:"falloff_map"`
	PlacementPath  string `yaml:"placement_map"`

	BladeWidth  float32 `yaml:"blade_width"`
	BladeHeight float32 `yaml:"blade_height"`
	Density     float32 `yaml:"density"` // global tessellation multiplier

	MaxRange        float32 `yaml:"max_range"`         // density falloff radius
	PlacementTiling float32 `yaml:"placement_tiling"`  // world XZ -> mask UV scale

	WindDirX     float32 `yaml:"wind_dir_x"`
	WindDirZ     float32 `yaml:"wind_dir_z"`
	WindSpeed    float32 `yaml:"wind_speed"`
	WindStrength float32 `yaml:"wind_strength"`

	BendMin float32 `yaml:"bend_min"`
	BendMax float32 `yaml:"bend_max"`

	BaseColor [4]float32 `yaml:"base_color"`
	TipColor  [4]float32 `yaml:"tip_color"`

	PerspectiveBend bool `yaml:"perspective_bend"`
	WindHighlight   bool `yaml:"wind_highlight"`
}

// LightingConfig holds deferred resolve lighting settings.
type LightingConfig struct {
	SunLongitude float32      `yaml:"sun_longitude"` // degrees around Y
	SunLatitude  float32      `yaml:"sun_latitude"`  // degrees above horizon
	SunColor     [3]float32   `yaml:"sun_color"`
	SkyColor     [3]float32   `yaml:"sky_color"`
	GroundColor  [3]float32   `yaml:"ground_color"`
	PointLights  []PointLight `yaml:"point_lights"`
}

// PointLight configures one point light for the resolve pass.
type PointLight struct {
	Position  [3]float32 `yaml:"position"`
	Color     [3]float32 `yaml:"color"`
	Range     float32    `yaml:"range"`
	Intensity float32    `yaml:"intensity"`
}

// ParamServerConfig holds the live parameter feed settings.
type ParamServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:       960,
			Height:      540,
			Fullscreen:  false,
			VSync:       true,
			Workers:     0,
			HDRAmbient:  false,
			RenderScale: 1,
		},
		Terrain: TerrainConfig{
			TilesX:    32,
			TilesZ:    32,
			TileSize:  2.0,
			HeightAmp: 1.5,
			NoiseFreq: 0.08,
			Seed:      1337,
		},
		Grass: GrassConfig{
			BladeWidth:      0.06,
			BladeHeight:     0.8,
			Density:         6.0,
			MaxRange:        40.0,
			PlacementTiling: 0.05,
			WindDirX:        1.0,
			WindDirZ:        0.2,
			WindSpeed:       0.6,
			WindStrength:    0.15,
			BendMin:         0.05,
			BendMax:         0.4,
			BaseColor:       [4]float32{0.05, 0.22, 0.03, 1.0},
			TipColor:        [4]float32{0.45, 0.65, 0.15, 1.0},
			PerspectiveBend: true,
			WindHighlight:   true,
		},
		Lighting: LightingConfig{
			SunLongitude: 45,
			SunLatitude:  60,
			SunColor:     [3]float32{1.0, 0.96, 0.88},
			SkyColor:     [3]float32{0.35, 0.45, 0.6},
			GroundColor:  [3]float32{0.12, 0.1, 0.08},
		},
		ParamServer: ParamServerConfig{
			Enabled: false,
			Listen:  "127.0.0.1:8421",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
