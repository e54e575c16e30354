// Package config loads the universe viewer's YAML configuration.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the complete viewer configuration.
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Engine      EngineConfig      `yaml:"engine"`
	Camera      CameraConfig      `yaml:"camera"`
	Transition  TransitionConfig  `yaml:"transition"`
	Session     SessionConfig     `yaml:"session"`
	Logging     LoggingConfig     `yaml:"logging"`
	Communities []CommunityConfig `yaml:"communities"`
}

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// EngineConfig controls the tick and render loops.
type EngineConfig struct {
	TickRate         float64 `yaml:"tick_rate"`          // ticks per second
	RenderFrameLimit float64 `yaml:"render_frame_limit"` // 0 = uncapped
	Profiling        bool    `yaml:"profiling"`
	UpdateWorkers    int     `yaml:"update_workers"` // 0 = NumCPU-1
}

// CameraConfig holds the orbit camera limits.
type CameraConfig struct {
	Radius          float32 `yaml:"radius"`
	MinDistance     float32 `yaml:"min_distance"`
	MaxDistance     float32 `yaml:"max_distance"`
	ZoomSpeed       float32 `yaml:"zoom_speed"`
	AutoRotateSpeed float32 `yaml:"auto_rotate_speed"`
}

// TransitionConfig holds the focus animation timings.
type TransitionConfig struct {
	SpinRotations  float32       `yaml:"spin_rotations"`
	SpinDuration   time.Duration `yaml:"spin_duration"`
	DecelDuration  time.Duration `yaml:"decel_duration"`
	TravelDuration time.Duration `yaml:"travel_duration"`
	SettleDuration time.Duration `yaml:"settle_duration"`
	Standoff       []float32     `yaml:"standoff"`
}

// SessionConfig holds the input lockouts and search behaviour.
type SessionConfig struct {
	SearchLockout  time.Duration `yaml:"search_lockout"`
	ClickLockout   time.Duration `yaml:"click_lockout"`
	SearchDebounce time.Duration `yaml:"search_debounce"`
	MaxSuggestions int           `yaml:"max_suggestions"`
}

// LoggingConfig selects the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// CommunityConfig describes one community planet.
type CommunityConfig struct {
	Name        string    `yaml:"name"`
	Category    string    `yaml:"category"`
	Members     int       `yaml:"members"`
	Description string    `yaml:"description"`
	Color       string    `yaml:"color"`
	Size        float32   `yaml:"size"`
	Position    []float32 `yaml:"position"`
	OrbitSpeed  float32   `yaml:"orbit_speed"`
	OrbitRadius float32   `yaml:"orbit_radius"`
	Joined      bool      `yaml:"joined"`
	BannerURL   string    `yaml:"banner_url"`
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded default.yaml is invalid: %v", err))
	}
	return cfg
}

// Load reads a YAML configuration file. Missing values fall back to the embedded defaults,
// and an empty path returns Default().
//
// Parameters:
//   - path: path to the YAML file, or "" for the defaults
//
// Returns:
//   - *Config: the loaded configuration
//   - error: error if the file cannot be read, parsed, or validated
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML, fills defaults, and validates the result.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - *Config: the parsed configuration
//   - error: error if decoding or validation fails
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills zero values. Communities fall back to the embedded catalog
// only when none are configured.
func (c *Config) applyDefaults() {
	if c.Window.Title == "" {
		c.Window.Title = "Universe"
	}
	if c.Window.Width == 0 {
		c.Window.Width = 1280
	}
	if c.Window.Height == 0 {
		c.Window.Height = 720
	}

	if c.Engine.TickRate == 0 {
		c.Engine.TickRate = 60
	}

	if c.Camera.Radius == 0 {
		c.Camera.Radius = 15
	}
	if c.Camera.MinDistance == 0 {
		c.Camera.MinDistance = 8
	}
	if c.Camera.MaxDistance == 0 {
		c.Camera.MaxDistance = 30
	}
	if c.Camera.ZoomSpeed == 0 {
		c.Camera.ZoomSpeed = 0.8
	}
	if c.Camera.AutoRotateSpeed == 0 {
		c.Camera.AutoRotateSpeed = 0.5
	}

	if c.Transition.SpinRotations == 0 {
		c.Transition.SpinRotations = 3
	}
	if c.Transition.SpinDuration == 0 {
		c.Transition.SpinDuration = 1800 * time.Millisecond
	}
	if c.Transition.DecelDuration == 0 {
		c.Transition.DecelDuration = 800 * time.Millisecond
	}
	if c.Transition.TravelDuration == 0 {
		c.Transition.TravelDuration = 900 * time.Millisecond
	}
	if c.Transition.SettleDuration == 0 {
		c.Transition.SettleDuration = 350 * time.Millisecond
	}
	if len(c.Transition.Standoff) == 0 {
		c.Transition.Standoff = []float32{0, 0, 8}
	}

	if c.Session.SearchLockout == 0 {
		c.Session.SearchLockout = 3700 * time.Millisecond
	}
	if c.Session.ClickLockout == 0 {
		c.Session.ClickLockout = 1250 * time.Millisecond
	}
	if c.Session.SearchDebounce == 0 {
		c.Session.SearchDebounce = 200 * time.Millisecond
	}
	if c.Session.MaxSuggestions == 0 {
		c.Session.MaxSuggestions = 6
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if len(c.Communities) == 0 && defaultYAML != nil {
		var def Config
		if err := yaml.Unmarshal(defaultYAML, &def); err == nil {
			c.Communities = def.Communities
		}
	}
	for i := range c.Communities {
		if c.Communities[i].Size == 0 {
			c.Communities[i].Size = 1
		}
		if c.Communities[i].Color == "" {
			c.Communities[i].Color = "#28f5cc"
		}
	}
}

// Validate reports the first invalid setting wrapped in ErrInvalidConfig.
//
// Returns:
//   - error: nil when the configuration is usable
func (c *Config) Validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("%w: window size must be positive", ErrInvalidConfig)
	}
	if c.Engine.TickRate < 0 || c.Engine.RenderFrameLimit < 0 {
		return fmt.Errorf("%w: engine rates must not be negative", ErrInvalidConfig)
	}
	if c.Engine.UpdateWorkers < 0 {
		return fmt.Errorf("%w: engine.update_workers must not be negative", ErrInvalidConfig)
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MinDistance > c.Camera.MaxDistance {
		return fmt.Errorf("%w: camera distance bounds [%g, %g]", ErrInvalidConfig, c.Camera.MinDistance, c.Camera.MaxDistance)
	}
	if c.Camera.AutoRotateSpeed < 0 {
		return fmt.Errorf("%w: camera.auto_rotate_speed must not be negative", ErrInvalidConfig)
	}

	t := c.Transition
	if t.SpinRotations < 0 {
		return fmt.Errorf("%w: transition.spin_rotations must not be negative", ErrInvalidConfig)
	}
	for name, d := range map[string]time.Duration{
		"spin_duration":   t.SpinDuration,
		"decel_duration":  t.DecelDuration,
		"travel_duration": t.TravelDuration,
		"settle_duration": t.SettleDuration,
	} {
		if d < 0 {
			return fmt.Errorf("%w: transition.%s must not be negative", ErrInvalidConfig, name)
		}
	}
	if len(t.Standoff) != 3 || !finite(t.Standoff) {
		return fmt.Errorf("%w: transition.standoff must be three finite numbers", ErrInvalidConfig)
	}

	if c.Session.SearchLockout < 0 || c.Session.ClickLockout < 0 || c.Session.SearchDebounce < 0 {
		return fmt.Errorf("%w: session durations must not be negative", ErrInvalidConfig)
	}
	if c.Session.MaxSuggestions < 0 {
		return fmt.Errorf("%w: session.max_suggestions must not be negative", ErrInvalidConfig)
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %w", ErrInvalidConfig, err)
	}

	for i, cc := range c.Communities {
		if cc.Name == "" {
			return fmt.Errorf("%w: communities[%d] has no name", ErrInvalidConfig, i)
		}
		if len(cc.Position) != 3 || !finite(cc.Position) {
			return fmt.Errorf("%w: communities[%d] (%s) position must be three finite numbers", ErrInvalidConfig, i, cc.Name)
		}
		if cc.Size < 0 || cc.OrbitRadius < 0 {
			return fmt.Errorf("%w: communities[%d] (%s) size and orbit radius must not be negative", ErrInvalidConfig, i, cc.Name)
		}
	}
	return nil
}

// ZapLevel returns the configured logging level. Validate guarantees it parses.
func (l LoggingConfig) ZapLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func finite(values []float32) bool {
	for _, v := range values {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
