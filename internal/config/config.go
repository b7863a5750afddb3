// Package config loads window, scene and physics settings. Defaults describe
// the reference scene; a YAML file and HEXAGON_* environment variables
// override them field by field.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/koteyur/physac-hexagon/internal/physics"
	"github.com/koteyur/physac-hexagon/internal/sim"
)

// DefaultPath is where the binary looks for a config file when none is given.
const DefaultPath = "config/hexagon.yaml"

// ErrInvalid is wrapped by validation failures.
var ErrInvalid = errors.New("invalid config")

// Config is the on-disk description of a run.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Scene   SceneConfig   `yaml:"scene"`
	Physics PhysicsConfig `yaml:"physics"`
}

// WindowConfig sizes the window and sets the update rate.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	TPS    int    `yaml:"tps"`
}

// SceneConfig places the container and the ball.
type SceneConfig struct {
	Center          [2]float64 `yaml:"center"`
	Radius          float64    `yaml:"radius"`
	Sides           int        `yaml:"sides"`
	StartAngle      float64    `yaml:"start_angle"`
	AngularVelocity float64    `yaml:"angular_velocity"`
	Ball            BallConfig `yaml:"ball"`
}

// BallConfig is the ball's starting state.
type BallConfig struct {
	Position [2]float64 `yaml:"position"`
	Velocity [2]float64 `yaml:"velocity"`
	Radius   float64    `yaml:"radius"`
}

// PhysicsConfig holds the forces and wall material.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"` // px/s², positive is down the screen
	Damping     float64 `yaml:"damping"` // 1/s
	Restitution float64 `yaml:"restitution"`
	Friction    float64 `yaml:"friction"`
	Overshoot   float64 `yaml:"overshoot"`
	Policy      string  `yaml:"policy"`
	MaxStep     float64 `yaml:"max_step"`
}

// Default returns the reference scene: an 800x800 window with a 250 px
// hexagon turning at 0.5 rad/s and a 15 px ball dropped from above center.
func Default() Config {
	m := physics.DefaultMaterial()
	return Config{
		Window: WindowConfig{
			Width:  800,
			Height: 800,
			Title:  "Bouncing ball in a spinning hexagon",
			TPS:    60,
		},
		Scene: SceneConfig{
			Center:          [2]float64{400, 400},
			Radius:          250,
			Sides:           physics.HexagonSides,
			AngularVelocity: 0.5,
			Ball: BallConfig{
				Position: [2]float64{400, 200},
				Radius:   15,
			},
		},
		Physics: PhysicsConfig{
			Gravity:     500,
			Damping:     0.02,
			Restitution: m.Restitution,
			Friction:    m.Friction,
			Overshoot:   m.Overshoot,
			Policy:      physics.ResolveAll.String(),
			MaxStep:     1.0 / 120,
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values; a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the parent directory.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Params maps the config onto simulation parameters.
func (c Config) Params() (sim.Params, error) {
	policy, err := physics.ParsePolicy(c.Physics.Policy)
	if err != nil {
		return sim.Params{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return sim.Params{
		Center:          mgl64.Vec2(c.Scene.Center),
		PolygonRadius:   c.Scene.Radius,
		Sides:           c.Scene.Sides,
		StartAngle:      c.Scene.StartAngle,
		AngularVelocity: c.Scene.AngularVelocity,
		BodyPosition:    mgl64.Vec2(c.Scene.Ball.Position),
		BodyVelocity:    mgl64.Vec2(c.Scene.Ball.Velocity),
		BodyRadius:      c.Scene.Ball.Radius,
		Gravity:         mgl64.Vec2{0, c.Physics.Gravity},
		Damping:         c.Physics.Damping,
		Material: physics.Material{
			Restitution: c.Physics.Restitution,
			Friction:    c.Physics.Friction,
			Overshoot:   c.Physics.Overshoot,
		},
		Policy:  policy,
		MaxStep: c.Physics.MaxStep,
	}, nil
}

// Validate checks the window settings and the derived simulation parameters.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS < 1 || c.Window.TPS > 1000 {
		return fmt.Errorf("%w: tps must be between 1 and 1000, got %d", ErrInvalid, c.Window.TPS)
	}
	if math.IsNaN(c.Physics.Gravity) || math.IsInf(c.Physics.Gravity, 0) {
		return fmt.Errorf("%w: gravity must be finite", ErrInvalid)
	}
	p, err := c.Params()
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
