package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/koteyur/physac-hexagon/internal/physics"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesOnlyPresentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexagon.yaml")
	data := []byte(`
scene:
  angular_velocity: 0
  sides: 8
  ball:
    velocity: [120, -30]
physics:
  restitution: 0.75
  policy: first
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	def := Default()
	if cfg.Scene.AngularVelocity != 0 || cfg.Scene.Sides != 8 {
		t.Fatalf("scene = %+v, want angular_velocity 0 and 8 sides", cfg.Scene)
	}
	if cfg.Scene.Ball.Velocity != [2]float64{120, -30} {
		t.Fatalf("ball velocity = %v, want [120 -30]", cfg.Scene.Ball.Velocity)
	}
	if cfg.Scene.Ball.Position != def.Scene.Ball.Position || cfg.Scene.Ball.Radius != def.Scene.Ball.Radius {
		t.Fatalf("ball = %+v, want default position and radius", cfg.Scene.Ball)
	}
	if cfg.Physics.Restitution != 0.75 || cfg.Physics.Gravity != def.Physics.Gravity {
		t.Fatalf("physics = %+v, want restitution 0.75 and default gravity", cfg.Physics)
	}
	if cfg.Window != def.Window {
		t.Fatalf("window = %+v, want defaults", cfg.Window)
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("Params() error = %v", err)
	}
	if p.Policy != physics.ResolveFirst {
		t.Fatalf("policy = %v, want first", p.Policy)
	}
	if p.Gravity != (mgl64.Vec2{0, def.Physics.Gravity}) {
		t.Fatalf("gravity = %v, want straight down", p.Gravity)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("scene: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load() error = nil, want parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hexagon.yaml")
	want := Default()
	want.Scene.Sides = 5
	want.Physics.Friction = 0.3
	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{name: "zero width", modify: func(c *Config) { c.Window.Width = 0 }},
		{name: "tps too high", modify: func(c *Config) { c.Window.TPS = 5000 }},
		{name: "unknown policy", modify: func(c *Config) { c.Physics.Policy = "sometimes" }},
		{name: "restitution", modify: func(c *Config) { c.Physics.Restitution = 1.5 }},
		{name: "ball too large", modify: func(c *Config) { c.Scene.Ball.Radius = 300 }},
		{name: "two sides", modify: func(c *Config) { c.Scene.Sides = 2 }},
		{name: "nan restitution", modify: func(c *Config) { c.Physics.Restitution = math.NaN() }},
		{name: "infinite angular velocity", modify: func(c *Config) { c.Scene.AngularVelocity = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvGravity, "980")
	t.Setenv(EnvFriction, "0.2")
	t.Setenv(EnvSides, "7")
	t.Setenv(EnvPolicy, "first")

	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Physics.Gravity != 980 || cfg.Physics.Friction != 0.2 {
		t.Fatalf("physics = %+v, want gravity 980 friction 0.2", cfg.Physics)
	}
	if cfg.Scene.Sides != 7 || cfg.Physics.Policy != "first" {
		t.Fatalf("sides=%d policy=%q, want 7 and first", cfg.Scene.Sides, cfg.Physics.Policy)
	}
	if cfg.Physics.Restitution != Default().Physics.Restitution {
		t.Fatalf("restitution changed without its variable set")
	}
}

func TestApplyEnvBadNumber(t *testing.T) {
	t.Setenv(EnvRestitution, "bouncy")
	cfg := Default()
	if err := ApplyEnv(&cfg); err == nil {
		t.Fatalf("ApplyEnv() error = nil, want parse error")
	}
}

func TestApplyEnvNonFiniteFailsValidate(t *testing.T) {
	for _, key := range []string{EnvRestitution, EnvFriction, EnvAngularVelocity, EnvDamping} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "NaN")
			cfg := Default()
			if err := ApplyEnv(&cfg); err != nil {
				t.Fatalf("ApplyEnv() error = %v", err)
			}
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("HEXAGON_DAMPING=0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvDamping, "")
	os.Unsetenv(EnvDamping)

	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Physics.Damping != 0.5 {
		t.Fatalf("damping = %f, want 0.5", cfg.Physics.Damping)
	}
	if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadEnv(missing) error = %v, want nil", err)
	}
}
