package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvGravity         = "HEXAGON_GRAVITY"
	EnvDamping         = "HEXAGON_DAMPING"
	EnvRestitution     = "HEXAGON_RESTITUTION"
	EnvFriction        = "HEXAGON_FRICTION"
	EnvAngularVelocity = "HEXAGON_ANGULAR_VELOCITY"
	EnvSides           = "HEXAGON_SIDES"
	EnvPolicy          = "HEXAGON_POLICY"
)

// LoadEnv loads a .env file into the process environment without replacing
// variables that are already set. A missing file is not an error.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: env %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with any HEXAGON_* variables that are set.
func ApplyEnv(cfg *Config) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{EnvGravity, &cfg.Physics.Gravity},
		{EnvDamping, &cfg.Physics.Damping},
		{EnvRestitution, &cfg.Physics.Restitution},
		{EnvFriction, &cfg.Physics.Friction},
		{EnvAngularVelocity, &cfg.Scene.AngularVelocity},
	}
	for _, f := range floats {
		v, ok := os.LookupEnv(f.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", f.key, err)
		}
		*f.dst = parsed
	}

	if v := os.Getenv(EnvSides); v != "" {
		sides, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvSides, err)
		}
		cfg.Scene.Sides = sides
	}
	if v := os.Getenv(EnvPolicy); v != "" {
		cfg.Physics.Policy = v
	}
	return nil
}
