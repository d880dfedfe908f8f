package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/planetsim/internal/dynamo"
	"github.com/san-kum/planetsim/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPreset      = "inner"
	DefaultIntegrator  = "semi-implicit"
	DefaultSteps       = 365
	DefaultRecordEvery = 1

	DefaultWidth    = 800
	DefaultHeight   = 800
	DefaultTitle    = "Planet Simulation"
	DefaultFPS      = 60
	DefaultPxPerAU  = 200.0
	DefaultFontSize = 16
)

// Config is one simulation setup. Preset names the body set; Name, when
// set, names the setup itself and labels its runs.
type Config struct {
	Name        string       `yaml:"name,omitempty"`
	Preset      string       `yaml:"preset"`
	Integrator  string       `yaml:"integrator"`
	Dt          float64      `yaml:"dt"`
	Steps       int          `yaml:"steps"`
	RecordEvery int          `yaml:"record_every"`
	G           float64      `yaml:"g"`
	MinDistance float64      `yaml:"min_distance"`
	TrailLimit  int          `yaml:"trail_limit"`
	Bodies      []BodyConfig `yaml:"bodies,omitempty"`
	Window      WindowConfig `yaml:"window"`
}

// BodyConfig describes one body in SI units. Color is a hex string such
// as "#6495ed".
type BodyConfig struct {
	Name    string  `yaml:"name"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	VX      float64 `yaml:"vx"`
	VY      float64 `yaml:"vy"`
	Mass    float64 `yaml:"mass"`
	Radius  float64 `yaml:"radius"`
	Color   string  `yaml:"color"`
	Primary bool    `yaml:"primary,omitempty"`
}

type WindowConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Title    string  `yaml:"title"`
	FPS      int     `yaml:"fps"`
	PxPerAU  float64 `yaml:"px_per_au"`
	FontSize int     `yaml:"font_size"`
}

// Scale converts PxPerAU into pixels per meter.
func (w WindowConfig) Scale() float64 { return w.PxPerAU / physics.AU }

func DefaultConfig() *Config {
	return &Config{
		Preset:      DefaultPreset,
		Integrator:  DefaultIntegrator,
		Dt:          physics.Day,
		Steps:       DefaultSteps,
		RecordEvery: DefaultRecordEvery,
		G:           physics.G,
		MinDistance: physics.DefaultMinDistance,
		Window: WindowConfig{
			Width:    DefaultWidth,
			Height:   DefaultHeight,
			Title:    DefaultTitle,
			FPS:      DefaultFPS,
			PxPerAU:  DefaultPxPerAU,
			FontSize: DefaultFontSize,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Label is Name, or the body preset for unnamed configs.
func (c *Config) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Preset
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cfg := *c
	cfg.Bodies = append([]BodyConfig(nil), c.Bodies...)
	return &cfg
}

func (c *Config) Validate() error {
	switch {
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrInvalidConfig, c.Dt)
	case c.Steps <= 0:
		return fmt.Errorf("%w: steps must be positive, got %d", dynamo.ErrInvalidConfig, c.Steps)
	case c.RecordEvery < 0:
		return fmt.Errorf("%w: record_every must not be negative", dynamo.ErrInvalidConfig)
	case c.G <= 0:
		return fmt.Errorf("%w: g must be positive, got %g", dynamo.ErrInvalidConfig, c.G)
	case c.MinDistance < 0:
		return fmt.Errorf("%w: min_distance must not be negative", dynamo.ErrInvalidConfig)
	case c.TrailLimit < 0:
		return fmt.Errorf("%w: trail_limit must not be negative", dynamo.ErrInvalidConfig)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window must be at least 1x1", dynamo.ErrInvalidConfig)
	}
	if len(c.Bodies) == 0 {
		if _, ok := physics.Presets[c.Preset]; !ok {
			return fmt.Errorf("%w: unknown preset %q", dynamo.ErrInvalidConfig, c.Preset)
		}
	}
	return nil
}

// BuildBodies returns fresh bodies from the explicit body list, or from the
// named physics preset when the list is empty.
func (c *Config) BuildBodies() ([]*dynamo.Body, error) {
	if len(c.Bodies) == 0 {
		ctor, ok := physics.Presets[c.Preset]
		if !ok {
			return nil, fmt.Errorf("%w: unknown preset %q", dynamo.ErrInvalidConfig, c.Preset)
		}
		return ctor(), nil
	}

	bodies := make([]*dynamo.Body, len(c.Bodies))
	for i, bc := range c.Bodies {
		b, err := bc.Body()
		if err != nil {
			return nil, err
		}
		bodies[i] = b
	}
	return bodies, nil
}

func (bc BodyConfig) Body() (*dynamo.Body, error) {
	col, err := ParseColor(bc.Color)
	if err != nil {
		return nil, fmt.Errorf("body %s: %w", bc.Name, err)
	}
	role := dynamo.RoleSatellite
	if bc.Primary {
		role = dynamo.RolePrimary
	}
	return &dynamo.Body{
		Name:   bc.Name,
		Pos:    dynamo.Vec{X: bc.X, Y: bc.Y},
		Vel:    dynamo.Vec{X: bc.VX, Y: bc.VY},
		Mass:   bc.Mass,
		Radius: bc.Radius,
		Color:  col,
		Role:   role,
	}, nil
}

// FromBodies is the inverse of BuildBodies, used to write a preset out as
// an editable body list.
func FromBodies(bodies []*dynamo.Body) []BodyConfig {
	out := make([]BodyConfig, len(bodies))
	for i, b := range bodies {
		out[i] = BodyConfig{
			Name:    b.Name,
			X:       b.Pos.X,
			Y:       b.Pos.Y,
			VX:      b.Vel.X,
			VY:      b.Vel.Y,
			Mass:    b.Mass,
			Radius:  b.Radius,
			Color:   FormatColor(b.Color),
			Primary: b.IsPrimary(),
		}
	}
	return out
}

// ParseColor accepts "#rrggbb" or "#rgb". An empty string is white.
func ParseColor(s string) (color.RGBA, error) {
	if s == "" {
		return physics.White, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q", dynamo.ErrInvalidConfig, s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func FormatColor(c color.RGBA) string {
	col, _ := colorful.MakeColor(c)
	return col.Hex()
}
