package config

import "sort"

var Presets = map[string]*Config{
	"inner": withDefaults(func(c *Config) {}),
	"earth": withDefaults(func(c *Config) {
		c.Preset = "earth"
	}),
	"decade": withDefaults(func(c *Config) {
		c.Steps = 3650
		c.RecordEvery = 5
		c.TrailLimit = 2000
	}),
	"original": withDefaults(func(c *Config) {
		c.Integrator = "semi-implicit-sequential"
		c.MinDistance = 0
	}),
	"rk4": withDefaults(func(c *Config) {
		c.Integrator = "rk4"
	}),
}

func withDefaults(mod func(*Config)) *Config {
	c := DefaultConfig()
	mod(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := p.Clone()
	c.Name = name
	return c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var descriptions = map[string]string{
	"inner":    "sun with mercury, venus, earth and mars for one year",
	"earth":    "sun and earth for one year",
	"decade":   "inner planets for ten years with capped trails",
	"original": "in-order body updates and no force floor",
	"rk4":      "inner planets integrated with runge-kutta",
}

// Describe returns a one-line summary of the named preset.
func Describe(name string) string {
	return descriptions[name]
}
