package config

import "sort"

// Presets are whole configurations keyed by name. GetPreset returns a copy.
var Presets = map[string]func(*Config){
	"tiny": func(c *Config) {
		c.Sim.Worlds, c.Sim.Cams, c.Sim.Agents, c.Sim.Resolution = 1, 1, 1, 16
	},
	"default": func(c *Config) {},
	"crowd": func(c *Config) {
		c.Sim.Worlds, c.Sim.Agents = 64, 5
		c.Sim.Integrator = "euler"
		c.Sim.Policy = "sweep"
	},
	"balance": func(c *Config) {
		c.Sim.Agents = 3
		c.Sim.Policy = "lqr"
	},
	"panorama": func(c *Config) {
		c.Sim.Cams = 6
		c.Sim.Resolution = 48
	},
	"hires": func(c *Config) {
		c.Sim.Resolution = 128
		c.Overlay.PixelScale = 2
	},
	"device": func(c *Config) {
		c.Sim.ExecMode = "device"
		c.Device.Backend = "opengl"
	},
}

func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
