package config

// Presets are named starting points for common generation setups.
var Presets = map[string]func() *Config{
	"default": DefaultConfig,
	"smooth": func() *Config {
		cfg := DefaultConfig()
		cfg.FPS = 30
		cfg.Substeps = 4
		return cfg
	},
	"heavy": func() *Config {
		cfg := DefaultConfig()
		cfg.MassMin = 5.0
		cfg.MassMax = 20.0
		cfg.SpeedMin = 1.0
		cfg.SpeedMax = 5.0
		cfg.Duration = 5.0
		return cfg
	},
	"fast": func() *Config {
		cfg := DefaultConfig()
		cfg.SpeedMin = 6.0
		cfg.SpeedMax = 12.0
		cfg.Duration = 2.0
		return cfg
	},
	"eval": func() *Config {
		cfg := DefaultConfig()
		cfg.Samples = 100
		cfg.Seed = 12345
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil when the
// name is unknown.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
