package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/collidegen/internal/collision"
)

const (
	DefaultMassMin        = 1.0
	DefaultMassMax        = 5.0
	DefaultSpeedMin       = 2.0
	DefaultSpeedMax       = 8.0
	DefaultWorldWidth     = 14.0
	DefaultStartA         = 2.0
	DefaultStartB         = 12.0
	DefaultContactRadius  = 0.5
	DefaultDuration       = 3.0
	DefaultFPS            = 10
	DefaultSubsteps       = 1
	DefaultMinSeparation  = 2.0
	DefaultImageWidth     = 800
	DefaultImageHeight    = 300
	DefaultPixelsPerMeter = 50.0
	DefaultBallRadius     = 30
)

type Config struct {
	Samples   int    `yaml:"samples"`
	Seed      int64  `yaml:"seed"`
	OutputDir string `yaml:"output_dir"`
	Workers   int    `yaml:"workers"`

	MassMin  float64 `yaml:"mass_min"`
	MassMax  float64 `yaml:"mass_max"`
	SpeedMin float64 `yaml:"speed_min"`
	SpeedMax float64 `yaml:"speed_max"`

	// World geometry in meters. ContactRadius is the physical radius used
	// for contact timing; the rendered radii scale with mass instead.
	WorldWidth    float64 `yaml:"world_width"`
	StartA        float64 `yaml:"start_a"`
	StartB        float64 `yaml:"start_b"`
	ContactRadius float64 `yaml:"contact_radius"`

	Duration      float64 `yaml:"duration"`
	FPS           int     `yaml:"fps"`
	Substeps      int     `yaml:"substeps"`
	MinSeparation float64 `yaml:"min_separation"`

	Image ImageConfig `yaml:"image"`
	Video VideoConfig `yaml:"video"`
}

type ImageConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	PixelsPerMeter float64 `yaml:"pixels_per_meter"`
	BallRadius     int     `yaml:"ball_radius"`
	ShowArrows     bool    `yaml:"show_arrows"`
	ShowLabels     bool    `yaml:"show_labels"`
}

type VideoConfig struct {
	Enabled bool `yaml:"enabled"`
}

func DefaultConfig() *Config {
	return &Config{
		Samples:       10,
		OutputDir:     "out",
		Workers:       4,
		MassMin:       DefaultMassMin,
		MassMax:       DefaultMassMax,
		SpeedMin:      DefaultSpeedMin,
		SpeedMax:      DefaultSpeedMax,
		WorldWidth:    DefaultWorldWidth,
		StartA:        DefaultStartA,
		StartB:        DefaultStartB,
		ContactRadius: DefaultContactRadius,
		Duration:      DefaultDuration,
		FPS:           DefaultFPS,
		Substeps:      DefaultSubsteps,
		MinSeparation: DefaultMinSeparation,
		Image: ImageConfig{
			Width:          DefaultImageWidth,
			Height:         DefaultImageHeight,
			PixelsPerMeter: DefaultPixelsPerMeter,
			BallRadius:     DefaultBallRadius,
			ShowArrows:     true,
			ShowLabels:     true,
		},
		Video: VideoConfig{Enabled: true},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Validate rejects contradictory settings up front so a batch fails
// immediately instead of per sample.
func (c *Config) Validate() error {
	if c.Samples <= 0 {
		return fmt.Errorf("%w: samples must be positive, got %d", collision.ErrInvalidConfig, c.Samples)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", collision.ErrInvalidConfig, c.Workers)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", collision.ErrInvalidConfig, c.FPS)
	}
	if c.Substeps <= 0 {
		return fmt.Errorf("%w: substeps must be positive, got %d", collision.ErrInvalidConfig, c.Substeps)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", collision.ErrInvalidConfig, c.Duration)
	}
	if c.WorldWidth <= 0 {
		return fmt.Errorf("%w: world width must be positive, got %g", collision.ErrInvalidConfig, c.WorldWidth)
	}
	if c.StartA < 0 || c.StartB > c.WorldWidth || c.StartA >= c.StartB {
		return fmt.Errorf("%w: start positions %g, %g outside world [0, %g]",
			collision.ErrInvalidConfig, c.StartA, c.StartB, c.WorldWidth)
	}
	if c.MinSeparation <= 0 {
		return fmt.Errorf("%w: min separation must be positive, got %g", collision.ErrInvalidConfig, c.MinSeparation)
	}
	if c.Image.Width <= 0 || c.Image.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", collision.ErrInvalidConfig, c.Image.Width, c.Image.Height)
	}
	if c.Image.PixelsPerMeter <= 0 {
		return fmt.Errorf("%w: pixels per meter must be positive, got %g",
			collision.ErrInvalidConfig, c.Image.PixelsPerMeter)
	}
	if _, err := collision.NewSampler(c.Ranges(), nil); err != nil {
		return err
	}
	if _, err := collision.NewSimulator(c.SimParams()); err != nil {
		return err
	}
	return nil
}

// Ranges returns the sampling bounds for the parameter sampler.
func (c *Config) Ranges() collision.Ranges {
	return collision.Ranges{
		MassMin:  c.MassMin,
		MassMax:  c.MassMax,
		SpeedMin: c.SpeedMin,
		SpeedMax: c.SpeedMax,
	}
}

// SimParams derives the simulator parameters. The timestep follows from
// the frame rate and the substep count.
func (c *Config) SimParams() collision.Params {
	return collision.Params{
		Dt:              1.0 / (float64(c.FPS) * float64(c.Substeps)),
		Horizon:         c.Duration,
		StartA:          c.StartA,
		StartB:          c.StartB,
		ContactDistance: 2 * c.ContactRadius,
	}
}
