// Package config provides configuration loading and access for the
// simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/clay/clay"
	"github.com/pthm-cable/clay/physics"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Blob      BlobConfig      `yaml:"blob"`
	Tracked   TrackedConfig   `yaml:"tracked"`
	Gestures  GesturesConfig  `yaml:"gestures"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// BlobConfig holds the clay blob parameters.
type BlobConfig struct {
	ParticleCount int     `yaml:"particle_count"`
	Radius        float64 `yaml:"radius"`

	Timestep float64 `yaml:"timestep"`
	Substeps int     `yaml:"substeps"`
	Damping  float64 `yaml:"damping"`
	Mass     float64 `yaml:"mass"`

	Cohesion       float64 `yaml:"cohesion"`
	SurfaceTension float64 `yaml:"surface_tension"`
	Anchor         float64 `yaml:"anchor"`

	RestPull         float64 `yaml:"rest_pull"`          // pull toward rest shape per substep
	RestAdaptRate    float64 `yaml:"rest_adapt_rate"`    // rest drift toward current, after cooldown
	SculptMemoryRate float64 `yaml:"sculpt_memory_rate"` // fast local rest adaptation around grabs

	SculptRadius   float64 `yaml:"sculpt_radius"`
	SculptStrength float64 `yaml:"sculpt_strength"`
	PinStiffness   float64 `yaml:"pin_stiffness"`

	MinSeparation      float64 `yaml:"min_separation"`
	SeparationStrength float64 `yaml:"separation_strength"`

	JitterAmplitude float64 `yaml:"jitter_amplitude"`
	JitterSpeed     float64 `yaml:"jitter_speed"`

	SplitDistance float64 `yaml:"split_distance"`
	MergeDistance float64 `yaml:"merge_distance"`
}

// TrackedConfig holds the target-tracking swarm parameters.
type TrackedConfig struct {
	Timestep            float64 `yaml:"timestep"`
	Substeps            int     `yaml:"substeps"`
	Damping             float64 `yaml:"damping"`
	TargetStiffness     float64 `yaml:"target_stiffness"`
	MinDistance         float64 `yaml:"min_distance"`
	MinDistanceStrength float64 `yaml:"min_distance_strength"`
}

// GesturesConfig holds gesture-mapping thresholds for the viewer.
type GesturesConfig struct {
	PinchThreshold  float64 `yaml:"pinch_threshold"`
	GrabThreshold   float64 `yaml:"grab_threshold"`
	GrabRadius      float64 `yaml:"grab_radius"`
	AttractRadius   float64 `yaml:"attract_radius"`
	AttractStrength float64 `yaml:"attract_strength"`
	SqueezeFactor   float64 `yaml:"squeeze_factor"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// BlobOptions converts the blob section to simulation options.
func (c *Config) BlobOptions() clay.Options {
	b := c.Blob
	return clay.Options{
		ParticleCount: b.ParticleCount,
		BlobRadius:    float32(b.Radius),

		Timestep: float32(b.Timestep),
		Substeps: b.Substeps,
		Damping:  float32(b.Damping),
		Mass:     float32(b.Mass),

		CohesionStrength: float32(b.Cohesion),
		SurfaceTension:   float32(b.SurfaceTension),
		AnchorStrength:   float32(b.Anchor),

		RestPull:           float32(b.RestPull),
		RestShapeAdaptRate: float32(b.RestAdaptRate),
		SculptMemoryRate:   float32(b.SculptMemoryRate),

		SculptRadius:   float32(b.SculptRadius),
		SculptStrength: float32(b.SculptStrength),
		PinStiffness:   float32(b.PinStiffness),

		MinSeparation:      float32(b.MinSeparation),
		SeparationStrength: float32(b.SeparationStrength),

		JitterAmplitude: float32(b.JitterAmplitude),
		JitterSpeed:     float32(b.JitterSpeed),

		SplitDistance: float32(b.SplitDistance),
		MergeDistance: float32(b.MergeDistance),
	}
}

// TrackedOptions converts the tracked section to simulation options.
func (c *Config) TrackedOptions() physics.TrackedOptions {
	t := c.Tracked
	return physics.TrackedOptions{
		Timestep:            float32(t.Timestep),
		Substeps:            t.Substeps,
		Damping:             float32(t.Damping),
		TargetStiffness:     float32(t.TargetStiffness),
		MinDistance:         float32(t.MinDistance),
		MinDistanceStrength: float32(t.MinDistanceStrength),
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
