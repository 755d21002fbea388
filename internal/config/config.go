// Package config handles generator configuration loading and management.
package config

// Mode selects the kind of geometry a pass produces.
type Mode string

// Output modes.
const (
	ModeMesh  Mode = "mesh"
	ModeLines Mode = "lines"
)

// Config holds every parameter of one generation pass. It is treated as
// immutable while a pass runs.
type Config struct {
	Mode       Mode             `yaml:"mode"`
	Resolution ResolutionConfig `yaml:"resolution"`
	Base       BaseConfig       `yaml:"base"`
	Attractor  AttractorConfig  `yaml:"attractor"`
	Growth     GrowthConfig     `yaml:"growth"`
	Relax      RelaxConfig      `yaml:"relax"`
	Material   MaterialConfig   `yaml:"material"`
	Refine     RefineConfig     `yaml:"refine"`
	Bake       BakeConfig       `yaml:"bake"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ResolutionConfig holds segment and iteration counts.
// Segments is the simulation resolution, DisplaySegments the assembled one.
type ResolutionConfig struct {
	Segments        int `yaml:"segments"`
	DisplaySegments int `yaml:"display_segments"`
	Iterations      int `yaml:"iterations"`
}

// BaseConfig describes the cylindrical base disk.
type BaseConfig struct {
	RingRadius      float64 `yaml:"ring_radius"`
	DiskWidth       float64 `yaml:"disk_width"`
	RadialDivisions int     `yaml:"radial_divisions"`
	HeightDivisions int     `yaml:"height_divisions"`
}

// AttractorConfig holds the attractor position and its influence shape.
type AttractorConfig struct {
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	Z            float64 `yaml:"z"`
	Radius       float64 `yaml:"radius"`
	Strength     float64 `yaml:"strength"`
	Bias         float64 `yaml:"bias"`
	Falloff      float64 `yaml:"falloff"`       // growth falloff exponent
	FalloffWidth float64 `yaml:"falloff_width"` // linear ramp beyond Radius
}

// GrowthConfig holds the ring growth shape parameters.
type GrowthConfig struct {
	StepOut         float64 `yaml:"step_out"`
	StepUp          float64 `yaml:"step_up"`
	Twist           float64 `yaml:"twist"`
	Taper           float64 `yaml:"taper"`
	LeafGrowth      float64 `yaml:"leaf_growth"`
	RuffleAmplitude float64 `yaml:"ruffle_amplitude"`
	RuffleFrequency float64 `yaml:"ruffle_frequency"`
	RidgeLift       float64 `yaml:"ridge_lift"`
	RidgeSharpness  float64 `yaml:"ridge_sharpness"`
	Curl            float64 `yaml:"curl"`
	Bowl            float64 `yaml:"bowl"`
	NoiseAmplitude  float64 `yaml:"noise_amplitude"`
	NoiseFrequency  float64 `yaml:"noise_frequency"`
	Jitter          float64 `yaml:"jitter"`
	JitterSeed      int64   `yaml:"jitter_seed"`
}

// RelaxConfig holds per-ring and global relaxation settings.
type RelaxConfig struct {
	MinDistance       float64 `yaml:"min_distance"`
	Range             float64 `yaml:"range"`
	Strength          float64 `yaml:"strength"`
	Iterations        int     `yaml:"iterations"`
	GlobalMinDistance float64 `yaml:"global_min_distance"`
	GlobalRange       float64 `yaml:"global_range"`
	GlobalStrength    float64 `yaml:"global_strength"`
	GlobalIterations  int     `yaml:"global_iterations"`
}

// MaterialConfig holds the colour pair as hex strings.
type MaterialConfig struct {
	BaseColor  string `yaml:"base_color"`
	RidgeColor string `yaml:"ridge_color"`
}

// RefineConfig holds mesh refinement settings.
type RefineConfig struct {
	Enabled           bool    `yaml:"enabled"`
	WeldEpsilon       float64 `yaml:"weld_epsilon"`
	FinalWeldEpsilon  float64 `yaml:"final_weld_epsilon"`
	SmoothIterations  int     `yaml:"smooth_iterations"`
	SeamRadius        float64 `yaml:"seam_radius"`
	BridgeRings       int     `yaml:"bridge_rings"`
	RoundnessBand     float64 `yaml:"roundness_band"`
	RoundnessExponent float64 `yaml:"roundness_exponent"`
	RoundnessStrength float64 `yaml:"roundness_strength"`
	RoundnessReach    float64 `yaml:"roundness_reach"` // distance from the seam
}

// BakeConfig controls how many positioned copies the bake command makes.
type BakeConfig struct {
	Copies  int     `yaml:"copies"`
	Spacing float64 `yaml:"spacing"` // distance between copies along X
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Path          string `yaml:"path"`
	PreviewWidth  int    `yaml:"preview_width"`
	PreviewHeight int    `yaml:"preview_height"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mode: ModeMesh,
		Resolution: ResolutionConfig{
			Segments:        96,
			DisplaySegments: 96,
			Iterations:      34,
		},
		Base: BaseConfig{
			RingRadius:      1.4,
			DiskWidth:       2.0,
			RadialDivisions: 96,
			HeightDivisions: 16,
		},
		Attractor: AttractorConfig{
			X:            2.1,
			Y:            0,
			Z:            0,
			Radius:       0.8,
			Strength:     0.6,
			Bias:         0.88,
			Falloff:      1.5,
			FalloffWidth: 0.3,
		},
		Growth: GrowthConfig{
			StepOut:         0.05,
			StepUp:          0.06,
			Twist:           0.8,
			Taper:           0.35,
			LeafGrowth:      0.6,
			RuffleAmplitude: 0.04,
			RuffleFrequency: 6,
			RidgeLift:       0.03,
			RidgeSharpness:  2,
			Curl:            0.6,
			Bowl:            0.08,
			NoiseAmplitude:  0,
			NoiseFrequency:  3,
			Jitter:          0,
			JitterSeed:      1,
		},
		Relax: RelaxConfig{
			MinDistance:       0.03,
			Range:             0.08,
			Strength:          0.5,
			Iterations:        2,
			GlobalMinDistance: 0.035,
			GlobalRange:       0.07,
			GlobalStrength:    0.35,
			GlobalIterations:  2,
		},
		Material: MaterialConfig{
			BaseColor:  "#1b3a4b",
			RidgeColor: "#ff7a59",
		},
		Refine: RefineConfig{
			Enabled:           true,
			WeldEpsilon:       1e-4,
			FinalWeldEpsilon:  5e-5,
			SmoothIterations:  3,
			SeamRadius:        0.04,
			BridgeRings:       3,
			RoundnessBand:     0.08,
			RoundnessExponent: 1.5,
			RoundnessStrength: 1,
			RoundnessReach:    0.35,
		},
		Bake: BakeConfig{
			Copies:  3,
			Spacing: 4,
		},
		Output: OutputConfig{
			Path:          "sheath.obj",
			PreviewWidth:  1024,
			PreviewHeight: 768,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
