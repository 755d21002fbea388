package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

var (
	flags = flag.NewFlagSet("sheathgen", flag.ContinueOnError)

	flagConfig          = flags.String("config", "", "Path to config file")
	flagDebug           = flags.Bool("debug", false, "Enable debug logging")
	flagMode            = flags.String("mode", "", "Geometry mode: mesh or lines")
	flagSegments        = flags.Int("segments", 0, "Simulation segments per ring")
	flagDisplaySegments = flags.Int("display-segments", 0, "Display segments per ring")
	flagIterations      = flags.Int("iterations", 0, "Growth iterations")
	flagAttractor       = flags.String("attractor", "", "Attractor centre as x,y,z")
	flagCopies          = flags.Int("copies", 0, "Number of baked copies")
	flagSpacing         = flags.Float64("spacing", -1, "Distance between baked copies")
	flagOutput          = flags.String("o", "", "Output path")
)

// ParseFlags parses command-line flags for one command. Call this early in main().
func ParseFlags(args []string) error {
	return flags.Parse(args)
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flags.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMode != "" {
		cfg.Mode = Mode(*flagMode)
	}
	if *flagSegments > 0 {
		cfg.Resolution.Segments = *flagSegments
	}
	if *flagDisplaySegments > 0 {
		cfg.Resolution.DisplaySegments = *flagDisplaySegments
	}
	if *flagIterations > 0 {
		cfg.Resolution.Iterations = *flagIterations
	}
	if *flagAttractor != "" {
		x, y, z, err := parseTriple(*flagAttractor)
		if err != nil {
			return fmt.Errorf("attractor flag: %w", err)
		}
		cfg.Attractor.X, cfg.Attractor.Y, cfg.Attractor.Z = x, y, z
	}
	if *flagCopies > 0 {
		cfg.Bake.Copies = *flagCopies
	}
	if *flagSpacing >= 0 {
		cfg.Bake.Spacing = *flagSpacing
	}
	if *flagOutput != "" {
		cfg.Output.Path = *flagOutput
	}
	return nil
}

func parseTriple(s string) (x, y, z float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		v[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, 0, 0, err
		}
	}
	return v[0], v[1], v[2], nil
}
