// sheathgen generates growth sheath meshes from the command line.
package main

import (
	"fmt"
	gomath "math"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/sheath/internal/bake"
	"github.com/Faultbox/sheath/internal/config"
	"github.com/Faultbox/sheath/internal/export"
	"github.com/Faultbox/sheath/internal/geom"
	"github.com/Faultbox/sheath/internal/logger"
	"github.com/Faultbox/sheath/internal/sheath"
	"github.com/Faultbox/sheath/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "preview":
		cmdPreview(args)
	case "info":
		cmdInfo(args)
	case "bake":
		cmdBake(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`sheathgen - procedural growth sheath generator

Usage:
  sheathgen <command> [options]

Commands:
  generate [options]       Generate a mesh and write it (.obj, .stl, .dxf, .png)
  preview [options]        Render a PNG preview
  info [options]           Print statistics for one generation pass
  bake [options]           Write several positioned copies into one file
  config [path]            Write the effective configuration

Options:
  -config <file>           Config file (default ./sheath.yaml or user config dir)
  -mode mesh|lines         Geometry mode
  -segments <n>            Simulation segments per ring
  -display-segments <n>    Display segments per ring
  -iterations <n>          Growth iterations
  -attractor x,y,z         Attractor centre
  -copies <n>              Baked copies (bake)
  -spacing <d>             Distance between baked copies (bake)
  -o <file>                Output path
  -debug                   Debug logging

Examples:
  sheathgen generate -o sheath.obj
  sheathgen preview -attractor 2.1,0.3,0 -o sheath.png
  sheathgen bake -copies 4 -spacing 3.5 -o row.stl
  sheathgen config ./sheath.yaml`)
}

// setup parses flags, loads the config and starts logging.
func setup(args []string) *config.Config {
	if err := config.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)
	return cfg
}

func exportOptions(cfg *config.Config) export.Options {
	return export.Options{
		PreviewWidth:  cfg.Output.PreviewWidth,
		PreviewHeight: cfg.Output.PreviewHeight,
	}
}

func cmdGenerate(args []string) {
	cfg := setup(args)
	defer logger.Sync()

	mesh := sheath.NewSession(logger.Named("sheath")).Regenerate(cfg)
	if err := export.Save(cfg.Output.Path, mesh, exportOptions(cfg)); err != nil {
		logger.Error("export failed", zap.String("path", cfg.Output.Path), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("mesh exported", zap.String("path", cfg.Output.Path), zap.Int("vertices", mesh.VertexCount()))
	fmt.Printf("Wrote %s (%s, %d vertices)\n", cfg.Output.Path, mesh.Kind, mesh.VertexCount())
}

func cmdPreview(args []string) {
	cfg := setup(args)
	defer logger.Sync()

	path := cfg.Output.Path
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
		logger.Warn("preview output is always PNG", zap.String("configured", cfg.Output.Path), zap.String("path", path))
	}

	mesh := sheath.NewSession(logger.Named("sheath")).Regenerate(cfg)
	if err := export.Save(path, mesh, exportOptions(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("preview rendered", zap.String("path", path))
	fmt.Printf("Wrote %s (%dx%d)\n", path, cfg.Output.PreviewWidth, cfg.Output.PreviewHeight)
}

func cmdInfo(args []string) {
	cfg := setup(args)
	defer logger.Sync()

	p := sheath.NewSession(logger.Named("sheath")).Run(cfg)
	size := p.Mesh.Bounds().Size()

	fmt.Printf("Mode:        %s\n", cfg.Mode)
	fmt.Printf("Base quads:  %d kept of %d", p.Disk.KeptCount, cfg.Base.RadialDivisions*cfg.Base.HeightDivisions)
	if p.Disk.Fallback {
		fmt.Print(" (fallback)")
	}
	fmt.Println()
	fmt.Printf("Seam points: %d\n", len(p.Disk.Seam))
	fmt.Printf("Rings:       %d x %d segments (display %d)\n", len(p.Rings), cfg.Resolution.Segments, cfg.Resolution.DisplaySegments)
	fmt.Printf("Vertices:    %d\n", p.Mesh.VertexCount())
	if p.Mesh.Kind == geom.Lines {
		fmt.Printf("Segments:    %d\n", p.Mesh.SegmentCount())
	} else {
		fmt.Printf("Triangles:   %d\n", p.Mesh.TriangleCount())
		fmt.Printf("Refined:     %v\n", p.Refined)
	}
	fmt.Printf("Bounds:      %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	fmt.Printf("Time:        %v\n", p.Duration)
}

func cmdBake(args []string) {
	cfg := setup(args)
	defer logger.Sync()

	mesh := sheath.NewSession(logger.Named("sheath")).Regenerate(cfg)

	mgr := bake.NewManager()
	n := cfg.Bake.Copies
	for i := range n {
		offset := math.Vec3{X: float64(i) * cfg.Bake.Spacing}
		yaw := 2 * gomath.Pi * float64(i) / float64(n)
		c := mgr.Bake(mesh, offset, yaw)
		logger.Debug("baked copy", zap.String("id", c.ID), zap.Float64("x", offset.X), zap.Float64("yaw", yaw))
	}

	combined, err := mgr.Combined()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := export.Save(cfg.Output.Path, combined, exportOptions(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("baked copies exported", zap.String("path", cfg.Output.Path), zap.Int("copies", mgr.Len()))
	fmt.Printf("Wrote %d copies to %s\n", mgr.Len(), cfg.Output.Path)
}

func cmdConfig(args []string) {
	cfg := setup(args)
	defer logger.Sync()

	var err error
	path := filepath.Join(config.ConfigDir(), "sheath.yaml")
	if rest := config.Args(); len(rest) > 0 {
		path = rest[0]
		err = cfg.SaveTo(path)
	} else {
		err = cfg.Save()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("config written", zap.String("path", path))
	fmt.Printf("Wrote config to %s\n", path)
}
