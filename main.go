package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// scenesDir holds JSON scene files listed by -list
const scenesDir = "scenes"

// options holds the parsed command line
type options struct {
	Scene   string
	Config  string
	Width   int
	Height  int
	FOV     float64 // degrees, 0 keeps the scene's
	Depth   int
	Workers int
	Tile    int
	Divide  int
	Fresnel bool
	Format  string
	Out     string
	List    bool
	Help    bool
}

func parseFlags(args []string, output io.Writer) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.Scene, "scene", "default", "Built-in scene name (see -list)")
	fs.StringVar(&opts.Config, "config", "", "Path to a JSON scene file; overrides -scene")
	fs.IntVar(&opts.Width, "width", 0, "Image width in pixels (0 uses the scene's)")
	fs.IntVar(&opts.Height, "height", 0, "Image height in pixels (0 uses the scene's)")
	fs.Float64Var(&opts.FOV, "fov", 0, "Field of view in degrees (0 uses the scene's)")
	fs.IntVar(&opts.Depth, "depth", 0, "Recursion depth for reflection and refraction (0 uses the scene's, or 5)")
	fs.IntVar(&opts.Workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.IntVar(&opts.Tile, "tile", 0, "Tile size in pixels (0 uses the default)")
	fs.IntVar(&opts.Divide, "divide", 0, "Build a bounding volume hierarchy with this group threshold (0 = off)")
	fs.BoolVar(&opts.Fresnel, "fresnel", false, "Blend reflection and refraction with the Schlick approximation")
	fs.StringVar(&opts.Format, "format", "png", "Output format: 'png' or 'ppm'")
	fs.StringVar(&opts.Out, "out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.BoolVar(&opts.List, "list", false, "List available scenes")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}

	opts.Format = strings.ToLower(opts.Format)
	if opts.Format != "png" && opts.Format != "ppm" {
		return opts, fs, fmt.Errorf("unknown format %q: expected png or ppm", opts.Format)
	}
	if opts.Width < 0 || opts.Height < 0 || opts.Depth < 0 || opts.Workers < 0 || opts.Tile < 0 || opts.Divide < 0 {
		return opts, fs, errors.New("numeric options must not be negative")
	}
	if opts.FOV < 0 || opts.FOV >= 180 {
		return opts, fs, fmt.Errorf("fov must be in [0, 180), got %g", opts.FOV)
	}
	return opts, fs, nil
}

func main() {
	opts, fs, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	logger := renderer.NewDefaultLogger()

	if opts.Help {
		printHelp(fs, logger)
		return
	}
	if opts.List {
		printScenes(logger)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, logger, time.Now()); err != nil {
		log.Fatalf("Render failed: %v", err)
	}
}

func printHelp(fs *flag.FlagSet, logger core.Logger) {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	printScenes(logger)
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format> unless -out is given")
}

func printScenes(logger core.Logger) {
	fmt.Println("Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Printf("  %-16s %s\n", info.ID, info.Description)
	}

	configScenes, err := scene.ListConfigScenes(scenesDir, logger)
	if err != nil {
		logger.Printf("Warning: %v\n", err)
		return
	}
	for _, info := range configScenes {
		fmt.Printf("  %-16s %s (%s)\n", info.Name, info.Description, info.FilePath)
	}
}

// createScene loads the scene named by the options and applies the camera
// and preprocessing overrides
func createScene(opts options, logger core.Logger) (*scene.Scene, error) {
	id := opts.Scene
	if opts.Config != "" {
		id = scene.ConfigScenePrefix + opts.Config
	}

	s, err := scene.Load(id, logger)
	if err != nil {
		return nil, err
	}

	s.SetCamera(opts.Width, opts.Height, opts.FOV*math.Pi/180)
	if opts.Fresnel {
		s.World.Fresnel = true
	}
	s.Preprocess(opts.Divide)
	return s, nil
}

// renderConfig merges the defaults, the scene's depth and the flags, in
// increasing priority
func renderConfig(opts options, s *scene.Scene) renderer.Config {
	config := renderer.DefaultConfig()
	if s.MaxDepth > 0 {
		config.MaxDepth = s.MaxDepth
	}
	if opts.Depth > 0 {
		config.MaxDepth = opts.Depth
	}
	if opts.Workers > 0 {
		config.NumWorkers = opts.Workers
	}
	if opts.Tile > 0 {
		config.TileSize = opts.Tile
	}
	return config
}

// outputPath returns -out, or a timestamped file under output/<scene>/
func outputPath(opts options, sceneName string, now time.Time) string {
	if opts.Out != "" {
		return opts.Out
	}
	dirName := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '-'
		}
		return r
	}, strings.ToLower(sceneName))
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", dirName, fmt.Sprintf("render_%s.%s", timestamp, opts.Format))
}

func run(ctx context.Context, opts options, logger core.Logger, now time.Time) error {
	fmt.Println("Starting Whitted Raytracer...")

	s, err := createScene(opts, logger)
	if err != nil {
		return err
	}
	fmt.Printf("Using %s scene (%d primitives, %dx%d)...\n",
		s.Name, s.GetPrimitiveCount(), s.Camera.HSize, s.Camera.VSize)

	rt := renderer.NewRaytracer(s.Camera, s.World, renderConfig(opts, s), logger)

	startTime := time.Now()
	canvas, stats, err := rt.Render(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Render completed in %v (%d primary rays, average luminance %.3f)\n",
		time.Since(startTime), stats.PrimaryRays, stats.AvgLuminance)

	filename := outputPath(opts, s.Name, now)
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	if err := saveCanvas(canvas, opts.Format, filename); err != nil {
		return err
	}

	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

func saveCanvas(canvas *renderer.Canvas, format, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	if format == "ppm" {
		err = canvas.WritePPM(file)
	} else {
		err = canvas.WritePNG(file)
	}
	if err != nil {
		file.Close()
		return fmt.Errorf("error saving %s: %w", strings.ToUpper(format), err)
	}
	return file.Close()
}
