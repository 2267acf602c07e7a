package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"
	"github.com/urfave/cli/altsrc"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render a scene of spheres to a PNG image"
	app.ArgsUsage = "<output_path>"
	app.HideVersion = true

	// Flags that may also be read from the --config YAML file
	fileFlags := []cli.Flag{
		altsrc.NewStringFlag(cli.StringFlag{
			Name:  "scene",
			Value: "default",
			Usage: "built-in scene name, scene file name in scenes/, or path to a .yaml scene file",
		}),
		altsrc.NewIntFlag(cli.IntFlag{
			Name:  "width",
			Usage: "image width in pixels (0 keeps the scene's width)",
		}),
		altsrc.NewIntFlag(cli.IntFlag{
			Name:  "samples",
			Usage: "samples per pixel (0 keeps the scene's value)",
		}),
		altsrc.NewStringFlag(cli.StringFlag{
			Name:  "technique",
			Usage: "anti-aliasing technique: supersampling or none (empty keeps the scene's value)",
		}),
		altsrc.NewIntFlag(cli.IntFlag{
			Name:  "max-depth",
			Usage: "maximum ray bounce depth (0 keeps the scene's value, normally 50)",
		}),
	}

	app.Flags = append(fileFlags,
		cli.Int64Flag{
			Name:  "seed",
			Usage: "random seed (0 seeds from the clock)",
		},
		cli.BoolFlag{
			Name:  "list-scenes",
			Usage: "list available scenes and exit",
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "YAML file with flag values; command line values take precedence",
		},
	)

	loadConfig := altsrc.InitInputSourceWithContext(fileFlags, altsrc.NewYamlSourceFromFlagFunc("config"))
	app.Before = func(c *cli.Context) error {
		if c.String("config") == "" {
			return nil
		}
		return loadConfig(c)
	}

	app.Action = run
	return app
}

func run(c *cli.Context) error {
	if c.Bool("list-scenes") {
		return listScenes(c.App.Writer)
	}

	if c.NArg() != 1 {
		if err := cli.ShowAppHelp(c); err != nil {
			return fmt.Errorf("failed to show usage: %w", err)
		}
		return fmt.Errorf("expected exactly one output path, got %d arguments", c.NArg())
	}
	outputPath := c.Args().First()

	logger := renderer.NewDefaultLogger()

	selectedScene, err := createScene(c.String("scene"), renderer.CameraConfig{Width: c.Int("width")})
	if err != nil {
		return err
	}

	sampling, err := samplingFromFlags(c, selectedScene.SamplingConfig)
	if err != nil {
		return err
	}

	logger.Printf("Using scene %q (%d objects)\n", selectedScene.Name, selectedScene.GetPrimitiveCount())

	raytracer, err := selectedScene.NewRaytracer(sampling, logger)
	if err != nil {
		return err
	}

	pixels, stats := raytracer.Render()
	if err := loaders.WritePNG(outputPath, pixels, stats.Width, stats.Height); err != nil {
		return err
	}

	logger.Printf("%dx%d, %d samples (%d per pixel), %v\n",
		stats.Width, stats.Height, stats.TotalSamples, stats.SamplesPerPixel, stats.Elapsed)
	logger.Printf("Render saved as %s\n", outputPath)
	return nil
}

// samplingFromFlags applies non-zero sampling flags on top of the scene's configuration
func samplingFromFlags(c *cli.Context, sampling renderer.SamplingConfig) (renderer.SamplingConfig, error) {
	if samples := c.Int("samples"); samples != 0 {
		sampling.SamplesPerPixel = samples
	}
	if maxDepth := c.Int("max-depth"); maxDepth != 0 {
		sampling.MaxDepth = maxDepth
	}
	if name := c.String("technique"); name != "" {
		technique, err := renderer.ParseTechnique(name)
		if err != nil {
			return sampling, err
		}
		sampling.Technique = technique
	}
	sampling.Seed = c.Int64("seed")
	return sampling, nil
}

// createScene resolves a scene name to a built-in scene or a YAML scene file
func createScene(name string, cameraOverrides renderer.CameraConfig) (*scene.Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("no scene given")
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".yaml" || ext == ".yml" {
		return scene.NewSceneFromFile(name, cameraOverrides)
	}

	s, err := scene.NewBuiltInScene(name, cameraOverrides)
	if !errors.Is(err, scene.ErrUnknownScene) {
		return s, err
	}

	// Fall back to a scene file with this name in a scenes directory
	for _, dir := range scene.ScenesDirs {
		path := filepath.Join(dir, name+".yaml")
		if _, err := os.Stat(path); err == nil {
			return scene.NewSceneFromFile(path, cameraOverrides)
		}
	}

	return nil, fmt.Errorf("%w %q; available built-in scenes: %s",
		scene.ErrUnknownScene, name, strings.Join(scene.BuiltInSceneIDs(), ", "))
}

func listScenes(w io.Writer) error {
	scenes, err := scene.ListAllScenes()
	if err != nil {
		return err
	}
	for _, info := range scenes {
		fmt.Fprintf(w, "%-24s %-8s %s\n", info.ID, info.Type, info.Description)
	}
	return nil
}
