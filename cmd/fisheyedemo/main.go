// Command fisheyedemo renders the fisheye overlay on the software host and
// saves the viewport as a PNG.
//
// Usage:
//
//	fisheyedemo -mode remap -backdrop street.jpg -lens 8 -fov 180 -output out.png
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"log/slog"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/fisheye"
	"github.com/gogpu/fisheye/camera"
	"github.com/gogpu/fisheye/host/soft"
	"github.com/gogpu/fisheye/overlay"
	"github.com/gogpu/fisheye/shader"
)

type config struct {
	width, height int
	resX, resY    int
	output        string
	backdrop      string
	mode          string
	lens          float64
	fovDegrees    float64
	sensor        float64
	fit           string
	scale         float64
	frames        int
	validate      bool
}

func main() {
	var (
		cfg     config
		verbose bool
	)
	flag.IntVar(&cfg.width, "width", 1280, "viewport width")
	flag.IntVar(&cfg.height, "height", 720, "viewport height")
	flag.IntVar(&cfg.resX, "resx", 1920, "render resolution width")
	flag.IntVar(&cfg.resY, "resy", 1080, "render resolution height")
	flag.StringVar(&cfg.output, "output", "fisheye.png", "output file")
	flag.StringVar(&cfg.backdrop, "backdrop", "", "scene image (png, jpeg, gif, bmp, tiff, webp); checkerboard if empty")
	flag.StringVar(&cfg.mode, "mode", "debug", "shader mode: debug or remap")
	flag.Float64Var(&cfg.lens, "lens", 10.5, "fisheye lens in mm")
	flag.Float64Var(&cfg.fovDegrees, "fov", 180, "fisheye field of view in degrees")
	flag.Float64Var(&cfg.sensor, "sensor", 36, "sensor width in mm")
	flag.StringVar(&cfg.fit, "fit", "AUTO", "sensor fit: AUTO, HORIZONTAL or VERTICAL")
	flag.Float64Var(&cfg.scale, "scale", overlay.DefaultScale, "overlay width as a fraction of the viewport")
	flag.IntVar(&cfg.frames, "frames", 1, "number of frames to run")
	flag.BoolVar(&cfg.validate, "validate", false, "compile shaders with naga")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	fisheye.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		log.Fatalf("fisheyedemo: %v", err)
	}
	log.Printf("Overlay saved to %s (%dx%d)\n", cfg.output, cfg.width, cfg.height)
}

func run(cfg config) error {
	mode, err := shader.ParseMode(cfg.mode)
	if err != nil {
		return err
	}
	fit, err := camera.ParseSensorFit(cfg.fit)
	if err != nil {
		return err
	}

	opts := []soft.Option{
		soft.WithShaderValidation(cfg.validate),
		soft.WithRenderSettings(camera.RenderSettings{
			ResolutionX: cfg.resX, ResolutionY: cfg.resY, PixelAspectX: 1, PixelAspectY: 1,
		}),
	}
	if cfg.backdrop != "" {
		img, err := loadImage(cfg.backdrop)
		if err != nil {
			return err
		}
		opts = append(opts, soft.WithBackdrop(img))
	}
	h := soft.NewHost(cfg.width, cfg.height, opts...)

	id := h.Scene().AddCamera(camera.Info{
		Name:         "Fisheye",
		Type:         camera.Panoramic,
		Panorama:     camera.FisheyeEquisolid,
		FisheyeLens:  cfg.lens,
		FisheyeFOV:   cfg.fovDegrees * math.Pi / 180,
		SensorWidth:  cfg.sensor,
		SensorHeight: cfg.sensor * 2 / 3,
		SensorFit:    fit,
	})
	if err := h.Scene().SetActiveCamera(id); err != nil {
		return err
	}

	c := overlay.New(h.Scene(), h.Renderer(), h.GPU(), h.Hooks(),
		overlay.WithMode(mode),
		overlay.WithScale(cfg.scale),
	)
	defer c.Close()
	if err := c.Toggle(); err != nil {
		return err
	}
	for i := 0; i < max(cfg.frames, 1); i++ {
		h.Frame()
	}
	log.Printf("camera %d: %s", c.State().TrackedCamera, c.Params())
	return h.Framebuffer().SavePNG(cfg.output)
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
