package cmd

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strconv"

	"github.com/go-drift/trellis/pkg/config"
	"github.com/go-drift/trellis/pkg/core"
	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render a layout to a PNG file",
		Long: `Lay out and paint a built-in layout, then write the rasterized
frame as a PNG.

The window size comes from trellis.yaml unless --width/--height are given.
With --content the window shrinks to the size the layout asks for.

Flags:
  -o, --output FILE   Output path (default: <demo>.png)
  --width N           Window width in logical pixels
  --height N          Window height in logical pixels
  --content           Size the window to the layout`,
		Usage: "trellis render <demo> [-o FILE] [--width N] [--height N] [--content]",
		Run:   runRender,
	})
}

type renderOptions struct {
	demo    string
	output  string
	width   float64
	height  float64
	content bool
}

func parseRenderArgs(args []string) (renderOptions, error) {
	var opts renderOptions
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "-o", "--output":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a file path", arg)
			}
			opts.output = args[i+1]
			i++
		case "--width", "--height":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a value", arg)
			}
			v, err := strconv.ParseFloat(args[i+1], 64)
			if err != nil || v <= 0 {
				return opts, fmt.Errorf("invalid %s %q", arg, args[i+1])
			}
			if arg == "--width" {
				opts.width = v
			} else {
				opts.height = v
			}
			i++
		case "--content":
			opts.content = true
		default:
			if opts.demo != "" {
				return opts, fmt.Errorf("unexpected argument %q", arg)
			}
			opts.demo = arg
		}
	}
	if opts.demo == "" {
		return opts, fmt.Errorf("demo name is required\n\nUsage: trellis render <demo>")
	}
	if opts.output == "" {
		opts.output = opts.demo + ".png"
	}
	return opts, nil
}

func runRender(env *Env, args []string) error {
	opts, err := parseRenderArgs(args)
	if err != nil {
		return err
	}
	d, err := lookupDemo(opts.demo)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(env)
	if err != nil {
		return err
	}
	if opts.width > 0 {
		cfg.Window.Width = opts.width
	}
	if opts.height > 0 {
		cfg.Window.Height = opts.height
	}

	errors.SetHandler(cfg.NewLogHandler(env.Err))
	defer errors.SetHandler(nil)

	policy := core.SizePolicyUser
	if opts.content {
		policy = core.SizePolicyContent
	}
	img := renderFrame(d.build, cfg, policy)
	if img == nil {
		return fmt.Errorf("rendering %s failed; see the log for the recovered panic", opts.demo)
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.output, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", opts.output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.output, err)
	}
	b := img.Bounds()
	fmt.Fprintf(env.Out, "wrote %s (%dx%d)\n", opts.output, b.Dx(), b.Dy())
	return nil
}

// renderFrame runs one layout and paint of the built widget on a white
// background. A panic in the tree is reported to the error handler and
// yields a nil image.
func renderFrame(build func() core.Widget, cfg *config.Config, policy core.WindowSizePolicy) (img *image.RGBA) {
	defer errors.Recover("cmd.render")
	root := core.NewRenderRoot(widgets.NewSizedBox(build()).Background(graphics.ColorWhite), core.Options{
		Config:     cfg,
		SizePolicy: policy,
	})
	root.Layout()
	return root.Paint().Rasterize(root.Size())
}

// loadConfig resolves trellis.yaml from the project enclosing env.Dir, or
// from env.Dir itself outside a module.
func loadConfig(env *Env) (*config.Config, error) {
	dir := env.Dir
	if root, err := config.FindProjectRoot(env.Dir); err == nil {
		dir = root
	}
	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
