package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-drift/trellis/pkg/core"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/widgets"
)

type demo struct {
	short string
	build func() core.Widget
}

var demos = map[string]demo{
	"baseline": {
		short: "Labels of different faces aligned on their baseline",
		build: func() core.Widget {
			return widgets.Row().
				WithCrossAxisAlignment(widgets.CrossAxisAlignmentBaseline).
				WithChild(widgets.NewLabel("Total:")).
				WithDefaultSpacer().
				WithChild(widgets.NewLabel("1,204").WithFace(graphics.FontFaceInconsolataBold)).
				WithDefaultSpacer().
				WithChild(widgets.NewLabel("items").WithFace(graphics.FontFaceInconsolata).WithColor(graphics.RGB(0x60, 0x60, 0x60)))
		},
	},
	"flex": {
		short: "Fixed and flexible children sharing a row",
		build: func() core.Widget {
			return widgets.Row().
				WithCrossAxisAlignment(widgets.CrossAxisAlignmentStart).
				WithChild(widgets.EmptyBox().Width(40).Height(40).Background(graphics.ColorRed)).
				WithFlexChild(widgets.EmptyBox().Height(40).Background(graphics.ColorGreen), widgets.FlexParams{Flex: 1}).
				WithSpacer(4).
				WithFlexChild(widgets.EmptyBox().Height(40).Background(graphics.ColorBlue), widgets.FlexParams{Flex: 2})
		},
	},
	"spacing": {
		short: "One row per main axis alignment",
		build: func() core.Widget {
			col := widgets.Column().WithCrossAxisAlignment(widgets.CrossAxisAlignmentStart)
			for _, a := range []widgets.MainAxisAlignment{
				widgets.MainAxisAlignmentStart,
				widgets.MainAxisAlignmentCenter,
				widgets.MainAxisAlignmentEnd,
				widgets.MainAxisAlignmentSpaceBetween,
				widgets.MainAxisAlignmentSpaceEvenly,
				widgets.MainAxisAlignmentSpaceAround,
			} {
				row := widgets.Row().WithMainAxisAlignment(a).MustFillMainAxis(true)
				for range 3 {
					row = row.WithChild(widgets.EmptyBox().Width(30).Height(16).Background(graphics.ColorBlue))
				}
				col = col.WithChild(widgets.NewLabel(a.String())).WithChild(row).WithDefaultSpacer()
			}
			return col
		},
	},
}

func demoNames() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func lookupDemo(name string) (demo, error) {
	d, ok := demos[name]
	if !ok {
		return demo{}, fmt.Errorf("unknown demo %q (available: %s)", name, strings.Join(demoNames(), ", "))
	}
	return d, nil
}

func init() {
	RegisterCommand(&Command{
		Name:  "demos",
		Short: "List the built-in layouts",
		Long:  `List the layouts that "trellis render" can draw.`,
		Usage: "trellis demos",
		Run: func(env *Env, _ []string) error {
			for _, name := range demoNames() {
				fmt.Fprintf(env.Out, "  %-10s %s\n", name, demos[name].short)
			}
			return nil
		},
	})
}
