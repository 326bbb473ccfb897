package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/kssbuilder/internal/build"
	"git.home.luguber.info/inful/kssbuilder/internal/builder"
	"git.home.luguber.info/inful/kssbuilder/internal/builder/static"
	"git.home.luguber.info/inful/kssbuilder/internal/config"
	"git.home.luguber.info/inful/kssbuilder/internal/logfields"
	"git.home.luguber.info/inful/kssbuilder/internal/metrics"
	"git.home.luguber.info/inful/kssbuilder/internal/source"
	"git.home.luguber.info/inful/kssbuilder/internal/watch"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Source      []string `arg:"" optional:"" type:"path" help:"Source directories to parse for style guide models"`
	Destination string   `short:"d" type:"path" help:"Destination directory of style guide"`
	Builder     string   `short:"b" help:"Builder to use: a registered name, a directory, or a git URL"`
	Mask        string   `short:"m" help:"Mask for detecting source files"`
	CSS         []string `name:"css" help:"URL of a CSS file to include in the style guide"`
	JS          []string `name:"js" help:"URL of a JavaScript file to include in the style guide"`
	Custom      []string `help:"Process a custom property name when parsing"`
	Title       string   `help:"Title of the style guide"`
	Watch       bool     `short:"w" help:"Rebuild when source files change"`
	MetricsFile string   `name:"metrics-file" type:"path" help:"Write build metrics in Prometheus text format to this file"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	raw, err := root.RawConfig(b.values())
	if err != nil {
		return err
	}
	if _, ok := raw[builder.OptionMask]; !ok {
		raw[builder.OptionMask] = ModelMask
	}

	loader, err := root.Loader(g)
	if err != nil {
		return err
	}

	svc := build.NewService(loader).WithLogger(g.logger())
	var recorder *metrics.PrometheusRecorder
	if b.MetricsFile != "" {
		recorder = metrics.NewPrometheusRecorder(nil)
		svc = svc.WithRecorder(recorder)
	}

	req := build.Request{Config: raw}
	if b.Builder != "" {
		req.Builder = b.Builder
	}

	run := func(ctx context.Context) error {
		res, err := svc.Run(ctx, req)
		if recorder != nil {
			if werr := recorder.WriteTextfile(b.MetricsFile); werr != nil {
				g.logger().Warn("Failed to write metrics file", logfields.Path(b.MetricsFile), logfields.Error(werr))
			}
		}
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(g.stdout(), "Style guide generated at %s (%d sections, %d added)\n",
			res.Destination, res.Sections, res.Synthesized)
		return nil
	}

	if err := run(g.ctx()); err != nil {
		return err
	}
	if !b.Watch {
		return nil
	}

	roots := config.New(schema()).SetRaw(raw).Strings(builder.OptionSource)
	w := watch.New(source.Dirs(roots), run, watch.WithLogger(g.logger()))
	g.logger().Info("Watching for changes", slog.Int("dirs", len(roots)))
	return w.Run(g.ctx())
}

// values collects the flags that were given as raw option values.
func (b *BuildCmd) values() map[string]any {
	values := map[string]any{}
	if len(b.Source) > 0 {
		values[builder.OptionSource] = toAny(b.Source)
	}
	if b.Destination != "" {
		values[builder.OptionDestination] = b.Destination
	}
	if b.Builder != "" {
		values[builder.OptionBuilder] = b.Builder
	}
	if b.Mask != "" {
		values[builder.OptionMask] = b.Mask
	}
	if len(b.CSS) > 0 {
		values[builder.OptionCSS] = toAny(b.CSS)
	}
	if len(b.JS) > 0 {
		values[builder.OptionJS] = toAny(b.JS)
	}
	if len(b.Custom) > 0 {
		values[builder.OptionCustom] = toAny(b.Custom)
	}
	if b.Title != "" {
		values[static.OptionTitle] = b.Title
	}
	return values
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
