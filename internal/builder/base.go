// Package builder defines the contract every style guide builder implements,
// the embeddable Base that provides it, and the Loader that resolves a
// builder reference into a checked instance.
package builder

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/kssbuilder/internal/clone"
	"git.home.luguber.info/inful/kssbuilder/internal/config"
	"git.home.luguber.info/inful/kssbuilder/internal/logfields"
	"git.home.luguber.info/inful/kssbuilder/internal/options"
	"git.home.luguber.info/inful/kssbuilder/internal/styleguide"
)

// Builder turns a parsed style guide into output. Hooks run in order:
// Init, Prepare, Build.
//
// The contract can only be satisfied by embedding *Base.
type Builder interface {
	API() string
	OptionDefinitions() *options.Registry
	AddOptionDefinitions(defs ...options.Definition) *Base
	Config() *config.Config
	AddConfig(values map[string]any) *Base
	SetLogger(logger *slog.Logger) *Base
	Logger() *slog.Logger

	Init(ctx context.Context) error
	Prepare(ctx context.Context, sg *styleguide.StyleGuide) (*styleguide.StyleGuide, error)
	Build(ctx context.Context, sg *styleguide.StyleGuide) (*styleguide.StyleGuide, error)
	Clone(ctx context.Context, builderPath, destination string) error

	base() *Base
}

// Option keys registered by NewBase.
const (
	OptionSource      = "source"
	OptionDestination = "destination"
	OptionMask        = "mask"
	OptionClone       = config.CloneKey
	OptionBuilder     = "builder"
	OptionCSS         = "css"
	OptionJS          = "js"
	OptionCustom      = "custom"
	OptionVerbose     = "verbose"
)

// DefaultMask matches the stylesheet languages KSS comments are written in.
const DefaultMask = "*.css|*.less|*.sass|*.scss|*.styl|*.stylus"

// Base implements the parts of the contract every builder shares: the option
// schema, the normalized configuration, the log sink, and default hooks.
type Base struct {
	api    string
	schema *options.Registry
	cfg    *config.Config
	logger *slog.Logger
}

// BaseOption configures a Base.
type BaseOption func(*Base)

// WithAPI overrides the contract version the builder declares.
func WithAPI(version string) BaseOption {
	return func(b *Base) { b.api = version }
}

// NewBase creates a Base declaring APIVersion with the standard option table.
func NewBase(opts ...BaseOption) *Base {
	schema := options.NewRegistry()
	b := &Base{
		api:    APIVersion,
		schema: schema,
		cfg:    config.New(schema),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.AddOptionDefinitions(
		options.Definition{
			Key:      OptionSource,
			Group:    "File locations:",
			String:   true,
			Path:     true,
			Describe: "Source directory to recursively parse for KSS comments, homepage, and markup",
		},
		options.Definition{
			Key:         OptionDestination,
			Group:       "File locations:",
			String:      true,
			Path:        true,
			Cardinality: options.Single,
			Default:     "styleguide",
			Describe:    "Destination directory of style guide",
		},
		options.Definition{
			Key:         OptionMask,
			Group:       "File locations:",
			Alias:       "m",
			String:      true,
			Cardinality: options.Single,
			Default:     DefaultMask,
			Describe:    "Use a mask for detecting files containing KSS comments",
		},
		options.Definition{
			Key:         OptionClone,
			Group:       "Builder:",
			String:      true,
			Path:        true,
			Cardinality: options.Single,
			Describe:    "Clone a style guide builder to customize",
		},
		options.Definition{
			Key:         OptionBuilder,
			Group:       "Builder:",
			Alias:       "b",
			String:      true,
			Path:        true,
			Cardinality: options.Single,
			Describe:    "Use the specified builder when building your style guide",
		},
		options.Definition{
			Key:      OptionCSS,
			Group:    "Style guide:",
			String:   true,
			Describe: "URL of a CSS file to include in the style guide",
		},
		options.Definition{
			Key:      OptionJS,
			Group:    "Style guide:",
			String:   true,
			Describe: "URL of a JavaScript file to include in the style guide",
		},
		options.Definition{
			Key:      OptionCustom,
			Group:    "Style guide:",
			String:   true,
			Describe: "Process a custom property name when parsing KSS comments",
		},
		options.Definition{
			Key:         OptionVerbose,
			Count:       true,
			Cardinality: options.Single,
			Describe:    "Display verbose details while building",
		},
	)
	return b
}

func (b *Base) base() *Base { return b }

// API returns the contract version the builder declares.
func (b *Base) API() string { return b.api }

// OptionDefinitions returns the builder's option schema.
func (b *Base) OptionDefinitions() *options.Registry { return b.schema }

// AddOptionDefinitions registers defs and normalizes their keys so the new
// defaults take effect immediately.
func (b *Base) AddOptionDefinitions(defs ...options.Definition) *Base {
	b.schema.Register(defs...)
	keys := make([]string, 0, len(defs))
	for _, def := range defs {
		keys = append(keys, def.Key)
	}
	b.cfg.Normalize(keys...)
	return b
}

// Config returns the normalized configuration.
func (b *Base) Config() *config.Config { return b.cfg }

// AddConfig merges raw values into the configuration and normalizes them.
func (b *Base) AddConfig(values map[string]any) *Base {
	b.cfg.SetRaw(values)
	return b
}

// SetLogger replaces the log sink. nil restores the discard logger.
func (b *Base) SetLogger(logger *slog.Logger) *Base {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b.logger = logger
	return b
}

// Logger returns the log sink.
func (b *Base) Logger() *slog.Logger { return b.logger }

// Log forwards msg and args to the log sink at info level.
func (b *Base) Log(msg string, args ...any) *Base {
	b.logger.Info(msg, args...)
	return b
}

// Init is the first hook. The default does nothing.
func (b *Base) Init(context.Context) error { return nil }

// Prepare fills gaps in the section hierarchy before rendering.
func (b *Base) Prepare(_ context.Context, sg *styleguide.StyleGuide) (*styleguide.StyleGuide, error) {
	added := sg.CompleteHierarchy()
	if len(added) > 0 {
		b.logger.Debug("Added missing parent sections", logfields.Count(len(added)))
	}
	return sg, nil
}

// Build renders the style guide. The default does nothing.
func (b *Base) Build(_ context.Context, sg *styleguide.StyleGuide) (*styleguide.StyleGuide, error) {
	return sg, nil
}

// Clone copies the builder at builderPath into destination so it can be
// customized. Hidden files and node_modules are skipped.
func (b *Base) Clone(ctx context.Context, builderPath, destination string) error {
	b.Log("Creating a new builder in "+destination+"...", logfields.Path(destination))
	if err := clone.CopyDirectory(ctx, builderPath, destination, clone.Options{Exclude: clone.HiddenOrDependency}); err != nil {
		return err
	}
	b.Log("Builder cloned to " + destination)
	return nil
}
