package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/kssbuilder/internal/builder"
	"git.home.luguber.info/inful/kssbuilder/internal/builder/static"
	"git.home.luguber.info/inful/kssbuilder/internal/config"
	"git.home.luguber.info/inful/kssbuilder/internal/options"
)

// ModelMask matches the pre-parsed style guide models the CLI reads.
const ModelMask = "*.yaml|*.yml|*.json|*.md"

// Global context passed to subcommands.
type Global struct {
	Context context.Context
	Logger  *slog.Logger
	Stdout  io.Writer
}

func (g *Global) ctx() context.Context {
	if g.Context == nil {
		return context.Background()
	}
	return g.Context
}

func (g *Global) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Global) stdout() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config   string           `short:"c" help:"Load options from a YAML, JSON, or TOML file" type:"path"`
	Verbose  int              `short:"v" type:"counter" help:"Display verbose details (repeat for debug logs)"`
	Strict   bool             `help:"Fail when the builder cannot be loaded instead of using the default builder"`
	Set      []string         `help:"Set an option value; repeat for list options" placeholder:"KEY=VALUE" sep:"none"`
	CacheDir string           `name:"cache-dir" help:"Directory remote builders are fetched into" type:"path"`
	Version  kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build a style guide from source models"`
	Clone   CloneCmd   `cmd:"" help:"Clone a style guide builder to customize"`
	Check   CheckCmd   `cmd:"" help:"Check whether a builder is compatible with this version"`
	Options OptionsCmd `cmd:"" help:"List the options a builder accepts"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(NewLogger(os.Stderr, c.Verbose))
	return nil
}

// NewLogger creates the CLI's text logger; any -v enables debug output.
func NewLogger(w io.Writer, verbose int) *slog.Logger {
	level := slog.LevelInfo
	if verbose > 0 {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Loader creates a builder loader honoring the global flags. opts are applied
// last.
func (c *CLI) Loader(g *Global, opts ...builder.LoaderOption) (*builder.Loader, error) {
	cacheDir := c.CacheDir
	if cacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = os.TempDir()
		}
		cacheDir = filepath.Join(base, "kssbuilder", "builders")
	}
	if err := os.MkdirAll(cacheDir, 0o750); err != nil {
		return nil, fmt.Errorf("create builder cache: %w", err)
	}
	return builder.NewLoader(append([]builder.LoaderOption{
		builder.WithStrict(c.Strict),
		builder.WithLogger(g.logger()),
		builder.WithFetcher(builder.GitFetcher{CacheDir: cacheDir, Depth: 1, Logger: g.logger()}),
	}, opts...)...), nil
}

// schema returns the options every invocation understands: the builder base
// table plus the default builder's additions.
func schema() *options.Registry {
	return static.New().OptionDefinitions()
}

// RawConfig merges the config file, then values, then --set pairs. Later
// sources win.
func (c *CLI) RawConfig(values map[string]any) (map[string]any, error) {
	if _, err := config.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	raw := map[string]any{}
	if c.Config != "" {
		fileValues, err := config.LoadFile(c.Config, schema())
		if err != nil {
			return nil, err
		}
		for k, v := range fileValues {
			raw[k] = v
		}
	}
	for k, v := range values {
		raw[k] = v
	}

	set, err := parseSet(c.Set)
	if err != nil {
		return nil, err
	}
	for k, v := range set {
		raw[k] = v
	}

	if c.Verbose > 0 {
		raw[builder.OptionVerbose] = c.Verbose
	}
	return raw, nil
}

// parseSet turns KEY=VALUE pairs into raw values. A key given more than once
// collects its values into a list.
func parseSet(pairs []string) (map[string]any, error) {
	out := map[string]any{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want KEY=VALUE", pair)
		}
		switch prev := out[key].(type) {
		case nil:
			out[key] = value
		case []any:
			out[key] = append(prev, value)
		default:
			out[key] = []any{prev, value}
		}
	}
	return out, nil
}
