package builder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/kssbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/kssbuilder/internal/logfields"
	"git.home.luguber.info/inful/kssbuilder/internal/options"
)

// Kind classifies what a builder reference resolved to.
type Kind int

const (
	// Unrecognized references export nothing that can be constructed.
	Unrecognized Kind = iota
	// Constructible references yield a constructor.
	Constructible
	// LegacyDescriptor references describe a builder of the retired 2.x
	// shape. They are never constructed.
	LegacyDescriptor
)

func (k Kind) String() string {
	switch k {
	case Constructible:
		return "constructible"
	case LegacyDescriptor:
		return "legacy"
	default:
		return "unrecognized"
	}
}

// Resolution is the outcome of resolving a builder reference.
type Resolution struct {
	Kind Kind
	// Name identifies the module, when one was found.
	Name string
	// Dir is the module's source directory, when it has one.
	Dir string
	New Constructor
	// Declared is the version a legacy descriptor claims to implement.
	Declared string
	// Options are extra definitions declared by a manifest.
	Options []options.Definition
}

// Loader resolves builder references into checked builder instances.
type Loader struct {
	modules  *Modules
	fetcher  Fetcher
	logger   *slog.Logger
	strict   bool
	fallback string
	required string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithModules sets the registry module names resolve against.
func WithModules(m *Modules) LoaderOption {
	return func(l *Loader) { l.modules = m }
}

// WithFetcher sets how remote locators are retrieved.
func WithFetcher(f Fetcher) LoaderOption {
	return func(l *Loader) { l.fetcher = f }
}

// WithLogger sets the logger handed to loaded builders.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// WithStrict disables the default-builder fallback, so construction and
// resolution failures are returned instead.
func WithStrict(strict bool) LoaderOption {
	return func(l *Loader) { l.strict = strict }
}

// WithFallback names the module used when a reference yields no builder.
func WithFallback(name string) LoaderOption {
	return func(l *Loader) { l.fallback = name }
}

// WithRequired sets the contract version builders are checked against.
func WithRequired(version string) LoaderOption {
	return func(l *Loader) { l.required = version }
}

// NewLoader creates a Loader using the default module registry.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		modules:  DefaultModules(),
		logger:   slog.New(slog.DiscardHandler),
		fallback: DefaultModule,
		required: APIVersion,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves ref, constructs the builder, and checks it against the
// required contract version.
//
// ref may be a Constructor, a func() (any, error), a func() Builder, a
// Builder instance, a *Manifest, or a locator string. Any other type fails
// with ErrInvalidReferenceType.
//
// Unless the loader is strict, a reference that cannot be resolved or whose
// constructor fails is replaced by the fallback module.
func (l *Loader) Load(ctx context.Context, ref any) (Builder, error) {
	res, err := l.Resolve(ctx, ref)
	switch {
	case errors.Is(err, ErrInvalidReferenceType):
		return nil, err
	case err != nil:
		if l.strict {
			return nil, err
		}
		l.warnFallback(ctx, "cannot resolve builder", refName(ref), err)
		res, err = l.fallbackResolution()
		if err != nil {
			return nil, err
		}
	}

	switch res.Kind {
	case LegacyDescriptor:
		return nil, incompatible(l.required, res.Declared)
	case Unrecognized:
		if l.strict {
			return nil, ferrors.BuilderError("module does not export a builder").
				WithCause(ErrNoBuilder).
				WithContext("module", res.Name).
				Build()
		}
		l.warnFallback(ctx, "module does not export a builder", res.Name, ErrNoBuilder)
		fb, fbErr := l.fallbackResolution()
		if fbErr != nil {
			return nil, fbErr
		}
		fb.Options = res.Options
		res = fb
	}

	instance, err := construct(res.New)
	if err != nil {
		if l.strict {
			return nil, ferrors.BuilderError("failed to construct builder").
				WithCause(err).
				WithContext("module", res.Name).
				Build()
		}
		l.warnFallback(ctx, "failed to construct builder", res.Name, err)
		fb, fbErr := l.fallbackResolution()
		if fbErr != nil {
			return nil, fbErr
		}
		if instance, err = construct(fb.New); err != nil {
			return nil, ferrors.InternalError("failed to construct default builder").
				WithCause(err).
				Build()
		}
	}

	b, err := CheckCompatibility(instance, l.required)
	if err != nil {
		return nil, err
	}
	b.SetLogger(l.logger)
	if len(res.Options) > 0 {
		b.AddOptionDefinitions(res.Options...)
	}
	l.logger.Debug("Builder loaded", logfields.Builder(res.Name), logfields.APIVersion(b.API()))
	return b, nil
}

// Resolve classifies ref without constructing anything.
func (l *Loader) Resolve(ctx context.Context, ref any) (Resolution, error) {
	switch r := ref.(type) {
	case Constructor:
		return constructible(r), nil
	case func() (any, error):
		return constructible(r), nil
	case func() Builder:
		return constructible(func() (any, error) { return r(), nil }), nil
	case Builder:
		return constructible(func() (any, error) { return r, nil }), nil
	case *Manifest:
		return l.resolveManifest(r, "", "")
	case string:
		return l.resolveLocator(ctx, r)
	default:
		return Resolution{}, invalidReference(ref)
	}
}

func constructible(fn Constructor) Resolution {
	if fn == nil {
		return Resolution{Kind: Unrecognized}
	}
	return Resolution{Kind: Constructible, New: fn}
}

// resolveLocator tries, in order: a remote git repository, a registered
// module name, and a filesystem path.
func (l *Loader) resolveLocator(ctx context.Context, locator string) (Resolution, error) {
	if locator == "" {
		return Resolution{}, moduleNotFound(locator)
	}
	if IsRemote(locator) {
		if l.fetcher == nil {
			return Resolution{}, ferrors.ConfigError("remote builders are not enabled").
				WithContext("url", locator).
				Build()
		}
		dir, err := l.fetcher.Fetch(ctx, locator)
		if err != nil {
			return Resolution{}, err
		}
		return l.resolvePath(dir)
	}
	if mod, ok := l.modules.Lookup(locator); ok {
		return moduleResolution(mod), nil
	}
	abs, err := filepath.Abs(locator)
	if err != nil {
		return Resolution{}, err
	}
	return l.resolvePath(abs)
}

func (l *Loader) resolvePath(path string) (Resolution, error) {
	if mod, ok := l.modules.LookupPath(path); ok {
		return moduleResolution(mod), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Resolution{}, moduleNotFound(path)
		}
		return Resolution{}, err
	}

	dir, manifestPath := path, path
	if info.IsDir() {
		manifestPath = filepath.Join(path, ManifestFile)
		if _, statErr := os.Stat(manifestPath); errors.Is(statErr, fs.ErrNotExist) {
			// A directory without a manifest exports nothing.
			return Resolution{Kind: Unrecognized, Name: path, Dir: path}, nil
		}
	} else {
		dir = filepath.Dir(path)
	}

	m, err := ReadManifest(manifestPath)
	if err != nil {
		return Resolution{}, ferrors.ValidationError("invalid builder manifest").
			WithCause(err).
			WithContext("path", manifestPath).
			Build()
	}
	return l.resolveManifest(m, dir, manifestPath)
}

func (l *Loader) resolveManifest(m *Manifest, dir, source string) (Resolution, error) {
	if m == nil {
		return Resolution{}, invalidReference(m)
	}
	if m.Generator != nil {
		return Resolution{
			Kind:     LegacyDescriptor,
			Name:     source,
			Dir:      dir,
			Declared: m.Generator.ImplementsAPI,
		}, nil
	}

	defs, err := options.FromDeclarations(m.Options)
	if err != nil {
		return Resolution{}, ferrors.ValidationError("invalid builder options").
			WithCause(err).
			WithContext("path", source).
			Build()
	}
	mod, ok := l.modules.Lookup(m.Extends)
	if !ok {
		return Resolution{}, moduleNotFound(m.Extends)
	}
	res := moduleResolution(mod)
	res.Options = defs
	if dir != "" {
		res.Dir = dir
	}
	return res, nil
}

func moduleResolution(mod Module) Resolution {
	return Resolution{Kind: Constructible, Name: mod.Name, Dir: mod.Path, New: mod.New}
}

func (l *Loader) fallbackResolution() (Resolution, error) {
	mod, ok := l.modules.Lookup(l.fallback)
	if !ok {
		return Resolution{}, ferrors.InternalError("default builder is not registered").
			WithCause(ErrModuleNotFound).
			WithContext("module", l.fallback).
			Build()
	}
	return moduleResolution(mod), nil
}

// warnFallback reports that the fallback module replaces a builder that could
// not be used. Strict loaders return the error instead.
func (l *Loader) warnFallback(ctx context.Context, msg, module string, cause error) {
	werr := ferrors.NewError(ferrors.CategoryBuilder, msg).
		Warning().
		WithCause(cause).
		WithContext("module", module).
		Build()
	l.logger.Log(ctx, werr.Level(), "Using default builder",
		logfields.Builder(l.fallback), slog.String("module", module), logfields.Error(werr))
}

func refName(ref any) string {
	if s, ok := ref.(string); ok {
		return s
	}
	return fmt.Sprintf("%T", ref)
}

// construct calls fn, turning a panic into an error.
func construct(fn Constructor) (instance any, err error) {
	if fn == nil {
		return nil, ErrNoBuilder
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("builder constructor panicked: %v", r)
		}
	}()
	return fn()
}

// SourceDir returns the directory holding the builder named by locator, for
// cloning. Modules without a source directory cannot be cloned.
func (l *Loader) SourceDir(ctx context.Context, locator string) (string, error) {
	res, err := l.resolveLocator(ctx, locator)
	if err != nil {
		return "", err
	}
	if res.Dir == "" {
		return "", ferrors.ValidationError("builder has no source directory to clone").
			WithContext("module", res.Name).
			Build()
	}
	return res.Dir, nil
}
