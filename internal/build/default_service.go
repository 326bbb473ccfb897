package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/kssbuilder/internal/builder"
	"git.home.luguber.info/inful/kssbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/kssbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/kssbuilder/internal/logfields"
	"git.home.luguber.info/inful/kssbuilder/internal/metrics"
	"git.home.luguber.info/inful/kssbuilder/internal/observability"
	"git.home.luguber.info/inful/kssbuilder/internal/options"
	"git.home.luguber.info/inful/kssbuilder/internal/source"
	"git.home.luguber.info/inful/kssbuilder/internal/styleguide"
)

// Stage names used in logs and metrics.
const (
	StageLoad     = "load"
	StageInit     = "init"
	StageDiscover = "discover"
	StageParse    = "parse"
	StagePrepare  = "prepare"
	StageBuild    = "build"
)

// Parser turns source files into a style guide.
type Parser interface {
	Parse(ctx context.Context, files []string) (*styleguide.StyleGuide, error)
}

// Discoverer lists the source files under roots that match mask.
type Discoverer func(ctx context.Context, roots []string, mask string) ([]string, error)

// DefaultService is the standard implementation of Service.
type DefaultService struct {
	loader   *builder.Loader
	parser   Parser
	discover Discoverer
	recorder metrics.Recorder
	logger   *slog.Logger
	newID    func() string
}

// NewService creates a DefaultService that loads builders with loader.
func NewService(loader *builder.Loader) *DefaultService {
	if loader == nil {
		loader = builder.NewLoader()
	}
	return &DefaultService{
		loader:   loader,
		parser:   styleguide.FileParser{},
		discover: source.Discover,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		newID:    uuid.NewString,
	}
}

// WithParser sets how source files are parsed.
func (s *DefaultService) WithParser(p Parser) *DefaultService {
	s.parser = p
	return s
}

// WithDiscoverer sets how source files are found.
func (s *DefaultService) WithDiscoverer(d Discoverer) *DefaultService {
	s.discover = d
	return s
}

// WithRecorder sets the metrics recorder.
func (s *DefaultService) WithRecorder(r metrics.Recorder) *DefaultService {
	s.recorder = r
	return s
}

// WithLogger sets the logger for pipeline messages.
func (s *DefaultService) WithLogger(l *slog.Logger) *DefaultService {
	s.logger = l
	return s
}

// Run executes the complete build pipeline.
func (s *DefaultService) Run(ctx context.Context, req Request) (*Result, error) {
	startTime := time.Now()
	result := &Result{
		StartTime: startTime,
		BuildID:   s.newID(),
	}
	ctx = observability.WithBuildID(ctx, result.BuildID)

	finish := func(err error) (*Result, error) {
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(startTime)
		s.recorder.ObserveBuildDuration(result.Duration)
		switch {
		case err == nil:
			result.Status = StatusSuccess
			s.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
			observability.InfoContext(ctx, s.logger, "Build completed",
				logfields.Count(result.Sections),
				logfields.DurationMS(float64(result.Duration.Milliseconds())))
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			result.Status = StatusCancelled
			s.recorder.IncBuildOutcome(metrics.BuildOutcomeCanceled)
		default:
			result.Status = StatusFailed
			s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		}
		return result, err
	}

	// Stage 1: load the builder
	var b builder.Builder
	err := s.stage(ctx, StageLoad, func(ctx context.Context) error {
		var loadErr error
		b, loadErr = s.loader.Load(ctx, builderReference(req))
		switch {
		case loadErr == nil:
			s.recorder.IncBuilderLoad(metrics.LoadLoaded)
		case errors.Is(loadErr, builder.ErrIncompatibleBuilderVersion):
			s.recorder.IncBuilderLoad(metrics.LoadIncompatible)
		default:
			s.recorder.IncBuilderLoad(metrics.LoadFailed)
		}
		return loadErr
	})
	if err != nil {
		return finish(err)
	}
	result.API = b.API()
	ctx = observability.WithBuilder(ctx, fmt.Sprintf("%T", b))
	if tagged, ok := b.(interface{ SetBuildID(string) }); ok {
		tagged.SetBuildID(result.BuildID)
	}

	b.AddConfig(req.Config)
	cfg := b.Config()
	result.Destination = cfg.String(builder.OptionDestination)

	// Stage 2: builder initialization
	if err := s.stage(ctx, StageInit, b.Init); err != nil {
		return finish(err)
	}

	// Stage 3: source discovery
	var files []string
	err = s.stage(ctx, StageDiscover, func(ctx context.Context) error {
		roots := cfg.Strings(builder.OptionSource)
		if len(roots) == 0 {
			return ferrors.ConfigError("no source directory given").
				WithCause(ErrNoSources).
				Build()
		}
		var discoverErr error
		files, discoverErr = s.discover(ctx, roots, cfg.String(builder.OptionMask))
		if discoverErr != nil {
			return ferrors.FileSystemError("source discovery failed").
				WithCause(fmt.Errorf("%w: %w", ErrDiscovery, discoverErr)).
				Build()
		}
		observability.InfoContext(ctx, s.logger, "Source files found", logfields.Count(len(files)))
		return nil
	})
	if err != nil {
		return finish(err)
	}
	result.Files = len(files)

	// Stage 4: parse models
	var sg *styleguide.StyleGuide
	err = s.stage(ctx, StageParse, func(ctx context.Context) error {
		var parseErr error
		sg, parseErr = s.parser.Parse(ctx, files)
		if parseErr != nil {
			return ferrors.BuildError("cannot parse style guide").
				WithCause(fmt.Errorf("%w: %w", ErrParse, parseErr)).
				Build()
		}
		return nil
	})
	if err != nil {
		return finish(err)
	}

	// Stage 5: prepare (hierarchy completion)
	before := sg.Len()
	err = s.stage(ctx, StagePrepare, func(ctx context.Context) error {
		var prepErr error
		sg, prepErr = b.Prepare(ctx, sg)
		return prepErr
	})
	if err != nil {
		return finish(err)
	}
	result.Synthesized = sg.Len() - before
	result.Sections = sg.Len()
	s.recorder.AddSynthesizedSections(result.Synthesized)
	s.recorder.SetSections(result.Sections)

	// Stage 6: render
	err = s.stage(ctx, StageBuild, func(ctx context.Context) error {
		_, buildErr := b.Build(ctx, sg)
		return buildErr
	})
	return finish(err)
}

// stage runs fn, recording its duration and result.
func (s *DefaultService) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		s.recorder.IncStageResult(name, metrics.ResultCanceled)
		return err
	}
	ctx = observability.WithStage(ctx, name)
	observability.DebugContext(ctx, s.logger, "Stage started")

	start := time.Now()
	err := fn(ctx)
	s.recorder.ObserveStageDuration(name, time.Since(start))

	switch {
	case err == nil:
		s.recorder.IncStageResult(name, metrics.ResultSuccess)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.recorder.IncStageResult(name, metrics.ResultCanceled)
	default:
		s.recorder.IncStageResult(name, metrics.ResultFatal)
		observability.ErrorContext(ctx, s.logger, "Stage failed", logfields.Error(err))
	}
	return err
}

// builderSelector normalizes only the builder key, without path resolution,
// so registered module names pass through unchanged.
var builderSelector = options.NewRegistry().Register(options.Definition{
	Key:         builder.OptionBuilder,
	Cardinality: options.Single,
})

// builderReference picks the explicit reference, then the last "builder"
// config value, then the default module.
func builderReference(req Request) any {
	if req.Builder != nil {
		return req.Builder
	}
	if ref := config.New(builderSelector).SetRaw(req.Config).String(builder.OptionBuilder); ref != "" {
		return ref
	}
	return builder.DefaultModule
}
