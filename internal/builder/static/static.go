// Package static is the built-in default builder. It writes the completed
// style guide as a single JSON document that templates or other tools can
// render.
package static

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inful/mdfp"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/kssbuilder/internal/builder"
	ferrors "git.home.luguber.info/inful/kssbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/kssbuilder/internal/logfields"
	"git.home.luguber.info/inful/kssbuilder/internal/options"
	"git.home.luguber.info/inful/kssbuilder/internal/styleguide"
)

const (
	// Name is the module name the builder registers under.
	Name = builder.DefaultModule
	// OutputFile is written inside the destination directory.
	OutputFile = "styleguide.json"
	// OptionTitle names the style guide.
	OptionTitle = "title"
)

func init() {
	builder.DefaultModules().MustRegister(Module())
}

// Module describes the static builder for a module registry.
func Module() builder.Module {
	return builder.Module{
		Name:        Name,
		Description: "Writes the style guide as " + OutputFile,
		New:         func() (any, error) { return New(), nil },
	}
}

// Builder renders a style guide to JSON.
type Builder struct {
	*builder.Base

	md      goldmark.Markdown
	buildID string
}

// New creates the static builder.
func New() *Builder {
	b := &Builder{
		Base: builder.NewBase(),
		md:   goldmark.New(),
	}
	b.AddOptionDefinitions(options.Definition{
		Key:         OptionTitle,
		Group:       "Style guide:",
		String:      true,
		Cardinality: options.Single,
		Default:     "Style guide",
		Describe:    "Title of the style guide",
	})
	return b
}

// SetBuildID tags the output with the build that produced it.
func (b *Builder) SetBuildID(id string) { b.buildID = id }

// Document is the JSON written by Build.
type Document struct {
	Title     string    `json:"title"`
	BuildID   string    `json:"buildId,omitempty"`
	Delimiter string    `json:"referenceDelimiter"`
	CSS       []string  `json:"css"`
	JS        []string  `json:"js"`
	Sections  []Section `json:"sections"`
}

// Section is one rendered section.
type Section struct {
	Reference       string                `json:"reference"`
	Header          string                `json:"header"`
	Depth           int                   `json:"depth"`
	Parent          string                `json:"parent,omitempty"`
	Children        []string              `json:"children,omitempty"`
	Description     string                `json:"description,omitempty"`
	DescriptionHTML string                `json:"descriptionHtml,omitempty"`
	Markup          string                `json:"markup,omitempty"`
	Modifiers       []styleguide.Modifier `json:"modifiers,omitempty"`
	Custom          map[string]any        `json:"custom,omitempty"`
	SourceFile      string                `json:"sourceFile,omitempty"`
	Synthesized     bool                  `json:"synthesized,omitempty"`
	Fingerprint     string                `json:"fingerprint"`
}

// Build writes <destination>/styleguide.json.
func (b *Builder) Build(ctx context.Context, sg *styleguide.StyleGuide) (*styleguide.StyleGuide, error) {
	doc, err := b.Render(ctx, sg)
	if err != nil {
		return nil, err
	}

	dest := b.Config().String(builder.OptionDestination)
	if dest == "" {
		return nil, ferrors.ConfigError("no destination configured").Build()
	}
	if err := os.MkdirAll(dest, 0o750); err != nil {
		return nil, ferrors.FileSystemError("cannot create destination").
			WithCause(err).
			WithContext("path", dest).
			Build()
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, ferrors.InternalError("cannot encode style guide").WithCause(err).Build()
	}
	out := filepath.Join(dest, OutputFile)
	if err := os.WriteFile(out, append(data, '\n'), 0o600); err != nil {
		return nil, ferrors.FileSystemError("cannot write style guide").
			WithCause(err).
			WithContext("path", out).
			Build()
	}

	b.Log("Style guide written", logfields.Path(out), logfields.Count(len(doc.Sections)))
	return sg, nil
}

// Render converts sg into the output document without writing it.
func (b *Builder) Render(ctx context.Context, sg *styleguide.StyleGuide) (*Document, error) {
	cfg := b.Config()
	doc := &Document{
		Title:     cfg.String(OptionTitle),
		BuildID:   b.buildID,
		Delimiter: sg.ReferenceDelimiter(),
		CSS:       nonNil(cfg.Strings(builder.OptionCSS)),
		JS:        nonNil(cfg.Strings(builder.OptionJS)),
		Sections:  make([]Section, 0, sg.Len()),
	}

	for _, s := range sg.Sections() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rendered, err := b.renderSection(sg, s)
		if err != nil {
			return nil, ferrors.BuildError("cannot render section").
				WithCause(err).
				WithContext("reference", s.Reference).
				Build()
		}
		doc.Sections = append(doc.Sections, rendered)
	}
	return doc, nil
}

func (b *Builder) renderSection(sg *styleguide.StyleGuide, s *styleguide.Section) (Section, error) {
	out := Section{
		Reference:   s.Reference,
		Header:      s.Header,
		Depth:       sg.Depth(s.Reference),
		Description: s.Description,
		Markup:      s.Markup,
		Modifiers:   s.Modifiers,
		Custom:      s.Custom,
		SourceFile:  s.SourceFile,
		Synthesized: s.Synthesized,
	}
	if parent, ok := sg.Parent(s.Reference); ok {
		out.Parent = parent
	}
	for _, child := range sg.Children(s.Reference) {
		out.Children = append(out.Children, child.Reference)
	}

	if strings.TrimSpace(s.Description) != "" {
		var buf bytes.Buffer
		if err := b.md.Convert([]byte(s.Description), &buf); err != nil {
			return Section{}, fmt.Errorf("render description: %w", err)
		}
		out.DescriptionHTML = buf.String()
	}

	fp, err := fingerprint(s)
	if err != nil {
		return Section{}, err
	}
	out.Fingerprint = fp
	return out, nil
}

// fingerprint hashes the section's metadata and description, so unchanged
// sections keep their fingerprint across builds.
func fingerprint(s *styleguide.Section) (string, error) {
	meta := map[string]any{
		"reference": s.Reference,
		"header":    s.Header,
	}
	if s.Markup != "" {
		meta["markup"] = s.Markup
	}
	if len(s.Modifiers) > 0 {
		meta["modifiers"] = s.Modifiers
	}
	for k, v := range s.Custom {
		meta[k] = v
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("serialize section metadata: %w", err)
	}
	return mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(data), "\n"), s.Description), nil
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
