package styleguide

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates a Markdown model opened a frontmatter
// block but never closed it.
var ErrMissingClosingDelimiter = errors.New("frontmatter start delimiter found but closing delimiter is missing")

// document is the on-disk shape of a YAML or JSON model file. A bare list of
// sections is accepted as well.
type document struct {
	Delimiter string     `yaml:"delimiter"`
	Sections  []*Section `yaml:"sections"`
}

// FileParser builds a style guide from pre-parsed model files: YAML or JSON
// files listing sections, and Markdown files holding one section each.
type FileParser struct {
	// Delimiter fixes the reference delimiter. Empty means auto-detect.
	Delimiter string
}

// Parse reads every file and returns a style guide holding their sections in
// file order. Files with other extensions are skipped.
func (p FileParser) Parse(ctx context.Context, files []string) (*StyleGuide, error) {
	var (
		sections  []*Section
		delimiter = p.Delimiter
	)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		secs, delim, err := ParseFile(file)
		if err != nil {
			return nil, err
		}
		if delimiter == "" {
			delimiter = delim
		}
		sections = append(sections, secs...)
	}
	return New(sections, WithDelimiter(delimiter)), nil
}

// ParseFile decodes the sections held in one model file, along with the
// delimiter the file declares, if any.
func ParseFile(path string) ([]*Section, string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml", ".json", ".md", ".markdown":
	default:
		return nil, "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	var (
		sections []*Section
		delim    string
	)
	if ext == ".md" || ext == ".markdown" {
		s, perr := parseMarkdown(data)
		if perr != nil {
			return nil, "", fmt.Errorf("%s: %w", path, perr)
		}
		if s != nil {
			sections = []*Section{s}
		}
	} else {
		sections, delim, err = parseDocument(data)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", path, err)
		}
	}

	for _, s := range sections {
		if s.SourceFile == "" {
			s.SourceFile = path
		}
	}
	return sections, delim, nil
}

func parseDocument(data []byte) ([]*Section, string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, "", err
	}
	if len(node.Content) == 0 {
		return nil, "", nil
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var sections []*Section
		if err := root.Decode(&sections); err != nil {
			return nil, "", err
		}
		return dropEmpty(sections), "", nil
	}
	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, "", err
	}
	return dropEmpty(doc.Sections), doc.Delimiter, nil
}

func dropEmpty(sections []*Section) []*Section {
	out := sections[:0]
	for _, s := range sections {
		if s != nil && strings.TrimSpace(s.Reference) != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseMarkdown reads one section from YAML frontmatter; the body becomes the
// description. A leading "# " heading supplies the header when the
// frontmatter has none.
func parseMarkdown(data []byte) (*Section, error) {
	fm, body, had, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}
	if !had {
		return nil, nil
	}

	s := &Section{}
	if len(bytes.TrimSpace(fm)) > 0 {
		if err := yaml.Unmarshal(fm, s); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(s.Reference) == "" {
		return nil, nil
	}

	text := strings.TrimLeft(string(body), "\r\n")
	if s.Header == "" && strings.HasPrefix(text, "# ") {
		line, rest, _ := strings.Cut(text, "\n")
		s.Header = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		text = strings.TrimLeft(rest, "\r\n")
	}
	if s.Description == "" {
		s.Description = strings.TrimRight(text, "\r\n")
	}
	if s.Header == "" {
		s.Header = s.Reference
	}
	return s, nil
}

// splitFrontmatter separates a "---" delimited YAML block from the body.
func splitFrontmatter(content []byte) (fm, body []byte, had bool, err error) {
	nl := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = "\r\n"
	}

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}
	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return content[start : start+idx+len(nl)], content[start+idx+len(closeSeq):], true, nil
}
