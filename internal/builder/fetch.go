package builder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"

	ferrors "git.home.luguber.info/inful/kssbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/kssbuilder/internal/logfields"
)

// Fetcher retrieves a remote builder and returns the local directory holding it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// IsRemote reports whether locator names a git repository rather than a
// module name or local path.
func IsRemote(locator string) bool {
	switch {
	case strings.HasPrefix(locator, "https://"),
		strings.HasPrefix(locator, "http://"),
		strings.HasPrefix(locator, "ssh://"),
		strings.HasPrefix(locator, "git@"),
		strings.HasPrefix(locator, "file://"):
		return true
	}
	return strings.HasSuffix(locator, ".git")
}

// GitFetcher clones remote builders into CacheDir.
type GitFetcher struct {
	CacheDir string
	// Depth limits history. Zero fetches everything.
	Depth  int
	Logger *slog.Logger
}

// Fetch clones url into a directory under CacheDir named after the url.
// Any previous checkout is removed first, so every fetch is fresh.
func (f GitFetcher) Fetch(ctx context.Context, url string) (string, error) {
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}
	dir := filepath.Join(f.CacheDir, cacheName(url))

	if err := os.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("failed to remove existing directory: %w", err)
	}

	logger.Debug("Fetching builder", logfields.URL(url), logfields.Path(dir))
	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:          url,
		Depth:        f.Depth,
		SingleBranch: true,
	})
	if err != nil {
		return "", ferrors.GitError("failed to fetch builder").
			WithCause(err).
			WithContext("url", url).
			Build()
	}

	if ref, headErr := repo.Head(); headErr == nil {
		logger.Info("Builder fetched", logfields.URL(url), slog.String("commit", ref.Hash().String()[:8]))
	}
	return dir, nil
}

// cacheName turns a URL into a single safe path element.
func cacheName(url string) string {
	name := url
	if i := strings.Index(name, "://"); i >= 0 {
		name = name[i+3:]
	}
	name = strings.TrimSuffix(strings.TrimSuffix(name, "/"), ".git")
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	out := strings.Trim(sb.String(), "._")
	if out == "" {
		return "builder"
	}
	return out
}
