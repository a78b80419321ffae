package workspace

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/hashicorp/go-hclog"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sariflens/sariflens/pkg/pathutil"
)

const defaultStatCacheSize = 1024

// Snapshot is a read-only listing of the non-ignored files under a workspace
// root, taken once. The resolution engine never watches the filesystem; a
// consumer that wants a fresher view takes a new snapshot.
type Snapshot struct {
	root  string
	files []string
}

// Scan walks the workspace root and collects every non-ignored regular file
// as a file:// URI. Ignore rules come from the .gitignore files under the
// root; the .git directory itself is always skipped.
func Scan(root string, logger hclog.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	patterns, err := gitignore.ReadPatterns(osfs.New(absRoot), nil)
	if err != nil {
		// A broken .gitignore should not block enumeration.
		logger.Debug("failed to read gitignore patterns", "root", absRoot, "error", err)
		patterns = nil
	}
	matcher := gitignore.NewMatcher(patterns)

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == absRoot {
				return walkErr
			}
			logger.Debug("skipping unreadable entry", "path", path, "error", walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil || rel == "." {
			return nil
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if d.IsDir() {
			if d.Name() == ".git" || matcher.Match(parts, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if matcher.Match(parts, false) {
			return nil
		}
		files = append(files, pathutil.FileURI(path))
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("workspace scanned", "root", absRoot, "files", len(files))
	return &Snapshot{root: absRoot, files: files}, nil
}

// Root returns the absolute workspace root the snapshot was taken from.
func (s *Snapshot) Root() string {
	return s.root
}

// Files returns the snapshot's file URIs in walk order.
func (s *Snapshot) Files() []string {
	return s.files
}

// StatChecker answers existence queries for local file URIs with an LRU
// memoization layer, so repeated probes of the same candidate (every
// re-rendering pass asks about the same files) cost one stat each.
type StatChecker struct {
	cache *lru.Cache[string, bool]
}

// NewStatChecker creates a StatChecker; size <= 0 selects the default cache
// capacity.
func NewStatChecker(size int) (*StatChecker, error) {
	if size <= 0 {
		size = defaultStatCacheSize
	}
	cache, err := lru.New[string, bool](size)
	if err != nil {
		return nil, err
	}
	return &StatChecker{cache: cache}, nil
}

// Exists reports whether the URI refers to an existing regular file. Results
// are memoized for the checker's lifetime.
func (c *StatChecker) Exists(ctx context.Context, localURI string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if exists, ok := c.cache.Get(localURI); ok {
		return exists, nil
	}
	path, err := pathutil.FilePath(localURI)
	if err != nil {
		return false, err
	}
	info, statErr := os.Stat(path)
	exists := statErr == nil && !info.IsDir()
	c.cache.Add(localURI, exists)
	return exists, nil
}
