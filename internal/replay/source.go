package replay

import (
	"os"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
)

// sourceCacheSize bounds the path -> lines cache.
const sourceCacheSize = 128

// sourceCache lazily loads and retains source files referenced by the
// trace. Missing or unreadable files cache as nil so the pane renders a
// placeholder instead of retrying every frame.
type sourceCache struct {
	files *lru.Cache[string, []string]
}

func newSourceCache() (*sourceCache, error) {
	files, err := lru.New[string, []string](sourceCacheSize)
	if err != nil {
		return nil, err
	}
	return &sourceCache{files: files}, nil
}

// lines returns the file's lines, loading on first access.
func (c *sourceCache) lines(path string) []string {
	if path == "" {
		return nil
	}
	if cached, ok := c.files.Get(path); ok {
		return cached
	}
	loaded := readLines(path)
	c.files.Add(path, loaded)
	return loaded
}

// warm prefetches every distinct file concurrently. Read failures are
// fine: the pane shows a placeholder for those paths.
func (c *sourceCache) warm(paths []string) {
	var g errgroup.Group
	loaded := make([][]string, len(paths))
	for i, path := range paths {
		if path == "" {
			continue
		}
		i, path := i, path
		g.Go(func() error {
			loaded[i] = readLines(path)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck
	for i, path := range paths {
		if path != "" {
			c.files.Add(path, loaded[i])
		}
	}
}

func readLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
