package corpus

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/BaSui01/nlpvocab/types"
)

// Loader reads the raw bytes of one document into buf.
type Loader interface {
	Load(ctx context.Context, path string, buf *bytes.Buffer) error

	// SupportedTypes returns the file suffixes this loader handles (e.g. ".txt").
	SupportedTypes() []string
}

// LoaderRegistry routes documents to a Loader by file suffix. The longest
// matching suffix wins, so ".txt.gz" is preferred over ".gz".
type LoaderRegistry struct {
	mu      sync.RWMutex
	loaders map[string]Loader // suffix (lowercase, with dot) -> loader
}

// NewLoaderRegistry creates a registry with the plain text and gzip loaders.
func NewLoaderRegistry() *LoaderRegistry {
	r := &LoaderRegistry{loaders: make(map[string]Loader)}
	for _, l := range []Loader{TextLoader{}, GzipLoader{}} {
		for _, ext := range l.SupportedTypes() {
			r.loaders[strings.ToLower(ext)] = l
		}
	}
	return r
}

// Register adds or replaces the loader for suffix.
func (r *LoaderRegistry) Register(suffix string, l Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders[strings.ToLower(suffix)] = l
}

// Lookup returns the loader for path.
func (r *LoaderRegistry) Lookup(path string) (Loader, error) {
	lower := strings.ToLower(path)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		best    Loader
		bestLen int
	)
	for suffix, l := range r.loaders {
		if len(suffix) > bestLen && strings.HasSuffix(lower, suffix) {
			best, bestLen = l, len(suffix)
		}
	}
	if best == nil {
		return nil, types.NewError(types.ErrValidation, "unsupported document type").WithPath(path)
	}
	return best, nil
}

// SupportedTypes returns all registered suffixes, sorted.
func (r *LoaderRegistry) SupportedTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.loaders))
	for ext := range r.loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// TextLoader reads plain text files.
type TextLoader struct{}

func (TextLoader) Load(ctx context.Context, path string, buf *bytes.Buffer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("text loader: %w", err)
	}
	defer f.Close()

	if _, err := buf.ReadFrom(f); err != nil {
		return fmt.Errorf("text loader: %w", err)
	}
	return nil
}

func (TextLoader) SupportedTypes() []string {
	return []string{".txt"}
}

// GzipLoader reads gzip-compressed text files.
type GzipLoader struct{}

func (GzipLoader) Load(ctx context.Context, path string, buf *bytes.Buffer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("gzip loader: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("gzip loader: %w", err)
	}
	defer zr.Close()

	if _, err := io.Copy(buf, zr); err != nil {
		return fmt.Errorf("gzip loader: %w", err)
	}
	return nil
}

func (GzipLoader) SupportedTypes() []string {
	return []string{".txt.gz", ".gz"}
}
