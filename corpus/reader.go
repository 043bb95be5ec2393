package corpus

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/BaSui01/nlpvocab/internal/ctxkeys"
	"github.com/BaSui01/nlpvocab/internal/pool"
	"github.com/BaSui01/nlpvocab/types"
)

// ReaderConfig configures document post-processing.
type ReaderConfig struct {
	Normalization Normalization
	LowerCase     bool
}

// Reader loads documents and prepares their text for tokenization.
// It is safe for concurrent use.
type Reader struct {
	cfg      ReaderConfig
	registry *LoaderRegistry
	logger   *zap.Logger
}

// NewReader creates a Reader. A nil registry uses NewLoaderRegistry.
func NewReader(cfg ReaderConfig, registry *LoaderRegistry, logger *zap.Logger) *Reader {
	if registry == nil {
		registry = NewLoaderRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Normalization == "" {
		cfg.Normalization = NormNone
	}
	return &Reader{
		cfg:      cfg,
		registry: registry,
		logger:   logger.With(zap.String("component", "corpus_reader")),
	}
}

// Read returns the processed text of the document at path.
func (r *Reader) Read(ctx context.Context, path string) (string, error) {
	l, err := r.registry.Lookup(path)
	if err != nil {
		return "", err
	}

	buf := pool.ByteBufferPool.Get()
	defer pool.ByteBufferPool.Put(buf)

	if err := l.Load(ctx, path, buf); err != nil {
		return "", types.NewError(types.ErrIO, "read document").WithPath(path).WithCause(err)
	}
	if !utf8.Valid(buf.Bytes()) {
		return "", types.NewError(types.ErrIO, "document is not valid UTF-8").WithPath(path)
	}

	text := r.cfg.Normalization.Apply(buf.String())
	if r.cfg.LowerCase {
		// cases.Caser is stateful, so one per call.
		text = cases.Lower(language.Und).String(text)
	}
	return text, nil
}

// ReadContent is Read with failures logged and reported as "".
func (r *Reader) ReadContent(ctx context.Context, path string) string {
	text, err := r.Read(ctx, path)
	if err != nil {
		r.logger.Warn("skipping document",
			append(ctxkeys.LogFields(ctx), zap.String("path", path), zap.Error(err))...)
		return ""
	}
	if text == "" {
		r.logger.Warn("skipping empty document",
			append(ctxkeys.LogFields(ctx), zap.String("path", path))...)
	}
	return text
}
