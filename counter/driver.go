package counter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/BaSui01/nlpvocab/corpus"
	"github.com/BaSui01/nlpvocab/internal/ctxkeys"
	"github.com/BaSui01/nlpvocab/internal/metrics"
	"github.com/BaSui01/nlpvocab/internal/pool"
	"github.com/BaSui01/nlpvocab/internal/telemetry"
	"github.com/BaSui01/nlpvocab/tokenizer"
	"github.com/BaSui01/nlpvocab/types"
	"github.com/BaSui01/nlpvocab/vocab"
)

// defaultProgressEvery is the number of files between progress log lines.
const defaultProgressEvery = 1000

var (
	pathSlices = pool.NewSlicePool[string](128)
	docSlices  = pool.NewSlicePool[string](128)
)

// Result is the outcome of a counting run.
type Result struct {
	// RunID identifies the run in logs and export sinks.
	RunID string
	// Kept holds the tokens that survived partitioning.
	Kept *vocab.Vocabulary
	// Removed holds the tokens cut by min frequency or max size.
	Removed *vocab.Vocabulary
	// Files is the number of files visited; Skipped of those yielded no text.
	Files   int
	Skipped int
	// Tokens is the number of tokens counted before partitioning.
	Tokens   int64
	Duration time.Duration
}

// Driver counts tokens over a corpus.
type Driver struct {
	opts      Options
	tokenizer tokenizer.Tokenizer
	reader    *corpus.Reader
	metrics   *metrics.Collector
	logger    *zap.Logger

	progressEvery int
}

// NewDriver validates opts and returns a Driver.
func NewDriver(tok tokenizer.Tokenizer, reader *corpus.Reader, opts Options, logger *zap.Logger) (*Driver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, types.NewError(types.ErrValidation, "tokenizer is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if reader == nil {
		reader = corpus.NewReader(corpus.ReaderConfig{}, nil, logger)
	}
	return &Driver{
		opts:      opts,
		tokenizer: tok,
		reader:    reader,
		logger:    logger.With(zap.String("component", "counter"), zap.String("tokenizer", tok.Name())),

		progressEvery: defaultProgressEvery,
	}, nil
}

// WithMetrics records run metrics into c.
func (d *Driver) WithMetrics(c *metrics.Collector) *Driver {
	d.metrics = c
	return d
}

// Options returns the driver options.
func (d *Driver) Options() Options { return d.opts }

type batchResult struct {
	vocab   *vocab.Vocabulary
	files   int
	skipped int
	tokens  int
}

// Run counts every document under src and partitions the result.
func (d *Driver) Run(ctx context.Context, src string) (_ *Result, err error) {
	if _, err := os.Stat(src); err != nil {
		return nil, types.NewError(types.ErrIO, "source path does not exist").WithPath(src).WithCause(err)
	}

	runID := uuid.NewString()
	start := time.Now()
	logger := d.logger.With(zap.String("run_id", runID))

	ctx = ctxkeys.WithTokenizer(ctxkeys.WithRunID(ctx, runID), d.tokenizer.Name())
	ctx, span := telemetry.Tracer("counter").Start(ctx, "counter.run")
	span.SetAttributes(
		attribute.String("run_id", runID),
		attribute.String("src", src),
		attribute.String("tokenizer", d.tokenizer.Name()),
		attribute.Int("batch_size", d.opts.BatchSize),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	logger.Info("counting started",
		zap.String("src", src),
		zap.Int("batch_size", d.opts.BatchSize),
		zap.Int64("min_freq", d.opts.MinFreq),
		zap.Int("workers", d.opts.Workers),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Workers)

	results := make(chan batchResult, d.opts.Workers)
	total := vocab.New()
	res := &Result{RunID: runID}

	folded := make(chan struct{})
	go func() {
		defer close(folded)
		for r := range results {
			total.Merge(r.vocab)
			res.Files += r.files
			res.Skipped += r.skipped
			res.Tokens += int64(r.tokens)
		}
	}()

	// Per-batch debug lines: the first few, then one per interval.
	batchLog := &rate.Sometimes{First: 10, Interval: 5 * time.Second}
	batchNo := 0
	seen := 0
	batch := pathSlices.Get()

	dispatch := func() {
		paths, n := batch, batchNo
		batch = pathSlices.Get()
		batchNo++
		g.Go(func() error {
			defer pathSlices.Put(paths)
			r, err := d.countBatch(gctx, n, paths, batchLog)
			if err != nil {
				return err
			}
			select {
			case results <- r:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	walkErr := corpus.Walk(gctx, src, func(path string) error {
		if err := gctx.Err(); err != nil {
			return err
		}
		seen++
		batch = append(batch, path)
		if seen%d.progressEvery == 0 {
			logger.Info("processing", zap.Int("files", seen), zap.String("path", path))
		}
		if len(batch) >= d.opts.BatchSize {
			dispatch()
		}
		return nil
	})
	if walkErr == nil && len(batch) > 0 {
		dispatch()
	}
	pathSlices.Put(batch)

	waitErr := g.Wait()
	close(results)
	<-folded

	if waitErr != nil {
		return nil, waitErr
	}
	if walkErr != nil {
		return nil, walkErr
	}

	res.Kept, res.Removed = d.partition(total)
	res.Duration = time.Since(start)

	d.metrics.SetVocabularySize(d.tokenizer.Name(), res.Kept.Len(), res.Removed.Len())
	span.SetAttributes(
		attribute.Int("files", res.Files),
		attribute.Int64("tokens", res.Tokens),
		attribute.Int("kept", res.Kept.Len()),
		attribute.Int("removed", res.Removed.Len()),
	)
	logger.Info("counting finished",
		zap.Int("files", res.Files),
		zap.Int("skipped", res.Skipped),
		zap.Int64("tokens", res.Tokens),
		zap.Int("kept", res.Kept.Len()),
		zap.Int("removed", res.Removed.Len()),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}

// countBatch reads, tokenizes and counts one batch of documents.
func (d *Driver) countBatch(ctx context.Context, n int, paths []string, batchLog *rate.Sometimes) (batchResult, error) {
	start := time.Now()
	name := d.tokenizer.Name()

	docs := docSlices.Get()
	defer func() { docSlices.Put(docs) }()

	r := batchResult{files: len(paths)}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return batchResult{}, err
		}
		text := d.reader.ReadContent(ctx, path)
		if text == "" {
			r.skipped++
			d.metrics.RecordDocument(name, true)
			continue
		}
		d.metrics.RecordDocument(name, false)
		docs = append(docs, text)
	}

	tokens, err := d.tokenizer.Tokenize(docs)
	if err != nil {
		if _, ok := types.AsError(err); !ok {
			err = types.NewError(types.ErrTokenizerError, "tokenize").WithCause(err)
		}
		return batchResult{}, fmt.Errorf("batch %d: %w", n, err)
	}

	r.vocab = vocab.New(tokens...)
	r.tokens = len(tokens)
	d.metrics.RecordBatch(name, r.tokens, time.Since(start))
	batchLog.Do(func() {
		d.logger.Debug("batch counted",
			zap.Int("batch", n),
			zap.Int("files", r.files),
			zap.Int("tokens", r.tokens),
			zap.Int("distinct", r.vocab.Len()),
		)
	})
	return r, nil
}

// partition applies the min frequency split, then the size cap.
func (d *Driver) partition(total *vocab.Vocabulary) (kept, removed *vocab.Vocabulary) {
	kept, removed = total.SplitByFrequency(d.opts.MinFreq)
	if d.opts.MaxSize > 0 {
		var overflow *vocab.Vocabulary
		kept, overflow = kept.SplitBySize(d.opts.MaxSize)
		removed.Merge(overflow)
	}
	return kept, removed
}

// Persist saves the kept vocabulary of res to path.
func (d *Driver) Persist(ctx context.Context, res *Result, path string, format vocab.Format) (err error) {
	if err := format.Validate(); err != nil {
		return err
	}
	if res == nil || res.Kept == nil {
		return types.NewError(types.ErrValidation, "nothing to persist")
	}

	_, span := telemetry.Tracer("counter").Start(ctx, "counter.persist")
	span.SetAttributes(attribute.String("path", path), attribute.String("format", format.String()))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	start := time.Now()
	err = res.Kept.Save(path, format)
	d.metrics.RecordPersist(format.String(), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("persist run %s: %w", res.RunID, err)
	}

	d.logger.Info("vocabulary saved",
		zap.String("run_id", res.RunID),
		zap.String("path", path),
		zap.String("format", format.String()),
		zap.Int("size", res.Kept.Len()),
	)
	return nil
}

// IsCanceled reports whether err came from context cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
