package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/nlpvocab/config"
	"github.com/BaSui01/nlpvocab/corpus"
	"github.com/BaSui01/nlpvocab/counter"
	"github.com/BaSui01/nlpvocab/internal/metrics"
	"github.com/BaSui01/nlpvocab/internal/telemetry"
	"github.com/BaSui01/nlpvocab/store"
	"github.com/BaSui01/nlpvocab/tokenizer"
	"github.com/BaSui01/nlpvocab/types"
	"github.com/BaSui01/nlpvocab/vocab"
)

// =============================================================================
// 📦 Count command
// =============================================================================

// countFlags mirrors config.CountConfig; only flags given on the command
// line override the loaded configuration.
type countFlags struct {
	configPath  string
	name        string
	batchSize   int
	minFreq     int64
	maxSize     int
	fileFormat  string
	unicodeNorm string
	lowerCase   bool
	workers     int
	bpeEncoding string
}

func newCountFlagSet(cmd string, stderr io.Writer) (*flag.FlagSet, *countFlags) {
	defaults := config.DefaultCountConfig()
	f := &countFlags{}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "Path to a YAML or TOML configuration file")
	fs.StringVar(&f.name, "name", "", "Vocabulary name used for Redis/SQL export")
	fs.IntVar(&f.batchSize, "batch_size", defaults.BatchSize, "Documents per batch")
	fs.Int64Var(&f.minFreq, "min_freq", defaults.MinFreq, "Minimum token frequency")
	fs.IntVar(&f.maxSize, "max_size", defaults.MaxSize, "Maximum vocabulary size, 0 for no limit")
	fs.StringVar(&f.fileFormat, "file_format", defaults.FileFormat, "Vocabulary file format")
	fs.StringVar(&f.unicodeNorm, "unicode_norm", defaults.UnicodeNorm, "Unicode normalization form")
	fs.BoolVar(&f.lowerCase, "lower_case", defaults.LowerCase, "Lowercase documents")
	fs.IntVar(&f.workers, "workers", defaults.Workers, "Concurrent batches")
	fs.StringVar(&f.bpeEncoding, "bpe_encoding", defaults.BPEEncoding, "tiktoken encoding for bpe")
	return fs, f
}

// applyFlags copies explicitly set flags over cfg.
func applyFlags(fs *flag.FlagSet, f *countFlags, cfg *config.CountConfig) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "batch_size":
			cfg.BatchSize = f.batchSize
		case "min_freq":
			cfg.MinFreq = f.minFreq
		case "max_size":
			cfg.MaxSize = f.maxSize
		case "file_format":
			cfg.FileFormat = f.fileFormat
		case "unicode_norm":
			cfg.UnicodeNorm = f.unicodeNorm
		case "lower_case":
			cfg.LowerCase = f.lowerCase
		case "workers":
			cfg.Workers = f.workers
		case "bpe_encoding":
			cfg.BPEEncoding = f.bpeEncoding
		}
	})
}

func runCount(tokName string, args []string, stdout, stderr io.Writer) int {
	fs, f := newCountFlagSet(tokName, stderr)
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if err := expectArgs(tokName, positional, "src_path", "vocab_file"); err != nil {
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return exitUsage
	}
	srcPath, vocabPath := positional[0], positional[1]

	cfg, err := config.NewLoader().WithConfigPath(f.configPath).Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return exitUsage
	}
	applyFlags(fs, f, &cfg.Count)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	name := f.name
	if name == "" {
		base := filepath.Base(vocabPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	logger := initLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := count(ctx, cfg, tokName, srcPath, vocabPath, name, stdout, logger); err != nil {
		logger.Error("count failed", zap.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if types.IsValidation(err) {
			return exitUsage
		}
		return exitError
	}
	return exitOK
}

func count(ctx context.Context, cfg *config.Config, tokName, srcPath, vocabPath, name string, stdout io.Writer, logger *zap.Logger) error {
	format, err := vocab.ParseFormat(cfg.Count.FileFormat)
	if err != nil {
		return err
	}
	norm, err := corpus.ParseNormalization(cfg.Count.UnicodeNorm)
	if err != nil {
		return err
	}

	providers, err := telemetry.Init(ctx, cfg.Telemetry, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics.Namespace, logger)
		if cfg.Metrics.Textfile != "" {
			defer func() {
				if err := collector.WriteTextfile(cfg.Metrics.Textfile); err != nil {
					logger.Warn("failed to write metrics textfile", zap.Error(err))
				}
			}()
		}
	}

	tok, err := tokenizer.Get(tokName, tokenizer.Options{BPEEncoding: cfg.Count.BPEEncoding})
	if err != nil {
		return err
	}

	reader := corpus.NewReader(corpus.ReaderConfig{
		Normalization: norm,
		LowerCase:     cfg.Count.LowerCase,
	}, nil, logger)

	driver, err := counter.NewDriver(tok, reader, counter.Options{
		BatchSize: cfg.Count.BatchSize,
		MinFreq:   cfg.Count.MinFreq,
		MaxSize:   cfg.Count.MaxSize,
		Workers:   cfg.Count.Workers,
	}, logger)
	if err != nil {
		return err
	}
	driver.WithMetrics(collector)

	res, err := driver.Run(ctx, srcPath)
	if err != nil {
		return err
	}
	if err := driver.Persist(ctx, res, vocabPath, format); err != nil {
		return err
	}

	sinks, err := openSinks(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSinks(sinks, logger)

	for _, sink := range sinks {
		err := sink.Export(ctx, name, res.RunID, res.Kept)
		collector.RecordExport(sink.Name(), err)
		if err != nil {
			return fmt.Errorf("export to %s: %w", sink.Name(), err)
		}
		logger.Info("vocabulary exported",
			zap.String("sink", sink.Name()),
			zap.String("name", name),
			zap.String("run_id", res.RunID))
	}

	fmt.Fprintf(stdout, "%s: kept %d tokens, removed %d, from %d files (%d skipped) in %s\n",
		vocabPath, res.Kept.Len(), res.Removed.Len(), res.Files, res.Skipped, res.Duration.Round(time.Millisecond))
	return nil
}

// openSinks connects the export sinks enabled in cfg.
func openSinks(ctx context.Context, cfg *config.Config, logger *zap.Logger) ([]store.Sink, error) {
	var sinks []store.Sink

	if cfg.Redis.Enabled {
		rs, err := store.NewRedisSink(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, rs)
	}

	if cfg.Database.Enabled {
		db, err := store.OpenDatabase(cfg.Database, logger)
		if err != nil {
			closeSinks(sinks, logger)
			return nil, err
		}
		var opts []store.SQLOption
		if !cfg.Database.AutoMigrate {
			opts = append(opts, store.WithoutAutoMigrate())
		}
		ss, err := store.NewSQLSink(ctx, db, logger, opts...)
		if err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			closeSinks(sinks, logger)
			return nil, err
		}
		sinks = append(sinks, ss)
	}

	return sinks, nil
}

func closeSinks(sinks []store.Sink, logger *zap.Logger) {
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			logger.Warn("failed to close sink", zap.String("sink", s.Name()), zap.Error(err))
		}
	}
}
