package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/BaSui01/nlpvocab/config"
	"github.com/BaSui01/nlpvocab/internal/telemetry"
	"github.com/BaSui01/nlpvocab/internal/tlsutil"
	"github.com/BaSui01/nlpvocab/types"
	"github.com/BaSui01/nlpvocab/vocab"
)

// =============================================================================
// 💾 Redis sink
// =============================================================================

// hsetChunk bounds the field/value pairs sent in one HSET.
const hsetChunk = 1000

// RedisSink stores vocabularies as Redis hashes:
//
//	<prefix>:<name>       token -> count
//	<prefix>:<name>:meta  run_id, size, total, exported_at
type RedisSink struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedisSink connects to Redis and verifies the connection.
func NewRedisSink(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*RedisSink, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}
	if cfg.TLS {
		opts.TLSConfig = tlsutil.ClientConfig(cfg.Addr)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, types.NewError(types.ErrStoreError, "failed to connect to redis").WithCause(err)
	}

	s := NewRedisSinkFromClient(client, cfg.KeyPrefix, logger)
	s.logger.Info("redis sink initialized", zap.String("addr", cfg.Addr), zap.Bool("tls", cfg.TLS))
	return s, nil
}

// NewRedisSinkFromClient wraps an existing client.
func NewRedisSinkFromClient(client *redis.Client, prefix string, logger *zap.Logger) *RedisSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prefix == "" {
		prefix = "nlpvocab"
	}
	return &RedisSink{
		client: client,
		prefix: prefix,
		logger: logger.With(zap.String("component", "redis_sink")),
	}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) key(name string) string     { return s.prefix + ":" + name }
func (s *RedisSink) metaKey(name string) string { return s.prefix + ":" + name + ":meta" }

// Export replaces the hash for name in a single transaction.
func (s *RedisSink) Export(ctx context.Context, name, runID string, v *vocab.Vocabulary) (err error) {
	if err := validateName(name); err != nil {
		return err
	}

	ctx, span := telemetry.Tracer("store").Start(ctx, "redis.export")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	key, metaKey := s.key(name), s.metaKey(name)
	entries := v.Entries()
	span.SetAttributes(attribute.String("vocabulary", name), attribute.Int("size", len(entries)))

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key, metaKey)
	for start := 0; start < len(entries); start += hsetChunk {
		end := min(start+hsetChunk, len(entries))
		args := make([]any, 0, 2*(end-start))
		for _, e := range entries[start:end] {
			args = append(args, e.Token, e.Count)
		}
		pipe.HSet(ctx, key, args...)
	}
	pipe.HSet(ctx, metaKey,
		"run_id", runID,
		"size", len(entries),
		"total", v.Total(),
		"exported_at", time.Now().UTC().Format(time.RFC3339),
	)

	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error("redis export failed", zap.String("key", key), zap.Error(err))
		return types.NewError(types.ErrStoreError, "redis export failed").WithCause(err)
	}

	s.logger.Info("vocabulary exported",
		zap.String("key", key),
		zap.String("run_id", runID),
		zap.Int("size", len(entries)),
	)
	return nil
}

// Import reads the hash for name.
func (s *RedisSink) Import(ctx context.Context, name string) (*vocab.Vocabulary, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if _, err := s.Meta(ctx, name); err != nil {
		return nil, err
	}

	fields, err := s.client.HGetAll(ctx, s.key(name)).Result()
	if err != nil {
		return nil, types.NewError(types.ErrStoreError, "redis import failed").WithCause(err)
	}

	counts := make(map[string]int64, len(fields))
	for token, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, types.Errorf(types.ErrStoreError, "bad count for token %q", token).WithCause(err)
		}
		counts[token] = n
	}

	v, err := vocab.FromCounts(counts)
	if err != nil {
		return nil, types.NewError(types.ErrStoreError, "redis import failed").WithCause(err)
	}
	return v, nil
}

// Meta reads the metadata hash for name.
func (s *RedisSink) Meta(ctx context.Context, name string) (Meta, error) {
	fields, err := s.client.HGetAll(ctx, s.metaKey(name)).Result()
	if err != nil {
		return Meta{}, types.NewError(types.ErrStoreError, "redis meta failed").WithCause(err)
	}
	if len(fields) == 0 {
		return Meta{}, notFound(name)
	}

	m := Meta{Name: name, RunID: fields["run_id"]}
	if m.Size, err = strconv.Atoi(fields["size"]); err != nil {
		return Meta{}, fmt.Errorf("redis meta size: %w", err)
	}
	if m.Total, err = strconv.ParseInt(fields["total"], 10, 64); err != nil {
		return Meta{}, fmt.Errorf("redis meta total: %w", err)
	}
	m.ExportedAt, _ = time.Parse(time.RFC3339, fields["exported_at"])
	return m, nil
}

// Close closes the client.
func (s *RedisSink) Close() error {
	return s.client.Close()
}
