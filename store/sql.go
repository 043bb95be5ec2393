package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BaSui01/nlpvocab/config"
	"github.com/BaSui01/nlpvocab/internal/telemetry"
	"github.com/BaSui01/nlpvocab/types"
	"github.com/BaSui01/nlpvocab/vocab"
)

// =============================================================================
// 🗄️ SQL sink
// =============================================================================

// insertBatch is the number of rows per INSERT statement.
const insertBatch = 500

// Run records the last export of a vocabulary.
type Run struct {
	ID         uint      `gorm:"primaryKey"`
	Vocabulary string    `gorm:"size:255;not null;uniqueIndex"`
	RunID      string    `gorm:"size:36;not null"`
	Size       int       `gorm:"not null"`
	Total      int64     `gorm:"not null"`
	ExportedAt time.Time `gorm:"not null"`
}

func (Run) TableName() string { return "vocabulary_runs" }

// Entry is one token row of an exported vocabulary. Rank is the position
// in canonical order, starting at 1.
type Entry struct {
	ID         uint   `gorm:"primaryKey"`
	Vocabulary string `gorm:"size:255;not null;index:idx_vocabulary_rank,priority:1"`
	RunID      string `gorm:"size:36;not null"`
	Token      string `gorm:"type:text;not null"`
	Frequency  int64  `gorm:"not null"`
	Rank       int    `gorm:"not null;index:idx_vocabulary_rank,priority:2"`
}

func (Entry) TableName() string { return "vocabulary_entries" }

// OpenDatabase opens a gorm connection for cfg and applies its pool limits.
func OpenDatabase(cfg config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "mysql":
		dialector = mysql.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, types.Errorf(types.ErrValidation,
			"unsupported database driver: %s (supported: postgres, mysql, sqlite)", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, types.NewError(types.ErrStoreError, "failed to connect database").WithCause(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	logger.Info("database connected", zap.String("driver", cfg.Driver))
	return db, nil
}

// SQLSink stores vocabularies in the vocabulary_runs and
// vocabulary_entries tables.
type SQLSink struct {
	db     *gorm.DB
	logger *zap.Logger
}

// SQLOption configures NewSQLSink.
type SQLOption func(*sqlOptions)

type sqlOptions struct {
	autoMigrate bool
}

// WithoutAutoMigrate skips gorm AutoMigrate; the tables must already exist,
// for example after "nlpvocab migrate up".
func WithoutAutoMigrate() SQLOption {
	return func(o *sqlOptions) { o.autoMigrate = false }
}

// NewSQLSink migrates the schema and returns a sink over db.
func NewSQLSink(ctx context.Context, db *gorm.DB, logger *zap.Logger, opts ...SQLOption) (*SQLSink, error) {
	if db == nil {
		return nil, types.NewError(types.ErrValidation, "db cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	o := sqlOptions{autoMigrate: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.autoMigrate {
		if err := db.WithContext(ctx).AutoMigrate(&Run{}, &Entry{}); err != nil {
			return nil, types.NewError(types.ErrStoreError, "migrate vocabulary tables").WithCause(err)
		}
	}
	return &SQLSink{
		db:     db,
		logger: logger.With(zap.String("component", "sql_sink")),
	}, nil
}

func (s *SQLSink) Name() string { return "sql" }

// Export replaces all rows of name in one transaction.
func (s *SQLSink) Export(ctx context.Context, name, runID string, v *vocab.Vocabulary) (err error) {
	if err := validateName(name); err != nil {
		return err
	}

	ctx, span := telemetry.Tracer("store").Start(ctx, "sql.export")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	entries := v.Entries()
	span.SetAttributes(attribute.String("vocabulary", name), attribute.Int("size", len(entries)))

	exportedAt := time.Now().UTC()

	err = withTransactionRetry(ctx, s.db, s.logger, exportAttempts, func(tx *gorm.DB) error {
		if err := tx.Where("vocabulary = ?", name).Delete(&Entry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vocabulary = ?", name).Delete(&Run{}).Error; err != nil {
			return err
		}
		run := Run{
			Vocabulary: name,
			RunID:      runID,
			Size:       len(entries),
			Total:      v.Total(),
			ExportedAt: exportedAt,
		}
		if err := tx.Create(&run).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		// Built per attempt: gorm writes generated IDs back into rows.
		rows := make([]Entry, len(entries))
		for i, e := range entries {
			rows[i] = Entry{
				Vocabulary: name,
				RunID:      runID,
				Token:      e.Token,
				Frequency:  e.Count,
				Rank:       i + 1,
			}
		}
		return tx.CreateInBatches(rows, insertBatch).Error
	})
	if err != nil {
		s.logger.Error("sql export failed", zap.String("vocabulary", name), zap.Error(err))
		return types.NewError(types.ErrStoreError, "sql export failed").WithCause(err)
	}

	s.logger.Info("vocabulary exported",
		zap.String("vocabulary", name),
		zap.String("run_id", runID),
		zap.Int("size", len(entries)),
	)
	return nil
}

// Import reads the rows of name back into a Vocabulary.
func (s *SQLSink) Import(ctx context.Context, name string) (*vocab.Vocabulary, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if _, err := s.Meta(ctx, name); err != nil {
		return nil, err
	}

	var rows []Entry
	if err := s.db.WithContext(ctx).
		Where("vocabulary = ?", name).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "rank"}}).
		Find(&rows).Error; err != nil {
		return nil, types.NewError(types.ErrStoreError, "sql import failed").WithCause(err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Token] = r.Frequency
	}
	v, err := vocab.FromCounts(counts)
	if err != nil {
		return nil, types.NewError(types.ErrStoreError, "sql import failed").WithCause(err)
	}
	return v, nil
}

// Meta reads the run row of name.
func (s *SQLSink) Meta(ctx context.Context, name string) (Meta, error) {
	var run Run
	err := s.db.WithContext(ctx).Where("vocabulary = ?", name).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Meta{}, notFound(name)
	}
	if err != nil {
		return Meta{}, types.NewError(types.ErrStoreError, "sql meta failed").WithCause(err)
	}
	return Meta{
		Name:       run.Vocabulary,
		RunID:      run.RunID,
		Size:       run.Size,
		Total:      run.Total,
		ExportedAt: run.ExportedAt,
	}, nil
}

// Close closes the underlying connection pool.
func (s *SQLSink) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
