package store

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BaSui01/nlpvocab/config"
	"github.com/BaSui01/nlpvocab/types"
	"github.com/BaSui01/nlpvocab/vocab"
)

// =============================================================================
// 🧪 SQLSink tests
// =============================================================================

func setupTestSQL(t *testing.T) *SQLSink {
	t.Helper()

	cfg := config.DefaultDatabaseConfig()
	cfg.Name = filepath.Join(t.TempDir(), "vocab.db")

	db, err := OpenDatabase(cfg, zap.NewNop())
	require.NoError(t, err)

	sink, err := NewSQLSink(context.Background(), db, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sink.Close() })
	return sink
}

func TestOpenDatabase_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	_, err := OpenDatabase(config.DatabaseConfig{Driver: "oracle"}, nil)
	assert.True(t, types.IsValidation(err))
}

func TestNewSQLSink_NilDB(t *testing.T) {
	t.Parallel()

	_, err := NewSQLSink(context.Background(), nil, nil)
	assert.True(t, types.IsValidation(err))
}

func TestSQLSink_ExportImport(t *testing.T) {
	t.Parallel()

	sink := setupTestSQL(t)
	ctx := context.Background()

	v := vocab.New("1", " ", "2", " ", "1", "\n", "2", "\t", "3", ".")
	require.NoError(t, sink.Export(ctx, "chars", "run-1", v))

	got, err := sink.Import(ctx, "chars")
	require.NoError(t, err)
	assert.True(t, v.Equal(got))

	var rows []Entry
	require.NoError(t, sink.db.Order("id").Find(&rows).Error)
	require.Len(t, rows, 7)
	assert.Equal(t, " ", rows[0].Token)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, int64(2), rows[0].Frequency)
	assert.Equal(t, "3", rows[6].Token)
	assert.Equal(t, "run-1", rows[6].RunID)

	meta, err := sink.Meta(ctx, "chars")
	require.NoError(t, err)
	assert.Equal(t, Meta{Name: "chars", RunID: "run-1", Size: 7, Total: 10, ExportedAt: meta.ExportedAt}, meta)
}

func TestSQLSink_ExportReplacesOnlyThatVocabulary(t *testing.T) {
	t.Parallel()

	sink := setupTestSQL(t)
	ctx := context.Background()

	require.NoError(t, sink.Export(ctx, "a", "run-1", vocab.New("x", "y")))
	require.NoError(t, sink.Export(ctx, "b", "run-1", vocab.New("z")))
	require.NoError(t, sink.Export(ctx, "a", "run-2", vocab.New("w", "w")))

	a, err := sink.Import(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"w"}, a.Tokens())
	assert.Equal(t, int64(2), a.Count("w"))

	b, err := sink.Import(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, b.Tokens())

	meta, err := sink.Meta(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "run-2", meta.RunID)
}

func TestSQLSink_BatchedInsert(t *testing.T) {
	t.Parallel()

	sink := setupTestSQL(t)
	ctx := context.Background()

	v := vocab.New()
	for i := 0; i < insertBatch*2+3; i++ {
		v.Update([]string{string(rune(0x4e00 + i))})
	}
	require.NoError(t, sink.Export(ctx, "cjk", "run", v))

	got, err := sink.Import(ctx, "cjk")
	require.NoError(t, err)
	assert.Equal(t, v.Len(), got.Len())
}

func TestSQLSink_EmptyAndMissing(t *testing.T) {
	t.Parallel()

	sink := setupTestSQL(t)
	ctx := context.Background()

	require.NoError(t, sink.Export(ctx, "empty", "run", vocab.New()))
	got, err := sink.Import(ctx, "empty")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())

	_, err = sink.Import(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "sql", sink.Name())
}

func TestSQLSink_ExportRollsBackOnError(t *testing.T) {
	t.Parallel()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "vocabulary_entries"`)).
		WillReturnError(errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"))
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "vocabulary_entries"`)).
		WillReturnError(errors.New("ERROR: permission denied for table vocabulary_entries"))
	mock.ExpectRollback()

	sink := &SQLSink{db: gormDB, logger: zap.NewNop()}
	err = sink.Export(context.Background(), "words", "run", vocab.New("a"))

	assert.True(t, types.IsErrorCode(err, types.ErrStoreError))
	assert.Contains(t, err.Error(), "permission denied")
	assert.NoError(t, mock.ExpectationsWereMet(), "a deadlock is retried, a permission error is not")
}

func TestRetry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	logger := zap.NewNop()

	calls := 0
	err := retry(ctx, logger, 3, func() error {
		calls++
		if calls < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = retry(ctx, logger, 2, func() error {
		calls++
		return errors.New("bad connection")
	})
	assert.Equal(t, 2, calls)
	assert.ErrorContains(t, err, "after 2 attempts")

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	err = retry(canceled, logger, 3, func() error { return errors.New("deadlock") })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryableError(t *testing.T) {
	t.Parallel()

	assert.False(t, isRetryableError(nil))
	assert.True(t, isRetryableError(errors.New("ERROR: could not serialize access (SQLSTATE 40001)")))
	assert.True(t, isRetryableError(errors.New("Error 1205: Lock wait timeout exceeded")))
	assert.False(t, isRetryableError(errors.New("UNIQUE constraint failed")))
}
