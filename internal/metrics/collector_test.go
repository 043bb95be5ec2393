package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// 🧪 Collector tests
// =============================================================================

func TestNewCollector_IndependentRegistries(t *testing.T) {
	t.Parallel()

	// Same namespace twice must not panic on duplicate registration.
	c1 := NewCollector("nlpvocab", zap.NewNop())
	c2 := NewCollector("nlpvocab", nil)

	c1.RecordBatch("words", 10, time.Millisecond)
	assert.Equal(t, 10.0, testutil.ToFloat64(c1.tokensTotal.WithLabelValues("words")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c2.tokensTotal.WithLabelValues("words")))
}

func TestCollector_RecordDocument(t *testing.T) {
	t.Parallel()

	c := NewCollector("test", zap.NewNop())
	c.RecordDocument("chars", false)
	c.RecordDocument("chars", false)
	c.RecordDocument("chars", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.documentsTotal.WithLabelValues("chars", "read")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.documentsTotal.WithLabelValues("chars", "skipped")))
}

func TestCollector_RecordBatch(t *testing.T) {
	t.Parallel()

	c := NewCollector("test", zap.NewNop())
	c.RecordBatch("words", 5, 20*time.Millisecond)
	c.RecordBatch("words", 7, 30*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.batchesTotal.WithLabelValues("words")))
	assert.Equal(t, 12.0, testutil.ToFloat64(c.tokensTotal.WithLabelValues("words")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.batchDuration))
}

func TestCollector_SetVocabularySize(t *testing.T) {
	t.Parallel()

	c := NewCollector("test", zap.NewNop())
	c.SetVocabularySize("bpe", 300, 40)

	assert.Equal(t, 300.0, testutil.ToFloat64(c.vocabularySize.WithLabelValues("bpe", "kept")))
	assert.Equal(t, 40.0, testutil.ToFloat64(c.vocabularySize.WithLabelValues("bpe", "removed")))
}

func TestCollector_PersistAndExport(t *testing.T) {
	t.Parallel()

	c := NewCollector("test", zap.NewNop())
	c.RecordPersist("BINARY", time.Millisecond, nil)
	c.RecordPersist("BINARY", time.Millisecond, errors.New("disk full"))
	c.RecordExport("redis", nil)
	c.RecordExport("sql", errors.New("down"))

	assert.Equal(t, 2, testutil.CollectAndCount(c.persistDuration))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.exportsTotal.WithLabelValues("redis", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.exportsTotal.WithLabelValues("sql", "error")))
}

func TestCollector_WriteTextfile(t *testing.T) {
	t.Parallel()

	c := NewCollector("nlpvocab", zap.NewNop())
	c.RecordDocument("words", false)
	c.SetVocabularySize("words", 3, 1)

	path := filepath.Join(t.TempDir(), "nlpvocab.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `nlpvocab_documents_total{status="read",tokenizer="words"} 1`), text)
	assert.Contains(t, text, `nlpvocab_vocabulary_size{part="kept",tokenizer="words"} 3`)
}

func TestCollector_NilIsNoop(t *testing.T) {
	t.Parallel()

	var c *Collector
	c.RecordDocument("words", true)
	c.RecordBatch("words", 1, time.Second)
	c.SetVocabularySize("words", 1, 1)
	c.RecordPersist("BINARY", time.Second, nil)
	c.RecordExport("redis", nil)
	assert.Nil(t, c.Registry())
	assert.NoError(t, c.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}
