package counter

import (
	"runtime"

	"github.com/BaSui01/nlpvocab/types"
)

// Options controls batching and partitioning of a run.
type Options struct {
	// Documents per batch.
	BatchSize int
	// Tokens counted fewer times are removed.
	MinFreq int64
	// Keep at most this many tokens after the frequency split; 0 keeps all.
	MaxSize int
	// Batches processed concurrently.
	Workers int
}

// DefaultOptions returns batch size 100, min frequency 1, no size cap and
// one worker per CPU.
func DefaultOptions() Options {
	return Options{
		BatchSize: 100,
		MinFreq:   1,
		MaxSize:   0,
		Workers:   runtime.NumCPU(),
	}
}

// Validate rejects options that cannot describe a run.
func (o Options) Validate() error {
	switch {
	case o.BatchSize <= 0:
		return types.Errorf(types.ErrValidation, "batch size must be positive, got %d", o.BatchSize)
	case o.MinFreq <= 0:
		return types.Errorf(types.ErrValidation, "min frequency must be positive, got %d", o.MinFreq)
	case o.MaxSize < 0:
		return types.Errorf(types.ErrValidation, "max size must not be negative, got %d", o.MaxSize)
	case o.Workers <= 0:
		return types.Errorf(types.ErrValidation, "workers must be positive, got %d", o.Workers)
	}
	return nil
}
