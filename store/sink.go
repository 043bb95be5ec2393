package store

import (
	"context"
	"errors"
	"time"

	"github.com/BaSui01/nlpvocab/types"
	"github.com/BaSui01/nlpvocab/vocab"
)

// Sink publishes vocabularies to a shared backend.
type Sink interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// Export replaces the vocabulary stored under name.
	Export(ctx context.Context, name, runID string, v *vocab.Vocabulary) error

	// Import reads back the vocabulary stored under name.
	Import(ctx context.Context, name string) (*vocab.Vocabulary, error)

	// Meta returns what is known about the last export of name.
	Meta(ctx context.Context, name string) (Meta, error)

	Close() error
}

// Meta describes one exported vocabulary.
type Meta struct {
	Name       string
	RunID      string
	Size       int
	Total      int64
	ExportedAt time.Time
}

// ErrNotFound is returned (wrapped) when a vocabulary was never exported.
var ErrNotFound = errors.New("vocabulary not found")

func notFound(name string) error {
	return types.Errorf(types.ErrStoreError, "vocabulary %q", name).WithCause(ErrNotFound)
}

func validateName(name string) error {
	if name == "" {
		return types.NewError(types.ErrValidation, "vocabulary name is required")
	}
	return nil
}
