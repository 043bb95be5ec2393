package types

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_ChainingAndHelpers(t *testing.T) {
	t.Parallel()

	root := errors.New("root")
	err := NewError(ErrIO, "read failed").
		WithCause(root).
		WithPath("/tmp/vocab.tsv")

	assert.Equal(t, ErrIO, GetErrorCode(err))
	assert.True(t, errors.Is(err, root))
	assert.Equal(t, "[IO] read failed (/tmp/vocab.tsv): root", err.Error())
}

func TestError_WithoutCause(t *testing.T) {
	t.Parallel()

	err := Errorf(ErrValidation, "unsupported format %q", "XML")
	assert.Equal(t, `[VALIDATION] unsupported format "XML"`, err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestIsErrorCode_ThroughWrapping(t *testing.T) {
	t.Parallel()

	inner := NewError(ErrIO, "open").WithCause(fs.ErrNotExist)
	wrapped := fmt.Errorf("save vocabulary: %w", inner)

	assert.True(t, IsErrorCode(wrapped, ErrIO))
	assert.True(t, errors.Is(wrapped, fs.ErrNotExist))
	assert.False(t, IsValidation(wrapped))
	assert.False(t, IsErrorCode(nil, ErrIO))

	e, ok := AsError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "open", e.Message)
}

func TestIsUnsupported(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUnsupported(NewError(ErrUnsupportedOperation, "negation")))
	assert.False(t, IsUnsupported(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), GetErrorCode(errors.New("plain")))
}
