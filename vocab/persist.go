package vocab

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/BaSui01/nlpvocab/types"
)

// Encode encodes the vocabulary to w in the given format.
// Every token must be valid UTF-8; nothing is written otherwise.
func (v *Vocabulary) Encode(w io.Writer, format Format) error {
	if err := format.Validate(); err != nil {
		return err
	}
	if err := v.validateTokens(); err != nil {
		return err
	}

	var err error
	if format == FormatBinary {
		err = writeBinary(w, v)
	} else {
		err = writeText(w, v, format == FormatTSVWithHeaders)
	}
	if err != nil {
		return types.NewError(types.ErrIO, "encode vocabulary").WithCause(err)
	}
	return nil
}

func (v *Vocabulary) validateTokens() error {
	if v == nil {
		return nil
	}
	for tok := range v.counts {
		if !utf8.ValidString(tok) {
			return types.Errorf(types.ErrValidation, "token %q is not valid UTF-8", tok)
		}
	}
	return nil
}

// Decode decodes a vocabulary from r in the given format.
func Decode(r io.Reader, format Format) (*Vocabulary, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	var (
		v   *Vocabulary
		err error
	)
	if format == FormatBinary {
		v, err = readBinary(r)
	} else {
		v, err = readText(r)
	}
	if err != nil {
		return nil, types.NewError(types.ErrIO, "decode vocabulary").WithCause(err)
	}
	return v, nil
}

// Save writes the vocabulary to path. The file is replaced atomically:
// data goes to a temporary file in the same directory which is renamed over
// path only after a successful sync.
func (v *Vocabulary) Save(path string, format Format) error {
	if err := format.Validate(); err != nil {
		return err
	}
	if err := v.validateTokens(); err != nil {
		if e, ok := types.AsError(err); ok {
			e.WithPath(path)
		}
		return err
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return types.NewError(types.ErrIO, "create vocabulary file").WithPath(path).WithCause(err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err := v.Encode(tmp, format); err != nil {
		if e, ok := types.AsError(err); ok {
			e.WithPath(path)
		}
		return err
	}
	if err := tmp.Sync(); err != nil {
		return types.NewError(types.ErrIO, "sync vocabulary file").WithPath(path).WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		return types.NewError(types.ErrIO, "close vocabulary file").WithPath(path).WithCause(err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return types.NewError(types.ErrIO, "chmod vocabulary file").WithPath(path).WithCause(err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return types.NewError(types.ErrIO, "replace vocabulary file").WithPath(path).WithCause(err)
	}
	committed = true
	return nil
}

// Load reads a vocabulary previously written by Save with the same format.
func Load(path string, format Format) (*Vocabulary, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, types.NewError(types.ErrIO, "open vocabulary file").WithPath(path).WithCause(err)
	}
	defer f.Close()

	v, err := Decode(f, format)
	if err != nil {
		if e, ok := types.AsError(err); ok {
			e.WithPath(path)
		}
		return nil, fmt.Errorf("load %s vocabulary: %w", format, err)
	}
	return v, nil
}
