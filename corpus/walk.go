package corpus

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BaSui01/nlpvocab/types"
)

// Walk calls fn for root if it is a file, or for every regular file below
// root in lexical order. An error from fn stops the walk and is returned.
func Walk(ctx context.Context, root string, fn func(path string) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return types.NewError(types.ErrIO, "source path").WithPath(root).WithCause(err)
	}
	if !info.IsDir() {
		return fn(root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return types.NewError(types.ErrIO, "walk source tree").WithPath(path).WithCause(err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return fn(path)
	})
}
