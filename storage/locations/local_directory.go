package locations

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

type LocalDirectory struct {
	Path string
}

func NewLocalDirectory(path string) *LocalDirectory {
	return &LocalDirectory{Path: path}
}

func (d *LocalDirectory) Read(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.Path, filepath.FromSlash(path)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", d.URI(path), ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", d.URI(path), err)
	}
	return data, nil
}

// List walks the directory in lexical order.
func (d *LocalDirectory) List(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stopped := errors.New("stopped")
		err := filepath.WalkDir(d.Path, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(d.Path, path)
			if err != nil {
				return err
			}
			if !yield(filepath.ToSlash(rel), nil) {
				return stopped
			}
			return nil
		})
		if err != nil && !errors.Is(err, stopped) {
			if errors.Is(err, fs.ErrNotExist) {
				err = fmt.Errorf("listing %s: %w", d.Path, ErrNotFound)
			}
			yield("", err)
		}
	}
}

func (d *LocalDirectory) URI(path string) string {
	return filepath.Join(d.Path, filepath.FromSlash(path))
}

var _ Location = (*LocalDirectory)(nil)
