package locations

import (
	"context"
	"errors"
	"iter"
)

// Location is a read-only place snapshot documents are kept: a local
// directory, an S3 prefix or an Azure Blob container prefix.
type Location interface {
	// Read returns the content of the file at path, relative to the location.
	Read(ctx context.Context, path string) ([]byte, error)
	// List iterates the paths of all files in the location, relative to it.
	List(ctx context.Context) iter.Seq2[string, error]
	// URI returns the full URI of path.
	URI(path string) string
}

var ErrNotFound = errors.New("path not found")
