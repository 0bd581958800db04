package locations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"segview.dev/segview/storage/objstore"
)

type AzureLocation struct {
	blobs     objstore.BlobService
	container string
	prefix    string
}

func NewAzureLocation(blobs objstore.BlobService, uri string) (*AzureLocation, error) {
	container, prefix, err := splitURI("azblob://", uri)
	if err != nil {
		return nil, err
	}
	return &AzureLocation{blobs: blobs, container: container, prefix: prefix}, nil
}

func (l *AzureLocation) Read(ctx context.Context, path string) ([]byte, error) {
	body, err := l.blobs.Download(ctx, l.container, l.prefix+strings.TrimPrefix(path, "/"))
	if err != nil {
		if errors.Is(err, objstore.ErrBlobNotFound) {
			return nil, fmt.Errorf("reading %s: %w", l.URI(path), ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", l.URI(path), err)
	}
	defer body.Close()
	return io.ReadAll(body)
}

func (l *AzureLocation) List(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for name, err := range l.blobs.List(ctx, l.container, l.prefix) {
			if err != nil {
				if errors.Is(err, objstore.ErrBlobNotFound) {
					err = fmt.Errorf("listing %s: %w", l.URI(""), ErrNotFound)
				}
				yield("", err)
				return
			}
			if !yield(strings.TrimPrefix(name, l.prefix), nil) {
				return
			}
		}
	}
}

func (l *AzureLocation) URI(path string) string {
	return "azblob://" + l.container + "/" + l.prefix + strings.TrimPrefix(path, "/")
}

var _ Location = (*AzureLocation)(nil)
