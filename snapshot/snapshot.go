// Package snapshot loads tree documents exported by a segment store from a
// storage location.
//
// A document is a YAML or JSON file (.yaml, .yml, .json), optionally zstd
// compressed with an additional .zst extension.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/klauspost/compress/zstd"
	"segview.dev/segview/segview"
	"segview.dev/segview/storage/locations"
	"segview.dev/segview/tree"
	"segview.dev/segview/tree/yamltree"
)

const compressedExt = ".zst"

var documentExts = []string{".yaml", ".yml", ".json"}

var ErrNoDocuments = errors.New("no snapshot documents")

// IsDocument reports whether name has a document extension.
func IsDocument(name string) bool {
	name = strings.TrimSuffix(name, compressedExt)
	return slices.Contains(documentExts, path.Ext(name))
}

// List returns the documents in the location in lexical order.
func List(ctx context.Context, loc locations.Location) ([]string, error) {
	var names []string
	for name, err := range loc.List(ctx) {
		if err != nil {
			return nil, err
		}
		if IsDocument(name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Latest returns the last document in lexical order. Exports are named by
// time, so this is the most recent one.
func Latest(ctx context.Context, loc locations.Location) (string, error) {
	names, err := List(ctx, loc)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%s: %w", loc.URI(""), ErrNoDocuments)
	}
	return names[len(names)-1], nil
}

// Load reads and parses a document.
func Load(ctx context.Context, loc locations.Location, name string) (tree.Node, error) {
	data, err := loc.Read(ctx, name)
	if err != nil {
		return nil, err
	}
	slog.Debug("read snapshot document", "uri", loc.URI(name), "bytes", len(data))

	if strings.HasSuffix(name, compressedExt) {
		if data, err = Decompress(data); err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", loc.URI(name), err)
		}
	}

	root, err := yamltree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", loc.URI(name), err)
	}
	return root, nil
}

// Open loads a document as a store.
func Open(ctx context.Context, loc locations.Location, name string) (*segview.Store, error) {
	root, err := Load(ctx, loc, name)
	if err != nil {
		return nil, err
	}
	return segview.New(root), nil
}

// Compress zstd compresses a document.
func Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

// Decompress decompresses a zstd compressed document.
func Decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}
