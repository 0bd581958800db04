package objstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"
	"strings"
	"sync"
)

// MemoryBlobService is an in-memory implementation of the BlobService for
// testing.
type MemoryBlobService struct {
	mu         sync.Mutex
	containers map[string]map[string][]byte
}

func NewMemoryBlobService() *MemoryBlobService {
	return &MemoryBlobService{containers: make(map[string]map[string][]byte)}
}

// Put stores a blob, creating the container if needed.
func (m *MemoryBlobService) Put(container, name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.containers[container] == nil {
		m.containers[container] = make(map[string][]byte)
	}
	m.containers[container][name] = slices.Clone(data)
}

func (m *MemoryBlobService) Download(ctx context.Context, container, name string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.containers[container][name]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", container, name, ErrBlobNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MemoryBlobService) List(ctx context.Context, container, prefix string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		m.mu.Lock()
		blobs, ok := m.containers[container]
		var names []string
		if ok {
			names = slices.Sorted(maps.Keys(blobs))
		}
		m.mu.Unlock()

		if !ok {
			yield("", fmt.Errorf("container %s: %w", container, ErrBlobNotFound))
			return
		}
		for _, name := range names {
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			if !yield(name, nil) {
				return
			}
		}
	}
}

var _ BlobService = (*MemoryBlobService)(nil)
