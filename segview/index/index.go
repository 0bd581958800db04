// Package index builds an in-memory, id ordered index over the segments of a
// store so repeated lookups do not rescan every tar.
package index

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/google/btree"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"segview.dev/segview/segview"
	"segview.dev/segview/util/iteru"
)

type entry struct {
	id      uuid.UUID
	segment *segview.Segment
}

func less(a, b entry) bool {
	return bytes.Compare(a.id[:], b.id[:]) < 0
}

// Index maps segment ids to segments. It is a snapshot of the store at
// build time and is safe for concurrent reads.
type Index struct {
	tree       *btree.BTreeG[entry]
	duplicates int
}

type options struct {
	concurrency int
}

type Option func(*options)

// WithConcurrency bounds the number of tars read at the same time.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = max(n, 1)
	}
}

// Build reads the segment ids of every tar concurrently. When the same id
// appears more than once, the segment found first in tar order is indexed,
// matching Store.Segment. Any decode failure fails the build.
func Build(ctx context.Context, store *segview.Store, opts ...Option) (*Index, error) {
	o := options{concurrency: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tars, err := iteru.CollectErr(store.Tars())
	if err != nil {
		return nil, fmt.Errorf("listing tars: %w", err)
	}

	perTar := make([][]entry, len(tars))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, tar := range tars {
		g.Go(func() error {
			for seg, err := range tar.Segments() {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				if err != nil {
					return fmt.Errorf("tar %d: %w", i, err)
				}
				id, err := seg.ID()
				if err != nil {
					return fmt.Errorf("tar %d: %w", i, err)
				}
				perTar[i] = append(perTar[i], entry{id: id, segment: seg})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("building segment index: %w", err)
	}

	idx := &Index{tree: btree.NewG(32, less)}
	for _, entries := range perTar {
		for _, e := range entries {
			if idx.tree.Has(e) {
				idx.duplicates++
				continue
			}
			idx.tree.ReplaceOrInsert(e)
		}
	}
	slog.Debug("built segment index", "tars", len(tars), "segments", idx.tree.Len(), "duplicates", idx.duplicates)
	return idx, nil
}

// Lookup returns the segment with the given id.
func (idx *Index) Lookup(id uuid.UUID) (*segview.Segment, bool) {
	e, ok := idx.tree.Get(entry{id: id})
	return e.segment, ok
}

// Len returns the number of distinct segment ids.
func (idx *Index) Len() int {
	return idx.tree.Len()
}

// Duplicates returns how many segments were shadowed by an earlier segment
// with the same id.
func (idx *Index) Duplicates() int {
	return idx.duplicates
}

// Ascend calls fn for every segment in id order until fn returns false.
func (idx *Index) Ascend(fn func(id uuid.UUID, seg *segview.Segment) bool) {
	idx.tree.Ascend(func(e entry) bool {
		return fn(e.id, e.segment)
	})
}
