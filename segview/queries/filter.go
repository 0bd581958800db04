package queries

import (
	"fmt"
	"iter"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"segview.dev/segview/segview"
	"segview.dev/segview/util/iteru"
)

// SegmentRow is the flattened view of a segment that filter expressions
// evaluate against.
type SegmentRow struct {
	Tar            string `expr:"tar"`
	ID             string `expr:"id"`
	Type           string `expr:"type"`
	Length         int64  `expr:"length"`
	References     int    `expr:"references"`
	Records        int    `expr:"records"`
	Version        int    `expr:"version"`
	Generation     int    `expr:"generation"`
	FullGeneration int    `expr:"fullGeneration"`
	Compacted      bool   `expr:"compacted"`
}

// Filter is a compiled boolean expression over a SegmentRow, for example
//
//	type == "DATA" && references > 10 && tar endsWith ".tar"
type Filter struct {
	src     string
	program *vm.Program
}

func CompileFilter(src string) (*Filter, error) {
	program, err := expr.Compile(src, expr.Env(SegmentRow{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling filter %q: %w", src, err)
	}
	return &Filter{src: src, program: program}, nil
}

func (f *Filter) Match(row SegmentRow) (bool, error) {
	out, err := expr.Run(f.program, row)
	if err != nil {
		return false, fmt.Errorf("evaluating filter %q: %w", f.src, err)
	}
	return out.(bool), nil
}

func (f *Filter) String() string {
	return f.src
}

// Segments yields a row for every segment of the store matched by filter. A
// nil filter matches every segment. A segment that fails to decode is
// yielded as an error and iteration continues.
func Segments(store *segview.Store, filter *Filter) iter.Seq2[SegmentRow, error] {
	return func(yield func(SegmentRow, error) bool) {
		for tar, err := range store.Tars() {
			if err != nil {
				if !yield(SegmentRow{}, err) {
					return
				}
				continue
			}
			name, err := tar.Name()
			if err != nil {
				if !yield(SegmentRow{}, err) {
					return
				}
				continue
			}
			rows := iteru.MapErr(tar.Segments(), func(seg *segview.Segment, err error) (SegmentRow, error) {
				if err != nil {
					return SegmentRow{}, err
				}
				return NewSegmentRow(name, seg)
			})
			if filter != nil {
				rows = iteru.FilterErr(rows, filter.Match)
			}
			for row, err := range rows {
				if !yield(row, err) {
					return
				}
			}
		}
	}
}

// NewSegmentRow decodes the fields of seg into a row.
func NewSegmentRow(tar string, seg *segview.Segment) (SegmentRow, error) {
	row := SegmentRow{Tar: tar}
	id, err := seg.ID()
	if err != nil {
		return SegmentRow{}, err
	}
	row.ID = id.String()

	t, err := seg.Type()
	if err != nil {
		return SegmentRow{}, err
	}
	row.Type = t.String()

	if row.Length, err = seg.Length(); err != nil {
		return SegmentRow{}, err
	}
	if row.References, err = count(seg.References()); err != nil {
		return SegmentRow{}, err
	}
	if row.Records, err = count(seg.Records()); err != nil {
		return SegmentRow{}, err
	}

	md, err := seg.MetaData()
	if err != nil {
		return SegmentRow{}, err
	}
	row.Version = md.Version
	row.Generation = md.Generation
	row.FullGeneration = md.FullGeneration
	row.Compacted = md.Compacted
	return row, nil
}

func count[T any](seq iter.Seq2[T, error]) (int, error) {
	n := 0
	for _, err := range seq {
		if err != nil {
			return 0, err
		}
		n++
	}
	return n, nil
}
