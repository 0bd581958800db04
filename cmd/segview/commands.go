package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"segview.dev/segview/recordid"
	"segview.dev/segview/segview"
	"segview.dev/segview/segview/index"
	"segview.dev/segview/segview/queries"
	"segview.dev/segview/snapshot"
	"segview.dev/segview/storage/locations"
	"segview.dev/segview/telemetry"
	"segview.dev/segview/tree"
	"segview.dev/segview/util/iteru"
)

func listDocuments(s *session) error {
	names, err := snapshot.List(s.ctx.Context, s.loc)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(s.out, name)
	}
	return nil
}

func listTars(s *session) error {
	for tar, err := range s.store.Tars() {
		if err != nil {
			return err
		}
		name, err := tar.Name()
		if err != nil {
			return err
		}
		size, err := tar.Size()
		if err != nil {
			return err
		}
		s.printer.Fprintf(s.out, "%s %d\n", name, size)
	}
	return nil
}

func listSegments(s *session) error {
	var filter *queries.Filter
	if where := s.ctx.String("where"); where != "" {
		var err error
		if filter, err = queries.CompileFilter(where); err != nil {
			return err
		}
	}

	failures := 0
	err := writeTable(s.out, s.colors, "ID\tTYPE\tLENGTH\tREFS\tRECORDS\tGEN\tTAR", func(w io.Writer) {
		for row, err := range queries.Segments(s.store, filter) {
			if err != nil {
				failures++
				slog.Warn("skipping segment", "error", err)
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
				row.ID, row.Type, row.Length, row.References, row.Records, row.Generation, row.Tar)
		}
	})
	if err != nil {
		return err
	}
	if failures > 0 {
		return fmt.Errorf("%d segments failed to decode", failures)
	}
	return nil
}

// writeTable aligns the header and rows into columns and colors the header
// line afterwards, so escape codes do not count towards column widths.
func writeTable(out io.Writer, colors palette, header string, rows func(w io.Writer)) error {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, header)
	rows(w)
	if err := w.Flush(); err != nil {
		return err
	}
	head, body, _ := strings.Cut(buf.String(), "\n")
	fmt.Fprintln(out, colors.header("%s", head))
	_, err := io.WriteString(out, body)
	return err
}

func dumpSegment(s *session) error {
	id, err := uuid.Parse(s.ctx.Args().First())
	if err != nil {
		return fmt.Errorf("invalid segment id %q: %w", s.ctx.Args().First(), err)
	}
	seg, ok, err := s.store.Segment(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("segment %s not found", id)
	}
	dump, err := seg.HexDump(s.ctx.Bool("header"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(s.out, dump)
	return err
}

func listJournal(s *session) error {
	for entry, err := range iteru.Take2(s.store.JournalEntries(), s.ctx.Int("limit")) {
		if err != nil {
			return err
		}
		timestamp, err := entry.Timestamp()
		if err != nil {
			return err
		}
		revision, err := entry.Revision()
		if err != nil {
			return err
		}
		marker := ""
		if _, ok := entry.Root(); !ok {
			marker = " " + s.colors.bad("(no root)")
		}
		fmt.Fprintf(s.out, "%s %s%s\n", time.UnixMilli(timestamp).UTC().Format(time.RFC3339), revision, marker)
	}
	return nil
}

func printNode(s *session) error {
	args := s.ctx.Args()
	if args.Len() != 2 {
		return errors.New("expected <segment-id> <record-number>")
	}
	id, err := uuid.Parse(args.Get(0))
	if err != nil {
		return fmt.Errorf("invalid segment id %q: %w", args.Get(0), err)
	}
	number, err := strconv.Atoi(args.Get(1))
	if err != nil {
		return fmt.Errorf("invalid record number %q: %w", args.Get(1), err)
	}

	node, ok, err := s.store.Node(id, number)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no node record %d in segment %s", number, id)
	}
	writeTree(s, node, "/", 0, s.ctx.Int("depth"))
	return nil
}

// writeTree prints a node, its properties and, up to maxDepth, its children.
func writeTree(s *session, n tree.Node, name string, depth, maxDepth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(s.out, "%s%s\n", indent, s.colors.header("%s", name))
	if lister, ok := n.(tree.PropertyLister); ok {
		props := maps.Collect(lister.Properties())
		for _, key := range slices.Sorted(maps.Keys(props)) {
			fmt.Fprintf(s.out, "%s  - %s = %v\n", indent, key, props[key])
		}
	}
	if depth >= maxDepth {
		if count := tree.ChildCount(n); count > 0 {
			fmt.Fprintf(s.out, "%s  ... %d children\n", indent, count)
		}
		return
	}
	for childName, child := range n.Children() {
		writeTree(s, child, childName, depth+1, maxDepth)
	}
}

func showRecord(s *session) error {
	id, err := recordid.ParseStrict(s.ctx.Args().First())
	if err != nil {
		return err
	}
	rec, ok, err := s.store.Record(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("record %s not found", id)
	}

	t, err := rec.Type()
	if err != nil {
		return err
	}
	number, err := rec.Number()
	if err != nil {
		return err
	}
	address, err := rec.Address()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s %s number=%d address=%08x\n", id.Compact(), t, number, address)
	if value, ok, err := rec.Value(); err != nil {
		return err
	} else if ok {
		fmt.Fprintf(s.out, "value=%q\n", value)
	}
	if root, ok := rec.Root(); ok {
		fmt.Fprintf(s.out, "root with %d children\n", tree.ChildCount(root))
	}
	return nil
}

func printStats(s *session) error {
	tars := queries.TarHasSuffix(".tar")
	tarSize, err := queries.TarSizeSum(s.store, tars)
	if err != nil {
		return err
	}
	segmentSize, err := queries.SegmentSizeSum(s.store, tars)
	if err != nil {
		return err
	}
	references, err := queries.ReferenceCount(s.store, tars)
	if err != nil {
		return err
	}
	checkpoints, err := queries.CheckpointCounts(s.store, 100)
	if err != nil {
		return err
	}
	idx, err := index.Build(s.ctx.Context, s.store)
	if err != nil {
		return err
	}

	p := s.printer
	p.Fprintf(s.out, "tar bytes:          %d\n", tarSize)
	p.Fprintf(s.out, "segment bytes:      %d\n", segmentSize)
	p.Fprintf(s.out, "segments:           %d\n", idx.Len())
	p.Fprintf(s.out, "duplicate segments: %d\n", idx.Duplicates())
	p.Fprintf(s.out, "references:         %d\n", references)
	p.Fprintf(s.out, "checkpoints:        %v\n", checkpoints)
	if s3, ok := s.loc.(*locations.S3Location); ok {
		usage := s3.Usage()
		p.Fprintf(s.out, "s3 requests:        %d reads, %d lists, %s\n", usage.Reads(), usage.Lists(), usage.TotalCost())
	}

	if s.ctx.Bool("metrics") {
		fmt.Fprintln(s.out)
		return telemetry.WriteMetrics(s.out)
	}
	return nil
}

func checkSegments(s *session) error {
	checked, failed := 0, 0
	for seg, err := range s.store.Segments() {
		checked++
		if err != nil {
			failed++
			fmt.Fprintf(s.out, "%s %s\n", s.colors.bad("UNREADABLE"), err)
			continue
		}
		if err := seg.Validate(); err != nil {
			failed++
			var invariantErr *segview.InvariantError
			if errors.As(err, &invariantErr) {
				fmt.Fprintf(s.out, "%s %s\n", s.colors.bad("INVALID"), err)
			} else {
				fmt.Fprintf(s.out, "%s %v: %s\n", s.colors.bad("UNREADABLE"), seg.Node(), err)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d segments failed validation", failed, checked)
	}
	fmt.Fprintln(s.out, s.colors.ok("%d segments ok", checked))
	return nil
}
