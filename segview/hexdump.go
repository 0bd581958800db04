package segview

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

const bytesPerRow = 16

var separator = strings.Repeat("-", 76)

// HexDump renders the segment data as rows of 16 bytes: an 8 digit hex
// offset, the bytes in hex and their printable ASCII characters. With
// includeHeader the dump is preceded by the segment id, length and meta data
// and, for data segments, by its references and records.
func (s *Segment) HexDump(includeHeader bool) (string, error) {
	data, err := s.Data()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if includeHeader {
		if err := s.writeHeader(&sb); err != nil {
			return "", err
		}
	}
	if err := WriteHex(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (s *Segment) writeHeader(w io.Writer) error {
	id, err := s.ID()
	if err != nil {
		return err
	}
	length, err := s.Length()
	if err != nil {
		return err
	}
	md, err := s.MetaData()
	if err != nil {
		return err
	}
	t, err := s.Type()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Segment %s (%d bytes)\n", id, length)
	fmt.Fprintf(w, "Version: %d\n", md.Version)
	fmt.Fprintf(w, "Generation: %d, Full generation: %d, Compacted: %t\n", md.Generation, md.FullGeneration, md.Compacted)
	fmt.Fprintf(w, "Info: %s\n", formatInfo(md.Info))

	if t == DataSegment {
		fmt.Fprintln(w, separator)
		if err := s.writeReferences(w); err != nil {
			return err
		}
		if err := s.writeRecords(w); err != nil {
			return err
		}
	}
	fmt.Fprintln(w, separator)
	return nil
}

func (s *Segment) writeReferences(w io.Writer) error {
	index := 1
	for ref, err := range s.References() {
		if err != nil {
			return err
		}
		refID, err := ref.ID()
		if err != nil {
			return fmt.Errorf("reference %d: %w", index, err)
		}
		fmt.Fprintf(w, "reference %02x: %s\n", index, refID)
		index++
	}
	return nil
}

func (s *Segment) writeRecords(w io.Writer) error {
	for rec, err := range s.Records() {
		if err != nil {
			return err
		}
		t, err := rec.Type()
		if err != nil {
			return err
		}
		number, err := rec.Number()
		if err != nil {
			return err
		}
		offset, err := rec.Offset()
		if err != nil {
			return err
		}
		address, err := rec.Address()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%10s record %08x: %08x @ %08x\n", t, number, offset, address)
	}
	return nil
}

// formatInfo joins the info entries as key=value pairs sorted by key.
func formatInfo(info map[string]string) string {
	pairs := make([]string, 0, len(info))
	for _, k := range slices.Sorted(maps.Keys(info)) {
		pairs = append(pairs, k+"="+info[k])
	}
	return strings.Join(pairs, ",")
}

// WriteHex writes data as a hex dump. Empty data renders a single offset
// row. It stops at the first write error.
func WriteHex(w io.Writer, data []byte) error {
	if len(data) == 0 {
		_, err := fmt.Fprintf(w, "%08x\n", 0)
		return err
	}

	line := make([]byte, 0, 8+bytesPerRow*4+3)
	for offset := 0; offset < len(data); offset += bytesPerRow {
		row := data[offset:min(offset+bytesPerRow, len(data))]

		line = fmt.Appendf(line[:0], "%08x", offset)
		for _, b := range row {
			line = fmt.Appendf(line, " %02x", b)
		}
		for range bytesPerRow - len(row) {
			line = append(line, "   "...)
		}
		line = append(line, ' ', ' ')
		for _, b := range row {
			if b >= 0x20 && b <= 0x7e {
				line = append(line, b)
			} else {
				line = append(line, '.')
			}
		}
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}
