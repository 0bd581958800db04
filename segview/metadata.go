package segview

import (
	"encoding/json"
	"fmt"

	"segview.dev/segview/tree"
)

// MetaData is the decoded header of a segment.
type MetaData struct {
	// Version of the segment format. Real data has version 10 or later.
	Version int
	// Generation of the garbage collection that wrote the segment.
	Generation int
	// FullGeneration of the last full garbage collection.
	FullGeneration int
	// Compacted is true when the segment was written by compaction.
	Compacted bool
	Info      map[string]string
}

// DecodeMetaData decodes the meta data properties of a segment node. Every
// property is required.
func DecodeMetaData(n tree.Node) (MetaData, error) {
	var md MetaData
	var err error
	if md.Version, err = nonNegativeIntProperty(n, "version"); err != nil {
		return MetaData{}, err
	}
	if md.Generation, err = nonNegativeIntProperty(n, "generation"); err != nil {
		return MetaData{}, err
	}
	if md.FullGeneration, err = nonNegativeIntProperty(n, "fullGeneration"); err != nil {
		return MetaData{}, err
	}
	if md.Compacted, err = boolProperty(n, "compacted"); err != nil {
		return MetaData{}, err
	}
	if md.Info, err = infoProperty(n); err != nil {
		return MetaData{}, err
	}
	return md, nil
}

// infoProperty decodes the info property: a string holding a JSON object of
// string values, or a string map value.
func infoProperty(n tree.Node) (map[string]string, error) {
	v, ok := n.Property("info")
	if !ok {
		return nil, newDecodeError("info", "missing property", nil)
	}
	if m, ok := v.AsStringMap(); ok {
		return m, nil
	}
	s, ok := v.AsString()
	if !ok {
		return nil, newDecodeError("info", fmt.Sprintf("expected %s but found %s", tree.KindString, v.Kind()), nil)
	}

	var info map[string]string
	if err := json.Unmarshal([]byte(s), &info); err != nil {
		return nil, newDecodeError("info", "invalid JSON object", err)
	}
	if info == nil {
		return nil, newDecodeError("info", "not a JSON object", nil)
	}
	return info, nil
}
