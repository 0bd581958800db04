package segview

import "github.com/VictoriaMetrics/metrics"

var (
	segmentLookups  = metrics.NewCounter("segview_segment_lookups_total")
	segmentsScanned = metrics.NewCounter("segview_segments_scanned_total")
	nodeLookups     = metrics.NewCounter("segview_node_lookups_total")
	decodeFailures  = metrics.NewCounter("segview_decode_failures_total")
)

// ResetMetrics zeroes the lookup and decode counters.
func ResetMetrics() {
	segmentLookups.Set(0)
	segmentsScanned.Set(0)
	nodeLookups.Set(0)
	decodeFailures.Set(0)
}
