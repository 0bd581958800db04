package telemetry

import (
	"net/http"
	"net/http/httptrace"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	// Register metrics with Prometheus
	prometheus.MustRegister(httpInFlight)
	prometheus.MustRegister(httpDuration)
	prometheus.MustRegister(httpQueueTime)
	prometheus.MustRegister(httpErrors)
}

var (
	httpInFlight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "segview_http_client_in_flight_requests",
			Help: "Current number of in-flight object store requests",
		},
		[]string{"client"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "segview_http_client_duration_seconds",
			Help:    "Object store request duration distributions",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"client", "status"},
	)

	httpQueueTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "segview_http_client_queue_seconds",
			Help:    "Time spent waiting before request starts",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5},
		},
		[]string{"client"},
	)

	httpErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "segview_http_client_errors_total",
			Help: "Object store requests that failed without a response",
		},
		[]string{"client"},
	)
)

// MetricsTransport records request metrics labeled with the client name,
// e.g. "s3" or "azblob".
type MetricsTransport struct {
	name     string
	wrapped  http.RoundTripper
	inFlight int64
}

func NewMetricsTransport(name string, wrapped http.RoundTripper) *MetricsTransport {
	if wrapped == nil {
		wrapped = http.DefaultTransport
	}
	return &MetricsTransport{
		name:    name,
		wrapped: wrapped,
	}
}

// NewHTTPClient returns an HTTP client that records metrics under name.
func NewHTTPClient(name string) *http.Client {
	return &http.Client{Transport: NewMetricsTransport(name, nil)}
}

func (t *MetricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	inFlight := atomic.AddInt64(&t.inFlight, 1)
	defer func() {
		httpInFlight.WithLabelValues(t.name).Set(float64(atomic.AddInt64(&t.inFlight, -1)))
	}()

	httpInFlight.WithLabelValues(t.name).Set(float64(inFlight))

	trace := &httptrace.ClientTrace{
		GetConn: func(hostPort string) {
			httpQueueTime.WithLabelValues(t.name).Observe(time.Since(start).Seconds())
		},
	}
	req = req.WithContext(httptrace.WithClientTrace(req.Context(), trace))

	resp, err := t.wrapped.RoundTrip(req)
	if err != nil {
		httpErrors.WithLabelValues(t.name).Inc()
		return nil, err
	}

	httpDuration.WithLabelValues(t.name, resp.Status).Observe(time.Since(start).Seconds())

	return resp, nil
}
