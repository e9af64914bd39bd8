package client

import (
	"fmt"
	"io"

	"github.com/VictoriaMetrics/metrics"

	"github.com/wkhere/tarantool/common"
)

// --------------------------------------------------------------------------
// Client metrics
// --------------------------------------------------------------------------

var (
	bytesOutCounter = metrics.NewCounter("iproto_client_bytes_out_total")
	bytesInCounter  = metrics.NewCounter("iproto_client_bytes_in_total")

	responseCounter = metrics.NewCounter(`iproto_client_responses_total{status="ok"}`)
	errorCounter    = metrics.NewCounter(`iproto_client_responses_total{status="error"}`)
)

// requestCounter returns the per-operation request counter.
func requestCounter(op common.Operation) *metrics.Counter {
	return metrics.GetOrCreateCounter(
		fmt.Sprintf(`iproto_client_requests_total{op=%q}`, op))
}

// WriteMetrics writes all client metrics to w in Prometheus text format.
func WriteMetrics(w io.Writer) {
	metrics.WritePrometheus(w, false)
}
