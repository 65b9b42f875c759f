package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SuiteCasesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "suite_cases_total",
		Help: "The total number of golden cases generated",
	})

	SuiteChecksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "suite_checks_total",
		Help: "The total number of golden-value checks evaluated",
	})

	SuiteCheckFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "suite_check_failures_total",
		Help: "The total number of golden-value checks that failed",
	})

	SuiteCaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "suite_case_duration_seconds",
		Help:    "Histogram of per-case generation times",
		Buckets: prometheus.DefBuckets,
	}, []string{"group"})

	KernelDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kernel_duration_seconds",
		Help:    "Histogram of golden kernel execution times",
		Buckets: prometheus.DefBuckets,
	}, []string{"kernel"})

	MacOpsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mac_ops_total",
		Help: "The total number of MAC operations evaluated",
	})

	HexFilesWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hex_files_written_total",
		Help: "The total number of hex artifact files written",
	})

	HexValuesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hex_values_written_total",
		Help: "The total number of values written to hex files",
	}, []string{"width"})

	OutputValueRange = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gemv_output_value_range",
		Help:    "Spread between largest and smallest output per case",
		Buckets: []float64{16, 256, 4096, 65536, 262144, 1048576},
	})

	ArrowBatchesWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arrow_batches_written_total",
		Help: "The total number of Arrow case batches written",
	})

	FlightRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flight_requests_total",
		Help: "The total number of Flight RPCs served",
	}, []string{"method"})

	FlightBatchesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flight_batches_sent_total",
		Help: "The total number of case batches streamed to clients",
	})
)

func RecordCase(group string, duration time.Duration) {
	SuiteCasesTotal.Inc()
	SuiteCaseDuration.WithLabelValues(group).Observe(duration.Seconds())
}

func RecordCheck(passed bool) {
	SuiteChecksTotal.Inc()
	if !passed {
		SuiteCheckFailures.Inc()
	}
}

func RecordKernel(name string, duration time.Duration) {
	KernelDuration.WithLabelValues(name).Observe(duration.Seconds())
}

func RecordMacOps(n int) {
	MacOpsTotal.Add(float64(n))
}

func RecordHexDump(width, values int) {
	HexFilesWritten.Inc()
	if width == 8 {
		HexValuesWritten.WithLabelValues("8").Add(float64(values))
	} else {
		HexValuesWritten.WithLabelValues("32").Add(float64(values))
	}
}

func RecordOutputRange(min, max int32) {
	OutputValueRange.Observe(float64(int64(max) - int64(min)))
}

func RecordArrowBatch() {
	ArrowBatchesWritten.Inc()
}

func RecordFlightRequest(method string) {
	FlightRequests.WithLabelValues(method).Inc()
}

func RecordFlightBatch() {
	FlightBatchesSent.Inc()
}
