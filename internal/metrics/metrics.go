package metrics

import (
	"io"

	"github.com/lbryio/bisect/meta"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

const (
	ResultHit  = "hit"
	ResultMiss = "miss"
	// ResultNone labels position lookups, which always produce an index.
	ResultNone = "n/a"
)

var (
	SequenceLenBuckets = []float64{0, 1, 8, 64, 512, 4096, 32768, 262144, 2097152}
	SearchCount        = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "search_count",
		Help: "Total number of lookups over sorted sequences",
		ConstLabels: map[string]string{
			"version": meta.Version,
		},
	}, []string{"method", "result"})
	SequenceLen = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sequence_len",
		Help:    "Histogram of searched sequence lengths",
		Buckets: SequenceLenBuckets,
	}, []string{"method"})
	OutOfOrderPushCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "out_of_order_push_counter",
		Help: "Number of pushes rejected for breaking sort order",
	})
)

// Observe records an exact-match lookup over a sequence of length n.
func Observe(method string, n int, found bool) {
	result := ResultMiss
	if found {
		result = ResultHit
	}
	SearchCount.WithLabelValues(method, result).Inc()
	SequenceLen.WithLabelValues(method).Observe(float64(n))
}

// ObservePosition records an insertion point or bisect lookup over a
// sequence of length n.
func ObservePosition(method string, n int) {
	SearchCount.WithLabelValues(method, ResultNone).Inc()
	SequenceLen.WithLabelValues(method).Observe(float64(n))
}

// Dump writes every non-empty metric family known to g in the text
// exposition format.
func Dump(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if err := writeFamily(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func writeFamily(w io.Writer, mf *dto.MetricFamily) error {
	// vectors that were never touched have no samples
	if len(mf.GetMetric()) == 0 {
		return nil
	}
	_, err := expfmt.MetricFamilyToText(w, mf)
	return err
}
