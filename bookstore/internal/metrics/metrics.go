package metrics

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Astemirdum/bookstore-service/bookstore/internal/errs"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/model"
)

const namespace = "bookstore"

const (
	OutcomeOK           = "ok"
	OutcomeStorageFault = "StorageFault"
	OutcomeInternal     = "Internal"
)

type Metrics struct {
	gatherer   prometheus.Gatherer
	operations *prometheus.CounterVec
}

// New registers the operation counter and, when stats is not nil, gauges
// read from stats on every scrape.
func New(reg *prometheus.Registry, stats func() model.Stats) *Metrics {
	m := &Metrics{
		gatherer: reg,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Domain operations by outcome.",
		}, []string{"operation", "outcome"}),
	}
	reg.MustRegister(m.operations)
	if stats == nil {
		return m
	}

	gauge := func(name, help string, value func(model.Stats) float64) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, func() float64 { return value(stats()) })
	}
	reg.MustRegister(
		gauge("customers", "Stored customers.", func(s model.Stats) float64 { return float64(s.Customers) }),
		gauge("books", "Stored books.", func(s model.Stats) float64 { return float64(s.Books) }),
		gauge("book_assets", "Stored book assets.", func(s model.Stats) float64 { return float64(s.BookAssets) }),
		gauge("last_id", "Last id handed out.", func(s model.Stats) float64 { return float64(s.LastID) }),
	)
	return m
}

// Observe counts one finished operation. A nil Metrics ignores the call.
func (m *Metrics) Observe(operation string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, Outcome(err)).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	var msg *errs.Message
	switch {
	case errors.As(err, &msg):
		return string(msg.Kind)
	case errors.Is(err, errs.ErrStorage):
		return OutcomeStorageFault
	default:
		return OutcomeInternal
	}
}
