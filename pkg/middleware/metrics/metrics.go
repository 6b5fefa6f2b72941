package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/scienceol/equivalents/pkg/common/code"
)

var (
	registry = prometheus.NewRegistry()

	calculations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "equivalents",
		Name:      "calculations_total",
		Help:      "Equivalents calculations by outcome code.",
	}, []string{"code"})

	registrations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "equivalents",
		Name:      "registrations_total",
		Help:      "Reagent registrations by outcome code.",
	}, []string{"code"})

	catalogSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "equivalents",
		Name:      "catalog_reagents",
		Help:      "Reagents currently held by the catalog.",
	})
)

func init() {
	registry.MustRegister(calculations, registrations, catalogSize)
}

func label(err error) string {
	return code.Of(err).String()
}

func ObserveCalculation(err error) {
	calculations.WithLabelValues(label(err)).Inc()
}

func ObserveRegistration(err error) {
	registrations.WithLabelValues(label(err)).Inc()
}

func SetCatalogSize(n int) {
	catalogSize.Set(float64(n))
}

func Registry() *prometheus.Registry {
	return registry
}

func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
