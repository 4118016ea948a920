// Package metrics expone métricas Prometheus de la API y del libro de stock.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/zaiko-api/internal/application/inventory"
	"github.com/jhoicas/zaiko-api/internal/domain/entity"
)

var _ inventory.StockObserver = (*Metrics)(nil)

// Metrics agrupa los colectores sobre un registry propio (no el global).
type Metrics struct {
	reg *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	stockUpdatesTotal   *prometheus.CounterVec
	stockUnitsDelta     *prometheus.CounterVec
}

// New crea y registra los colectores con el prefijo dado (p. ej. "zaiko").
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		httpRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		stockUpdatesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_stock_updates_total",
				Help: "Committed stock writes by location field",
			},
			[]string{"field"},
		),
		stockUnitsDelta: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_stock_units_changed_total",
				Help: "Units added or removed by stock writes",
			},
			[]string{"field", "direction"},
		),
	}
}

// StockChanged implementa inventory.StockObserver.
func (m *Metrics) StockChanged(field entity.StockField, oldValue, newValue int) {
	m.stockUpdatesTotal.WithLabelValues(string(field)).Inc()
	switch delta := newValue - oldValue; {
	case delta > 0:
		m.stockUnitsDelta.WithLabelValues(string(field), "in").Add(float64(delta))
	case delta < 0:
		m.stockUnitsDelta.WithLabelValues(string(field), "out").Add(float64(-delta))
	}
}

// Middleware registra conteo y duración por ruta (patrón de la ruta, no la URL con ids).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		path := c.Route().Path
		m.httpRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		m.httpRequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone /metrics en formato Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
}

// Registry devuelve el registry para tests o colectores adicionales.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}
