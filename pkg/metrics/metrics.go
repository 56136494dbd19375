package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus-метрик сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках
// в зависимости передается nil.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	slotFallbacks        *prometheus.CounterVec
	bookingSubmissions   *prometheus.CounterVec
	searchRequests       *prometheus.CounterVec
	geolocationResults   *prometheus.CounterVec
	upstreamUnauthorized prometheus.Counter
}

// New создает метрики в отдельном реестре с префиксом serviceName.
// Дефисы в имени сервиса заменяются на подчеркивания.
func New(serviceName string) *Metrics {
	serviceName = strings.ReplaceAll(serviceName, "-", "_")
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "http_requests_total",
				Help:      "Количество обработанных HTTP-запросов",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: serviceName,
				Name:      "http_request_duration_seconds",
				Help:      "Длительность обработки HTTP-запросов",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		slotFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "slot_fallbacks_total",
				Help:      "Количество подстановок créneaux par défaut",
			},
			[]string{"reason"},
		),
		bookingSubmissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "booking_submissions_total",
				Help:      "Отправки мастера бронирования по результату",
			},
			[]string{"outcome"},
		),
		searchRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "search_requests_total",
				Help:      "Поисковые запросы по типу сортировки",
			},
			[]string{"sort"},
		),
		geolocationResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "geolocation_results_total",
				Help:      "Результаты определения местоположения",
			},
			[]string{"source", "outcome"},
		),
		upstreamUnauthorized: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "upstream_unauthorized_total",
				Help:      "Ответы 401 от API маркетплейса, приведшие к сбросу сессии",
			},
		),
	}

	registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.slotFallbacks,
		m.bookingSubmissions,
		m.searchRequests,
		m.geolocationResults,
		m.upstreamUnauthorized,
	)

	return m
}

// Handler HTTP-обработчик для эндпоинта метрик
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry используется в тестах
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) IncSlotFallback(reason string) {
	if m == nil {
		return
	}
	m.slotFallbacks.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncBookingSubmission(outcome string) {
	if m == nil {
		return
	}
	m.bookingSubmissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncSearchRequest(sort string) {
	if m == nil {
		return
	}
	m.searchRequests.WithLabelValues(sort).Inc()
}

func (m *Metrics) IncGeolocationResult(source, outcome string) {
	if m == nil {
		return
	}
	m.geolocationResults.WithLabelValues(source, outcome).Inc()
}

func (m *Metrics) IncUpstreamUnauthorized() {
	if m == nil {
		return
	}
	m.upstreamUnauthorized.Inc()
}
