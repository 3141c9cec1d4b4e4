// Package metrics содержит prometheus коллекторы сервиса
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Действия над заявками, которые мы считаем
const (
	ActionCreated  = "created"
	ActionAccepted = "accepted"
	ActionRejected = "rejected"
)

// Metrics хранит коллекторы и реестр, в котором они зарегистрированы
type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	groupRequests *prometheus.CounterVec
}

// New создает и регистрирует коллекторы в отдельном реестре
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roleplay",
			Name:      "http_requests_total",
			Help:      "Количество HTTP запросов по маршруту и статусу.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "roleplay",
			Name:      "http_request_duration_seconds",
			Help:      "Длительность обработки HTTP запросов.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		groupRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roleplay",
			Name:      "group_requests_total",
			Help:      "Переходы заявок на вступление в группу.",
		}, []string{"action"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.groupRequests,
	)

	return m
}

// ObserveHTTP учитывает завершенный HTTP запрос
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// GroupRequest учитывает переход заявки (created, accepted, rejected)
func (m *Metrics) GroupRequest(action string) {
	if m == nil {
		return
	}
	m.groupRequests.WithLabelValues(action).Inc()
}

// Handler возвращает HTTP обработчик для /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry возвращает реестр коллекторов
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
