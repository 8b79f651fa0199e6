// Package metrics экспортирует Prometheus-метрики файлового сервиса.
// Каждый сервер держит собственный реестр, поэтому в тестах можно поднимать сколько угодно экземпляров.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yourname/filestore_lite/internal/models"
)

const namespace = "filestore"

// StatsSource описывает всё, что нужно коллектору от хранилища.
type StatsSource interface {
	Stats(ctx context.Context) (models.Stats, error)
}

// Metrics хранит счётчики сервиса и реестр, в котором они зарегистрированы.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	uploads         *prometheus.CounterVec
	downloads       *prometheus.CounterVec
	bytesUploaded   prometheus.Counter
	bytesDownloaded prometheus.Counter
}

// New создаёт реестр, регистрирует в нём метрики сервиса и коллектор статистики хранилища.
func New(source StatsSource) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Total number of upload attempts",
		}, []string{"status"}),
		downloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloads_total",
			Help:      "Total number of download attempts",
		}, []string{"status"}),
		bytesUploaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_uploaded_total",
			Help:      "Total bytes accepted by successful uploads",
		}),
		bytesDownloaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_downloaded_total",
			Help:      "Total bytes served to clients",
		}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.uploads,
		m.downloads,
		m.bytesUploaded,
		m.bytesDownloaded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if source != nil {
		reg.MustRegister(newStoreCollector(source))
	}

	return m
}

// Registry нужен тестам, чтобы собрать метрики без HTTP.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler отдаёт метрики в текстовом формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordUpload учитывает одну попытку загрузки.
func (m *Metrics) RecordUpload(bytes int64, success bool) {
	if m == nil {
		return
	}
	if success {
		m.bytesUploaded.Add(float64(bytes))
	}
	m.uploads.WithLabelValues(status(success)).Inc()
}

// RecordDownload учитывает одну отдачу файла.
func (m *Metrics) RecordDownload(bytes int64, success bool) {
	if m == nil {
		return
	}
	m.bytesDownloaded.Add(float64(bytes))
	m.downloads.WithLabelValues(status(success)).Inc()
}

// Middleware считает запросы по шаблону маршрута chi, а не по сырому пути,
// чтобы имена файлов не раздували кардинальность.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}

		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(code)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
