// Package metrics содержит Prometheus-метрики сервиса.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder собирает метрики покупок и HTTP-запросов.
type Recorder struct {
	purchases        *prometheus.CounterVec
	purchaseDuration prometheus.Histogram
	publishFailures  *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
}

// New регистрирует метрики в reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		purchases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "course_purchases_total",
			Help:      "Course purchase attempts by outcome.",
		}, []string{"outcome"}),
		purchaseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "marketplace",
			Name:      "course_purchase_duration_seconds",
			Help:      "Duration of the course purchase transaction.",
			Buckets:   prometheus.DefBuckets,
		}),
		publishFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "event_publish_failures_total",
			Help:      "Events that were not delivered to the broker after a committed purchase.",
		}, []string{"event"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
	}
	reg.MustRegister(r.purchases, r.purchaseDuration, r.publishFailures, r.httpRequests)
	return r
}

// ObservePurchase реализует enrollment.Metrics.
func (r *Recorder) ObservePurchase(outcome string, elapsed time.Duration) {
	r.purchases.WithLabelValues(outcome).Inc()
	r.purchaseDuration.Observe(elapsed.Seconds())
}

// EventPublishFailed учитывает событие, которое не удалось отправить в брокер.
func (r *Recorder) EventPublishFailed(event string) {
	r.publishFailures.WithLabelValues(event).Inc()
}

// Middleware считает запросы по шаблону маршрута chi.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		route := "unknown"
		if rctx := chi.RouteContext(req.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.httpRequests.WithLabelValues(route, req.Method, strconv.Itoa(status)).Inc()
	})
}
