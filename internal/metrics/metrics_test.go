package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_ObservePurchase(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.ObservePurchase("success", 20*time.Millisecond)
	r.ObservePurchase("success", 10*time.Millisecond)
	r.ObservePurchase("insufficient_funds", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.purchases.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.purchases.WithLabelValues("insufficient_funds")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.purchaseDuration))
}

func TestRecorder_EventPublishFailed(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.EventPublishFailed("course.purchased")
	r.EventPublishFailed("course.purchased")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.publishFailures.WithLabelValues("course.purchased")))
}

func TestRecorder_Middleware(t *testing.T) {
	r := New(prometheus.NewRegistry())

	router := chi.NewRouter()
	router.Use(r.Middleware)
	router.Get("/courses/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses/5", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("/courses/{id}", "GET", "404")))
}
