package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"husbandry-tracker/internal/platform/logger"
	"husbandry-tracker/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterWrite_OnlySuccessfulMutations(t *testing.T) {
	calls := 0
	r := chi.NewRouter()
	r.Use(AfterWrite(func() { calls++ }))
	r.Get("/x", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Post("/x", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusCreated) })
	r.Put("/x", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) })
	r.Delete("/x", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("{}")) })

	for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(m, "/x", nil))
	}
	assert.Equal(t, 2, calls) // POST 201 y DELETE 200
}

func TestObserve_RecordsRoutePattern(t *testing.T) {
	m := metrics.New()
	r := chi.NewRouter()
	r.Use(Observe(logger.Nop(), m))
	r.Get("/api/animals/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/animals/AB-0001", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/animals/AB-0002", nil))

	// una sola serie: se etiqueta con el patrón, no con el path
	n, err := testutil.GatherAndCount(m.Registry(), "husbandry_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
