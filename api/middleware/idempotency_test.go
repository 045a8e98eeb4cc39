package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgredis "github.com/stocklot-app/stocklot-backend/pkg/redis"
)

type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", pkgredis.Nil
	}
	return value, nil
}

func (m *memoryStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func (m *memoryStore) IdempotencyKey(scope, id string) string {
	return "stocklot:idempotency:" + scope + ":" + id
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func stockInHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true}`))
	})
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	calls := 0
	handler := Idempotency(store, time.Hour, nil)(stockInHandler(&calls))

	send := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest("POST", "/api/inventory/in", strings.NewReader(`{"productId":"x","quantity":5}`))
		r.Header.Set("Idempotency-Key", "key-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		return rec
	}

	first := send()
	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, 1, calls)

	second := send()
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
	assert.Equal(t, 1, calls, "replay must not reach the handler")
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	calls := 0
	handler := Idempotency(store, time.Hour, nil)(stockInHandler(&calls))

	send := func(body string) *httptest.ResponseRecorder {
		r := httptest.NewRequest("POST", "/api/inventory/in", strings.NewReader(body))
		r.Header.Set("Idempotency-Key", "key-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		return rec
	}

	require.Equal(t, http.StatusCreated, send(`{"quantity":5}`).Code)
	reused := send(`{"quantity":9}`)
	assert.Equal(t, http.StatusConflict, reused.Code)
	assert.Equal(t, 1, calls)
}

func TestIdempotencySkipsWithoutKeyOrStore(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	calls := 0
	handler := Idempotency(store, time.Hour, nil)(stockInHandler(&calls))

	r := httptest.NewRequest("POST", "/api/inventory/in", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	assert.Equal(t, 1, calls)
	assert.Empty(t, store.values, "no key, nothing stored")

	nilStore := Idempotency(nil, time.Hour, nil)(stockInHandler(&calls))
	r = httptest.NewRequest("POST", "/api/inventory/in", strings.NewReader(`{}`))
	r.Header.Set("Idempotency-Key", "key-1")
	nilStore.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, 2, calls)
}

func TestIdempotencyIgnoresUnguardedRoutes(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	calls := 0
	handler := Idempotency(store, time.Hour, nil)(stockInHandler(&calls))

	r := httptest.NewRequest("POST", "/api/products", strings.NewReader(`{}`))
	r.Header.Set("Idempotency-Key", "key-1")
	handler.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, 1, calls)
	assert.Empty(t, store.values)
}

// The middleware is mounted with Use on the /api subrouter, where chi has
// not matched the leaf route yet. Guarding must work through that nesting.
func TestIdempotencyGuardsRoutesMountedOnSubrouter(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	calls := 0

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Use(Idempotency(store, time.Hour, nil))
		r.Route("/inventory", func(r chi.Router) {
			r.Post("/in", stockInHandler(&calls).ServeHTTP)
		})
	})

	send := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest("POST", "/api/inventory/in", strings.NewReader(`{"quantity":5}`))
		r.Header.Set("Idempotency-Key", "key-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, r)
		return rec
	}

	first := send()
	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, 1, calls)
	require.Len(t, store.values, 1, "response must be stored on first pass")

	second := send()
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls, "replay must not reach the handler")
}

func TestIdempotencyDoesNotStoreFailures(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	handler := Idempotency(store, time.Hour, nil)(failing)

	r := httptest.NewRequest("POST", "/api/inventory/out", strings.NewReader(`{"quantity":500}`))
	r.Header.Set("Idempotency-Key", "key-1")
	handler.ServeHTTP(httptest.NewRecorder(), r)
	assert.Empty(t, store.values, "failed mutation stays retryable")
}
