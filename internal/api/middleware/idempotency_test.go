package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (http.Handler, *int) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	hits := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusCreated)
	})
	return Idempotency(client)(next), &hits
}

func TestIdempotencyRepeatedKeyRejected(t *testing.T) {
	handler, hits := newTestHandler(t)

	first := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
	first.Header.Set("Idempotency-Key", "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	require.Equal(t, http.StatusCreated, rec.Code)

	second := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
	second.Header.Set("Idempotency-Key", "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "true", rec.Header().Get("X-Idempotency-Hit"))
	assert.Equal(t, 1, *hits)
}

func TestIdempotencyFailedRequestCanBeRetried(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	hits := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	handler := Idempotency(client)(next)

	first := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
	first.Header.Set("Idempotency-Key", "retry-me")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// The failed attempt must not pin the key.
	second := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
	second.Header.Set("Idempotency-Key", "retry-me")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 2, hits)

	// The successful attempt does.
	third := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
	third.Header.Set("Idempotency-Key", "retry-me")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, third)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 2, hits)
}

func TestIdempotencyWithoutKeyPassesThrough(t *testing.T) {
	handler, hits := newTestHandler(t)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	assert.Equal(t, 2, *hits)
}

func TestIdempotencyIgnoresGet(t *testing.T) {
	handler, hits := newTestHandler(t)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/orders/1", nil)
		req.Header.Set("Idempotency-Key", "abc-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	assert.Equal(t, 2, *hits)
}
