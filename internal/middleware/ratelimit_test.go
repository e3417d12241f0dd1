package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"food-journal/internal/auth"
	"food-journal/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	rl := NewRateLimiter(1, 2, zerolog.Nop())
	frozen := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return frozen }
	h := rl.Middleware(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/meals", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes = append(codes, w.Code)

		if w.Code == http.StatusTooManyRequests {
			var resp model.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, model.ErrCodeRateLimited, resp.Error)
			assert.Equal(t, "1", w.Header().Get("Retry-After"))
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_SeparateBucketsPerCaller(t *testing.T) {
	rl := NewRateLimiter(1, 1, zerolog.Nop())
	frozen := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return frozen }
	h := rl.Middleware(okHandler())

	send := func(user, addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/meals", nil)
		req.RemoteAddr = addr
		if user != "" {
			req = req.WithContext(auth.WithIdentity(req.Context(), &auth.Identity{ID: user}))
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	// Same address, different users.
	assert.Equal(t, http.StatusOK, send("alice", "10.0.0.1:1"))
	assert.Equal(t, http.StatusOK, send("bob", "10.0.0.1:1"))
	assert.Equal(t, http.StatusTooManyRequests, send("alice", "10.0.0.1:2"))

	// Anonymous callers are keyed by host, ignoring the port.
	assert.Equal(t, http.StatusOK, send("", "10.0.0.9:1"))
	assert.Equal(t, http.StatusTooManyRequests, send("", "10.0.0.9:2"))
}

func TestRateLimiter_RefillsOverTime(t *testing.T) {
	rl := NewRateLimiter(1, 1, zerolog.Nop())
	current := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return current }

	assert.True(t, rl.allow("k"))
	assert.False(t, rl.allow("k"))

	current = current.Add(time.Second)
	assert.True(t, rl.allow("k"))
}

func TestRateLimiter_SweepsIdleCallers(t *testing.T) {
	rl := NewRateLimiter(1, 1, zerolog.Nop())
	current := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return current }

	rl.allow("old")
	current = current.Add(idleLimiterTTL + time.Minute)
	rl.allow("new")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.visitors, "old")
	assert.Contains(t, rl.visitors, "new")
}
