package translate

import (
	"bus-journey-service/internal/ports"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTranslatorTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/translate", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body translateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "जोधपुर", body.Q)
		assert.Equal(t, "en", body.Target)
		assert.Equal(t, "secret", body.APIKey)

		_ = json.NewEncoder(w).Encode(translateResponse{TranslatedText: " Jodhpur "})
	}))
	defer srv.Close()

	tr, err := NewHTTPTranslator(srv.URL+"/", "secret", nil)
	require.NoError(t, err)

	out, err := tr.Translate(context.Background(), "जोधपुर", ports.ScriptLatin)
	require.NoError(t, err)
	assert.Equal(t, "Jodhpur", out)
}

func TestHTTPTranslatorRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(translateResponse{TranslatedText: "Basni"})
	}))
	defer srv.Close()

	tr, err := NewHTTPTranslator(srv.URL, "", nil)
	require.NoError(t, err)

	out, err := tr.Translate(context.Background(), "बासनी", ports.ScriptLatin)
	require.NoError(t, err)
	assert.Equal(t, "Basni", out)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPTranslatorDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"Invalid API key"}`))
	}))
	defer srv.Close()

	tr, err := NewHTTPTranslator(srv.URL, "nope", nil)
	require.NoError(t, err)

	_, err = tr.Translate(context.Background(), "थोब", ports.ScriptLatin)
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrRejected)
	var se *serviceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.Status)
	assert.Equal(t, "Invalid API key", se.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPTranslatorRejectsEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(translateResponse{TranslatedText: "  "})
	}))
	defer srv.Close()

	tr, err := NewHTTPTranslator(srv.URL, "", nil)
	require.NoError(t, err)

	_, err = tr.Translate(context.Background(), "थोब", ports.ScriptLatin)
	assert.ErrorContains(t, err, "empty result")
}

func TestHTTPTranslatorInputChecks(t *testing.T) {
	_, err := NewHTTPTranslator("  ", "", nil)
	assert.Error(t, err)

	tr, err := NewHTTPTranslator("http://127.0.0.1:1", "", nil)
	require.NoError(t, err)

	_, err = tr.Translate(context.Background(), "", ports.ScriptLatin)
	assert.Error(t, err)

	_, err = tr.Translate(context.Background(), "Thob", "Deva")
	assert.ErrorContains(t, err, "unsupported target script")
}

func TestHTTPTranslatorHonorsCanceledContext(t *testing.T) {
	tr, err := NewHTTPTranslator("http://127.0.0.1:1", "", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = tr.Translate(ctx, "थोब", ports.ScriptLatin)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPTranslatorHonorsRetryAfter(t *testing.T) {
	var calls atomic.Int32
	var first atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			first.Store(time.Now().UnixNano())
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		assert.GreaterOrEqual(t, time.Since(time.Unix(0, first.Load())), 900*time.Millisecond)
		_ = json.NewEncoder(w).Encode(translateResponse{TranslatedText: "Paota"})
	}))
	defer srv.Close()

	tr, err := NewHTTPTranslator(srv.URL, "", nil)
	require.NoError(t, err)

	out, err := tr.Translate(context.Background(), "पावटा", ports.ScriptLatin)
	require.NoError(t, err)
	assert.Equal(t, "Paota", out)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPTranslatorStopsWhenRetryAfterOutlivesDeadline(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tr, err := NewHTTPTranslator(srv.URL, "", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = tr.Translate(ctx, "पावटा", ports.ScriptLatin)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, int32(1), calls.Load())
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestHTTPTranslatorGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tr, err := NewHTTPTranslator(srv.URL, "", nil)
	require.NoError(t, err)

	_, err = tr.Translate(context.Background(), "थोब", ports.ScriptLatin)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(maxAttempts), calls.Load())
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 2*time.Second, parseRetryAfter("2", now))
	assert.Equal(t, time.Duration(0), parseRetryAfter("", now))
	assert.Equal(t, time.Duration(0), parseRetryAfter("-1", now))
	assert.Equal(t, time.Duration(0), parseRetryAfter("soon", now))
	assert.Equal(t, 10*time.Second, parseRetryAfter(now.Add(10*time.Second).Format(http.TimeFormat), now))
	assert.Equal(t, time.Duration(0), parseRetryAfter(now.Add(-time.Minute).Format(http.TimeFormat), now))
}
