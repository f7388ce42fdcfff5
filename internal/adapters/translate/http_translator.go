package translate

import (
	"bus-journey-service/internal/platform/obs"
	"bus-journey-service/internal/ports"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrRateLimited means the service answered 429 and the retry budget ran out.
	ErrRateLimited = errors.New("translation service rate limited")
	// ErrUnavailable covers 5xx answers and transport failures.
	ErrUnavailable = errors.New("translation service unavailable")
	// ErrRejected means the service refused the request itself, e.g. a bad
	// API key or an unsupported source language. Retrying will not help.
	ErrRejected = errors.New("translation request rejected")
)

const (
	maxAttempts   = 4
	firstBackoff  = 50 * time.Millisecond
	maxRetryAfter = 5 * time.Second
)

// serviceError is a non-2xx answer. Message is the service's "error" field
// when it sent one.
type serviceError struct {
	Status     int
	Message    string
	RetryAfter time.Duration
	kind       error
}

func (e *serviceError) Error() string {
	return fmt.Sprintf("%v: status %d: %s", e.kind, e.Status, e.Message)
}

func (e *serviceError) Unwrap() error { return e.kind }

// HTTPTranslator implements NameTranslator against a LibreTranslate style
// JSON endpoint (POST {baseURL}/translate). The API key travels in the
// request body as LibreTranslate expects.
//
// Retries are budgeted against the caller's context deadline: a wait that
// would outlive the deadline is not started.
//
// The translator is safe for concurrent use.
type HTTPTranslator struct {
	session *http.Client
	apiKey  string
	baseURL string
	logger  *zap.Logger
	now     func() time.Time
}

var _ ports.NameTranslator = (*HTTPTranslator)(nil)

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

func NewHTTPTranslator(baseURL, apiKey string, logger *zap.Logger) (*HTTPTranslator, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("new http translator: base URL must not be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HTTPTranslator{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: baseURL,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Translate asks the service for a rendering of text in targetScript.
// Only Latin output is supported; the service is asked for English.
func (t *HTTPTranslator) Translate(ctx context.Context, text, targetScript string) (_ string, err error) {
	defer obs.Time(ctx, t.logger, "translator.Translate")(&err)

	if strings.TrimSpace(text) == "" {
		return "", errors.New("translate: text must not be empty")
	}
	if targetScript != ports.ScriptLatin {
		return "", fmt.Errorf("translate: unsupported target script %q", targetScript)
	}

	payload, err := json.Marshal(translateRequest{
		Q:      text,
		Source: "auto",
		Target: "en",
		Format: "text",
		APIKey: t.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("translate: encode request: %w", err)
	}

	out, err := t.translateWithRetry(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("translate %q: %w", text, err)
	}
	return out, nil
}

// translateWithRetry retries rate limits and unavailability. A 429 waits
// for the service's Retry-After when given, otherwise backoff doubles.
func (t *HTTPTranslator) translateWithRetry(ctx context.Context, payload []byte) (string, error) {
	backoff := firstBackoff

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		out, err := t.post(ctx, payload)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !retryable(err) || ctx.Err() != nil {
			return "", err
		}

		wait := backoff
		var se *serviceError
		if errors.As(err, &se) && se.RetryAfter > 0 {
			wait = min(se.RetryAfter, maxRetryAfter)
		}
		if attempt == maxAttempts || !t.fitsDeadline(ctx, wait) {
			break
		}

		t.logger.Debug("translation retry",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}

	return "", lastErr
}

func retryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUnavailable)
}

// fitsDeadline reports whether waiting d still leaves time for one more call.
func (t *HTTPTranslator) fitsDeadline(ctx context.Context, d time.Duration) bool {
	deadline, ok := ctx.Deadline()
	if !ok {
		return true
	}
	return t.now().Add(d).Before(deadline)
}

func (t *HTTPTranslator) post(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.session.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		var netErr net.Error
		if errors.As(err, &netErr) {
			return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	var decoded translateResponse
	decodeErr := json.Unmarshal(body, &decoded)

	if resp.StatusCode >= 400 {
		msg := strings.TrimSpace(decoded.Error)
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return "", classify(resp, msg, t.now())
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}

	out := strings.TrimSpace(decoded.TranslatedText)
	if out == "" {
		return "", errors.New("empty result")
	}
	return out, nil
}

func classify(resp *http.Response, msg string, now time.Time) *serviceError {
	se := &serviceError{Status: resp.StatusCode, Message: msg}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		se.kind = ErrRateLimited
		se.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"), now)
	case resp.StatusCode >= 500:
		se.kind = ErrUnavailable
		se.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"), now)
	default:
		se.kind = ErrRejected
	}
	return se
}

// parseRetryAfter accepts both delta-seconds and HTTP-date forms.
func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
