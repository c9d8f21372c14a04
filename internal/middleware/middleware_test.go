package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/topicsvc/internal/errs"
	"github.com/deppfellow/topicsvc/internal/repository"
	"github.com/deppfellow/topicsvc/internal/testutils"
)

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())

	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = GetRequestID(c)
		return c.NoContent(http.StatusOK)
	})

	t.Run("reuses incoming header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", seen)
	})

	t.Run("generates a uuid otherwise", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		id := rec.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, seen)
	})
}

func TestGetLogger_WithoutEnhancer(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.NotNil(t, GetLogger(c))
	assert.NotNil(t, LoggerFromContext(c.Request().Context()))
}

func TestEnhanceContext(t *testing.T) {
	s, logs := testutils.NewServer(t, nil)
	enhancer := NewContextEnhancer(s)

	e := echo.New()
	e.Use(RequestID(), enhancer.EnhanceContext())
	e.GET("/hello", func(c echo.Context) error {
		assert.Same(t, GetLogger(c), LoggerFromContext(c.Request().Context()))
		GetLogger(c).Info().Msg("inside")
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/hello", nil)
	req.Header.Set(RequestIDHeader, "rid-1")
	e.ServeHTTP(httptest.NewRecorder(), req)

	line := lastLogLine(t, logs.String(), "inside")
	assert.Equal(t, "rid-1", line["request_id"])
	assert.Equal(t, "/hello", line["path"])
	assert.Equal(t, http.MethodGet, line["method"])
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		err        error
		wantStatus int
		wantBody   string
		wantLogged bool
	}{
		{
			name:       "client error passes through",
			method:     http.MethodGet,
			err:        errs.NewBadRequestError("Invalid search query", nil),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid search query"}`,
		},
		{
			name:       "load error is hidden",
			method:     http.MethodGet,
			err:        errors.WithStack(&repository.LoadError{Source: "topics.json", Err: errors.New("open topics.json: file does not exist")}),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal server error"}`,
			wantLogged: true,
		},
		{
			name:       "unknown error is hidden",
			method:     http.MethodGet,
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal server error"}`,
			wantLogged: true,
		},
		{
			name:       "echo not found",
			method:     http.MethodGet,
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Route not found"}`,
		},
		{
			name:       "echo method not allowed keeps status",
			method:     http.MethodGet,
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   `{"error":"Method Not Allowed"}`,
		},
		{
			name:       "head has no body",
			method:     http.MethodHead,
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantLogged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, logs := testutils.NewServer(t, nil)
			global := NewGlobalMiddlewares(s)

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(tt.method, "/api/topics", nil), rec)

			global.GlobalErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody == "" {
				assert.Empty(t, rec.Body.String())
			} else {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}

			assert.Equal(t, tt.wantLogged, strings.Contains(logs.String(), "request failed"))
			assert.NotContains(t, rec.Body.String(), "topics.json")
		})
	}
}

func TestGlobalErrorHandler_LogsStoreSource(t *testing.T) {
	s, logs := testutils.NewServer(t, nil)
	global := NewGlobalMiddlewares(s)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/api/topics", nil), httptest.NewRecorder())
	err := errors.WithStack(&repository.LoadError{Source: "data/topics.json", Err: errors.New("bad")})

	global.GlobalErrorHandler(err, c)

	line := lastLogLine(t, logs.String(), "request failed")
	assert.Equal(t, "data/topics.json", line["store"])
	assert.Equal(t, "error", line["level"])
	assert.EqualValues(t, http.StatusInternalServerError, line["status"])
	assert.Contains(t, line, "stack")
}

func TestGlobalErrorHandler_CommittedResponse(t *testing.T) {
	s, _ := testutils.NewServer(t, nil)
	global := NewGlobalMiddlewares(s)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "partial"))

	global.GlobalErrorHandler(errors.New("late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(errs.NewBadRequestError("x", nil)))
	assert.Equal(t, http.StatusNotFound, statusFor(echo.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("x")))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(echo.NewHTTPError(http.StatusServiceUnavailable)))
}

func TestNewMiddlewares_WithoutNewRelic(t *testing.T) {
	s, _ := testutils.NewServer(t, nil)
	m := NewMiddlewares(s)

	e := echo.New()
	e.Use(m.Tracing.NewRelicMiddleware(), m.Tracing.EnhanceTracing())
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?search=go", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

// lastLogLine returns the last JSON log record whose message is msg.
func lastLogLine(t *testing.T, logs, msg string) map[string]any {
	t.Helper()

	var found map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(logs), "\n") {
		var line map[string]any
		if json.Unmarshal([]byte(raw), &line) != nil {
			continue
		}
		if line["message"] == msg {
			found = line
		}
	}

	require.NotNil(t, found, "no log line with message %q", msg)
	return found
}

func TestRateLimit(t *testing.T) {
	newEcho := func(t *testing.T, limit float64, burst int) *echo.Echo {
		s, _ := testutils.NewServer(t, nil)
		s.Config.Server.RateLimit = limit
		s.Config.Server.RateBurst = burst

		e := echo.New()
		e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
		e.Use(NewRateLimitMiddleware(s).Limit())
		e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
		return e
	}

	serve := func(e *echo.Echo, ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("disabled by default", func(t *testing.T) {
		e := newEcho(t, 0, 0)
		for i := 0; i < 50; i++ {
			require.Equal(t, http.StatusOK, serve(e, "192.0.2.1").Code)
		}
	})

	t.Run("blocks requests over the burst", func(t *testing.T) {
		e := newEcho(t, 0.001, 2)

		require.Equal(t, http.StatusOK, serve(e, "192.0.2.2").Code)
		require.Equal(t, http.StatusOK, serve(e, "192.0.2.2").Code)

		rec := serve(e, "192.0.2.2")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.JSONEq(t, `{"error":"Too many requests"}`, rec.Body.String())

		// Buckets are per client.
		assert.Equal(t, http.StatusOK, serve(e, "192.0.2.3").Code)
	})
}
