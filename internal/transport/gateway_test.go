package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestGatewaySendSuccess(t *testing.T) {
	var gotBody map[string]any
	var gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/budget/analyze", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))
		gotRequestID = r.Header.Get(RequestIDHeader)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total_expenses":2400,"remaining":600}`))
	}))
	defer srv.Close()

	g := New(srv.URL+"/", time.Second, WithLogger(testLogger()))
	resp, err := g.Send(context.Background(), http.MethodPost, "/api/budget/analyze", map[string]float64{"monthly_income": 3000})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, 3000.0, gotBody["monthly_income"])
	assert.NotEmpty(t, gotRequestID)

	var out struct {
		TotalExpenses float64 `json:"total_expenses"`
		Remaining     float64 `json:"remaining"`
	}
	require.NoError(t, resp.Decode(&out))
	assert.Equal(t, 2400.0, out.TotalExpenses)
	assert.Equal(t, 600.0, out.Remaining)
}

func TestGatewayClassifiesStatuses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantKind    Kind
		wantMessage string
	}{
		{name: "500", status: http.StatusInternalServerError, wantKind: KindServerFault, wantMessage: MessageServerFault},
		{name: "404", status: http.StatusNotFound, wantKind: KindNotFound, wantMessage: MessageNotFound},
		{name: "422", status: http.StatusUnprocessableEntity, wantKind: KindUnknown, wantMessage: "request failed with status code 422"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"detail":"nope"}`))
			}))
			defer srv.Close()

			g := New(srv.URL, time.Second, WithLogger(testLogger()))
			_, err := g.Send(context.Background(), http.MethodGet, "/api/health", nil)
			require.Error(t, err)

			terr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, terr.Kind)
			assert.Equal(t, tt.wantMessage, terr.Message)
			assert.Equal(t, tt.status, terr.Status)
			assert.Equal(t, "/api/health", terr.Path)
			assert.JSONEq(t, `{"detail":"nope"}`, string(terr.Body))
		})
	}
}

func TestGatewayConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := New(url, time.Second, WithLogger(testLogger()))
	_, err := g.Send(context.Background(), http.MethodPost, "/api/chat", map[string]string{"user_input": "hi"})
	require.Error(t, err)

	assert.Equal(t, KindUnreachable, KindOf(err))
	assert.Equal(t, MessageUnreachable, err.Error())
}

func TestGatewayTimeoutIsUnknown(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	g := New(srv.URL, 50*time.Millisecond, WithLogger(testLogger()))
	assert.Equal(t, 50*time.Millisecond, g.Timeout())

	_, err := g.Send(context.Background(), http.MethodGet, "/api/health", nil)
	require.Error(t, err)

	terr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnknown, terr.Kind)
	assert.NotEmpty(t, terr.Message)
}

func TestGatewayInterceptorOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "chat", r.Header.Get("X-Action"))
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var seenRequestID string
	var seenKind Kind
	g := New(srv.URL, time.Second,
		WithLogger(testLogger()),
		WithRequestInterceptor(func(req *http.Request) {
			seenRequestID = req.Header.Get(RequestIDHeader)
			req.Header.Set("X-Action", "chat")
		}),
		WithErrorInterceptor(func(e *Error) *Error {
			seenKind = e.Kind
			return e
		}),
	)

	_, err := g.Send(context.Background(), http.MethodPost, "/api/chat", nil)
	require.Error(t, err)
	assert.NotEmpty(t, seenRequestID, "user interceptors run after tagging")
	assert.Equal(t, KindServerFault, seenKind, "user error interceptors see the classified error")
}

func TestCallDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	g := New(srv.URL, time.Second, WithLogger(testLogger()))
	out, err := Call[map[string]string](context.Background(), g, http.MethodGet, "/api/health", nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", (*out)["status"])
}

func TestCallRejectsMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	g := New(srv.URL, time.Second, WithLogger(testLogger()))
	_, err := Call[map[string]string](context.Background(), g, http.MethodGet, "/api/health", nil)
	require.Error(t, err)
	_, isTransport := AsError(err)
	assert.False(t, isTransport)
}
