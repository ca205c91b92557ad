package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"quickload-admin/internal/common/errors"
	"quickload-admin/internal/common/logger"
)

// ==========================
// Test Helpers
// ==========================

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) GetToken(ctx context.Context) (string, error) {
	return s.token, s.err
}

type rawForm struct {
	body        string
	contentType string
	err         error
}

func (f rawForm) Encode() (io.Reader, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return bytes.NewBufferString(f.body), f.contentType, nil
}

// ==========================
// Authorization Tests
// ==========================

func TestAuthenticated_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(HeaderRequestID)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewAuthenticated(srv.URL, time.Second, staticTokens{token: "abc"}, logger.NewTestLogger(t))
	body, err := c.Get(context.Background(), "/user/1", nil)

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestAuthenticated_NoTokenSendsNoHeader(t *testing.T) {
	tests := []struct {
		name   string
		tokens TokenSource
	}{
		{"empty token", staticTokens{}},
		{"storage failure", staticTokens{err: fmt.Errorf("redis down")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hasAuth bool
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, hasAuth = r.Header["Authorization"]
				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			c := NewAuthenticated(srv.URL, time.Second, tt.tokens, logger.NewTestLogger(t))
			_, err := c.Get(context.Background(), "/product/list", nil)

			require.NoError(t, err)
			assert.False(t, hasAuth)
		})
	}
}

func TestPlain_NeverSendsCredentials(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
	}))
	defer srv.Close()

	c := NewPlain(srv.URL+"/", time.Second, nil)
	_, err := c.SendJSON(context.Background(), http.MethodPost, "/user/refresh-token", map[string]string{"refreshToken": "r"})

	require.NoError(t, err)
	assert.False(t, hasAuth)
}

func TestDo_PropagatesTraceContext(t *testing.T) {
	otel.SetTracerProvider(sdktrace.NewTracerProvider())
	otel.SetTextMapPropagator(propagation.TraceContext{})

	var traceparent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceparent = r.Header.Get("traceparent")
	}))
	defer srv.Close()

	c := NewPlain(srv.URL, time.Second, nil)
	_, err := c.Get(context.Background(), "/vehicle/list", nil)

	require.NoError(t, err)
	assert.Regexp(t, `^00-[0-9a-f]{32}-[0-9a-f]{16}-01$`, traceparent)
}

// ==========================
// Request Shape Tests
// ==========================

func TestSendJSON_BodyAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "/api/notifications/send", r.URL.Path)
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "hello", payload["message"])
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewPlain(srv.URL+"/api", time.Second, logger.NewTestLogger(t))
	_, err := c.SendJSON(context.Background(), http.MethodPost, "/notifications/send", map[string]string{"message": "hello"})
	require.NoError(t, err)
}

func TestGet_EncodesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bricks", r.URL.Query().Get("productType"))
		assert.Equal(t, "u 1", r.URL.Query().Get("productOwner"))
	}))
	defer srv.Close()

	c := NewPlain(srv.URL, time.Second, nil)
	_, err := c.Get(context.Background(), "/product/listByType", url.Values{
		"productType":  []string{"Bricks"},
		"productOwner": []string{"u 1"},
	})
	require.NoError(t, err)
}

func TestSendMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "multipart/form-data; boundary=x", r.Header.Get("Content-Type"))
		data, _ := io.ReadAll(r.Body)
		assert.Equal(t, "payload", string(data))
	}))
	defer srv.Close()

	c := NewPlain(srv.URL, time.Second, nil)
	_, err := c.SendMultipart(context.Background(), http.MethodPut, "/product/1", rawForm{body: "payload", contentType: "multipart/form-data; boundary=x"})
	require.NoError(t, err)

	_, err = c.SendMultipart(context.Background(), http.MethodPut, "/product/1", rawForm{err: fmt.Errorf("bad file")})
	assert.True(t, errors.IsCode(err, errors.ErrCodeMultipartEncode))
}

// ==========================
// Error Propagation Tests
// ==========================

func TestDo_StatusErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	}))
	defer srv.Close()

	c := NewPlain(srv.URL, time.Second, logger.NewTestLogger(t))
	_, err := c.Get(context.Background(), "/product/list", nil)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeHTTPStatus))
	assert.Equal(t, http.StatusInternalServerError, errors.StatusCode(err))
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestDo_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewPlain(srv.URL, 20*time.Millisecond, nil)
	_, err := c.Get(context.Background(), "/slow", nil)

	assert.True(t, errors.IsCode(err, errors.ErrCodeNetwork))
}

func TestDo_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewPlain(srv.URL, time.Second, nil)
	_, err := c.Get(ctx, "/product/list", nil)

	assert.ErrorIs(t, err, context.Canceled)
}
