package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickload-admin/internal/common/errors"
	apphttp "quickload-admin/internal/common/http"
	"quickload-admin/internal/common/logger"
)

func newProvider(t *testing.T, handler http.HandlerFunc) *Firebase {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewFirebase(srv.URL+"/v1", "test-key", time.Second, logger.NewTestLogger(t))
}

func TestSendCode(t *testing.T) {
	f := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:sendVerificationCode", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.NotEmpty(t, r.Header.Get(apphttp.HeaderRequestID))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "+919876543210", body["phoneNumber"])
		assert.Equal(t, "captcha", body["recaptchaToken"])

		_, _ = w.Write([]byte(`{"sessionInfo":"sess-1"}`))
	})

	ch, err := f.SendCode(context.Background(), "+919876543210", "captcha")

	require.NoError(t, err)
	assert.Equal(t, "sess-1", ch.SessionInfo)
}

func TestSendCode_RequiresPhone(t *testing.T) {
	f := NewFirebase("", "k", 0, nil)

	_, err := f.SendCode(context.Background(), "  ", "")

	assert.True(t, errors.IsCode(err, errors.ErrCodeValidationFailed))
}

func TestVerifyCode(t *testing.T) {
	f := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:signInWithPhoneNumber", r.URL.Path)
		_, _ = w.Write([]byte(`{"idToken":"id-tok","refreshToken":"r","localId":"uid-1","phoneNumber":"+919876543210"}`))
	})

	res, err := f.VerifyCode(context.Background(), "sess-1", "123456")

	require.NoError(t, err)
	assert.Equal(t, "id-tok", res.IDToken)
	assert.Equal(t, "uid-1", res.LocalID)
}

func TestVerifyCode_ProviderRejects(t *testing.T) {
	f := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"INVALID_CODE"}}`))
	})

	_, err := f.VerifyCode(context.Background(), "sess-1", "000000")

	require.Error(t, err)
	se, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeIdentity, se.Code)
	assert.Contains(t, se.Details, "INVALID_CODE")
	assert.Equal(t, http.StatusBadRequest, se.Metadata["status"])
}

func TestVerifyCode_TransportFailureStaysNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	f := NewFirebase(baseURL, "k", time.Second, logger.NewTestLogger(t))
	_, err := f.VerifyCode(context.Background(), "sess-1", "123456")

	assert.True(t, errors.IsCode(err, errors.ErrCodeNetwork))
}

func TestVerifyCode_MissingToken(t *testing.T) {
	f := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := f.VerifyCode(context.Background(), "sess-1", "123456")

	assert.True(t, errors.IsCode(err, errors.ErrCodeIdentity))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "*********3210", maskPhone("+919876543210"))
	assert.Equal(t, "****", maskPhone("12"))
}
