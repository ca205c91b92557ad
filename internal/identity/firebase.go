// internal/identity/firebase.go
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quickload-admin/internal/common/errors"
	apphttp "quickload-admin/internal/common/http"
	"quickload-admin/internal/common/logger"
)

const DefaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

// Firebase runs the phone-number OTP sign-in against the Identity Toolkit
// REST API. The resulting ID token is what the backend's login endpoint
// accepts.
type Firebase struct {
	apiKey string
	client *apphttp.Client
	logger logger.Logger
}

// Challenge is returned after an OTP has been sent.
type Challenge struct {
	SessionInfo string `json:"sessionInfo"`
}

// SignIn holds the provider tokens for a verified phone number.
type SignIn struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	LocalID      string `json:"localId"`
	PhoneNumber  string `json:"phoneNumber"`
	ExpiresIn    string `json:"expiresIn"`
}

type providerError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewFirebase(baseURL, apiKey string, timeout time.Duration, log logger.Logger) *Firebase {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"component": "identity"})
	return &Firebase{
		apiKey: apiKey,
		client: apphttp.NewClient(apphttp.Options{
			Name:    "identity",
			BaseURL: baseURL,
			Timeout: timeout,
			Logger:  log,
		}),
		logger: log,
	}
}

// SendCode asks the provider to text an OTP to phoneNumber (E.164).
func (f *Firebase) SendCode(ctx context.Context, phoneNumber, recaptchaToken string) (Challenge, error) {
	var out Challenge
	if strings.TrimSpace(phoneNumber) == "" {
		return out, errors.NewValidationError("phone number is required")
	}
	err := f.call(ctx, "accounts:sendVerificationCode", map[string]string{
		"phoneNumber":    phoneNumber,
		"recaptchaToken": recaptchaToken,
	}, &out)
	if err != nil {
		return out, err
	}
	if out.SessionInfo == "" {
		return out, errors.NewIdentityError("sendVerificationCode", "response carried no sessionInfo")
	}
	f.logger.Info("Verification code sent", map[string]interface{}{"phone": maskPhone(phoneNumber)})
	return out, nil
}

// VerifyCode confirms the OTP and returns the provider's ID token.
func (f *Firebase) VerifyCode(ctx context.Context, sessionInfo, code string) (SignIn, error) {
	var out SignIn
	if sessionInfo == "" || code == "" {
		return out, errors.NewValidationError("session info and code are required")
	}
	err := f.call(ctx, "accounts:signInWithPhoneNumber", map[string]string{
		"sessionInfo": sessionInfo,
		"code":        code,
	}, &out)
	if err != nil {
		return out, err
	}
	if out.IDToken == "" {
		return out, errors.NewIdentityError("signInWithPhoneNumber", "response carried no idToken")
	}
	f.logger.Info("Phone number verified", map[string]interface{}{"localId": out.LocalID})
	return out, nil
}

// call posts payload to one Identity Toolkit method. Provider rejections
// become IDENTITY_ERROR carrying the provider's message and status.
func (f *Firebase) call(ctx context.Context, method string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.NewRequestBuildError(http.MethodPost, method, err)
	}

	data, err := f.client.Do(ctx, http.MethodPost, "/"+method, url.Values{"key": []string{f.apiKey}},
		bytes.NewReader(body), "application/json")
	if err != nil {
		if !errors.IsCode(err, errors.ErrCodeHTTPStatus) {
			return err
		}
		status := errors.StatusCode(err)
		detail := providerMessage(err)
		f.logger.Warn("Identity provider rejected request", map[string]interface{}{
			"method": method,
			"status": status,
			"detail": detail,
		})
		return errors.NewIdentityError(method, detail).WithMetadata("status", status)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errors.NewIdentityError(method, "failed to decode response: "+err.Error())
	}
	return nil
}

func providerMessage(err error) string {
	se, ok := errors.As(err)
	if !ok {
		return err.Error()
	}
	var pe providerError
	if json.Unmarshal([]byte(se.Details), &pe) == nil && pe.Error.Message != "" {
		return pe.Error.Message
	}
	return se.Details
}

func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
