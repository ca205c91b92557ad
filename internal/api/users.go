package api

import (
	"context"
	"net/http"

	apphttp "quickload-admin/internal/common/http"
	"quickload-admin/internal/common/logger"
	"quickload-admin/internal/models"
)

type Users struct {
	plain  Requester
	authed Requester
	logger logger.Logger
}

// Get fetches one user by id.
func (u *Users) Get(ctx context.Context, id string) (models.User, error) {
	raw, err := u.authed.Get(ctx, "/user/"+escape(id), nil)
	if err != nil {
		return models.User{}, err
	}
	return unwrap[models.User](raw, recordEnvelope(keyUser), keyUser)
}

// List fetches every registered user.
func (u *Users) List(ctx context.Context) ([]models.User, error) {
	raw, err := u.authed.Get(ctx, "/user/list", nil)
	if err != nil {
		return nil, err
	}
	return unwrap[[]models.User](raw, listEnvelope(keyUsers), keyUsers)
}

// Update sends a diff-only multipart update.
func (u *Users) Update(ctx context.Context, id string, form apphttp.MultipartBody) (models.User, error) {
	raw, err := u.authed.SendMultipart(ctx, http.MethodPut, "/user/"+escape(id), form)
	if err != nil {
		return models.User{}, err
	}
	return unwrap[models.User](raw, recordEnvelope(keyUser), keyUser)
}

// Delete removes the account and returns the backend's confirmation message.
func (u *Users) Delete(ctx context.Context, id string) (string, error) {
	raw, err := u.authed.Delete(ctx, "/user/"+escape(id))
	if err != nil {
		return "", err
	}
	body, err := unwrapWhole[struct {
		Message string `json:"message"`
	}](raw, messageEnvelope, keyMessage)
	if err != nil {
		return "", err
	}
	u.logger.Info("user deleted", map[string]interface{}{"userId": id})
	return body.Message, nil
}

// Login exchanges an identity-provider token for the backend token pair.
// Sent without credentials.
func (u *Users) Login(ctx context.Context, identityToken string) (models.LoginResult, error) {
	raw, err := u.plain.SendJSON(ctx, http.MethodPost, "/user/firebase-login", map[string]string{
		"access_token": identityToken,
	})
	if err != nil {
		return models.LoginResult{}, err
	}
	return unwrapWhole[models.LoginResult](raw, loginEnvelope, keyUser)
}

// RefreshToken trades a refresh token for a new access token.
func (u *Users) RefreshToken(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	raw, err := u.plain.SendJSON(ctx, http.MethodPost, "/user/refresh-token", map[string]string{
		"refreshToken": refreshToken,
	})
	if err != nil {
		return models.TokenPair{}, err
	}
	return unwrapWhole[models.TokenPair](raw, refreshEnvelope, keyAccessToken)
}
