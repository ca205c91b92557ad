package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "quickload-admin/internal/common/errors"
	"quickload-admin/internal/models"
	"quickload-admin/internal/session"
	"quickload-admin/internal/state"
)

type otpRequest struct {
	PhoneNumber    string `json:"phoneNumber" binding:"required"`
	RecaptchaToken string `json:"recaptchaToken"`
}

type verifyRequest struct {
	SessionInfo string `json:"sessionInfo" binding:"required"`
	Code        string `json:"code" binding:"required"`
}

func (s *Server) sendOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, "auth.otp", "Phone number is required", apperrors.NewValidationError(err.Error()))
		return
	}
	if s.identity == nil {
		s.fail(c, "auth.otp", "Phone sign-in is not configured", apperrors.NewInvalidStateError("no identity provider"))
		return
	}
	challenge, err := s.identity.SendCode(c.Request.Context(), req.PhoneNumber, req.RecaptchaToken)
	if err != nil {
		s.fail(c, "auth.otp", "Failed to send verification code", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionInfo": challenge.SessionInfo})
}

// verifyOTP confirms the code, exchanges the identity token with the backend
// and keeps the tokens only when the account is an admin.
func (s *Server) verifyOTP(c *gin.Context) {
	ctx := c.Request.Context()
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, "auth.verify", "Session and code are required", apperrors.NewValidationError(err.Error()))
		return
	}
	if s.identity == nil {
		s.fail(c, "auth.verify", "Phone sign-in is not configured", apperrors.NewInvalidStateError("no identity provider"))
		return
	}

	signIn, err := s.identity.VerifyCode(ctx, req.SessionInfo, req.Code)
	if err != nil {
		s.fail(c, "auth.verify", "Invalid verification code", err)
		return
	}

	login := state.Login(s.svc, s.deps)
	result, err := login.Run(ctx, signIn.IDToken)
	if err != nil {
		s.fail(c, "auth.login", login.State().Error, err)
		return
	}
	if !result.User.IsAdmin() {
		s.fail(c, "auth.login", "Access denied", apperrors.NewForbiddenError("user "+result.User.ID+" is "+string(result.User.Type)))
		return
	}

	if err := s.store.SetTokens(ctx, result.AccessToken, result.RefreshToken); err != nil {
		s.fail(c, "auth.login", "Failed to login", err)
		return
	}
	s.remember(result.AccessToken, result.User)

	s.logger.Info("Admin signed in", map[string]interface{}{"userId": result.User.ID})
	c.JSON(http.StatusOK, gin.H{"user": result.User})
}

func (s *Server) refreshSession(c *gin.Context) {
	token, err := s.refresh(c.Request.Context())
	if err != nil {
		s.fail(c, "auth.refresh", "Failed to refresh token", err)
		return
	}
	info, _ := session.Inspect(token)
	c.JSON(http.StatusOK, gin.H{"refreshed": true, "expiresAt": info.ExpiresAt})
}

func (s *Server) logout(c *gin.Context) {
	if err := s.store.Clear(c.Request.Context()); err != nil {
		s.fail(c, "auth.logout", "Failed to logout", err)
		return
	}
	s.forget()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// sessionStatus reports what the stored token says about itself. It never
// calls the backend.
func (s *Server) sessionStatus(c *gin.Context) {
	token, err := s.store.GetToken(c.Request.Context())
	if err != nil {
		s.fail(c, "auth.session", "Failed to read session", err)
		return
	}
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	info, err := session.Inspect(token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": !info.Expired(s.now()),
		"subject":       info.Subject,
		"expiresAt":     info.ExpiresAt,
	})
}

// refreshLeeway is how close to expiry an access token gets refreshed ahead
// of time.
const refreshLeeway = time.Minute

// requireAdmin admits the request only when the stored session belongs to
// an admin. An expired access token is refreshed once; one about to expire
// is refreshed early when a refresh token is stored.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token, err := s.store.GetToken(ctx)
		if err != nil {
			s.fail(c, "auth.guard", "Failed to read session", err)
			return
		}
		if token == "" {
			s.fail(c, "auth.guard", "Not signed in", apperrors.NewUnauthorizedError("no access token"))
			return
		}

		info, err := session.Inspect(token)
		if err != nil {
			s.fail(c, "auth.guard", "Session is invalid", apperrors.NewUnauthorizedError(err.Error()))
			return
		}
		switch {
		case info.Expired(s.now()):
			if token, err = s.refresh(ctx); err != nil {
				s.fail(c, "auth.guard", "Session expired", err)
				return
			}
			if info, err = session.Inspect(token); err != nil {
				s.fail(c, "auth.guard", "Session is invalid", apperrors.NewUnauthorizedError(err.Error()))
				return
			}
		case info.ExpiresWithin(s.now(), refreshLeeway):
			// still valid, so a failed early refresh keeps the current token
			if fresh, err := s.refresh(ctx); err != nil {
				s.logger.Warn("Early token refresh failed", map[string]interface{}{"error": err})
			} else if freshInfo, err := session.Inspect(fresh); err == nil {
				token, info = fresh, freshInfo
			}
		}

		user, err := s.resolveAdmin(ctx, token, info.Subject)
		if err != nil {
			s.fail(c, "auth.guard", "Access denied", err)
			return
		}
		c.Set(ctxAdminUser, user)
		c.Next()
	}
}

func (s *Server) resolveAdmin(ctx context.Context, token, subject string) (models.User, error) {
	s.mu.Lock()
	cached := s.admin
	s.mu.Unlock()
	if cached.token == token {
		return cached.user, nil
	}

	if subject == "" {
		return models.User{}, apperrors.NewUnauthorizedError("access token names no user")
	}
	snap := state.UserByID(s.svc, subject, s.deps).Refetch(ctx)
	if snap.Error != "" {
		return models.User{}, apperrors.NewUnauthorizedError(snap.Error)
	}
	if !snap.Data.IsAdmin() {
		return models.User{}, apperrors.NewForbiddenError("user " + subject + " is not an admin")
	}
	s.remember(token, snap.Data)
	return snap.Data, nil
}

func (s *Server) refresh(ctx context.Context) (string, error) {
	refreshToken, err := s.store.GetRefreshToken(ctx)
	if err != nil {
		return "", err
	}
	if refreshToken == "" {
		return "", apperrors.NewUnauthorizedError("no refresh token")
	}

	pair, err := state.RefreshToken(s.svc, s.deps).Run(ctx, refreshToken)
	if err != nil {
		return "", apperrors.NewUnauthorizedError(err.Error())
	}
	if err := s.store.SetTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.admin.token != "" {
		s.admin.token = pair.AccessToken
	}
	s.mu.Unlock()
	return pair.AccessToken, nil
}

func (s *Server) remember(token string, user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = cachedAdmin{token: token, user: user}
}

func (s *Server) forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = cachedAdmin{}
}
