// Package dashboard serves the admin pages' data as JSON over gin.
package dashboard

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "quickload-admin/internal/common/errors"
	"quickload-admin/internal/common/logger"
	"quickload-admin/internal/common/observability"
	"quickload-admin/internal/identity"
	"quickload-admin/internal/listing"
	"quickload-admin/internal/models"
	"quickload-admin/internal/service"
	"quickload-admin/internal/session"
	"quickload-admin/internal/state"
)

// IdentityProvider runs the phone-number OTP challenge.
type IdentityProvider interface {
	SendCode(ctx context.Context, phoneNumber, recaptchaToken string) (identity.Challenge, error)
	VerifyCode(ctx context.Context, sessionInfo, code string) (identity.SignIn, error)
}

type Options struct {
	Services       *service.Manager
	Store          session.Store
	Identity       IdentityProvider
	State          state.Deps
	Logger         logger.Logger
	Tracing        *observability.Tracing
	PageSize       int
	AllowedOrigins []string
	// Now defaults to time.Now.
	Now func() time.Time
}

type Server struct {
	svc      *service.Manager
	store    session.Store
	identity IdentityProvider
	deps     state.Deps
	logger   logger.Logger
	tracing  *observability.Tracing
	errs     *apperrors.ErrorHandler
	pageSize int
	now      func() time.Time

	mu    sync.Mutex
	admin cachedAdmin
}

// cachedAdmin remembers which user the current access token resolved to.
type cachedAdmin struct {
	token string
	user  models.User
}

func NewServer(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if opts.State.Logger == nil {
		opts.State.Logger = log
	}
	if opts.PageSize <= 0 {
		opts.PageSize = listing.DefaultPageSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{
		svc:      opts.Services,
		store:    opts.Store,
		identity: opts.Identity,
		deps:     opts.State,
		logger:   log.WithFields(map[string]interface{}{"component": "dashboard"}),
		tracing:  opts.Tracing,
		errs:     apperrors.NewErrorHandler(log),
		pageSize: opts.PageSize,
		now:      opts.Now,
	}
}

// NewRouter builds the gin engine with every dashboard route.
func NewRouter(opts Options) *gin.Engine {
	s := NewServer(opts)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(s.traceRequests())
	r.Use(s.accessLog())
	r.Use(countRequests())
	r.Use(corsMiddleware(opts.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/otp", s.sendOTP)
		auth.POST("/verify", s.verifyOTP)
		auth.POST("/refresh", s.refreshSession)
		auth.POST("/logout", s.logout)
		auth.GET("/session", s.sessionStatus)
	}

	admin := r.Group("/")
	admin.Use(s.requireAdmin())
	{
		admin.GET("/users", s.listUsers)
		admin.GET("/users/:id", s.getUser)
		admin.PUT("/users/:id", s.updateUser)
		admin.DELETE("/users/:id", s.deleteUser)
		admin.POST("/users/:id/verify", s.verifyUser)

		admin.GET("/products", s.listProducts)
		admin.POST("/products", s.addProduct)
		admin.GET("/products/:id", s.getProduct)
		admin.PUT("/products/:id", s.updateProduct)
		admin.POST("/products/:id/verify", s.verifyProduct)

		admin.GET("/product-owners", s.listOwners)
		admin.POST("/product-owners", s.addOwner)
		admin.PUT("/product-owners/:id", s.updateOwner)
		admin.POST("/product-owners/:id/verify", s.verifyOwner)

		admin.GET("/vehicles", s.listVehicles)
		admin.POST("/vehicles", s.addVehicle)
		admin.GET("/vehicles/:id", s.getVehicle)
		admin.PUT("/vehicles/:id", s.updateVehicle)
		admin.POST("/vehicles/:id/verify", s.verifyVehicle)

		admin.GET("/notifications", s.listNotifications)
		admin.POST("/notifications", s.sendNotification)
	}

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", headerRequestID},
		ExposeHeaders:    []string{headerRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// fail logs err and renders the fixed message with a status derived from
// the error class.
func (s *Server) fail(c *gin.Context, operation, message string, err error) {
	msg := s.errs.Handle(operation, message, err)
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": msg})
}

func statusFor(err error) int {
	std := apperrors.Normalize(err)
	switch std.Code {
	case apperrors.ErrCodeValidationFailed, apperrors.ErrCodeInvalidState:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeIdentity:
		return http.StatusUnauthorized
	case apperrors.ErrCodeHTTPStatus:
		if status := apperrors.StatusCode(err); status == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	case apperrors.ErrCodeNetwork, apperrors.ErrCodeEnvelopeDecode:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
