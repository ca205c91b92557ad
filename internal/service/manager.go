// internal/service/manager.go
package service

import (
	"context"

	"quickload-admin/internal/api"
	apphttp "quickload-admin/internal/common/http"
	"quickload-admin/internal/common/logger"
	"quickload-admin/internal/models"
)

type UserService interface {
	Get(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, form apphttp.MultipartBody) (models.User, error)
	Delete(ctx context.Context, id string) (string, error)
	Login(ctx context.Context, identityToken string) (models.LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (models.TokenPair, error)
}

type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (models.Product, error)
	ListByType(ctx context.Context, ownerID, productType string) ([]models.Product, error)
	ListOwners(ctx context.Context) ([]models.ProductOwner, error)
	ListOwnersByType(ctx context.Context, productType string) ([]models.ProductOwner, error)
	Add(ctx context.Context, form apphttp.MultipartBody) (models.Product, error)
	AddOwner(ctx context.Context, form apphttp.MultipartBody) (models.ProductOwner, error)
	Update(ctx context.Context, id string, form apphttp.MultipartBody) (models.Product, error)
	UpdateOwner(ctx context.Context, id string, form apphttp.MultipartBody) (models.ProductOwner, error)
}

type VehicleService interface {
	List(ctx context.Context) ([]models.Vehicle, error)
	Get(ctx context.Context, id string) (models.Vehicle, error)
	Add(ctx context.Context, form apphttp.MultipartBody) (models.Vehicle, error)
	Update(ctx context.Context, id string, form apphttp.MultipartBody) (models.Vehicle, error)
}

type NotificationService interface {
	List(ctx context.Context) ([]models.Notification, error)
	Send(ctx context.Context, req models.NotificationRequest) (models.Notification, error)
}

// Manager hands the resource services to the state layer. Every call goes
// straight through to the API module.
type Manager struct {
	users         UserService
	products      ProductService
	vehicles      VehicleService
	notifications NotificationService
	logger        logger.Logger
}

func New(client *api.Client, log logger.Logger) *Manager {
	return NewWithServices(client.Users, client.Products, client.Vehicles, client.Notifications, log)
}

// NewWithServices assembles a Manager from individual services, which lets
// tests substitute fakes.
func NewWithServices(users UserService, products ProductService, vehicles VehicleService, notifications NotificationService, log logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log.Debug("Service manager ready", map[string]interface{}{
		"users":         users != nil,
		"products":      products != nil,
		"vehicles":      vehicles != nil,
		"notifications": notifications != nil,
	})
	return &Manager{
		users:         users,
		products:      products,
		vehicles:      vehicles,
		notifications: notifications,
		logger:        log,
	}
}

func (m *Manager) Users() UserService                 { return m.users }
func (m *Manager) Products() ProductService           { return m.products }
func (m *Manager) Vehicles() VehicleService           { return m.vehicles }
func (m *Manager) Notifications() NotificationService { return m.notifications }
