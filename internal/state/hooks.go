package state

import (
	"context"
	"strings"

	"quickload-admin/internal/common/errors"
	apphttp "quickload-admin/internal/common/http"
	"quickload-admin/internal/common/validation"
	"quickload-admin/internal/models"
	"quickload-admin/internal/service"
)

// Update is the input of every update mutation.
type Update struct {
	ID   string
	Form apphttp.MultipartBody
}

// ==========================
// Products & Owners
// ==========================

func Products(svc *service.Manager, deps Deps) *Resource[[]models.Product] {
	return NewResource("products", "Failed to fetch products", svc.Products().List, deps)
}

func ProductByID(svc *service.Manager, id string, deps Deps) *Resource[models.Product] {
	return NewKeyedResource("product", "Failed to fetch product", id, svc.Products().Get, deps)
}

// ProductsByOwnerAndType keys on "owner|type".
func ProductsByOwnerAndType(svc *service.Manager, ownerID, productType string, deps Deps) *Resource[[]models.Product] {
	return NewKeyedResource("productsByOwnerAndType", "Failed to fetch products", OwnerTypeKey(ownerID, productType),
		func(ctx context.Context, key string) ([]models.Product, error) {
			owner, pt := splitOwnerTypeKey(key)
			return svc.Products().ListByType(ctx, owner, pt)
		}, deps)
}

// ProductsByUserID fetches every product and keeps the ones whose
// productOwner is userID.
func ProductsByUserID(svc *service.Manager, userID string, deps Deps) *Resource[[]models.Product] {
	return NewKeyedResource("productsByUser", "Failed to fetch products", userID,
		func(ctx context.Context, key string) ([]models.Product, error) {
			all, err := svc.Products().List(ctx)
			if err != nil {
				return nil, err
			}
			owned := make([]models.Product, 0, len(all))
			for _, p := range all {
				if p.ProductOwner == key {
					owned = append(owned, p)
				}
			}
			return owned, nil
		}, deps)
}

func ProductOwners(svc *service.Manager, deps Deps) *Resource[[]models.ProductOwner] {
	return NewResource("productOwners", "Failed to fetch product owners", svc.Products().ListOwners, deps)
}

func ProductOwnersByType(svc *service.Manager, productType string, deps Deps) *Resource[[]models.ProductOwner] {
	return NewKeyedResource("productOwnersByType", "Failed to fetch product owners", productType, svc.Products().ListOwnersByType, deps)
}

func AddProduct(svc *service.Manager, deps Deps) *Mutation[apphttp.MultipartBody, models.Product] {
	return NewMutation("addProduct", "Failed to add product", svc.Products().Add, deps)
}

func AddProductOwner(svc *service.Manager, deps Deps) *Mutation[apphttp.MultipartBody, models.ProductOwner] {
	return NewMutation("addProductOwner", "Failed to add product owner", svc.Products().AddOwner, deps)
}

func UpdateProduct(svc *service.Manager, deps Deps) *Mutation[Update, models.Product] {
	return NewMutation("updateProduct", "Failed to update product", func(ctx context.Context, in Update) (models.Product, error) {
		return svc.Products().Update(ctx, in.ID, in.Form)
	}, deps)
}

func UpdateProductOwner(svc *service.Manager, deps Deps) *Mutation[Update, models.ProductOwner] {
	return NewMutation("updateProductOwner", "Failed to update product owner", func(ctx context.Context, in Update) (models.ProductOwner, error) {
		return svc.Products().UpdateOwner(ctx, in.ID, in.Form)
	}, deps)
}

// ==========================
// Users
// ==========================

func Users(svc *service.Manager, deps Deps) *Resource[[]models.User] {
	return NewResource("users", "Failed to fetch users", svc.Users().List, deps)
}

func UserByID(svc *service.Manager, id string, deps Deps) *Resource[models.User] {
	return NewKeyedResource("user", "Failed to fetch user info", id, svc.Users().Get, deps)
}

func UpdateUser(svc *service.Manager, deps Deps) *Mutation[Update, models.User] {
	return NewMutation("updateUser", "Failed to update profile", func(ctx context.Context, in Update) (models.User, error) {
		return svc.Users().Update(ctx, in.ID, in.Form)
	}, deps)
}

func DeleteUser(svc *service.Manager, deps Deps) *Mutation[string, string] {
	return NewMutation("deleteUser", "Failed to delete account", svc.Users().Delete, deps)
}

func Login(svc *service.Manager, deps Deps) *Mutation[string, models.LoginResult] {
	return NewMutation("login", "Failed to login", svc.Users().Login, deps)
}

func RefreshToken(svc *service.Manager, deps Deps) *Mutation[string, models.TokenPair] {
	return NewMutation("refreshToken", "Failed to refresh token", svc.Users().RefreshToken, deps)
}

// ==========================
// Vehicles
// ==========================

func Vehicles(svc *service.Manager, deps Deps) *Resource[[]models.Vehicle] {
	return NewResource("vehicles", "Failed to fetch vehicles", svc.Vehicles().List, deps)
}

func VehicleByID(svc *service.Manager, id string, deps Deps) *Resource[models.Vehicle] {
	return NewKeyedResource("vehicle", "Failed to fetch vehicle", id, svc.Vehicles().Get, deps)
}

func AddVehicle(svc *service.Manager, deps Deps) *Mutation[apphttp.MultipartBody, models.Vehicle] {
	return NewMutation("addVehicle", "Failed to add vehicle", svc.Vehicles().Add, deps)
}

func UpdateVehicle(svc *service.Manager, deps Deps) *Mutation[Update, models.Vehicle] {
	return NewMutation("updateVehicle", "Failed to update vehicle", func(ctx context.Context, in Update) (models.Vehicle, error) {
		return svc.Vehicles().Update(ctx, in.ID, in.Form)
	}, deps)
}

// ==========================
// Notifications
// ==========================

func Notifications(svc *service.Manager, deps Deps) *Resource[[]models.Notification] {
	return NewResource("notifications", "Failed to fetch notifications", svc.Notifications().List, deps)
}

// SendNotification rejects incomplete requests before they reach the backend.
func SendNotification(svc *service.Manager, deps Deps) *Mutation[models.NotificationRequest, models.Notification] {
	return NewMutation("sendNotification", "Failed to send notification", func(ctx context.Context, req models.NotificationRequest) (models.Notification, error) {
		if res := validation.ValidateInput(req.AsMap(), validation.NotificationRequestSchema); !res.Valid {
			return models.Notification{}, errors.NewValidationError(res.Summary())
		}
		return svc.Notifications().Send(ctx, req)
	}, deps)
}

// OwnerTypeKey joins an owner id and product type into one resource key.
// Both halves must be set for the key to be non-empty.
func OwnerTypeKey(ownerID, productType string) string {
	if ownerID == "" || productType == "" {
		return ""
	}
	return ownerID + "|" + productType
}

func splitOwnerTypeKey(key string) (string, string) {
	owner, productType, _ := strings.Cut(key, "|")
	return owner, productType
}
