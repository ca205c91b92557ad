// Package api wraps the marketplace backend's REST endpoints. Each call
// returns only the record or collection carried in the response envelope.
package api

import (
	"context"
	"net/url"

	apphttp "quickload-admin/internal/common/http"
	"quickload-admin/internal/common/logger"
)

// Requester is the transport the resource modules talk through.
// *apphttp.Client satisfies it.
type Requester interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
	Delete(ctx context.Context, path string) ([]byte, error)
	SendJSON(ctx context.Context, method, path string, payload interface{}) ([]byte, error)
	SendMultipart(ctx context.Context, method, path string, form apphttp.MultipartBody) ([]byte, error)
}

// Client groups the resource modules over a plain and an authenticated transport.
type Client struct {
	Users         *Users
	Products      *Products
	Vehicles      *Vehicles
	Notifications *Notifications
}

func New(plain, authenticated Requester, log logger.Logger) *Client {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Client{
		Users: &Users{
			plain:  plain,
			authed: authenticated,
			logger: log.WithFields(map[string]interface{}{"module": "users"}),
		},
		Products: &Products{
			authed: authenticated,
			logger: log.WithFields(map[string]interface{}{"module": "products"}),
		},
		Vehicles: &Vehicles{
			authed: authenticated,
			logger: log.WithFields(map[string]interface{}{"module": "vehicles"}),
		},
		Notifications: &Notifications{
			plain:  plain,
			authed: authenticated,
			logger: log.WithFields(map[string]interface{}{"module": "notifications"}),
		},
	}
}

func escape(id string) string {
	return url.PathEscape(id)
}
