package api

import (
	"context"
	"net/http"

	"quickload-admin/internal/common/logger"
	"quickload-admin/internal/models"
)

type Notifications struct {
	plain  Requester
	authed Requester
	logger logger.Logger
}

func (n *Notifications) List(ctx context.Context) ([]models.Notification, error) {
	raw, err := n.authed.Get(ctx, "/notifications/get", nil)
	if err != nil {
		return nil, err
	}
	return unwrap[[]models.Notification](raw, listEnvelope(keyNotifications), keyNotifications)
}

// Send posts a notification. The backend accepts this route without credentials.
func (n *Notifications) Send(ctx context.Context, req models.NotificationRequest) (models.Notification, error) {
	raw, err := n.plain.SendJSON(ctx, http.MethodPost, "/notifications/send", req)
	if err != nil {
		return models.Notification{}, err
	}
	sent, err := unwrap[models.Notification](raw, recordEnvelope(keyNotification), keyNotification)
	if err == nil {
		n.logger.Info("notification sent", map[string]interface{}{"userId": req.UserID, "type": req.Type})
	}
	return sent, err
}
