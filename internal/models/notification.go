// internal/models/notification.go
package models

type Notification struct {
	ID        string `json:"_id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	UserID    string `json:"userId"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

// NotificationRequest is the payload for sending a notification to one user.
type NotificationRequest struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// AsMap returns the request as a field map for validation.
func (r NotificationRequest) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"type":    r.Type,
		"message": r.Message,
		"userId":  r.UserID,
	}
}
