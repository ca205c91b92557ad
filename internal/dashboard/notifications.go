package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "quickload-admin/internal/common/errors"
	"quickload-admin/internal/models"
	"quickload-admin/internal/state"
)

// sendNotification posts one notification and answers with the refreshed list.
func (s *Server) sendNotification(c *gin.Context) {
	ctx := c.Request.Context()
	var req models.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, "notifications.send", "Invalid notification", apperrors.NewValidationError(err.Error()))
		return
	}

	send := state.SendNotification(s.svc, s.deps)
	sent, err := send.Run(ctx, req)
	if err != nil {
		s.fail(c, "notifications.send", send.State().Error, err)
		return
	}

	list := state.Notifications(s.svc, s.deps).Refetch(ctx)
	resp := gin.H{"notification": sent, "notifications": list.Data}
	if list.Error != "" {
		resp["error"] = list.Error
	}
	c.JSON(http.StatusCreated, resp)
}
