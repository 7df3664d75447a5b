package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-scheduler/internal/domain/notification"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/httpresp"
)

type NotificationHandler struct {
	repo   notification.Repository
	logger *zap.Logger
}

func NewNotificationHandler(repo notification.Repository, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{repo: repo, logger: logger}
}

// List returns the caller's notifications, newest first. ?unread=true
// keeps only unread ones.
func (h *NotificationHandler) List(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}

	items, err := h.repo.ListForUser(c.Request.Context(), caller.UserID, c.Query("unread") == "true")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.List(c, items)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	found, err := h.repo.MarkRead(c.Request.Context(), caller.UserID, id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if !found {
		httperr.NotFound(c, "notification_not_found", "Notification not found.")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}

	n, err := h.repo.MarkAllRead(c.Request.Context(), caller.UserID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, gin.H{"updated": n})
}
