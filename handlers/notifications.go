package handlers

import (
	"net/http"

	"github.com/aaauuugggghhhh/unihub-event-management/models"
	"github.com/aaauuugggghhhh/unihub-event-management/pkg/notify"
	"github.com/aaauuugggghhhh/unihub-event-management/repository"
	"github.com/aaauuugggghhhh/unihub-event-management/types"

	"github.com/gin-gonic/gin"
)

type NotificationsHandler struct {
	repo     *repository.NotificationsRepository
	notifier notify.Notifier
}

func NewNotificationsHandler(repo *repository.NotificationsRepository, notifier notify.Notifier) *NotificationsHandler {
	return &NotificationsHandler{repo: repo, notifier: notifier}
}

// List returns the caller's notifications, newest first, with the derived
// unread count.
func (h *NotificationsHandler) List(c *gin.Context) {
	userID := c.GetString("userId")
	notifications, err := h.repo.ListForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	unread := 0
	for i := range notifications {
		if !notifications[i].IsRead {
			unread++
		}
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{
		"notifications": notifications,
		"unreadCount":   unread,
	}))
}

// MarkRead flips one notification to read and pushes the update to the
// caller's live feed sessions.
func (h *NotificationsHandler) MarkRead(c *gin.Context) {
	userID := c.GetString("userId")
	n, err := h.repo.MarkRead(c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if n == nil {
		respondError(c, types.ErrNotificationNotFound)
		return
	}
	if h.notifier != nil {
		h.notifier.NotifyUser(userID, notify.UpdateEvent(n))
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(n))
}

// MarkAllRead flips every unread notification of the caller and pushes one
// update per changed row, in write order.
func (h *NotificationsHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetString("userId")
	updated, err := h.repo.MarkAllRead(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if h.notifier != nil {
		for i := range updated {
			h.notifier.NotifyUser(userID, notify.UpdateEvent(&updated[i]))
		}
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"updated": len(updated)}))
}

// Delete removes a notification owned by the caller and pushes the deletion
// to live feed sessions.
func (h *NotificationsHandler) Delete(c *gin.Context) {
	userID := c.GetString("userId")
	id := c.Param("id")
	ok, err := h.repo.Delete(id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if !ok {
		respondError(c, types.ErrNotificationNotFound)
		return
	}
	if h.notifier != nil {
		h.notifier.NotifyUser(userID, notify.DeleteEvent(id))
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"message": "Notification deleted"}))
}
