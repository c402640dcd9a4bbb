package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/logging"
	"github.com/taskflow-dev/taskflow/internal/stores"
	"github.com/taskflow-dev/taskflow/internal/types"
	"github.com/taskflow-dev/taskflow/internal/utils"
)

func ListNotifications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	unreadOnly := ctx.Query("unread") == "true"

	notifications, err := stores.ListNotifications(db.DB, userID, unreadOnly)

	if err != nil {
		logging.Logger.WithError(err).Error("failed to list notifications")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	response := make([]types.NotificationResponse, 0, len(notifications))

	for _, notification := range notifications {
		response = append(response, types.NotificationResponse{
			ID:        notification.ID,
			Content:   notification.Content,
			Link:      notification.Link,
			Read:      notification.Read,
			CreatedAt: notification.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func UnreadNotificationCount(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	count, err := stores.CountUnreadNotifications(db.DB, userID)

	if err != nil {
		logging.Logger.WithError(err).Error("failed to count notifications")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"unread": count})
}

func MarkNotificationRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notificationID, err := utils.ParamID(ctx, "notification_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := stores.MarkNotificationRead(db.DB, userID, notificationID); err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func MarkAllNotificationsRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := stores.MarkAllNotificationsRead(db.DB, userID); err != nil {
		logging.Logger.WithError(err).Error("failed to mark notifications read")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
