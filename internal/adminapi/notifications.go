package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/hotelworks/hotelops/internal/notify"
	"github.com/hotelworks/hotelops/internal/webserver"
	"github.com/labstack/echo/v4"
)

func registerNotificationRoutes() {
	webserver.ApiGET("/system/notifications", listNotifications)
	webserver.ApiGET("/system/notifications/:id/logs", notificationLogs)
	webserver.ApiPOST("/system/notifications/:id/retry", retryNotification)
}

func listNotifications(c echo.Context) error {
	page, pageSize := parsePagination(c)
	repo := notify.NewGormNotificationRepository(GetDB(c))

	filter := make(map[string]interface{})
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		filter["status"] = status
	}
	if st := strings.TrimSpace(c.QueryParam("source_type")); st != "" {
		filter["source_type"] = st
	}

	notifications, total, err := repo.List(c.Request().Context(), filter, page, pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query notifications", err.Error())
	}
	return paged(c, notifications, total, page, pageSize)
}

func notificationLogs(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID", nil)
	}

	logRepo := notify.NewGormNotificationLogRepository(GetDB(c))
	logs, err := logRepo.GetByNotificationID(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query delivery logs", err.Error())
	}
	return ok(c, logs)
}

// retryNotification resets a failed outbox row so the dispatcher picks it up
// again with a clean retry budget.
func retryNotification(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID", nil)
	}

	var n domain.Notification
	if err := GetDB(c).Where("id = ?", id).First(&n).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Notification not found", nil)
	}
	if n.Status != domain.NotifyFailed {
		return fail(c, http.StatusConflict, "INVALID_STATE", "Only failed notifications can be retried", nil)
	}

	if err := GetDB(c).Model(&n).Updates(map[string]interface{}{
		"status":      domain.NotifyPending,
		"error_msg":   "",
		"retry_count": 0,
		"updated_at":  time.Now(),
	}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to reset notification", err.Error())
	}

	return okMessage(c, "notification queued for redelivery")
}
