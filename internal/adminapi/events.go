package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hotelworks/hotelops/internal/billing"
	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/hotelworks/hotelops/internal/webserver"
	"github.com/hotelworks/hotelops/pkg/common"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func registerEventRoutes() {
	webserver.ApiGET("/events/halls", listEventHalls)
	webserver.ApiPOST("/events/halls", createEventHall)
	webserver.ApiPUT("/events/halls/:id", updateEventHall)
	webserver.ApiDELETE("/events/halls/:id", deleteEventHall)

	webserver.ApiGET("/events/bookings", listEventBookings)
	webserver.ApiGET("/events/bookings/:id", getEventBooking)
	webserver.ApiPOST("/events/bookings", createEventBooking)
	webserver.ApiPUT("/events/bookings/:id/status", updateEventBookingStatus)
}

type eventHallPayload struct {
	Name       string  `json:"name" form:"name"`
	Capacity   int     `json:"capacity" form:"capacity"`
	HourlyRate float64 `json:"hourly_rate" form:"hourly_rate"`
	DailyRate  float64 `json:"daily_rate" form:"daily_rate"`
	Status     string  `json:"status" form:"status"`
	Remark     string  `json:"remark" form:"remark"`
}

func listEventHalls(c echo.Context) error {
	var halls []domain.EventHall
	if err := GetDB(c).Order("name ASC").Find(&halls).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query halls", err.Error())
	}
	return ok(c, halls)
}

func createEventHall(c echo.Context) error {
	var payload eventHallPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse hall parameters", nil)
	}
	if strings.TrimSpace(payload.Name) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Hall name is required", nil)
	}
	if payload.HourlyRate < 0 || payload.DailyRate < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_RATE", "Rates cannot be negative", nil)
	}

	var count int64
	GetDB(c).Model(&domain.EventHall{}).Where("name = ?", payload.Name).Count(&count)
	if count > 0 {
		return fail(c, http.StatusConflict, "NAME_EXISTS", "Hall name already exists", nil)
	}

	status := payload.Status
	if status == "" {
		status = common.ENABLED
	}

	hall := domain.EventHall{
		ID:         common.UUIDint64(),
		Name:       strings.TrimSpace(payload.Name),
		Capacity:   payload.Capacity,
		HourlyRate: payload.HourlyRate,
		DailyRate:  payload.DailyRate,
		Status:     status,
		Remark:     payload.Remark,
	}
	if err := GetDB(c).Create(&hall).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create hall", err.Error())
	}
	return ok(c, hall)
}

func updateEventHall(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid hall ID", nil)
	}
	var hall domain.EventHall
	if err := GetDB(c).Where("id = ?", id).First(&hall).Error; err != nil {
		return fail(c, http.StatusNotFound, "HALL_NOT_FOUND", "Hall not found", nil)
	}

	var payload eventHallPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse hall parameters", nil)
	}
	if payload.HourlyRate < 0 || payload.DailyRate < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_RATE", "Rates cannot be negative", nil)
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if strings.TrimSpace(payload.Name) != "" {
		updates["name"] = strings.TrimSpace(payload.Name)
	}
	if payload.Capacity > 0 {
		updates["capacity"] = payload.Capacity
	}
	if payload.HourlyRate > 0 {
		updates["hourly_rate"] = payload.HourlyRate
	}
	if payload.DailyRate > 0 {
		updates["daily_rate"] = payload.DailyRate
	}
	if payload.Status != "" {
		updates["status"] = payload.Status
	}
	if payload.Remark != "" {
		updates["remark"] = payload.Remark
	}

	if err := GetDB(c).Model(&hall).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update hall", err.Error())
	}
	GetDB(c).Where("id = ?", id).First(&hall)
	return ok(c, hall)
}

func deleteEventHall(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid hall ID", nil)
	}

	var upcoming int64
	GetDB(c).Model(&domain.EventBooking{}).
		Where("hall_id = ? AND status IN ?", id, []string{domain.EventScheduled, domain.EventOngoing}).
		Count(&upcoming)
	if upcoming > 0 {
		return fail(c, http.StatusConflict, "HALL_IN_USE", "Hall has scheduled events", nil)
	}

	if err := GetDB(c).Where("id = ?", id).Delete(&domain.EventHall{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete hall", err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

type eventBookingPayload struct {
	HallId     int64  `json:"hall_id,string" form:"hall_id"`
	GuestId    int64  `json:"guest_id,string" form:"guest_id"`
	Title      string `json:"title" form:"title"`
	StartAt    string `json:"start_at" form:"start_at"`
	EndAt      string `json:"end_at" form:"end_at"`
	ChargeType string `json:"charge_type" form:"charge_type"`
	Remark     string `json:"remark" form:"remark"`
}

func listEventBookings(c echo.Context) error {
	page, pageSize := parsePagination(c)
	query := GetDB(c).Model(&domain.EventBooking{})

	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		query = query.Where("status = ?", status)
	}
	if hallID := strings.TrimSpace(c.QueryParam("hall_id")); hallID != "" {
		query = query.Where("hall_id = ?", hallID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query event bookings", err.Error())
	}

	var bookings []domain.EventBooking
	if err := query.Order("start_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&bookings).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query event bookings", err.Error())
	}
	return paged(c, bookings, total, page, pageSize)
}

func getEventBooking(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid event booking ID", nil)
	}
	var booking domain.EventBooking
	if err := GetDB(c).Where("id = ?", id).First(&booking).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "EVENT_NOT_FOUND", "Event booking not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query event booking", err.Error())
	}
	return ok(c, booking)
}

func createEventBooking(c echo.Context) error {
	var payload eventBookingPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse event parameters", nil)
	}
	if strings.TrimSpace(payload.Title) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_TITLE", "Event title is required", nil)
	}
	if payload.ChargeType != domain.ChargeHourly && payload.ChargeType != domain.ChargeDaily {
		return fail(c, http.StatusBadRequest, "INVALID_CHARGE_TYPE", "Charge type must be hourly or daily", nil)
	}

	startAt, err := billing.ParseDate(payload.StartAt)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_START", "Unable to parse start time", nil)
	}
	endAt, err := billing.ParseDate(payload.EndAt)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_END", "Unable to parse end time", nil)
	}
	if !endAt.After(startAt) {
		return fail(c, http.StatusBadRequest, "INVALID_TIMES", "End time must be after start time", nil)
	}

	db := GetDB(c)
	var hall domain.EventHall
	if err := db.Where("id = ?", payload.HallId).First(&hall).Error; err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_HALL", "Hall does not exist", nil)
	}
	if !strings.EqualFold(hall.Status, common.ENABLED) {
		return fail(c, http.StatusConflict, "HALL_DISABLED", "Hall is not available", nil)
	}
	var guest domain.Guest
	if err := db.Where("id = ?", payload.GuestId).First(&guest).Error; err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_GUEST", "Guest does not exist", nil)
	}

	var overlapping int64
	db.Model(&domain.EventBooking{}).
		Where("hall_id = ? AND status IN ? AND start_at < ? AND end_at > ?",
			payload.HallId,
			[]string{domain.EventScheduled, domain.EventOngoing},
			endAt, startAt).
		Count(&overlapping)
	if overlapping > 0 {
		return fail(c, http.StatusConflict, "HALL_BOOKED", "Hall is already booked for this window", nil)
	}

	total := billing.EventEstimate(startAt, endAt, payload.ChargeType, hall.HourlyRate, hall.DailyRate)
	if err := billing.ValidateCharge(total, 0); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_CHARGE", err.Error(), nil)
	}

	booking := domain.EventBooking{
		ID:            common.UUIDint64(),
		HallId:        payload.HallId,
		GuestId:       payload.GuestId,
		Title:         strings.TrimSpace(payload.Title),
		StartAt:       startAt,
		EndAt:         endAt,
		ChargeType:    payload.ChargeType,
		Status:        domain.EventScheduled,
		TotalAmount:   total,
		PaidAmount:    0,
		PaymentStatus: string(billing.ClassifyPayment(total, 0)),
		Reference:     billing.NewReference("EVT"),
		Remark:        payload.Remark,
	}
	if err := db.Create(&booking).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create event booking", err.Error())
	}

	logOperation(c, "", "event_create", "created event booking "+booking.Reference)
	return ok(c, booking)
}

var eventTransitions = map[string][]string{
	domain.EventScheduled: {domain.EventOngoing, domain.EventCancelled},
	domain.EventOngoing:   {domain.EventCompleted},
}

func updateEventBookingStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid event booking ID", nil)
	}

	var payload struct {
		Status string `json:"status" form:"status"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status parameters", nil)
	}

	var booking domain.EventBooking
	if err := GetDB(c).Where("id = ?", id).First(&booking).Error; err != nil {
		return fail(c, http.StatusNotFound, "EVENT_NOT_FOUND", "Event booking not found", nil)
	}

	allowed := false
	for _, next := range eventTransitions[booking.Status] {
		if next == payload.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		return fail(c, http.StatusConflict, "INVALID_TRANSITION",
			"Cannot move event from "+booking.Status+" to "+payload.Status, nil)
	}

	if err := GetDB(c).Model(&booking).Updates(map[string]interface{}{
		"status":     payload.Status,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update event status", err.Error())
	}

	booking.Status = payload.Status
	return ok(c, booking)
}
