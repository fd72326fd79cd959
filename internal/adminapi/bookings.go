package adminapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hotelworks/hotelops/internal/app"
	"github.com/hotelworks/hotelops/internal/billing"
	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/hotelworks/hotelops/internal/webserver"
	"github.com/hotelworks/hotelops/pkg/common"
	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func registerBookingRoutes() {
	webserver.ApiGET("/bookings", listBookings)
	webserver.ApiGET("/bookings/export", exportBookings)
	webserver.ApiGET("/bookings/:id", getBooking)
	webserver.ApiPOST("/bookings", createBooking)
	webserver.ApiPUT("/bookings/:id", updateBooking)
	webserver.ApiPOST("/bookings/:id/checkin", checkInBooking)
	webserver.ApiPOST("/bookings/:id/checkout", checkOutBooking)
	webserver.ApiPOST("/bookings/:id/cancel", cancelBooking)
}

type bookingPayload struct {
	GuestId  int64  `json:"guest_id,string" form:"guest_id"`
	RoomId   int64  `json:"room_id,string" form:"room_id"`
	CheckIn  string `json:"check_in" form:"check_in"`
	CheckOut string `json:"check_out" form:"check_out"`
	Remark   string `json:"remark" form:"remark"`
}

func listBookings(c echo.Context) error {
	page, pageSize := parsePagination(c)
	query := GetDB(c).Model(&domain.Booking{})

	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		query = query.Where("status = ?", status)
	}
	if ps := strings.TrimSpace(c.QueryParam("payment_status")); ps != "" {
		query = query.Where("payment_status = ?", ps)
	}
	if guestID := strings.TrimSpace(c.QueryParam("guest_id")); guestID != "" {
		query = query.Where("guest_id = ?", guestID)
	}
	if ref := strings.TrimSpace(c.QueryParam("reference")); ref != "" {
		query = query.Where("reference = ?", ref)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query bookings", err.Error())
	}

	var bookings []domain.Booking
	if err := query.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&bookings).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query bookings", err.Error())
	}
	return paged(c, bookings, total, page, pageSize)
}

func getBooking(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID", nil)
	}
	var booking domain.Booking
	if err := GetDB(c).Where("id = ?", id).First(&booking).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query booking", err.Error())
	}
	return ok(c, booking)
}

func createBooking(c echo.Context) error {
	var payload bookingPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse booking parameters", nil)
	}

	checkIn, err := billing.ParseDate(payload.CheckIn)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_CHECK_IN", "Unable to parse check-in date", nil)
	}
	checkOut, err := billing.ParseDate(payload.CheckOut)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_CHECK_OUT", "Unable to parse check-out date", nil)
	}
	if !checkOut.After(checkIn) {
		return fail(c, http.StatusBadRequest, "INVALID_DATES", "Check-out must be after check-in", nil)
	}

	db := GetDB(c)
	var guest domain.Guest
	if err := db.Where("id = ?", payload.GuestId).First(&guest).Error; err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_GUEST", "Guest does not exist", nil)
	}

	var room domain.Room
	if err := db.Where("id = ?", payload.RoomId).First(&room).Error; err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ROOM", "Room does not exist", nil)
	}
	if room.Status == domain.RoomMaintenance {
		return fail(c, http.StatusConflict, "ROOM_UNAVAILABLE", "Room is under maintenance", nil)
	}

	// Reject overlapping reservations on the same room.
	var overlapping int64
	db.Model(&domain.Booking{}).
		Where("room_id = ? AND status IN ? AND check_in < ? AND check_out > ?",
			payload.RoomId,
			[]string{domain.BookingReserved, domain.BookingCheckedIn},
			checkOut, checkIn).
		Count(&overlapping)
	if overlapping > 0 {
		return fail(c, http.StatusConflict, "ROOM_BOOKED", "Room is already booked for these dates", nil)
	}

	var rt domain.RoomType
	if err := db.Where("id = ?", room.RoomTypeId).First(&rt).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Room type lookup failed", err.Error())
	}

	nights := billing.Nights(checkIn, checkOut)
	total := float64(nights) * rt.BaseRate
	if err := billing.ValidateCharge(total, 0); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_CHARGE", err.Error(), nil)
	}

	booking := domain.Booking{
		ID:            common.UUIDint64(),
		GuestId:       payload.GuestId,
		RoomId:        payload.RoomId,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Nights:        nights,
		Status:        domain.BookingReserved,
		TotalAmount:   total,
		PaidAmount:    0,
		PaymentStatus: string(billing.ClassifyPayment(total, 0)),
		Reference:     billing.NewReference("BKG"),
		Remark:        payload.Remark,
	}
	if err := db.Create(&booking).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create booking", err.Error())
	}

	logOperation(c, "", "booking_create", "created booking "+booking.Reference)
	GetApp(c).Bus().Publish(app.TopicBookingCreated, booking.ID)
	return ok(c, booking)
}

// updateBooking adjusts dates or remark on a reservation that has not yet
// checked in. Date changes reprice the stay off the room's current base rate.
func updateBooking(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID", nil)
	}
	db := GetDB(c)

	var booking domain.Booking
	if err := db.Where("id = ?", id).First(&booking).Error; err != nil {
		return fail(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found", nil)
	}
	if booking.Status != domain.BookingReserved {
		return fail(c, http.StatusConflict, "NOT_EDITABLE", "Only reserved bookings can be edited", nil)
	}

	var payload bookingPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse booking parameters", nil)
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	checkIn, checkOut := booking.CheckIn, booking.CheckOut
	reprice := false

	if payload.CheckIn != "" {
		checkIn, err = billing.ParseDate(payload.CheckIn)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_CHECK_IN", "Unable to parse check-in date", nil)
		}
		updates["check_in"] = checkIn
		reprice = true
	}
	if payload.CheckOut != "" {
		checkOut, err = billing.ParseDate(payload.CheckOut)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_CHECK_OUT", "Unable to parse check-out date", nil)
		}
		updates["check_out"] = checkOut
		reprice = true
	}
	if reprice {
		if !checkOut.After(checkIn) {
			return fail(c, http.StatusBadRequest, "INVALID_DATES", "Check-out must be after check-in", nil)
		}
		var room domain.Room
		if err := db.Where("id = ?", booking.RoomId).First(&room).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Room lookup failed", err.Error())
		}
		var rt domain.RoomType
		if err := db.Where("id = ?", room.RoomTypeId).First(&rt).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Room type lookup failed", err.Error())
		}
		nights := billing.Nights(checkIn, checkOut)
		total := float64(nights) * rt.BaseRate
		updates["nights"] = nights
		updates["total_amount"] = total
		updates["payment_status"] = string(billing.ClassifyPayment(total, booking.PaidAmount))
	}
	if payload.Remark != "" {
		updates["remark"] = payload.Remark
	}

	if err := db.Model(&booking).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update booking", err.Error())
	}
	db.Where("id = ?", id).First(&booking)
	return ok(c, booking)
}

func checkInBooking(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID", nil)
	}
	db := GetDB(c)

	var booking domain.Booking
	if err := db.Where("id = ?", id).First(&booking).Error; err != nil {
		return fail(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found", nil)
	}
	if booking.Status != domain.BookingReserved {
		return fail(c, http.StatusConflict, "INVALID_STATE", "Booking is not in reserved state", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Booking{}).Where("id = ?", id).Updates(map[string]interface{}{
			"status":     domain.BookingCheckedIn,
			"updated_at": time.Now(),
		}).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Room{}).Where("id = ?", booking.RoomId).
			Update("status", domain.RoomOccupied).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CHECKIN_FAILED", "Failed to check in booking", err.Error())
	}

	logOperation(c, "", "booking_checkin", "checked in booking "+booking.Reference)
	db.Where("id = ?", id).First(&booking)
	return ok(c, booking)
}

func checkOutBooking(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID", nil)
	}
	db := GetDB(c)

	var booking domain.Booking
	if err := db.Where("id = ?", id).First(&booking).Error; err != nil {
		return fail(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found", nil)
	}
	if booking.Status != domain.BookingCheckedIn {
		return fail(c, http.StatusConflict, "INVALID_STATE", "Booking is not checked in", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Booking{}).Where("id = ?", id).Updates(map[string]interface{}{
			"status":     domain.BookingCheckedOut,
			"updated_at": time.Now(),
		}).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Room{}).Where("id = ?", booking.RoomId).
			Update("status", domain.RoomAvailable).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CHECKOUT_FAILED", "Failed to check out booking", err.Error())
	}

	logOperation(c, "", "booking_checkout", "checked out booking "+booking.Reference)
	db.Where("id = ?", id).First(&booking)
	return ok(c, booking)
}

func cancelBooking(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID", nil)
	}
	db := GetDB(c)

	var booking domain.Booking
	if err := db.Where("id = ?", id).First(&booking).Error; err != nil {
		return fail(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found", nil)
	}
	if booking.Status == domain.BookingCheckedOut || booking.Status == domain.BookingCancelled {
		return fail(c, http.StatusConflict, "INVALID_STATE", "Booking is already closed", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Booking{}).Where("id = ?", id).Updates(map[string]interface{}{
			"status":     domain.BookingCancelled,
			"updated_at": time.Now(),
		}).Error; err != nil {
			return err
		}
		if booking.Status == domain.BookingCheckedIn {
			return tx.Model(&domain.Room{}).Where("id = ?", booking.RoomId).
				Update("status", domain.RoomAvailable).Error
		}
		return nil
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CANCEL_FAILED", "Failed to cancel booking", err.Error())
	}

	logOperation(c, "", "booking_cancel", "cancelled booking "+booking.Reference)
	db.Where("id = ?", id).First(&booking)
	return ok(c, booking)
}

// exportBookings writes the filtered booking ledger as an XLSX workbook.
func exportBookings(c echo.Context) error {
	db := GetDB(c)
	query := db.Model(&domain.Booking{})
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []domain.Booking
	if err := query.Order("id DESC").Limit(10000).Find(&bookings).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query bookings", err.Error())
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Bookings"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Reference", "Guest", "Room", "Check-in", "Check-out", "Nights",
		"Status", "Total", "Paid", "Balance", "Payment Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, b := range bookings {
		var guest domain.Guest
		db.Where("id = ?", b.GuestId).First(&guest)
		var room domain.Room
		db.Where("id = ?", b.RoomId).First(&room)

		values := []interface{}{
			b.Reference, guest.Name, room.Number,
			common.FmtDate(b.CheckIn), common.FmtDate(b.CheckOut), b.Nights,
			b.Status, b.TotalAmount, b.PaidAmount,
			billing.Balance(b.TotalAmount, b.PaidAmount), b.PaymentStatus,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}
