package adminapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/hotelworks/hotelops/internal/webserver"
	"github.com/hotelworks/hotelops/pkg/common"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func registerGuestRoutes() {
	webserver.ApiGET("/guests", listGuests)
	webserver.ApiGET("/guests/export", exportGuests)
	webserver.ApiGET("/guests/:id", getGuest)
	webserver.ApiPOST("/guests", createGuest)
	webserver.ApiPUT("/guests/:id", updateGuest)
	webserver.ApiDELETE("/guests/:id", deleteGuest)
}

type guestPayload struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Mobile   string `json:"mobile" form:"mobile"`
	IdNumber string `json:"id_number" form:"id_number"`
	Address  string `json:"address" form:"address"`
	City     string `json:"city" form:"city"`
	Country  string `json:"country" form:"country"`
	Remark   string `json:"remark" form:"remark"`
}

func listGuests(c echo.Context) error {
	page, pageSize := parsePagination(c)
	db := GetDB(c)
	query := db.Model(&domain.Guest{})

	if keyword := strings.TrimSpace(c.QueryParam("keyword")); keyword != "" {
		like := "%" + strings.ToLower(keyword) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR mobile LIKE ?",
			like, like, "%"+keyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query guests", err.Error())
	}

	var guests []domain.Guest
	if err := query.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&guests).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query guests", err.Error())
	}
	return paged(c, guests, total, page, pageSize)
}

func getGuest(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid guest ID", nil)
	}
	var guest domain.Guest
	if err := GetDB(c).Where("id = ?", id).First(&guest).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "GUEST_NOT_FOUND", "Guest not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query guest", err.Error())
	}
	return ok(c, guest)
}

func createGuest(c echo.Context) error {
	var payload guestPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse guest parameters", nil)
	}
	if strings.TrimSpace(payload.Name) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Guest name is required", nil)
	}

	if payload.Mobile != "" {
		var dup domain.Guest
		if err := GetDB(c).Where("mobile = ?", payload.Mobile).First(&dup).Error; err == nil {
			return fail(c, http.StatusConflict, "DUPLICATE_GUEST", "Guest with this mobile already exists", nil)
		}
	}

	guest := domain.Guest{
		ID:       common.UUIDint64(),
		Name:     strings.TrimSpace(payload.Name),
		Email:    payload.Email,
		Mobile:   payload.Mobile,
		IdNumber: payload.IdNumber,
		Address:  payload.Address,
		City:     payload.City,
		Country:  payload.Country,
		Remark:   payload.Remark,
	}
	if err := GetDB(c).Create(&guest).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create guest", err.Error())
	}
	logOperation(c, "", "guest_create", "created guest "+guest.Name)
	return ok(c, guest)
}

func updateGuest(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid guest ID", nil)
	}
	var guest domain.Guest
	if err := GetDB(c).Where("id = ?", id).First(&guest).Error; err != nil {
		return fail(c, http.StatusNotFound, "GUEST_NOT_FOUND", "Guest not found", nil)
	}

	var payload guestPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse guest parameters", nil)
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if strings.TrimSpace(payload.Name) != "" {
		updates["name"] = strings.TrimSpace(payload.Name)
	}
	if payload.Email != "" {
		updates["email"] = payload.Email
	}
	if payload.Mobile != "" && payload.Mobile != guest.Mobile {
		var count int64
		GetDB(c).Model(&domain.Guest{}).Where("mobile = ? AND id != ?", payload.Mobile, id).Count(&count)
		if count > 0 {
			return fail(c, http.StatusConflict, "DUPLICATE_GUEST", "Guest with this mobile already exists", nil)
		}
		updates["mobile"] = payload.Mobile
	}
	if payload.IdNumber != "" {
		updates["id_number"] = payload.IdNumber
	}
	if payload.Address != "" {
		updates["address"] = payload.Address
	}
	if payload.City != "" {
		updates["city"] = payload.City
	}
	if payload.Country != "" {
		updates["country"] = payload.Country
	}
	if payload.Remark != "" {
		updates["remark"] = payload.Remark
	}

	if err := GetDB(c).Model(&guest).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update guest", err.Error())
	}
	GetDB(c).Where("id = ?", id).First(&guest)
	return ok(c, guest)
}

func deleteGuest(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid guest ID", nil)
	}

	var active int64
	GetDB(c).Model(&domain.Booking{}).
		Where("guest_id = ? AND status IN ?", id, []string{domain.BookingReserved, domain.BookingCheckedIn}).
		Count(&active)
	if active > 0 {
		return fail(c, http.StatusConflict, "GUEST_IN_USE", "Guest has active bookings", nil)
	}

	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Guest{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete guest", err.Error())
	}
	logOperation(c, "", "guest_delete", "deleted guest")
	return c.NoContent(http.StatusNoContent)
}

type guestCsvRow struct {
	Name     string `csv:"name"`
	Email    string `csv:"email"`
	Mobile   string `csv:"mobile"`
	IdNumber string `csv:"id_number"`
	Address  string `csv:"address"`
	City     string `csv:"city"`
	Country  string `csv:"country"`
	Created  string `csv:"created_at"`
}

// exportGuests streams the full guest register as CSV.
func exportGuests(c echo.Context) error {
	var guests []domain.Guest
	if err := GetDB(c).Order("name ASC").Find(&guests).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query guests", err.Error())
	}

	rows := make([]guestCsvRow, 0, len(guests))
	for _, g := range guests {
		rows = append(rows, guestCsvRow{
			Name:     g.Name,
			Email:    g.Email,
			Mobile:   g.Mobile,
			IdNumber: g.IdNumber,
			Address:  g.Address,
			City:     g.City,
			Country:  g.Country,
			Created:  common.FmtDate(g.CreatedAt),
		})
	}

	filename := fmt.Sprintf("guests-%s.csv", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().WriteHeader(http.StatusOK)
	return gocsv.Marshal(&rows, c.Response())
}
