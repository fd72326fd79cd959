package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/hotelworks/hotelops/internal/webserver"
	"github.com/hotelworks/hotelops/pkg/common"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func registerRoomRoutes() {
	webserver.ApiGET("/rooms/types", listRoomTypes)
	webserver.ApiPOST("/rooms/types", createRoomType)
	webserver.ApiPUT("/rooms/types/:id", updateRoomType)
	webserver.ApiDELETE("/rooms/types/:id", deleteRoomType)

	webserver.ApiGET("/rooms", listRooms)
	webserver.ApiGET("/rooms/:id", getRoom)
	webserver.ApiPOST("/rooms", createRoom)
	webserver.ApiPUT("/rooms/:id", updateRoom)
	webserver.ApiDELETE("/rooms/:id", deleteRoom)
}

type roomTypePayload struct {
	Name     string  `json:"name" form:"name"`
	BaseRate float64 `json:"base_rate" form:"base_rate"`
	Capacity int     `json:"capacity" form:"capacity"`
	Remark   string  `json:"remark" form:"remark"`
}

func listRoomTypes(c echo.Context) error {
	var types []domain.RoomType
	if err := GetDB(c).Order("name ASC").Find(&types).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query room types", err.Error())
	}
	return ok(c, types)
}

func createRoomType(c echo.Context) error {
	var payload roomTypePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse room type parameters", nil)
	}
	if strings.TrimSpace(payload.Name) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Room type name is required", nil)
	}
	if payload.BaseRate < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_RATE", "Base rate cannot be negative", nil)
	}

	var count int64
	GetDB(c).Model(&domain.RoomType{}).Where("name = ?", payload.Name).Count(&count)
	if count > 0 {
		return fail(c, http.StatusConflict, "NAME_EXISTS", "Room type name already exists", nil)
	}

	rt := domain.RoomType{
		ID:       common.UUIDint64(),
		Name:     strings.TrimSpace(payload.Name),
		BaseRate: payload.BaseRate,
		Capacity: payload.Capacity,
		Remark:   payload.Remark,
	}
	if err := GetDB(c).Create(&rt).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create room type", err.Error())
	}
	logOperation(c, "", "room_type_create", "created room type "+rt.Name)
	return ok(c, rt)
}

func updateRoomType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid room type ID", nil)
	}
	var rt domain.RoomType
	if err := GetDB(c).Where("id = ?", id).First(&rt).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Room type not found", nil)
	}

	var payload roomTypePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse room type parameters", nil)
	}
	if payload.BaseRate < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_RATE", "Base rate cannot be negative", nil)
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if strings.TrimSpace(payload.Name) != "" {
		updates["name"] = strings.TrimSpace(payload.Name)
	}
	if payload.BaseRate > 0 {
		updates["base_rate"] = payload.BaseRate
	}
	if payload.Capacity > 0 {
		updates["capacity"] = payload.Capacity
	}
	if payload.Remark != "" {
		updates["remark"] = payload.Remark
	}
	if err := GetDB(c).Model(&rt).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update room type", err.Error())
	}
	GetDB(c).Where("id = ?", id).First(&rt)
	return ok(c, rt)
}

func deleteRoomType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid room type ID", nil)
	}

	var inUse int64
	GetDB(c).Model(&domain.Room{}).Where("room_type_id = ?", id).Count(&inUse)
	if inUse > 0 {
		return fail(c, http.StatusConflict, "TYPE_IN_USE", "Room type is assigned to existing rooms", nil)
	}

	if err := GetDB(c).Where("id = ?", id).Delete(&domain.RoomType{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete room type", err.Error())
	}
	logOperation(c, "", "room_type_delete", "deleted room type")
	return c.NoContent(http.StatusNoContent)
}

type roomPayload struct {
	RoomTypeId int64  `json:"room_type_id,string" form:"room_type_id"`
	Number     string `json:"number" form:"number"`
	Floor      int    `json:"floor" form:"floor"`
	Status     string `json:"status" form:"status"`
	Remark     string `json:"remark" form:"remark"`
}

func listRooms(c echo.Context) error {
	page, pageSize := parsePagination(c)
	query := GetDB(c).Model(&domain.Room{})

	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		query = query.Where("status = ?", status)
	}
	if floor := strings.TrimSpace(c.QueryParam("floor")); floor != "" {
		query = query.Where("floor = ?", floor)
	}
	if number := strings.TrimSpace(c.QueryParam("number")); number != "" {
		query = query.Where("number = ?", number)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query rooms", err.Error())
	}

	var rooms []domain.Room
	if err := query.Order("number ASC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rooms).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query rooms", err.Error())
	}
	return paged(c, rooms, total, page, pageSize)
}

func getRoom(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID", nil)
	}
	var room domain.Room
	if err := GetDB(c).Where("id = ?", id).First(&room).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query room", err.Error())
	}
	return ok(c, room)
}

func createRoom(c echo.Context) error {
	var payload roomPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse room parameters", nil)
	}
	if strings.TrimSpace(payload.Number) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_NUMBER", "Room number is required", nil)
	}

	var rt domain.RoomType
	if err := GetDB(c).Where("id = ?", payload.RoomTypeId).First(&rt).Error; err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ROOM_TYPE", "Room type does not exist", nil)
	}

	var count int64
	GetDB(c).Model(&domain.Room{}).Where("number = ?", payload.Number).Count(&count)
	if count > 0 {
		return fail(c, http.StatusConflict, "NUMBER_EXISTS", "Room number already exists", nil)
	}

	status := payload.Status
	if status == "" {
		status = domain.RoomAvailable
	}
	if !validRoomStatus(status) {
		return fail(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown room status", nil)
	}

	room := domain.Room{
		ID:         common.UUIDint64(),
		RoomTypeId: payload.RoomTypeId,
		Number:     strings.TrimSpace(payload.Number),
		Floor:      payload.Floor,
		Status:     status,
		Remark:     payload.Remark,
	}
	if err := GetDB(c).Create(&room).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create room", err.Error())
	}
	logOperation(c, "", "room_create", "created room "+room.Number)
	return ok(c, room)
}

func updateRoom(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID", nil)
	}
	var room domain.Room
	if err := GetDB(c).Where("id = ?", id).First(&room).Error; err != nil {
		return fail(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found", nil)
	}

	var payload roomPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse room parameters", nil)
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if payload.RoomTypeId > 0 {
		var rt domain.RoomType
		if err := GetDB(c).Where("id = ?", payload.RoomTypeId).First(&rt).Error; err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_ROOM_TYPE", "Room type does not exist", nil)
		}
		updates["room_type_id"] = payload.RoomTypeId
	}
	if strings.TrimSpace(payload.Number) != "" && payload.Number != room.Number {
		var count int64
		GetDB(c).Model(&domain.Room{}).Where("number = ? AND id != ?", payload.Number, id).Count(&count)
		if count > 0 {
			return fail(c, http.StatusConflict, "NUMBER_EXISTS", "Room number already exists", nil)
		}
		updates["number"] = strings.TrimSpace(payload.Number)
	}
	if payload.Floor > 0 {
		updates["floor"] = payload.Floor
	}
	if payload.Status != "" {
		if !validRoomStatus(payload.Status) {
			return fail(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown room status", nil)
		}
		updates["status"] = payload.Status
	}
	if payload.Remark != "" {
		updates["remark"] = payload.Remark
	}

	if err := GetDB(c).Model(&room).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update room", err.Error())
	}
	GetDB(c).Where("id = ?", id).First(&room)
	return ok(c, room)
}

func deleteRoom(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID", nil)
	}

	var active int64
	GetDB(c).Model(&domain.Booking{}).
		Where("room_id = ? AND status IN ?", id, []string{domain.BookingReserved, domain.BookingCheckedIn}).
		Count(&active)
	if active > 0 {
		return fail(c, http.StatusConflict, "ROOM_IN_USE", "Room has active bookings", nil)
	}

	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Room{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete room", err.Error())
	}
	logOperation(c, "", "room_delete", "deleted room")
	return c.NoContent(http.StatusNoContent)
}

func validRoomStatus(status string) bool {
	switch status {
	case domain.RoomAvailable, domain.RoomOccupied, domain.RoomMaintenance:
		return true
	}
	return false
}
